package model

type AuditActor struct {
	Email string `json:"email,omitempty"`
	IP    string `json:"ip,omitempty"`
}

type AuditEntry struct {
	Action     string     `json:"action"`
	OccurredAt string     `json:"occurred_at"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Resource   string     `json:"resource,omitempty"`
	Details    any        `json:"details,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type AuditQuery struct {
	Action     string
	ActorEmail string
	Status     string
	Resource   string
	From       string
	To         string
	Page       int
	Limit      int
}

type AuditListData struct {
	Items []AuditEntry `json:"items"`
}

const (
	AuditActionTokenIssue    = "token.issue"
	AuditActionUserRegister  = "user.register"
	AuditActionUserPromote   = "user.promote"
	AuditActionPostDelete    = "post.delete"
	AuditActionPaymentRecord = "payment.record"

	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)
