package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

type auditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

// AuditService records privileged actions. A nil service (audit disabled)
// accepts and drops every entry.
type AuditService struct {
	store   auditStore
	timeout time.Duration
}

func NewAuditService(store auditStore, timeout time.Duration) *AuditService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuditService{store: store, timeout: timeout}
}

func (s *AuditService) Enabled() bool {
	return s != nil && s.store != nil
}

// Log never fails the request that triggered it; store errors are logged.
func (s *AuditService) Log(ctx context.Context, action string, actor model.AuditActor, resource string, details any, actionErr error) {
	if !s.Enabled() {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:      actor,
		Status:     model.AuditStatusSuccess,
		Resource:   resource,
		Details:    details,
	}
	if actionErr != nil {
		entry.Status = model.AuditStatusFailure
		entry.Error = actionErr.Error()
	}

	// Entries must survive a client disconnect.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.store.Log(logCtx, entry); err != nil {
		slog.Warn("audit log write failed", "action", action, "error", err)
	}
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if !s.Enabled() {
		return nil, model.Meta{}, apierror.New("NOT_IMPLEMENTED", "audit trail is disabled", "DATABASE_URL is not configured", http.StatusNotImplemented)
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	if _, err := parseOptionalAuditTime(query.From); err != nil {
		return nil, model.Meta{}, apierror.BadRequest("invalid 'from' datetime format", query.From)
	}
	if _, err := parseOptionalAuditTime(query.To); err != nil {
		return nil, model.Meta{}, apierror.BadRequest("invalid 'to' datetime format", query.To)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.store.Query(ctx, query)
}

func parseOptionalAuditTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
