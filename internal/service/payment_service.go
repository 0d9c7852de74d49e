package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

// PaymentProcessor creates payment intents with an external processor and
// returns the client secret the frontend confirms against.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

type PaymentStore interface {
	FindByEmail(ctx context.Context, email string) ([]model.Payment, error)
	Insert(ctx context.Context, p model.Payment) (primitive.ObjectID, error)
}

type PaymentService struct {
	processor PaymentProcessor
	payments  PaymentStore
	currency  string
	audit     *AuditService
	now       func() time.Time
}

func NewPaymentService(processor PaymentProcessor, payments PaymentStore, currency string, audit *AuditService) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{processor: processor, payments: payments, currency: currency, audit: audit, now: time.Now}
}

// AmountInMinorUnits converts a fee in major units to cents.
func AmountInMinorUnits(fee float64) int64 {
	return int64(math.Round(fee * 100))
}

func (s *PaymentService) CreateIntent(ctx context.Context, fee float64) (model.PaymentIntentResponse, error) {
	if math.IsNaN(fee) || math.IsInf(fee, 0) || fee <= 0 {
		return model.PaymentIntentResponse{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "subscription_fee must be a positive amount", "subscription_fee", http.StatusBadRequest)
	}

	amount := AmountInMinorUnits(fee)
	clientSecret, err := s.processor.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		return model.PaymentIntentResponse{}, fmt.Errorf("create payment intent: %w: %w", model.ErrUpstreamFailure, err)
	}

	return model.PaymentIntentResponse{ClientSecret: clientSecret}, nil
}

func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	return s.payments.FindByEmail(ctx, email)
}

// Record stores a completed payment for the principal. Recording a payment
// on someone else's behalf is forbidden.
func (s *PaymentService) Record(ctx context.Context, principal *model.Principal, p model.Payment, actor model.AuditActor) (model.InsertResult, error) {
	if principal == nil {
		return model.InsertResult{}, model.ErrUnauthorized
	}

	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" {
		p.Email = principal.Email
	}
	if p.Email != principal.Email {
		return model.InsertResult{}, model.ErrForbidden
	}
	if strings.TrimSpace(p.TransactionID) == "" {
		return model.InsertResult{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "transaction_id is required", "transaction_id", http.StatusBadRequest)
	}
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}

	p.ID = primitive.NilObjectID
	id, err := s.payments.Insert(ctx, p)
	s.audit.Log(ctx, model.AuditActionPaymentRecord, actor, p.TransactionID, map[string]any{"email": p.Email, "price": p.Price}, err)
	if err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(id), nil
}
