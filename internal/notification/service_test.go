package notification

import (
	"context"
	"errors"
	"testing"

	"outage_portal_backend/internal/events"
	"outage_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) SendReportConfirmation(_ context.Context, toEmail string, _ ConfirmationData) error {
	s.sent = append(s.sent, toEmail)
	return s.err
}

func TestOnReportSubmitted_SendsConfirmation(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, logger.New("development"))

	event := events.NewReportSubmitted(uuid.New(), "power-outage", "Koramangala", 2, false, "reporter@example.com")
	if err := svc.onReportSubmitted(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 || sender.sent[0] != "reporter@example.com" {
		t.Fatalf("expected one confirmation to reporter, got %v", sender.sent)
	}
}

func TestOnReportSubmitted_SkipsAnonymousAndUnknown(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, logger.New("development"))

	anonymous := events.NewReportSubmitted(uuid.New(), "power-outage", "Koramangala", 0, true, "reporter@example.com")
	noEmail := events.NewReportSubmitted(uuid.New(), "power-outage", "Koramangala", 0, false, "")

	for _, e := range []events.ReportSubmitted{anonymous, noEmail} {
		if err := svc.onReportSubmitted(context.Background(), e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(sender.sent) != 0 {
		t.Fatalf("expected no confirmations, got %v", sender.sent)
	}
}

func TestOnReportSubmitted_SendFailureSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewService(sender, logger.New("development"))

	event := events.NewReportSubmitted(uuid.New(), "power-outage", "Koramangala", 0, false, "reporter@example.com")
	if err := svc.onReportSubmitted(context.Background(), event); err != nil {
		t.Fatalf("delivery failures must not propagate, got %v", err)
	}
}
