package notification

import (
	"context"

	"outage_portal_backend/internal/events"
	"outage_portal_backend/platform/logger"
)

// Service subscribes to report submissions and sends confirmations.
type Service struct {
	sender Sender
	log    *logger.Logger
}

// NewService creates the notification service.
func NewService(sender Sender, log *logger.Logger) *Service {
	return &Service{sender: sender, log: log}
}

// Subscribe registers the service on the event bus.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.ReportSubmitted{}.EventName(), events.HandlerFunc(s.onReportSubmitted))
}

// onReportSubmitted sends a confirmation for non-anonymous reports with a
// known reporter email. A failed send is logged and swallowed; the report is
// already stored and delivery must not affect the submission outcome.
func (s *Service) onReportSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ReportSubmitted)
	if !ok {
		return nil
	}
	if e.IsAnonymous || e.ReporterEmail == "" {
		return nil
	}

	err := s.sender.SendReportConfirmation(ctx, e.ReporterEmail, ConfirmationData{
		ReportID:  e.ReportID.String(),
		IssueType: e.IssueType,
		Locality:  e.Locality,
	})
	if err != nil {
		s.log.ProviderError("smtp", "report_confirmation", err)
	}
	return nil
}
