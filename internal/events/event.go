package events

import (
	platformevents "outage_portal_backend/platform/events"

	"github.com/google/uuid"
)

// ReportSubmitted is published after a report record has been created.
type ReportSubmitted struct {
	platformevents.BaseEvent
	ReportID      uuid.UUID
	IssueType     string
	Locality      string
	PhotoCount    int
	IsAnonymous   bool
	ReporterEmail string // empty for anonymous reports
}

// EventName returns the unique event identifier.
func (e ReportSubmitted) EventName() string {
	return "report.submitted"
}

// NewReportSubmitted creates a ReportSubmitted event with the current timestamp.
func NewReportSubmitted(reportID uuid.UUID, issueType, locality string, photoCount int, isAnonymous bool, reporterEmail string) ReportSubmitted {
	return ReportSubmitted{
		BaseEvent:     platformevents.NewBaseEvent(),
		ReportID:      reportID,
		IssueType:     issueType,
		Locality:      locality,
		PhotoCount:    photoCount,
		IsAnonymous:   isAnonymous,
		ReporterEmail: reporterEmail,
	}
}
