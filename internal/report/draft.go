package report

import (
	"io"

	"outage_portal_backend/internal/location"
)

// SubmissionState labels where a draft is in its submission lifecycle.
type SubmissionState string

const (
	SubmissionIdle      SubmissionState = "idle"
	SubmissionInFlight  SubmissionState = "in_flight"
	SubmissionSucceeded SubmissionState = "succeeded"
	SubmissionFailed    SubmissionState = "failed"
)

// Photo is one attached evidence photo. Open returns a fresh reader so
// concurrent uploads and retries each get their own stream.
type Photo struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ReportDraft is the in-progress report held in memory for the duration of
// the form interaction. The orchestrator owns it exclusively.
type ReportDraft struct {
	IssueType   string
	Description string

	Address    string
	Locality   string
	City       string
	State      string
	PostalCode string
	Lat        *float64
	Lng        *float64
	PlaceID    string
	// LocationSource records the provenance of the most recent location
	// update, for precedence decisions.
	LocationSource location.Source

	Photos       []Photo
	IsAnonymous  bool
	ContactPhone string

	SubmissionState SubmissionState
}

// NewDraft returns a draft with default values.
func NewDraft() ReportDraft {
	return ReportDraft{SubmissionState: SubmissionIdle}
}

// HasCoordinates reports whether the draft carries a device or search fix.
func (d *ReportDraft) HasCoordinates() bool {
	return d.Lat != nil && d.Lng != nil
}
