package report

import (
	"strings"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/phone"
	"outage_portal_backend/platform/sanitize"
	"outage_portal_backend/platform/validator"
)

// Field names used for per-field validation errors.
const (
	FieldIssueType    = "issueType"
	FieldDescription  = "description"
	FieldLocality     = "locality"
	FieldPostalCode   = "postalCode"
	FieldContactPhone = "contactPhone"
)

// ReportFormOrchestrator owns one draft and merges updates into it. Location
// updates from the three sources go through ApplyLocationUpdate, which
// arbitrates coordinate precedence; everything else has a field setter.
//
// Each setter clears only its own field's validation error. Errors are never
// cleared en masse outside Reset.
type ReportFormOrchestrator struct {
	draft  ReportDraft
	val    *validator.Validator
	errors map[string]string

	// browserCoords latches once a browser-sourced fix lands. From then on
	// search results may update address text but never lat/lng.
	browserCoords bool
}

// NewOrchestrator creates an orchestrator with an empty draft.
func NewOrchestrator(val *validator.Validator) *ReportFormOrchestrator {
	return &ReportFormOrchestrator{
		draft:  NewDraft(),
		val:    val,
		errors: make(map[string]string),
	}
}

// Draft returns a copy of the current draft.
func (o *ReportFormOrchestrator) Draft() ReportDraft {
	return o.draft
}

// FieldError returns the validation error for a field, if any.
func (o *ReportFormOrchestrator) FieldError(field string) string {
	return o.errors[field]
}

// SetIssueType updates the issue type and clears its field error.
func (o *ReportFormOrchestrator) SetIssueType(v string) {
	o.draft.IssueType = strings.TrimSpace(v)
	delete(o.errors, FieldIssueType)
}

// SetDescription updates the description and clears its field error.
func (o *ReportFormOrchestrator) SetDescription(v string) {
	o.draft.Description = sanitize.Text(v)
	delete(o.errors, FieldDescription)
}

// SetAnonymous toggles the anonymous flag.
func (o *ReportFormOrchestrator) SetAnonymous(anonymous bool) {
	o.draft.IsAnonymous = anonymous
}

// SetContactPhone normalizes and stores the contact phone. Input that cannot
// be normalized is kept as typed so the user can correct it.
func (o *ReportFormOrchestrator) SetContactPhone(v string) {
	o.draft.ContactPhone = phone.NormalizeE164(strings.TrimSpace(v))
	delete(o.errors, FieldContactPhone)
}

// SetLocality lets the user correct the locality by hand.
func (o *ReportFormOrchestrator) SetLocality(v string) {
	o.draft.Locality = strings.TrimSpace(v)
	o.draft.LocationSource = location.SourceManual
	delete(o.errors, FieldLocality)
}

// SetPostalCode lets the user correct the postal code by hand.
func (o *ReportFormOrchestrator) SetPostalCode(v string) {
	o.draft.PostalCode = strings.TrimSpace(v)
	delete(o.errors, FieldPostalCode)
}

// AttachPhoto appends a photo to the draft.
func (o *ReportFormOrchestrator) AttachPhoto(p Photo) {
	o.draft.Photos = append(o.draft.Photos, p)
}

// RemovePhoto drops the photo at index i. Out-of-range indexes are ignored.
func (o *ReportFormOrchestrator) RemovePhoto(i int) {
	if i < 0 || i >= len(o.draft.Photos) {
		return
	}
	o.draft.Photos = append(o.draft.Photos[:i], o.draft.Photos[i+1:]...)
}

// ApplyLocationUpdate merges a resolved location into the draft.
//
// Textual address fields always take the latest resolution. Coordinates
// follow the precedence rule: once a browser-sourced fix has been applied,
// a later search-sourced update must not overwrite lat/lng. Device
// coordinates are authoritative for "current location" and are not silently
// replaced by a best-effort search match.
func (o *ReportFormOrchestrator) ApplyLocationUpdate(loc location.ResolvedLocation) {
	o.draft.Address = loc.Address
	o.draft.Locality = loc.Locality
	o.draft.City = loc.Components.City
	o.draft.State = loc.Components.State
	o.draft.PostalCode = loc.Components.PostalCode
	o.draft.PlaceID = loc.PlaceID
	o.draft.LocationSource = loc.Source

	delete(o.errors, FieldLocality)
	delete(o.errors, FieldPostalCode)

	if !loc.HasCoordinates() {
		return
	}
	if o.browserCoords && loc.Source != location.SourceBrowser {
		return
	}

	lat, lng := *loc.Lat, *loc.Lng
	o.draft.Lat = &lat
	o.draft.Lng = &lng
	if loc.Source == location.SourceBrowser {
		o.browserCoords = true
	}
}

// Validate checks the draft's required fields and shapes. It records one
// error per offending field and returns true when the draft is submittable.
func (o *ReportFormOrchestrator) Validate() bool {
	if o.draft.IssueType == "" {
		o.errors[FieldIssueType] = "issue type is required"
	}
	if o.draft.Description == "" {
		o.errors[FieldDescription] = "description is required"
	}
	if o.draft.Locality == "" {
		o.errors[FieldLocality] = "locality is required"
	}
	if o.draft.PostalCode != "" {
		if err := o.val.Var(o.draft.PostalCode, "len=6,numeric"); err != nil {
			o.errors[FieldPostalCode] = "postal code must be 6 digits"
		}
	}
	return len(o.errors) == 0
}

// Reset returns the draft to defaults and clears all field errors. Called
// after a successful submission.
func (o *ReportFormOrchestrator) Reset() {
	o.draft = NewDraft()
	o.errors = make(map[string]string)
	o.browserCoords = false
}

func (o *ReportFormOrchestrator) markSubmitting() {
	o.draft.SubmissionState = SubmissionInFlight
}

func (o *ReportFormOrchestrator) markFailed() {
	o.draft.SubmissionState = SubmissionFailed
}
