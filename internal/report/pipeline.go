package report

import (
	"context"
	"fmt"

	"outage_portal_backend/internal/adapters/storage"
	"outage_portal_backend/internal/events"
	"outage_portal_backend/platform/apperr"
	"outage_portal_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Submission failures. The draft is left intact for every one of them so the
// user can retry without re-entering data.
var (
	// ErrInvalidDraft means validation rejected the draft before any network
	// work started.
	ErrInvalidDraft = apperr.Validation("report draft is not submittable")
	// ErrPhotoUploadFailed means at least one photo upload failed; no record
	// was created.
	ErrPhotoUploadFailed = apperr.Upstream("photo upload failed")
	// ErrSubmissionFailed means the record store rejected the report.
	ErrSubmissionFailed = apperr.Internal("report submission failed")
	// ErrSubmissionCancelled means the submission was torn down mid-flight.
	ErrSubmissionCancelled = apperr.New(apperr.KindCancelled, "submission cancelled")
)

// RecordStore persists finished reports.
type RecordStore interface {
	CreateReport(ctx context.Context, params CreateReportParams) (uuid.UUID, error)
}

// ProofIssuer mints the identity proof attached to non-anonymous reports.
type ProofIssuer interface {
	IssueProof(reporterID uuid.UUID, email string) (string, error)
}

// Identity is the authenticated reporter behind a submission, when known.
type Identity struct {
	ReporterID uuid.UUID
	Email      string
}

// SubmissionPipeline turns a validated draft into a stored report: photos
// first, then the record. Every step honors ctx cancellation.
type SubmissionPipeline struct {
	photos storage.PhotoStorage
	store  RecordStore
	proofs ProofIssuer
	bus    events.Bus
	log    *logger.Logger
}

// NewSubmissionPipeline creates a pipeline.
func NewSubmissionPipeline(photos storage.PhotoStorage, store RecordStore, proofs ProofIssuer, bus events.Bus, log *logger.Logger) *SubmissionPipeline {
	return &SubmissionPipeline{
		photos: photos,
		store:  store,
		proofs: proofs,
		bus:    bus,
		log:    log,
	}
}

// Submit runs the full pipeline for the orchestrator's current draft.
//
// Photo uploads run concurrently and are all-or-nothing: one failure aborts
// the submission before any record is created. On success the draft is reset
// and a ReportSubmitted event is published; on any failure the draft stays
// untouched for retry.
func (p *SubmissionPipeline) Submit(ctx context.Context, form *ReportFormOrchestrator, identity *Identity) (uuid.UUID, error) {
	if !form.Validate() {
		return uuid.Nil, ErrInvalidDraft
	}

	draft := form.Draft()
	form.markSubmitting()
	reportID := uuid.New()

	photoURLs, err := p.uploadPhotos(ctx, reportID, draft.Photos)
	if err != nil {
		form.markFailed()
		p.log.SubmissionEvent(reportID.String(), len(draft.Photos), false, "photo upload")
		return uuid.Nil, err
	}

	if err := ctx.Err(); err != nil {
		form.markFailed()
		return uuid.Nil, fmt.Errorf("%w: %v", ErrSubmissionCancelled, err)
	}

	params := CreateReportParams{
		ID:           reportID,
		IssueType:    draft.IssueType,
		Description:  draft.Description,
		Address:      draft.Address,
		Locality:     draft.Locality,
		City:         draft.City,
		State:        draft.State,
		PostalCode:   draft.PostalCode,
		Lat:          draft.Lat,
		Lng:          draft.Lng,
		PhotoURLs:    photoURLs,
		IsAnonymous:  draft.IsAnonymous,
		ContactPhone: draft.ContactPhone,
	}

	var reporterEmail string
	if !draft.IsAnonymous && identity != nil {
		proof, err := p.proofs.IssueProof(identity.ReporterID, identity.Email)
		if err != nil {
			form.markFailed()
			return uuid.Nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
		}
		reporterID := identity.ReporterID
		params.ReporterID = &reporterID
		params.IdentityProof = proof
		reporterEmail = identity.Email
	}

	id, err := p.store.CreateReport(ctx, params)
	if err != nil {
		form.markFailed()
		p.log.SubmissionEvent(reportID.String(), len(photoURLs), false, "record store")
		return uuid.Nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	form.Reset()
	p.log.SubmissionEvent(id.String(), len(photoURLs), true, "")
	p.bus.Publish(ctx, events.NewReportSubmitted(id, draft.IssueType, draft.Locality, len(photoURLs), draft.IsAnonymous, reporterEmail))

	return id, nil
}

// uploadPhotos stores every photo concurrently. All must succeed; the first
// failure cancels the rest and fails the submission.
func (p *SubmissionPipeline) uploadPhotos(ctx context.Context, reportID uuid.UUID, photos []Photo) ([]string, error) {
	if len(photos) == 0 {
		return nil, nil
	}

	urls := make([]string, len(photos))
	g, gctx := errgroup.WithContext(ctx)

	for i, ph := range photos {
		g.Go(func() error {
			rc, err := ph.Open()
			if err != nil {
				return fmt.Errorf("open photo %d: %w", i, err)
			}
			defer rc.Close()

			url, err := p.photos.UploadPhoto(gctx, storage.PhotoUpload{
				ReportID:    reportID.String(),
				Index:       i,
				FileName:    ph.FileName,
				ContentType: ph.ContentType,
				Reader:      rc,
				Size:        ph.Size,
			})
			if err != nil {
				return fmt.Errorf("upload photo %d: %w", i, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPhotoUploadFailed, err)
	}
	return urls, nil
}
