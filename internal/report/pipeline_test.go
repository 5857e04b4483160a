package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"outage_portal_backend/internal/adapters/storage"
	"outage_portal_backend/internal/events"
	"outage_portal_backend/platform/logger"
	"outage_portal_backend/platform/validator"

	"github.com/google/uuid"
)

type fakePhotoStorage struct {
	mu        sync.Mutex
	uploads   []storage.PhotoUpload
	failIndex int // index whose upload fails; -1 for none
}

func (f *fakePhotoStorage) UploadPhoto(_ context.Context, p storage.PhotoUpload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Index == f.failIndex {
		return "", errors.New("storage unavailable")
	}
	f.uploads = append(f.uploads, p)
	return "https://photos.example/" + p.FileName, nil
}

func (f *fakePhotoStorage) DeleteObject(context.Context, string) error  { return nil }
func (f *fakePhotoStorage) EnsureBucketExists(context.Context) error    { return nil }
func (f *fakePhotoStorage) ValidateContentType(string) error            { return nil }
func (f *fakePhotoStorage) ValidateFileSize(int64) error                { return nil }

type fakeStore struct {
	calls int
	err   error
	last  CreateReportParams
}

func (f *fakeStore) CreateReport(_ context.Context, params CreateReportParams) (uuid.UUID, error) {
	f.calls++
	f.last = params
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return params.ID, nil
}

type fakeProofs struct{}

func (fakeProofs) IssueProof(uuid.UUID, string) (string, error) { return "proof", nil }

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newPipelineUnderTest(photos *fakePhotoStorage, store *fakeStore, bus *recordingBus) *SubmissionPipeline {
	return NewSubmissionPipeline(photos, store, fakeProofs{}, bus, logger.New("development"))
}

func submittableForm(photoCount int) *ReportFormOrchestrator {
	o := NewOrchestrator(validator.New())
	o.SetIssueType("power-outage")
	o.SetDescription("No power since morning")
	o.SetLocality("Koramangala")
	for i := 0; i < photoCount; i++ {
		name := "photo-" + string(rune('a'+i)) + ".jpg"
		o.AttachPhoto(Photo{
			FileName:    name,
			ContentType: "image/jpeg",
			Size:        3,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("img")), nil
			},
		})
	}
	return o
}

func TestSubmit_Success(t *testing.T) {
	photos := &fakePhotoStorage{failIndex: -1}
	store := &fakeStore{}
	bus := &recordingBus{}
	pipeline := newPipelineUnderTest(photos, store, bus)
	form := submittableForm(2)

	id, err := pipeline.Submit(context.Background(), form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected a report id")
	}
	if store.calls != 1 {
		t.Fatalf("expected 1 record-store call, got %d", store.calls)
	}
	if len(store.last.PhotoURLs) != 2 {
		t.Fatalf("expected 2 photo URLs, got %v", store.last.PhotoURLs)
	}
	if store.last.PhotoURLs[0] != "https://photos.example/photo-a.jpg" {
		t.Fatalf("photo URL order must match attachment order, got %v", store.last.PhotoURLs)
	}

	// Success resets the draft.
	if draft := form.Draft(); draft.IssueType != "" || len(draft.Photos) != 0 {
		t.Fatalf("expected reset draft, got %+v", draft)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.events))
	}
	submitted, ok := bus.events[0].(events.ReportSubmitted)
	if !ok {
		t.Fatalf("unexpected event %T", bus.events[0])
	}
	if submitted.ReportID != id || submitted.PhotoCount != 2 {
		t.Fatalf("unexpected event %+v", submitted)
	}
}

func TestSubmit_OneFailedUploadAbortsEverything(t *testing.T) {
	photos := &fakePhotoStorage{failIndex: 1}
	store := &fakeStore{}
	bus := &recordingBus{}
	pipeline := newPipelineUnderTest(photos, store, bus)
	form := submittableForm(3)

	_, err := pipeline.Submit(context.Background(), form, nil)
	if !errors.Is(err, ErrPhotoUploadFailed) {
		t.Fatalf("expected ErrPhotoUploadFailed, got %v", err)
	}

	if store.calls != 0 {
		t.Fatalf("no record may be created on upload failure, got %d calls", store.calls)
	}
	if len(bus.events) != 0 {
		t.Fatal("no event may be published on failure")
	}

	// The draft stays intact for retry.
	draft := form.Draft()
	if draft.IssueType != "power-outage" || len(draft.Photos) != 3 {
		t.Fatalf("draft must survive the failure, got %+v", draft)
	}
	if draft.SubmissionState != SubmissionFailed {
		t.Fatalf("expected failed state, got %q", draft.SubmissionState)
	}
}

func TestSubmit_StoreFailureKeepsDraft(t *testing.T) {
	photos := &fakePhotoStorage{failIndex: -1}
	store := &fakeStore{err: errors.New("connection refused")}
	bus := &recordingBus{}
	pipeline := newPipelineUnderTest(photos, store, bus)
	form := submittableForm(1)

	_, err := pipeline.Submit(context.Background(), form, nil)
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	if draft := form.Draft(); draft.IssueType == "" {
		t.Fatal("draft must survive a record-store failure")
	}
	if len(bus.events) != 0 {
		t.Fatal("no event may be published on failure")
	}
}

func TestSubmit_InvalidDraftDoesNoWork(t *testing.T) {
	photos := &fakePhotoStorage{failIndex: -1}
	store := &fakeStore{}
	pipeline := newPipelineUnderTest(photos, store, &recordingBus{})

	_, err := pipeline.Submit(context.Background(), NewOrchestrator(validator.New()), nil)
	if !errors.Is(err, ErrInvalidDraft) {
		t.Fatalf("expected ErrInvalidDraft, got %v", err)
	}
	if len(photos.uploads) != 0 || store.calls != 0 {
		t.Fatal("invalid drafts must not reach the network")
	}
}

func TestSubmit_CancelledBeforeRecordCreate(t *testing.T) {
	photos := &fakePhotoStorage{failIndex: -1}
	store := &fakeStore{}
	pipeline := newPipelineUnderTest(photos, store, &recordingBus{})
	form := submittableForm(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Submit(ctx, form, nil)
	if !errors.Is(err, ErrSubmissionCancelled) {
		t.Fatalf("expected ErrSubmissionCancelled, got %v", err)
	}
	if store.calls != 0 {
		t.Fatal("cancelled submissions must not create records")
	}
	if draft := form.Draft(); draft.IssueType == "" {
		t.Fatal("draft must survive cancellation")
	}
}

func TestSubmit_IdentityProofOnlyWhenNotAnonymous(t *testing.T) {
	identity := &Identity{ReporterID: uuid.New(), Email: "reporter@example.com"}

	store := &fakeStore{}
	pipeline := newPipelineUnderTest(&fakePhotoStorage{failIndex: -1}, store, &recordingBus{})

	if _, err := pipeline.Submit(context.Background(), submittableForm(0), identity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.last.ReporterID == nil || *store.last.ReporterID != identity.ReporterID {
		t.Fatalf("expected reporter id on record, got %+v", store.last.ReporterID)
	}
	if store.last.IdentityProof == "" {
		t.Fatal("expected identity proof on non-anonymous report")
	}

	anonymous := submittableForm(0)
	anonymous.SetAnonymous(true)
	if _, err := pipeline.Submit(context.Background(), anonymous, identity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.last.ReporterID != nil || store.last.IdentityProof != "" {
		t.Fatalf("anonymous report must carry no identity, got %+v", store.last)
	}
}
