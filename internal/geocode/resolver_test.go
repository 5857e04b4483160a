package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/logger"
)

type fakeReverse struct {
	raw   location.RawPlaceData
	err   error
	calls int
}

func (f *fakeReverse) ReverseGeocode(context.Context, float64, float64) (location.RawPlaceData, error) {
	f.calls++
	if f.err != nil {
		return location.RawPlaceData{}, f.err
	}
	return f.raw, nil
}

type failingPosition struct{ err error }

func (f failingPosition) CurrentPosition(context.Context) (DevicePosition, error) {
	return DevicePosition{}, f.err
}

type hangingPosition struct{}

func (hangingPosition) CurrentPosition(ctx context.Context) (DevicePosition, error) {
	<-ctx.Done()
	return DevicePosition{}, ctx.Err()
}

func testLogger() *logger.Logger {
	return logger.New("development")
}

func TestResolveFromDevice_Success(t *testing.T) {
	reverse := &fakeReverse{
		raw: location.RawPlaceData{
			FormattedAddress: "Koramangala, Bengaluru, Karnataka 560034",
			Components: []location.PlaceComponent{
				{LongName: "Koramangala", Types: []string{"sublocality"}},
				{LongName: "Bengaluru", Types: []string{"locality"}},
				{LongName: "560034", Types: []string{"postal_code"}},
			},
		},
	}
	resolver := NewGeolocationResolver(StaticPosition{Lat: 12.93, Lng: 77.62}, reverse, time.Second, testLogger())

	resolved, err := resolver.ResolveFromDevice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.Source != location.SourceBrowser {
		t.Fatalf("expected browser source, got %q", resolved.Source)
	}
	if !resolved.HasCoordinates() || *resolved.Lat != 12.93 || *resolved.Lng != 77.62 {
		t.Fatalf("unexpected coordinates on %+v", resolved)
	}
	if resolved.Components.City != "Bengaluru" {
		t.Fatalf("expected city Bengaluru, got %q", resolved.Components.City)
	}
	if resolved.Locality != "Bengaluru" {
		t.Fatalf("expected locality Bengaluru, got %q", resolved.Locality)
	}
}

func TestResolveFromDevice_ReverseFailureKeepsCoordinates(t *testing.T) {
	reverse := &fakeReverse{err: errors.New("boom")}
	resolver := NewGeolocationResolver(StaticPosition{Lat: 12.93, Lng: 77.62}, reverse, time.Second, testLogger())

	resolved, err := resolver.ResolveFromDevice(context.Background())
	if !errors.Is(err, ErrReverseLookupFailed) {
		t.Fatalf("expected ErrReverseLookupFailed, got %v", err)
	}

	if !resolved.HasCoordinates() {
		t.Fatal("coordinates must survive a failed reverse lookup")
	}
	if *resolved.Lat != 12.93 || *resolved.Lng != 77.62 {
		t.Fatalf("unexpected coordinates %v,%v", *resolved.Lat, *resolved.Lng)
	}
	if resolved.Address != "" {
		t.Fatalf("expected empty address, got %q", resolved.Address)
	}
	if resolved.Source != location.SourceBrowser {
		t.Fatalf("expected browser source, got %q", resolved.Source)
	}
}

func TestResolveFromDevice_DeniedPassesThrough(t *testing.T) {
	resolver := NewGeolocationResolver(failingPosition{err: ErrLocationDenied}, &fakeReverse{}, time.Second, testLogger())

	_, err := resolver.ResolveFromDevice(context.Background())
	if !errors.Is(err, ErrLocationDenied) {
		t.Fatalf("expected ErrLocationDenied, got %v", err)
	}
}

func TestResolveFromDevice_TimeoutIsTyped(t *testing.T) {
	reverse := &fakeReverse{}
	resolver := NewGeolocationResolver(hangingPosition{}, reverse, 10*time.Millisecond, testLogger())

	_, err := resolver.ResolveFromDevice(context.Background())
	if !errors.Is(err, ErrLocationTimeout) {
		t.Fatalf("expected ErrLocationTimeout, got %v", err)
	}
	if reverse.calls != 0 {
		t.Fatal("expected no reverse lookup after a timed-out fix")
	}
}
