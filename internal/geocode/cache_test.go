package geocode

import (
	"context"
	"testing"
	"time"

	"outage_portal_backend/internal/location"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newCacheUnderTest(t *testing.T, inner ReverseClient) (*CachedReverseClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewCachedReverseClient(inner, rdb, time.Hour, testLogger()), mr
}

func TestCachedReverseGeocode_HitSkipsProvider(t *testing.T) {
	inner := &fakeReverse{raw: location.RawPlaceData{FormattedAddress: "Koramangala, Bengaluru"}}
	cache, _ := newCacheUnderTest(t, inner)

	first, err := cache.ReverseGeocode(context.Background(), 12.93, 77.62)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.ReverseGeocode(context.Background(), 12.93, 77.62)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", inner.calls)
	}
	if first.FormattedAddress != second.FormattedAddress {
		t.Fatalf("cache returned a different result: %q vs %q", first.FormattedAddress, second.FormattedAddress)
	}
}

func TestCachedReverseGeocode_NearbyFixesShareEntry(t *testing.T) {
	inner := &fakeReverse{raw: location.RawPlaceData{FormattedAddress: "Koramangala"}}
	cache, _ := newCacheUnderTest(t, inner)

	if _, err := cache.ReverseGeocode(context.Background(), 12.930004, 77.620001); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.ReverseGeocode(context.Background(), 12.930049, 77.619951); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected rounded coordinates to share an entry, got %d calls", inner.calls)
	}
}

func TestCachedReverseGeocode_ExpiredEntryRefetches(t *testing.T) {
	inner := &fakeReverse{raw: location.RawPlaceData{FormattedAddress: "Koramangala"}}
	cache, mr := newCacheUnderTest(t, inner)

	if _, err := cache.ReverseGeocode(context.Background(), 12.93, 77.62); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := cache.ReverseGeocode(context.Background(), 12.93, 77.62); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", inner.calls)
	}
}

func TestCachedReverseGeocode_ProviderErrorNotCached(t *testing.T) {
	inner := &fakeReverse{err: context.DeadlineExceeded}
	cache, _ := newCacheUnderTest(t, inner)

	if _, err := cache.ReverseGeocode(context.Background(), 12.93, 77.62); err == nil {
		t.Fatal("expected error from provider")
	}

	inner.err = nil
	inner.raw = location.RawPlaceData{FormattedAddress: "Koramangala"}

	raw, err := cache.ReverseGeocode(context.Background(), 12.93, 77.62)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.FormattedAddress != "Koramangala" {
		t.Fatalf("unexpected result %+v", raw)
	}
}
