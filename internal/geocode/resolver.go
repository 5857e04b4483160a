package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/apperr"
	"outage_portal_backend/platform/logger"
)

// Typed device-location failures. Each maps to a distinct user-facing
// message; none of them is fatal to the process.
var (
	// ErrLocationDenied means the user refused the location permission.
	ErrLocationDenied = apperr.Forbidden("location permission denied")
	// ErrLocationUnavailable means the device could not produce a fix.
	ErrLocationUnavailable = apperr.Upstream("device location unavailable")
	// ErrLocationTimeout means the device did not answer in time.
	ErrLocationTimeout = apperr.Timeout("device location timed out")
	// ErrReverseLookupFailed means the coordinates could not be resolved to
	// an address; the returned location still carries the coordinates.
	ErrReverseLookupFailed = apperr.New(apperr.KindDegraded, "reverse address lookup unavailable")
)

// DevicePosition is a raw device fix.
type DevicePosition struct {
	Lat float64
	Lng float64
}

// PositionProvider produces the device's current position. Implementations
// return one of the typed failures above when no fix is available.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (DevicePosition, error)
}

// StaticPosition adapts an already-obtained fix (e.g. coordinates posted by
// the browser) to the PositionProvider interface.
type StaticPosition DevicePosition

// CurrentPosition returns the stored fix.
func (p StaticPosition) CurrentPosition(context.Context) (DevicePosition, error) {
	return DevicePosition(p), nil
}

// GeolocationResolver resolves a device position to a browser-sourced
// ResolvedLocation via reverse geocoding.
type GeolocationResolver struct {
	positions PositionProvider
	reverse   ReverseClient
	timeout   time.Duration
	log       *logger.Logger
}

// NewGeolocationResolver creates a resolver. timeout bounds the device
// position request; zero disables the explicit bound.
func NewGeolocationResolver(positions PositionProvider, reverse ReverseClient, timeout time.Duration, log *logger.Logger) *GeolocationResolver {
	return &GeolocationResolver{
		positions: positions,
		reverse:   reverse,
		timeout:   timeout,
		log:       log,
	}
}

// ResolveFromDevice obtains the device fix and reverse-geocodes it.
//
// Once coordinates are obtained they are never discarded: when the reverse
// lookup fails the returned location keeps lat/lng with empty address data,
// and ErrReverseLookupFailed signals the degradation to the caller.
func (r *GeolocationResolver) ResolveFromDevice(ctx context.Context) (location.ResolvedLocation, error) {
	posCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		posCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	fix, err := r.positions.CurrentPosition(posCtx)
	if err != nil {
		if errors.Is(posCtx.Err(), context.DeadlineExceeded) {
			return location.ResolvedLocation{}, ErrLocationTimeout
		}
		return location.ResolvedLocation{}, err
	}

	resolved := location.ResolvedLocation{Source: location.SourceBrowser}
	resolved.SetCoordinates(fix.Lat, fix.Lng)

	raw, err := r.reverse.ReverseGeocode(ctx, fix.Lat, fix.Lng)
	if err != nil {
		r.log.ProviderError("geocode", "reverse", err)
		return resolved, fmt.Errorf("%w: %v", ErrReverseLookupFailed, err)
	}

	formatted := location.Format(raw)
	resolved.Address = formatted.Address
	resolved.Components = formatted.Components
	resolved.Locality = formatted.Locality

	return resolved, nil
}
