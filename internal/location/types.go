// Package location holds the shared location vocabulary: semantic address
// components, resolved locations with provenance, and the pure address
// formatting rules. It performs no I/O so every rule is unit-testable
// without network access.
package location

// Source records where a resolved location came from. It is used to
// arbitrate precedence when updates from multiple sources arrive.
type Source string

const (
	// SourceManual marks free-text entry by the user.
	SourceManual Source = "manual"
	// SourceSearch marks an autocomplete selection.
	SourceSearch Source = "search"
	// SourceBrowser marks device geolocation.
	SourceBrowser Source = "browser"
)

// AddressComponents is the semantic mapping of an address. Each field is a
// single administrative unit; none ever holds a comma-joined composite.
type AddressComponents struct {
	Premise     string `json:"premise,omitempty"`
	Route       string `json:"route,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Sublocality string `json:"sublocality,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
}

// ResolvedLocation is the canonical outcome of any of the three resolution
// paths (manual text, autocomplete selection, device geolocation).
// Lat and Lng are either both set or both nil.
type ResolvedLocation struct {
	Address    string            `json:"address"`
	Components AddressComponents `json:"components"`
	Locality   string            `json:"locality"`
	Lat        *float64          `json:"lat"`
	Lng        *float64          `json:"lng"`
	PlaceID    string            `json:"placeId,omitempty"`
	Source     Source            `json:"source"`
}

// HasCoordinates reports whether the location carries a coordinate pair.
func (l ResolvedLocation) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// SetCoordinates sets both coordinates together, preserving the
// both-or-neither invariant.
func (l *ResolvedLocation) SetCoordinates(lat, lng float64) {
	l.Lat = &lat
	l.Lng = &lng
}

// Prediction is a lightweight, unconfirmed autocomplete suggestion returned
// before full details are fetched. Predictions are ephemeral: the results
// list discards them when the query changes or a selection is made.
type Prediction struct {
	PlaceID       string `json:"placeId"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

// DisplayText joins the prediction's two text lines for degraded fallbacks.
func (p Prediction) DisplayText() string {
	if p.SecondaryText == "" {
		return p.MainText
	}
	return p.MainText + ", " + p.SecondaryText
}

// PlaceComponent is one typed address component as returned by the
// details and reverse-geocoding providers.
type PlaceComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// RawPlaceData is the explicit provider payload shape handed to the
// formatter. Providers translate their wire formats into this struct so no
// provider-specific object crosses layer boundaries.
type RawPlaceData struct {
	DisplayName      string
	FormattedAddress string
	Components       []PlaceComponent
}
