package location

import "strings"

// FormattedAddress is the deterministic output of Format: the display
// address, the semantic components, and the derived single-token locality.
type FormattedAddress struct {
	Address    string
	Components AddressComponents
	Locality   string
}

// separators are the characters that mark a composite value. A locality
// label must never contain one.
var separators = []string{",", " - "}

// Format maps raw provider place data to the canonical address record.
// It is pure: calling it twice on the same input yields identical output.
func Format(raw RawPlaceData) FormattedAddress {
	var (
		components AddressComponents
		locality   string
	)

	for _, pc := range raw.Components {
		for _, t := range pc.Types {
			switch t {
			case "premise":
				components.Premise = pc.LongName
			case "route":
				components.Route = pc.LongName
			case "neighborhood":
				components.Neighborhood = pc.LongName
			case "sublocality", "sublocality_level_1":
				if components.Sublocality == "" {
					components.Sublocality = pc.LongName
				}
			case "locality":
				locality = pc.LongName
				components.City = pc.LongName
			case "administrative_area_level_2":
				if components.City == "" {
					components.City = pc.LongName
				}
			case "administrative_area_level_1":
				components.State = pc.LongName
			case "postal_code":
				components.PostalCode = pc.LongName
			}
		}
	}

	address := raw.FormattedAddress
	if address == "" {
		address = raw.DisplayName
	}

	return FormattedAddress{
		Address:    address,
		Components: components,
		Locality:   LocalityFallback(locality, address, components),
	}
}

// LocalityFallback derives the short, single-segment place label used for
// the "locality" field. Candidates are tried in order: the explicit
// locality component, then premise, neighborhood, sublocality, route, city,
// and finally the full address. When the winning candidate is itself a
// composite (equal to the raw address or city, or containing a separator)
// only its leading segment before the first separator is kept.
func LocalityFallback(locality, address string, c AddressComponents) string {
	candidates := []string{
		locality,
		c.Premise,
		c.Neighborhood,
		c.Sublocality,
		c.Route,
		c.City,
		address,
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if candidate == address || candidate == c.City || containsSeparator(candidate) {
			return leadingSegment(candidate)
		}
		return candidate
	}

	return ""
}

func containsSeparator(value string) bool {
	for _, sep := range separators {
		if strings.Contains(value, sep) {
			return true
		}
	}
	return false
}

// leadingSegment returns the text before the first separator, trimmed.
func leadingSegment(value string) string {
	segment := value
	for _, sep := range separators {
		if idx := strings.Index(segment, sep); idx >= 0 {
			segment = segment[:idx]
		}
	}
	return strings.TrimSpace(segment)
}
