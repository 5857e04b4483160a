package location

import (
	"reflect"
	"strings"
	"testing"
)

func samplePlaceData() RawPlaceData {
	return RawPlaceData{
		DisplayName:      "Koramangala",
		FormattedAddress: "80 Feet Rd, Koramangala, Bengaluru, Karnataka 560034, India",
		Components: []PlaceComponent{
			{LongName: "80 Feet Road", ShortName: "80 Feet Rd", Types: []string{"route"}},
			{LongName: "Koramangala", ShortName: "Koramangala", Types: []string{"sublocality_level_1", "sublocality"}},
			{LongName: "Bengaluru", ShortName: "Bengaluru", Types: []string{"locality"}},
			{LongName: "Karnataka", ShortName: "KA", Types: []string{"administrative_area_level_1"}},
			{LongName: "560034", ShortName: "560034", Types: []string{"postal_code"}},
		},
	}
}

func TestFormat_MapsComponentTypes(t *testing.T) {
	got := Format(samplePlaceData())

	if got.Components.Route != "80 Feet Road" {
		t.Fatalf("expected route '80 Feet Road', got %q", got.Components.Route)
	}
	if got.Components.Sublocality != "Koramangala" {
		t.Fatalf("expected sublocality 'Koramangala', got %q", got.Components.Sublocality)
	}
	if got.Components.City != "Bengaluru" {
		t.Fatalf("expected city 'Bengaluru', got %q", got.Components.City)
	}
	if got.Components.State != "Karnataka" {
		t.Fatalf("expected state 'Karnataka', got %q", got.Components.State)
	}
	if got.Components.PostalCode != "560034" {
		t.Fatalf("expected postal code '560034', got %q", got.Components.PostalCode)
	}
	if got.Address != "80 Feet Rd, Koramangala, Bengaluru, Karnataka 560034, India" {
		t.Fatalf("unexpected address %q", got.Address)
	}
}

func TestFormat_DistrictFallsBackToCityWhenLocalityMissing(t *testing.T) {
	raw := RawPlaceData{
		FormattedAddress: "Somewhere, Bengaluru Urban, Karnataka, India",
		Components: []PlaceComponent{
			{LongName: "Bengaluru Urban", Types: []string{"administrative_area_level_2"}},
			{LongName: "Karnataka", Types: []string{"administrative_area_level_1"}},
		},
	}

	got := Format(raw)
	if got.Components.City != "Bengaluru Urban" {
		t.Fatalf("expected district as city, got %q", got.Components.City)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	raw := samplePlaceData()

	first := Format(raw)
	second := Format(raw)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %+v vs %+v", first, second)
	}
}

func TestFormat_UsesDisplayNameWhenFormattedAddressEmpty(t *testing.T) {
	raw := RawPlaceData{DisplayName: "Koramangala"}

	got := Format(raw)
	if got.Address != "Koramangala" {
		t.Fatalf("expected display name fallback, got %q", got.Address)
	}
}

func TestLocalityFallback_Order(t *testing.T) {
	tests := []struct {
		name       string
		locality   string
		address    string
		components AddressComponents
		want       string
	}{
		{
			name:     "explicit locality wins",
			locality: "Indiranagar",
			address:  "100 Feet Rd, Indiranagar, Bengaluru",
			components: AddressComponents{
				Premise: "Shanti Nivas", Neighborhood: "HAL 2nd Stage", City: "Bengaluru",
			},
			want: "Indiranagar",
		},
		{
			name:    "premise before neighborhood",
			address: "somewhere",
			components: AddressComponents{
				Premise: "Shanti Nivas", Neighborhood: "HAL 2nd Stage",
			},
			want: "Shanti Nivas",
		},
		{
			name:       "neighborhood before sublocality",
			address:    "somewhere",
			components: AddressComponents{Neighborhood: "HAL 2nd Stage", Sublocality: "Indiranagar"},
			want:       "HAL 2nd Stage",
		},
		{
			name:       "sublocality before route",
			address:    "somewhere",
			components: AddressComponents{Sublocality: "Indiranagar", Route: "100 Feet Rd"},
			want:       "Indiranagar",
		},
		{
			name:       "route before city",
			address:    "somewhere",
			components: AddressComponents{Route: "100 Feet Rd", City: "Bengaluru"},
			want:       "100 Feet Rd",
		},
		{
			name:       "city before address",
			address:    "somewhere",
			components: AddressComponents{City: "Bengaluru"},
			want:       "Bengaluru",
		},
		{
			name:    "address composite keeps leading segment",
			address: "80 Feet Rd, Koramangala, Bengaluru",
			want:    "80 Feet Rd",
		},
		{
			name: "everything empty",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LocalityFallback(tc.locality, tc.address, tc.components)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLocalityFallback_NeverContainsSeparator(t *testing.T) {
	inputs := []struct {
		locality   string
		address    string
		components AddressComponents
	}{
		{locality: "Koramangala, Bengaluru", address: "Koramangala, Bengaluru"},
		{address: "A - B - C"},
		{components: AddressComponents{Premise: "Block 4, Tower B"}, address: "x"},
		{components: AddressComponents{City: "Bengaluru, Karnataka"}, address: "y"},
		{address: "80 Feet Rd, Koramangala, Bengaluru, Karnataka 560034, India"},
	}

	for _, in := range inputs {
		got := LocalityFallback(in.locality, in.address, in.components)
		for _, sep := range []string{",", " - "} {
			if strings.Contains(got, sep) {
				t.Fatalf("locality %q contains separator %q", got, sep)
			}
		}
	}
}

func TestResolvedLocation_SetCoordinates(t *testing.T) {
	var loc ResolvedLocation
	if loc.HasCoordinates() {
		t.Fatal("expected no coordinates on zero value")
	}

	loc.SetCoordinates(12.93, 77.62)
	if !loc.HasCoordinates() {
		t.Fatal("expected coordinates after SetCoordinates")
	}
	if *loc.Lat != 12.93 || *loc.Lng != 77.62 {
		t.Fatalf("unexpected coordinates %v,%v", *loc.Lat, *loc.Lng)
	}
}

func TestPrediction_DisplayText(t *testing.T) {
	p := Prediction{MainText: "Koramangala", SecondaryText: "Bengaluru, Karnataka"}
	if got := p.DisplayText(); got != "Koramangala, Bengaluru, Karnataka" {
		t.Fatalf("unexpected display text %q", got)
	}

	p.SecondaryText = ""
	if got := p.DisplayText(); got != "Koramangala" {
		t.Fatalf("unexpected display text %q", got)
	}
}
