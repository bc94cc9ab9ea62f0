package search

import (
	"errors"
	"testing"
)

func TestSetFilter_CoordinateClearsPostalCode(t *testing.T) {
	state := DefaultFilters(0)
	state, err := SetFilter(state, FieldPostalCode, "1000")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	state, err = SetFilter(state, FieldLatitude, "50.85")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if state.PostalCode != "" {
		t.Fatalf("expected postalCode cleared, got %q", state.PostalCode)
	}
	if state.Location.Latitude == nil || *state.Location.Latitude != 50.85 {
		t.Fatalf("expected latitude 50.85, got %v", state.Location.Latitude)
	}
}

func TestSetFilter_PostalCodeClearsLocationButKeepsRadius(t *testing.T) {
	state := WithPlace(DefaultFilters(0), 50.85, 4.35, "Grand-Place", "Bruxelles", "1000")
	state, _ = SetFilter(state, FieldRadius, "25")

	state, err := SetFilter(state, FieldPostalCode, "1050")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if state.HasCoordinates() {
		t.Fatalf("expected coordinates cleared")
	}
	if state.Location.Address != "" || state.Location.City != "" || state.Location.PostalCode != "" {
		t.Fatalf("expected location fields cleared, got %+v", state.Location)
	}
	if state.Location.Radius != 25 {
		t.Fatalf("expected radius kept at 25, got %v", state.Location.Radius)
	}
	if state.PostalCode != "1050" {
		t.Fatalf("expected postalCode 1050, got %q", state.PostalCode)
	}
}

func TestSetFilter_EmptyPostalCodeKeepsLocation(t *testing.T) {
	state := WithPlace(DefaultFilters(0), 50.85, 4.35, "", "", "")
	state, err := SetFilter(state, FieldPostalCode, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !state.HasCoordinates() {
		t.Fatalf("clearing postalCode must not touch location")
	}
}

func TestSetFilter_NeverBothPopulated(t *testing.T) {
	steps := []struct {
		field Field
		value string
	}{
		{FieldPostalCode, "1000"},
		{FieldLongitude, "4.35"},
		{FieldPostalCode, "1050"},
		{FieldLatitude, "50.8"},
		{FieldLongitude, "4.3"},
		{FieldBreed, "Labrador"},
		{FieldPostalCode, "1180"},
	}

	state := DefaultFilters(0)
	for _, s := range steps {
		var err error
		state, err = SetFilter(state, s.field, s.value)
		if err != nil {
			t.Fatalf("%s=%s: %v", s.field, s.value, err)
		}
		hasCoord := state.Location.Latitude != nil || state.Location.Longitude != nil
		if state.PostalCode != "" && hasCoord {
			t.Fatalf("after %s=%s both postalCode and coordinates are set: %+v", s.field, s.value, state)
		}
	}
}

func TestSetFilter_Invalid(t *testing.T) {
	base := DefaultFilters(0)

	cases := []struct {
		field Field
		value string
	}{
		{"species", "cat"},
		{FieldLatitude, "north"},
		{FieldLatitude, "91"},
		{FieldLongitude, "-181"},
		{FieldRadius, "-1"},
		{FieldRadius, "NaN"},
	}
	for _, c := range cases {
		got, err := SetFilter(base, c.field, c.value)
		if !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("%s=%q: expected ErrInvalidFilter, got %v", c.field, c.value, err)
		}
		if got != base {
			t.Errorf("%s=%q: state must be unchanged on error", c.field, c.value)
		}
	}
}

func TestSetFilter_EmptyRadiusRestoresDefault(t *testing.T) {
	state, _ := SetFilter(DefaultFilters(0), FieldRadius, "3")
	state, err := SetFilter(state, FieldRadius, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if state.Location.Radius != DefaultRadiusKm {
		t.Fatalf("expected default radius, got %v", state.Location.Radius)
	}
}

func TestClearLocation(t *testing.T) {
	state := WithPlace(DefaultFilters(5), 50.85, 4.35, "Rue Neuve", "Bruxelles", "1000")
	state.Breed = "Siamois"

	got := ClearLocation(state)

	if got.HasCoordinates() || got.Location.Address != "" {
		t.Fatalf("expected location cleared, got %+v", got.Location)
	}
	if got.Location.Radius != 5 {
		t.Fatalf("expected radius 5, got %v", got.Location.Radius)
	}
	if got.Breed != "Siamois" {
		t.Fatalf("other filters must be untouched")
	}
}

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters(0)
	if f.Location.Radius != 10 {
		t.Fatalf("expected default radius 10, got %v", f.Location.Radius)
	}
	if f.Point() != nil {
		t.Fatalf("defaults must not have a point")
	}
}
