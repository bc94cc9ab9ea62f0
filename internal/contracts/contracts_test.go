package contracts

import (
	"errors"
	"testing"
)

func TestKeyFromPath(t *testing.T) {
	cases := map[string]string{
		"requests/filter-update/v1.json":   "FilterUpdateRequest/1.0.0",
		"requests/position-report/v2.json": "PositionReportRequest/2.0.0",
		"requests/score-request/v1.json":   "ScoreRequest/1.0.0",
		"requests/broken.json":             "",
	}
	for in, want := range cases {
		if got := keyFromPath(in); got != want {
			t.Errorf("keyFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAllContractsRegistered(t *testing.T) {
	for _, name := range []string{FilterUpdate, PositionReport, CurrentLocation, AddressSelect, ScoreRequest} {
		if _, ok := compiled[name+"/"+Version1]; !ok {
			t.Errorf("contract %s not registered", name)
		}
	}
}

func TestValidateFilterUpdate(t *testing.T) {
	ok := []string{
		`{"field":"breed","value":"Labrador"}`,
		`{"field":"location.latitude","value":50.85}`,
		`{"field":"postalCode","value":null}`,
		`{"field":"color"}`,
	}
	for _, body := range ok {
		if err := Validate(FilterUpdate, Version1, []byte(body)); err != nil {
			t.Errorf("expected %s to be valid, got %v", body, err)
		}
	}

	bad := []string{
		`{"field":"species","value":"cat"}`,
		`{"value":"x"}`,
		`{"field":"breed","value":true}`,
		`{"field":"breed","value":"x","extra":1}`,
		`not json`,
	}
	for _, body := range bad {
		err := Validate(FilterUpdate, Version1, []byte(body))
		if !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected ErrInvalidPayload for %s, got %v", body, err)
		}
	}
}

func TestValidatePositionReport(t *testing.T) {
	if err := Validate(PositionReport, Version1, []byte(`{"latitude":50.85,"longitude":4.35,"accuracy":12}`)); err != nil {
		t.Fatalf("fix should be valid: %v", err)
	}
	if err := Validate(PositionReport, Version1, []byte(`{"error_code":1,"message":"denied"}`)); err != nil {
		t.Fatalf("error report should be valid: %v", err)
	}
	if err := Validate(PositionReport, Version1, []byte(`{"latitude":91,"longitude":4.35}`)); err == nil {
		t.Fatalf("latitude out of range should fail")
	}
	if err := Validate(PositionReport, Version1, []byte(`{"latitude":50,"longitude":4,"error_code":2}`)); err == nil {
		t.Fatalf("fix and error together should fail")
	}
}

func TestValidateCurrentLocation(t *testing.T) {
	for _, body := range []string{`{}`, `{"latitude":50.85,"longitude":4.35}`, `{"latitude":50.85,"longitude":4.35,"accuracy":20}`} {
		if err := Validate(CurrentLocation, Version1, []byte(body)); err != nil {
			t.Errorf("expected %s to be valid, got %v", body, err)
		}
	}
	for _, body := range []string{`{"latitude":50.85}`, `{"longitude":4.35}`, `{"latitude":50.85,"longitude":200}`, `{"accuracy":-1}`} {
		if err := Validate(CurrentLocation, Version1, []byte(body)); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected ErrInvalidPayload for %s, got %v", body, err)
		}
	}
}

func TestValidateUnknownContract(t *testing.T) {
	err := Validate("Nope", Version1, []byte(`{}`))
	if err == nil || errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected registration error, got %v", err)
	}
}
