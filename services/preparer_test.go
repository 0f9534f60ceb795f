package services

import (
	"testing"

	"rental-miner/models"
	"rental-miner/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger(false) }

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"1200", 1200, true},
		{"1,000", 1000, true},
		{"950.50", 950.50, true},
		{" 640 ", 640, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"3 rooms", 0, false},
		{"$1200", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumeric(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseNumeric(%q) = (%.2f, %v); want (%.2f, %v)",
				tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPrepareDropsNonNumericRows(t *testing.T) {
	p := NewPreparer(newTestLogger())
	rows := []models.RawRecord{
		{"price": "1200", "square_feet": "800", "bedrooms": "2", "bathrooms": "1", "state": "TX", "amenities": "Pool"},
		{"price": "contact us", "square_feet": "800", "bedrooms": "2", "bathrooms": "1", "state": "TX", "amenities": ""},
		{"price": "900", "square_feet": "", "bedrooms": "1", "bathrooms": "1", "state": "CA", "amenities": ""},
	}

	prepared := p.Prepare(rows)
	if len(prepared) != 1 {
		t.Fatalf("expected 1 prepared record, got %d", len(prepared))
	}
	if prepared[0].Price != 1200 || prepared[0].SquareFeet != 800 {
		t.Errorf("unexpected numeric fields: %+v", prepared[0])
	}
}

func TestPrepareFillsAmenitiesSentinel(t *testing.T) {
	p := NewPreparer(newTestLogger())
	rows := []models.RawRecord{
		{"price": "1200", "square_feet": "800", "bedrooms": "2", "bathrooms": "1", "state": "TX", "amenities": ""},
		{"price": "900", "square_feet": "600", "bedrooms": "1", "bathrooms": "1", "state": "CA", "amenities": "Gym"},
	}

	prepared := p.Prepare(rows)
	if len(prepared) != 2 {
		t.Fatalf("expected 2 prepared records, got %d", len(prepared))
	}
	if prepared[0].Amenities != models.NoAmenities {
		t.Errorf("missing amenities: got %q, want sentinel %q", prepared[0].Amenities, models.NoAmenities)
	}
	if prepared[1].Amenities != "Gym" {
		t.Errorf("present amenities: got %q, want %q", prepared[1].Amenities, "Gym")
	}
}

func TestPrepareCoercesCommaArtifacts(t *testing.T) {
	p := NewPreparer(newTestLogger())
	rows := []models.RawRecord{
		{"price": "1,350", "square_feet": "1,100", "bedrooms": " 3 ", "bathrooms": "2", "state": " NY ", "amenities": ""},
	}

	prepared := p.Prepare(rows)
	if len(prepared) != 1 {
		t.Fatalf("expected 1 prepared record, got %d", len(prepared))
	}
	r := prepared[0]
	if r.Price != 1350 || r.SquareFeet != 1100 {
		t.Errorf("comma artifacts not stripped: %+v", r)
	}
	if r.Bedrooms != "3" || r.State != "NY" {
		t.Errorf("fields not trimmed: %+v", r)
	}
}
