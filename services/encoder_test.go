package services

import (
	"reflect"
	"testing"

	"rental-miner/models"
)

func labeledRecord(amenities string) *models.LabeledRecord {
	return &models.LabeledRecord{
		PriceBin:  "Rent_Low",
		SizeBin:   "Size_Small",
		BedLabel:  "2_Beds",
		BathLabel: "1_Baths",
		State:     "TX",
		Amenities: amenities,
	}
}

func TestEncodeAmenityTokenization(t *testing.T) {
	e := NewEncoder(1, newTestLogger())
	txn := e.Encode(labeledRecord(" Pool, Gym ,,Parking"))

	want := models.Transaction{"1_Baths", "2_Beds", "Gym", "Parking", "Pool", "Rent_Low", "Size_Small", "TX"}
	if !reflect.DeepEqual(txn, want) {
		t.Errorf("transaction:\n got %v\nwant %v", txn, want)
	}
}

func TestEncodeSentinelAddsNoItems(t *testing.T) {
	e := NewEncoder(1, newTestLogger())
	txn := e.Encode(labeledRecord(models.NoAmenities))

	if len(txn) != 5 {
		t.Fatalf("expected only the 5 structural items, got %d: %v", len(txn), txn)
	}
	for _, item := range txn {
		if item == models.NoAmenities {
			t.Errorf("sentinel %q must never appear as an item", models.NoAmenities)
		}
	}
}

func TestEncodeCollapsesDuplicates(t *testing.T) {
	e := NewEncoder(1, newTestLogger())
	txn := e.Encode(labeledRecord("Pool,Pool, Pool "))

	pools := 0
	for _, item := range txn {
		if item == "Pool" {
			pools++
		}
	}
	if pools != 1 {
		t.Errorf("duplicate amenity not collapsed: %v", txn)
	}
}

func TestEncodeAllPreservesOrder(t *testing.T) {
	e := NewEncoder(4, newTestLogger())

	records := make([]*models.LabeledRecord, 50)
	states := []string{"TX", "CA", "NY", "WA", "FL"}
	for i := range records {
		rec := labeledRecord(models.NoAmenities)
		rec.State = states[i%len(states)]
		records[i] = rec
	}

	transactions := e.EncodeAll(records)
	if len(transactions) != len(records) {
		t.Fatalf("expected %d transactions, got %d", len(records), len(transactions))
	}
	for i, txn := range transactions {
		if !containsItem(txn, states[i%len(states)]) {
			t.Errorf("transaction %d missing state %q: %v", i, states[i%len(states)], txn)
		}
	}
}

func TestEncodeAllCountsVocabulary(t *testing.T) {
	e := NewEncoder(2, newTestLogger())
	records := []*models.LabeledRecord{
		labeledRecord("Pool"),
		labeledRecord("Gym"),
		labeledRecord(models.NoAmenities),
	}

	e.EncodeAll(records)
	// 5 structural items shared across records + Pool + Gym.
	if got := e.DistinctItems(); got != 7 {
		t.Errorf("distinct items: got %d, want 7", got)
	}
}

func containsItem(txn models.Transaction, item string) bool {
	for _, it := range txn {
		if it == item {
			return true
		}
	}
	return false
}
