package models

// NoAmenities is the sentinel stored when a listing has no amenities value.
// It never appears as a transaction item.
const NoAmenities = "NoAmenities"

// RawRecord holds one unparsed dataset row, keyed by column name.
// Only the columns selected for the analysis are kept.
type RawRecord map[string]string

// PreparedRecord is a cleaned listing ready for discretization.
// Price and SquareFeet are guaranteed numeric; rows that failed coercion
// were dropped during preparation.
type PreparedRecord struct {
	Price      float64
	SquareFeet float64
	Bedrooms   string
	Bathrooms  string
	State      string
	Amenities  string // NoAmenities sentinel when the source value was missing
}

// LabeledRecord is a PreparedRecord after discretization: every field is a
// categorical label ready for transaction encoding.
type LabeledRecord struct {
	PriceBin  string
	SizeBin   string
	BedLabel  string
	BathLabel string
	State     string
	Amenities string
}

// Transaction is the set of items derived from exactly one listing,
// stored sorted and deduplicated.
type Transaction []string

// Itemset is a set of items together with its support, the fraction of
// transactions containing it as a subset.
type Itemset struct {
	Items   []string // sorted
	Support float64
}

// AssociationRule is an ordered split of a frequent itemset into a non-empty
// antecedent and consequent, with its derived metrics.
type AssociationRule struct {
	Antecedent []string
	Consequent []string
	Support    float64
	Confidence float64
	Lift       float64
}

// MiningStats summarizes a pipeline run for reporting.
type MiningStats struct {
	RawRows          int
	PreparedRows     int
	Transactions     int
	DistinctItems    int
	FrequentItemsets int
	CandidateRules   int
	RankedRules      int
}
