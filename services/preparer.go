package services

import (
	"regexp"
	"strconv"
	"strings"

	"rental-miner/models"
	"rental-miner/utils"
)

// numericRegexp matches a plain numeric value after thousand separators
// have been stripped ("1,000" → "1000").
var numericRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Preparer turns raw dataset rows into PreparedRecords. Rows whose price or
// square_feet cannot be coerced to a number are dropped: a data-quality
// signal, never a crash.
type Preparer struct {
	logger *utils.Logger
}

// NewPreparer creates a Preparer with the given logger.
func NewPreparer(logger *utils.Logger) *Preparer {
	return &Preparer{logger: logger}
}

// Prepare cleans raw rows and returns the records that survived coercion.
func (p *Preparer) Prepare(rows []models.RawRecord) []*models.PreparedRecord {
	result := make([]*models.PreparedRecord, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		price, ok := parseNumeric(row["price"])
		if !ok {
			p.logger.Debug("[preparer] Dropping row with non-numeric price: %q", row["price"])
			dropped++
			continue
		}
		sqft, ok := parseNumeric(row["square_feet"])
		if !ok {
			p.logger.Debug("[preparer] Dropping row with non-numeric square_feet: %q", row["square_feet"])
			dropped++
			continue
		}

		amenities := strings.TrimSpace(row["amenities"])
		if amenities == "" {
			amenities = models.NoAmenities
		}

		result = append(result, &models.PreparedRecord{
			Price:      price,
			SquareFeet: sqft,
			Bedrooms:   strings.TrimSpace(row["bedrooms"]),
			Bathrooms:  strings.TrimSpace(row["bathrooms"]),
			State:      strings.TrimSpace(row["state"]),
			Amenities:  amenities,
		})
	}

	p.logger.Info("[preparer] Prepared %d → %d records (dropped %d)",
		len(rows), len(result), dropped)
	return result
}

// parseNumeric coerces a raw field to float64, stripping comma separators
// first so artifacts like "1,000" survive.
func parseNumeric(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0, false
	}

	match := numericRegexp.FindString(raw)
	if match == "" || match != raw {
		// Partial matches ("3 rooms") are treated as missing rather than
		// silently truncated.
		return 0, false
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
