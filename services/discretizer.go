package services

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"rental-miner/models"
	"rental-miner/utils"
)

// Fixed, ordered bin labels for the two continuous columns.
var (
	PriceLabels = []string{"Rent_Low", "Rent_Medium", "Rent_High"}
	SizeLabels  = []string{"Size_Small", "Size_Medium", "Size_Large"}
)

// Discretizer converts continuous columns into equal-frequency categorical
// bins. Boundaries come from the empirical (nearest-rank, non-interpolated)
// quantile at the configured cut probabilities; values are assigned to
// half-open [lo, hi) intervals, except the final bin is closed so the
// maximum is included. Ties on an interior boundary go to the upper bin.
type Discretizer struct {
	cutPoints []float64
	logger    *utils.Logger
}

// NewDiscretizer creates a Discretizer for the given quantile probabilities,
// which must start at 0 and end at 1 (e.g. {0, 1/3, 2/3, 1} for three bins).
func NewDiscretizer(cutPoints []float64, logger *utils.Logger) *Discretizer {
	return &Discretizer{cutPoints: cutPoints, logger: logger}
}

// Boundaries computes the quantile cut values for a column. The result has
// len(cutPoints) entries; with low-cardinality columns adjacent boundaries
// may repeat, which simply leaves the duplicated lower bins empty.
func (d *Discretizer) Boundaries(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	bounds := make([]float64, len(d.cutPoints))
	for i, p := range d.cutPoints {
		bounds[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return bounds
}

// Assign maps a single value to its bin label. Scanning boundaries from the
// top down puts boundary ties in the upper bin and keeps degenerate
// (repeated) boundaries from ever claiming a value.
func (d *Discretizer) Assign(v float64, bounds []float64, labels []string) string {
	for i := len(labels) - 1; i >= 1; i-- {
		if v >= bounds[i] {
			return labels[i]
		}
	}
	return labels[0]
}

// Label discretizes the price and square_feet columns of the prepared
// records and attaches the verbatim bedroom/bathroom count labels.
func (d *Discretizer) Label(records []*models.PreparedRecord) []*models.LabeledRecord {
	if len(records) == 0 {
		return nil
	}

	prices := make([]float64, len(records))
	sizes := make([]float64, len(records))
	for i, r := range records {
		prices[i] = r.Price
		sizes[i] = r.SquareFeet
	}

	priceBounds := d.Boundaries(prices)
	sizeBounds := d.Boundaries(sizes)
	d.logger.Debug("[discretizer] price bounds: %v | size bounds: %v", priceBounds, sizeBounds)

	labeled := make([]*models.LabeledRecord, len(records))
	for i, r := range records {
		labeled[i] = &models.LabeledRecord{
			PriceBin:  d.Assign(r.Price, priceBounds, PriceLabels),
			SizeBin:   d.Assign(r.SquareFeet, sizeBounds, SizeLabels),
			BedLabel:  CountLabel(r.Bedrooms, "Beds"),
			BathLabel: CountLabel(r.Bathrooms, "Baths"),
			State:     r.State,
			Amenities: r.Amenities,
		}
	}

	d.logger.Info("[discretizer] Labeled %d records into %d price / %d size bins",
		len(labeled), len(PriceLabels), len(SizeLabels))
	return labeled
}

// CountLabel converts a count-style value verbatim to a suffixed label,
// e.g. "2" → "2_Beds". No numeric binning is applied.
func CountLabel(value, suffix string) string {
	return strings.TrimSpace(value) + "_" + suffix
}
