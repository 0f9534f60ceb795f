package services

import (
	"sort"
	"strings"

	"rental-miner/models"
	"rental-miner/utils"
)

// Encoder converts labeled records into transactions, the symbolic item
// baskets the miner consumes. Encoding is a pure per-record function, so
// records are mapped in parallel; the shared StringSet only accumulates the
// global item vocabulary for reporting.
type Encoder struct {
	maxWorkers int
	logger     *utils.Logger
	vocab      *utils.StringSet
}

// NewEncoder creates an Encoder that fans out over maxWorkers goroutines.
func NewEncoder(maxWorkers int, logger *utils.Logger) *Encoder {
	return &Encoder{
		maxWorkers: maxWorkers,
		logger:     logger,
		vocab:      utils.NewStringSet(),
	}
}

// Encode builds the transaction for one labeled record: the five structural
// items plus one item per amenity. Duplicates collapse and the result is
// sorted, so the transaction is a canonical item set.
func (e *Encoder) Encode(rec *models.LabeledRecord) models.Transaction {
	basket := make(map[string]struct{}, 8)
	for _, item := range []string{rec.PriceBin, rec.SizeBin, rec.BedLabel, rec.BathLabel, rec.State} {
		if item != "" {
			basket[item] = struct{}{}
		}
	}

	if rec.Amenities != models.NoAmenities {
		for _, piece := range strings.Split(rec.Amenities, ",") {
			if amenity := strings.TrimSpace(piece); amenity != "" {
				basket[amenity] = struct{}{}
			}
		}
	}

	txn := make(models.Transaction, 0, len(basket))
	for item := range basket {
		txn = append(txn, item)
	}
	sort.Strings(txn)
	return txn
}

// EncodeAll maps every record to its transaction. Output order matches
// input order regardless of worker scheduling.
func (e *Encoder) EncodeAll(records []*models.LabeledRecord) []models.Transaction {
	transactions := make([]models.Transaction, len(records))

	pool := utils.NewWorkerPool(e.maxWorkers)
	for i, rec := range records {
		i, rec := i, rec
		pool.Submit(func() {
			txn := e.Encode(rec)
			transactions[i] = txn
			for _, item := range txn {
				e.vocab.Add(item)
			}
		})
	}
	pool.Wait()

	e.logger.Info("[encoder] Encoded %d transactions — %d distinct items",
		len(transactions), e.vocab.Size())
	return transactions
}

// DistinctItems returns the size of the item vocabulary seen so far.
func (e *Encoder) DistinctItems() int {
	return e.vocab.Size()
}
