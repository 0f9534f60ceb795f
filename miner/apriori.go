// Package miner implements level-wise frequent-itemset discovery (Apriori)
// over an in-memory transaction database.
//
// Candidates of size k+1 are generated by joining frequent k-itemsets that
// share a common (k-1)-prefix under lexicographic item order, then pruned
// by downward closure: any candidate with an infrequent k-subset cannot be
// frequent, so it is discarded before the counting scan. Support counting
// partitions the transactions across workers with local count tables merged
// by addition.
package miner

import (
	"sort"
	"strings"

	"rental-miner/models"
	"rental-miner/utils"
)

// keySep joins sorted items into index keys; the separator cannot occur in
// a trimmed token.
const keySep = "\x1f"

// parallelThreshold is the transaction count below which a counting scan
// runs sequentially; goroutine fan-out costs more than it saves on small
// databases.
const parallelThreshold = 2048

// Config holds the mining thresholds. Zero values are replaced by the
// documented defaults.
type Config struct {
	MinSupport float64 // minimum itemset support in (0,1], default 0.05
	MaxLength  int     // maximum itemset size, default 10
	Workers    int     // parallelism for support counting, default 1
}

// Miner discovers all itemsets meeting the support floor.
type Miner struct {
	cfg    Config
	logger *utils.Logger
}

// New creates a Miner with the given thresholds.
func New(cfg Config, logger *utils.Logger) *Miner {
	if cfg.MinSupport <= 0 {
		cfg.MinSupport = 0.05
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 10
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Miner{cfg: cfg, logger: logger}
}

// Result holds every frequent itemset found in a run, with an index for
// constant-time support lookups during rule generation.
type Result struct {
	Itemsets []models.Itemset
	index    map[string]float64
}

// Support returns the support of a frequent itemset, or false if the
// itemset is not frequent. Items may be given in any order.
func (r *Result) Support(items []string) (float64, bool) {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	sup, ok := r.index[strings.Join(sorted, keySep)]
	return sup, ok
}

// Mine runs the level-wise search over the transaction database. An empty
// database yields an empty Result, never an error. The output is fully
// deterministic: itemsets appear level by level, lexicographically ordered
// within each level.
func (m *Miner) Mine(transactions []models.Transaction) *Result {
	result := &Result{index: make(map[string]float64)}

	total := len(transactions)
	if total == 0 {
		m.logger.Warn("[miner] Empty transaction database — nothing to mine")
		return result
	}

	db := normalize(transactions)

	// Level 1: count every distinct item.
	counts := make(map[string]int)
	for _, txn := range db {
		for _, item := range txn {
			counts[item]++
		}
	}

	var level [][]string
	for item, count := range counts {
		if support(count, total) >= m.cfg.MinSupport {
			level = append(level, []string{item})
		}
	}
	sortItemsets(level)
	for _, set := range level {
		m.record(result, set, support(counts[set[0]], total))
	}
	m.logger.Debug("[miner] level 1: %d distinct items → %d frequent", len(counts), len(level))

	// Levels k → k+1.
	for k := 1; k < m.cfg.MaxLength && len(level) > 0; k++ {
		frequent := make(map[string]struct{}, len(level))
		for _, set := range level {
			frequent[strings.Join(set, keySep)] = struct{}{}
		}

		candidates := m.generateCandidates(level, frequent)
		if len(candidates) == 0 {
			break
		}

		candidateCounts := m.countCandidates(db, candidates)

		var next [][]string
		for i, cand := range candidates {
			sup := support(candidateCounts[i], total)
			if sup >= m.cfg.MinSupport {
				next = append(next, cand)
				m.record(result, cand, sup)
			}
		}
		m.logger.Debug("[miner] level %d: %d candidates → %d frequent", k+1, len(candidates), len(next))
		level = next
	}

	m.logger.Info("[miner] Found %d frequent itemsets (minSupport=%.3f, maxLength=%d)",
		len(result.Itemsets), m.cfg.MinSupport, m.cfg.MaxLength)
	return result
}

func (m *Miner) record(result *Result, items []string, sup float64) {
	result.Itemsets = append(result.Itemsets, models.Itemset{Items: items, Support: sup})
	result.index[strings.Join(items, keySep)] = sup
}

// generateCandidates joins pairs of frequent k-itemsets sharing a (k-1)-
// prefix. The input is sorted, so joining i<j always appends the two tail
// items in order and never produces a duplicate candidate. Candidates with
// any infrequent k-subset are pruned before counting.
func (m *Miner) generateCandidates(level [][]string, frequent map[string]struct{}) [][]string {
	k := len(level[0])
	var candidates [][]string

	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			if !samePrefix(level[i], level[j], k-1) {
				// level is sorted, so no later j can share the prefix either.
				break
			}

			cand := make([]string, 0, k+1)
			cand = append(cand, level[i]...)
			cand = append(cand, level[j][k-1])

			if m.allSubsetsFrequent(cand, frequent) {
				candidates = append(candidates, cand)
			}
		}
	}
	return candidates
}

// allSubsetsFrequent applies downward-closure pruning: every size-k subset
// of a size-(k+1) candidate must itself be frequent.
func (m *Miner) allSubsetsFrequent(cand []string, frequent map[string]struct{}) bool {
	sub := make([]string, 0, len(cand)-1)
	for skip := range cand {
		sub = sub[:0]
		for i, item := range cand {
			if i != skip {
				sub = append(sub, item)
			}
		}
		if _, ok := frequent[strings.Join(sub, keySep)]; !ok {
			return false
		}
	}
	return true
}

// countCandidates scans the database once, returning per-candidate
// occurrence counts. Large databases are partitioned across the worker
// pool; each worker fills a local count table and the tables are summed.
func (m *Miner) countCandidates(db []models.Transaction, candidates [][]string) []int {
	if m.cfg.Workers <= 1 || len(db) < parallelThreshold {
		counts := make([]int, len(candidates))
		countPartition(db, candidates, counts)
		return counts
	}

	workers := m.cfg.Workers
	partials := make([][]int, workers)
	chunk := (len(db) + workers - 1) / workers

	pool := utils.NewWorkerPool(workers)
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > len(db) {
			hi = len(db)
		}
		if lo >= hi {
			partials[w] = make([]int, len(candidates))
			continue
		}
		pool.Submit(func() {
			local := make([]int, len(candidates))
			countPartition(db[lo:hi], candidates, local)
			partials[w] = local
		})
	}
	pool.Wait()

	counts := make([]int, len(candidates))
	for _, local := range partials {
		for i, c := range local {
			counts[i] += c
		}
	}
	return counts
}

func countPartition(db []models.Transaction, candidates [][]string, counts []int) {
	for _, txn := range db {
		for i, cand := range candidates {
			if isSubset(cand, txn) {
				counts[i]++
			}
		}
	}
}

// isSubset reports whether every item of sub occurs in txn. Both slices
// are sorted, so a single merge pass suffices.
func isSubset(sub []string, txn models.Transaction) bool {
	j := 0
	for _, want := range sub {
		for j < len(txn) && txn[j] < want {
			j++
		}
		if j >= len(txn) || txn[j] != want {
			return false
		}
		j++
	}
	return true
}

// normalize returns the database with each transaction sorted and
// deduplicated, establishing the fixed total item order the join step
// relies on. Transactions already in canonical form are reused as-is.
func normalize(transactions []models.Transaction) []models.Transaction {
	db := make([]models.Transaction, len(transactions))
	for i, txn := range transactions {
		if isCanonical(txn) {
			db[i] = txn
			continue
		}
		seen := make(map[string]struct{}, len(txn))
		canon := make(models.Transaction, 0, len(txn))
		for _, item := range txn {
			if _, dup := seen[item]; !dup {
				seen[item] = struct{}{}
				canon = append(canon, item)
			}
		}
		sort.Strings(canon)
		db[i] = canon
	}
	return db
}

func isCanonical(txn models.Transaction) bool {
	for i := 1; i < len(txn); i++ {
		if txn[i] <= txn[i-1] {
			return false
		}
	}
	return true
}

func samePrefix(a, b []string, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func support(count, total int) float64 {
	return float64(count) / float64(total)
}

func sortItemsets(sets [][]string) {
	sort.Slice(sets, func(i, j int) bool {
		a, b := sets[i], sets[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
