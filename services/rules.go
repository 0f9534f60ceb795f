package services

import (
	"sort"

	"rental-miner/miner"
	"rental-miner/models"
	"rental-miner/utils"
)

// RuleService expands frequent itemsets into scored association rules and
// ranks the ones that clear the lift threshold.
type RuleService struct {
	minLift float64
	logger  *utils.Logger
}

// NewRuleService creates a RuleService with the given lift threshold.
func NewRuleService(minLift float64, logger *utils.Logger) *RuleService {
	return &RuleService{minLift: minLift, logger: logger}
}

// Generate emits every ordered rule derivable from the frequent itemsets:
// for each itemset of size >= 2, all 2^k-2 partitions into a non-empty
// antecedent and consequent. Both halves are subsets of a frequent itemset,
// hence frequent themselves, so their supports come straight from the
// miner's index. No confidence floor is applied here.
func (s *RuleService) Generate(res *miner.Result) []*models.AssociationRule {
	var rules []*models.AssociationRule

	for _, set := range res.Itemsets {
		k := len(set.Items)
		if k < 2 {
			continue
		}

		for mask := 1; mask < (1<<k)-1; mask++ {
			antecedent := make([]string, 0, k-1)
			consequent := make([]string, 0, k-1)
			for i, item := range set.Items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}

			antSup, ok := res.Support(antecedent)
			if !ok || antSup == 0 {
				continue
			}
			conSup, ok := res.Support(consequent)
			if !ok || conSup == 0 {
				continue
			}

			confidence := set.Support / antSup
			rules = append(rules, &models.AssociationRule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    set.Support,
				Confidence: confidence,
				Lift:       confidence / conSup,
			})
		}
	}

	s.logger.Info("[rules] Generated %d candidate rules", len(rules))
	return rules
}

// Rank filters rules by lift (strictly greater than the threshold) and
// orders them by confidence descending, then lift descending. The sort is
// stable over the deterministic generation order, so equal-metric rules
// keep a reproducible ranking.
func (s *RuleService) Rank(rules []*models.AssociationRule) *Ranking {
	kept := make([]*models.AssociationRule, 0, len(rules))
	for _, r := range rules {
		if r.Lift > s.minLift {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Confidence != kept[j].Confidence {
			return kept[i].Confidence > kept[j].Confidence
		}
		return kept[i].Lift > kept[j].Lift
	})

	s.logger.Info("[rules] %d rules passed lift > %.2f", len(kept), s.minLift)
	return &Ranking{rules: kept}
}

// Ranking is a filtered, ordered rule set with top-N query views.
type Ranking struct {
	rules []*models.AssociationRule
}

// All returns the full ranked rule list.
func (r *Ranking) All() []*models.AssociationRule {
	return r.rules
}

// Len returns the number of ranked rules.
func (r *Ranking) Len() int {
	return len(r.rules)
}

// Top returns the n best rules, or fewer if the ranking is shorter.
func (r *Ranking) Top(n int) []*models.AssociationRule {
	if n > len(r.rules) {
		n = len(r.rules)
	}
	return r.rules[:n]
}

// TopByConsequent returns the n best rules whose consequent contains the
// target item. No matches yields an empty slice, never an error.
func (r *Ranking) TopByConsequent(item string, n int) []*models.AssociationRule {
	var matched []*models.AssociationRule
	for _, rule := range r.rules {
		for _, c := range rule.Consequent {
			if c == item {
				matched = append(matched, rule)
				break
			}
		}
		if len(matched) == n {
			break
		}
	}
	return matched
}
