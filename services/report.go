package services

import (
	"fmt"
	"strings"

	"rental-miner/models"
	"rental-miner/utils"
)

// ReportService prints the ranked association rules to the console.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Print renders the run overview, the overall top rules, and one section
// per target consequent item ("what leads to Rent_High / Rent_Low").
func (s *ReportService) Print(stats models.MiningStats, ranking *Ranking, targets []string, topN, topTargetN int) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 RENTAL LISTING ASSOCIATION RULES\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Rows loaded        : \033[1m%d\033[0m (%d prepared)\n", stats.RawRows, stats.PreparedRows)
	fmt.Printf("  Transactions       : \033[1m%d\033[0m\n", stats.Transactions)
	fmt.Printf("  Distinct items     : \033[1m%d\033[0m\n", stats.DistinctItems)
	fmt.Printf("  Frequent itemsets  : \033[1m%d\033[0m\n", stats.FrequentItemsets)
	fmt.Printf("  Candidate rules    : \033[1m%d\033[0m\n", stats.CandidateRules)
	fmt.Printf("  Rules past filter  : \033[1m%d\033[0m\n", stats.RankedRules)
	fmt.Println()

	// Top rules overall
	fmt.Printf("\033[1;33m  Top %d Rules\033[0m\n", topN)
	fmt.Printf("  %s\n", thin)
	printRules(ranking.Top(topN))
	fmt.Println()

	// Target views
	for _, target := range targets {
		fmt.Printf("\033[1;33m  What leads to %s?\033[0m\n", target)
		fmt.Printf("  %s\n", thin)
		rules := ranking.TopByConsequent(target, topTargetN)
		if len(rules) == 0 {
			fmt.Printf("  No strong rules found pointing to %s with current thresholds\n", target)
		} else {
			printRules(rules)
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printRules(rules []*models.AssociationRule) {
	if len(rules) == 0 {
		fmt.Printf("  No rules found\n")
		return
	}
	for i, r := range rules {
		fmt.Printf("  \033[1m%2d.\033[0m %s \033[1;36m⇒\033[0m %s\n",
			i+1, formatItems(r.Antecedent), formatItems(r.Consequent))
		fmt.Printf("      support \033[1;32m%.3f\033[0m | confidence \033[1;32m%.3f\033[0m | lift \033[1;32m%.3f\033[0m\n",
			r.Support, r.Confidence, r.Lift)
	}
}

// formatItems renders an itemset as "A + B + C", truncated for display.
func formatItems(items []string) string {
	return truncate(strings.Join(items, " + "), 52)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
