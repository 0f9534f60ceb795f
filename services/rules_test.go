package services

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"rental-miner/miner"
	"rental-miner/models"
)

func scenarioResult(t *testing.T) *miner.Result {
	t.Helper()
	m := miner.New(miner.Config{MinSupport: 0.4}, newTestLogger())
	return m.Mine([]models.Transaction{
		{"A", "B"},
		{"A", "B", "C"},
		{"A"},
		{"B", "C"},
		{"A", "B", "C"},
	})
}

func ruleKey(r *models.AssociationRule) string {
	return strings.Join(r.Antecedent, "+") + "=>" + strings.Join(r.Consequent, "+")
}

func findRule(t *testing.T, rules []*models.AssociationRule, key string) *models.AssociationRule {
	t.Helper()
	for _, r := range rules {
		if ruleKey(r) == key {
			return r
		}
	}
	t.Fatalf("rule %s not generated", key)
	return nil
}

func TestGenerateRuleCount(t *testing.T) {
	svc := NewRuleService(1.2, newTestLogger())
	rules := svc.Generate(scenarioResult(t))

	// Three 2-itemsets contribute 2 rules each; the 3-itemset contributes
	// 2^3-2 = 6.
	if len(rules) != 12 {
		t.Errorf("rule count: got %d, want 12", len(rules))
	}
}

func TestGenerateConfidence(t *testing.T) {
	svc := NewRuleService(1.2, newTestLogger())
	rules := svc.Generate(scenarioResult(t))

	r := findRule(t, rules, "A=>B")
	if math.Abs(r.Confidence-0.75) > 1e-9 {
		t.Errorf("confidence(A=>B) = %.6f; want 0.75", r.Confidence)
	}
	if math.Abs(r.Support-0.6) > 1e-9 {
		t.Errorf("support(A=>B) = %.6f; want 0.6", r.Support)
	}
	if math.Abs(r.Lift-0.9375) > 1e-9 {
		t.Errorf("lift(A=>B) = %.6f; want 0.9375", r.Lift)
	}
}

// Every emitted rule must satisfy the metric identities against the
// frequent-itemset index.
func TestGenerateMetricIdentities(t *testing.T) {
	res := scenarioResult(t)
	svc := NewRuleService(1.2, newTestLogger())

	for _, r := range svc.Generate(res) {
		union := append(append([]string{}, r.Antecedent...), r.Consequent...)
		unionSup, ok := res.Support(union)
		if !ok {
			t.Fatalf("union of %s not frequent", ruleKey(r))
		}
		antSup, _ := res.Support(r.Antecedent)
		conSup, _ := res.Support(r.Consequent)

		if math.Abs(r.Confidence-unionSup/antSup) > 1e-9 {
			t.Errorf("%s: confidence %.9f != support(union)/support(antecedent) %.9f",
				ruleKey(r), r.Confidence, unionSup/antSup)
		}
		if math.Abs(r.Lift-r.Confidence/conSup) > 1e-9 {
			t.Errorf("%s: lift %.9f != confidence/support(consequent) %.9f",
				ruleKey(r), r.Lift, r.Confidence/conSup)
		}
	}
}

func TestRankFiltersAndOrders(t *testing.T) {
	svc := NewRuleService(1.1, newTestLogger())
	ranking := svc.Rank(svc.Generate(scenarioResult(t)))

	wantOrder := []string{
		"C=>B",   // confidence 1.00, lift 1.25
		"A+C=>B", // confidence 1.00, lift 1.25 (stable tie)
		"B=>C",   // confidence 0.75, lift 1.25
		"A+B=>C", // confidence 0.67, lift 1.11
		"C=>A+B", // confidence 0.67, lift 1.11 (stable tie)
		"B=>A+C", // confidence 0.50, lift 1.25
	}

	got := make([]string, 0, ranking.Len())
	for _, r := range ranking.All() {
		got = append(got, ruleKey(r))
	}
	if !reflect.DeepEqual(got, wantOrder) {
		t.Errorf("ranking order:\n got %v\nwant %v", got, wantOrder)
	}

	for _, r := range ranking.All() {
		if r.Lift <= 1.1 {
			t.Errorf("rule %s with lift %.4f should have been filtered", ruleKey(r), r.Lift)
		}
	}
}

func TestRankDeterminism(t *testing.T) {
	svc := NewRuleService(1.1, newTestLogger())

	first := svc.Rank(svc.Generate(scenarioResult(t)))
	second := svc.Rank(svc.Generate(scenarioResult(t)))

	if !reflect.DeepEqual(first.All(), second.All()) {
		t.Error("two runs on identical input produced different rankings")
	}
}

func TestTopViews(t *testing.T) {
	svc := NewRuleService(1.1, newTestLogger())
	ranking := svc.Rank(svc.Generate(scenarioResult(t)))

	top2 := ranking.Top(2)
	if len(top2) != 2 || ruleKey(top2[0]) != "C=>B" {
		t.Errorf("Top(2) = %v", top2)
	}

	// Membership view: C=>A+B also counts because B is in its consequent.
	byB := ranking.TopByConsequent("B", 5)
	wantByB := []string{"C=>B", "A+C=>B", "C=>A+B"}
	got := make([]string, 0, len(byB))
	for _, r := range byB {
		got = append(got, ruleKey(r))
	}
	if !reflect.DeepEqual(got, wantByB) {
		t.Errorf("TopByConsequent(B) = %v; want %v", got, wantByB)
	}

	if limited := ranking.TopByConsequent("B", 1); len(limited) != 1 || ruleKey(limited[0]) != "C=>B" {
		t.Errorf("TopByConsequent(B, 1) should cap at the single best rule")
	}

	if empty := ranking.TopByConsequent("Rent_High", 5); len(empty) != 0 {
		t.Errorf("no-match view should be empty, got %v", empty)
	}

	if overflow := ranking.Top(100); len(overflow) != ranking.Len() {
		t.Errorf("Top(100) should cap at %d, got %d", ranking.Len(), len(overflow))
	}
}
