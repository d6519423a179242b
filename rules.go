package hostenv

import (
	"fmt"
	"slices"
)

// Rule maps a predicate over a snapshot to a result. Lower priorities are
// evaluated first.
type Rule[T any] struct {
	Name     string
	Priority int
	Match    func(RawSignals) bool
	Result   T
}

// RuleTable is an ordered, first-match-wins list of rules.
type RuleTable[T any] struct {
	rules []Rule[T]
}

// NewRuleTable validates rules and orders them by priority.
func NewRuleTable[T any](rules ...Rule[T]) (*RuleTable[T], error) {
	names := make(map[string]bool, len(rules))
	priorities := make(map[int]string, len(rules))

	for i, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule #%d has no name", i)
		}
		if rule.Match == nil {
			return nil, fmt.Errorf("rule %q has no predicate", rule.Name)
		}
		if names[rule.Name] {
			return nil, fmt.Errorf("duplicate rule name %q", rule.Name)
		}
		if other, found := priorities[rule.Priority]; found {
			return nil, fmt.Errorf("rules %q and %q share priority %d", other, rule.Name, rule.Priority)
		}
		names[rule.Name] = true
		priorities[rule.Priority] = rule.Name
	}

	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule[T]) int {
		return a.Priority - b.Priority
	})

	return &RuleTable[T]{rules: sorted}, nil
}

func mustRuleTable[T any](rules ...Rule[T]) *RuleTable[T] {
	table, err := NewRuleTable(rules...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in rule table: %s", err))
	}
	return table
}

// Evaluate returns the first rule matching s.
func (t *RuleTable[T]) Evaluate(s RawSignals) (Rule[T], bool) {
	for _, rule := range t.rules {
		if rule.Match(s) {
			return rule, true
		}
	}
	return Rule[T]{}, false
}

// Rules returns the rules in evaluation order.
func (t *RuleTable[T]) Rules() []Rule[T] {
	return slices.Clone(t.rules)
}

// Names returns rule names in evaluation order.
func (t *RuleTable[T]) Names() []string {
	names := make([]string, len(t.rules))
	for i, rule := range t.rules {
		names[i] = rule.Name
	}
	return names
}

func always(RawSignals) bool { return true }
