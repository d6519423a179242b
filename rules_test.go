package hostenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleTable_Validation(t *testing.T) {
	match := func(RawSignals) bool { return true }

	tests := []struct {
		name    string
		rules   []Rule[string]
		wantErr string
	}{
		{
			name:    "missing name",
			rules:   []Rule[string]{{Priority: 1, Match: match}},
			wantErr: "has no name",
		},
		{
			name:    "missing predicate",
			rules:   []Rule[string]{{Name: "a", Priority: 1}},
			wantErr: "has no predicate",
		},
		{
			name:    "duplicate name",
			rules:   []Rule[string]{{Name: "a", Priority: 1, Match: match}, {Name: "a", Priority: 2, Match: match}},
			wantErr: "duplicate rule name",
		},
		{
			name:    "duplicate priority",
			rules:   []Rule[string]{{Name: "a", Priority: 1, Match: match}, {Name: "b", Priority: 1, Match: match}},
			wantErr: "share priority 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuleTable(tt.rules...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRuleTable_FirstMatchByPriority(t *testing.T) {
	table, err := NewRuleTable(
		Rule[string]{Name: "fallback", Priority: 100, Result: "fallback", Match: always},
		Rule[string]{Name: "wechat", Priority: 10, Result: "wechat", Match: func(s RawSignals) bool {
			return s.contains("micromessenger")
		}},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"wechat", "fallback"}, table.Names())

	rule, found := table.Evaluate(RawSignals{UserAgent: "micromessenger/8.0"})
	require.True(t, found)
	assert.Equal(t, "wechat", rule.Result)

	rule, found = table.Evaluate(RawSignals{UserAgent: "mozilla/5.0"})
	require.True(t, found)
	assert.Equal(t, "fallback", rule.Result)
}

func TestRuleTable_NoMatch(t *testing.T) {
	table, err := NewRuleTable(Rule[int]{Name: "never", Match: func(RawSignals) bool { return false }})
	require.NoError(t, err)

	_, found := table.Evaluate(RawSignals{})
	assert.False(t, found)
}

func TestRuleTable_RulesIsACopy(t *testing.T) {
	rules := FullRules().Rules()
	rules[0].Result = TagWechatGame

	assert.Equal(t, TagOther, FullRules().Rules()[0].Result)
}
