package hostenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSuite_Passes(t *testing.T) {
	suite, err := BuiltinSuite()
	require.NoError(t, err)
	require.NotEmpty(t, suite.Cases)

	for _, result := range suite.Run(NewClassifier()) {
		assert.True(t, result.Passed(), "%s: %v", result.Name, result.Mismatches)
	}
}

func TestBuiltinSuite_LegacyOrder(t *testing.T) {
	suite, err := BuiltinSuite()
	require.NoError(t, err)

	var failed []string
	for _, result := range suite.Run(NewClassifier(WithBroadOrder(BroadOrderLegacy))) {
		if !result.Passed() {
			failed = append(failed, result.Name)
		}
	}

	assert.ElementsMatch(t, []string{"safari on ios", "baidu app", "douyin", "toutiao webview"}, failed)
}

func TestParseFixtures_MergesDefaults(t *testing.T) {
	suite, err := ParseFixtures([]byte(`
defaults:
  user_agent: "Mozilla/5.0 MicroMessenger/8.0"
  miniprogram_bridge: true
cases:
  - name: inherits everything
  - name: overrides one key
    signals:
      environment_marker: miniprogram
  - name: removes a default
    signals:
      miniprogram_bridge: null
      user_agent: "Mozilla/5.0"
`))
	require.NoError(t, err)
	require.Len(t, suite.Cases, 3)

	assert.Equal(t, StaticRuntime{UA: "Mozilla/5.0 MicroMessenger/8.0", Bridge: true}, suite.Cases[0].Runtime)
	assert.Equal(t, StaticRuntime{UA: "Mozilla/5.0 MicroMessenger/8.0", Bridge: true, WxjsEnv: "miniprogram"}, suite.Cases[1].Runtime)
	assert.Equal(t, StaticRuntime{UA: "Mozilla/5.0"}, suite.Cases[2].Runtime)
}

func TestParseFixtures_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"not yaml", "cases: [", "failed to parse fixtures"},
		{"unnamed case", "cases:\n  - signals: {}\n", "case #0 has no name"},
		{"bad expectation", "cases:\n  - name: x\n    expect:\n      full: wechatPay\n", "unknown tag"},
		{"bad signal type", "cases:\n  - name: x\n    signals:\n      miniprogram_bridge: maybe\n", `case "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSuite_RunReportsMismatches(t *testing.T) {
	suite := &Suite{Cases: []FixtureCase{{
		Name:    "wrong",
		Runtime: StaticRuntime{UA: uaSafari},
		Expect:  Expectation{Full: TagWechatBrowser, Broad: BroadSafari, Overview: OverviewWxWork},
	}}}

	results := suite.Run(NewClassifier())
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed())
	assert.Equal(t, []string{
		"full: got other, want wechatBrowser",
		"overview: got non-wechat, want wxwork",
	}, results[0].Mismatches)
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cases:\n  - name: chrome\n    signals:\n      user_agent: chrome\n    expect:\n      full: other\n"), 0644))

	suite, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, suite.Cases, 1)
	assert.Equal(t, "chrome", suite.Cases[0].Name)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
