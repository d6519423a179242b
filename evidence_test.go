package hostenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain_EveryTagHasATemplate(t *testing.T) {
	for _, tag := range AllTags() {
		assert.NotEqual(t, GenericEvidence, Explain(tag), tag.String())
	}
	for _, overview := range AllOverviews() {
		assert.NotEqual(t, GenericEvidence, Explain(overview), overview.String())
	}
}

func TestExplain_EveryReachableBroadCategoryHasATemplate(t *testing.T) {
	for _, category := range AllBroadCategories() {
		if category == BroadUnknown {
			continue
		}
		assert.NotEqual(t, GenericEvidence, Explain(category), category.String())
	}
}

func TestExplainBroad_NamesMatchedSubstrings(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"safari", uaSafari, `"safari"`},
		{"vivo", uaVivo, `"vivobrowser"`},
		{"baidu browser", uaBaiduBrowse, `"baidubrowser"`},
		{"baidu app", uaBaiduApp, `"baiduboxapp"`},
		{"toutiao", uaToutiao, `"bytedancewebview"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := ExplainBroad(ClassifyBroad(browser(tt.ua), BroadOrderCorrected))
			assert.NotEqual(t, GenericEvidence, text)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestExplain_Generic(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"unknown tag", EnvironmentTag("wechatPay")},
		{"unknown overview", Overview("alipay")},
		{"plain string", "wechatBrowser"},
		{"broad unknown", BroadUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, GenericEvidence, Explain(tt.in))
		})
	}
}

func TestExplainBroad(t *testing.T) {
	handoff := ClassifyBroad(RawSignals{UserAgent: uaWechatIOS, MiniProgramBridge: true, RuntimePresent: true}, BroadOrderCorrected)
	assert.Equal(t, miniProgramHandoff, ExplainBroad(handoff))
	assert.Equal(t, miniProgramHandoff, Explain(handoff))

	noRuntime := ClassifyBroad(NoRuntimeSignals(), BroadOrderCorrected)
	assert.Equal(t, GenericEvidence, ExplainBroad(noRuntime))

	wechat := ClassifyBroad(browser(uaWechatIOS), BroadOrderCorrected)
	assert.Contains(t, ExplainBroad(wechat), `"micromessenger"`)
}

func TestEvidenceLines(t *testing.T) {
	lines := EvidenceLines(Explain(TagWechatGame))
	assert.Len(t, lines, 3)
	assert.Equal(t, `1. User agent contains "micromessenger" (WeChat marker).`, lines[0])
	assert.Equal(t, `3. wx.createGameContext is a function (mini-game only API).`, lines[2])

	assert.Equal(t, []string{"a", "b"}, EvidenceLines("  a\n\n b \n"))
	assert.Nil(t, EvidenceLines(""))
}
