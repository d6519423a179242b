package hostenv

import (
	"regexp"

	"go.uber.org/zap"
)

var wechatVersionRegexp = regexp.MustCompile(`micromessenger/\d+`)

// EcosystemFlags are independent facts about WeChat ecosystem membership.
// Several can be true at once.
type EcosystemFlags struct {
	Ecosystem         bool `json:"ecosystem" yaml:"ecosystem"`
	WechatBrowser     bool `json:"wechat_browser" yaml:"wechat_browser"`
	MiniProgram       bool `json:"miniprogram" yaml:"miniprogram"`
	WxWork            bool `json:"wxwork" yaml:"wxwork"`
	WxWorkMiniProgram bool `json:"wxwork_miniprogram" yaml:"wxwork_miniprogram"`
	DevTools          bool `json:"devtools" yaml:"devtools"`
	OfficialAccount   bool `json:"official_account" yaml:"official_account"`
}

// EcosystemReport holds the flags and the single best-matching overview.
type EcosystemReport struct {
	Flags    EcosystemFlags `json:"flags" yaml:"flags"`
	Overview Overview       `json:"overview" yaml:"overview"`
}

// Check is one row of the ecosystem checklist.
type Check struct {
	Key         string
	Title       string
	Description string
	Value       bool
}

// Checks lists the flags in display order.
func (f EcosystemFlags) Checks() []Check {
	return []Check{
		{"wechatEcosystem", "WeChat ecosystem", "WeChat, WeChat Work or mini-program", f.Ecosystem},
		{"wechatBrowser", "WeChat in-app browser", "not a mini-program, not WeChat Work", f.WechatBrowser},
		{"wechatMiniProgram", "WeChat mini-program", "page embedded in a mini-program", f.MiniProgram},
		{"wxWork", "WeChat Work", "H5 or mini-program opened in WeChat Work", f.WxWork},
		{"wxWorkMiniProgram", "WeChat Work mini-program", "mini-program inside WeChat Work", f.WxWorkMiniProgram},
		{"wechatDevTools", "WeChat developer tools", "debugging environment", f.DevTools},
		{"wechatOfficialAccountWeb", "Official account article page", "in-app browser opened from an official account", f.OfficialAccount},
	}
}

func isWechatEcosystem(s RawSignals) bool {
	return s.RuntimePresent && s.containsAny("micromessenger", "wxwork")
}

func isWechatMiniProgram(s RawSignals) bool {
	return s.RuntimePresent && (s.contains("miniprogram") || s.MiniProgramBridge)
}

func isWxWork(s RawSignals) bool {
	return s.RuntimePresent && s.contains("wxwork")
}

func isWechatBrowser(s RawSignals) bool {
	return s.RuntimePresent && s.contains("micromessenger") && !s.contains("wxwork") && !isWechatMiniProgram(s)
}

func isWxWorkMiniProgram(s RawSignals) bool {
	return isWxWork(s) && isWechatMiniProgram(s)
}

func isWechatDevTools(s RawSignals) bool {
	return s.RuntimePresent && s.contains("micromessenger") && s.contains("devtools")
}

func isOfficialAccountWeb(s RawSignals) bool {
	return isWechatBrowser(s) && (s.contains("mpweixin") || wechatVersionRegexp.MatchString(s.UserAgent))
}

var overviewTable = mustRuleTable(
	Rule[Overview]{Name: "devtools", Priority: 10, Result: OverviewDevTools, Match: isWechatDevTools},
	Rule[Overview]{Name: "wxwork-miniprogram", Priority: 20, Result: OverviewWxWorkMiniProgram, Match: isWxWorkMiniProgram},
	Rule[Overview]{Name: "miniprogram", Priority: 30, Result: OverviewMiniProgram, Match: isWechatMiniProgram},
	Rule[Overview]{Name: "official-account", Priority: 40, Result: OverviewOfficialAccount, Match: isOfficialAccountWeb},
	Rule[Overview]{Name: "wechat-browser", Priority: 50, Result: OverviewWechatBrowser, Match: isWechatBrowser},
	Rule[Overview]{Name: "wxwork", Priority: 60, Result: OverviewWxWork, Match: isWxWork},
	Rule[Overview]{Name: "wechat-unknown", Priority: 70, Result: OverviewWechatUnknown, Match: isWechatEcosystem},
	Rule[Overview]{Name: "non-wechat", Priority: 80, Result: OverviewNonWechat, Match: always},
)

// OverviewRules returns the overview resolver table in evaluation order.
func OverviewRules() *RuleTable[Overview] {
	return overviewTable
}

// ClassifyEcosystem evaluates every ecosystem predicate and the overview.
func ClassifyEcosystem(s RawSignals) EcosystemReport {
	s = s.Normalize()

	flags := EcosystemFlags{
		Ecosystem:         isWechatEcosystem(s),
		WechatBrowser:     isWechatBrowser(s),
		MiniProgram:       isWechatMiniProgram(s),
		WxWork:            isWxWork(s),
		WxWorkMiniProgram: isWxWorkMiniProgram(s),
		DevTools:          isWechatDevTools(s),
		OfficialAccount:   isOfficialAccountWeb(s),
	}

	rule, _ := overviewTable.Evaluate(s)

	zlog.Debug("classified ecosystem",
		zap.Stringer("overview", rule.Result),
		zap.Any("flags", flags))

	return EcosystemReport{Flags: flags, Overview: rule.Result}
}
