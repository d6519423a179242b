package hostenv

import (
	"go.uber.org/zap"
)

// FullResult is the resolved tag and the rule that produced it.
type FullResult struct {
	Tag  EnvironmentTag `json:"tag" yaml:"tag"`
	Rule string         `json:"rule" yaml:"rule"`
}

// The resolver is a flat decision tree; each nested branch of it is one
// rule here, so that the first match is also the only terminal.
var fullTable = mustRuleTable(
	Rule[EnvironmentTag]{Name: "non-wechat", Priority: 10, Result: TagOther, Match: func(s RawSignals) bool {
		return !s.contains("micromessenger")
	}},
	Rule[EnvironmentTag]{Name: "wxwork-miniprogram", Priority: 20, Result: TagWxWorkMiniProgram, Match: func(s RawSignals) bool {
		return s.contains("wxwork") && s.MiniProgramContext()
	}},
	Rule[EnvironmentTag]{Name: "wxwork-h5", Priority: 30, Result: TagWxWorkH5, Match: func(s RawSignals) bool {
		return s.contains("wxwork")
	}},
	Rule[EnvironmentTag]{Name: "wechat-game", Priority: 40, Result: TagWechatGame, Match: func(s RawSignals) bool {
		return s.MiniProgramContext() && s.GameContextAPI
	}},
	Rule[EnvironmentTag]{Name: "wechat-miniprogram", Priority: 50, Result: TagWechatMiniProgram, Match: func(s RawSignals) bool {
		return s.MiniProgramContext()
	}},
	Rule[EnvironmentTag]{Name: "miniprogram-webview", Priority: 60, Result: TagWechatMiniProgramWebView, Match: func(s RawSignals) bool {
		return s.contains("miniprogram") && s.MiniProgramBridge
	}},
	Rule[EnvironmentTag]{Name: "video-h5", Priority: 70, Result: TagWechatVideoH5, Match: func(s RawSignals) bool {
		return s.contains("videoapp")
	}},
	Rule[EnvironmentTag]{Name: "wechat-browser", Priority: 80, Result: TagWechatBrowser, Match: always},
)

// FullRules returns the full-environment table in evaluation order.
func FullRules() *RuleTable[EnvironmentTag] {
	return fullTable
}

// ResolveFull picks exactly one EnvironmentTag for s.
func ResolveFull(s RawSignals) FullResult {
	s = s.Normalize()

	rule, _ := fullTable.Evaluate(s)
	result := FullResult{Tag: rule.Result, Rule: rule.Name}

	zlog.Debug("resolved full environment",
		zap.Stringer("tag", result.Tag),
		zap.String("rule", result.Rule))

	return result
}

// ResolveFullEnvironment is ResolveFull without the rule name.
func ResolveFullEnvironment(s RawSignals) EnvironmentTag {
	return ResolveFull(s).Tag
}
