package hostenv

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrUnknownBroadOrder = errors.New("unknown broad order")

// BroadOrder selects where the Safari and content-app rules sit relative to
// the generic browser fallback.
type BroadOrder string

const (
	// BroadOrderCorrected evaluates content apps and Safari before the
	// generic browser fallback.
	BroadOrderCorrected BroadOrder = "corrected"

	// BroadOrderLegacy keeps the historical order, where the generic
	// fallback claims every runtime first and the later rules never fire.
	BroadOrderLegacy BroadOrder = "legacy"
)

func ParseBroadOrder(s string) (BroadOrder, error) {
	switch BroadOrder(s) {
	case "", BroadOrderCorrected:
		return BroadOrderCorrected, nil
	case BroadOrderLegacy:
		return BroadOrderLegacy, nil
	default:
		return "", fmt.Errorf("broad order %q (expected %q or %q): %w", s, BroadOrderCorrected, BroadOrderLegacy, ErrUnknownBroadOrder)
	}
}

// Rule names shared by both broad orders.
const (
	RuleNoRuntime         = "no-runtime"
	RuleWechatMiniProgram = "wechat-miniprogram"
	RuleFallback          = "fallback"
)

// BroadResult is the broad category and the name of the rule that chose it.
type BroadResult struct {
	Category BroadCategory `json:"category" yaml:"category"`
	Rule     string        `json:"rule" yaml:"rule"`
}

func isHuaweiBrowser(s RawSignals) bool {
	return s.contains("huaweibrowser") || (s.contains("huawei") && s.contains("browser"))
}

// isSafari requires "safari" without the markers of browsers that embed
// the same engine.
func isSafari(s RawSignals) bool {
	return s.contains("safari") && !s.containsAny("chrome", "edge", "brave")
}

func substrings(substrs ...string) func(RawSignals) bool {
	return func(s RawSignals) bool { return s.containsAny(substrs...) }
}

func broadRules(order BroadOrder) []Rule[BroadCategory] {
	// Legacy: Safari, then content apps, all after the generic fallback.
	// Corrected: content apps, then Safari, right after the named vendors.
	safari, baiduApp, byteDance := 90, 91, 92
	if order == BroadOrderCorrected {
		baiduApp, byteDance, safari = 75, 76, 77
	}

	return []Rule[BroadCategory]{
		{Name: RuleNoRuntime, Priority: 0, Result: BroadUnknown, Match: func(s RawSignals) bool {
			return !s.RuntimePresent
		}},
		{Name: RuleWechatMiniProgram, Priority: 10, Result: BroadUnknown, Match: func(s RawSignals) bool {
			return s.MiniProgramBridge
		}},
		{Name: "wechat-browser", Priority: 20, Result: BroadWechatBrowser, Match: func(s RawSignals) bool {
			return s.contains("micromessenger") && !s.MiniProgramBridge
		}},
		{Name: "huawei-browser", Priority: 30, Result: BroadHuawei, Match: isHuaweiBrowser},
		{Name: "qq-browser", Priority: 40, Result: BroadQQ, Match: substrings("qqbrowser", "mqqbrowser")},
		{Name: "quark-browser", Priority: 50, Result: BroadQuark, Match: substrings("quark")},
		{Name: "vivo-browser", Priority: 60, Result: BroadVivo, Match: substrings("vivobrowser")},
		{Name: "baidu-browser", Priority: 70, Result: BroadBaiduBrowser, Match: substrings("baidubrowser")},
		{Name: "baidu-app", Priority: baiduApp, Result: BroadBaiduApp, Match: substrings("baiduboxapp")},
		{Name: "bytedance-app", Priority: byteDance, Result: BroadByteDanceApp, Match: substrings("douyin", "aweme", "bytedancewebview", "tiktok")},
		{Name: "safari", Priority: safari, Result: BroadSafari, Match: isSafari},
		{Name: "other-browser", Priority: 80, Result: BroadOtherBrowser, Match: func(s RawSignals) bool {
			return s.RuntimePresent
		}},
		{Name: RuleFallback, Priority: 1000, Result: BroadUnknown, Match: always},
	}
}

var broadTables = map[BroadOrder]*RuleTable[BroadCategory]{
	BroadOrderCorrected: mustRuleTable(broadRules(BroadOrderCorrected)...),
	BroadOrderLegacy:    mustRuleTable(broadRules(BroadOrderLegacy)...),
}

// BroadRules returns the broad rule table for order in evaluation order.
// Unknown orders get the corrected table.
func BroadRules(order BroadOrder) *RuleTable[BroadCategory] {
	if table, found := broadTables[order]; found {
		return table
	}
	return broadTables[BroadOrderCorrected]
}

// ClassifyBroad resolves the coarse browser identity of s.
func ClassifyBroad(s RawSignals, order BroadOrder) BroadResult {
	s = s.Normalize()

	rule, _ := BroadRules(order).Evaluate(s)
	result := BroadResult{Category: rule.Result, Rule: rule.Name}

	zlog.Debug("classified broad category",
		zap.String("order", string(order)),
		zap.Stringer("category", result.Category),
		zap.String("rule", result.Rule))

	return result
}
