package hostenv

import (
	"strings"
)

// GenericEvidence is returned for anything without a dedicated template.
const GenericEvidence = "No specific signature matched: no browser or mini-program characteristics were recognized."

var fullEvidence = map[EnvironmentTag]string{
	TagWechatBrowser: `1. User agent contains "micromessenger" (WeChat marker).
2. User agent does not contain "wxwork" (not WeChat Work).
3. __wxjs_environment is not "miniprogram" (not a native mini-program).
4. No mini-program webview bridge and no "videoapp" marker.`,

	TagWechatMiniProgram: `1. User agent contains "micromessenger" (WeChat marker).
2. __wxjs_environment is "miniprogram".
3. wx.createGameContext is not available (not a mini-game).`,

	TagWechatMiniProgramWebView: `1. User agent contains "micromessenger" (WeChat marker).
2. User agent contains "miniprogram".
3. wx.miniProgram bridge object is present (page is hosted in a mini-program web-view).
4. __wxjs_environment is not "miniprogram".`,

	TagWxWorkH5: `1. User agent contains "micromessenger" (WeChat marker).
2. User agent contains "wxwork" (WeChat Work marker).
3. __wxjs_environment is not "miniprogram" (H5 page, not a mini-program).`,

	TagWxWorkMiniProgram: `1. User agent contains "micromessenger" (WeChat marker).
2. User agent contains "wxwork" (WeChat Work marker).
3. __wxjs_environment is "miniprogram".`,

	TagWechatGame: `1. User agent contains "micromessenger" (WeChat marker).
2. __wxjs_environment is "miniprogram".
3. wx.createGameContext is a function (mini-game only API).`,

	TagWechatVideoH5: `1. User agent contains "micromessenger" (WeChat marker).
2. No WeChat Work, mini-program or webview marker matched.
3. User agent contains "videoapp" (Channels embedded H5).`,

	TagOther: `1. User agent does not contain "micromessenger".
2. Capability flags alone never imply WeChat membership.`,
}

var broadEvidence = map[BroadCategory]string{
	BroadWechatBrowser: `1. A window/document runtime is present (browser environment).
2. User agent contains "micromessenger" (WeChat marker).
3. wx.miniProgram is absent (not a mini-program).`,

	BroadHuawei: `1. A window/document runtime is present (browser environment).
2. User agent contains "huaweibrowser", or both "huawei" and "browser".`,

	BroadQQ: `1. A window/document runtime is present (browser environment).
2. User agent contains "qqbrowser" or "mqqbrowser".`,

	BroadQuark: `1. A window/document runtime is present (browser environment).
2. User agent contains "quark".`,

	BroadVivo: `1. A window/document runtime is present (browser environment).
2. User agent contains "vivobrowser".`,

	BroadBaiduBrowser: `1. A window/document runtime is present (browser environment).
2. User agent contains "baidubrowser".`,

	BroadSafari: `1. A window/document runtime is present (browser environment).
2. User agent contains "safari".
3. User agent contains none of "chrome", "edge" or "brave" (engine shared with other browsers).`,

	BroadBaiduApp: `1. A window/document runtime is present (browser environment).
2. User agent contains "baiduboxapp" (Baidu app webview).`,

	BroadByteDanceApp: `1. A window/document runtime is present (browser environment).
2. User agent contains "douyin", "aweme", "bytedancewebview" or "tiktok" (ByteDance app webview).`,

	BroadOtherBrowser: `1. A window/document runtime is present (browser environment).
2. None of the WeChat, Huawei, QQ, Quark, Vivo or Baidu browser markers matched.`,
}

// miniProgramHandoff explains a broad result of unknown caused by the
// mini-program bridge; the ecosystem classifier owns that case.
const miniProgramHandoff = `1. wx.miniProgram bridge object is present (mini-program specific global).
2. User agent "miniprogram" marker is checked by the ecosystem classifier.
3. Not a browser category: handed off to the ecosystem classifier.`

var overviewEvidence = map[Overview]string{
	OverviewDevTools:          `1. User agent contains "micromessenger" and "devtools" (debugging environment).`,
	OverviewWxWorkMiniProgram: `1. User agent contains "wxwork".` + "\n" + `2. User agent contains "miniprogram" or wx.miniProgram is present.`,
	OverviewMiniProgram:       `1. User agent contains "miniprogram" or wx.miniProgram is present.`,
	OverviewOfficialAccount: `1. WeChat in-app browser (not WeChat Work, not a mini-program).
2. User agent contains "mpweixin" or a "micromessenger/<version>" token.`,
	OverviewWechatBrowser:  `1. User agent contains "micromessenger".` + "\n" + `2. No "wxwork" and no mini-program marker.`,
	OverviewWxWork:         `1. User agent contains "wxwork".`,
	OverviewWechatUnknown:  `1. User agent contains "micromessenger" or "wxwork" but no finer role matched.`,
	OverviewNonWechat:      `1. Neither "micromessenger" nor "wxwork" is present in the user agent.`,
}

// Explain returns the justification template for a tag, broad category or
// overview. Anything else gets GenericEvidence.
func Explain(tag any) string {
	var (
		text  string
		found bool
	)

	switch v := tag.(type) {
	case EnvironmentTag:
		text, found = fullEvidence[v]
	case BroadCategory:
		text, found = broadEvidence[v]
	case Overview:
		text, found = overviewEvidence[v]
	case BroadResult:
		return ExplainBroad(v)
	}

	if !found {
		return GenericEvidence
	}
	return text
}

// ExplainBroad is Explain for a broad result, aware of the mini-program
// hand-off rule.
func ExplainBroad(result BroadResult) string {
	if result.Rule == RuleWechatMiniProgram {
		return miniProgramHandoff
	}
	return Explain(result.Category)
}

// EvidenceLines splits an evidence template into its ordered lines.
func EvidenceLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
