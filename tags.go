package hostenv

import (
	"errors"
	"fmt"
)

var ErrUnknownTag = errors.New("unknown tag")

// EnvironmentTag is the canonical result of the full-environment resolver.
// Exactly one tag is produced per snapshot.
type EnvironmentTag string

const (
	TagWechatBrowser            EnvironmentTag = "wechatBrowser"
	TagWechatMiniProgram        EnvironmentTag = "wechatMiniProgram"
	TagWechatMiniProgramWebView EnvironmentTag = "wechatMiniProgramWebView"
	TagWxWorkH5                 EnvironmentTag = "wechatWorkH5"
	TagWxWorkMiniProgram        EnvironmentTag = "wechatWorkMiniProgram"
	TagWechatGame               EnvironmentTag = "wechatGame"
	TagWechatVideoH5            EnvironmentTag = "wechatVideoH5"
	TagOther                    EnvironmentTag = "other"
)

var allTags = []EnvironmentTag{
	TagWechatBrowser,
	TagWechatMiniProgram,
	TagWechatMiniProgramWebView,
	TagWxWorkH5,
	TagWxWorkMiniProgram,
	TagWechatGame,
	TagWechatVideoH5,
	TagOther,
}

// AllTags returns every EnvironmentTag in declaration order.
func AllTags() []EnvironmentTag {
	return append([]EnvironmentTag(nil), allTags...)
}

func (t EnvironmentTag) String() string { return string(t) }

func (t EnvironmentTag) Valid() bool {
	for _, tag := range allTags {
		if t == tag {
			return true
		}
	}
	return false
}

func ParseEnvironmentTag(s string) (EnvironmentTag, error) {
	tag := EnvironmentTag(s)
	if !tag.Valid() {
		return "", fmt.Errorf("environment tag %q: %w", s, ErrUnknownTag)
	}
	return tag, nil
}

func (t *EnvironmentTag) UnmarshalText(text []byte) error {
	tag, err := ParseEnvironmentTag(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// BroadCategory is the coarse browser/vendor identity.
type BroadCategory string

const (
	BroadWechatBrowser BroadCategory = "wechat-browser"
	BroadHuawei        BroadCategory = "huawei-browser"
	BroadQQ            BroadCategory = "qq-browser"
	BroadQuark         BroadCategory = "quark-browser"
	BroadVivo          BroadCategory = "vivo-browser"
	BroadBaiduBrowser  BroadCategory = "baidu-browser"
	BroadOtherBrowser  BroadCategory = "other-browser"
	BroadSafari        BroadCategory = "safari"
	BroadBaiduApp      BroadCategory = "baidu-app"
	BroadByteDanceApp  BroadCategory = "bytedance-app"
	BroadUnknown       BroadCategory = "unknown"
)

var allBroadCategories = []BroadCategory{
	BroadWechatBrowser,
	BroadHuawei,
	BroadQQ,
	BroadQuark,
	BroadVivo,
	BroadBaiduBrowser,
	BroadOtherBrowser,
	BroadSafari,
	BroadBaiduApp,
	BroadByteDanceApp,
	BroadUnknown,
}

func AllBroadCategories() []BroadCategory {
	return append([]BroadCategory(nil), allBroadCategories...)
}

func (c BroadCategory) String() string { return string(c) }

func (c BroadCategory) Valid() bool {
	for _, category := range allBroadCategories {
		if c == category {
			return true
		}
	}
	return false
}

func ParseBroadCategory(s string) (BroadCategory, error) {
	category := BroadCategory(s)
	if !category.Valid() {
		return "", fmt.Errorf("broad category %q: %w", s, ErrUnknownTag)
	}
	return category, nil
}

func (c *BroadCategory) UnmarshalText(text []byte) error {
	category, err := ParseBroadCategory(string(text))
	if err != nil {
		return err
	}
	*c = category
	return nil
}

// Overview is the single best-matching WeChat ecosystem role.
type Overview string

const (
	OverviewDevTools          Overview = "devtools"
	OverviewWxWorkMiniProgram Overview = "wxwork-miniprogram"
	OverviewMiniProgram       Overview = "miniprogram"
	OverviewOfficialAccount   Overview = "official-account"
	OverviewWechatBrowser     Overview = "wechat-browser"
	OverviewWxWork            Overview = "wxwork"
	OverviewWechatUnknown     Overview = "wechat-unknown"
	OverviewNonWechat         Overview = "non-wechat"
)

var allOverviews = []Overview{
	OverviewDevTools,
	OverviewWxWorkMiniProgram,
	OverviewMiniProgram,
	OverviewOfficialAccount,
	OverviewWechatBrowser,
	OverviewWxWork,
	OverviewWechatUnknown,
	OverviewNonWechat,
}

func AllOverviews() []Overview {
	return append([]Overview(nil), allOverviews...)
}

func (o Overview) String() string { return string(o) }

func (o Overview) Valid() bool {
	for _, overview := range allOverviews {
		if o == overview {
			return true
		}
	}
	return false
}

func ParseOverview(s string) (Overview, error) {
	overview := Overview(s)
	if !overview.Valid() {
		return "", fmt.Errorf("overview %q: %w", s, ErrUnknownTag)
	}
	return overview, nil
}

func (o *Overview) UnmarshalText(text []byte) error {
	overview, err := ParseOverview(string(text))
	if err != nil {
		return err
	}
	*o = overview
	return nil
}
