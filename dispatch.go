package hostenv

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoHandler = errors.New("no handler registered")

// Action describes what a page is expected to do in a given environment.
type Action struct {
	Tag     EnvironmentTag `json:"tag" yaml:"tag"`
	Summary string         `json:"summary" yaml:"summary"`
}

// Actions is the dispatch table keyed by every EnvironmentTag.
var Actions = map[EnvironmentTag]Action{
	TagWechatBrowser:            {TagWechatBrowser, "Initialize the standard WeChat JS-SDK"},
	TagWechatMiniProgram:        {TagWechatMiniProgram, "Call mini-program base APIs"},
	TagWechatMiniProgramWebView: {TagWechatMiniProgramWebView, "Talk to the host mini-program via wx.miniProgram.postMessage"},
	TagWxWorkH5:                 {TagWxWorkH5, "Initialize the WeChat Work JS-SDK (wx.config with corpId)"},
	TagWxWorkMiniProgram:        {TagWxWorkMiniProgram, "Call WeChat Work specific APIs (wx.qy.login)"},
	TagWechatGame:               {TagWechatGame, "Initialize the game engine context"},
	TagWechatVideoH5:            {TagWechatVideoH5, "Apply Channels narrow-viewport adaptations, avoid navigation bar changes"},
	TagOther:                    {TagOther, "Run the generic, non-WeChat code path"},
}

// ActionFor returns the action for tag, falling back to TagOther.
func ActionFor(tag EnvironmentTag) Action {
	if action, found := Actions[tag]; found {
		return action
	}
	return Actions[TagOther]
}

type HandlerFunc func(ctx context.Context, report *Report) error

// Dispatcher runs environment specific behavior for a classified report.
type Dispatcher map[EnvironmentTag]HandlerFunc

// Dispatch calls the handler registered for report.Full.Tag, or the
// TagOther handler when there is none.
func (d Dispatcher) Dispatch(ctx context.Context, report *Report) error {
	handler, found := d[report.Full.Tag]
	if !found {
		handler, found = d[TagOther]
	}
	if !found || handler == nil {
		return fmt.Errorf("dispatch %q: %w", report.Full.Tag, ErrNoHandler)
	}

	if err := handler(ctx, report); err != nil {
		return fmt.Errorf("handler for %q: %w", report.Full.Tag, err)
	}
	return nil
}
