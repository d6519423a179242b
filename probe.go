package hostenv

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Runtime exposes the host signals a page can observe. Implementations may
// read live state; Probe calls each method at most once.
type Runtime interface {
	Present() bool
	UserAgent() string
	MiniProgramBridge() bool
	GameContextAPI() bool
	EnvironmentMarker() string
}

// Probe captures a consistent snapshot of rt. It never fails: a nil or
// absent runtime yields NoRuntimeSignals.
func Probe(rt Runtime) RawSignals {
	_, signals := probe(rt)
	return signals
}

// probe reads every method of rt at most once and returns the user agent as
// reported alongside the normalized snapshot built from that same read.
func probe(rt Runtime) (string, RawSignals) {
	if rt == nil || !rt.Present() {
		zlog.Debug("no runtime context, using empty snapshot")
		return UnavailableUserAgent, NoRuntimeSignals()
	}

	rawUserAgent := rt.UserAgent()
	signals := RawSignals{
		UserAgent:         rawUserAgent,
		MiniProgramBridge: rt.MiniProgramBridge(),
		GameContextAPI:    rt.GameContextAPI(),
		EnvironmentMarker: rt.EnvironmentMarker(),
		RuntimePresent:    true,
	}.Normalize()

	zlog.Debug("probed runtime", zap.Object("signals", signals))
	return rawUserAgent, signals
}

// StaticRuntime is a Runtime with fixed values, used for CLI flags, fixture
// cases and JSON request bodies.
type StaticRuntime struct {
	NoRuntime   bool   `json:"no_runtime,omitempty" yaml:"no_runtime,omitempty"`
	UA          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	Bridge      bool   `json:"miniprogram_bridge,omitempty" yaml:"miniprogram_bridge,omitempty"`
	GameContext bool   `json:"game_context_api,omitempty" yaml:"game_context_api,omitempty"`
	WxjsEnv     string `json:"environment_marker,omitempty" yaml:"environment_marker,omitempty"`
}

func (r StaticRuntime) Present() bool             { return !r.NoRuntime }
func (r StaticRuntime) UserAgent() string         { return r.UA }
func (r StaticRuntime) MiniProgramBridge() bool   { return r.Bridge }
func (r StaticRuntime) GameContextAPI() bool      { return r.GameContext }
func (r StaticRuntime) EnvironmentMarker() string { return r.WxjsEnv }

// Headers a page (or a proxy in front of it) sets to forward the capability
// flags it observed client side.
const (
	HeaderMiniProgramBridge = "X-Hostenv-Miniprogram-Bridge"
	HeaderGameContext       = "X-Hostenv-Game-Context"
	HeaderWxjsEnvironment   = "X-Hostenv-Wxjs-Environment"
)

// RequestRuntime reads signals from an incoming HTTP request.
type RequestRuntime struct {
	Request *http.Request
}

func (r RequestRuntime) Present() bool {
	return r.Request != nil
}

func (r RequestRuntime) UserAgent() string {
	return r.Request.UserAgent()
}

func (r RequestRuntime) MiniProgramBridge() bool {
	return headerBool(r.Request.Header, HeaderMiniProgramBridge)
}

func (r RequestRuntime) GameContextAPI() bool {
	return headerBool(r.Request.Header, HeaderGameContext)
}

func (r RequestRuntime) EnvironmentMarker() string {
	return strings.ToLower(r.Request.Header.Get(HeaderWxjsEnvironment))
}

// headerBool treats anything that does not parse as a boolean as false.
func headerBool(h http.Header, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(h.Get(key)))
	if err != nil {
		return false
	}
	return value
}
