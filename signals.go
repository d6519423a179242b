package hostenv

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// UnavailableUserAgent replaces the user agent when none could be read, so
// that no rule ever matches on an empty string.
const UnavailableUserAgent = "(no user agent available)"

// MiniProgramEnvironment is the value the host sets in __wxjs_environment
// when the page runs inside a mini-program.
const MiniProgramEnvironment = "miniprogram"

// RawSignals is the immutable snapshot every classifier reads from. Build it
// with Probe, or call Normalize on a hand-built value.
type RawSignals struct {
	// UserAgent is the lowercased identifying string
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MiniProgramBridge reports whether wx.miniProgram is exposed
	MiniProgramBridge bool `json:"miniprogram_bridge" yaml:"miniprogram_bridge"`

	// GameContextAPI reports whether wx.createGameContext is a function
	GameContextAPI bool `json:"game_context_api" yaml:"game_context_api"`

	// EnvironmentMarker is the raw value of __wxjs_environment
	EnvironmentMarker string `json:"environment_marker,omitempty" yaml:"environment_marker,omitempty"`

	// RuntimePresent is false when there is no browser-like context at all
	RuntimePresent bool `json:"runtime_present" yaml:"runtime_present"`
}

// NoRuntimeSignals is the snapshot produced when no runtime context exists.
func NoRuntimeSignals() RawSignals {
	return RawSignals{UserAgent: UnavailableUserAgent}
}

// Normalize returns a copy that honors the probe contract: without a
// runtime every flag is false, and the user agent is lowercased and never
// empty.
func (s RawSignals) Normalize() RawSignals {
	if !s.RuntimePresent {
		return NoRuntimeSignals()
	}

	s.UserAgent = strings.ToLower(strings.TrimSpace(s.UserAgent))
	if s.UserAgent == "" {
		s.UserAgent = UnavailableUserAgent
	}
	s.EnvironmentMarker = strings.TrimSpace(s.EnvironmentMarker)
	return s
}

// MiniProgramContext reports whether the environment marker says the page
// runs in a mini-program.
func (s RawSignals) MiniProgramContext() bool {
	return s.EnvironmentMarker == MiniProgramEnvironment
}

// HasUserAgent is false when the user agent is the unavailable sentinel.
func (s RawSignals) HasUserAgent() bool {
	return s.UserAgent != UnavailableUserAgent
}

func (s RawSignals) contains(substr string) bool {
	return strings.Contains(s.UserAgent, substr)
}

func (s RawSignals) containsAny(substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s.UserAgent, substr) {
			return true
		}
	}
	return false
}

// MarshalLogObject lets signals be logged with zap.Object.
func (s RawSignals) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("user_agent", s.UserAgent)
	enc.AddBool("miniprogram_bridge", s.MiniProgramBridge)
	enc.AddBool("game_context_api", s.GameContextAPI)
	enc.AddString("environment_marker", s.EnvironmentMarker)
	enc.AddBool("runtime_present", s.RuntimePresent)
	return nil
}
