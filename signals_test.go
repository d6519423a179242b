package hostenv

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawSignals_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		input RawSignals
		want  RawSignals
	}{
		{
			name: "no runtime clears every flag",
			input: RawSignals{
				UserAgent:         "MicroMessenger/8.0",
				MiniProgramBridge: true,
				GameContextAPI:    true,
				EnvironmentMarker: "miniprogram",
			},
			want: RawSignals{UserAgent: UnavailableUserAgent},
		},
		{
			name:  "lowercases and trims user agent",
			input: RawSignals{UserAgent: "  Mozilla/5.0 MicroMessenger/8.0 ", RuntimePresent: true},
			want:  RawSignals{UserAgent: "mozilla/5.0 micromessenger/8.0", RuntimePresent: true},
		},
		{
			name:  "empty user agent becomes the sentinel",
			input: RawSignals{RuntimePresent: true, MiniProgramBridge: true},
			want:  RawSignals{UserAgent: UnavailableUserAgent, RuntimePresent: true, MiniProgramBridge: true},
		},
		{
			name:  "trims environment marker",
			input: RawSignals{UserAgent: "x", EnvironmentMarker: " miniprogram ", RuntimePresent: true},
			want:  RawSignals{UserAgent: "x", EnvironmentMarker: "miniprogram", RuntimePresent: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, got.Normalize(), "Normalize must be idempotent")
		})
	}
}

func TestUnavailableUserAgent_MatchesNoRule(t *testing.T) {
	s := RawSignals{UserAgent: UnavailableUserAgent, RuntimePresent: true}
	markers := []string{
		"micromessenger", "wxwork", "miniprogram", "devtools", "mpweixin", "videoapp",
		"huawei", "browser", "qqbrowser", "quark", "vivobrowser", "baidubrowser",
		"safari", "baiduboxapp", "douyin", "aweme", "tiktok",
	}
	for _, marker := range markers {
		assert.False(t, s.contains(marker), "sentinel must not contain %q", marker)
	}
	assert.False(t, s.HasUserAgent())
}

type countingRuntime struct {
	calls map[string]int
	ua    string
}

func (r *countingRuntime) hit(name string) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[name]++
}

func (r *countingRuntime) Present() bool             { r.hit("present"); return true }
func (r *countingRuntime) UserAgent() string         { r.hit("ua"); return r.ua }
func (r *countingRuntime) MiniProgramBridge() bool   { r.hit("bridge"); return true }
func (r *countingRuntime) GameContextAPI() bool      { r.hit("game"); return false }
func (r *countingRuntime) EnvironmentMarker() string { r.hit("marker"); return "miniprogram" }

func TestProbe_ReadsEachSignalOnce(t *testing.T) {
	rt := &countingRuntime{ua: "MicroMessenger/8.0 miniProgram"}

	signals := Probe(rt)

	assert.Equal(t, RawSignals{
		UserAgent:         "micromessenger/8.0 miniprogram",
		MiniProgramBridge: true,
		EnvironmentMarker: "miniprogram",
		RuntimePresent:    true,
	}, signals)
	for _, name := range []string{"present", "ua", "bridge", "game", "marker"} {
		assert.Equal(t, 1, rt.calls[name], "signal %s read count", name)
	}
}

func TestClassifyRuntime_ReadsEachSignalOnce(t *testing.T) {
	rt := &countingRuntime{ua: "Mozilla/5.0 MicroMessenger/8.0 miniProgram"}

	report := NewClassifier().ClassifyRuntime(rt)

	for _, name := range []string{"present", "ua", "bridge", "game", "marker"} {
		assert.Equal(t, 1, rt.calls[name], "signal %s read count", name)
	}
	assert.Equal(t, "Mozilla/5.0 MicroMessenger/8.0 miniProgram", report.UserAgent)
	assert.Equal(t, TagWechatMiniProgram, report.Full.Tag)
}

// shiftingRuntime reports a different user agent on every read.
type shiftingRuntime struct {
	userAgents []string
	reads      int
}

func (r *shiftingRuntime) Present() bool { return true }
func (r *shiftingRuntime) UserAgent() string {
	ua := r.userAgents[r.reads%len(r.userAgents)]
	r.reads++
	return ua
}
func (r *shiftingRuntime) MiniProgramBridge() bool   { return false }
func (r *shiftingRuntime) GameContextAPI() bool      { return false }
func (r *shiftingRuntime) EnvironmentMarker() string { return "" }

func TestClassifyRuntime_RawUserAgentMatchesSignals(t *testing.T) {
	rt := &shiftingRuntime{userAgents: []string{
		"Mozilla/5.0 MicroMessenger/8.0 wxwork/3.1",
		"Mozilla/5.0 Chrome/120 Safari/537.36",
	}}

	report := NewClassifier().ClassifyRuntime(rt)

	assert.Equal(t, 1, rt.reads)
	assert.Equal(t, "Mozilla/5.0 MicroMessenger/8.0 wxwork/3.1", report.UserAgent)
	assert.Equal(t, "mozilla/5.0 micromessenger/8.0 wxwork/3.1", report.Signals.UserAgent)
	assert.Equal(t, TagWxWorkH5, report.Full.Tag)
}

func TestProbe_NoRuntime(t *testing.T) {
	assert.Equal(t, NoRuntimeSignals(), Probe(nil))
	assert.Equal(t, NoRuntimeSignals(), Probe(StaticRuntime{NoRuntime: true, UA: "micromessenger", Bridge: true}))
	assert.Equal(t, NoRuntimeSignals(), Probe(RequestRuntime{}))
}

func TestRequestRuntime(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    RawSignals
	}{
		{
			name: "all signals",
			headers: map[string]string{
				"User-Agent":            "Mozilla/5.0 MicroMessenger/8.0.40 miniProgram",
				HeaderMiniProgramBridge: "true",
				HeaderGameContext:       "1",
				HeaderWxjsEnvironment:   "MiniProgram",
			},
			want: RawSignals{
				UserAgent:         "mozilla/5.0 micromessenger/8.0.40 miniprogram",
				MiniProgramBridge: true,
				GameContextAPI:    true,
				EnvironmentMarker: "miniprogram",
				RuntimePresent:    true,
			},
		},
		{
			name: "malformed flags are false",
			headers: map[string]string{
				"User-Agent":            "Mozilla/5.0",
				HeaderMiniProgramBridge: "yes please",
				HeaderGameContext:       "",
			},
			want: RawSignals{UserAgent: "mozilla/5.0", RuntimePresent: true},
		},
		{
			name:    "missing user agent",
			headers: map[string]string{"User-Agent": ""},
			want:    RawSignals{UserAgent: UnavailableUserAgent, RuntimePresent: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/classify", nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			signals := Probe(RequestRuntime{Request: req})
			require.True(t, signals.RuntimePresent)
			assert.Equal(t, tt.want, signals)
		})
	}
}
