package hostenv

import (
	"go.uber.org/zap"
)

// ClassificationResult is a tag and the ordered signals that justified it.
type ClassificationResult struct {
	Tag      string   `json:"tag" yaml:"tag"`
	Evidence []string `json:"evidence" yaml:"evidence"`
}

func newResult(tag string, evidence string) ClassificationResult {
	return ClassificationResult{Tag: tag, Evidence: EvidenceLines(evidence)}
}

// Report is everything the presentation layer needs for one snapshot.
type Report struct {
	// UserAgent is the identifying string as received, for display and copy
	UserAgent string `json:"raw_user_agent" yaml:"raw_user_agent"`

	Signals   RawSignals      `json:"signals" yaml:"signals"`
	Broad     BroadResult     `json:"broad" yaml:"broad"`
	Ecosystem EcosystemReport `json:"ecosystem" yaml:"ecosystem"`
	Full      FullResult      `json:"full" yaml:"full"`

	BroadResult    ClassificationResult `json:"broad_result" yaml:"broad_result"`
	OverviewResult ClassificationResult `json:"overview_result" yaml:"overview_result"`
	FullResult     ClassificationResult `json:"full_result" yaml:"full_result"`

	Action Action `json:"action" yaml:"action"`
}

type Classifier struct {
	order BroadOrder
}

type Option func(*Classifier)

// WithBroadOrder selects the broad rule order. The default is
// BroadOrderCorrected.
func WithBroadOrder(order BroadOrder) Option {
	return func(c *Classifier) {
		c.order = order
	}
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{order: BroadOrderCorrected}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) BroadOrder() BroadOrder {
	return c.order
}

// Classify runs every classifier over the same normalized snapshot.
func (c *Classifier) Classify(s RawSignals) *Report {
	return c.classify(s.UserAgent, s)
}

// ClassifyRuntime probes rt once and classifies the snapshot, keeping the
// user agent exactly as the runtime reported it.
func (c *Classifier) ClassifyRuntime(rt Runtime) *Report {
	raw, signals := probe(rt)
	return c.classify(raw, signals)
}

func (c *Classifier) classify(rawUserAgent string, s RawSignals) *Report {
	s = s.Normalize()
	if !s.RuntimePresent || rawUserAgent == "" {
		rawUserAgent = s.UserAgent
	}

	broad := ClassifyBroad(s, c.order)
	ecosystem := ClassifyEcosystem(s)
	full := ResolveFull(s)

	report := &Report{
		UserAgent:      rawUserAgent,
		Signals:        s,
		Broad:          broad,
		Ecosystem:      ecosystem,
		Full:           full,
		BroadResult:    newResult(broad.Category.String(), ExplainBroad(broad)),
		OverviewResult: newResult(ecosystem.Overview.String(), Explain(ecosystem.Overview)),
		FullResult:     newResult(full.Tag.String(), Explain(full.Tag)),
		Action:         ActionFor(full.Tag),
	}

	zlog.Debug("classified snapshot",
		zap.Stringer("full", full.Tag),
		zap.Stringer("broad", broad.Category),
		zap.Stringer("overview", ecosystem.Overview))

	return report
}
