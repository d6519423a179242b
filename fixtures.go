package hostenv

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaptinlin/jsonmerge"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Expectation lists the results a fixture case must produce. Empty fields
// are not checked.
type Expectation struct {
	Full     EnvironmentTag `yaml:"full,omitempty"`
	Broad    BroadCategory  `yaml:"broad,omitempty"`
	Overview Overview       `yaml:"overview,omitempty"`
}

// FixtureCase is one named scenario of a suite.
type FixtureCase struct {
	Name    string
	Runtime StaticRuntime
	Expect  Expectation
}

// Suite is an ordered list of fixture cases.
type Suite struct {
	Cases []FixtureCase
}

// suiteFile is the on-disk format; signals stay untyped until merged.
type suiteFile struct {
	Defaults map[string]any `yaml:"defaults"`
	Cases    []struct {
		Name    string         `yaml:"name"`
		Signals map[string]any `yaml:"signals"`
		Expect  Expectation    `yaml:"expect"`
	} `yaml:"cases"`
}

// FixtureResult is the outcome of running one case.
type FixtureResult struct {
	Name       string
	Report     *Report
	Mismatches []string
}

func (r FixtureResult) Passed() bool {
	return len(r.Mismatches) == 0
}

// LoadFixtures reads and parses a suite file
func LoadFixtures(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	suite, err := ParseFixtures(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures file %s: %w", path, err)
	}

	zlog.Debug("loaded fixtures", zap.String("path", path), zap.Int("cases", len(suite.Cases)))
	return suite, nil
}

// BuiltinSuite parses the embedded fixture suite.
func BuiltinSuite() (*Suite, error) {
	return ParseFixtures(BuiltinFixturesYAML)
}

// ParseFixtures decodes a YAML suite, merging each case's signals onto the
// suite defaults.
func ParseFixtures(data []byte) (*Suite, error) {
	var file suiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	suite := &Suite{Cases: make([]FixtureCase, 0, len(file.Cases))}
	for i, c := range file.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case #%d has no name", i)
		}

		runtime, err := mergeSignals(file.Defaults, c.Signals)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}

		suite.Cases = append(suite.Cases, FixtureCase{
			Name:    c.Name,
			Runtime: runtime,
			Expect:  c.Expect,
		})
	}

	return suite, nil
}

// mergeSignals applies patch onto defaults (RFC 7386) and decodes the
// result as a StaticRuntime.
func mergeSignals(defaults, patch map[string]any) (StaticRuntime, error) {
	if defaults == nil {
		defaults = map[string]any{}
	}
	if patch == nil {
		patch = map[string]any{}
	}

	result, err := jsonmerge.Merge(defaults, patch)
	if err != nil {
		return StaticRuntime{}, fmt.Errorf("failed to merge signals: %w", err)
	}

	data, err := json.Marshal(result.Doc)
	if err != nil {
		return StaticRuntime{}, fmt.Errorf("failed to encode merged signals: %w", err)
	}

	var runtime StaticRuntime
	if err := json.Unmarshal(data, &runtime); err != nil {
		return StaticRuntime{}, fmt.Errorf("invalid signals: %w", err)
	}
	return runtime, nil
}

// Run classifies every case with c and compares against expectations.
func (s *Suite) Run(c *Classifier) []FixtureResult {
	results := make([]FixtureResult, 0, len(s.Cases))
	for _, fixture := range s.Cases {
		report := c.ClassifyRuntime(fixture.Runtime)

		var mismatches []string
		if want := fixture.Expect.Full; want != "" && report.Full.Tag != want {
			mismatches = append(mismatches, fmt.Sprintf("full: got %s, want %s", report.Full.Tag, want))
		}
		if want := fixture.Expect.Broad; want != "" && report.Broad.Category != want {
			mismatches = append(mismatches, fmt.Sprintf("broad: got %s, want %s", report.Broad.Category, want))
		}
		if want := fixture.Expect.Overview; want != "" && report.Ecosystem.Overview != want {
			mismatches = append(mismatches, fmt.Sprintf("overview: got %s, want %s", report.Ecosystem.Overview, want))
		}

		if len(mismatches) > 0 {
			zlog.Debug("fixture failed", zap.String("name", fixture.Name), zap.Strings("mismatches", mismatches))
		}

		results = append(results, FixtureResult{Name: fixture.Name, Report: report, Mismatches: mismatches})
	}
	return results
}
