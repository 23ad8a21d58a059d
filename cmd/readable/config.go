package main

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fwojciec/readable"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the schema of the --config file. Unset fields keep their
// defaults.
type FileConfig struct {
	Strict         bool     `yaml:"strict" json:"strict"`
	MaxElements    int      `yaml:"maxElements" json:"maxElements"`
	LookupMetadata *bool    `yaml:"lookupMetadata" json:"lookupMetadata"`
	BaseURL        string   `yaml:"baseURL" json:"baseURL"`
	SiblingRatio   *float64 `yaml:"siblingScoreRatio" json:"siblingScoreRatio"`
	MinImageSize   *int     `yaml:"minImageSize" json:"minImageSize"`

	Scorer struct {
		MinCandidateLength  *int     `yaml:"minCandidateLength" json:"minCandidateLength"`
		MaxCandidateParents *int     `yaml:"maxCandidateParents" json:"maxCandidateParents"`
		Weighting           string   `yaml:"weighting" json:"weighting"`
		PositiveWeight      *float64 `yaml:"positiveWeight" json:"positiveWeight"`
		NegativeWeight      *float64 `yaml:"negativeWeight" json:"negativeWeight"`
		MinScoreRatio       *float64 `yaml:"minScoreRatio" json:"minScoreRatio"`

		Patterns struct {
			Punctuation string `yaml:"punctuation" json:"punctuation"`
			Unlikely    string `yaml:"unlikely" json:"unlikely"`
			Likely      string `yaml:"likely" json:"likely"`
			Positive    string `yaml:"positive" json:"positive"`
			Negative    string `yaml:"negative" json:"negative"`
		} `yaml:"patterns" json:"patterns"`
	} `yaml:"scorer" json:"scorer"`
}

// LoadConfigFile reads YAML or JSON into FileConfig. The format follows
// the extension; other files are tried as YAML, then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, readable.Errorf(readable.EINVALID, "read config: %v", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, readable.Errorf(readable.EINVALID, "parse yaml: %v", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, readable.Errorf(readable.EINVALID, "parse json: %v", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, readable.Errorf(readable.EINVALID, "parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Apply copies the set fields of fc onto opts.
func (fc FileConfig) Apply(opts *readable.ExtractOptions) error {
	opts.Strict = opts.Strict || fc.Strict
	if fc.MaxElements > 0 {
		opts.MaxElements = fc.MaxElements
	}
	if fc.LookupMetadata != nil {
		opts.LookupMetadataTags = *fc.LookupMetadata
	}
	if fc.BaseURL != "" {
		u, err := parseBaseURL(fc.BaseURL)
		if err != nil {
			return err
		}
		opts.BaseURL = u
	}
	if fc.SiblingRatio != nil {
		opts.SiblingScoreRatio = *fc.SiblingRatio
	}
	if fc.MinImageSize != nil {
		opts.MinImageSize = *fc.MinImageSize
	}

	s := fc.Scorer
	if s.MinCandidateLength != nil {
		opts.MinCandidateLength = *s.MinCandidateLength
	}
	if s.MaxCandidateParents != nil {
		opts.MaxCandidateParents = *s.MaxCandidateParents
	}
	if s.Weighting != "" {
		mode, err := readable.ParseCandidateScore(s.Weighting)
		if err != nil {
			return err
		}
		opts.CandidateScore = mode
	}
	if s.PositiveWeight != nil {
		opts.PositiveCandidateWeight = *s.PositiveWeight
	}
	if s.NegativeWeight != nil {
		opts.NegativeCandidateWeight = *s.NegativeWeight
	}
	if s.MinScoreRatio != nil {
		opts.MinScoreRatio = *s.MinScoreRatio
	}

	patterns := []struct {
		name string
		expr string
		dst  **regexp.Regexp
	}{
		{"punctuation", s.Patterns.Punctuation, &opts.Punctuations},
		{"unlikely", s.Patterns.Unlikely, &opts.UnlikelyCandidates},
		{"likely", s.Patterns.Likely, &opts.LikelyCandidates},
		{"positive", s.Patterns.Positive, &opts.PositiveCandidates},
		{"negative", s.Patterns.Negative, &opts.NegativeCandidates},
	}
	for _, p := range patterns {
		if p.expr == "" {
			continue
		}
		re, err := regexp.Compile(p.expr)
		if err != nil {
			return readable.Errorf(readable.EINVALID, "invalid %s pattern: %v", p.name, err)
		}
		*p.dst = re
	}
	return nil
}

// Options builds extraction options from defaults, then the config file,
// then the flags.
func (f ExtractFlags) Options() (readable.ExtractOptions, error) {
	opts := readable.DefaultExtractOptions()
	if f.Config != "" {
		fc, err := LoadConfigFile(f.Config)
		if err != nil {
			return opts, err
		}
		if err := fc.Apply(&opts); err != nil {
			return opts, err
		}
	}

	if f.Strict {
		opts.Strict = true
	}
	if f.NoMetadata {
		opts.LookupMetadataTags = false
	}
	if f.BaseURL != "" {
		u, err := parseBaseURL(f.BaseURL)
		if err != nil {
			return opts, err
		}
		opts.BaseURL = u
	}
	if f.Weighting != "" {
		mode, err := readable.ParseCandidateScore(f.Weighting)
		if err != nil {
			return opts, err
		}
		opts.CandidateScore = mode
	}
	if f.MaxParents >= 0 {
		opts.MaxCandidateParents = f.MaxParents
	}
	if f.MinLength >= 0 {
		opts.MinCandidateLength = f.MinLength
	}

	return opts, opts.Validate()
}

func parseBaseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return nil, readable.Errorf(readable.EINVALID, "base URL must be absolute: %q", s)
	}
	return u, nil
}
