package readable

import (
	"net/url"
	"regexp"
	"strings"
)

// CandidateScore selects how a content score decays as it propagates to
// ancestors of the node that earned it.
type CandidateScore int

// CandidateScore constants.
const (
	// EqualWeight gives every ancestor the full score.
	EqualWeight CandidateScore = iota

	// LevelWeight divides the score by the ancestor level (1, 2, 3, ...).
	LevelWeight

	// HalvingWeight halves the score at each level above the parent.
	HalvingWeight
)

// Decay returns the share of score credited to the ancestor at level
// (1 for the parent).
func (c CandidateScore) Decay(score float64, level int) float64 {
	if level < 1 {
		return score
	}
	switch c {
	case LevelWeight:
		return score / float64(level)
	case HalvingWeight:
		return score / float64(uint64(1)<<uint(min(level-1, 62)))
	default:
		return score
	}
}

// String returns the configuration name of c.
func (c CandidateScore) String() string {
	switch c {
	case EqualWeight:
		return "equal"
	case LevelWeight:
		return "level"
	case HalvingWeight:
		return "halving"
	default:
		return "unknown"
	}
}

// ParseCandidateScore converts a configuration name into a CandidateScore.
func ParseCandidateScore(s string) (CandidateScore, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equal":
		return EqualWeight, nil
	case "level", "":
		return LevelWeight, nil
	case "halving":
		return HalvingWeight, nil
	default:
		return 0, Errorf(EINVALID, "unknown candidate score %q", s)
	}
}

// ParseOptions configures how markup becomes a tree.
type ParseOptions struct {
	// Strict rejects input containing unexpected end tags, implicitly
	// closed elements or elements left open at end of input.
	Strict bool

	// MaxElements caps the number of elements a document may contain.
	// Zero means no limit.
	MaxElements int
}

// DefaultParseOptions returns lenient parsing with no element cap.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}

// Validate returns an error if the options are unusable.
func (o ParseOptions) Validate() error {
	if o.MaxElements < 0 {
		return Errorf(EINVALID, "max elements must not be negative: %d", o.MaxElements)
	}
	return nil
}

// ScorerOptions configures the content scorer.
type ScorerOptions struct {
	// MinCandidateLength is the minimum text length of a scored node.
	MinCandidateLength int

	// MaxCandidateParents is the number of ancestor levels a score
	// propagates to.
	MaxCandidateParents int

	CandidateScore CandidateScore

	PositiveCandidateWeight float64
	NegativeCandidateWeight float64

	// MinScoreRatio times PositiveCandidateWeight is the score a candidate
	// must exceed to be selected.
	MinScoreRatio float64

	Punctuations       *regexp.Regexp
	UnlikelyCandidates *regexp.Regexp
	LikelyCandidates   *regexp.Regexp
	PositiveCandidates *regexp.Regexp
	NegativeCandidates *regexp.Regexp

	// BlockChildTags disqualify a div-like container from direct scoring.
	BlockChildTags []string
}

// DefaultScorerOptions returns the standard scorer configuration.
func DefaultScorerOptions() ScorerOptions {
	return ScorerOptions{
		MinCandidateLength:      20,
		MaxCandidateParents:     10,
		CandidateScore:          LevelWeight,
		PositiveCandidateWeight: 25,
		NegativeCandidateWeight: 25,
		MinScoreRatio:           0.04,
		Punctuations:            defaultPunctuations,
		UnlikelyCandidates:      defaultUnlikelyCandidates,
		LikelyCandidates:        defaultLikelyCandidates,
		PositiveCandidates:      defaultPositiveCandidates,
		NegativeCandidates:      defaultNegativeCandidates,
		BlockChildTags:          defaultBlockChildTags,
	}
}

// Threshold returns the score a candidate must exceed to be selected.
func (o ScorerOptions) Threshold() float64 {
	return o.PositiveCandidateWeight * o.MinScoreRatio
}

// Validate returns an error if the options are unusable.
func (o ScorerOptions) Validate() error {
	switch {
	case o.MinCandidateLength < 0:
		return Errorf(EINVALID, "min candidate length must not be negative: %d", o.MinCandidateLength)
	case o.MaxCandidateParents < 0:
		return Errorf(EINVALID, "max candidate parents must not be negative: %d", o.MaxCandidateParents)
	case o.CandidateScore < EqualWeight || o.CandidateScore > HalvingWeight:
		return Errorf(EINVALID, "unknown candidate score: %d", o.CandidateScore)
	case o.PositiveCandidateWeight < 0 || o.NegativeCandidateWeight < 0:
		return Errorf(EINVALID, "candidate weights must not be negative")
	case o.MinScoreRatio < 0 || o.MinScoreRatio > 1:
		return Errorf(EINVALID, "min score ratio must be within [0, 1]: %g", o.MinScoreRatio)
	}
	patterns := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"punctuations", o.Punctuations},
		{"unlikely candidates", o.UnlikelyCandidates},
		{"likely candidates", o.LikelyCandidates},
		{"positive candidates", o.PositiveCandidates},
		{"negative candidates", o.NegativeCandidates},
	}
	for _, p := range patterns {
		if p.re == nil {
			return Errorf(EINVALID, "%s pattern required", p.name)
		}
	}
	return nil
}

// ExtractOptions configures a whole extraction.
type ExtractOptions struct {
	ParseOptions
	ScorerOptions

	// LookupMetadataTags lets document metadata (Open Graph, Twitter cards,
	// JSON-LD, Dublin Core) take precedence over in-body heuristics.
	LookupMetadataTags bool

	// BaseURL resolves relative links and image sources. It must be
	// absolute when set.
	BaseURL *url.URL

	// SiblingScoreRatio is the fraction of the top score a sibling needs
	// to be merged into the content, floored at 10.
	SiblingScoreRatio float64

	// MinImageSize is the minimum declared width and height of an in-body
	// lead image.
	MinImageSize int
}

// DefaultExtractOptions returns the standard extraction configuration.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		ParseOptions:       DefaultParseOptions(),
		ScorerOptions:      DefaultScorerOptions(),
		LookupMetadataTags: true,
		SiblingScoreRatio:  0.2,
		MinImageSize:       200,
	}
}

// Validate returns an error if the options are unusable.
func (o ExtractOptions) Validate() error {
	if err := o.ParseOptions.Validate(); err != nil {
		return err
	}
	if err := o.ScorerOptions.Validate(); err != nil {
		return err
	}
	if o.BaseURL != nil && !o.BaseURL.IsAbs() {
		return Errorf(EINVALID, "base URL must be absolute: %q", o.BaseURL.String())
	}
	if o.SiblingScoreRatio < 0 || o.SiblingScoreRatio > 1 {
		return Errorf(EINVALID, "sibling score ratio must be within [0, 1]: %g", o.SiblingScoreRatio)
	}
	if o.MinImageSize < 0 {
		return Errorf(EINVALID, "min image size must not be negative: %d", o.MinImageSize)
	}
	return nil
}
