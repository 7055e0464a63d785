package structure

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules holds the fixed word lists the block classifier matches against.
// A zero Rules is valid and disables every list-driven behavior.
type Rules struct {
	// CalloutPrefixes are heading label prefixes that open a callout section.
	CalloutPrefixes []string `yaml:"callout_prefixes" json:"callout_prefixes"`

	// SuppressedSections are case-insensitive patterns for section openers whose
	// content is dropped until the next major heading.
	SuppressedSections []string `yaml:"suppressed_sections" json:"suppressed_sections"`

	// AttributionPhrase identifies the recurring credit line. Only the last one survives.
	AttributionPhrase string `yaml:"attribution_phrase" json:"attribution_phrase"`

	// ConversationalMarkers disqualify a short line from the fallback heading rule.
	ConversationalMarkers []string `yaml:"conversational_markers" json:"conversational_markers"`
}

// DefaultRules returns the lists tuned against the upstream content generators.
func DefaultRules() Rules {
	return Rules{
		CalloutPrefixes: []string{"key takeaways", "appendix"},
		SuppressedSections: []string{
			`^reflective questions\b`,
			`^have you\b.*\bpondered\b`,
			`^questions to consider\b`,
		},
		AttributionPhrase: "this teaching was adapted from",
		ConversationalMarkers: []string{
			"let's", "let us", "we will", "we'll", "we can",
			"here is", "here are", "here's",
			"there are", "there is",
			"this is", "you will", "you can", "i will", "it is",
		},
	}
}

// compiledRules is the matcher form of Rules.
type compiledRules struct {
	calloutPrefixes []string
	suppressed      []*regexp.Regexp
	attribution     string
	conversational  *regexp.Regexp
}

func compileRules(r Rules) (*compiledRules, error) {
	c := &compiledRules{
		attribution: strings.ToLower(strings.TrimSpace(r.AttributionPhrase)),
	}
	for _, p := range r.CalloutPrefixes {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			c.calloutPrefixes = append(c.calloutPrefixes, p)
		}
	}
	for _, pat := range r.SuppressedSections {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return nil, fmt.Errorf("suppressed section pattern %q: %w", pat, err)
		}
		c.suppressed = append(c.suppressed, re)
	}
	var alts []string
	for _, m := range r.ConversationalMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			alts = append(alts, regexp.QuoteMeta(m))
		}
	}
	if len(alts) > 0 {
		c.conversational = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	}
	return c, nil
}
