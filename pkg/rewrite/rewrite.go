package rewrite

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type IRewrite interface {
	Normalize(text string) string
	Rules() []Rule
}

// Rule is a single ordered rewrite step. Rules are applied sequentially,
// each against the output of the previous one, so later rules may depend
// on earlier rewrites.
type Rule struct {
	Tag         string
	Pattern     *regexp.Regexp
	Replacement string
}

func (r Rule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

type rewriteEngine struct {
	rules []Rule
	log   *logrus.Logger
}

func New(log *logrus.Logger) IRewrite {
	return &rewriteEngine{
		rules: DefaultRules(),
		log:   log,
	}
}

func NewWithRules(log *logrus.Logger, rules []Rule) IRewrite {
	return &rewriteEngine{
		rules: rules,
		log:   log,
	}
}

// Normalize lower-cases and trims the input, then runs the ordered rule
// table over it. Pure: same input always yields the same output.
func (e *rewriteEngine) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	original := strings.ToLower(strings.TrimSpace(text))
	original = stripDiacritics(original)

	normalized := original
	for _, rule := range e.rules {
		rewritten := rule.Apply(normalized)
		if rewritten != normalized && e.log != nil {
			e.log.WithFields(logrus.Fields{
				"rule":   rule.Tag,
				"before": normalized,
				"after":  rewritten,
			}).Debug("Rewrite rule applied")
		}
		normalized = rewritten
	}

	if normalized != original && e.log != nil {
		e.log.WithFields(logrus.Fields{
			"original":   original,
			"normalized": normalized,
		}).Info("Semantic normalization changed text")
	}

	return normalized
}

func (e *rewriteEngine) Rules() []Rule {
	return e.rules
}

func stripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
