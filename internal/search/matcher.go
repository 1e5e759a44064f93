// Package search implements the pattern matching and file scanning used to
// annotate directory trees.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	keywordSeparator      = ","
	caseInsensitivePrefix = "(?i)"

	// errorInvalidRegexFormat reports a regular expression that failed to compile.
	errorInvalidRegexFormat = "invalid regex pattern: %w"
	// errorEmptyPatternFormat reports a pattern that yields no usable keywords.
	errorEmptyPatternFormat = "pattern %q contains no keywords"
)

// Matcher tests text against a configured pattern. A matcher is either a set
// of comma-separated literal keywords combined with OR semantics or a single
// regular expression; the variant is fixed at construction and literals are
// compiled to quoted expressions so both variants match through one path.
type Matcher struct {
	keywords    []string
	expressions []*regexp.Regexp
}

// NewMatcher compiles rawPattern into a Matcher. In regex mode the whole
// pattern is compiled as one expression. Otherwise the pattern is split on
// commas, each keyword trimmed and matched as a literal substring. Empty
// keywords are dropped; a pattern with no keywords left is an error, as is
// a regular expression that does not compile.
func NewMatcher(rawPattern string, regexMode bool, ignoreCase bool) (*Matcher, error) {
	if regexMode {
		compiled, compileError := compileExpression(rawPattern, ignoreCase)
		if compileError != nil {
			return nil, fmt.Errorf(errorInvalidRegexFormat, compileError)
		}
		return &Matcher{
			keywords:    []string{rawPattern},
			expressions: []*regexp.Regexp{compiled},
		}, nil
	}

	var keywords []string
	var expressions []*regexp.Regexp
	for _, rawKeyword := range strings.Split(rawPattern, keywordSeparator) {
		keyword := strings.TrimSpace(rawKeyword)
		if keyword == "" {
			continue
		}
		compiled, compileError := compileExpression(regexp.QuoteMeta(keyword), ignoreCase)
		if compileError != nil {
			return nil, fmt.Errorf(errorInvalidRegexFormat, compileError)
		}
		keywords = append(keywords, keyword)
		expressions = append(expressions, compiled)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf(errorEmptyPatternFormat, rawPattern)
	}
	return &Matcher{keywords: keywords, expressions: expressions}, nil
}

// compileExpression compiles expression, prefixing the case-insensitive flag
// when requested.
func compileExpression(expression string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		expression = caseInsensitivePrefix + expression
	}
	return regexp.Compile(expression)
}

// Match reports the first configured keyword whose expression matches input.
// In regex mode the reported keyword is the pattern source.
func (matcher *Matcher) Match(input string) (string, bool) {
	for expressionIndex, expression := range matcher.expressions {
		if expression.MatchString(input) {
			return matcher.keywords[expressionIndex], true
		}
	}
	return "", false
}

// FindAll returns every matched substring of input across all configured
// expressions, in configuration order.
func (matcher *Matcher) FindAll(input string) []string {
	var matchedSubstrings []string
	for _, expression := range matcher.expressions {
		matchedSubstrings = append(matchedSubstrings, expression.FindAllString(input, -1)...)
	}
	return matchedSubstrings
}
