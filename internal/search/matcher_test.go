package search_test

import (
	"strings"
	"testing"

	"github.com/kasugano/shinju/internal/search"
)

// TestNewMatcherRejectsInvalidInput verifies construction errors.
func TestNewMatcherRejectsInvalidInput(testingInstance *testing.T) {
	testCases := []struct {
		name       string
		rawPattern string
		regexMode  bool
	}{
		{name: "unbalanced_regex", rawPattern: "[", regexMode: true},
		{name: "empty_pattern", rawPattern: "", regexMode: false},
		{name: "only_separators", rawPattern: ", ,", regexMode: false},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			_, matcherError := search.NewMatcher(testCase.rawPattern, testCase.regexMode, false)
			if matcherError == nil {
				testingInstance.Fatalf("expected error for pattern %q", testCase.rawPattern)
			}
		})
	}
}

// TestMatcherMatch verifies keyword and regex matching.
func TestMatcherMatch(testingInstance *testing.T) {
	testCases := []struct {
		name            string
		rawPattern      string
		regexMode       bool
		ignoreCase      bool
		input           string
		expectedKeyword string
		expectedMatched bool
	}{
		{
			name:            "single_keyword_substring",
			rawPattern:      "foo",
			input:           "prefix_foo_suffix",
			expectedKeyword: "foo",
			expectedMatched: true,
		},
		{
			name:            "keyword_list_reports_first_configured_hit",
			rawPattern:      "alpha,beta",
			input:           "beta and alpha",
			expectedKeyword: "alpha",
			expectedMatched: true,
		},
		{
			name:            "keyword_list_falls_through_to_second",
			rawPattern:      "alpha, beta",
			input:           "only beta here",
			expectedKeyword: "beta",
			expectedMatched: true,
		},
		{
			name:            "case_sensitive_by_default",
			rawPattern:      "todo",
			input:           "TODO",
			expectedMatched: false,
		},
		{
			name:            "ignore_case_literal",
			rawPattern:      "todo",
			ignoreCase:      true,
			input:           "TODO: fix",
			expectedKeyword: "todo",
			expectedMatched: true,
		},
		{
			name:            "literal_mode_quotes_metacharacters",
			rawPattern:      "a.b",
			input:           "axb",
			expectedMatched: false,
		},
		{
			name:            "regex_mode_matches_expression",
			rawPattern:      `\.go$`,
			regexMode:       true,
			input:           "main.go",
			expectedKeyword: `\.go$`,
			expectedMatched: true,
		},
		{
			name:            "regex_mode_keeps_commas",
			rawPattern:      "a,b",
			regexMode:       true,
			input:           "a,b",
			expectedKeyword: "a,b",
			expectedMatched: true,
		},
		{
			name:            "regex_mode_ignore_case",
			rawPattern:      "readme",
			regexMode:       true,
			ignoreCase:      true,
			input:           "README.md",
			expectedKeyword: "readme",
			expectedMatched: true,
		},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			matcher, matcherError := search.NewMatcher(testCase.rawPattern, testCase.regexMode, testCase.ignoreCase)
			if matcherError != nil {
				testingInstance.Fatalf("NewMatcher error: %v", matcherError)
			}
			matchedKeyword, matched := matcher.Match(testCase.input)
			if matched != testCase.expectedMatched {
				testingInstance.Fatalf("expected matched=%t, got %t", testCase.expectedMatched, matched)
			}
			if matched && matchedKeyword != testCase.expectedKeyword {
				testingInstance.Fatalf("expected keyword %q, got %q", testCase.expectedKeyword, matchedKeyword)
			}
		})
	}
}

// TestMatcherFindAll verifies occurrence collection across keywords.
func TestMatcherFindAll(testingInstance *testing.T) {
	testCases := []struct {
		name       string
		rawPattern string
		regexMode  bool
		ignoreCase bool
		input      string
		expected   []string
	}{
		{
			name:       "repeated_keyword",
			rawPattern: "ab",
			input:      "ab ab ab",
			expected:   []string{"ab", "ab", "ab"},
		},
		{
			name:       "multiple_keywords_in_configuration_order",
			rawPattern: "foo,bar",
			input:      "bar foo bar",
			expected:   []string{"foo", "bar", "bar"},
		},
		{
			name:       "ignore_case_reports_actual_text",
			rawPattern: "todo",
			ignoreCase: true,
			input:      "TODO and todo",
			expected:   []string{"TODO", "todo"},
		},
		{
			name:       "regex_occurrences",
			rawPattern: "[0-9]+",
			regexMode:  true,
			input:      "a1b22c333",
			expected:   []string{"1", "22", "333"},
		},
		{
			name:       "no_hits",
			rawPattern: "absent",
			input:      "nothing here",
			expected:   nil,
		},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			matcher, matcherError := search.NewMatcher(testCase.rawPattern, testCase.regexMode, testCase.ignoreCase)
			if matcherError != nil {
				testingInstance.Fatalf("NewMatcher error: %v", matcherError)
			}
			actual := matcher.FindAll(testCase.input)
			if strings.Join(actual, "|") != strings.Join(testCase.expected, "|") {
				testingInstance.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}
