// Package utils contains general helper functions used across the shinju tool.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// directoryPatternSuffix marks exclusion patterns that apply to directories only.
const directoryPatternSuffix = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ShouldExclude reports whether a directory entry matches any exclusion
// pattern. A pattern with a trailing slash excludes directories with that
// exact name; every other pattern is evaluated against the entry name with
// filepath.Match semantics.
func ShouldExclude(directoryEntry os.DirEntry, exclusionPatterns []string) bool {
	entryName := directoryEntry.Name()
	for _, patternValue := range exclusionPatterns {
		if strings.HasSuffix(patternValue, directoryPatternSuffix) {
			patternDirectory := strings.TrimSuffix(patternValue, directoryPatternSuffix)
			if directoryEntry.IsDir() && entryName == patternDirectory {
				return true
			}
			continue
		}
		isMatched, matchError := filepath.Match(patternValue, entryName)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}
