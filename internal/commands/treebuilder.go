package commands

import (
	"github.com/kasugano/shinju/internal/search"
	"github.com/kasugano/shinju/internal/tokenizer"
)

// TreeBuilder walks a directory tree and produces annotated nodes using
// configured options. A zero MaxDepth means unlimited descent. NameMatcher
// and ContentMatcher are nil when the corresponding search is not configured.
type TreeBuilder struct {
	IncludeHidden     bool
	DirectoriesOnly   bool
	MaxDepth          int
	ExclusionPatterns []string
	NameMatcher       *search.Matcher
	ContentMatcher    *search.Matcher
	ContentScanner    *search.Scanner
	MatchesOnly       bool
	TokenCounter      tokenizer.Counter
}
