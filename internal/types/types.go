// Package types defines the data structures shared across the shinju packages.
package types

// Notice values annotate directory nodes whose descent ended abnormally.
const (
	NoticePermissionDenied = "permission denied"
	NoticeUnreadable       = "unreadable"
	NoticeSymlinkCycle     = "symlink cycle"
)

// ContentMatch records the outcome of a content scan that found at least one hit.
type ContentMatch struct {
	Count   int
	Keyword string
	Line    string
}

// TreeNode represents one filesystem entry annotated with search results.
// Nodes are fully populated during the build phase; only IsLast changes
// afterwards, fixed once pruning has settled the surviving sibling groups.
type TreeNode struct {
	Name          string
	Path          string
	IsDir         bool
	Depth         int
	Children      []*TreeNode
	NameMatch     string
	ContentMatch  *ContentMatch
	Tokens        int
	TokensCounted bool
	Notice        string
	IsLast        bool
}

// TreeStats aggregates entry and match counts across one traversal. Counts
// reflect the build phase: entries removed by match-only pruning are still
// included, entries filtered before node construction are not. The root
// directory itself is never counted.
type TreeStats struct {
	Directories    int
	Files          int
	NameMatches    int
	ContentMatches int
	Tokens         int
}
