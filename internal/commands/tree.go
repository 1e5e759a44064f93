// Package commands contains the traversal and annotation logic behind the CLI.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kasugano/shinju/internal/search"
	"github.com/kasugano/shinju/internal/tokenizer"
	"github.com/kasugano/shinju/internal/types"
	"github.com/kasugano/shinju/internal/utils"
)

const (
	// warningSkipDirectoryFormat is used when a directory cannot be listed.
	warningSkipDirectoryFormat = "Warning: skipping directory %s due to error: %v\n"
	// warningTokenCountFormat is used when token estimation fails for a file.
	warningTokenCountFormat = "Warning: failed to count tokens for %s: %v\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	hiddenNamePrefix = "."
)

// Build walks rootDirectoryPath and returns the finalized tree together with
// traversal statistics. The walk runs in three phases: build the annotated
// node tree depth-first, prune unmatched subtrees when matches-only is set,
// and fix the last-sibling markers on whatever survived. Warnings for
// unreadable directories are printed to stderr; only an unresolvable root
// path is an error.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) (*types.TreeNode, *types.TreeStats, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	if treeBuilder.ContentScanner == nil {
		treeBuilder.ContentScanner = search.NewScanner()
	}

	rootNode := &types.TreeNode{
		Name:  filepath.Base(absoluteRootPath),
		Path:  absoluteRootPath,
		IsDir: true,
	}
	statistics := &types.TreeStats{}

	visitedRealPaths := make(map[string]struct{})
	if realRootPath, realPathError := filepath.EvalSymlinks(absoluteRootPath); realPathError == nil {
		visitedRealPaths[realRootPath] = struct{}{}
	}

	treeBuilder.buildChildren(rootNode, statistics, visitedRealPaths)

	if treeBuilder.MatchesOnly {
		pruneUnmatchedChildren(rootNode)
	}
	assignLastMarkers(rootNode)

	return rootNode, statistics, nil
}

// buildChildren lists parentNode's directory, constructs a child node for
// every retained entry, and recurses into subdirectories. Listing failures
// annotate parentNode instead of aborting the traversal.
func (treeBuilder *TreeBuilder) buildChildren(parentNode *types.TreeNode, statistics *types.TreeStats, visitedRealPaths map[string]struct{}) {
	directoryEntries, readDirectoryError := os.ReadDir(parentNode.Path)
	if readDirectoryError != nil {
		parentNode.Notice = listingNotice(readDirectoryError)
		fmt.Fprintf(os.Stderr, warningSkipDirectoryFormat, parentNode.Path, readDirectoryError)
		return
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if !treeBuilder.IncludeHidden && strings.HasPrefix(entryName, hiddenNamePrefix) {
			continue
		}
		if utils.ShouldExclude(directoryEntry, treeBuilder.ExclusionPatterns) {
			continue
		}

		childPath := filepath.Join(parentNode.Path, entryName)
		entryIsDirectory := directoryEntry.IsDir()
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			if targetInfo, statError := os.Stat(childPath); statError == nil {
				entryIsDirectory = targetInfo.IsDir()
			}
		}
		if treeBuilder.DirectoriesOnly && !entryIsDirectory {
			continue
		}

		childNode := &types.TreeNode{
			Name:  entryName,
			Path:  childPath,
			IsDir: entryIsDirectory,
			Depth: parentNode.Depth + 1,
		}
		if entryIsDirectory {
			statistics.Directories++
		} else {
			statistics.Files++
		}

		if treeBuilder.NameMatcher != nil {
			if matchedKeyword, nameMatched := treeBuilder.NameMatcher.Match(entryName); nameMatched {
				childNode.NameMatch = matchedKeyword
				statistics.NameMatches++
			}
		}
		if !entryIsDirectory && treeBuilder.ContentMatcher != nil {
			childNode.ContentMatch = treeBuilder.ContentScanner.Scan(childPath, treeBuilder.ContentMatcher)
			if childNode.ContentMatch != nil {
				statistics.ContentMatches++
			}
		}
		if !entryIsDirectory && treeBuilder.TokenCounter != nil {
			tokenResult, tokenError := tokenizer.CountFile(treeBuilder.TokenCounter, childPath)
			if tokenError != nil {
				fmt.Fprintf(os.Stderr, warningTokenCountFormat, childPath, tokenError)
			} else if tokenResult.Counted {
				childNode.Tokens = tokenResult.Tokens
				childNode.TokensCounted = true
				statistics.Tokens += tokenResult.Tokens
			}
		}

		if entryIsDirectory {
			treeBuilder.descend(childNode, statistics, visitedRealPaths)
		}
		parentNode.Children = append(parentNode.Children, childNode)
	}
}

// descend recurses into childNode unless the depth limit has been reached or
// the directory's real path is already on the current descent path, which
// would loop through a symlink.
func (treeBuilder *TreeBuilder) descend(childNode *types.TreeNode, statistics *types.TreeStats, visitedRealPaths map[string]struct{}) {
	if treeBuilder.MaxDepth > 0 && childNode.Depth >= treeBuilder.MaxDepth {
		return
	}

	realPath, realPathError := filepath.EvalSymlinks(childNode.Path)
	if realPathError != nil {
		realPath = childNode.Path
	}
	if _, alreadyOnPath := visitedRealPaths[realPath]; alreadyOnPath {
		childNode.Notice = types.NoticeSymlinkCycle
		return
	}

	visitedRealPaths[realPath] = struct{}{}
	treeBuilder.buildChildren(childNode, statistics, visitedRealPaths)
	delete(visitedRealPaths, realPath)
}

// listingNotice maps a directory listing failure to its node annotation.
func listingNotice(listingError error) string {
	if errors.Is(listingError, fs.ErrPermission) {
		return types.NoticePermissionDenied
	}
	return types.NoticeUnreadable
}
