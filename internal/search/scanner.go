package search

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/kasugano/shinju/internal/types"
	"github.com/kasugano/shinju/internal/utils"
)

const (
	// snippetRuneLimit caps the length of the reported matching line.
	snippetRuneLimit = 50
	// snippetEllipsis marks a truncated snippet line.
	snippetEllipsis = "..."

	lineBufferInitialSize = 64 * 1024
	lineBufferMaximumSize = 1024 * 1024
)

// excludedExtensions lists extensions of archive and disk-image formats that
// are never opened for content scanning.
var excludedExtensions = map[string]struct{}{
	"gz":   {},
	"zip":  {},
	"tar":  {},
	"rar":  {},
	"7z":   {},
	"bz2":  {},
	"xz":   {},
	"deb":  {},
	"img":  {},
	"iso":  {},
	"vmdk": {},
	"dll":  {},
	"ovf":  {},
	"ova":  {},
}

// Scanner scans file contents for matcher hits, skipping excluded extensions
// and binary files. Skips and read failures degrade silently so a scan never
// interrupts the traversal that requested it.
type Scanner struct{}

// NewScanner constructs a content Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsExcludedExtension reports whether name carries an extension that is never
// scanned. The comparison is case-insensitive and ignores the leading dot; a
// bare dotfile name has no extension.
func (scanner *Scanner) IsExcludedExtension(name string) bool {
	extension := filepath.Ext(name)
	if extension == "" || extension == name {
		return false
	}
	normalized := strings.ToLower(strings.TrimPrefix(extension, "."))
	_, excluded := excludedExtensions[normalized]
	return excluded
}

// Scan reads the file at path line by line and reports the aggregate match
// outcome: the total number of matched substrings across all lines and
// keywords, plus the first hit's matched text and trimmed line. It returns
// nil when the file is skipped or contains no matches.
func (scanner *Scanner) Scan(path string, matcher *Matcher) *types.ContentMatch {
	if matcher == nil {
		return nil
	}
	if scanner.IsExcludedExtension(filepath.Base(path)) {
		return nil
	}
	if utils.IsFileBinary(path) {
		return nil
	}

	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil
	}
	defer fileHandle.Close()

	lineScanner := bufio.NewScanner(fileHandle)
	lineScanner.Buffer(make([]byte, 0, lineBufferInitialSize), lineBufferMaximumSize)

	matchCount := 0
	firstHitRecorded := false
	firstKeyword := ""
	firstLine := ""
	for lineScanner.Scan() {
		lineText := lineScanner.Text()
		matchedSubstrings := matcher.FindAll(lineText)
		if len(matchedSubstrings) == 0 {
			continue
		}
		matchCount += len(matchedSubstrings)
		if !firstHitRecorded {
			firstHitRecorded = true
			firstKeyword = matchedSubstrings[0]
			firstLine = trimSnippetLine(lineText)
		}
	}
	if lineScanner.Err() != nil {
		return nil
	}
	if matchCount == 0 {
		return nil
	}
	return &types.ContentMatch{Count: matchCount, Keyword: firstKeyword, Line: firstLine}
}

// trimSnippetLine strips surrounding whitespace and truncates long lines to
// snippetRuneLimit runes.
func trimSnippetLine(line string) string {
	trimmed := strings.TrimSpace(line)
	lineRunes := []rune(trimmed)
	if len(lineRunes) <= snippetRuneLimit {
		return trimmed
	}
	return string(lineRunes[:snippetRuneLimit]) + snippetEllipsis
}
