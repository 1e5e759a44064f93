package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/kasugano/shinju/internal/output"
	"github.com/kasugano/shinju/internal/types"
)

const rootPath = "/work/project"

func plainRenderer(nameSearch, contentSearch bool) *output.Renderer {
	return output.NewRenderer(output.RenderOptions{
		NameSearch:    nameSearch,
		ContentSearch: contentSearch,
		Plain:         true,
	})
}

func renderToString(renderer *output.Renderer, rootNode *types.TreeNode, statistics *types.TreeStats, includeSummary bool) string {
	buffer := &bytes.Buffer{}
	renderer.Render(buffer, rootNode, statistics, includeSummary)
	return buffer.String()
}

// treeStructureExpected defines the connector layout for a nested tree.
const treeStructureExpected = rootPath + "\n" +
	"├── docs/\n" +
	"│   ├── guide.md\n" +
	"│   └── notes/\n" +
	"│       └── todo.md\n" +
	"└── main.go\n"

// TestRenderConnectorLayout verifies connector glyphs and child prefixes.
func TestRenderConnectorLayout(testingInstance *testing.T) {
	todoNode := &types.TreeNode{Name: "todo.md", IsLast: true}
	notesNode := &types.TreeNode{Name: "notes", IsDir: true, IsLast: true, Children: []*types.TreeNode{todoNode}}
	guideNode := &types.TreeNode{Name: "guide.md"}
	docsNode := &types.TreeNode{Name: "docs", IsDir: true, Children: []*types.TreeNode{guideNode, notesNode}}
	mainNode := &types.TreeNode{Name: "main.go", IsLast: true}
	rootNode := &types.TreeNode{Name: "project", Path: rootPath, IsDir: true, Children: []*types.TreeNode{docsNode, mainNode}}

	actual := renderToString(plainRenderer(false, false), rootNode, &types.TreeStats{}, false)
	if actual != treeStructureExpected {
		testingInstance.Errorf("unexpected rendering:\n%s", actual)
	}
}

// TestRenderEntryAnnotations verifies the annotation layout per entry kind.
func TestRenderEntryAnnotations(testingInstance *testing.T) {
	singleMatch := &types.ContentMatch{Count: 1, Keyword: "needle", Line: "a needle line"}
	tripleMatch := &types.ContentMatch{Count: 3, Keyword: "needle", Line: "needle needle needle"}

	testCases := []struct {
		name          string
		nameSearch    bool
		contentSearch bool
		node          *types.TreeNode
		expectedLine  string
	}{
		{
			name:         "name_match_file",
			nameSearch:   true,
			node:         &types.TreeNode{Name: "needle.txt", IsLast: true, NameMatch: "needle"},
			expectedLine: "└── needle.txt [match]",
		},
		{
			name:         "name_match_directory",
			nameSearch:   true,
			node:         &types.TreeNode{Name: "needles", IsDir: true, IsLast: true, NameMatch: "needle"},
			expectedLine: "└── needles/ [match]",
		},
		{
			name:          "name_and_content_match_shows_snippet_without_count",
			nameSearch:    true,
			contentSearch: true,
			node:          &types.TreeNode{Name: "needle.txt", IsLast: true, NameMatch: "needle", ContentMatch: singleMatch},
			expectedLine:  "└── needle.txt ['needle' => 'a needle line']",
		},
		{
			name:          "content_match_single",
			contentSearch: true,
			node:          &types.TreeNode{Name: "data.txt", IsLast: true, ContentMatch: singleMatch},
			expectedLine:  "└── data.txt [1 match] ['needle' => 'a needle line']",
		},
		{
			name:          "content_match_plural",
			contentSearch: true,
			node:          &types.TreeNode{Name: "data.txt", IsLast: true, ContentMatch: tripleMatch},
			expectedLine:  "└── data.txt [3 matches] ['needle' => 'needle needle needle']",
		},
		{
			name:          "unmatched_directory_keeps_suffix",
			contentSearch: true,
			node:          &types.TreeNode{Name: "src", IsDir: true, IsLast: true},
			expectedLine:  "└── src/",
		},
		{
			name:         "unmatched_file_with_search_active",
			nameSearch:   true,
			node:         &types.TreeNode{Name: "alpha.txt", IsLast: true},
			expectedLine: "└── alpha.txt",
		},
		{
			name:         "token_count_suffix",
			node:         &types.TreeNode{Name: "alpha.txt", IsLast: true, Tokens: 12, TokensCounted: true},
			expectedLine: "└── alpha.txt (12 tokens)",
		},
		{
			name:         "zero_token_file_still_reported",
			node:         &types.TreeNode{Name: "empty.txt", IsLast: true, Tokens: 0, TokensCounted: true},
			expectedLine: "└── empty.txt (0 tokens)",
		},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			rootNode := &types.TreeNode{Name: "project", Path: rootPath, IsDir: true, Children: []*types.TreeNode{testCase.node}}
			expected := rootPath + "\n" + testCase.expectedLine + "\n"
			actual := renderToString(plainRenderer(testCase.nameSearch, testCase.contentSearch), rootNode, &types.TreeStats{}, false)
			if actual != expected {
				testingInstance.Errorf("expected %q, got %q", expected, actual)
			}
		})
	}
}

// noticeTreeExpected places the notice as a pseudo-child without a connector.
const noticeTreeExpected = rootPath + "\n" +
	"├── locked/\n" +
	"│   [permission denied]\n" +
	"└── open/\n" +
	"    └── file.txt\n"

// TestRenderNoticePlacement verifies notice lines inherit only the child
// prefix.
func TestRenderNoticePlacement(testingInstance *testing.T) {
	lockedNode := &types.TreeNode{Name: "locked", IsDir: true, Notice: types.NoticePermissionDenied}
	fileNode := &types.TreeNode{Name: "file.txt", IsLast: true}
	openNode := &types.TreeNode{Name: "open", IsDir: true, IsLast: true, Children: []*types.TreeNode{fileNode}}
	rootNode := &types.TreeNode{Name: "project", Path: rootPath, IsDir: true, Children: []*types.TreeNode{lockedNode, openNode}}

	actual := renderToString(plainRenderer(false, false), rootNode, &types.TreeStats{}, false)
	if actual != noticeTreeExpected {
		testingInstance.Errorf("unexpected rendering:\n%s", actual)
	}
}

// TestRenderRootNotice verifies an unreadable root annotates at column zero.
func TestRenderRootNotice(testingInstance *testing.T) {
	rootNode := &types.TreeNode{Name: "project", Path: rootPath, IsDir: true, Notice: types.NoticeUnreadable}

	expected := rootPath + "\n[unreadable]\n"
	actual := renderToString(plainRenderer(false, false), rootNode, &types.TreeStats{}, false)
	if actual != expected {
		testingInstance.Errorf("expected %q, got %q", expected, actual)
	}
}

// TestRenderSummary verifies pluralization and per-mode match segments.
func TestRenderSummary(testingInstance *testing.T) {
	testCases := []struct {
		name          string
		nameSearch    bool
		contentSearch bool
		statistics    types.TreeStats
		expected      string
	}{
		{
			name:       "plural_counts_without_search",
			statistics: types.TreeStats{Directories: 2, Files: 3},
			expected:   "2 directories, 3 files",
		},
		{
			name:       "singular_counts",
			statistics: types.TreeStats{Directories: 1, Files: 1},
			expected:   "1 directory, 1 file",
		},
		{
			name:       "name_segment_present_even_at_zero",
			nameSearch: true,
			statistics: types.TreeStats{Directories: 1, Files: 2},
			expected:   "1 directory, 2 files, 0 name matches",
		},
		{
			name:          "both_segments_with_singular_match",
			nameSearch:    true,
			contentSearch: true,
			statistics:    types.TreeStats{Directories: 4, Files: 9, NameMatches: 1, ContentMatches: 5},
			expected:      "4 directories, 9 files, 1 name match, 5 content matches",
		},
		{
			name:          "content_segment_only",
			contentSearch: true,
			statistics:    types.TreeStats{Files: 1, ContentMatches: 1},
			expected:      "0 directories, 1 file, 1 content match",
		},
		{
			name:       "token_total_appended",
			statistics: types.TreeStats{Directories: 1, Files: 2, Tokens: 321},
			expected:   "1 directory, 2 files, 321 tokens",
		},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			rootNode := &types.TreeNode{Name: "project", Path: rootPath, IsDir: true}
			statistics := testCase.statistics
			expected := rootPath + "\n\n" + testCase.expected + "\n"
			actual := renderToString(plainRenderer(testCase.nameSearch, testCase.contentSearch), rootNode, &statistics, true)
			if actual != expected {
				testingInstance.Errorf("expected %q, got %q", expected, actual)
			}
		})
	}
}

// TestWriteBanner verifies the banner shape and title line.
func TestWriteBanner(testingInstance *testing.T) {
	buffer := &bytes.Buffer{}
	plainRenderer(false, false).WriteBanner(buffer)

	bannerText := buffer.String()
	if !strings.Contains(bannerText, "神樹(GodTree) + Search Tool") {
		testingInstance.Errorf("missing banner title: %q", bannerText)
	}
	bannerLines := strings.Split(strings.TrimSuffix(bannerText, "\n"), "\n")
	if len(bannerLines) != 8 {
		testingInstance.Errorf("expected 8 banner lines, got %d: %q", len(bannerLines), bannerText)
	}
	if bannerLines[0] != "" || bannerLines[5] != "" || bannerLines[7] != "" {
		testingInstance.Errorf("expected blank separator lines: %q", bannerText)
	}
}

// TestRenderColorModes verifies plain renderers never emit escape codes while
// colorized renderers do.
func TestRenderColorModes(testingInstance *testing.T) {
	previousNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = previousNoColor }()

	fileNode := &types.TreeNode{Name: "needle.txt", IsLast: true, NameMatch: "needle"}
	rootNode := &types.TreeNode{Name: "project", Path: rootPath, IsDir: true, Children: []*types.TreeNode{fileNode}}

	colorized := renderToString(output.NewRenderer(output.RenderOptions{NameSearch: true}), rootNode, &types.TreeStats{}, false)
	if !strings.Contains(colorized, "\x1b[") {
		testingInstance.Errorf("expected escape codes in colorized rendering: %q", colorized)
	}

	plain := renderToString(plainRenderer(true, false), rootNode, &types.TreeStats{}, false)
	if strings.Contains(plain, "\x1b[") {
		testingInstance.Errorf("plain rendering must not contain escape codes: %q", plain)
	}
}
