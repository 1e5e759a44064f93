// Package output renders annotated directory trees as connector-drawn,
// optionally colorized text.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kasugano/shinju/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"

	nameMatchAnnotation     = "[match]"
	contentMatchCountFormat = "[%d %s]"
	contentSnippetFormat    = "['%s' => '%s']"
	singleMatchLabel        = "match"
	multipleMatchesLabel    = "matches"
	tokenCountFormat        = "(%d tokens)"
	noticeFormat            = "[%s]"

	summaryDirectoryLabel      = "directory"
	summaryDirectoriesLabel    = "directories"
	summaryFileLabel           = "file"
	summaryFilesLabel          = "files"
	summaryNameMatchLabel      = "name match"
	summaryNameMatchesLabel    = "name matches"
	summaryContentMatchLabel   = "content match"
	summaryContentMatchesLabel = "content matches"
	summaryTokensFormat        = ", %d tokens"
)

const bannerArt = `    ▄▄▄ ▐▌   ▄ ▄▄▄▄     ▗▖█  ▐▌
   ▀▄▄  ▐▌   ▄ █   █    ▗▖▀▄▄▞▘
   ▄▄▄▀ ▐▛▀▚▖█ █   █ ▄  ▐▌
        ▐▌ ▐▌█       ▀▄▄▞▘`

const bannerTitle = "   神樹(GodTree) + Search Tool"

// RenderOptions describe which annotations the renderer reports and whether
// it may emit color codes.
type RenderOptions struct {
	NameSearch    bool
	ContentSearch bool
	Plain         bool
}

// Renderer draws annotated trees with box-drawing connectors, highlights
// matches, and appends a statistics summary. A plain renderer never emits
// color codes; otherwise codes follow the global color configuration.
type Renderer struct {
	nameSearchConfigured    bool
	contentSearchConfigured bool

	directoryStyle      *color.Color
	nameMatchStyle      *color.Color
	contentMatchStyle   *color.Color
	annotationStyle     *color.Color
	snippetStyle        *color.Color
	dimStyle            *color.Color
	bannerStyle         *color.Color
	titleStyle          *color.Color
	summaryNameStyle    *color.Color
	summaryContentStyle *color.Color
}

// NewRenderer constructs a Renderer for the provided options.
func NewRenderer(options RenderOptions) *Renderer {
	renderer := &Renderer{
		nameSearchConfigured:    options.NameSearch,
		contentSearchConfigured: options.ContentSearch,

		directoryStyle:      color.New(color.FgBlue, color.Bold),
		nameMatchStyle:      color.New(color.FgGreen, color.Bold),
		contentMatchStyle:   color.New(color.FgMagenta, color.Bold),
		annotationStyle:     color.New(color.FgYellow),
		snippetStyle:        color.New(color.FgCyan),
		dimStyle:            color.New(color.Faint),
		bannerStyle:         color.New(color.FgCyan),
		titleStyle:          color.New(color.Bold),
		summaryNameStyle:    color.New(color.FgGreen),
		summaryContentStyle: color.New(color.FgMagenta),
	}
	if options.Plain {
		renderer.disableColors()
	}
	return renderer
}

func (renderer *Renderer) disableColors() {
	styles := []*color.Color{
		renderer.directoryStyle,
		renderer.nameMatchStyle,
		renderer.contentMatchStyle,
		renderer.annotationStyle,
		renderer.snippetStyle,
		renderer.dimStyle,
		renderer.bannerStyle,
		renderer.titleStyle,
		renderer.summaryNameStyle,
		renderer.summaryContentStyle,
	}
	for _, style := range styles {
		style.DisableColor()
	}
}

// WriteBanner writes the startup banner.
func (renderer *Renderer) WriteBanner(writer io.Writer) {
	fmt.Fprintln(writer)
	for _, artLine := range strings.Split(bannerArt, "\n") {
		fmt.Fprintln(writer, renderer.bannerStyle.Sprint(artLine))
	}
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, renderer.titleStyle.Sprint(bannerTitle))
	fmt.Fprintln(writer)
}

// Render writes the tree under rootNode followed, when includeSummary is
// set, by a blank line and the statistics summary. The root renders as its
// full path; every other node renders its basename behind the connector
// prefix built from its ancestors' last-sibling markers.
func (renderer *Renderer) Render(writer io.Writer, rootNode *types.TreeNode, statistics *types.TreeStats, includeSummary bool) {
	if rootNode == nil {
		return
	}
	fmt.Fprintln(writer, renderer.directoryStyle.Sprint(rootNode.Path))
	renderer.writeNotice(writer, rootNode, "")
	for _, childNode := range rootNode.Children {
		renderer.renderNode(writer, childNode, "")
	}
	if includeSummary {
		fmt.Fprintln(writer)
		fmt.Fprintln(writer, renderer.formatSummary(statistics))
	}
}

// renderNode writes one node line and recurses into its children.
func (renderer *Renderer) renderNode(writer io.Writer, node *types.TreeNode, prefix string) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, node.IsLast)
	fmt.Fprintf(writer, "%s%s\n", linePrefix, renderer.formatEntry(node))
	renderer.writeNotice(writer, node, childPrefix)
	for _, childNode := range node.Children {
		renderer.renderNode(writer, childNode, childPrefix)
	}
}

// writeNotice emits an annotated directory's pseudo-child line. The line
// carries no connector glyph, only the child prefix.
func (renderer *Renderer) writeNotice(writer io.Writer, node *types.TreeNode, childPrefix string) {
	if node.Notice == "" {
		return
	}
	fmt.Fprintf(writer, "%s%s\n", childPrefix, renderer.dimStyle.Sprint(fmt.Sprintf(noticeFormat, node.Notice)))
}

// treeNodeLinePrefix returns the node's own line prefix and the prefix its
// children inherit.
func treeNodeLinePrefix(prefix string, isLast bool) (string, string) {
	if isLast {
		return prefix + treeLastConnector, prefix + treeLastPadding
	}
	return prefix + treeBranchConnector, prefix + treeBranchPadding
}

// formatEntry styles one entry name with its match annotations. Directories
// carry a trailing slash and are never dimmed; files without a match are
// dimmed whenever some search is active so matches stand out.
func (renderer *Renderer) formatEntry(node *types.TreeNode) string {
	displayName := node.Name
	if node.IsDir {
		displayName += directorySuffix
	}

	switch {
	case node.NameMatch != "" && node.ContentMatch != nil:
		return renderer.nameMatchStyle.Sprint(displayName) +
			" " + renderer.snippetStyle.Sprint(formatSnippet(node.ContentMatch)) +
			renderer.tokenSuffix(node)
	case node.NameMatch != "":
		return renderer.nameMatchStyle.Sprint(displayName) +
			" " + renderer.annotationStyle.Sprint(nameMatchAnnotation) +
			renderer.tokenSuffix(node)
	case node.IsDir:
		return renderer.directoryStyle.Sprint(displayName)
	case node.ContentMatch != nil:
		return renderer.contentMatchStyle.Sprint(displayName) +
			" " + renderer.annotationStyle.Sprint(formatMatchCount(node.ContentMatch.Count)) +
			" " + renderer.snippetStyle.Sprint(formatSnippet(node.ContentMatch)) +
			renderer.tokenSuffix(node)
	case renderer.searchActive():
		return renderer.dimStyle.Sprint(displayName) + renderer.tokenSuffix(node)
	default:
		return displayName + renderer.tokenSuffix(node)
	}
}

func (renderer *Renderer) searchActive() bool {
	return renderer.nameSearchConfigured || renderer.contentSearchConfigured
}

// tokenSuffix returns the dimmed per-file token count, or nothing when the
// node was not counted.
func (renderer *Renderer) tokenSuffix(node *types.TreeNode) string {
	if !node.TokensCounted {
		return ""
	}
	return " " + renderer.dimStyle.Sprint(fmt.Sprintf(tokenCountFormat, node.Tokens))
}

func formatMatchCount(count int) string {
	label := multipleMatchesLabel
	if count == 1 {
		label = singleMatchLabel
	}
	return fmt.Sprintf(contentMatchCountFormat, count, label)
}

func formatSnippet(contentMatch *types.ContentMatch) string {
	return fmt.Sprintf(contentSnippetFormat, contentMatch.Keyword, contentMatch.Line)
}

// formatSummary builds the statistics line. Match segments appear only for
// configured search modes, even at zero matches; the token segment appears
// only when tokens were counted.
func (renderer *Renderer) formatSummary(statistics *types.TreeStats) string {
	if statistics == nil {
		statistics = &types.TreeStats{}
	}
	directoriesLabel := summaryDirectoriesLabel
	if statistics.Directories == 1 {
		directoriesLabel = summaryDirectoryLabel
	}
	filesLabel := summaryFilesLabel
	if statistics.Files == 1 {
		filesLabel = summaryFileLabel
	}
	summary := fmt.Sprintf("%d %s, %d %s", statistics.Directories, directoriesLabel, statistics.Files, filesLabel)

	if renderer.nameSearchConfigured {
		nameMatchesLabel := summaryNameMatchesLabel
		if statistics.NameMatches == 1 {
			nameMatchesLabel = summaryNameMatchLabel
		}
		summary += ", " + renderer.summaryNameStyle.Sprintf("%d %s", statistics.NameMatches, nameMatchesLabel)
	}
	if renderer.contentSearchConfigured {
		contentMatchesLabel := summaryContentMatchesLabel
		if statistics.ContentMatches == 1 {
			contentMatchesLabel = summaryContentMatchLabel
		}
		summary += ", " + renderer.summaryContentStyle.Sprintf("%d %s", statistics.ContentMatches, contentMatchesLabel)
	}
	if statistics.Tokens > 0 {
		summary += fmt.Sprintf(summaryTokensFormat, statistics.Tokens)
	}
	return summary
}
