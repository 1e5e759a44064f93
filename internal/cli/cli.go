// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kasugano/shinju/internal/commands"
	"github.com/kasugano/shinju/internal/config"
	"github.com/kasugano/shinju/internal/output"
	"github.com/kasugano/shinju/internal/search"
	"github.com/kasugano/shinju/internal/services/clipboard"
	"github.com/kasugano/shinju/internal/tokenizer"
	"github.com/kasugano/shinju/internal/utils"
)

const (
	rootUse              = "shinju [directory]"
	rootShortDescription = "display an annotated directory tree with optional search"
	rootLongDescription  = `shinju renders a directory tree with box-drawing connectors.
It matches file names and file contents against literal keywords or regular
expressions, highlights matches inline, prunes the tree down to matching
branches, and estimates per-file token counts.`
	// rootUsageExample demonstrates common invocations.
	rootUsageExample = `  # Render the current directory
  shinju

  # Find TODO or FIXME markers under ./src
  shinju -s TODO,FIXME src

  # Show only Go files whose name matches a regex
  shinju -r -n '.*\.go$' -m .`

	allFlagName                = "all"
	allFlagShorthand           = "a"
	allFlagDescription         = "include hidden entries"
	dirsOnlyFlagName           = "dirs-only"
	dirsOnlyFlagShorthand      = "d"
	dirsOnlyFlagDescription    = "list directories only"
	levelFlagName              = "level"
	levelFlagShorthand         = "L"
	levelFlagDescription       = "maximum descent depth"
	searchFlagName             = "search"
	searchFlagShorthand        = "s"
	searchFlagDescription      = "pattern to search for inside files"
	nameFlagName               = "name"
	nameFlagShorthand          = "n"
	nameFlagDescription        = "pattern to match against entry names"
	regexFlagName              = "regex"
	regexFlagShorthand         = "r"
	regexFlagDescription       = "treat patterns as regular expressions"
	ignoreCaseFlagName         = "ignore-case"
	ignoreCaseFlagShorthand    = "i"
	ignoreCaseFlagDescription  = "match case-insensitively"
	matchesOnlyFlagName        = "matches-only"
	matchesOnlyFlagShorthand   = "m"
	matchesOnlyFlagDescription = "show only branches that contain matches"
	exclusionFlagName          = "e"
	exclusionFlagDescription   = "exclude entries matching pattern"
	summaryFlagName            = "summary"
	summaryFlagDescription     = "print the statistics summary"
	bannerFlagName             = "banner"
	bannerFlagDescription      = "print the banner on interactive terminals"
	tokensFlagName             = "tokens"
	tokensFlagDescription      = "include token counts"
	modelFlagName              = "model"
	modelFlagDescription       = "tokenizer model to use for token counting"
	copyFlagName               = "copy"
	copyFlagShorthand          = "c"
	copyFlagDescription        = "copy the rendered tree to the clipboard"
	noColorFlagName            = "no-color"
	noColorFlagDescription     = "disable colored output"
	configFlagName             = "config"
	configFlagDescription      = "path to a configuration file"
	initConfigFlagName         = "init-config"
	initConfigFlagDescription  = "write a default configuration file (local or global) and exit"
	versionFlagName            = "version"
	versionFlagShorthand       = "v"
	versionFlagDescription     = "display application version"

	versionTemplate           = "shinju version: %s\n"
	initConfigWrittenTemplate = "Configuration written to %s\n"
	defaultDirectoryPath      = "."
	defaultTokenizerModelName = "gpt-4o"

	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing root path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorNotDirectoryFormat reports a root path that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorInvalidLevelFormat reports a depth limit below one.
	errorInvalidLevelFormat = "invalid --%s value %d: must be at least 1"
	// errorPatternFormat reports an uncompilable search or name pattern.
	errorPatternFormat = "invalid --%s pattern: %w"
	// errorClipboardCopyFormat reports a failed clipboard write.
	errorClipboardCopyFormat = "copy to clipboard: %w"

	errorMatchesOnlyRequiresPattern = "--" + matchesOnlyFlagName + " requires --" + searchFlagName + " or --" + nameFlagName
)

// rootCommandOptions stores the flag values of the root command.
type rootCommandOptions struct {
	includeHidden     bool
	directoriesOnly   bool
	maximumDepth      int
	contentPattern    string
	namePattern       string
	regexMode         bool
	ignoreCase        bool
	matchesOnly       bool
	exclusionPatterns []string
	summaryEnabled    bool
	bannerEnabled     bool
	tokensEnabled     bool
	tokenizerModel    string
	clipboardEnabled  bool
	colorDisabled     bool
	configFilePath    string
	initConfigTarget  string
	showVersion       bool
}

// Execute runs the shinju application.
func Execute() error {
	var options rootCommandOptions
	rootCommand := createRootCommand(&options)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command bound to options.
func createRootCommand(options *rootCommandOptions) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runRootCommand(command, arguments, options)
		},
	}

	flagSet := rootCommand.Flags()
	registerBooleanFlag(flagSet, &options.includeHidden, allFlagName, allFlagShorthand, false, allFlagDescription)
	registerBooleanFlag(flagSet, &options.directoriesOnly, dirsOnlyFlagName, dirsOnlyFlagShorthand, false, dirsOnlyFlagDescription)
	flagSet.IntVarP(&options.maximumDepth, levelFlagName, levelFlagShorthand, 0, levelFlagDescription)
	flagSet.StringVarP(&options.contentPattern, searchFlagName, searchFlagShorthand, utils.EmptyString, searchFlagDescription)
	flagSet.StringVarP(&options.namePattern, nameFlagName, nameFlagShorthand, utils.EmptyString, nameFlagDescription)
	registerBooleanFlag(flagSet, &options.regexMode, regexFlagName, regexFlagShorthand, false, regexFlagDescription)
	registerBooleanFlag(flagSet, &options.ignoreCase, ignoreCaseFlagName, ignoreCaseFlagShorthand, false, ignoreCaseFlagDescription)
	registerBooleanFlag(flagSet, &options.matchesOnly, matchesOnlyFlagName, matchesOnlyFlagShorthand, false, matchesOnlyFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(flagSet, &options.summaryEnabled, summaryFlagName, utils.EmptyString, true, summaryFlagDescription)
	registerBooleanFlag(flagSet, &options.bannerEnabled, bannerFlagName, utils.EmptyString, true, bannerFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, utils.EmptyString, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboardEnabled, copyFlagName, copyFlagShorthand, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.colorDisabled, noColorFlagName, utils.EmptyString, false, noColorFlagDescription)
	flagSet.StringVar(&options.configFilePath, configFlagName, utils.EmptyString, configFlagDescription)
	flagSet.StringVar(&options.initConfigTarget, initConfigFlagName, utils.EmptyString, initConfigFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, versionFlagShorthand, false, versionFlagDescription)

	return rootCommand
}

// runRootCommand resolves configuration and flags, validates them, and
// renders the requested directory tree.
func runRootCommand(command *cobra.Command, arguments []string, options *rootCommandOptions) error {
	if options.showVersion {
		fmt.Printf(versionTemplate, utils.GetApplicationVersion())
		return nil
	}
	if options.initConfigTarget != utils.EmptyString {
		return runConfigurationInit(command.OutOrStdout(), options.initConfigTarget)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	applyConfigurationDefaults(command, options, applicationConfiguration)

	flagSet := command.Flags()
	if options.maximumDepth < 0 || (flagSet.Changed(levelFlagName) && options.maximumDepth < 1) {
		return fmt.Errorf(errorInvalidLevelFormat, levelFlagName, options.maximumDepth)
	}

	directoryPath := defaultDirectoryPath
	if len(arguments) > 0 {
		directoryPath = arguments[0]
	}
	absoluteDirectoryPath, pathError := resolveAndValidateRoot(directoryPath)
	if pathError != nil {
		return pathError
	}

	var nameMatcher *search.Matcher
	if options.namePattern != utils.EmptyString {
		compiledMatcher, matcherError := search.NewMatcher(options.namePattern, options.regexMode, options.ignoreCase)
		if matcherError != nil {
			return fmt.Errorf(errorPatternFormat, nameFlagName, matcherError)
		}
		nameMatcher = compiledMatcher
	}
	var contentMatcher *search.Matcher
	if options.contentPattern != utils.EmptyString {
		compiledMatcher, matcherError := search.NewMatcher(options.contentPattern, options.regexMode, options.ignoreCase)
		if matcherError != nil {
			return fmt.Errorf(errorPatternFormat, searchFlagName, matcherError)
		}
		contentMatcher = compiledMatcher
	}
	if options.matchesOnly && nameMatcher == nil && contentMatcher == nil {
		return errors.New(errorMatchesOnlyRequiresPattern)
	}

	var tokenCounter tokenizer.Counter
	if options.tokensEnabled {
		createdCounter, _, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenizerModel})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
	}

	if options.colorDisabled {
		color.NoColor = true
	}

	return runDirectoryTree(directoryTreeOptions{
		RootPath:          absoluteDirectoryPath,
		IncludeHidden:     options.includeHidden,
		DirectoriesOnly:   options.directoriesOnly,
		MaximumDepth:      options.maximumDepth,
		ExclusionPatterns: options.exclusionPatterns,
		NameMatcher:       nameMatcher,
		ContentMatcher:    contentMatcher,
		MatchesOnly:       options.matchesOnly,
		TokenCounter:      tokenCounter,
		SummaryEnabled:    options.summaryEnabled,
		BannerEnabled:     options.bannerEnabled && isInteractiveTerminal(),
		ClipboardEnabled:  options.clipboardEnabled,
	})
}

// directoryTreeOptions carries the resolved settings for one tree rendering.
// Writer and Clipboard are injectable; nil selects standard output and the
// system clipboard.
type directoryTreeOptions struct {
	RootPath          string
	IncludeHidden     bool
	DirectoriesOnly   bool
	MaximumDepth      int
	ExclusionPatterns []string
	NameMatcher       *search.Matcher
	ContentMatcher    *search.Matcher
	MatchesOnly       bool
	TokenCounter      tokenizer.Counter
	SummaryEnabled    bool
	BannerEnabled     bool
	ClipboardEnabled  bool
	Writer            io.Writer
	Clipboard         clipboard.Copier
}

// runDirectoryTree builds the annotated tree and renders it. The colored
// rendering goes to the writer; when the clipboard is enabled a plain
// rendering without the banner is copied as well.
func runDirectoryTree(options directoryTreeOptions) error {
	outputWriter := options.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	treeBuilder := commands.TreeBuilder{
		IncludeHidden:     options.IncludeHidden,
		DirectoriesOnly:   options.DirectoriesOnly,
		MaxDepth:          options.MaximumDepth,
		ExclusionPatterns: options.ExclusionPatterns,
		NameMatcher:       options.NameMatcher,
		ContentMatcher:    options.ContentMatcher,
		ContentScanner:    search.NewScanner(),
		MatchesOnly:       options.MatchesOnly,
		TokenCounter:      options.TokenCounter,
	}
	rootNode, statistics, buildError := treeBuilder.Build(options.RootPath)
	if buildError != nil {
		return buildError
	}

	renderOptions := output.RenderOptions{
		NameSearch:    options.NameMatcher != nil,
		ContentSearch: options.ContentMatcher != nil,
	}
	renderer := output.NewRenderer(renderOptions)
	if options.BannerEnabled {
		renderer.WriteBanner(outputWriter)
	}
	renderer.Render(outputWriter, rootNode, statistics, options.SummaryEnabled)

	if options.ClipboardEnabled {
		clipboardCopier := options.Clipboard
		if clipboardCopier == nil {
			clipboardCopier = clipboard.NewService()
		}
		clipboardBuffer := &bytes.Buffer{}
		renderOptions.Plain = true
		plainRenderer := output.NewRenderer(renderOptions)
		plainRenderer.Render(clipboardBuffer, rootNode, statistics, options.SummaryEnabled)
		if copyError := clipboardCopier.Copy(clipboardBuffer.String()); copyError != nil {
			return fmt.Errorf(errorClipboardCopyFormat, copyError)
		}
	}
	return nil
}

// applyConfigurationDefaults overlays configuration values onto every flag
// the user did not set explicitly. Exclusion patterns accumulate instead.
func applyConfigurationDefaults(command *cobra.Command, options *rootCommandOptions, configuration config.ApplicationConfiguration) {
	flagSet := command.Flags()
	if configuration.All != nil && !flagSet.Changed(allFlagName) {
		options.includeHidden = *configuration.All
	}
	if configuration.DirsOnly != nil && !flagSet.Changed(dirsOnlyFlagName) {
		options.directoriesOnly = *configuration.DirsOnly
	}
	if configuration.Level != nil && !flagSet.Changed(levelFlagName) {
		options.maximumDepth = *configuration.Level
	}
	if configuration.IgnoreCase != nil && !flagSet.Changed(ignoreCaseFlagName) {
		options.ignoreCase = *configuration.IgnoreCase
	}
	if configuration.MatchesOnly != nil && !flagSet.Changed(matchesOnlyFlagName) {
		options.matchesOnly = *configuration.MatchesOnly
	}
	if configuration.Summary != nil && !flagSet.Changed(summaryFlagName) {
		options.summaryEnabled = *configuration.Summary
	}
	if configuration.Banner != nil && !flagSet.Changed(bannerFlagName) {
		options.bannerEnabled = *configuration.Banner
	}
	if configuration.Color != nil && !flagSet.Changed(noColorFlagName) {
		options.colorDisabled = !*configuration.Color
	}
	if len(configuration.Exclude) > 0 {
		combined := append(append([]string{}, configuration.Exclude...), options.exclusionPatterns...)
		options.exclusionPatterns = utils.DeduplicatePatterns(combined)
	}
	if configuration.Tokens.Enabled != nil && !flagSet.Changed(tokensFlagName) {
		options.tokensEnabled = *configuration.Tokens.Enabled
	}
	if configuration.Tokens.Model != utils.EmptyString && !flagSet.Changed(modelFlagName) {
		options.tokenizerModel = configuration.Tokens.Model
	}
	if configuration.Clipboard != nil && !flagSet.Changed(copyFlagName) {
		options.clipboardEnabled = *configuration.Clipboard
	}
}

// resolveAndValidateRoot converts the input path to absolute form and checks
// that it names an existing directory.
func resolveAndValidateRoot(inputPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return utils.EmptyString, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	pathInfo, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return utils.EmptyString, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return utils.EmptyString, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !pathInfo.IsDir() {
		return utils.EmptyString, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return cleanPath, nil
}

// runConfigurationInit writes the default configuration for the target.
func runConfigurationInit(writer io.Writer, target string) error {
	writtenPath, initializationError := config.InitializeConfiguration(config.InitOptions{
		Target: config.InitTarget(target),
	})
	if initializationError != nil {
		return initializationError
	}
	fmt.Fprintf(writer, initConfigWrittenTemplate, writtenPath)
	return nil
}

func isInteractiveTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
