// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dirsnap/dirsnap/internal/classify"
	"github.com/dirsnap/dirsnap/internal/config"
	"github.com/dirsnap/dirsnap/internal/decode"
	"github.com/dirsnap/dirsnap/internal/ignore"
	"github.com/dirsnap/dirsnap/internal/progress"
	"github.com/dirsnap/dirsnap/internal/render"
	"github.com/dirsnap/dirsnap/internal/services/clipboard"
	"github.com/dirsnap/dirsnap/internal/snapshot"
	"github.com/dirsnap/dirsnap/internal/tokenizer"
	"github.com/dirsnap/dirsnap/internal/types"
	"github.com/dirsnap/dirsnap/internal/utils"
	"github.com/dirsnap/dirsnap/internal/walk"
)

const (
	recursiveFlagName      = "recursive"
	recursiveFlagShorthand = "r"
	excludeFlagName        = "exclude"
	excludeFlagShorthand   = "e"
	titleFlagName          = "title"
	fontSizeFlagName       = "font-size"
	outputFlagName         = "output"
	outputFlagShorthand    = "o"
	formatFlagName         = "format"
	copyFlagName           = "copy"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	linesFlagName          = "lines"
	lineLengthFlagName     = "line-length"
	configFlagName         = "config"
	globalFlagName         = "global"
	forceFlagName          = "force"
	versionFlagName        = "version"
	versionTemplate        = "dirsnap version: %s\n"
	defaultPath            = "."
	rootUse                = "dirsnap"
	rootShortDescription   = "dirsnap command line interface"
	rootLongDescription    = `dirsnap captures a directory tree as a single reviewable document.
It applies layered gitignore rules, classifies files as text, image, or binary,
and renders the result as self-contained HTML or, through an external
converter, PDF. Use --version to print the application version.`
	versionFlagDescription = "display application version"

	snapshotUse              = "snapshot [path]"
	treeUse                  = "tree [path]"
	initUse                  = "init"
	snapshotAlias            = "s"
	treeAlias                = "t"
	snapshotShortDescription = "build and render a snapshot document (" + snapshotAlias + ")"
	treeShortDescription     = "display the snapshot tree (" + treeAlias + ")"
	initShortDescription     = "write a starter configuration file"

	// snapshotLongDescription provides detailed help for the snapshot command.
	snapshotLongDescription = `Build the snapshot document for a directory and render it.
Use --format to select html or pdf output, -o to write to a file, and --copy
to place the rendered HTML on the clipboard.`
	// snapshotUsageExample demonstrates snapshot command usage.
	snapshotUsageExample = `  # Render the current directory to stdout
  dirsnap snapshot

  # Write a PDF for a project, excluding build output
  dirsnap snapshot -e "build/" --format pdf -o project.pdf ~/src/project`

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Print the directory tree exactly as a snapshot would include it,
after the layered ignore rules are applied.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Show the tree for the current directory
  dirsnap tree

  # Only the first level, without log files
  dirsnap tree --recursive false -e "*.log" .`

	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write the default configuration template.
The file lands in the working directory, or under the home directory with --global.`

	formatHTML                = "html"
	formatPDF                 = "pdf"
	defaultTokenizerModelName = "gpt-4o"
	pdfConversionTimeout      = 2 * time.Minute
	temporaryHTMLPattern      = "dirsnap-*.html"

	recursiveFlagDescription  = "descend into subdirectories"
	excludeFlagDescription    = "additional ignore pattern in gitignore syntax"
	titleFlagDescription      = "document title"
	fontSizeFlagDescription   = "font size in pixels for rendered output (default 12)"
	outputFlagDescription     = "output file path"
	formatFlagDescription     = "output format (html or pdf)"
	copyFlagDescription       = "copy the rendered HTML to the clipboard"
	tokensFlagDescription     = "include token statistics"
	modelFlagDescription      = "tokenizer model to use for token counting"
	linesFlagDescription      = "maximum lines kept per file (default 500)"
	lineLengthFlagDescription = "maximum characters kept per line (default 300)"
	configFlagDescription     = "explicit configuration file path"
	globalFlagDescription     = "write the configuration under the home directory"
	forceFlagDescription      = "overwrite an existing configuration file"

	invalidFormatMessage     = "Invalid format value '%s'"
	pdfOutputRequiredMessage = "--format pdf requires --output"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorWriteOutputFormat reports failure to write the rendered document.
	errorWriteOutputFormat = "write output to %s: %w"
	// errorTemporaryFileFormat reports failure around the conversion scratch file.
	errorTemporaryFileFormat = "prepare HTML for conversion: %w"
	// warningRemoveTemporaryFormat reports a scratch file left behind.
	warningRemoveTemporaryFormat = "Warning: unable to remove %s: %v\n"

	messageSnapshotStarted    = "building snapshot"
	messageEntryProcessed     = "processed"
	messageEntrySkipped       = "content not included"
	messageSnapshotSummary    = "snapshot complete"
	messageTokenEstimate      = "token estimate"
	messageSnapshotWritten    = "snapshot written"
	messageCopiedToClipboard  = "snapshot copied to clipboard"
	messageConfigurationSaved = "configuration written"

	fieldRoot        = "root"
	fieldPath        = "path"
	fieldKind        = "kind"
	fieldNotice      = "notice"
	fieldFormat      = "format"
	fieldConverter   = "converter"
	fieldModel       = "model"
	fieldTokens      = "tokens"
	fieldFiles       = "files"
	fieldTextCount   = "text"
	fieldImageCount  = "image"
	fieldBinaryCount = "binary"
	fieldTotalCount  = "total"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case formatHTML, formatPDF:
		return true
	default:
		return false
	}
}

// Execute runs the dirsnap application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationLogger *zap.Logger) *cobra.Command {
	var showVersion bool
	var explicitConfigPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&explicitConfigPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createSnapshotCommand(applicationLogger, &explicitConfigPath),
		createTreeCommand(&explicitConfigPath),
		createInitCommand(applicationLogger),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// snapshotFlagValues stores the raw snapshot command flag bindings.
type snapshotFlagValues struct {
	recursive       bool
	excludePatterns []string
	title           string
	fontSize        int
	outputPath      string
	format          string
	copyToClipboard bool
	tokensEnabled   bool
	tokenModel      string
	maxFileLines    int
	maxLineRunes    int
}

// treeFlagValues stores the raw tree command flag bindings.
type treeFlagValues struct {
	recursive       bool
	excludePatterns []string
}

// snapshotSettings is the effective snapshot configuration after defaults,
// configuration files, and flags are layered.
type snapshotSettings struct {
	recursive       bool
	excludePatterns []string
	title           string
	fontSize        int
	outputPath      string
	format          string
	copyToClipboard bool
	tokensEnabled   bool
	tokenModel      string
	maxFileLines    int
	maxLineRunes    int
}

// treeSettings is the effective tree configuration.
type treeSettings struct {
	recursive       bool
	excludePatterns []string
}

// createSnapshotCommand returns the snapshot subcommand.
func createSnapshotCommand(applicationLogger *zap.Logger, explicitConfigPath *string) *cobra.Command {
	var flags snapshotFlagValues

	snapshotCommand := &cobra.Command{
		Use:     snapshotUse,
		Aliases: []string{snapshotAlias},
		Short:   snapshotShortDescription,
		Long:    snapshotLongDescription,
		Example: snapshotUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) == 1 {
				rootArgument = arguments[0]
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				ExplicitFilePath: *explicitConfigPath,
			})
			if configurationError != nil {
				return configurationError
			}
			settings, settingsError := resolveSnapshotSettings(command.Flags().Changed, flags, applicationConfiguration.Snapshot)
			if settingsError != nil {
				return settingsError
			}
			return runSnapshot(applicationLogger, rootArgument, settings)
		},
	}

	registerBooleanFlag(snapshotCommand.Flags(), &flags.recursive, recursiveFlagName, recursiveFlagShorthand, true, recursiveFlagDescription)
	snapshotCommand.Flags().StringArrayVarP(&flags.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	snapshotCommand.Flags().StringVar(&flags.title, titleFlagName, "", titleFlagDescription)
	snapshotCommand.Flags().IntVar(&flags.fontSize, fontSizeFlagName, 0, fontSizeFlagDescription)
	snapshotCommand.Flags().StringVarP(&flags.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	snapshotCommand.Flags().StringVar(&flags.format, formatFlagName, formatHTML, formatFlagDescription)
	registerBooleanFlag(snapshotCommand.Flags(), &flags.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(snapshotCommand.Flags(), &flags.tokensEnabled, tokensFlagName, "", false, tokensFlagDescription)
	snapshotCommand.Flags().StringVar(&flags.tokenModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	snapshotCommand.Flags().IntVar(&flags.maxFileLines, linesFlagName, 0, linesFlagDescription)
	snapshotCommand.Flags().IntVar(&flags.maxLineRunes, lineLengthFlagName, 0, lineLengthFlagDescription)
	return snapshotCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(explicitConfigPath *string) *cobra.Command {
	var flags treeFlagValues

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) == 1 {
				rootArgument = arguments[0]
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				ExplicitFilePath: *explicitConfigPath,
			})
			if configurationError != nil {
				return configurationError
			}
			settings := resolveTreeSettings(command.Flags().Changed, flags, applicationConfiguration.Tree)
			return runTree(command.OutOrStdout(), rootArgument, settings)
		},
	}

	registerBooleanFlag(treeCommand.Flags(), &flags.recursive, recursiveFlagName, recursiveFlagShorthand, true, recursiveFlagDescription)
	treeCommand.Flags().StringArrayVarP(&flags.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	return treeCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(applicationLogger *zap.Logger) *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: forceOverwrite})
			if initError != nil {
				return initError
			}
			applicationLogger.Info(messageConfigurationSaved, zap.String(fieldPath, writtenPath))
			return nil
		},
	}

	registerBooleanFlag(initCommand.Flags(), &globalTarget, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &forceOverwrite, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

// resolveSnapshotSettings layers the configuration file under the flags that
// were explicitly set. Flags win over configuration, configuration wins over
// the built-in defaults.
func resolveSnapshotSettings(flagChanged func(string) bool, flags snapshotFlagValues, configuration config.SnapshotCommandConfiguration) (snapshotSettings, error) {
	settings := snapshotSettings{
		recursive:  true,
		format:     formatHTML,
		tokenModel: defaultTokenizerModelName,
	}
	if configuration.Recursive != nil {
		settings.recursive = *configuration.Recursive
	}
	if configuration.Format != "" {
		settings.format = strings.ToLower(configuration.Format)
	}
	settings.title = configuration.Title
	if configuration.FontSize != nil {
		settings.fontSize = *configuration.FontSize
	}
	if configuration.Clipboard != nil {
		settings.copyToClipboard = *configuration.Clipboard
	}
	if configuration.Tokens.Enabled != nil {
		settings.tokensEnabled = *configuration.Tokens.Enabled
	}
	if configuration.Tokens.Model != "" {
		settings.tokenModel = configuration.Tokens.Model
	}
	if configuration.Limits.Lines != nil {
		settings.maxFileLines = *configuration.Limits.Lines
	}
	if configuration.Limits.LineLength != nil {
		settings.maxLineRunes = *configuration.Limits.LineLength
	}

	if flagChanged(recursiveFlagName) {
		settings.recursive = flags.recursive
	}
	if flagChanged(formatFlagName) {
		settings.format = strings.ToLower(flags.format)
	}
	if flagChanged(titleFlagName) {
		settings.title = flags.title
	}
	if flagChanged(fontSizeFlagName) {
		settings.fontSize = flags.fontSize
	}
	if flagChanged(copyFlagName) {
		settings.copyToClipboard = flags.copyToClipboard
	}
	if flagChanged(tokensFlagName) {
		settings.tokensEnabled = flags.tokensEnabled
	}
	if flagChanged(modelFlagName) {
		settings.tokenModel = flags.tokenModel
	}
	if flagChanged(linesFlagName) {
		settings.maxFileLines = flags.maxFileLines
	}
	if flagChanged(lineLengthFlagName) {
		settings.maxLineRunes = flags.maxLineRunes
	}
	settings.outputPath = flags.outputPath
	settings.excludePatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Paths.Exclude...), flags.excludePatterns...))

	if !isSupportedFormat(settings.format) {
		return snapshotSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}
	if settings.format == formatPDF && settings.outputPath == "" {
		return snapshotSettings{}, errors.New(pdfOutputRequiredMessage)
	}
	return settings, nil
}

// resolveTreeSettings layers the tree configuration under the explicit flags.
func resolveTreeSettings(flagChanged func(string) bool, flags treeFlagValues, configuration config.TreeCommandConfiguration) treeSettings {
	settings := treeSettings{recursive: true}
	if configuration.Recursive != nil {
		settings.recursive = *configuration.Recursive
	}
	if flagChanged(recursiveFlagName) {
		settings.recursive = flags.recursive
	}
	settings.excludePatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Paths.Exclude...), flags.excludePatterns...))
	return settings
}

// runSnapshot builds the document for one root and renders it according to
// the resolved settings.
func runSnapshot(applicationLogger *zap.Logger, rootArgument string, settings snapshotSettings) error {
	rootPath, rootError := resolveAndValidateRoot(rootArgument)
	if rootError != nil {
		return rootError
	}

	engine, engineError := ignore.NewEngine(rootPath, settings.excludePatterns)
	if engineError != nil {
		return engineError
	}
	walker := walk.NewWalker(engine, classify.NewClassifier())
	entries, treeLines, scanError := walker.Scan(rootPath, settings.recursive)
	if scanError != nil {
		return scanError
	}

	builder := snapshot.NewBuilder(decode.NewDecoder(0), types.Policy{
		MaxFileLines: settings.maxFileLines,
		MaxLineRunes: settings.maxLineRunes,
	})
	if settings.tokensEnabled {
		tokenCounter, tokenModel, counterError := tokenizer.NewCounter(settings.tokenModel)
		if counterError != nil {
			return counterError
		}
		builder.TokenCounter = tokenCounter
		builder.TokenModel = tokenModel
	}

	options := types.SnapshotOptions{
		Recursive:           settings.recursive,
		ExtraIgnorePatterns: settings.excludePatterns,
		Title:               settings.title,
		FontSize:            settings.fontSize,
	}
	document, buildError := buildDocumentStreaming(context.Background(), builder, rootPath, entries, treeLines, options, newProgressConsumer(applicationLogger))
	if buildError != nil {
		return buildError
	}
	if document.TokenStats != nil {
		applicationLogger.Info(messageTokenEstimate,
			zap.String(fieldModel, document.TokenStats.Model),
			zap.Int(fieldTokens, document.TokenStats.Tokens),
			zap.Int(fieldFiles, document.TokenStats.CountedFiles))
	}

	var renderedPage bytes.Buffer
	if renderError := render.WriteHTML(&renderedPage, document); renderError != nil {
		return renderError
	}

	if settings.copyToClipboard {
		if copyError := clipboard.NewService().Copy(renderedPage.String()); copyError != nil {
			return copyError
		}
		applicationLogger.Info(messageCopiedToClipboard)
	}

	if settings.format == formatPDF {
		return writePDFOutput(applicationLogger, renderedPage.Bytes(), settings.outputPath)
	}
	return writeHTMLOutput(applicationLogger, renderedPage.Bytes(), settings.outputPath)
}

// runTree prints the tree lines for one root.
func runTree(destination io.Writer, rootArgument string, settings treeSettings) error {
	rootPath, rootError := resolveAndValidateRoot(rootArgument)
	if rootError != nil {
		return rootError
	}

	engine, engineError := ignore.NewEngine(rootPath, settings.excludePatterns)
	if engineError != nil {
		return engineError
	}
	walker := walk.NewWalker(engine, classify.NewClassifier())
	_, treeLines, scanError := walker.Scan(rootPath, settings.recursive)
	if scanError != nil {
		return scanError
	}

	for _, treeLine := range treeLines {
		if _, writeError := fmt.Fprintln(destination, treeLine); writeError != nil {
			return writeError
		}
	}
	return nil
}

// buildDocumentStreaming runs the builder as an event producer and the
// consumer concurrently, mirroring the build progress to the consumer while
// the document is assembled.
func buildDocumentStreaming(
	ctx context.Context,
	builder *snapshot.Builder,
	rootPath string,
	entries []types.Entry,
	treeLines []string,
	options types.SnapshotOptions,
	consume func(progress.Event) error,
) (types.SnapshotDocument, error) {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan progress.Event)
	var document types.SnapshotDocument

	group.Go(func() error {
		defer close(events)
		builder.Progress = func(event progress.Event) {
			select {
			case events <- event:
			case <-streamCtx.Done():
			}
		}
		document = builder.Build(rootPath, entries, treeLines, options)
		return nil
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if consumeError := consume(event); consumeError != nil {
					return consumeError
				}
			}
		}
	})

	if waitError := group.Wait(); waitError != nil && !errors.Is(waitError, context.Canceled) {
		return types.SnapshotDocument{}, waitError
	}
	return document, nil
}

// newProgressConsumer logs build events. Entries are logged at debug level so
// routine runs stay quiet; screened content and warnings are surfaced.
func newProgressConsumer(applicationLogger *zap.Logger) func(progress.Event) error {
	return func(event progress.Event) error {
		switch event.Kind {
		case progress.EventKindStart:
			applicationLogger.Info(messageSnapshotStarted, zap.String(fieldRoot, event.RootPath))
		case progress.EventKindEntry:
			if event.Notice != "" && event.EntryKind == types.EntryKindText {
				applicationLogger.Warn(messageEntrySkipped,
					zap.String(fieldPath, event.RelativePath),
					zap.String(fieldNotice, event.Notice))
				return nil
			}
			applicationLogger.Debug(messageEntryProcessed,
				zap.String(fieldPath, event.RelativePath),
				zap.String(fieldKind, event.EntryKind))
		case progress.EventKindWarning:
			applicationLogger.Warn(event.Notice, zap.String(fieldPath, event.RelativePath))
		case progress.EventKindSummary:
			if event.Counts != nil {
				applicationLogger.Info(messageSnapshotSummary,
					zap.Int(fieldTextCount, event.Counts.Text),
					zap.Int(fieldImageCount, event.Counts.Image),
					zap.Int(fieldBinaryCount, event.Counts.Binary),
					zap.Int(fieldTotalCount, event.Counts.Total()))
			}
		case progress.EventKindDone:
		}
		return nil
	}
}

// writeHTMLOutput writes the rendered page to the output path, or to stdout
// when no path is set.
func writeHTMLOutput(applicationLogger *zap.Logger, page []byte, outputPath string) error {
	if outputPath == "" {
		_, writeError := os.Stdout.Write(page)
		return writeError
	}
	if writeError := os.WriteFile(outputPath, page, 0o644); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	applicationLogger.Info(messageSnapshotWritten,
		zap.String(fieldPath, outputPath),
		zap.String(fieldFormat, formatHTML))
	return nil
}

// writePDFOutput renders the page into a scratch HTML file and hands it to
// the external converter.
func writePDFOutput(applicationLogger *zap.Logger, page []byte, outputPath string) error {
	converter, converterError := render.NewConverter()
	if converterError != nil {
		return converterError
	}

	temporaryFile, temporaryError := os.CreateTemp("", temporaryHTMLPattern)
	if temporaryError != nil {
		return fmt.Errorf(errorTemporaryFileFormat, temporaryError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if removeError := os.Remove(temporaryPath); removeError != nil && !os.IsNotExist(removeError) {
			fmt.Fprintf(os.Stderr, warningRemoveTemporaryFormat, temporaryPath, removeError)
		}
	}()
	if _, writeError := temporaryFile.Write(page); writeError != nil {
		temporaryFile.Close()
		return fmt.Errorf(errorTemporaryFileFormat, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorTemporaryFileFormat, closeError)
	}

	conversionCtx, cancel := context.WithTimeout(context.Background(), pdfConversionTimeout)
	defer cancel()
	if convertError := converter.Convert(conversionCtx, temporaryPath, outputPath); convertError != nil {
		return convertError
	}
	applicationLogger.Info(messageSnapshotWritten,
		zap.String(fieldPath, outputPath),
		zap.String(fieldFormat, formatPDF),
		zap.String(fieldConverter, converter.Name()))
	return nil
}

// resolveAndValidateRoot converts the input path to absolute form and
// validates that it names an existing directory.
func resolveAndValidateRoot(input string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(input)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, input, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	pathInformation, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, input)
		}
		return "", fmt.Errorf(errorStatFormat, input, fileStatusError)
	}
	if !pathInformation.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, input)
	}
	return cleanPath, nil
}
