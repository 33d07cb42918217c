// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codeheader/internal/config"
	"github.com/temirov/codeheader/internal/services/clipboard"
	"github.com/temirov/codeheader/internal/types"
	"github.com/temirov/codeheader/internal/utils"
)

const (
	formatFlagName       = "format"
	summaryFlagName      = "summary"
	progressFlagName     = "progress"
	copyFlagName         = "copy"
	configFlagName       = "config"
	verboseFlagName      = "verbose"
	versionTemplate      = "codeheader version: {{.Version}}\n"
	rootUse              = "codeheader <header_file> <input_dir> <output_dir> <add|remove> <ext1> [ext2 ...]"
	rootShortDescription = "copy a directory tree adding or removing a license header"
	rootLongDescription  = `codeheader copies input_dir into a new output_dir.
Files whose extension is listed get the content of header_file prepended (add)
or stripped from their beginning (remove). Every other file is copied unchanged.
The output directory must not exist.`
	rootUsageExample = `  # Prepend license.txt to Go and C sources
  codeheader license.txt ./src ./dist add go .c

  # Strip the header again, reporting JSON lines
  codeheader --format json license.txt ./dist ./clean remove .go .c`

	formatFlagDescription   = "output format (raw or json)"
	summaryFlagDescription  = "print a summary after the run"
	progressFlagDescription = "show a progress bar on stderr"
	copyFlagDescription     = "copy the rendered report to the clipboard"
	configFlagDescription   = "configuration file with default settings"
	verboseFlagDescription  = "log traversal details"

	invalidFormatMessage             = "invalid format value '%s'"
	errorInsufficientArgumentsFormat = "%w: expected at least %d, got %d"
	errorDebugLoggerFormat           = "create debug logger: %w"
	logMessageConfigurationSet       = "configuration loaded"
)

// Dependencies holds the collaborators of the root command.
type Dependencies struct {
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *zap.Logger
	Clipboard     clipboard.Copier
	HomeDirectory string
}

// runOptions stores the flag values of one invocation.
type runOptions struct {
	format          string
	summary         bool
	progress        bool
	copyToClipboard bool
	configPath      string
	verbose         bool
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the codeheader application with the process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Logger:    logger,
		Clipboard: clipboard.NewService(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Stdout == nil {
		dependencies.Stdout = io.Discard
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = io.Discard
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}

	var options runOptions
	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Version:       utils.GetApplicationVersion(),
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if len(arguments) < config.MinimumArgumentCount {
				return fmt.Errorf(errorInsufficientArgumentsFormat, config.ErrInsufficientArguments, config.MinimumArgumentCount, len(arguments))
			}
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			command.SilenceUsage = true
			settings, settingsError := resolveSettings(command, dependencies, options)
			if settingsError != nil {
				return settingsError
			}
			runDependencies := dependencies
			if options.verbose {
				debugLogger, loggerError := utils.NewDebugLogger()
				if loggerError != nil {
					return fmt.Errorf(errorDebugLoggerFormat, loggerError)
				}
				defer func() {
					_ = debugLogger.Sync()
				}()
				runDependencies.Logger = debugLogger
			}
			return runHeaderTool(command.Context(), runDependencies, settings, arguments)
		},
	}
	rootCommand.SetOut(dependencies.Stdout)
	rootCommand.SetErr(dependencies.Stderr)
	rootCommand.SetVersionTemplate(versionTemplate)

	flagSet := rootCommand.Flags()
	flagSet.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flagSet, &options.summary, summaryFlagName, true, summaryFlagDescription)
	registerBooleanFlag(flagSet, &options.progress, progressFlagName, false, progressFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, false, verboseFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	return rootCommand
}

// runSettings combines flags with configuration file defaults.
type runSettings struct {
	format          string
	summary         bool
	progress        bool
	copyToClipboard bool
	extensions      []string
}

// resolveSettings applies configuration file defaults to every flag the user did not set.
func resolveSettings(command *cobra.Command, dependencies Dependencies, options runOptions) (runSettings, error) {
	applicationConfiguration, sources, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		HomeDirectory:    dependencies.HomeDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return runSettings{}, loadError
	}
	dependencies.Logger.Debug(logMessageConfigurationSet, zap.Strings("sources", sources))

	flags := command.Flags()
	settings := runSettings{
		format:          options.format,
		summary:         options.summary,
		progress:        options.progress,
		copyToClipboard: options.copyToClipboard,
		extensions:      applicationConfiguration.Extensions,
	}
	if !flags.Changed(formatFlagName) && applicationConfiguration.Format != "" {
		settings.format = applicationConfiguration.Format
	}
	if !flags.Changed(summaryFlagName) {
		settings.summary = config.BoolOrDefault(applicationConfiguration.Summary, options.summary)
	}
	if !flags.Changed(progressFlagName) {
		settings.progress = config.BoolOrDefault(applicationConfiguration.Progress, options.progress)
	}
	if !flags.Changed(copyFlagName) {
		settings.copyToClipboard = config.BoolOrDefault(applicationConfiguration.Clipboard, options.copyToClipboard)
	}
	if !isSupportedFormat(settings.format) {
		return runSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}
	return settings, nil
}
