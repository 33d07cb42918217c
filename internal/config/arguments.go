// Package config turns command line arguments and configuration files into the
// immutable run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/codeheader/internal/header"
	"github.com/temirov/codeheader/internal/types"
	"github.com/temirov/codeheader/internal/utils"
)

// MinimumArgumentCount is the number of positional arguments a run needs:
// header file, input directory, output directory, action, and one extension.
const MinimumArgumentCount = 5

const (
	extensionSeparator = "."

	errorInsufficientArgumentsFormat = "%w: expected at least %d, got %d"
	errorHeaderFileFormat            = "%w: '%s'"
	errorHeaderNotRegularFormat      = "%w: '%s' is not a regular file"
	errorHeaderReadFormat            = "read header file '%s': %w"
	errorInputDirectoryFormat        = "%w: '%s'"
	errorInputNotDirectoryFormat     = "%w: '%s' is not a directory"
	errorOutputDirectoryFormat       = "%w: '%s', use a new output directory"
	errorOutputStatFormat            = "inspect output directory '%s': %w"
	errorUnsupportedActionFormat     = "%w '%s'"
	errorAbsolutePathFormat          = "resolve absolute path for '%s': %w"
)

var (
	// ErrInsufficientArguments reports fewer positional arguments than MinimumArgumentCount.
	ErrInsufficientArguments = errors.New("insufficient arguments")
	// ErrNoExtensions reports that every extension argument was blank.
	ErrNoExtensions = errors.New("no file extensions selected")
	// ErrHeaderFileMissing reports a header file that does not exist or cannot be read.
	ErrHeaderFileMissing = errors.New("cannot find input header file")
	// ErrInputDirectoryMissing reports an input directory that does not exist.
	ErrInputDirectoryMissing = errors.New("cannot find input directory")
	// ErrOutputDirectoryExists reports an output directory that already exists.
	ErrOutputDirectoryExists = errors.New("output directory already exists")
	// ErrUnsupportedAction reports an action other than add or remove.
	ErrUnsupportedAction = errors.New("unsupported action")
)

// Arguments holds the positional arguments of a run before validation.
type Arguments struct {
	HeaderFile      string
	InputDirectory  string
	OutputDirectory string
	Action          string
	Extensions      []string
}

// Configuration is the validated, read-only configuration of one run.
type Configuration struct {
	HeaderFile      string
	HeaderContent   []byte
	InputDirectory  string
	OutputDirectory string
	Action          types.Action
	Extensions      []string
	extensionSet    map[string]struct{}
}

// ParseArguments splits positional arguments into their roles and normalizes the extension list.
func ParseArguments(arguments []string) (Arguments, error) {
	if len(arguments) < MinimumArgumentCount {
		return Arguments{}, fmt.Errorf(errorInsufficientArgumentsFormat, ErrInsufficientArguments, MinimumArgumentCount, len(arguments))
	}
	extensions := NormalizeExtensions(arguments[4:])
	if len(extensions) == 0 {
		return Arguments{}, ErrNoExtensions
	}
	return Arguments{
		HeaderFile:      arguments[0],
		InputDirectory:  arguments[1],
		OutputDirectory: arguments[2],
		Action:          arguments[3],
		Extensions:      extensions,
	}, nil
}

// NormalizeExtension trims value, lower-cases it, and ensures a single leading dot.
// Blank values normalize to the empty string.
func NormalizeExtension(value string) string {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimLeft(trimmed, extensionSeparator)
	if trimmed == "" {
		return ""
	}
	return extensionSeparator + strings.ToLower(trimmed)
}

// NormalizeExtensions normalizes every value, drops blanks, and removes duplicates keeping first order.
func NormalizeExtensions(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		if extension := NormalizeExtension(value); extension != "" {
			normalized = append(normalized, extension)
		}
	}
	return utils.DeduplicateStrings(normalized)
}

// ParseAction maps a case-insensitive action name onto a types.Action.
func ParseAction(value string) (types.Action, error) {
	switch types.Action(strings.ToLower(strings.TrimSpace(value))) {
	case types.ActionAdd:
		return types.ActionAdd, nil
	case types.ActionRemove:
		return types.ActionRemove, nil
	default:
		return "", fmt.Errorf(errorUnsupportedActionFormat, ErrUnsupportedAction, value)
	}
}

// Validate checks the filesystem preconditions of a run and loads the header content.
//
// #nosec G304
func Validate(arguments Arguments) (Configuration, error) {
	headerInfo, headerStatError := os.Stat(arguments.HeaderFile)
	if headerStatError != nil {
		return Configuration{}, fmt.Errorf(errorHeaderFileFormat, ErrHeaderFileMissing, arguments.HeaderFile)
	}
	if !headerInfo.Mode().IsRegular() {
		return Configuration{}, fmt.Errorf(errorHeaderNotRegularFormat, ErrHeaderFileMissing, arguments.HeaderFile)
	}

	inputInfo, inputStatError := os.Stat(arguments.InputDirectory)
	if inputStatError != nil {
		return Configuration{}, fmt.Errorf(errorInputDirectoryFormat, ErrInputDirectoryMissing, arguments.InputDirectory)
	}
	if !inputInfo.IsDir() {
		return Configuration{}, fmt.Errorf(errorInputNotDirectoryFormat, ErrInputDirectoryMissing, arguments.InputDirectory)
	}

	if _, outputStatError := os.Lstat(arguments.OutputDirectory); outputStatError == nil {
		return Configuration{}, fmt.Errorf(errorOutputDirectoryFormat, ErrOutputDirectoryExists, arguments.OutputDirectory)
	} else if !os.IsNotExist(outputStatError) {
		return Configuration{}, fmt.Errorf(errorOutputStatFormat, arguments.OutputDirectory, outputStatError)
	}

	action, actionError := ParseAction(arguments.Action)
	if actionError != nil {
		return Configuration{}, actionError
	}

	inputDirectory, inputAbsoluteError := filepath.Abs(arguments.InputDirectory)
	if inputAbsoluteError != nil {
		return Configuration{}, fmt.Errorf(errorAbsolutePathFormat, arguments.InputDirectory, inputAbsoluteError)
	}
	outputDirectory, outputAbsoluteError := filepath.Abs(arguments.OutputDirectory)
	if outputAbsoluteError != nil {
		return Configuration{}, fmt.Errorf(errorAbsolutePathFormat, arguments.OutputDirectory, outputAbsoluteError)
	}

	headerContent, headerReadError := os.ReadFile(arguments.HeaderFile)
	if headerReadError != nil {
		return Configuration{}, fmt.Errorf(errorHeaderReadFormat, arguments.HeaderFile, headerReadError)
	}

	headerContent = header.TrimByteOrderMark(headerContent)

	return NewConfiguration(arguments.HeaderFile, headerContent, inputDirectory, outputDirectory, action, arguments.Extensions), nil
}

// NewConfiguration assembles a Configuration from already validated parts.
func NewConfiguration(headerFile string, headerContent []byte, inputDirectory, outputDirectory string, action types.Action, extensions []string) Configuration {
	normalized := NormalizeExtensions(extensions)
	extensionSet := make(map[string]struct{}, len(normalized))
	for _, extension := range normalized {
		extensionSet[extension] = struct{}{}
	}
	return Configuration{
		HeaderFile:      headerFile,
		HeaderContent:   append([]byte(nil), headerContent...),
		InputDirectory:  inputDirectory,
		OutputDirectory: outputDirectory,
		Action:          action,
		Extensions:      normalized,
		extensionSet:    extensionSet,
	}
}

// IsSelected reports whether the file name carries one of the selected extensions.
// Names without a dot are never selected.
func (configuration Configuration) IsSelected(fileName string) bool {
	extension := filepath.Ext(fileName)
	if extension == "" || extension == extensionSeparator {
		return false
	}
	_, selected := configuration.extensionSet[strings.ToLower(extension)]
	return selected
}
