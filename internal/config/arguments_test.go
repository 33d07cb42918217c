package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/codeheader/internal/config"
	"github.com/temirov/codeheader/internal/types"
)

const (
	headerFileName  = "LICENSE.txt"
	headerContent   = "/* LICENSE */\n"
	inputDirName    = "input"
	outputDirName   = "output"
	existingDirName = "existing"
)

type fixture struct {
	headerPath string
	inputPath  string
	outputPath string
	root       string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	headerPath := filepath.Join(root, headerFileName)
	if err := os.WriteFile(headerPath, []byte(headerContent), 0o600); err != nil {
		t.Fatalf("write header: %v", err)
	}
	inputPath := filepath.Join(root, inputDirName)
	if err := os.Mkdir(inputPath, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, existingDirName), 0o755); err != nil {
		t.Fatalf("mkdir existing: %v", err)
	}
	return fixture{
		headerPath: headerPath,
		inputPath:  inputPath,
		outputPath: filepath.Join(root, outputDirName),
		root:       root,
	}
}

func TestParseArguments(t *testing.T) {
	testCases := []struct {
		name               string
		arguments          []string
		expectedError      error
		expectedExtensions []string
	}{
		{
			name:          "too_few_arguments",
			arguments:     []string{"h", "in", "out", "add"},
			expectedError: config.ErrInsufficientArguments,
		},
		{
			name:          "no_arguments",
			arguments:     nil,
			expectedError: config.ErrInsufficientArguments,
		},
		{
			name:          "blank_extensions",
			arguments:     []string{"h", "in", "out", "add", " ", "."},
			expectedError: config.ErrNoExtensions,
		},
		{
			name:               "normalizes_and_deduplicates",
			arguments:          []string{"h", "in", "out", "add", ".cpp", " .H ", "cpp", "hpp", ".CPP"},
			expectedExtensions: []string{".cpp", ".h", ".hpp"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsed, err := config.ParseArguments(testCase.arguments)
			if testCase.expectedError != nil {
				if !errors.Is(err, testCase.expectedError) {
					t.Fatalf("expected %v, got %v", testCase.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArguments error: %v", err)
			}
			if parsed.HeaderFile != "h" || parsed.InputDirectory != "in" || parsed.OutputDirectory != "out" || parsed.Action != "add" {
				t.Fatalf("unexpected positional mapping: %+v", parsed)
			}
			if !reflect.DeepEqual(parsed.Extensions, testCase.expectedExtensions) {
				t.Fatalf("expected extensions %v, got %v", testCase.expectedExtensions, parsed.Extensions)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	testCases := []struct {
		input    string
		expected types.Action
		valid    bool
	}{
		{input: "add", expected: types.ActionAdd, valid: true},
		{input: "ADD", expected: types.ActionAdd, valid: true},
		{input: "Remove", expected: types.ActionRemove, valid: true},
		{input: " remove ", expected: types.ActionRemove, valid: true},
		{input: "delete", valid: false},
		{input: "", valid: false},
	}
	for _, testCase := range testCases {
		action, err := config.ParseAction(testCase.input)
		if !testCase.valid {
			if !errors.Is(err, config.ErrUnsupportedAction) {
				t.Fatalf("expected unsupported action for %q, got %v", testCase.input, err)
			}
			continue
		}
		if err != nil || action != testCase.expected {
			t.Fatalf("ParseAction(%q) = %q, %v", testCase.input, action, err)
		}
	}
}

func TestValidate(t *testing.T) {
	setup := newFixture(t)

	testCases := []struct {
		name          string
		mutate        func(arguments *config.Arguments)
		expectedError error
	}{
		{
			name:          "missing_header",
			mutate:        func(arguments *config.Arguments) { arguments.HeaderFile = filepath.Join(setup.root, "absent.txt") },
			expectedError: config.ErrHeaderFileMissing,
		},
		{
			name:          "header_is_directory",
			mutate:        func(arguments *config.Arguments) { arguments.HeaderFile = setup.inputPath },
			expectedError: config.ErrHeaderFileMissing,
		},
		{
			name:          "missing_input",
			mutate:        func(arguments *config.Arguments) { arguments.InputDirectory = filepath.Join(setup.root, "absent") },
			expectedError: config.ErrInputDirectoryMissing,
		},
		{
			name:          "input_is_file",
			mutate:        func(arguments *config.Arguments) { arguments.InputDirectory = setup.headerPath },
			expectedError: config.ErrInputDirectoryMissing,
		},
		{
			name:          "output_exists",
			mutate:        func(arguments *config.Arguments) { arguments.OutputDirectory = filepath.Join(setup.root, existingDirName) },
			expectedError: config.ErrOutputDirectoryExists,
		},
		{
			name:          "output_is_existing_file",
			mutate:        func(arguments *config.Arguments) { arguments.OutputDirectory = setup.headerPath },
			expectedError: config.ErrOutputDirectoryExists,
		},
		{
			name:          "unsupported_action",
			mutate:        func(arguments *config.Arguments) { arguments.Action = "rename" },
			expectedError: config.ErrUnsupportedAction,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			arguments := config.Arguments{
				HeaderFile:      setup.headerPath,
				InputDirectory:  setup.inputPath,
				OutputDirectory: setup.outputPath,
				Action:          "add",
				Extensions:      []string{".cpp"},
			}
			testCase.mutate(&arguments)
			if _, err := config.Validate(arguments); !errors.Is(err, testCase.expectedError) {
				t.Fatalf("expected %v, got %v", testCase.expectedError, err)
			}
		})
	}
}

func TestValidateLoadsHeader(t *testing.T) {
	setup := newFixture(t)
	configuration, err := config.Validate(config.Arguments{
		HeaderFile:      setup.headerPath,
		InputDirectory:  setup.inputPath,
		OutputDirectory: setup.outputPath,
		Action:          "REMOVE",
		Extensions:      []string{".cpp", ".h"},
	})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if string(configuration.HeaderContent) != headerContent {
		t.Fatalf("unexpected header content %q", string(configuration.HeaderContent))
	}
	if configuration.Action != types.ActionRemove {
		t.Fatalf("expected remove action, got %s", configuration.Action)
	}
	if !filepath.IsAbs(configuration.InputDirectory) || !filepath.IsAbs(configuration.OutputDirectory) {
		t.Fatalf("expected absolute directories: %+v", configuration)
	}
	if _, statErr := os.Stat(setup.outputPath); !os.IsNotExist(statErr) {
		t.Fatalf("validation must not create the output directory")
	}
}

func TestValidateDropsHeaderByteOrderMark(t *testing.T) {
	setup := newFixture(t)
	if err := os.WriteFile(setup.headerPath, []byte("\xEF\xBB\xBF"+headerContent), 0o600); err != nil {
		t.Fatalf("write header: %v", err)
	}
	configuration, err := config.Validate(config.Arguments{
		HeaderFile:      setup.headerPath,
		InputDirectory:  setup.inputPath,
		OutputDirectory: setup.outputPath,
		Action:          "remove",
		Extensions:      []string{".cpp"},
	})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if string(configuration.HeaderContent) != headerContent {
		t.Fatalf("expected header without byte order mark, got %q", string(configuration.HeaderContent))
	}
}

func TestConfigurationIsSelected(t *testing.T) {
	configuration := config.NewConfiguration("h", nil, "in", "out", types.ActionAdd, []string{"cpp", ".H"})
	testCases := []struct {
		fileName string
		expected bool
	}{
		{fileName: "main.cpp", expected: true},
		{fileName: "MAIN.CPP", expected: true},
		{fileName: "util.h", expected: true},
		{fileName: "util.hpp", expected: false},
		{fileName: "Makefile", expected: false},
		{fileName: "trailing.", expected: false},
		{fileName: "archive.cpp.bak", expected: false},
		{fileName: "dir.cpp/readme", expected: false},
	}
	for _, testCase := range testCases {
		if selected := configuration.IsSelected(testCase.fileName); selected != testCase.expected {
			t.Fatalf("IsSelected(%q) = %t, expected %t", testCase.fileName, selected, testCase.expected)
		}
	}
}
