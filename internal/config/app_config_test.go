package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/codeheader/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name               string
		globalContent      string
		explicitContent    string
		expectFormat       string
		expectSummary      *bool
		expectProgress     *bool
		expectClipboard    *bool
		expectExtensions   []string
		expectSourcesCount int
	}{
		{
			name:               "explicit_overrides_global",
			globalContent:      "format: raw\nsummary: false\nextensions:\n  - cpp\n",
			explicitContent:    "format: json\nprogress: true\nextensions:\n  - .H\n  - .cpp\n",
			expectFormat:       "json",
			expectSummary:      boolPointer(false),
			expectProgress:     boolPointer(true),
			expectExtensions:   []string{".cpp", ".h"},
			expectSourcesCount: 2,
		},
		{
			name:               "global_only",
			globalContent:      "clipboard: true\n",
			expectClipboard:    boolPointer(true),
			expectExtensions:   []string{},
			expectSourcesCount: 1,
		},
		{
			name:               "no_files",
			expectExtensions:   []string{},
			expectSourcesCount: 0,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			if testCase.globalContent != "" {
				configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
				if err := os.MkdirAll(configDir, 0o755); err != nil {
					t.Fatalf("create config dir: %v", err)
				}
				if err := os.WriteFile(filepath.Join(configDir, utils.ConfigFileName), []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			var explicitPath string
			if testCase.explicitContent != "" {
				explicitPath = filepath.Join(workingDir, "custom.yaml")
				if err := os.WriteFile(explicitPath, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			loaded, sources, err := LoadApplicationConfiguration(LoadOptions{
				HomeDirectory:    homeDir,
				ExplicitFilePath: explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if len(sources) != testCase.expectSourcesCount {
				t.Fatalf("expected %d sources, got %v", testCase.expectSourcesCount, sources)
			}
			if loaded.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, loaded.Format)
			}
			assertBoolPointer(t, "summary", loaded.Summary, testCase.expectSummary)
			assertBoolPointer(t, "progress", loaded.Progress, testCase.expectProgress)
			assertBoolPointer(t, "clipboard", loaded.Clipboard, testCase.expectClipboard)
			if !reflect.DeepEqual(loaded.Extensions, testCase.expectExtensions) {
				t.Fatalf("expected extensions %v, got %v", testCase.expectExtensions, loaded.Extensions)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	_, _, err := LoadApplicationConfiguration(LoadOptions{
		HomeDirectory:    t.TempDir(),
		ExplicitFilePath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestBoolOrDefault(t *testing.T) {
	if !BoolOrDefault(nil, true) {
		t.Fatalf("expected fallback for nil pointer")
	}
	if BoolOrDefault(boolPointer(false), true) {
		t.Fatalf("expected pointer value to win")
	}
}

func assertBoolPointer(t *testing.T, name string, actual *bool, expected *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override, got %t", name, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", name)
	}
}
