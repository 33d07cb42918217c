package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/codeheader/internal/utils"
)

// nestedFileName defines the name of the file used for relative path tests.
const nestedFileName = "sample.cpp"

// nestedDirectoryName defines the directory used for relative path tests.
const nestedDirectoryName = "src"

// TestDeduplicateStrings verifies that DeduplicateStrings removes duplicates and keeps first-seen order.
func TestDeduplicateStrings(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		values   []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			values:   []string{".cpp", ".h", ".cpp"},
			expected: []string{".cpp", ".h"},
		},
		{
			testName: "keeps unique",
			values:   []string{".h", ".cpp"},
			expected: []string{".h", ".cpp"},
		},
		{
			testName: "empty input",
			values:   nil,
			expected: []string{},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicateStrings(testCase.values)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestRelativePathOrSelf verifies relative path calculations.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	nestedDirectory := filepath.Join(temporaryRoot, nestedDirectoryName)
	if creationError := os.Mkdir(nestedDirectory, 0o755); creationError != nil {
		testingInstance.Fatalf("failed to create directory: %v", creationError)
	}
	nestedPath := filepath.Join(nestedDirectory, nestedFileName)
	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "root path returns dot",
			fullPath: temporaryRoot,
			root:     temporaryRoot,
			expected: ".",
		},
		{
			testName: "nested path returns slash separated relative path",
			fullPath: nestedPath,
			root:     temporaryRoot,
			expected: nestedDirectoryName + "/" + nestedFileName,
		},
	}
	for index, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}
