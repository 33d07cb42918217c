package utils_test

import (
	"testing"

	"github.com/temirov/codeheader/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestGetApplicationVersionPrefersLinkedVersion(t *testing.T) {
	original := utils.Version
	t.Cleanup(func() { utils.Version = original })

	utils.Version = "v9.9.9"
	if version := utils.GetApplicationVersion(); version != "v9.9.9" {
		t.Fatalf("expected linked version, got %s", version)
	}
}
