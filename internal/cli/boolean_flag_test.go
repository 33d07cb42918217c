package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestBooleanFlagAcceptsLiterals(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "keeps_default", defaultValue: true, arguments: nil, expected: true},
		{name: "bare_flag_enables", defaultValue: false, arguments: []string{"--summary"}, expected: true},
		{name: "equals_form", defaultValue: true, arguments: []string{"--summary=off"}, expected: false},
		{name: "separate_no", defaultValue: true, arguments: []string{"--summary", "no"}, expected: false},
		{name: "separate_yes_mixed_case", defaultValue: false, arguments: []string{"--summary", "YES"}, expected: true},
		{name: "rejects_unknown_literal", defaultValue: false, arguments: []string{"--summary=sometimes"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "flags"}
			var value bool
			registerBooleanFlag(command.Flags(), &value, summaryFlagName, testCase.defaultValue, summaryFlagDescription)
			parseError := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseError == nil {
					t.Fatalf("expected parse error for %v", testCase.arguments)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("unexpected parse error: %v", parseError)
			}
			if value != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, value)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsKeepsPositionals(t *testing.T) {
	t.Parallel()

	command := &cobra.Command{Use: "flags"}
	var summary, progress bool
	registerBooleanFlag(command.Flags(), &summary, summaryFlagName, true, summaryFlagDescription)
	registerBooleanFlag(command.Flags(), &progress, progressFlagName, false, progressFlagDescription)
	command.Flags().String(formatFlagName, "raw", formatFlagDescription)

	arguments := []string{"--summary", "off", "--progress", "header.txt", "in", "out", "--format", "json", "add", "--", "--progress", "no"}
	expected := []string{"--summary=off", "--progress", "header.txt", "in", "out", "--format", "json", "add", "--", "--progress", "no"}

	normalized := normalizeBooleanFlagArguments(command, arguments)
	if !reflect.DeepEqual(normalized, expected) {
		t.Fatalf("unexpected normalization\nexpected: %v\nactual:   %v", expected, normalized)
	}
}
