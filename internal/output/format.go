package output

import (
	"fmt"
	"strings"

	"github.com/temirov/codeheader/internal/types"
	"github.com/temirov/codeheader/internal/utils"
)

const (
	extensionLineFormat     = "Files with extension '%s' are selected."
	headerAddBanner         = "---- THE FOLLOWING CONTENT WILL BE ADDED TO THE FILES ------"
	headerRemoveBanner      = "---- THE FOLLOWING CONTENT WILL BE REMOVED FROM THE FILES --"
	headerClosingBanner     = "------------------------------------------------------------"
	copiedLineFormat        = "Copy file to '%s'"
	addedLineFormat         = "Add header to file '%s'"
	removedLineFormat       = "Remove header from file '%s'"
	headerMissingLineFormat = "WARNING: cannot remove header from file '%s', all content is copied"
	skippedLineFormat       = "WARNING: skipping '%s': %s"
)

// FormatExtensionLine announces one selected extension.
func FormatExtensionLine(extension string) string {
	return fmt.Sprintf(extensionLineFormat, extension)
}

// FormatHeaderBlock echoes the header between banner lines.
func FormatHeaderBlock(action types.Action, content string) string {
	banner := headerAddBanner
	if action == types.ActionRemove {
		banner = headerRemoveBanner
	}
	builder := &strings.Builder{}
	builder.WriteString(banner)
	builder.WriteString("\n")
	builder.WriteString(content)
	builder.WriteString("\n")
	builder.WriteString(headerClosingBanner)
	return builder.String()
}

// FormatFileLine describes what happened to one file. Warnings name the source path,
// every other outcome names the destination.
func FormatFileLine(outcome types.Outcome, source, destination string) string {
	switch outcome {
	case types.OutcomeAdded:
		return fmt.Sprintf(addedLineFormat, destination)
	case types.OutcomeRemoved:
		return fmt.Sprintf(removedLineFormat, destination)
	case types.OutcomeHeaderMissing:
		return fmt.Sprintf(headerMissingLineFormat, source)
	default:
		return fmt.Sprintf(copiedLineFormat, destination)
	}
}

// FormatSkippedLine warns about an entry that was not mirrored.
func FormatSkippedLine(source, reason string) string {
	return fmt.Sprintf(skippedLineFormat, source, reason)
}

// FormatSummaryLine formats a RunSummary into the raw summary line.
func FormatSummaryLine(summary *types.RunSummary) string {
	if summary == nil {
		summary = &types.RunSummary{}
	}
	fileLabel := "files"
	if summary.Files == 1 {
		fileLabel = "file"
	}
	directoryLabel := "directories"
	if summary.Directories == 1 {
		directoryLabel = "directory"
	}
	warningLabel := "warnings"
	if summary.Warnings() == 1 {
		warningLabel = "warning"
	}
	return fmt.Sprintf(
		"Summary: %d %s (%d added, %d removed, %d copied, %d %s), %d %s, %s written",
		summary.Files, fileLabel,
		summary.Added, summary.Removed, summary.Copied, summary.Warnings(), warningLabel,
		summary.Directories, directoryLabel,
		utils.FormatFileSize(summary.BytesWritten),
	)
}
