// Package mirror copies a directory tree into a fresh destination, rewriting the
// header of files whose extension is selected.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/codeheader/internal/config"
	"github.com/temirov/codeheader/internal/header"
	"github.com/temirov/codeheader/internal/types"
	"github.com/temirov/codeheader/internal/utils"
)

const (
	errorSourceDirectoryFormat   = "%w: source directory '%s'"
	errorSourceFileFormat        = "%w: source file '%s'"
	errorDestinationFormat       = "%w: '%s'"
	errorCreateParentFormat      = "create parent of '%s': %w"
	errorCreateDirectoryFormat   = "create directory '%s': %w"
	errorReadDirectoryFormat     = "reading directory %s: %w"
	errorReadFileFormat          = "reading file %s: %w"
	errorWriteFileFormat         = "writing file %s: %w"
	errorCloseFileFormat         = "closing file %s: %w"
	errorStatFormat              = "stat failed for '%s': %w"
	reasonSymlinkedDirectory     = "symbolic link to a directory is not followed"
	reasonOutputDirectory        = "output directory is inside the input tree"
	reasonCreatedParent          = "created to hold the output directory"
	reasonIrregularFileFormat    = "not a regular file (%s)"
	minimumDirectoryPermissions  = 0o700
	minimumFilePermissions       = 0o600
	defaultDirectoryPermissions  = 0o755
	logMessageMirroringDirectory = "mirroring directory"
	logMessageProcessedFile      = "processed file"
	logMessageSkippedEntry       = "skipped entry"
)

var (
	// ErrSourceMissing reports a source file or directory that disappeared during the walk.
	ErrSourceMissing = errors.New("source does not exist")
	// ErrDestinationExists reports a destination path that already exists.
	ErrDestinationExists = errors.New("destination already exists")
)

// EventKind identifies what an Event describes.
type EventKind string

const (
	// EventDirectory is emitted after a destination directory was created.
	EventDirectory EventKind = "directory"
	// EventFile is emitted after a destination file was written.
	EventFile EventKind = "file"
	// EventSkipped is emitted for entries that are neither regular files nor directories.
	EventSkipped EventKind = "skipped"
)

// Event describes one step of the walk.
type Event struct {
	Kind         EventKind
	Source       string
	Destination  string
	RelativePath string
	Depth        int
	Selected     bool
	Outcome      types.Outcome
	BytesWritten int64
	Reason       string
}

// Handler receives events in walk order. A non-nil error aborts the walk.
type Handler func(Event) error

// Options configures a walk.
type Options struct {
	Configuration config.Configuration
	Logger        *zap.Logger
}

type walker struct {
	ctx            context.Context
	configuration  config.Configuration
	logger         *zap.Logger
	handler        Handler
	createdParents map[string]struct{}
}

// missingDirectories lists path and each of its ancestors that do not exist yet.
func missingDirectories(path string) map[string]struct{} {
	missing := map[string]struct{}{}
	current := filepath.Clean(path)
	for {
		if _, statError := os.Lstat(current); !os.IsNotExist(statError) {
			return missing
		}
		missing[current] = struct{}{}
		next := filepath.Dir(current)
		if next == current {
			return missing
		}
		current = next
	}
}

// Run mirrors Configuration.InputDirectory into Configuration.OutputDirectory.
// The first error aborts the walk; files already written stay in place.
func Run(ctx context.Context, options Options, handler Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if handler == nil {
		handler = func(Event) error { return nil }
	}
	source := options.Configuration.InputDirectory
	destination := options.Configuration.OutputDirectory

	if _, statError := os.Lstat(destination); statError == nil {
		return fmt.Errorf(errorDestinationFormat, ErrDestinationExists, destination)
	} else if !os.IsNotExist(statError) {
		return fmt.Errorf(errorStatFormat, destination, statError)
	}
	parent := filepath.Dir(destination)
	createdParents := missingDirectories(parent)
	if mkdirError := os.MkdirAll(parent, defaultDirectoryPermissions); mkdirError != nil {
		return fmt.Errorf(errorCreateParentFormat, destination, mkdirError)
	}

	runner := &walker{
		ctx:            ctx,
		configuration:  options.Configuration,
		logger:         logger,
		handler:        handler,
		createdParents: createdParents,
	}
	return runner.mirrorDirectory(source, destination, 0)
}

func (runner *walker) mirrorDirectory(source, destination string, depth int) error {
	if err := runner.ctx.Err(); err != nil {
		return err
	}
	sourceInfo, statError := os.Stat(source)
	if statError != nil || !sourceInfo.IsDir() {
		return fmt.Errorf(errorSourceDirectoryFormat, ErrSourceMissing, source)
	}

	if mkdirError := os.Mkdir(destination, sourceInfo.Mode().Perm()|minimumDirectoryPermissions); mkdirError != nil {
		if os.IsExist(mkdirError) {
			return fmt.Errorf(errorDestinationFormat, ErrDestinationExists, destination)
		}
		return fmt.Errorf(errorCreateDirectoryFormat, destination, mkdirError)
	}
	relativePath := utils.RelativePathOrSelf(source, runner.configuration.InputDirectory)
	runner.logger.Debug(logMessageMirroringDirectory, zap.String("source", source), zap.String("destination", destination), zap.Int("depth", depth))
	if err := runner.handler(Event{
		Kind:         EventDirectory,
		Source:       source,
		Destination:  destination,
		RelativePath: relativePath,
		Depth:        depth,
	}); err != nil {
		return err
	}

	directoryEntries, readError := os.ReadDir(source)
	if readError != nil {
		if os.IsNotExist(readError) {
			return fmt.Errorf(errorSourceDirectoryFormat, ErrSourceMissing, source)
		}
		return fmt.Errorf(errorReadDirectoryFormat, source, readError)
	}

	var subdirectories []string
	for _, directoryEntry := range directoryEntries {
		name := directoryEntry.Name()
		childSource := filepath.Join(source, name)
		childDestination := filepath.Join(destination, name)

		if filepath.Clean(childSource) == filepath.Clean(runner.configuration.OutputDirectory) {
			if err := runner.skip(childSource, childDestination, depth+1, reasonOutputDirectory); err != nil {
				return err
			}
			continue
		}
		if _, created := runner.createdParents[filepath.Clean(childSource)]; created {
			runner.logger.Debug(logMessageSkippedEntry, zap.String("source", childSource), zap.String("reason", reasonCreatedParent))
			continue
		}
		if directoryEntry.IsDir() {
			subdirectories = append(subdirectories, name)
			continue
		}

		entryType := directoryEntry.Type()
		if entryType&fs.ModeSymlink != 0 {
			targetInfo, targetError := os.Stat(childSource)
			if targetError != nil {
				if err := runner.skip(childSource, childDestination, depth+1, targetError.Error()); err != nil {
					return err
				}
				continue
			}
			if targetInfo.IsDir() {
				if err := runner.skip(childSource, childDestination, depth+1, reasonSymlinkedDirectory); err != nil {
					return err
				}
				continue
			}
			entryType = targetInfo.Mode().Type()
		}
		if !entryType.IsRegular() {
			if err := runner.skip(childSource, childDestination, depth+1, fmt.Sprintf(reasonIrregularFileFormat, entryType.String())); err != nil {
				return err
			}
			continue
		}

		if err := runner.processFile(childSource, childDestination, depth+1); err != nil {
			return err
		}
	}

	for _, name := range subdirectories {
		if err := runner.mirrorDirectory(filepath.Join(source, name), filepath.Join(destination, name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (runner *walker) skip(source, destination string, depth int, reason string) error {
	runner.logger.Debug(logMessageSkippedEntry, zap.String("source", source), zap.String("reason", reason))
	return runner.handler(Event{
		Kind:         EventSkipped,
		Source:       source,
		Destination:  destination,
		RelativePath: utils.RelativePathOrSelf(source, runner.configuration.InputDirectory),
		Depth:        depth,
		Reason:       reason,
	})
}

func (runner *walker) processFile(source, destination string, depth int) error {
	if err := runner.ctx.Err(); err != nil {
		return err
	}
	sourceInfo, statError := os.Stat(source)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorSourceFileFormat, ErrSourceMissing, source)
		}
		return fmt.Errorf(errorStatFormat, source, statError)
	}
	permissions := sourceInfo.Mode().Perm() | minimumFilePermissions

	event := Event{
		Kind:         EventFile,
		Source:       source,
		Destination:  destination,
		RelativePath: utils.RelativePathOrSelf(source, runner.configuration.InputDirectory),
		Depth:        depth,
		Selected:     runner.configuration.IsSelected(filepath.Base(source)),
	}

	if !event.Selected {
		written, copyError := CopyFile(source, destination, permissions)
		if copyError != nil {
			return copyError
		}
		event.Outcome = types.OutcomeCopied
		event.BytesWritten = written
	} else {
		// #nosec G304
		content, readError := os.ReadFile(source)
		if readError != nil {
			if os.IsNotExist(readError) {
				return fmt.Errorf(errorSourceFileFormat, ErrSourceMissing, source)
			}
			return fmt.Errorf(errorReadFileFormat, source, readError)
		}
		transformed, outcome, applyError := header.Apply(runner.configuration.Action, runner.configuration.HeaderContent, content)
		if applyError != nil {
			return applyError
		}
		if writeError := WriteNewFile(destination, transformed, permissions); writeError != nil {
			return writeError
		}
		event.Outcome = outcome
		event.BytesWritten = int64(len(transformed))
	}

	runner.logger.Debug(logMessageProcessedFile, zap.String("source", source), zap.String("outcome", string(event.Outcome)))
	return runner.handler(event)
}

// CopyFile copies source to a destination that must not exist yet and returns the bytes written.
//
// #nosec G304
func CopyFile(source, destination string, permissions fs.FileMode) (written int64, err error) {
	sourceFile, openError := os.Open(source)
	if openError != nil {
		if os.IsNotExist(openError) {
			return 0, fmt.Errorf(errorSourceFileFormat, ErrSourceMissing, source)
		}
		return 0, fmt.Errorf(errorReadFileFormat, source, openError)
	}
	defer func() {
		_ = sourceFile.Close()
	}()

	destinationFile, createError := createExclusive(destination, permissions)
	if createError != nil {
		return 0, createError
	}
	defer func() {
		if closeError := destinationFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseFileFormat, destination, closeError)
		}
	}()

	written, copyError := io.Copy(destinationFile, sourceFile)
	if copyError != nil {
		return written, fmt.Errorf(errorWriteFileFormat, destination, copyError)
	}
	if syncError := destinationFile.Sync(); syncError != nil {
		return written, fmt.Errorf(errorWriteFileFormat, destination, syncError)
	}
	return written, nil
}

// WriteNewFile writes content to a destination that must not exist yet.
func WriteNewFile(destination string, content []byte, permissions fs.FileMode) (err error) {
	destinationFile, createError := createExclusive(destination, permissions)
	if createError != nil {
		return createError
	}
	defer func() {
		if closeError := destinationFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseFileFormat, destination, closeError)
		}
	}()
	if _, writeError := destinationFile.Write(content); writeError != nil {
		return fmt.Errorf(errorWriteFileFormat, destination, writeError)
	}
	return nil
}

func createExclusive(destination string, permissions fs.FileMode) (*os.File, error) {
	// #nosec G304
	destinationFile, openError := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, permissions)
	if openError != nil {
		if os.IsExist(openError) {
			return nil, fmt.Errorf(errorDestinationFormat, ErrDestinationExists, destination)
		}
		return nil, fmt.Errorf(errorWriteFileFormat, destination, openError)
	}
	return destinationFile, nil
}

// CountFiles returns the number of non-directory entries under root.
func CountFiles(root string) (int, error) {
	count := 0
	walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !directoryEntry.IsDir() {
			count++
		}
		return nil
	})
	return count, walkError
}
