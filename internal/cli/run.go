package cli

import (
	"bytes"
	"context"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/codeheader/internal/config"
	"github.com/temirov/codeheader/internal/mirror"
	"github.com/temirov/codeheader/internal/output"
	"github.com/temirov/codeheader/internal/services/stream"
	"github.com/temirov/codeheader/internal/types"
)

const (
	logMessageCountFailed = "cannot count input files, progress total is unknown"
	logMessageCopied      = "report copied to clipboard"
)

// runHeaderTool validates the positional arguments and streams one run into the selected renderer.
func runHeaderTool(ctx context.Context, dependencies Dependencies, settings runSettings, arguments []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	parsedArguments, parseError := config.ParseArguments(arguments)
	if parseError != nil {
		return parseError
	}
	parsedArguments.Extensions = config.NormalizeExtensions(append(parsedArguments.Extensions, settings.extensions...))
	configuration, validationError := config.Validate(parsedArguments)
	if validationError != nil {
		return validationError
	}

	var report bytes.Buffer
	stdout := dependencies.Stdout
	if settings.copyToClipboard {
		stdout = io.MultiWriter(dependencies.Stdout, &report)
	}

	renderer := newRenderer(settings, stdout)
	if settings.progress {
		totalFiles, countError := mirror.CountFiles(configuration.InputDirectory)
		if countError != nil {
			dependencies.Logger.Warn(logMessageCountFailed, zap.Error(countError))
			totalFiles = -1
		}
		renderer = output.NewProgressRenderer(renderer, dependencies.Stderr, totalFiles)
	}

	producer := func(streamCtx context.Context, events chan<- stream.Event) error {
		return stream.StreamRun(streamCtx, stream.Options{
			Configuration: configuration,
			Logger:        dependencies.Logger,
		}, events)
	}
	runError := dispatchStream(ctx, producer, renderer.Handle)
	if flushError := renderer.Flush(); flushError != nil && runError == nil {
		runError = flushError
	}
	if runError != nil {
		return runError
	}

	if settings.copyToClipboard {
		if copyError := dependencies.Clipboard.Copy(report.String()); copyError != nil {
			return copyError
		}
		dependencies.Logger.Debug(logMessageCopied, zap.Int("bytes", report.Len()))
	}
	return nil
}

func newRenderer(settings runSettings, stdout io.Writer) output.StreamRenderer {
	if settings.format == types.FormatJSON {
		return output.NewJSONStreamRenderer(stdout, settings.summary)
	}
	return output.NewRawStreamRenderer(stdout, settings.summary)
}

// dispatchStream runs produce and consume concurrently over an unbuffered channel.
// The first error on either side cancels the other.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
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
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	return group.Wait()
}
