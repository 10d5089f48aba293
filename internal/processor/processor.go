package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/flashgen/internal/anki"
	"codeberg.org/snonux/flashgen/internal/completion"
	"codeberg.org/snonux/flashgen/internal/flashcard"
	"codeberg.org/snonux/flashgen/internal/prompt"
)

var (
	// ErrReadInput wraps failures to read the input text
	ErrReadInput = errors.New("failed to read input")

	// ErrWriteOutput wraps failures to write the flashcard file
	ErrWriteOutput = errors.New("failed to write output")
)

// Options configures where and how the flashcards are written
type Options struct {
	OutputPath string
	Format     anki.Format
	DeckName   string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() *Options {
	return &Options{
		OutputPath: anki.DefaultGeneratorOptions().OutputPath,
		Format:     anki.FormatCSV,
		DeckName:   anki.DefaultGeneratorOptions().DeckName,
	}
}

// Result describes a successful run
type Result struct {
	OutputPath string
	Format     anki.Format
	Cards      []flashcard.Card
	Duration   time.Duration
}

// Processor turns input text into a flashcard file
type Processor struct {
	completer completion.Completer
	options   *Options
	logger    *zap.Logger
}

// New creates a processor using completer for the model call
func New(completer completion.Completer, options *Options, logger *zap.Logger) *Processor {
	if options == nil {
		options = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		completer: completer,
		options:   options,
		logger:    logger,
	}
}

// Options returns the configured output options
func (p *Processor) Options() Options {
	return *p.options
}

// ProcessFile reads the file at path and runs the pipeline on its contents
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	p.logger.Info("Reading input file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return p.Process(ctx, string(data))
}

// ProcessReader reads r to the end and runs the pipeline on its contents
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return p.Process(ctx, string(data))
}

// Process runs prompt, completion, parsing and writing on rawText. Nothing is
// written when the completion fails.
func (p *Processor) Process(ctx context.Context, rawText string) (*Result, error) {
	start := time.Now()

	text, err := p.completer.Complete(ctx, prompt.Build(rawText))
	if err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: %w", err)
	}

	cards := flashcard.Parse(text)
	if len(cards) == 0 {
		p.logger.Warn("Model reply contained no flashcards",
			zap.String("provider", p.completer.Name()),
			zap.Int("reply_length", len(text)))
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     p.options.OutputPath,
		IncludeHeaders: true,
		DeckName:       p.options.DeckName,
	})
	gen.AddCards(cards)

	if err := gen.Generate(p.options.Format); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	result := &Result{
		OutputPath: p.options.OutputPath,
		Format:     p.options.Format,
		Cards:      cards,
		Duration:   time.Since(start),
	}

	p.logger.Info("Flashcards generated",
		zap.String("path", result.OutputPath),
		zap.String("format", string(result.Format)),
		zap.Int("cards", len(cards)),
		zap.Duration("duration", result.Duration))

	return result, nil
}
