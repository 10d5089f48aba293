package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/flashgen/internal/flashcard"
)

// Format selects the kind of file the generator writes
type Format string

const (
	FormatCSV  Format = "csv"
	FormatAPKG Format = "apkg"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatAPKG:
		return FormatAPKG, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use csv or apkg)", s)
	}
}

// CSVHeader is the first row of every CSV export
var CSVHeader = []string{"Question", "Answer"}

// GeneratorOptions configures the export
type GeneratorOptions struct {
	OutputPath     string // Output file path
	IncludeHeaders bool   // Include the CSV header row
	DeckName       string // Deck name for .apkg exports
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "flashcards.csv",
		IncludeHeaders: true,
		DeckName:       "Flashcards",
	}
}

// Generator creates flashcard import files
type Generator struct {
	options *GeneratorOptions
	cards   []flashcard.Card
}

// NewGenerator creates a new generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]flashcard.Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card flashcard.Card) {
	g.cards = append(g.cards, card)
}

// AddCards adds cards in order
func (g *Generator) AddCards(cards []flashcard.Card) {
	g.cards = append(g.cards, cards...)
}

// GetCards returns all cards added so far
func (g *Generator) GetCards() []flashcard.Card {
	return g.cards
}

// OutputPath returns the configured output path
func (g *Generator) OutputPath() string {
	return g.options.OutputPath
}

// Generate writes the cards in the given format to the configured output path
func (g *Generator) Generate(format Format) error {
	switch format {
	case FormatCSV, "":
		return g.GenerateCSV()
	case FormatAPKG:
		return g.GenerateAPKG(g.options.OutputPath, g.options.DeckName)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// GenerateCSV creates a CSV file with one row per card. An existing file is overwritten.
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write(CSVHeader); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		if err := writer.Write([]string{card.Question, card.Answer}); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}

	return file.Close()
}

// GenerateAPKG creates an .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)
	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}
	return apkgGen.GenerateAPKG(outputPath)
}
