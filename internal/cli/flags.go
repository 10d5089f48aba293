package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputPath string
	Format     string
	DeckName   string
	ListModels bool
	Archive    bool

	// Completion flags
	Provider  string
	Model     string
	MaxTokens int
	OllamaURL string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputPath: "flashcards.csv",
		Format:     "csv",
		DeckName:   "Flashcards",
		Provider:   "openai",
		MaxTokens:  2000,
		OllamaURL:  "http://localhost:11434",
		LogLevel:   "info",
		LogFormat:  "console",
	}
}
