package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/flashgen/internal"
	"codeberg.org/snonux/flashgen/internal/completion"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flashgen [file]",
		Short: "AI Flashcard Generator",
		Long: `flashgen turns a plain-text file into question and answer flashcards.

The text is sent to a chat completion model, the reply is parsed into
Question/Answer pairs and the pairs are written to a CSV file (or an
Anki package with --format apkg).

Examples:
  flashgen                          # Launch interactive GUI (default)
  flashgen notes.txt                # Generate flashcards.csv via CLI
  flashgen notes.txt -o bio.csv     # Choose the output file
  flashgen notes.txt --format apkg  # Write an Anki package
  flashgen --list-models            # Show chat models for the API key`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.flashgen.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", flags.OutputPath, "Output file (default for apkg is <deck-name>.apkg)")
	cmd.Flags().StringVar(&flags.Format, "format", flags.Format, "Output format: csv or apkg")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the existing output file into archive/ and exit")

	// Completion flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Completion provider: "+strings.Join(completion.Providers(), ", "))
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default depends on the provider)")
	cmd.Flags().IntVar(&flags.MaxTokens, "max-tokens", flags.MaxTokens, "Maximum tokens in the completion")
	cmd.Flags().StringVar(&flags.OllamaURL, "ollama-url", flags.OllamaURL, "Ollama server URL")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("output.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("completion.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("completion.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("completion.max_tokens", cmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag("completion.ollama_url", cmd.Flags().Lookup("ollama-url"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if err := LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		// Search config in home and working directory with name ".flashgen" (without extension)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flashgen")
	}

	// Environment variables, FLASHGEN_OUTPUT_PATH maps to output.path
	viper.SetEnvPrefix("FLASHGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v\n", cfgFile, err)
	}
}

// LoadDotEnv exports the variables of a dotenv file into the process
// environment. Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}

	return nil
}

// ResolveFlags fills flags from viper so config file and environment values
// apply to every flag the user did not pass explicitly
func ResolveFlags(flags *Flags) {
	flags.Format = viper.GetString("output.format")
	flags.DeckName = viper.GetString("output.deck_name")
	flags.Provider = viper.GetString("completion.provider")
	flags.Model = viper.GetString("completion.model")
	flags.MaxTokens = viper.GetInt("completion.max_tokens")
	flags.OllamaURL = viper.GetString("completion.ollama_url")
	flags.LogLevel = viper.GetString("log.level")
	flags.LogFormat = viper.GetString("log.format")

	flags.OutputPath = viper.GetString("output.path")
	if !viper.IsSet("output.path") && strings.EqualFold(flags.Format, "apkg") {
		flags.OutputPath = internal.SanitizeFilename(flags.DeckName) + ".apkg"
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetOpenAIOrg retrieves the optional OpenAI organization ID
func GetOpenAIOrg() string {
	if org := os.Getenv("OPENAI_ORG_ID"); org != "" {
		return org
	}
	return viper.GetString("openai.org_id")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}

// CompletionConfig builds the completion client configuration. Keys are read once here.
func CompletionConfig(flags *Flags) *completion.Config {
	return &completion.Config{
		Provider:  flags.Provider,
		Model:     flags.Model,
		MaxTokens: flags.MaxTokens,
		OpenAIKey: GetOpenAIKey(),
		OpenAIOrg: GetOpenAIOrg(),
		GeminiKey: GetGeminiKey(),
		OllamaURL: flags.OllamaURL,
	}
}
