package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/flashgen/internal/anki"
	"codeberg.org/snonux/flashgen/internal/archive"
	"codeberg.org/snonux/flashgen/internal/cli"
	"codeberg.org/snonux/flashgen/internal/completion"
	"codeberg.org/snonux/flashgen/internal/gui"
	"codeberg.org/snonux/flashgen/internal/logging"
	"codeberg.org/snonux/flashgen/internal/models"
	"codeberg.org/snonux/flashgen/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.ResolveFlags(flags)

	// Handle --archive flag
	if flags.Archive {
		archived, err := archive.ArchiveOutput(flags.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		fmt.Printf("Output archived to: %s\n", archived)
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetOpenAIOrg())
		return lister.ListAvailableModels(cmd.Context(), os.Stdout)
	}

	format, err := anki.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	logger, err := logging.New(flags.LogLevel, flags.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	completer, err := completion.New(cli.CompletionConfig(flags), logger)
	if err != nil {
		return err
	}

	// Create processor
	proc := processor.New(completer, &processor.Options{
		OutputPath: flags.OutputPath,
		Format:     format,
		DeckName:   flags.DeckName,
	}, logger)

	if len(args) == 0 {
		// Launch GUI mode (default)
		logger.Debug("Starting GUI",
			zap.String("provider", completer.Name()),
			zap.String("output", flags.OutputPath))
		gui.New(cmd.Context(), proc, logger).Run()
		return nil
	}

	result, err := proc.ProcessFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Flashcards generated and saved to %s (%d cards)\n", result.OutputPath, len(result.Cards))
	return nil
}
