// Package main provides the CLI entry point for promptfan.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/promptfan/promptfan/internal/agent"
	"github.com/promptfan/promptfan/internal/config"
	"github.com/promptfan/promptfan/internal/dispatch"
	"github.com/promptfan/promptfan/internal/domain"
	"github.com/promptfan/promptfan/internal/terminal"
)

var (
	inputDir         string
	outputDir        string
	model            string
	instructions     string
	instructionsFile string
	concurrency      int
	verbose          bool
	noConfig         bool
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:   "promptfan",
		Short: "Fan a directory of prompt files out to a language-model agent",
		Long: `Send every file in a directory to a language-model agent concurrently and
write each response to a matching file in the output directory.

Exit codes:
  0 - Batch completed (individual files may still have failed or been skipped)
  2 - Fatal error
  130 - Interrupted`,
		RunE:          runBatch,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Configuration flags (defaults are resolved via config.Resolve with precedence: flag > env > config > default)
	rootCmd.Flags().StringVarP(&inputDir, "input-dir", "i", "",
		"Directory containing the prompt files (required)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"Directory to save the agent's responses (default: ./output, env: PROMPTFAN_OUTPUT_DIR)")
	rootCmd.Flags().StringVarP(&model, "model", "m", "",
		"Model to use (default: "+agent.DefaultModel+", env: PROMPTFAN_MODEL)")
	rootCmd.Flags().StringVar(&instructions, "instructions", "",
		"Custom instructions for the agent (env: PROMPTFAN_INSTRUCTIONS)")
	rootCmd.Flags().StringVar(&instructionsFile, "instructions-file", "",
		"Path to a file containing agent instructions (env: PROMPTFAN_INSTRUCTIONS_FILE)")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0,
		"Max concurrent files, 0 = all at once (env: PROMPTFAN_CONCURRENCY)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Print per-file progress as it happens")
	rootCmd.Flags().BoolVar(&noConfig, "no-config", false,
		"Skip loading .promptfan.yaml")

	_ = rootCmd.MarkFlagRequired("input-dir")

	if err := rootCmd.Execute(); err != nil {
		// Check if this is an exit code wrapper (not a real error)
		if exitErr, ok := err.(exitCodeError); ok {
			return exitErr.code.Int()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return domain.ExitError.Int()
	}

	return 0
}

func runBatch(cmd *cobra.Command, _ []string) error {
	// Disable colors if stdout is not a TTY
	if !terminal.IsStdoutTTY() {
		terminal.DisableColors()
	}

	logger := terminal.NewLogger()

	// A local .env file is a convenience for the API key; a missing file is fine.
	_ = godotenv.Load()

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals. Cancelling the context aborts in-flight agent calls;
	// the dispatcher still drains every launched task.
	var interrupted atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr)
		logger.Log("Interrupted, shutting down...", terminal.StyleWarning)
		interrupted.Store(true)
		cancel()
	}()

	// Load config file (unless --no-config)
	var cfg *config.Config
	var configDir string
	if !noConfig {
		result, err := config.Load()
		if err != nil {
			logger.Logf(terminal.StyleError, "Config error: %v", err)
			return exitCode(domain.ExitError)
		}
		cfg = result.Config
		configDir = result.ConfigDir
		// Display warnings for unknown keys
		for _, warning := range result.Warnings {
			logger.Logf(terminal.StyleWarning, "Warning: %s", warning)
		}
	}

	// Build flag state from cobra's Changed() method
	flagState := config.FlagState{
		ModelSet:            cmd.Flags().Changed("model"),
		OutputDirSet:        cmd.Flags().Changed("output-dir"),
		ConcurrencySet:      cmd.Flags().Changed("concurrency"),
		InstructionsSet:     cmd.Flags().Changed("instructions"),
		InstructionsFileSet: cmd.Flags().Changed("instructions-file"),
	}
	envState := config.LoadEnvState()
	flagValues := config.ResolvedConfig{
		Model:            model,
		OutputDir:        outputDir,
		Concurrency:      concurrency,
		Instructions:     instructions,
		InstructionsFile: instructionsFile,
	}

	// Resolve final configuration (precedence: flags > env vars > config file > defaults)
	resolved := config.Resolve(cfg, envState, flagState, flagValues)

	if resolved.Concurrency < 0 {
		logger.Log("concurrency must be >= 0", terminal.StyleError)
		return exitCode(domain.ExitError)
	}

	resolvedInstructions, err := config.ResolveInstructions(cfg, envState, flagState, flagValues, configDir)
	if err != nil {
		logger.Logf(terminal.StyleError, "Failed to resolve instructions: %v", err)
		return exitCode(domain.ExitError)
	}

	// The credential check is a pre-run validation; the batch never starts without it.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Log("GEMINI_API_KEY environment variable not set", terminal.StyleError)
		return exitCode(domain.ExitError)
	}

	inputPath, err := filepath.Abs(inputDir)
	if err != nil {
		logger.Logf(terminal.StyleError, "Invalid input directory: %v", err)
		return exitCode(domain.ExitError)
	}
	outputPath, err := filepath.Abs(resolved.OutputDir)
	if err != nil {
		logger.Logf(terminal.StyleError, "Invalid output directory: %v", err)
		return exitCode(domain.ExitError)
	}

	ag, err := agent.New(ctx, agent.Config{
		Model:        resolved.Model,
		Instructions: resolvedInstructions,
		APIKey:       apiKey,
	})
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	d, err := dispatch.New(dispatch.Config{
		InputDir:    inputPath,
		OutputDir:   outputPath,
		Concurrency: resolved.Concurrency,
		Verbose:     verbose,
	}, ag, logger)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	summary, err := d.Run(ctx)
	if err != nil {
		if interrupted.Load() {
			return exitCode(domain.ExitInterrupted)
		}
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	fmt.Println(dispatch.RenderSummary(summary))

	if interrupted.Load() {
		return exitCode(domain.ExitInterrupted)
	}
	return nil
}
