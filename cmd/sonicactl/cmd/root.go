// Package cmd implements the sonicactl CLI: enroll tracks, recognize
// query clips, and print the loaded configuration from the terminal.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sonica-audio/engine/internal/config"
	"github.com/sonica-audio/engine/internal/engine"
	"github.com/sonica-audio/engine/internal/logger"
	"github.com/sonica-audio/engine/internal/metadatastore"
	"github.com/sonica-audio/engine/internal/vectorservice"
)

var (
	verbose    bool
	configPath string
	outputFmt  string

	cfg         *config.Config
	sharedStore metadatastore.Store
	sharedVecs  vectorservice.Service
)

var rootCmd = &cobra.Command{
	Use:   "sonicactl",
	Short: "sonicactl - audio fingerprinting and recognition CLI",
	Long: `sonicactl is a command-line interface to the fingerprinting and
recognition engine: enroll reference tracks, recognize query clips, and
print the loaded configuration directly from the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := godotenv.Load(configPath); err != nil {
				return fmt.Errorf("loading config file %s: %w", configPath, err)
			}
		}
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		if err := logger.Initialize(logLevel(), ""); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		sharedStore = metadatastore.NewMemoryStore()
		sharedVecs = vectorservice.NoopService{}
		return nil
	},
}

func logLevel() string {
	if verbose {
		return "debug"
	}
	return "info"
}

// newEngine builds a fresh Engine from the currently loaded config. The
// Engine is not shared; the metadata store and vector service it is given
// are the ones set up once per CLI invocation.
func newEngine() (*engine.Engine, error) {
	engCfg := engine.DefaultConfig(cfg.Audio.SampleRate)
	engCfg.Threshold = cfg.Recognition.Threshold
	engCfg.FusionWeights.Hash = cfg.Recognition.FusionWeights[0]
	engCfg.FusionWeights.MFCC = cfg.Recognition.FusionWeights[1]
	engCfg.FusionWeights.Chroma = cfg.Recognition.FusionWeights[2]
	engCfg.FusionWeights.Rhythm = cfg.Recognition.FusionWeights[3]
	engCfg.PreprocessLimits.MinDurationSeconds = cfg.Audio.MinDurationS
	engCfg.PreprocessLimits.MaxDurationSeconds = cfg.Audio.MaxDurationS

	return engine.New(engCfg, sharedStore, sharedVecs)
}

func printError(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, err)
}

func printSuccess(format string, a ...any) {
	color.New(color.FgGreen, color.Bold).Print("OK ")
	fmt.Printf(format+"\n", a...)
}

// Execute runs the CLI, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to .env config file")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format (commands print text only)")

	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(statsCmd)
}
