package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the currently loaded engine configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("sample_rate:          %d\n", cfg.Audio.SampleRate)
		fmt.Printf("window_size/hop_size: %d/%d\n", cfg.Audio.WindowSize, cfg.Audio.HopSize)
		fmt.Printf("min/max duration:     %.1fs / %.1fs\n", cfg.Audio.MinDurationS, cfg.Audio.MaxDurationS)
		fmt.Printf("recognition threshold: %.2f\n", cfg.Recognition.Threshold)
		fmt.Printf("max candidates:       %d\n", cfg.Recognition.MaxCandidates)
		fmt.Printf("fusion weights:       hash=%.2f mfcc=%.2f chroma=%.2f rhythm=%.2f\n",
			cfg.Recognition.FusionWeights[0], cfg.Recognition.FusionWeights[1],
			cfg.Recognition.FusionWeights[2], cfg.Recognition.FusionWeights[3])
		fmt.Printf("vector db provider:   %s (%d dims)\n", cfg.VectorDB.Provider, cfg.VectorDB.Dimensions)
		return nil
	},
}
