package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sonica-audio/engine/internal/audioio"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize [wav-file]",
	Short: "Recognize a query clip against enrolled tracks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		pcm, sampleRate, err := audioio.DecodeWAV(f)
		if err != nil {
			return fmt.Errorf("decoding wav: %w", err)
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Recognize(cmd.Context(), pcm, sampleRate)
		if err != nil {
			return err
		}
		if result == nil {
			color.New(color.FgYellow).Println("no match")
			return nil
		}

		printSuccess("matched %q by %q (score %.3f)", result.Track.Title, result.Track.Artist, result.Score)
		return nil
	},
}
