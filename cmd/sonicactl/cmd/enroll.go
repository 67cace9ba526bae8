package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sonica-audio/engine/internal/audioio"
	"github.com/sonica-audio/engine/internal/metadatastore"
)

var (
	enrollTitle  string
	enrollArtist string
)

var enrollCmd = &cobra.Command{
	Use:   "enroll [wav-file]",
	Short: "Enroll a reference track from a WAV file",
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

		trackID := uuid.New()
		meta := metadatastore.TrackMetadata{Title: enrollTitle, Artist: enrollArtist}
		if err := eng.Enroll(cmd.Context(), trackID, pcm, sampleRate, meta); err != nil {
			return err
		}

		printSuccess("enrolled %s as track %s", args[0], trackID)
		return nil
	},
}

func init() {
	enrollCmd.Flags().StringVar(&enrollTitle, "title", "", "Track title")
	enrollCmd.Flags().StringVar(&enrollArtist, "artist", "", "Track artist")
}
