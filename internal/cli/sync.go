package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/lyricsync/internal/audio"
	"github.com/mgpai22/lyricsync/internal/lrc"
	"github.com/mgpai22/lyricsync/internal/session"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [audio_file]",
	Short: "Interactively sync lyrics to an audio file",
	Long: `Open an interactive session for timing lyrics against an audio file.

Lyrics can be loaded up front with --lyrics or later with the 'load'
command. Plain text files are split into one row per line; .lrc files
keep their existing timestamps and metadata tags.

Use 'play', 'pause' and 'seek' to move the playback clock and 'set' to
stamp the next unsynced row with the current position. 'export' writes
the .lrc file next to the audio file unless --output is given.

Examples:
  lyricsync sync song.mp3 --lyrics song.txt
  lyricsync sync song.flac --lyrics song.lrc -o synced/song.lrc`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().
		String("lyrics", "", "Lyrics file to load (.txt or .lrc)")
}

func runSync(cmd *cobra.Command, args []string) error {
	audioPath := args[0]
	ctx := cmd.Context()

	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", audioPath)
	}
	if !audio.IsAudioFile(audioPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected an audio file)",
			filepath.Ext(audioPath),
		)
	}

	lyricsPath, _ := cmd.Flags().GetString("lyrics")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath != "" && !strings.EqualFold(filepath.Ext(outputPath), lrc.Extension) {
		logger.Warnw("Output file does not use the .lrc extension",
			"output", outputPath,
		)
	}

	// the session still works without a duration, the clock is just uncapped
	var duration time.Duration
	info, err := audio.Probe(audioPath)
	if err != nil {
		logger.Warnw("Could not probe audio duration",
			"input", audioPath,
			"error", err,
		)
	} else {
		duration = info.Duration
		logger.Infow("Probed audio file",
			"input", audioPath,
			"duration", info.Duration.String(),
			"codec", info.Codec,
		)
	}

	s := session.New(logger)
	s.LoadAudio(audioPath, duration)

	if lyricsPath != "" {
		file, err := lrc.Open(lyricsPath)
		if err != nil {
			return err
		}
		s.LoadLyricsFile(lyricsPath, file)
		logger.Infow("Loaded lyrics",
			"input", lyricsPath,
			"lines", len(file.Lines),
		)
	}

	shell := session.NewShell(s, cmd.OutOrStdout(), outputPath)
	if err := shell.Run(ctx, cmd.InOrStdin()); err != nil {
		return fmt.Errorf("session ended with an error: %w", err)
	}

	return nil
}
