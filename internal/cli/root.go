package cli

import (
	"github.com/mgpai22/lyricsync/internal/config"
	"github.com/mgpai22/lyricsync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lyricsync",
	Short: "Sync song lyrics to an audio track and export LRC files",
	Long: `Lyricsync is a CLI tool for timing song lyrics against an audio track.

Load an audio file and a lyrics file, stamp each line with the playback
position, and export the result as a synchronized .lrc file. Existing
.lrc files can also be translated to another language using AI.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
		cfg = config.Load()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language of the lyrics (e.g., en, es, fr)")
}
