package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/coindash/storage"
)

var (
	flagMusicVolume float64
	flagSFXVolume   float64
	flagSetMute     bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change audio settings",
	Long: `Print the saved audio settings, or change them with flags.
Volumes are multipliers between 0 and 1.

Examples:
  coindash settings
  coindash settings --music 0.5 --sfx 0.8
  coindash settings --mute=false`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().Float64Var(&flagMusicVolume, "music", 1, "Music volume multiplier")
	settingsCmd.Flags().Float64Var(&flagSFXVolume, "sfx", 1, "Sound effect volume multiplier")
	settingsCmd.Flags().BoolVar(&flagSetMute, "mute", false, "Mute all audio")
}

func runSettings(cmd *cobra.Command, args []string) error {
	progress := storage.OpenProgress()
	s := progress.Settings()

	flags := cmd.Flags()
	if flags.Changed("music") || flags.Changed("sfx") || flags.Changed("mute") {
		if flags.Changed("music") {
			s.MusicVolume = flagMusicVolume
		}
		if flags.Changed("sfx") {
			s.SFXVolume = flagSFXVolume
		}
		if flags.Changed("mute") {
			s.Mute = flagSetMute
		}
		if err := progress.SetSettings(s); err != nil {
			return err
		}
		s = progress.Settings()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "music: %.2f\nsfx:   %.2f\nmute:  %v\nbest:  %d\n", s.MusicVolume, s.SFXVolume, s.Mute, progress.BestScore())
	if !progress.Persistent() {
		fmt.Fprintln(out, "(settings storage unavailable; changes were not saved)")
	}
	return nil
}
