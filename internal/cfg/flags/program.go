// Package cfgflags handles Cobra/Viper flags.
package cfgflags

import (
	"framerec/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InitProgramFlags initializes user flag settings related to the core program. E.g. logging level.
func InitProgramFlags(rootCmd *cobra.Command, defaultDB string) error {

	// Database
	rootCmd.PersistentFlags().String(keys.DBPath, defaultDB, "Path of the recorder database")
	if err := viper.BindPFlag(keys.DBPath, rootCmd.PersistentFlags().Lookup(keys.DBPath)); err != nil {
		return err
	}

	// Config file
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Config file supplying defaults for unset flags")
	if err := viper.BindPFlag(keys.ConfigFile, rootCmd.PersistentFlags().Lookup(keys.ConfigFile)); err != nil {
		return err
	}

	// Debug level
	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debugging level (0 - 5)")
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	// Colors
	rootCmd.PersistentFlags().Bool(keys.NoColor, false, "Print editor output without colors")
	if err := viper.BindPFlag(keys.NoColor, rootCmd.PersistentFlags().Lookup(keys.NoColor)); err != nil {
		return err
	}
	return nil
}

// SetEditorFlags sets the flags shared by commands that open an editor.
func SetEditorFlags(cmd *cobra.Command, noBounds *bool) {
	if noBounds != nil {
		cmd.Flags().BoolVar(noBounds, keys.NoBounds, false, "Hide the Bounds / Limits section")
	}
}
