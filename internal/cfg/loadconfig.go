package cfg

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// loadDefaultsFromConfig reads a Viper-supported config file and sets every
// flag the operator did not enter from it.
func loadDefaultsFromConfig(cmd *cobra.Command, configFile string) error {
	info, err := os.Stat(configFile)
	if err != nil {
		return fmt.Errorf("failed check for config file path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %q is a directory, should be a file", configFile)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var errOrNil error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || errOrNil != nil {
			return
		}
		val, ok := configValue(v, f.Name)
		if !ok {
			return
		}

		if sv, isSlice := f.Value.(pflag.SliceValue); isSlice {
			slice, err := cast.ToStringSliceE(val)
			if err != nil {
				errOrNil = fmt.Errorf("config key %q: %w", f.Name, err)
				return
			}
			errOrNil = sv.Replace(slice)
			return
		}

		s, err := cast.ToStringE(val)
		if err != nil {
			errOrNil = fmt.Errorf("config key %q: %w", f.Name, err)
			return
		}
		if err := f.Value.Set(s); err != nil {
			errOrNil = fmt.Errorf("config key %q: %w", f.Name, err)
		}
	})
	return errOrNil
}

// configValue looks a flag name up as written, then in snake_case.
func configValue(v *viper.Viper, key string) (any, bool) {
	if v.IsSet(key) {
		return v.Get(key), true
	}
	if snake := strings.ReplaceAll(key, "-", "_"); v.IsSet(snake) {
		return v.Get(snake), true
	}
	return nil, false
}
