// Package cfg provides configuration and command-line interface setup for framerec.
package cfg

import (
	"errors"
	"fmt"
	"io"
	"strings"

	cfgflags "framerec/internal/cfg/flags"
	cfgrecorder "framerec/internal/cfg/recorder"
	"framerec/internal/contracts"
	"framerec/internal/domain/keys"
	"framerec/internal/utils/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StoreOpener opens the recorder store at a database path and returns a
// function closing it.
type StoreOpener func(dbPath string) (contracts.Store, func() error, error)

// session holds the store opened for the running command.
type session struct {
	open  StoreOpener
	store contracts.Store
	close func() error
}

// Store returns the open store.
func (s *session) Store() (contracts.Store, error) {
	if s.store == nil {
		return nil, errors.New("store is not open")
	}
	return s.store, nil
}

// newRootCmd builds the framerec command tree over s.
func newRootCmd(s *session, defaultDB string) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "framerec",
		Short:         "framerec edits frame recorder settings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
				if err := loadDefaultsFromConfig(cmd, configFile); err != nil {
					return fmt.Errorf("failed loading config file: %w", err)
				}
			}
			logging.Level = viper.GetInt(keys.DebugLevel)

			dbPath := viper.GetString(keys.DBPath)
			if dbPath == "" {
				return errors.New("no database path set")
			}
			store, closeFn, err := s.open(dbPath)
			if err != nil {
				return err
			}
			s.store, s.close = store, closeFn
			logging.D(1, "Opened recorder database %q", dbPath)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("framerec")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "debug-level" reads FRAMEREC_DEBUG_LEVEL

	if err := cfgflags.InitProgramFlags(rootCmd, defaultDB); err != nil {
		return nil, err
	}
	rootCmd.AddCommand(cfgrecorder.InitRecorderCmds(s)...)
	return rootCmd, nil
}

// Execute builds the command tree and runs it with args, printing to out.
//
// The store is closed once the command returns.
func Execute(open StoreOpener, defaultDB string, args []string, out io.Writer) (err error) {
	s := &session{open: open}
	defer func() {
		err = errors.Join(err, s.shutdown())
	}()

	rootCmd, err := newRootCmd(s, defaultDB)
	if err != nil {
		return err
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

// shutdown closes the store if a command opened it.
func (s *session) shutdown() error {
	if s.close == nil {
		return nil
	}
	err := s.close()
	s.store, s.close = nil, nil
	return err
}
