// Package paths initializes framerec's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"framerec/internal/domain/consts"
)

const (
	progDir = ".framerec"
	dbFile  = "framerec.db"
	logFile = "framerec.log"
)

// File and directory path strings.
var (
	HomeProgDir string
	DBFilePath  string
	LogFilePath string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home program dir ~/.framerec
	HomeProgDir = filepath.Join(userHomeDir, progDir)
	if _, err := os.Stat(HomeProgDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeProgDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	// Main files
	DBFilePath = filepath.Join(HomeProgDir, dbFile)
	LogFilePath = filepath.Join(HomeProgDir, logFile)
	return nil
}
