// Package keys holds flag and internal Viper keys.
package keys

// Program.
const (
	DBPath     string = "db"
	DebugLevel string = "debug-level"
	ConfigFile string = "config-file"
	NoColor    string = "no-color"
)

// Recorder commands.
const (
	Kind     string = "kind"
	Set      string = "set"
	Since    string = "since"
	Category string = "category"
	NoBounds string = "no-bounds"
)
