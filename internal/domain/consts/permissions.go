package consts

// Recommended permissions for files and directories framerec might create.
const (
	// ** World Readable **
	PermsGenericDir = 0o755
	PermsLogFile    = 0o644

	// ** Private **
	PermsHomeProgDir = 0o750 // Holds the settings database
)
