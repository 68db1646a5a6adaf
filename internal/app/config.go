package app

// Config holds runtime configuration for one export run.
type Config struct {
	// DestDir is the directory exported binaries are copied into. It is
	// created if absent.
	DestDir string

	// BuildArgs is the build subcommand and its arguments, everything
	// after the "--" on the command line.
	BuildArgs []string

	// Tag, when non-empty, is inserted into every exported file name
	// between the stem and the extension.
	Tag string

	// Command is the build tool binary to spawn; cargo when empty.
	Command string

	// Behavior
	NoDefaultOptions bool
	NFCNames         bool
	Verbose          bool
}
