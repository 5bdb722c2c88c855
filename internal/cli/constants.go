package cli

// Default values for CLI flags and output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// KeyValueArgs is the argument count of `config set`.
	KeyValueArgs = 2
	// PackArgs is the argument count of `pack`.
	PackArgs = 2
)
