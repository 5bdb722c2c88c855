package fsutil

// File and directory permission constants.
// These follow standard Unix permission conventions and are used consistently
// throughout cutter for the files and directories it creates.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeExec    = 0o755 // -rwxr-xr-x: For hook scripts

	// Directory modes.
	DirModeDefault  = 0o755 // drwxr-xr-x: Default for directories
	DirModePrivate  = 0o700 // drwx------: For private directories (owner only)
	DirModeReadOnly = 0o555 // dr-xr-xr-x: For read-only directories

	// Single permission bits.
	OwnerRead  = 0o400
	OwnerWrite = 0o200
	OwnerExec  = 0o100
	OwnerAll   = OwnerRead | OwnerWrite | OwnerExec
)
