package fsutil

import "os"

// MakeExecutable adds the owner execute bit to scriptPath, keeping every other
// permission bit as it is. Calling it on an already executable file is a no-op.
func MakeExecutable(scriptPath string) error {
	info, err := os.Stat(scriptPath)
	if err != nil {
		return err
	}
	return os.Chmod(scriptPath, chmodBits(info.Mode())|OwnerExec)
}

// CreateFilePerm creates a new file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}
