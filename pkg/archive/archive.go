// Package archive unpacks project templates shipped as archives and packs
// template directories back into tar.gz files.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/cutter/internal/logger"
	cerrors "github.com/glorpus-work/cutter/pkg/errors"
	"github.com/glorpus-work/cutter/pkg/fsutil"
	"github.com/mholt/archives"
)

// archiveSuffixes are stripped from an archive's file name to name the
// directory it unpacks into. Longer suffixes come first.
var archiveSuffixes = []string{
	".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst", ".tar.lz4",
	".tgz", ".tbz2", ".txz", ".tar", ".zip", ".7z",
}

// Manager handles archive extraction and creation operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Unpack extracts the template archive at archivePath below cloneToDir and
// returns the template directory. An archive holding a single top-level
// directory unpacks to cloneToDir/<that directory>; any other archive unpacks
// to cloneToDir/<archive name without extension>.
//
// An existing template directory is removed first when overwrite is set and
// is an ErrTemplateExists error otherwise.
func (am *Manager) Unpack(ctx context.Context, archivePath, cloneToDir string, overwrite bool) (string, error) {
	if archivePath == "" || cloneToDir == "" {
		return "", cerrors.ErrEmptyPath
	}

	if !fsutil.MakeSurePathExists(cloneToDir) {
		return "", cerrors.Wrapf(cerrors.ErrCloneDir, "%s", cloneToDir)
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	topLevel, err := singleTopLevelDir(fsys)
	if err != nil {
		return "", fmt.Errorf("failed to read archive %s: %w", archivePath, err)
	}

	templateDir := filepath.Join(cloneToDir, BaseName(archivePath))
	extractRoot := templateDir
	if topLevel != "" {
		templateDir = filepath.Join(cloneToDir, topLevel)
		extractRoot = cloneToDir
	}

	if _, err := os.Lstat(templateDir); err == nil {
		if !overwrite {
			return "", cerrors.Wrapf(cerrors.ErrTemplateExists, "%s", templateDir)
		}
		logger.Info("Removing existing template", logger.Fields{"path": templateDir})
		if err := fsutil.Rmtree(templateDir); err != nil {
			return "", cerrors.Wrapf(err, "failed to remove existing template %s", templateDir)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := am.extractFS(fsys, extractRoot); err != nil {
		return "", err
	}

	logger.Debug("Unpacked template", logger.Fields{"archive": archivePath, "path": templateDir})
	return templateDir, nil
}

// ExtractAll extracts all files from an archive to the specified destination directory
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	return am.extractFS(fsys, destDir)
}

// Create creates a tar.gz archive from the specified source directory
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	info, err := os.Stat(absolutePath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", sourceDir)
	}

	// The directory itself becomes the single top-level entry so the archive
	// unpacks back to a directory of the same name.
	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath: filepath.Base(absolutePath),
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	if err := fsutil.EnsureFileDir(archivePath); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}

	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}

// BaseName returns the file name of archivePath without its archive extension.
func BaseName(archivePath string) string {
	name := filepath.Base(archivePath)
	lower := strings.ToLower(name)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) && len(name) > len(suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// singleTopLevelDir returns the name of the only root entry of fsys when it is
// a directory, and "" otherwise.
func singleTopLevelDir(fsys fs.FS) (string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", err
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return "", nil
	}
	return entries[0].Name(), nil
}

func (am *Manager) extractFS(fsys fs.FS, destDir string) error {
	if err := fsutil.EnsureDir(destDir); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return am.extractEntry(fsys, path, destDir, d)
	})
}

// extractEntry processes a single archive entry and writes it to destDir.
func (am *Manager) extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return fmt.Errorf("archive entry %q escapes the destination directory", path)
	}

	targetPath := filepath.Join(destDir, filepath.FromSlash(path))

	if d.IsDir() {
		return fsutil.EnsureDir(targetPath)
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if fi, ok := info.(archives.FileInfo); ok && fi.LinkTarget != "" {
			return writeLink(path, fi.LinkTarget, targetPath)
		}
		return am.writeSymlink(fsys, path, targetPath)
	}

	return am.writeRegularFile(fsys, path, targetPath, info)
}

// writeSymlink creates a symlink at targetPath with contents from the archive entry at path.
func (am *Manager) writeSymlink(fsys fs.FS, path, targetPath string) error {
	linkTarget, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	defer func() { _ = linkTarget.Close() }()

	targetBytes, err := io.ReadAll(linkTarget)
	if err != nil {
		return fmt.Errorf("failed to read symlink target %s: %w", path, err)
	}

	return writeLink(path, string(targetBytes), targetPath)
}

func writeLink(path, linkTarget, targetPath string) error {
	if err := checkLinkTarget(path, linkTarget); err != nil {
		return err
	}
	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", targetPath, err)
	}

	_ = os.Remove(targetPath)

	return os.Symlink(linkTarget, targetPath)
}

// checkLinkTarget rejects a symlink entry at path whose target is absolute or
// resolves outside the extraction root.
func checkLinkTarget(path, linkTarget string) error {
	target := filepath.FromSlash(linkTarget)
	if linkTarget == "" || filepath.IsAbs(target) || strings.HasPrefix(linkTarget, "/") {
		return fmt.Errorf("symlink %q has unsafe target %q", path, linkTarget)
	}
	resolved := filepath.Join(filepath.Dir(filepath.FromSlash(path)), target)
	if !filepath.IsLocal(resolved) {
		return fmt.Errorf("symlink %q points outside the destination directory: %q", path, linkTarget)
	}
	return nil
}

// writeRegularFile writes a regular file from the archive entry to targetPath and preserves metadata.
func (am *Manager) writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	dstFile, err := fsutil.CreateFilePerm(targetPath, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", path, err)
	}

	if err := os.Chmod(targetPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
	}
	return nil
}
