package archive

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	cerrors "github.com/glorpus-work/cutter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTemplate lays out files (relative path -> content) under dir.
func writeTemplate(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

// packTemplate creates <tempDir>/<name>/ with files and packs it into
// <tempDir>/<name>.tar.gz.
func packTemplate(t *testing.T, tempDir, name string, files map[string]string) string {
	t.Helper()
	sourceDir := filepath.Join(tempDir, "src", name)
	writeTemplate(t, sourceDir, files)

	archivePath := filepath.Join(tempDir, name+".tar.gz")
	require.NoError(t, NewManager().Create(context.Background(), sourceDir, archivePath))
	return archivePath
}

func TestManager_CreateAndExtractAll(t *testing.T) {
	tempDir := t.TempDir()
	testFiles := map[string]string{
		"cutter.yaml":                  "name: demo\n",
		"hooks/post_gen_project.tengo": "err := \"\"",
		"{{project}}/README.md":        "# demo",
	}

	archivePath := packTemplate(t, tempDir, "demo", testFiles)
	assert.FileExists(t, archivePath)

	extractDir := filepath.Join(tempDir, "extracted")
	require.NoError(t, NewManager().ExtractAll(context.Background(), archivePath, extractDir))

	for path, expectedContent := range testFiles {
		content, err := os.ReadFile(filepath.Join(extractDir, "demo", path))
		require.NoError(t, err, "file %s was not extracted", path)
		assert.Equal(t, expectedContent, string(content))
	}
}

func TestManager_CreateRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := NewManager().Create(context.Background(), file, filepath.Join(t.TempDir(), "out.tar.gz"))
	assert.Error(t, err)
}

func TestManager_ExtractAllPreservesModes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows does not keep POSIX modes")
	}

	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "src", "tmpl")
	writeTemplate(t, sourceDir, map[string]string{"hooks/pre_gen_project.sh": "#!/bin/sh\n"})
	script := filepath.Join(sourceDir, "hooks", "pre_gen_project.sh")
	require.NoError(t, os.Chmod(script, 0o755))

	archivePath := filepath.Join(tempDir, "tmpl.tar.gz")
	am := NewManager()
	require.NoError(t, am.Create(context.Background(), sourceDir, archivePath))

	extractDir := filepath.Join(tempDir, "out")
	require.NoError(t, am.ExtractAll(context.Background(), archivePath, extractDir))

	info, err := os.Stat(filepath.Join(extractDir, "tmpl", "hooks", "pre_gen_project.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestManager_Unpack(t *testing.T) {
	tempDir := t.TempDir()
	archivePath := packTemplate(t, tempDir, "cookie", map[string]string{
		"cutter.yaml": "name: cookie\n",
		"a/b.txt":     "b",
	})
	cloneDir := filepath.Join(tempDir, "clones", "nested")

	templateDir, err := NewManager().Unpack(context.Background(), archivePath, cloneDir, false)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cloneDir, "cookie"), templateDir)
	assert.FileExists(t, filepath.Join(templateDir, "cutter.yaml"))
	assert.FileExists(t, filepath.Join(templateDir, "a", "b.txt"))
}

func TestManager_UnpackExisting(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		wantErr   error
		wantStale bool
	}{
		{
			name:      "refuses without overwrite",
			overwrite: false,
			wantErr:   cerrors.ErrTemplateExists,
			wantStale: true,
		},
		{
			name:      "replaces with overwrite",
			overwrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			archivePath := packTemplate(t, tempDir, "cookie", map[string]string{"new.txt": "new"})
			cloneDir := filepath.Join(tempDir, "clones")

			stale := filepath.Join(cloneDir, "cookie", "stale.txt")
			writeTemplate(t, filepath.Join(cloneDir, "cookie"), map[string]string{"stale.txt": "old"})
			require.NoError(t, os.Chmod(stale, 0o444))

			templateDir, err := NewManager().Unpack(context.Background(), archivePath, cloneDir, tt.overwrite)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, templateDir)
			} else {
				require.NoError(t, err)
				assert.FileExists(t, filepath.Join(templateDir, "new.txt"))
			}

			if tt.wantStale {
				assert.FileExists(t, stale)
			} else {
				assert.NoFileExists(t, stale)
			}
		})
	}
}

func TestManager_UnpackCloneDirUnusable(t *testing.T) {
	tempDir := t.TempDir()
	archivePath := packTemplate(t, tempDir, "cookie", map[string]string{"x.txt": "x"})

	blocker := filepath.Join(tempDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewManager().Unpack(context.Background(), archivePath, filepath.Join(blocker, "clones"), false)
	assert.ErrorIs(t, err, cerrors.ErrCloneDir)
}

func TestManager_UnpackEmptyPaths(t *testing.T) {
	_, err := NewManager().Unpack(context.Background(), "", t.TempDir(), false)
	assert.ErrorIs(t, err, cerrors.ErrEmptyPath)

	_, err = NewManager().Unpack(context.Background(), "x.zip", "", false)
	assert.ErrorIs(t, err, cerrors.ErrEmptyPath)
}

func TestManager_UnpackMissingArchive(t *testing.T) {
	tempDir := t.TempDir()
	_, err := NewManager().Unpack(context.Background(), filepath.Join(tempDir, "missing.zip"), tempDir, false)
	assert.Error(t, err)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "cookie.tar.gz", want: "cookie"},
		{path: "/tmp/cookie.TGZ", want: "cookie"},
		{path: "dir/cookie-1.0.zip", want: "cookie-1.0"},
		{path: "cookie.tar.zst", want: "cookie"},
		{path: "cookie.tar", want: "cookie"},
		{path: "cookie.rar", want: "cookie"},
		{path: "cookie", want: "cookie"},
		{path: ".zip", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.path))
		})
	}
}

func TestCheckLinkTarget(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		target  string
		wantErr bool
	}{
		{name: "sibling", path: "hooks/alias.sh", target: "pre.sh"},
		{name: "up within the tree", path: "a/link", target: "../b"},
		{name: "tree root", path: "a/link", target: ".."},
		{name: "nested", path: "link", target: "docs/index.md"},
		{name: "parent of the tree", path: "link", target: "../outside", wantErr: true},
		{name: "two levels up", path: "a/link", target: "../../x", wantErr: true},
		{name: "down then out", path: "link", target: "a/../../x", wantErr: true},
		{name: "absolute", path: "link", target: "/etc/passwd", wantErr: true},
		{name: "empty", path: "link", target: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLinkTarget(tt.path, tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWriteLink_RejectsEscapingTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlinks need extra privileges on Windows")
	}
	destDir := t.TempDir()
	linkPath := filepath.Join(destDir, "hooks", "evil")

	err := writeLink("hooks/evil", "../../etc/passwd", linkPath)

	require.Error(t, err)
	_, statErr := os.Lstat(linkPath)
	assert.True(t, os.IsNotExist(statErr), "no link is written")

	require.NoError(t, writeLink("hooks/alias", "pre.sh", filepath.Join(destDir, "hooks", "alias")))
	target, err := os.Readlink(filepath.Join(destDir, "hooks", "alias"))
	require.NoError(t, err)
	assert.Equal(t, "pre.sh", target)
}
