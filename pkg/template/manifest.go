// Package template reads the cutter.yaml manifest at the root of a project
// template.
package template

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	cerrors "github.com/glorpus-work/cutter/pkg/errors"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest file looked up in a template directory.
const ManifestFileName = "cutter.yaml"

// Manifest describes a template.
type Manifest struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	// MinVersion is a version constraint the running cutter must satisfy,
	// for example ">= 0.2.0".
	MinVersion string `yaml:"min_version,omitempty"`
	// DeleteProjectOnFailure overrides the configured behaviour when set.
	DeleteProjectOnFailure *bool `yaml:"delete_project_on_failure,omitempty"`
}

// LoadManifest reads dir/cutter.yaml. A template without a manifest gets an
// empty one.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Manifest{}, nil
		}
		return nil, cerrors.Wrapf(err, "failed to read %s", path)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, cerrors.Wrapf(cerrors.ErrInvalidManifest, "%s: %v", path, err)
	}
	return &manifest, nil
}

// CheckVersion verifies that current satisfies MinVersion. An empty
// MinVersion accepts every version.
func (m *Manifest) CheckVersion(current string) error {
	if m.MinVersion == "" {
		return nil
	}

	constraints, err := version.NewConstraint(m.MinVersion)
	if err != nil {
		return cerrors.Wrapf(cerrors.ErrInvalidManifest, "min_version %q: %v", m.MinVersion, err)
	}

	v, err := version.NewVersion(current)
	if err != nil {
		return cerrors.Wrapf(cerrors.ErrInvalidManifest, "cutter version %q: %v", current, err)
	}

	if !constraints.Check(v) {
		return cerrors.Wrapf(cerrors.ErrIncompatibleTemplate, "template needs %s, running %s", m.MinVersion, v)
	}
	return nil
}

// ShouldDeleteOnFailure resolves the delete-on-failure setting against the
// configured default.
func (m *Manifest) ShouldDeleteOnFailure(configured bool) bool {
	if m.DeleteProjectOnFailure != nil {
		return *m.DeleteProjectOnFailure
	}
	return configured
}
