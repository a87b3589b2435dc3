package corpus

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/teranos/langkit/errors"
)

// Class is one labelled training corpus.
type Class struct {
	Label string `toml:"label" json:"label"`
	Path  string `toml:"path" json:"path"`
}

type manifest struct {
	Class []Class `toml:"class"`
}

// LoadManifest reads a TOML list of labelled corpora:
//
//	[[class]]
//	label = "en"
//	path  = "english.txt"
//
// Relative paths are resolved against the manifest's directory.
func LoadManifest(path string) ([]Class, error) {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to read manifest %s", path),
			"a manifest lists [[class]] tables with label and path keys",
		)
	}
	if len(m.Class) == 0 {
		return nil, errors.NewInvalidRequestError("manifest %s has no classes", path)
	}

	base := filepath.Dir(path)
	seen := make(map[string]struct{}, len(m.Class))
	for i, c := range m.Class {
		if c.Label == "" || c.Path == "" {
			return nil, errors.NewInvalidRequestError("manifest %s: class %d needs label and path", path, i+1)
		}
		if _, dup := seen[c.Label]; dup {
			return nil, errors.NewInvalidRequestError("manifest %s: duplicate label %q", path, c.Label)
		}
		seen[c.Label] = struct{}{}
		if !filepath.IsAbs(c.Path) {
			m.Class[i].Path = filepath.Join(base, c.Path)
		}
	}
	return m.Class, nil
}
