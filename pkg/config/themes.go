package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTheme is returned by Themes.Select for names never loaded.
var ErrUnknownTheme = errors.New("config: unknown theme")

// Themes holds go-theme manifests loaded from disk and selects among them.
type Themes struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

type themeFile struct {
	Name     string                       `json:"name" yaml:"name"`
	Version  string                       `json:"version" yaml:"version"`
	Tokens   map[string]string            `json:"tokens" yaml:"tokens"`
	Variants map[string]map[string]string `json:"variants" yaml:"variants"`
}

// LoadThemesFS walks fsys and parses every JSON/YAML theme manifest. When
// fsys is nil the returned set is empty.
func LoadThemesFS(fsys fs.FS, defaultTheme, defaultVariant string) (*Themes, error) {
	themes := &Themes{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	if fsys == nil {
		return themes, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		file, err := parseThemeFile(data, path)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(file.Name)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if _, exists := themes.manifests[name]; exists {
			return fmt.Errorf("config: duplicate theme %q (file %s)", name, path)
		}
		themes.manifests[name] = file.manifest(name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return themes, nil
}

// Names lists the loaded theme names sorted.
func (t *Themes) Names() []string {
	names := make([]string, 0, len(t.manifests))
	for name := range t.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector. Empty arguments fall back to the
// configured defaults; an empty name with no default selects nothing.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = t.defaultTheme
	}
	if variant == "" {
		variant = t.defaultVariant
	}
	if name == "" {
		return nil, nil
	}
	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, strings.Join(t.Names(), ", "))
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func (f themeFile) manifest(name string) *theme.Manifest {
	m := &theme.Manifest{
		Name:     name,
		Version:  f.Version,
		Tokens:   f.Tokens,
		Variants: make(map[string]theme.Variant, len(f.Variants)),
	}
	for variant, tokens := range f.Variants {
		m.Variants[variant] = theme.Variant{Tokens: tokens}
	}
	return m
}

func parseThemeFile(data []byte, source string) (themeFile, error) {
	var file themeFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return themeFile{}, fmt.Errorf("config: theme file %s is empty", source)
	}
	if err := json.Unmarshal(data, &file); err == nil {
		return file, nil
	}
	file = themeFile{}
	if err := yaml.Unmarshal(data, &file); err == nil {
		return file, nil
	}
	return themeFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
