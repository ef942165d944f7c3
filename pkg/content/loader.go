package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	strict bool
}

// WithStrictTemplates rejects pages whose template is not in the catalog.
func WithStrictTemplates() ParseOption {
	return func(cfg *parseConfig) {
		cfg.strict = true
	}
}

type wireDeck struct {
	Title    string            `json:"title"`
	Language string            `json:"language"`
	Theme    string            `json:"theme"`
	Variant  string            `json:"variant"`
	Pages    []json.RawMessage `json:"pages"`
}

// Parse decodes a deck from JSON, falling back to YAML.
func Parse(data []byte, options ...ParseOption) (Deck, error) {
	cfg := parseConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return Deck{}, errors.New("content: deck document is empty")
	}

	payload := data
	var wire wireDeck
	if err := json.Unmarshal(payload, &wire); err != nil {
		converted, yamlErr := yamlToJSON(data)
		if yamlErr != nil {
			return Deck{}, fmt.Errorf("content: parse deck: invalid JSON or YAML: %w", yamlErr)
		}
		if err := json.Unmarshal(converted, &wire); err != nil {
			return Deck{}, fmt.Errorf("content: parse deck: %w", err)
		}
	}

	deck := Deck{
		Title:    wire.Title,
		Language: wire.Language,
		Theme:    wire.Theme,
		Variant:  wire.Variant,
		Pages:    make([]Page, 0, len(wire.Pages)),
	}
	for i, raw := range wire.Pages {
		page, err := decodePage(raw, cfg.strict)
		if err != nil {
			return Deck{}, fmt.Errorf("content: page %d: %w", i, err)
		}
		deck.Pages = append(deck.Pages, page)
	}
	return deck.WithPageIDs(), nil
}

// Load reads and parses a deck file.
func Load(path string, options ...ParseOption) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data, options...)
}

// LoadFS reads and parses a deck file from fsys.
func LoadFS(fsys fs.FS, path string, options ...ParseOption) (Deck, error) {
	if fsys == nil {
		return Deck{}, errors.New("content: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Deck{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data, options...)
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share the
// JSON field tags.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	normalized, err := normalizeYAML(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

func normalizeYAML(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			name, ok := key.(string)
			if !ok {
				name = fmt.Sprint(key)
			}
			converted, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[name] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}
