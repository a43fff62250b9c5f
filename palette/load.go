package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOrDefault loads palettes from path, or returns the built-in palettes
// when no path is configured.
func LoadOrDefault(path string) (Palette, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load reads season palettes from a JSON or YAML file. The file maps season
// names to swatch lists, and seasons keep the order they appear in the
// document.
func Load(path string) (Palette, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(b)
	default:
		return parseJSON(b)
	}
}

// parseJSON walks the decoder token stream so seasons keep document order,
// which decoding into a map would scramble.
func parseJSON(b []byte) (Palette, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, e := dec.Token()
	if e != nil {
		return nil, fmt.Errorf("parsing palette file: %w", e)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("palette file must be a JSON object of season name to swatch list")
	}

	p := Palette{}
	for dec.More() {
		tok, e := dec.Token()
		if e != nil {
			return nil, fmt.Errorf("parsing palette file: %w", e)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in palette file", tok)
		}

		var swatches []string
		if e := dec.Decode(&swatches); e != nil {
			return nil, fmt.Errorf("season %q: %w", name, e)
		}
		p = upsert(p, name, swatches)
	}

	return p, nil
}

// parseYAML reads the mapping through the node API, which keeps document
// order where a map[string][]string would not.
func parseYAML(b []byte) (Palette, error) {
	var root yaml.Node
	if e := yaml.Unmarshal(b, &root); e != nil {
		return nil, fmt.Errorf("parsing palette file: %w", e)
	}
	if len(root.Content) == 0 {
		return Palette{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("palette file must be a mapping of season name to swatch list")
	}

	p := Palette{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]

		var swatches []string
		if e := val.Decode(&swatches); e != nil {
			return nil, fmt.Errorf("season %q: %w", key.Value, e)
		}
		p = upsert(p, key.Value, swatches)
	}

	return p, nil
}
