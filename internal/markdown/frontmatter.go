package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/adrg/frontmatter"
	yaml "gopkg.in/yaml.v3"
)

// Preamble is the metadata block preceding a recipe body.
type Preamble struct {
	Name      string
	Residence string
	Category  string
	Tags      []string
	Image     *string
	// Raw keeps every key in JSON-compatible form so schema validation and
	// callers interested in custom fields see the same values.
	Raw map[string]any
}

// yamlFormat decodes "---" delimited preambles with yaml.v3, which yields
// string-keyed maps for nested values.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ParseFrontMatter splits source into the raw preamble mapping and the
// Markdown body. Sources without a preamble yield an empty mapping and the
// full body.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw, yamlFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	normalized, err := normalizeValues(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return normalized, body, nil
}

// DecodePreamble reads the known keys out of a raw preamble mapping. Values
// of the wrong type are treated as absent; schema validation is expected to
// have rejected them already.
func DecodePreamble(raw map[string]any) Preamble {
	meta := Preamble{
		Name:      stringValue(raw["name"]),
		Residence: stringValue(raw["residence"]),
		Category:  stringValue(raw["category"]),
		Tags:      []string{},
		Raw:       cloneMap(raw),
	}

	if items, ok := raw["tags"].([]any); ok {
		for _, item := range items {
			if tag, ok := item.(string); ok {
				meta.Tags = append(meta.Tags, tag)
			}
		}
	}

	if image, ok := raw["image"].(string); ok && image != "" {
		meta.Image = &image
	}

	return meta
}

// normalizeValues round-trips the decoded YAML through JSON so dates,
// integers and nested maps take the shapes the schema validator expects.
func normalizeValues(raw map[string]any) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
