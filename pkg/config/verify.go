package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaDoc is the subset of generated json schema used for verification
type schemaDoc struct {
	Ref  string                `json:"$ref"`
	Defs map[string]schemaNode `json:"$defs"`
}

type schemaNode struct {
	Type       string                `json:"type"`
	Ref        string                `json:"$ref"`
	Properties map[string]schemaNode `json:"properties"`
	Items      *schemaNode           `json:"items"`
	Required   []string              `json:"required"`
	Enum       []any                 `json:"enum"`
}

// VerifyAgainstEmbeddedSchema checks the config against the embedded JSON schema.
// It reports fields unknown to the schema, missing required fields and values outside enums,
// which usually means schema.json wasn't regenerated after a config change.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var doc schemaDoc
	if err := json.Unmarshal([]byte(embeddedSchema), &doc); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root, ok := doc.resolve(schemaNode{Ref: doc.Ref})
	if !ok {
		return fmt.Errorf("schema root %q not found", doc.Ref)
	}
	var problems []string
	doc.check("", root, configMap, &problems)
	if len(problems) > 0 {
		slices.Sort(problems)
		return fmt.Errorf("validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

func (d schemaDoc) resolve(n schemaNode) (schemaNode, bool) {
	if n.Ref == "" {
		return n, true
	}
	def, ok := d.Defs[strings.TrimPrefix(n.Ref, "#/$defs/")]
	return def, ok
}

func (d schemaDoc) check(path string, node schemaNode, value any, problems *[]string) {
	node, ok := d.resolve(node)
	if !ok {
		*problems = append(*problems, fmt.Sprintf("%s: unresolved %s", path, node.Ref))
		return
	}

	switch v := value.(type) {
	case map[string]any:
		if node.Properties == nil {
			return
		}
		for _, req := range node.Required {
			if _, ok := v[req]; !ok {
				*problems = append(*problems, fmt.Sprintf("%s is required", join(path, req)))
			}
		}
		for key, val := range v {
			prop, ok := node.Properties[key]
			if !ok {
				*problems = append(*problems, fmt.Sprintf("%s is not in schema", join(path, key)))
				continue
			}
			d.check(join(path, key), prop, val, problems)
		}
	case []any:
		if node.Items == nil {
			return
		}
		for i, item := range v {
			d.check(fmt.Sprintf("%s[%d]", path, i), *node.Items, item, problems)
		}
	default:
		if len(node.Enum) > 0 && !slices.Contains(node.Enum, value) {
			*problems = append(*problems, fmt.Sprintf("%s: %v is not one of %v", path, value, node.Enum))
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
