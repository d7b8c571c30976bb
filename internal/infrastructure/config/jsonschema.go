package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// SchemaFileName is written next to config.toml for editor completion.
const SchemaFileName = "config.schema.json"

// Schema reflects the JSON schema of Config.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/areashot/config.schema.json"
	schema.Title = "areashot configuration"
	schema.Description = "Configuration schema for areashot, a region screenshot tool for web pages"
	return schema
}

// GenerateSchemaFile writes the schema into dir.
func GenerateSchemaFile(dir string) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaFile := filepath.Join(dir, SchemaFileName)
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
