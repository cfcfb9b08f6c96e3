package tabledef

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const currentVersion = "1"

type definitionFile struct {
	Version string  `yaml:"version"`
	Tables  []Table `yaml:"tables"`
}

// EncodeYAML serializes table definitions for storage in a definition file.
func EncodeYAML(tables []Table) ([]byte, error) {
	return yaml.Marshal(definitionFile{Version: currentVersion, Tables: tables})
}

// DecodeYAML loads and validates table definitions from a definition file.
func DecodeYAML(b []byte) ([]Table, error) {
	var f definitionFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode table definitions: %w", err)
	}
	for i := range f.Tables {
		if err := f.Tables[i].Validate(); err != nil {
			return nil, err
		}
	}
	return f.Tables, nil
}
