package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads procedure catalogs from a YAML file. The file holds a list
// of catalogs:
//
//	# catalogs.yaml
//	- procedure: Craniotomy
//	  machines:
//	    - name: Patient Monitor
//	      description: ...
//	      aliases: [monitor, vitals monitor]
func LoadFile(path string) ([]Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog data.
func Parse(data []byte) ([]Catalog, error) {
	var catalogs []Catalog
	if err := yaml.Unmarshal(data, &catalogs); err != nil {
		return nil, fmt.Errorf("failed to parse catalogs: %w", err)
	}

	for _, c := range catalogs {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
	}
	return catalogs, nil
}
