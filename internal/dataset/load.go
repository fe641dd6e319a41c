package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileDataset struct {
	Name       string         `yaml:"name"`
	Attributes map[string]any `yaml:"attributes"`
	Categories []struct {
		Name    string      `yaml:"name"`
		Records []yaml.Node `yaml:"records"`
	} `yaml:"categories"`
}

// Load reads a dataset from a YAML or JSON file. JSON is accepted because
// it is a subset of YAML.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// Parse decodes and validates a dataset document.
func Parse(raw []byte) (*Dataset, error) {
	var doc fileDataset
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if len(doc.Categories) == 0 && len(doc.Attributes) == 0 {
		return nil, fmt.Errorf("%w: no attributes or categories", ErrInvalidDataset)
	}

	ds := &Dataset{
		Name:       strings.TrimSpace(doc.Name),
		Attributes: doc.Attributes,
		Categories: make([]Category, 0, len(doc.Categories)),
	}
	for _, c := range doc.Categories {
		cat := Category{Name: strings.TrimSpace(c.Name), Records: make([]Record, 0, len(c.Records))}
		seen := map[string]bool{}
		for i := range c.Records {
			node := &c.Records[i]
			var rec Record
			if err := node.Decode(&rec); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidDataset, cat.Name, i, err)
			}
			// Remember key order as written in the file.
			for j := 0; j+1 < len(node.Content); j += 2 {
				if k := node.Content[j].Value; !seen[k] {
					seen[k] = true
					cat.Fields = append(cat.Fields, k)
				}
			}
			cat.Records = append(cat.Records, rec)
		}
		ds.Categories = append(ds.Categories, cat)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}
