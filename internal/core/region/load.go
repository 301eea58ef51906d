package region

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a region hierarchy file and builds the containment index.
// The format is chosen by file extension: .json, .yaml or .yml. The file
// holds a single root node of the {id, name, subregions} shape.
//
// Load is strict: a missing or malformed file is an error. Callers that can
// run without region data decide themselves whether to degrade to New().
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading region file %s: %w", path, err)
	}

	var root Node
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing region file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing region file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported region file extension %q (use .json, .yaml, or .yml)", ext)
	}

	return Build(&root), nil
}
