package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Mapping translates suggestion names into Toggl identifiers during plan
// building: project suggestion -> project id, tag -> canonical tag.
type Mapping struct {
	ProjectIDs map[string]int64  `json:"project_ids"`
	TagMap     map[string]string `json:"tag_map"`
}

// LoadMapping reads the mapping file at path (DefaultMappingPath when path
// is empty). A missing file yields an empty mapping; a malformed one is an
// error.
func LoadMapping(path string) (Mapping, error) {
	if path == "" {
		path = DefaultMappingPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Mapping{ProjectIDs: map[string]int64{}, TagMap: map[string]string{}}, nil
	}
	if err != nil {
		return Mapping{}, fmt.Errorf("reading mapping %s: %w", path, err)
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("parsing mapping %s: %w", path, err)
	}
	if m.ProjectIDs == nil {
		m.ProjectIDs = map[string]int64{}
	}
	if m.TagMap == nil {
		m.TagMap = map[string]string{}
	}
	return m, nil
}
