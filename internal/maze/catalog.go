package maze

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed levels/catalog.yaml
var catalogYAML []byte

// CatalogEntry is one hand-authored level.
type CatalogEntry struct {
	Level int      `yaml:"level"`
	Name  string   `yaml:"name"`
	Rows  []string `yaml:"rows"`
}

type catalogFile struct {
	Levels []CatalogEntry `yaml:"levels"`
}

var (
	catalogOnce    sync.Once
	catalogEntries []CatalogEntry
	catalogErr     error
)

func loadCatalog() ([]CatalogEntry, error) {
	catalogOnce.Do(func() {
		var f catalogFile
		if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
			catalogErr = fmt.Errorf("maze: cannot parse catalog: %w", err)
			return
		}
		sort.Slice(f.Levels, func(i, j int) bool { return f.Levels[i].Level < f.Levels[j].Level })
		catalogEntries = f.Levels
	})
	return catalogEntries, catalogErr
}

// CatalogSize returns the number of hand-authored levels.
func CatalogSize() int {
	entries, err := loadCatalog()
	if err != nil {
		return 0
	}
	return len(entries)
}

// CatalogGrid returns a fresh copy of the hand-authored grid for level n.
func CatalogGrid(n int) (*Grid, string, error) {
	entries, err := loadCatalog()
	if err != nil {
		return nil, "", err
	}
	for _, e := range entries {
		if e.Level == n {
			g, err := Parse(e.Rows)
			if err != nil {
				return nil, "", fmt.Errorf("maze: catalog level %d: %w", n, err)
			}
			return g, e.Name, nil
		}
	}
	return nil, "", fmt.Errorf("maze: no catalog level %d", n)
}
