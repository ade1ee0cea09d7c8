package categories

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the document category definitions loaded from the
// embedded YAML file.
type Registry struct {
	categories map[string]Category
	mu         sync.RWMutex
}

// NewRegistry creates a new category registry and loads the embedded YAML
func NewRegistry() (*Registry, error) {
	r := &Registry{
		categories: make(map[string]Category),
	}

	if err := r.loadFile("config/categories.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load document categories: %w", err)
	}

	return r, nil
}

// loadFile loads a category YAML file into the registry
func (r *Registry) loadFile(filename string) error {
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	for key, cat := range file.Categories {
		cat.Key = key
		r.categories[key] = cat
	}
	r.mu.Unlock()

	return nil
}

// Get returns the category for a key
func (r *Registry) Get(key string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[key]
	if !ok {
		return nil, fmt.Errorf("unknown document category: %s", key)
	}
	return &cat, nil
}

// Has reports whether a category key is registered
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.categories[key]
	return ok
}

// List returns all categories sorted by key
func (r *Registry) List() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Category, 0, len(r.categories))
	for _, cat := range r.categories {
		list = append(list, cat)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}
