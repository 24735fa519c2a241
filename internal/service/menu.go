package service

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/validation"
)

//go:embed menu.yaml
var defaultMenu []byte

// MenuService serves the fixed menu catalog
type MenuService struct {
	items []model.MenuItem
	byID  map[int]model.MenuItem
}

// NewMenuService loads the built-in catalog
func NewMenuService() (*MenuService, error) {
	return LoadMenu(defaultMenu)
}

// LoadMenu parses a YAML catalog. Every item needs a unique id, a name and a
// price with a numeric amount.
func LoadMenu(data []byte) (*MenuService, error) {
	var items []model.MenuItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	byID := make(map[int]model.MenuItem, len(items))
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("menu item %d has no name", it.ID)
		}
		if _, err := validation.ParsePrice(it.Price); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", it.ID, err)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id %d", it.ID)
		}
		byID[it.ID] = it
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return &MenuService{items: items, byID: byID}, nil
}

// Items returns the catalog ordered by id
func (s *MenuService) Items() []model.MenuItem {
	out := make([]model.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *MenuService) Item(id int) (model.MenuItem, bool) {
	it, ok := s.byID[id]
	return it, ok
}
