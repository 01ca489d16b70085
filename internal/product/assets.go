package product

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultPlaceholder = "/assets/products/placeholder.png"

// AssetTable maps product ids to image references. It is loaded once at
// start-up; product names never take part in the lookup.
type AssetTable struct {
	placeholder string
	byID        map[int64]string
}

type assetManifest struct {
	Placeholder string           `yaml:"placeholder"`
	Products    map[int64]string `yaml:"products"`
}

func NewAssetTable(placeholder string, byID map[int64]string) *AssetTable {
	if placeholder == "" {
		placeholder = defaultPlaceholder
	}
	table := &AssetTable{placeholder: placeholder, byID: make(map[int64]string, len(byID))}
	for id, ref := range byID {
		if ref != "" {
			table.byID[id] = ref
		}
	}
	return table
}

// LoadAssetTable reads a YAML manifest. An empty path yields a table that
// resolves every product to the placeholder.
func LoadAssetTable(path string) (*AssetTable, error) {
	if path == "" {
		return NewAssetTable("", nil), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset manifest %s: %w", path, err)
	}
	return ParseAssetManifest(raw)
}

func ParseAssetManifest(raw []byte) (*AssetTable, error) {
	var m assetManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	for id := range m.Products {
		if id <= 0 {
			return nil, fmt.Errorf("%w: product id %d", ErrInvalidManifest, id)
		}
	}
	return NewAssetTable(m.Placeholder, m.Products), nil
}

// Resolve returns the asset for id and whether it was explicitly mapped.
func (t *AssetTable) Resolve(id int64) (string, bool) {
	if t == nil {
		return defaultPlaceholder, false
	}
	if ref, ok := t.byID[id]; ok {
		return ref, true
	}
	return t.placeholder, false
}

func (t *AssetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}
