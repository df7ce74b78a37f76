package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vendors/*.yaml
var vendorFS embed.FS

// ErrInvalidCatalog is returned for catalogs that cannot be parsed or built.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Parse decodes one vendor definition. Unknown fields are rejected.
func Parse(data []byte, source string) (*Vendor, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var v Vendor
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty document", ErrInvalidCatalog, source)
		}
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalidCatalog, source, err)
	}
	if strings.TrimSpace(v.Owner) == "" {
		return nil, fmt.Errorf("%w: %s: missing owner", ErrInvalidCatalog, source)
	}
	v.Source = source
	return &v, nil
}

func isCatalogFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Load reads every .yaml/.yml file in dir of fsys, in name order.
func Load(fsys fs.FS, dir string) ([]*Vendor, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && isCatalogFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	vendors := make([]*Vendor, 0, len(names))
	for _, name := range names {
		p := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		v, err := Parse(data, p)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

// LoadFiles reads catalogs from paths. A directory path loads every catalog
// file inside it.
func LoadFiles(paths ...string) ([]*Vendor, error) {
	var vendors []*Vendor
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			vs, err := Load(os.DirFS(p), ".")
			if err != nil {
				return nil, err
			}
			for _, v := range vs {
				v.Source = path.Join(p, v.Source)
			}
			vendors = append(vendors, vs...)
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		v, err := Parse(data, p)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

// ---------------------------------------------------------------------------
// Embedded catalogs
// ---------------------------------------------------------------------------

var (
	cacheMu       sync.RWMutex
	cachedVendors []*Vendor
	cachedDefault *Catalog
)

// BuiltinVendors returns the embedded vendor definitions. The returned
// values are shared and must not be modified.
func BuiltinVendors() ([]*Vendor, error) {
	cacheMu.RLock()
	if cachedVendors != nil {
		vs := cachedVendors
		cacheMu.RUnlock()
		return append([]*Vendor(nil), vs...), nil
	}
	cacheMu.RUnlock()

	vs, err := Load(vendorFS, "vendors")
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cachedVendors = vs
	cacheMu.Unlock()

	return append([]*Vendor(nil), vs...), nil
}

// BuiltinOwners returns the owners of the embedded catalogs, sorted.
func BuiltinOwners() ([]string, error) {
	vs, err := BuiltinVendors()
	if err != nil {
		return nil, err
	}
	owners := make([]string, len(vs))
	for i, v := range vs {
		owners[i] = v.Owner
	}
	sort.Strings(owners)
	return owners, nil
}

// Default returns the catalog built from the embedded vendor definitions.
// The catalog is built once and shared.
func Default() (*Catalog, error) {
	cacheMu.RLock()
	if c := cachedDefault; c != nil {
		cacheMu.RUnlock()
		return c, nil
	}
	cacheMu.RUnlock()

	vs, err := BuiltinVendors()
	if err != nil {
		return nil, err
	}
	c, err := Build(vs...)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	if cachedDefault == nil {
		cachedDefault = c
	}
	c = cachedDefault
	cacheMu.Unlock()

	return c, nil
}
