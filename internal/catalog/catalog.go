// internal/catalog/catalog.go
//
// Planet catalog: the fixed table of answerable entities.
//
// Responsibilities:
//   - Parse a YAML catalog (embedded default or a file named by CATALOG_FILE).
//   - Validate it: non-empty, unique non-blank names, every planet has an image.
//   - Offer ordered, read-only access plus lookup by exact name.
//
// Initialization behavior (Init):
//   1. If CATALOG_FILE is set, load that file.
//   2. Otherwise fall back to the embedded assets/planets.yaml.
//   Init runs once (sync.Once); an empty catalog is an init error.
//
// Names are compared exactly: no case folding, no trimming at lookup time.

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lci-upiiz/adivina-planeta/assets"
)

var (
	ErrEmpty         = errors.New("catalog: no planets")
	ErrDuplicateName = errors.New("catalog: duplicate planet name")
	ErrBlankName     = errors.New("catalog: blank planet name")
	ErrMissingImage  = errors.New("catalog: planet has no image")
)

// Planet is one answerable entity.
type Planet struct {
	Name  string `yaml:"name" json:"name"`
	Image string `yaml:"image" json:"image"` // opaque image handle (URL path)
}

// Catalog is an immutable, ordered planet table.
type Catalog struct {
	planets []Planet
	byName  map[string]int
}

type document struct {
	Planets []Planet `yaml:"planets"`
}

// New validates planets and builds a Catalog. The slice is copied.
func New(planets []Planet) (*Catalog, error) {
	if len(planets) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		planets: make([]Planet, len(planets)),
		byName:  make(map[string]int, len(planets)),
	}
	for i, p := range planets {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrBlankName, i)
		}
		if p.Image == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingImage, p.Name)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		c.planets[i] = p
		c.byName[p.Name] = i
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return New(doc.Planets)
}

// Len returns the number of planets.
func (c *Catalog) Len() int { return len(c.planets) }

// At returns the i-th planet in catalog order.
func (c *Catalog) At(i int) Planet { return c.planets[i] }

// All returns a copy of the planets in catalog order.
func (c *Catalog) All() []Planet {
	out := make([]Planet, len(c.planets))
	copy(out, c.planets)
	return out
}

// Lookup finds a planet by its exact name.
func (c *Catalog) Lookup(name string) (Planet, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Planet{}, false
	}
	return c.planets[i], true
}

// Contains reports whether name is a catalog entry.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// --- process-wide default catalog ---

var (
	initOnce   sync.Once
	defaultCat *Catalog
	initialErr error
)

// Init loads the default catalog exactly once.
func Init() error {
	initOnce.Do(func() {
		var (
			data []byte
			err  error
		)
		if path := os.Getenv("CATALOG_FILE"); path != "" {
			data, err = os.ReadFile(path)
		} else {
			data, err = assets.CatalogYAML()
		}
		if err != nil {
			initialErr = fmt.Errorf("catalog: read: %w", err)
			return
		}
		defaultCat, initialErr = Parse(data)
	})
	return initialErr
}

// Default returns the catalog loaded by Init. It panics if Init failed
// or was never called; main is expected to fail fast before that.
func Default() *Catalog {
	if err := Init(); err != nil {
		panic(err)
	}
	return defaultCat
}
