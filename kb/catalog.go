package kb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/signalsfoundry/neo-explorer/model"
)

var (
	ErrDuplicateDesignation = errors.New("duplicate NEO designation")
	ErrUnknownDesignation   = errors.New("approach references unknown NEO designation")
)

// Catalog is an in-memory, thread-safe store of near-Earth objects and
// their close approaches. Construction performs the full linking pass:
// every approach's raw designation is resolved to its NEO, the NEO pointer
// is set, and the approach is appended to the NEO's Approaches slice. A
// Catalog is therefore never observable in a partially linked state.
type Catalog struct {
	mu sync.RWMutex

	byDesignation map[string]*model.NearEarthObject
	byName        map[string]*model.NearEarthObject
	approaches    []*model.CloseApproach
}

// NewCatalog indexes the given NEOs by designation (and by name, for named
// objects), then links every approach to its owner. It returns an error on
// a duplicate designation or on an approach whose designation matches no
// NEO; no catalog is returned in that case.
func NewCatalog(neos []*model.NearEarthObject, approaches []*model.CloseApproach) (*Catalog, error) {
	c := &Catalog{
		byDesignation: make(map[string]*model.NearEarthObject, len(neos)),
		byName:        make(map[string]*model.NearEarthObject),
		approaches:    make([]*model.CloseApproach, 0, len(approaches)),
	}

	for _, neo := range neos {
		if neo == nil || neo.Designation == "" {
			return nil, fmt.Errorf("nil or designation-less NEO")
		}
		if _, exists := c.byDesignation[neo.Designation]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDesignation, neo.Designation)
		}
		c.byDesignation[neo.Designation] = neo
		if neo.Name != "" {
			c.byName[neo.Name] = neo
		}
	}

	for _, ca := range approaches {
		if ca == nil {
			continue
		}
		neo, ok := c.byDesignation[ca.Designation()]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDesignation, ca.Designation())
		}
		ca.NEO = neo
		neo.Approaches = append(neo.Approaches, ca)
		c.approaches = append(c.approaches, ca)
	}

	return c, nil
}

// GetByDesignation returns the NEO with the given primary designation, or
// nil if not found.
func (c *Catalog) GetByDesignation(designation string) *model.NearEarthObject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byDesignation[designation]
}

// GetByName returns the NEO with the given IAU name, or nil if not found.
// Unnamed objects are never returned here.
func (c *Catalog) GetByName(name string) *model.NearEarthObject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if name == "" {
		return nil
	}
	return c.byName[name]
}

// NEOs returns a snapshot slice of all objects in the catalog.
func (c *Catalog) NEOs() []*model.NearEarthObject {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.NearEarthObject, 0, len(c.byDesignation))
	for _, neo := range c.byDesignation {
		out = append(out, neo)
	}
	return out
}

// Approaches returns a snapshot of all approaches in dataset order.
func (c *Catalog) Approaches() []*model.CloseApproach {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*model.CloseApproach{}, c.approaches...)
}

// Len reports the number of NEOs and approaches in the catalog.
func (c *Catalog) Len() (neos, approaches int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byDesignation), len(c.approaches)
}

// Query returns approaches matching the predicate, in dataset order,
// capped at limit when limit > 0. A nil predicate matches everything.
func (c *Catalog) Query(match func(*model.CloseApproach) bool, limit int) []*model.CloseApproach {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*model.CloseApproach
	for _, ca := range c.approaches {
		if match != nil && !match(ca) {
			continue
		}
		out = append(out, ca)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
