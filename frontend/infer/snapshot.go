package infer

import (
	"github.com/benbjohnson/immutable"
)

type typeVarIDHasher struct{}

func (typeVarIDHasher) Hash(id TypeVarID) uint32 {
	return uint32(id) ^ uint32(id>>32)
}

func (typeVarIDHasher) Equal(a, b TypeVarID) bool {
	return a == b
}

var _ immutable.Hasher[TypeVarID] = typeVarIDHasher{}

// relatednessCache memoizes per-variable query results. It exists in one of
// two named states: a building cache that accepts inserts, and a frozen
// snapshot sharing the same backing store that only answers lookups. Freezing
// consumes the building state, so a frozen snapshot can be handed out without
// any risk of late writes.
type relatednessCache struct {
	building *immutable.MapBuilder[TypeVarID, bool]
	frozen   *immutable.Map[TypeVarID, bool]
}

func newRelatednessCache() *relatednessCache {
	return &relatednessCache{
		building: immutable.NewMapBuilder[TypeVarID, bool](typeVarIDHasher{}),
	}
}

func (c *relatednessCache) put(id TypeVarID, related bool) {
	if c.building == nil {
		panic("relatednessCache: put on a frozen snapshot")
	}
	c.building.Set(id, related)
}

// freeze turns the building cache into its read-only snapshot state.
func (c *relatednessCache) freeze() *relatednessCache {
	frozen := &relatednessCache{frozen: c.building.Map()}
	c.building = nil
	return frozen
}

func (c *relatednessCache) get(id TypeVarID) bool {
	if c.frozen == nil {
		related, _ := c.building.Get(id)
		return related
	}
	related, _ := c.frozen.Get(id)
	return related
}
