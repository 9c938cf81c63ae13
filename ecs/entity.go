package ecs

// EntityId identifies a live entity: the owning archetype's id in the upper
// 32 bits and the slot index within that archetype in the lower 32. It goes
// stale when the entity migrates between archetypes; use an EntityRef to
// track an entity across moves.
type EntityId uint64

// NewEntityId packs an archetype id and slot index into an EntityId.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the owning archetype's id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the entity's slot index within its archetype.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a stable handle that Storage keeps pointed at the entity as
// it moves between archetypes. Resolve it through Storage.ResolveEntityRef.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
