package ecs

import "fmt"

// Entity identifies a live object in a World. The low half is the storage
// slot, the high half counts how often that slot has been reused, so a
// handle kept across a level despawn never aliases a newer entity.
type Entity uint64

type slotID uint32
type genCount uint32

func packEntity(slot slotID, gen genCount) Entity {
	return Entity(uint64(gen)<<32 | uint64(slot))
}

func (e Entity) slot() slotID {
	return slotID(uint32(e))
}

func (e Entity) gen() genCount {
	return genCount(uint32(uint64(e) >> 32))
}

// Slot returns the storage slot of e, starting at 1.
func (e Entity) Slot() uint32 {
	return uint32(e.slot())
}

// Generation returns how many times e's slot had been recycled when e was
// created.
func (e Entity) Generation() uint32 {
	return uint32(e.gen())
}

// String formats e as slot:generation, e.g. "12:0".
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.slot(), e.gen())
}

// Valid reports whether e was ever handed out by a World.
func (e Entity) Valid() bool {
	return e.slot() != 0
}
