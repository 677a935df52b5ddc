package ecs

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnGrid(tb testing.TB, w *World, cells int) (root, layer Entity) {
	tb.Helper()
	root, layer = w.CreateEntity(), w.CreateEntity()
	require.NoError(tb, SetParent(w, layer, root))
	for range cells {
		require.NoError(tb, SetParent(w, w.CreateEntity(), layer))
	}
	return root, layer
}

func TestDespawnSubtreeDetachesOnlyItsRoot(t *testing.T) {
	w := NewWorld()
	root, layer := spawnGrid(t, w, 3)
	other := w.CreateEntity()
	require.NoError(t, SetParent(w, other, root))

	DespawnRecursive(w, layer)

	children, ok := Get(w, root, ChildrenComponent)
	require.True(t, ok)
	assert.Equal(t, []Entity{other}, children.Entities)
	assert.ElementsMatch(t, []Entity{root, other}, w.Entities())
}

func TestReparentKeepsSiblingOrder(t *testing.T) {
	w := NewWorld()
	a, b := w.CreateEntity(), w.CreateEntity()
	kids := []Entity{w.CreateEntity(), w.CreateEntity(), w.CreateEntity()}
	for _, k := range kids {
		require.NoError(t, SetParent(w, k, a))
	}

	require.NoError(t, SetParent(w, kids[1], b))

	fromA, _ := Get(w, a, ChildrenComponent)
	fromB, _ := Get(w, b, ChildrenComponent)
	assert.Equal(t, []Entity{kids[0], kids[2]}, fromA.Entities)
	assert.Equal(t, []Entity{kids[1]}, fromB.Entities)
	p, _ := Get(w, kids[1], ParentComponent)
	assert.Equal(t, b, p.Entity)
}

func TestLargeLayerSpawnsAndDespawns(t *testing.T) {
	const cells = 50_000
	w := NewWorld()
	root, layer := spawnGrid(t, w, cells)

	children, _ := Get(w, layer, ChildrenComponent)
	require.Len(t, children.Entities, cells)

	DespawnRecursive(w, root)
	assert.Empty(t, w.Entities())
}

func BenchmarkSpawnDespawnLayer(b *testing.B) {
	for _, cells := range []int{1_000, 10_000} {
		b.Run(strconv.Itoa(cells), func(b *testing.B) {
			for b.Loop() {
				w := NewWorld()
				root, _ := spawnGrid(b, w, cells)
				DespawnRecursive(w, root)
			}
		})
	}
}
