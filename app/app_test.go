package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/ecs"
)

type counter struct{ n int }

func TestAppRunsSystemsInOrder(t *testing.T) {
	var order []string
	a := New().AddSystems(
		ecs.SystemFunc(func(*ecs.World) { order = append(order, "first") }),
		ecs.SystemFunc(func(*ecs.World) { order = append(order, "second") }),
	)

	a.Update()
	a.Update()

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	assert.Equal(t, 2, a.Frames())
	assert.Len(t, a.Systems(), 2)
}

func TestAppPlugins(t *testing.T) {
	built := 0
	plugin := PluginFunc(func(a *App) {
		built++
		InsertResource(a, &counter{n: 7})
	})

	a := New().AddPlugins(plugin, nil)

	assert.Equal(t, 1, built)
	c, ok := ecs.Resource[*counter](a.World())
	require.True(t, ok)
	assert.Equal(t, 7, c.n)
}

func TestAppLoggerResource(t *testing.T) {
	logger := zap.NewExample()
	w := ecs.NewWorld()
	a := New(WithLogger(logger), WithWorld(w))

	assert.Same(t, w, a.World())
	assert.Same(t, logger, a.Logger())
	got, ok := ecs.Resource[*zap.Logger](w)
	require.True(t, ok)
	assert.Same(t, logger, got)

	assert.NotNil(t, New(WithLogger(nil)).Logger())
}
