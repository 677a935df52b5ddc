package ldtk

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/ldtkloader/app"
	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/levels"
)

const propsTileset = 7

type Health struct {
	Value int
}

var healthComponent = component.NewComponent[Health]()

type Label struct {
	Text string
}

var labelComponent = component.NewComponent[Label]()

// CrateBundle draws the editor visual and reads its hp field.
type CrateBundle struct {
	Sprite component.Sprite
	Health Health
}

func (b CrateBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.SpriteComponent, b.Sprite)
	ecs.Insert(c, healthComponent, b.Health)
}

func (CrateBundle) BundleEntity(ctx *EntityContext) CrateBundle {
	return BuildEntity(ctx,
		SpriteFromEditorVisual(func(c *CrateBundle, s component.Sprite) { c.Sprite = s }),
		FromField("hp", func(c *CrateBundle, hp int) { c.Health.Value = hp }),
	)
}

// LabelBundle touches no assets.
type LabelBundle struct {
	Label Label
}

func (b LabelBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, labelComponent, b.Label)
}

func (LabelBundle) BundleEntity(ctx *EntityContext) LabelBundle {
	return BuildEntity(ctx,
		FromInstance(func(b *LabelBundle, s string) { b.Label.Text = s },
			func(inst *levels.EntityInstance) string { return "label:" + inst.Identifier }),
	)
}

// MovedBundle tries to place itself; the spawner must win.
type MovedBundle struct{}

func (MovedBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.TransformComponent, component.NewTransform(999, 999))
	ecs.Insert(c, component.GlobalTransformComponent, component.GlobalTransform{X: 999, Y: 999})
}

func (MovedBundle) BundleEntity(*EntityContext) MovedBundle {
	return MovedBundle{}
}

type Solid struct {
	Kind int
}

var solidComponent = component.NewComponent[Solid]()

type WallBundle struct {
	Solid Solid
	Body  component.PhysicsBody
}

func (b WallBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, solidComponent, b.Solid)
	ecs.Insert(c, component.PhysicsBodyComponent, b.Body)
}

func (WallBundle) BundleIntCell(cell IntGridCell) WallBundle {
	return BuildIntCell(cell,
		FromIntGridCell(func(w *WallBundle, k int) { w.Solid.Kind = k }, func(c IntGridCell) int { return c.Value }),
		WithCell(func(w *WallBundle) {
			w.Body = component.PhysicsBody{Width: 16, Height: 16, Kind: component.BodyStatic, Anchor: component.AnchorTopLeft}
		}),
	)
}

type WaterBundle struct {
	Label Label
}

func (b WaterBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, labelComponent, b.Label)
}

func (WaterBundle) BundleIntCell(IntGridCell) WaterBundle {
	return WaterBundle{Label: Label{Text: "water"}}
}

func intPtr(v int) *int { return &v }

func crateInstance() levels.EntityInstance {
	return levels.EntityInstance{
		Identifier: "crate",
		Iid:        uuid.MustParse("0b7c8c50-2e2f-11ee-8000-000000000001"),
		Px:         [2]int{32, 16},
		Grid:       [2]int{2, 1},
		Pivot:      [2]float64{0.5, 1},
		Width:      16,
		Height:     16,
		Tile:       &levels.TilesetRect{TilesetUID: propsTileset, X: 16, Y: 0, W: 16, H: 16},
		FieldInstances: []levels.FieldInstance{
			{Identifier: "hp", Type: "Int", Value: json.RawMessage(`3`)},
		},
	}
}

func testProject() *levels.Project {
	unknown := crateInstance()
	unknown.Identifier = "unknown_thing"
	unknown.Iid = uuid.MustParse("0b7c8c50-2e2f-11ee-8000-000000000002")
	unknown.Px = [2]int{0, 0}
	unknown.Tile = nil

	return &levels.Project{
		Defs: levels.Definitions{Tilesets: []levels.TilesetDefinition{
			{UID: propsTileset, Identifier: "Props", RelPath: "../gfx/props.png", PxWid: 32, PxHei: 32, TileGridSize: 16},
		}},
		Levels: []levels.Level{
			{
				Identifier: "Level_0",
				Iid:        uuid.MustParse("0b7c8c50-2e2f-11ee-8000-0000000000a0"),
				WorldX:     100,
				WorldY:     50,
				PxWid:      64,
				PxHei:      16,
				LayerInstances: []levels.LayerInstance{
					{
						Identifier:      "Entities",
						Type:            levels.LayerEntities,
						GridSize:        16,
						CWid:            4,
						CHei:            1,
						Opacity:         1,
						EntityInstances: []levels.EntityInstance{crateInstance(), unknown},
					},
					{
						Identifier:     "Walls",
						Type:           levels.LayerIntGrid,
						GridSize:       16,
						CWid:           4,
						CHei:           1,
						Opacity:        1,
						PxTotalOffsetX: 4,
						PxTotalOffsetY: 8,
						TilesetDefUID:  intPtr(propsTileset),
						IntGridCsv:     []int{1, 2, 2, 5},
						AutoLayerTiles: []levels.TileInstance{
							{Px: [2]int{0, 0}, Src: [2]int{0, 16}},
							{Px: [2]int{16, 0}, Src: [2]int{16, 16}, F: 1},
						},
					},
				},
			},
			{
				Identifier: "Level_1",
				Iid:        uuid.MustParse("0b7c8c50-2e2f-11ee-8000-0000000000a1"),
				PxWid:      16,
				PxHei:      16,
				LayerInstances: []levels.LayerInstance{
					{
						Identifier:      "Entities",
						Type:            levels.LayerEntities,
						GridSize:        16,
						CWid:            1,
						CHei:            1,
						EntityInstances: []levels.EntityInstance{crateInstance()},
					},
				},
			},
		},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// testAssets lays the project out as maps/world.ldtk with its tileset at
// gfx/props.png.
func testAssets(t *testing.T) fstest.MapFS {
	t.Helper()
	data, err := json.Marshal(testProject())
	require.NoError(t, err)
	return fstest.MapFS{
		"maps/world.ldtk": {Data: data},
		"gfx/props.png":   {Data: pngBytes(t, 32, 32)},
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

func newTestApp(logger *zap.Logger) *app.App {
	return app.New(app.WithLogger(logger))
}

// withComponent returns the entities carrying handle's component.
func withComponent[T any](w *ecs.World, handle component.ComponentHandle[T]) []ecs.Entity {
	return w.Query(handle.ID())
}

func componentIDs(ids ...component.ComponentID) []component.ComponentID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}

func newContext(inst *levels.EntityInstance, logger *zap.Logger) *EntityContext {
	return &EntityContext{
		Instance:  inst,
		Tilesets:  TilesetMap{propsTileset: assets.HandleFor[assets.Texture]("gfx/props.png")},
		Materials: assets.NewStore[assets.Material](),
		Atlases:   assets.NewStore[assets.TextureAtlas](),
		Logger:    logger,
	}
}
