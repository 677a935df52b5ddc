package ldtk

import (
	"errors"
	"image"
	"image/color"
	"path"

	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/levels"
)

var ErrNilLevel = errors.New("ldtk: nil level")

// SpawnOptions supplies the assets a level spawn reads and writes. Nil
// stores and loggers are taken from the world's resources, or created.
type SpawnOptions struct {
	Tilesets  TilesetMap
	Server    *assets.Server
	Materials *assets.Store[assets.Material]
	Atlases   *assets.Store[assets.TextureAtlas]
	Logger    *zap.Logger
	// BaseDir is the project file's directory, used to build Tilesets when
	// none are given.
	BaseDir string
	// SkipTiles spawns no sprite entities for Tiles and AutoLayer tiles.
	SkipTiles bool
}

func (o *SpawnOptions) fill(w *ecs.World, project *levels.Project) {
	if o.Server == nil {
		o.Server, _ = ecs.Resource[*assets.Server](w)
	}
	if o.Tilesets == nil {
		o.Tilesets = BuildTilesetMap(o.Server, project, o.BaseDir)
	}
	if o.Materials == nil {
		o.Materials = ecs.ResourceOrInsert(w, assets.NewStore[assets.Material])
	}
	if o.Atlases == nil {
		o.Atlases = ecs.ResourceOrInsert(w, assets.NewStore[assets.TextureAtlas])
	}
	if o.Logger == nil {
		if l, ok := ecs.Resource[*zap.Logger](w); ok && l != nil {
			o.Logger = l
		} else {
			o.Logger = zap.NewNop()
		}
	}
}

// TilesetPaths lists the image path of every tileset in project, resolved
// against baseDir.
func TilesetPaths(project *levels.Project, baseDir string) []string {
	if project == nil {
		return nil
	}
	var paths []string
	for _, ts := range project.Defs.Tilesets {
		if ts.RelPath != "" {
			paths = append(paths, path.Join(baseDir, ts.RelPath))
		}
	}
	return paths
}

// BuildTilesetMap loads every tileset image of project through server.
// Relative paths are resolved against baseDir, the project file's directory.
func BuildTilesetMap(server *assets.Server, project *levels.Project, baseDir string) TilesetMap {
	m := make(TilesetMap)
	if project == nil {
		return m
	}
	for _, ts := range project.Defs.Tilesets {
		if ts.RelPath == "" {
			continue
		}
		p := path.Join(baseDir, ts.RelPath)
		if server != nil {
			m[ts.UID] = server.Load(p)
		} else {
			m[ts.UID] = assets.HandleFor[assets.Texture](p)
		}
	}
	return m
}

// SpawnLevel spawns level under a new LevelRoot entity and returns it.
//
// Each layer becomes a child of the root. Entity instances go through the
// EntityRegistry in w, IntGrid cells through the IntCellRegistry; anything
// without a registered factory gets EntityInstanceComponent or
// IntGridCellComponent instead. Either way the spawner then sets Transform,
// GlobalTransform and Parent, overwriting whatever the factory set.
func SpawnLevel(w *ecs.World, project *levels.Project, level *levels.Level, opts SpawnOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, ecs.ErrNilWorld
	}
	if level == nil {
		return 0, ErrNilLevel
	}
	opts.fill(w, project)

	s := &spawner{
		world:    w,
		opts:     opts,
		entities: EntityRegistryOf(w),
		cells:    IntCellRegistryOf(w),
		log:      opts.Logger.With(zap.String("level", level.Identifier)),
	}
	return s.spawnLevel(level)
}

type spawner struct {
	world    *ecs.World
	opts     SpawnOptions
	entities *EntityRegistry
	cells    *IntCellRegistry
	log      *zap.Logger
}

func (s *spawner) spawnLevel(level *levels.Level) (ecs.Entity, error) {
	local := component.NewTransform(float64(level.WorldX), float64(level.WorldY))
	global := component.FromTransform(local)
	root := s.world.Spawn()
	ecs.Insert(root, LevelRootComponent, LevelRoot{
		Identifier: level.Identifier,
		Iid:        level.Iid,
		UID:        level.UID,
		Width:      level.PxWid,
		Height:     level.PxHei,
	})
	ecs.Insert(root, component.NameComponent, component.Name{Value: level.Identifier})
	ecs.Insert(root, component.TransformComponent, local)
	ecs.Insert(root, component.GlobalTransformComponent, global)
	if err := root.Err(); err != nil {
		return 0, err
	}

	// LDtk lists layers top-most first.
	n := len(level.LayerInstances)
	for i := range level.LayerInstances {
		s.spawnLayer(root.ID(), global, &level.LayerInstances[i], n-i)
	}
	return root.ID(), nil
}

func (s *spawner) spawnLayer(root ecs.Entity, rootGlobal component.GlobalTransform, layer *levels.LayerInstance, order int) {
	local := component.NewTransform(float64(layer.PxTotalOffsetX), float64(layer.PxTotalOffsetY))
	global := rootGlobal.Mul(local)

	c := s.world.Spawn()
	ecs.Insert(c, LayerMetadataComponent, LayerMetadata{
		Identifier: layer.Identifier,
		Type:       layer.Type,
		Iid:        layer.Iid,
		GridSize:   layer.GridSize,
		CWid:       layer.CWid,
		CHei:       layer.CHei,
		Opacity:    layer.Opacity,
		Visible:    layer.IsVisible(),
		Order:      order,
	})
	ecs.Insert(c, component.NameComponent, component.Name{Value: layer.Identifier})
	ecs.Insert(c, component.RenderLayerComponent, component.RenderLayer{Index: order})
	s.place(c.ID(), root, local, global)
	if err := c.Err(); err != nil {
		s.log.Warn("ldtk: spawn layer", zap.String("layer", layer.Identifier), zap.Error(err))
		return
	}

	log := s.log.With(zap.String("layer", layer.Identifier))
	switch layer.Type {
	case levels.LayerEntities:
		s.spawnEntities(c.ID(), global, layer, log)
	case levels.LayerIntGrid:
		s.spawnIntGrid(c.ID(), global, layer, log)
	}
	if !s.opts.SkipTiles {
		s.spawnTiles(c.ID(), global, layer, order, log)
	}
}

func (s *spawner) spawnEntities(layerEnt ecs.Entity, layerGlobal component.GlobalTransform, layer *levels.LayerInstance, log *zap.Logger) {
	for i := range layer.EntityInstances {
		inst := &layer.EntityInstances[i]
		c := s.world.Spawn()
		if f, ok := s.entities.Get(inst.Identifier); ok {
			f.Apply(c, &EntityContext{
				Instance:  inst,
				Tilesets:  s.opts.Tilesets,
				Server:    s.opts.Server,
				Materials: s.opts.Materials,
				Atlases:   s.opts.Atlases,
				Logger:    log,
			})
		} else {
			ecs.Insert(c, EntityInstanceComponent, *inst)
		}
		if err := c.Err(); err != nil {
			// keep the raw record next to the partial bundle
			log.Warn("ldtk: attach entity bundle", zap.String("identifier", inst.Identifier), zap.Stringer("iid", inst.Iid), zap.Error(err))
			ecs.Insert(s.world.Entity(c.ID()), EntityInstanceComponent, *inst)
		}
		local := component.NewTransform(float64(inst.Px[0]), float64(inst.Px[1]))
		s.place(c.ID(), layerEnt, local, layerGlobal.Mul(local))
	}
}

func (s *spawner) spawnIntGrid(layerEnt ecs.Entity, layerGlobal component.GlobalTransform, layer *levels.LayerInstance, log *zap.Logger) {
	if layer.CWid <= 0 {
		return
	}
	for i, value := range layer.IntGridCsv {
		if value == 0 {
			continue
		}
		x, y := i%layer.CWid, i/layer.CWid
		cell := IntGridCell{Value: value}

		c := s.world.Spawn()
		ecs.Insert(c, GridCoordsComponent, GridCoords{X: x, Y: y})
		if f, ok := s.cells.Get(value); ok {
			f.Apply(c, cell)
		} else {
			ecs.Insert(c, IntGridCellComponent, cell)
		}
		if err := c.Err(); err != nil {
			log.Warn("ldtk: attach int cell bundle", zap.Int("value", value), zap.Int("x", x), zap.Int("y", y), zap.Error(err))
			ecs.Insert(s.world.Entity(c.ID()), IntGridCellComponent, cell)
		}
		local := component.NewTransform(float64(x*layer.GridSize), float64(y*layer.GridSize))
		s.place(c.ID(), layerEnt, local, layerGlobal.Mul(local))
	}
}

func (s *spawner) spawnTiles(layerEnt ecs.Entity, layerGlobal component.GlobalTransform, layer *levels.LayerInstance, order int, log *zap.Logger) {
	tiles := layer.Tiles()
	if len(tiles) == 0 {
		return
	}
	if layer.TilesetDefUID == nil {
		log.Warn("ldtk: tile layer has no tileset")
		return
	}
	tex, ok := s.opts.Tilesets[*layer.TilesetDefUID]
	if !ok {
		log.Warn("ldtk: tile layer references unknown tileset", zap.Int("tileset_uid", *layer.TilesetDefUID))
		return
	}
	mat := assets.Material{Texture: tex}
	if layer.Opacity > 0 && layer.Opacity < 1 {
		mat.Tint = color.NRGBA{R: 255, G: 255, B: 255, A: uint8(layer.Opacity * 255)}
	}
	matHandle := s.opts.Materials.Add(mat)

	for _, t := range tiles {
		c := s.world.Spawn()
		ecs.Insert(c, component.SpriteComponent, component.Sprite{
			Material:  matHandle,
			Source:    image.Rect(t.Src[0], t.Src[1], t.Src[0]+layer.GridSize, t.Src[1]+layer.GridSize),
			UseSource: true,
			FlipX:     t.FlipX(),
			FlipY:     t.FlipY(),
		})
		ecs.Insert(c, component.RenderLayerComponent, component.RenderLayer{Index: order})
		local := component.NewTransform(float64(t.Px[0]), float64(t.Px[1]))
		s.place(c.ID(), layerEnt, local, layerGlobal.Mul(local))
	}
}

// place sets the spatial and hierarchy components of e. It uses its own
// commands so a failed bundle insertion cannot skip them.
func (s *spawner) place(e, parent ecs.Entity, local component.Transform, global component.GlobalTransform) {
	c := s.world.Entity(e)
	ecs.Insert(c, component.TransformComponent, local)
	ecs.Insert(c, component.GlobalTransformComponent, global)
	c.SetParent(parent)
	if err := c.Err(); err != nil {
		s.log.Warn("ldtk: place entity", zap.Stringer("entity", e), zap.Error(err))
	}
}
