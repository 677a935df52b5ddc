package component

// RenderLayer orders drawing; higher indices draw on top and ties fall back
// to entity order. Entities without one use their nearest ancestor's, so
// sprites spawned under an LDtk layer follow that layer's position.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
