package component

// Camera marks the entity whose transform the render system views from.
type Camera struct {
	Zoom      float64
	PanSpeed  float64
	ZoomSpeed float64
}

var CameraComponent = NewComponent[Camera]()
