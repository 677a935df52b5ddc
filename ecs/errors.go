package ecs

import "errors"

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidHandle  = errors.New("ecs: invalid component handle")
	ErrNilWorld       = errors.New("ecs: world is nil")
	ErrHierarchyCycle = errors.New("ecs: parent would create a cycle")
)
