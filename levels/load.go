package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/google/uuid"
)

var (
	ErrLevelNotFound = errors.New("levels: level not found")
	ErrNullField     = errors.New("levels: field is null")
	ErrNoFS          = errors.New("levels: no file system")
)

// ParseProject decodes an LDtk project file.
func ParseProject(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("levels: unmarshal project: %w", err)
	}
	return &p, nil
}

// LoadProject reads an LDtk project from fsys. External level files are
// resolved relative to the project file and merged in.
func LoadProject(fsys fs.FS, name string) (*Project, error) {
	if fsys == nil {
		return nil, ErrNoFS
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read project: %w", err)
	}
	p, err := ParseProject(data)
	if err != nil {
		return nil, err
	}
	if !p.ExternalLevels {
		return p, nil
	}
	dir := path.Dir(name)
	for i := range p.Levels {
		lvl := &p.Levels[i]
		if lvl.ExternalRelPath == nil || *lvl.ExternalRelPath == "" {
			continue
		}
		ext, err := loadLevelFile(fsys, path.Join(dir, *lvl.ExternalRelPath))
		if err != nil {
			return nil, err
		}
		lvl.LayerInstances = ext.LayerInstances
		lvl.FieldInstances = ext.FieldInstances
	}
	return p, nil
}

func loadLevelFile(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read level %s: %w", name, err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level %s: %w", name, err)
	}
	return &lvl, nil
}

// Level returns the level named identifier.
func (p *Project) Level(identifier string) (*Level, error) {
	for i := range p.Levels {
		if p.Levels[i].Identifier == identifier {
			return &p.Levels[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLevelNotFound, identifier)
}

// LevelAt returns the level at index in project order.
func (p *Project) LevelAt(index int) (*Level, error) {
	if index < 0 || index >= len(p.Levels) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrLevelNotFound, index, len(p.Levels))
	}
	return &p.Levels[index], nil
}

// LevelByIid returns the level whose iid matches.
func (p *Project) LevelByIid(iid uuid.UUID) (*Level, error) {
	for i := range p.Levels {
		if p.Levels[i].Iid == iid {
			return &p.Levels[i], nil
		}
	}
	return nil, fmt.Errorf("%w: iid %s", ErrLevelNotFound, iid)
}

// Tileset returns the tileset definition with uid.
func (p *Project) Tileset(uid int) (*TilesetDefinition, bool) {
	for i := range p.Defs.Tilesets {
		if p.Defs.Tilesets[i].UID == uid {
			return &p.Defs.Tilesets[i], true
		}
	}
	return nil, false
}
