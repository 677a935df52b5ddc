package ldtk

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/google/uuid"

	"github.com/milk9111/ldtkloader/levels"
)

type selectionKind int

const (
	selectByIndex selectionKind = iota
	selectByIdentifier
	selectByIid
)

type selectionKey struct {
	kind       selectionKind
	index      int
	identifier string
	iid        uuid.UUID
}

// LevelSelection is the resource naming the level LevelSystem keeps spawned.
// The zero value selects the first level.
type LevelSelection struct {
	key     selectionKey
	reloads int
}

func (s *LevelSelection) SelectIndex(index int) {
	s.key = selectionKey{kind: selectByIndex, index: index}
}

func (s *LevelSelection) SelectIdentifier(identifier string) {
	s.key = selectionKey{kind: selectByIdentifier, identifier: identifier}
}

func (s *LevelSelection) SelectIid(iid uuid.UUID) {
	s.key = selectionKey{kind: selectByIid, iid: iid}
}

// Reload respawns the selected level even if the selection is unchanged.
func (s *LevelSelection) Reload() {
	s.reloads++
}

func (s *LevelSelection) String() string {
	switch s.key.kind {
	case selectByIdentifier:
		return s.key.identifier
	case selectByIid:
		return s.key.iid.String()
	default:
		return fmt.Sprintf("#%d", s.key.index)
	}
}

// Resolve finds the selected level in project.
func (s *LevelSelection) Resolve(project *levels.Project) (*levels.Level, error) {
	if project == nil {
		return nil, levels.ErrLevelNotFound
	}
	switch s.key.kind {
	case selectByIdentifier:
		return project.Level(s.key.identifier)
	case selectByIid:
		return project.LevelByIid(s.key.iid)
	default:
		return project.LevelAt(s.key.index)
	}
}

// ProjectHandle is the resource holding the loaded project and where it
// came from.
type ProjectHandle struct {
	Project *levels.Project
	FS      fs.FS
	Path    string
	version int
}

// LoadProjectHandle loads the project at name from fsys.
func LoadProjectHandle(fsys fs.FS, name string) (*ProjectHandle, error) {
	p, err := levels.LoadProject(fsys, name)
	if err != nil {
		return nil, err
	}
	return &ProjectHandle{Project: p, FS: fsys, Path: name}, nil
}

// Dir is the directory tileset paths are relative to.
func (h *ProjectHandle) Dir() string {
	return path.Dir(h.Path)
}

// Reload re-reads the project. On error the previous project is kept.
func (h *ProjectHandle) Reload() error {
	p, err := levels.LoadProject(h.FS, h.Path)
	if err != nil {
		return err
	}
	h.Project = p
	h.version++
	return nil
}
