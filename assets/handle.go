package assets

import (
	"path"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Handle is a typed reference to an asset owned by a Server or Store.
// The zero Handle refers to nothing.
type Handle[T any] struct {
	id uint64
}

// HandleFor derives the handle of a path-addressed asset. The same path
// always yields the same handle, before or after the asset is loaded.
func HandleFor[T any](path string) Handle[T] {
	clean := CleanPath(path)
	if clean == "" {
		return Handle[T]{}
	}
	return Handle[T]{id: xxhash.Sum64String(clean)}
}

func (h Handle[T]) ID() uint64 {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}

func (h Handle[T]) String() string {
	return strconv.FormatUint(h.id, 16)
}

// CleanPath normalizes an asset path to the slash-separated form fs.FS
// expects. The path is kept relative to the server's file system root as
// given; no directory prefix is stripped.
func CleanPath(p string) string {
	if p == "" {
		return ""
	}
	s := path.Clean(filepath.ToSlash(p))
	if s == "." {
		return ""
	}
	return s
}
