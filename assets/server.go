package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Texture is a decoded image owned by a Server. The GPU-side image is
// created lazily on first use so decoding can happen off the game loop.
type Texture struct {
	Path   string
	Source image.Image
	image  *ebiten.Image
}

// Image returns the ebiten image for the texture.
func (t *Texture) Image() *ebiten.Image {
	if t == nil || t.Source == nil {
		return nil
	}
	if t.image == nil {
		t.image = ebiten.NewImageFromImage(t.Source)
	}
	return t.image
}

// Size returns the pixel size of the texture.
func (t *Texture) Size() (int, int) {
	if t == nil || t.Source == nil {
		return 0, 0
	}
	b := t.Source.Bounds()
	return b.Dx(), b.Dy()
}

// Server loads images from a file system and hands out path-derived
// handles. It is not safe for concurrent use except through Preload.
type Server struct {
	fsys     fs.FS
	logger   *zap.Logger
	textures map[Handle[Texture]]*Texture
	failed   map[Handle[Texture]]error
}

// NewServer creates a server reading from fsys. A nil logger disables
// diagnostics.
func NewServer(fsys fs.FS, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		fsys:     fsys,
		logger:   logger,
		textures: make(map[Handle[Texture]]*Texture),
		failed:   make(map[Handle[Texture]]error),
	}
}

// Load returns the handle for path, decoding the image on first request.
// A failed load is logged once and the handle stays unloaded.
func (s *Server) Load(path string) Handle[Texture] {
	h := HandleFor[Texture](path)
	if !h.Valid() {
		s.logger.Warn("asset: empty image path")
		return h
	}
	if _, ok := s.textures[h]; ok {
		return h
	}
	if _, ok := s.failed[h]; ok {
		return h
	}
	tex, err := s.decode(CleanPath(path))
	if err != nil {
		s.failed[h] = err
		s.logger.Warn("asset: load image failed", zap.String("path", path), zap.Error(err))
		return h
	}
	s.textures[h] = tex
	return h
}

// Get returns the texture behind h if it has been loaded.
func (s *Server) Get(h Handle[Texture]) (*Texture, bool) {
	if s == nil {
		return nil, false
	}
	tex, ok := s.textures[h]
	return tex, ok
}

// Loaded reports whether h refers to a decoded texture.
func (s *Server) Loaded(h Handle[Texture]) bool {
	_, ok := s.Get(h)
	return ok
}

// Err returns the load error recorded for h, if any.
func (s *Server) Err(h Handle[Texture]) error {
	return s.failed[h]
}

// Preload decodes paths in parallel and publishes them once all decodes
// finish. The first error aborts the preload; nothing is published then.
func (s *Server) Preload(ctx context.Context, paths ...string) error {
	decoded := make([]*Texture, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		clean := CleanPath(path)
		if _, ok := s.textures[HandleFor[Texture](clean)]; ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := s.decode(clean)
			if err != nil {
				return err
			}
			decoded[i] = tex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("asset: preload: %w", err)
	}
	for _, tex := range decoded {
		if tex == nil {
			continue
		}
		h := HandleFor[Texture](tex.Path)
		s.textures[h] = tex
		delete(s.failed, h)
	}
	return nil
}

func (s *Server) decode(clean string) (*Texture, error) {
	if s.fsys == nil {
		return nil, fmt.Errorf("read %s: no asset file system", clean)
	}
	b, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", clean, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", clean, err)
	}
	return &Texture{Path: clean, Source: img}, nil
}
