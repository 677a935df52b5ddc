package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCleanPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"tiles.png", "tiles.png"},
		{"./tiles.png", "tiles.png"},
		{".", ""},
		{"assets/tiles.png", "assets/tiles.png"},
		{"assets//gfx/./tiles.png", "assets/gfx/tiles.png"},
		{"atlas/../tiles.png", "tiles.png"},
		{"/srv/game/tiles.png", "/srv/game/tiles.png"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, CleanPath(c.in))
		})
	}
}

func TestHandleForIsStable(t *testing.T) {
	a := HandleFor[Texture]("./gfx/tiles.png")
	b := HandleFor[Texture]("gfx/tiles.png")
	assert.True(t, a.Valid())
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HandleFor[Texture]("assets/gfx/tiles.png"))
	assert.NotEqual(t, a, HandleFor[Texture]("other.png"))
	assert.False(t, HandleFor[Texture]("").Valid())
}

func TestServerLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"tiles.png": {Data: pngBytes(t, 32, 16)},
		"bad.png":   {Data: []byte("not a png")},
	}
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewServer(fsys, zap.New(core))

	h := s.Load("tiles.png")
	require.True(t, s.Loaded(h))
	tex, ok := s.Get(h)
	require.True(t, ok)
	w, hgt := tex.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, hgt)

	assert.Equal(t, h, s.Load("./tiles.png"))

	bad := s.Load("bad.png")
	assert.True(t, bad.Valid())
	assert.False(t, s.Loaded(bad))
	assert.Error(t, s.Err(bad))

	missing := s.Load("missing.png")
	assert.False(t, s.Loaded(missing))
	s.Load("missing.png")

	assert.Equal(t, 2, logs.FilterMessage("asset: load image failed").Len())
}

func TestServerLoadKeepsDirectoryPrefix(t *testing.T) {
	fsys := fstest.MapFS{"assets/gfx/tiles.png": {Data: pngBytes(t, 16, 16)}}
	s := NewServer(fsys, nil)

	h := s.Load("assets/gfx/tiles.png")
	require.NoError(t, s.Err(h))
	assert.True(t, s.Loaded(h))
	assert.Equal(t, h, s.Load("./assets/gfx/../gfx/tiles.png"))
}

func TestServerPreload(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: pngBytes(t, 8, 8)},
		"b.png": {Data: pngBytes(t, 4, 4)},
	}
	s := NewServer(fsys, nil)
	require.NoError(t, s.Preload(context.Background(), "a.png", "b.png"))
	assert.True(t, s.Loaded(HandleFor[Texture]("a.png")))
	assert.True(t, s.Loaded(HandleFor[Texture]("b.png")))

	err := s.Preload(context.Background(), "a.png", "nope.png")
	require.Error(t, err)
	assert.False(t, s.Loaded(HandleFor[Texture]("nope.png")))
}

func TestStore(t *testing.T) {
	s := NewStore[Material]()
	h1 := s.Add(Material{Texture: HandleFor[Texture]("a.png")})
	h2 := s.Add(Material{})
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, s.Len())

	m, ok := s.Get(h1)
	require.True(t, ok)
	assert.Equal(t, HandleFor[Texture]("a.png"), m.Texture)

	assert.True(t, s.Set(h2, Material{Tint: color.White}))
	assert.False(t, s.Set(Handle[Material]{id: 99}, Material{}))
	assert.True(t, s.Remove(h1))
	_, ok = s.Get(h1)
	assert.False(t, ok)
}

func TestTextureAtlasRect(t *testing.T) {
	a := TextureAtlas{TileW: 16, TileH: 16, Columns: 4, Rows: 2, Spacing: 2, Padding: 1}
	assert.Equal(t, 8, a.Len())

	r, ok := a.Rect(5)
	require.True(t, ok)
	assert.Equal(t, image.Rect(19, 19, 35, 35), r)

	idx, ok := a.Index(19, 19)
	require.True(t, ok)
	assert.Equal(t, 5, idx)

	_, ok = a.Rect(8)
	assert.False(t, ok)
}
