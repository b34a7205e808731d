package main

import (
	"context"
	"path/filepath"
	"testing"

	"basemap/basemap"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(t *testing.T, c *Conf, bp *BreakPoint) (*Task, *Store) {
	t.Helper()
	tl := newTileLayer(c)
	layers, err := buildLayers(c, tl.Options)
	require.NoError(t, err)

	store, err := OpenStore(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	task := NewTask("wien", layers, tl, store, bp)
	require.NotNil(t, task)
	task.Params = c.Params
	return task, store
}

func areaConf(path string, lo, hi int) *Conf {
	c := &Conf{}
	c.Lrs = []LayerRange{{Min: lo, Max: hi, Geojson: path}}
	return c
}

func TestBuildLayers(t *testing.T) {
	opts := basemap.MakeBasemapTileLayer(basemap.WithMaxZoom(2)).Options

	t.Run("provider bounds", func(t *testing.T) {
		c := &Conf{}
		c.Tm.MinZoom = 1
		layers, err := buildLayers(c, opts)
		require.NoError(t, err)
		require.Len(t, layers, 2)
		assert.Equal(t, 1, layers[0].Zoom)
		assert.Equal(t, 2, layers[1].Zoom)
	})

	t.Run("areas", func(t *testing.T) {
		c := areaConf("testdata/wien.geojson", 3, 5)
		layers, err := buildLayers(c, opts)
		require.NoError(t, err)
		require.Len(t, layers, 3)
		assert.Len(t, layers[0].Collection, 1)
	})

	t.Run("outside bounds", func(t *testing.T) {
		c := areaConf("testdata/berlin.geojson", 3, 5)
		layers, err := buildLayers(c, opts)
		require.NoError(t, err)
		assert.Empty(t, layers)
	})

	t.Run("missing file", func(t *testing.T) {
		c := areaConf("testdata/nope.geojson", 3, 5)
		_, err := buildLayers(c, opts)
		assert.Error(t, err)
	})
}

func TestTaskRun(t *testing.T) {
	c := areaConf("testdata/wien.geojson", 0, 1)
	c.Params = map[string]any{"token": "a b"}
	task, store := newTestTask(t, c, nil)

	require.NoError(t, task.Run(context.Background()))

	n, err := store.Count(-1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	url, err := store.URL(maptile.New(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "https://maps.wien.gv.at/basemap/bmaphidpi/normal/google3857/0/0/0.jpeg?token=a%20b", url)

	url, err = store.URL(maptile.New(1, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "https://maps1.wien.gv.at/basemap/bmaphidpi/normal/google3857/1/0/1.jpeg?token=a%20b", url)

	md, err := store.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "wien", md["name"])
	assert.Equal(t, "jpg", md["format"])
	assert.Equal(t, "0", md["minzoom"])
	assert.Equal(t, "1", md["maxzoom"])
	assert.Equal(t, basemap.Attribution, md["attribution"])
	assert.Equal(t, basemap.URLTemplate, md["template"])
	assert.Equal(t, "xyz", md["scheme"])
}

func TestTaskRunProviderBounds(t *testing.T) {
	c := &Conf{}
	c.Basemap.HasMaxZoom = true
	c.Basemap.MaxZoom = 1
	task, store := newTestTask(t, c, nil)

	require.NoError(t, task.Run(context.Background()))

	n, err := store.Count(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTaskRunSkipsAboveMaxZoom(t *testing.T) {
	c := areaConf("testdata/wien.geojson", 0, 2)
	c.Basemap.HasMaxZoom = true
	c.Basemap.MaxZoom = 1
	task, store := newTestTask(t, c, nil)

	require.NoError(t, task.Run(context.Background()))

	n, err := store.Count(2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestTaskRunBreakPoint(t *testing.T) {
	bp, err := newBreakPoint(t.TempDir(), "wien")
	require.NoError(t, err)
	defer bp.Close()
	require.NoError(t, bp.SetDone(0))

	c := areaConf("testdata/wien.geojson", 0, 1)
	task, store := newTestTask(t, c, bp)
	require.NoError(t, task.Run(context.Background()))

	n, err := store.Count(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	n, err = store.Count(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, bp.IsDone(1))
}

func TestTaskRunCanceled(t *testing.T) {
	c := areaConf("testdata/wien.geojson", 0, 1)
	task, store := newTestTask(t, c, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, task.Run(ctx), context.Canceled)

	n, err := store.Count(-1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
