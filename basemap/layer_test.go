package basemap

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBasemapTileLayerDefaults(t *testing.T) {
	layer := MakeBasemapTileLayer()

	assert.Equal(t, URLTemplate, layer.URL)
	assert.Equal(t, 19, layer.Options.MaxZoom)
	assert.Equal(t, "normal", layer.Options.Type)
	assert.Equal(t, "jpeg", layer.Options.Format)
	assert.Equal(t, "bmaphidpi", layer.Options.Variant)
	assert.Equal(t, `Datenquelle: <a href="https://www.basemap.at">basemap.at</a>`, layer.Options.Attribution)
	assert.Equal(t, []string{"", "1", "2", "3", "4"}, layer.Options.Subdomains)
	assert.Equal(t, [2][2]float64{{46.35877, 8.782379}, {49.037872, 17.189532}}, layer.Options.Bounds)
	assert.Nil(t, layer.Options.Extra)
}

func TestMakeBasemapTileLayerMaxZoom(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"above limit", 25, 19},
		{"at limit", 19, 19},
		{"below limit", 5, 5},
		{"zero", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layer := MakeBasemapTileLayer(WithMaxZoom(tc.in))
			assert.Equal(t, tc.want, layer.Options.MaxZoom)
		})
	}
}

func TestMakeBasemapTileLayerPassThrough(t *testing.T) {
	layer := MakeBasemapTileLayer(
		WithType("grau"),
		WithFormat("png"),
		WithVariant("geolandbasemap"),
	)

	assert.Equal(t, "grau", layer.Options.Type)
	assert.Equal(t, "png", layer.Options.Format)
	assert.Equal(t, "geolandbasemap", layer.Options.Variant)
	assert.Equal(t, URLTemplate, layer.URL)
	assert.Contains(t, layer.URL, "{type}")
	assert.Contains(t, layer.URL, "{format}")
	assert.Contains(t, layer.URL, "{variant}")
}

func TestMakeBasemapTileLayerFreshResult(t *testing.T) {
	a := MakeBasemapTileLayer(WithExtra("opacity", 0.5))
	a.Options.Subdomains[0] = "x"
	a.Options.Extra["opacity"] = 1

	b := MakeBasemapTileLayer(WithExtra("opacity", 0.5))
	assert.Equal(t, "", b.Options.Subdomains[0])
	assert.Equal(t, 0.5, b.Options.Extra["opacity"])
}

func TestLayerOptionsBound(t *testing.T) {
	bound := MakeBasemapTileLayer().Options.Bound()

	assert.Equal(t, orb.Point{8.782379, 46.35877}, bound.Min)
	assert.Equal(t, orb.Point{17.189532, 49.037872}, bound.Max)
	// Wien
	assert.True(t, bound.Contains(orb.Point{16.3738, 48.2082}))
	// Berlin
	assert.False(t, bound.Contains(orb.Point{13.405, 52.52}))
}

func TestLayerOptionsMarshalJSON(t *testing.T) {
	layer := MakeBasemapTileLayer(
		WithMaxZoom(12),
		WithExtra("opacity", 0.7),
		WithExtra("type", "ignored"),
	)

	data, err := json.Marshal(layer.Options)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, float64(12), got["maxZoom"])
	assert.Equal(t, "normal", got["type"])
	assert.Equal(t, "jpeg", got["format"])
	assert.Equal(t, "bmaphidpi", got["variant"])
	assert.Equal(t, 0.7, got["opacity"])
	assert.Equal(t, Attribution, got["attribution"])
	assert.Len(t, got["subdomains"], 5)
	assert.Equal(t, []any{
		[]any{46.35877, 8.782379},
		[]any{49.037872, 17.189532},
	}, got["bounds"])
}
