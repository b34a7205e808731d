package main

import (
	"basemap/basemap"
)

// newTileLayer 根据配置构建图层, 未配置的参数使用默认值
func newTileLayer(c *Conf) basemap.TileLayer {
	var opts []basemap.Option
	if c.Basemap.HasMaxZoom {
		opts = append(opts, basemap.WithMaxZoom(c.Basemap.MaxZoom))
	}
	if c.Basemap.Type != "" {
		opts = append(opts, basemap.WithType(c.Basemap.Type))
	}
	if c.Basemap.Format != "" {
		opts = append(opts, basemap.WithFormat(c.Basemap.Format))
	}
	if c.Basemap.Variant != "" {
		opts = append(opts, basemap.WithVariant(c.Basemap.Variant))
	}
	for k, v := range c.Basemap.Extra {
		opts = append(opts, basemap.WithExtra(k, v))
	}
	return basemap.MakeBasemapTileLayer(opts...)
}
