// Package basemap 提供 basemap.at 瓦片图层配置与查询字符串编码
package basemap

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// URLTemplate 瓦片地址模板, 占位符由瓦片加载方替换
const URLTemplate = "https://maps{s}.wien.gv.at/basemap/{variant}/{type}/google3857/{z}/{y}/{x}.{format}"

// Attribution 数据来源声明, 含 HTML 标记
const Attribution = `Datenquelle: <a href="https://www.basemap.at">basemap.at</a>`

// MaxZoomLimit 服务商支持的最大级别
const MaxZoomLimit = 19

// 默认图层参数
const (
	DefaultType    = "normal"
	DefaultFormat  = "jpeg"
	DefaultVariant = "bmaphidpi"
)

// Subdomains 服务子域名
func Subdomains() []string {
	return []string{"", "1", "2", "3", "4"}
}

// Bounds 覆盖范围, [纬度, 经度] 对
func Bounds() [2][2]float64 {
	return [2][2]float64{
		{46.35877, 8.782379},
		{49.037872, 17.189532},
	}
}

// LayerOptions 图层选项, 每次构建时新建, 归调用方所有
type LayerOptions struct {
	MaxZoom     int
	Attribution string
	Subdomains  []string
	Type        string
	Format      string
	Bounds      [2][2]float64
	Variant     string
	// Extra 调用方传入的附加字段, 不做校验
	Extra map[string]any
}

// Bound 以 orb 经纬度顺序返回覆盖范围
func (o LayerOptions) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{o.Bounds[0][1], o.Bounds[0][0]},
		Max: orb.Point{o.Bounds[1][1], o.Bounds[1][0]},
	}
}

// MarshalJSON 输出扁平对象, 固定字段优先于同名附加字段
func (o LayerOptions) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(o.Extra)+7)
	for k, v := range o.Extra {
		m[k] = v
	}
	m["maxZoom"] = o.MaxZoom
	m["attribution"] = o.Attribution
	m["subdomains"] = o.Subdomains
	m["type"] = o.Type
	m["format"] = o.Format
	m["bounds"] = o.Bounds
	m["variant"] = o.Variant
	return json.Marshal(m)
}

// TileLayer 模板地址与图层选项
type TileLayer struct {
	URL     string
	Options LayerOptions
}

type layerConfig struct {
	maxZoom int
	typ     string
	format  string
	variant string
	extra   map[string]any
}

// Option 图层参数
type Option func(*layerConfig)

// WithMaxZoom 请求的最大级别, 超过 MaxZoomLimit 时取 MaxZoomLimit
func WithMaxZoom(z int) Option {
	return func(c *layerConfig) { c.maxZoom = z }
}

// WithType 地图样式, 如 normal、grau
func WithType(typ string) Option {
	return func(c *layerConfig) { c.typ = typ }
}

// WithFormat 图片格式, 如 jpeg、png
func WithFormat(format string) Option {
	return func(c *layerConfig) { c.format = format }
}

// WithVariant 服务变体, 如 bmaphidpi
func WithVariant(variant string) Option {
	return func(c *layerConfig) { c.variant = variant }
}

// WithExtra 附加字段, 原样写入 LayerOptions.Extra
func WithExtra(key string, value any) Option {
	return func(c *layerConfig) {
		if c.extra == nil {
			c.extra = make(map[string]any)
		}
		c.extra[key] = value
	}
}

// MakeBasemapTileLayer 构建 basemap.at 图层配置
// 返回的 URL 始终为未替换的 URLTemplate
func MakeBasemapTileLayer(opts ...Option) TileLayer {
	c := layerConfig{
		maxZoom: MaxZoomLimit,
		typ:     DefaultType,
		format:  DefaultFormat,
		variant: DefaultVariant,
	}
	for _, opt := range opts {
		opt(&c)
	}

	options := LayerOptions{
		MaxZoom:     min(MaxZoomLimit, c.maxZoom),
		Attribution: Attribution,
		Subdomains:  Subdomains(),
		Type:        c.typ,
		Format:      c.format,
		Bounds:      Bounds(),
		Variant:     c.variant,
	}
	if len(c.extra) > 0 {
		options.Extra = make(map[string]any, len(c.extra))
		for k, v := range c.extra {
			options.Extra[k] = v
		}
	}

	return TileLayer{URL: URLTemplate, Options: options}
}
