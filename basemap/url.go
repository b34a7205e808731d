package basemap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"
)

var placeholder = regexp.MustCompile(`\{([^{}]+)\}`)

// Subdomain 按瓦片坐标轮询选取子域名
func (o LayerOptions) Subdomain(t maptile.Tile) string {
	n := len(o.Subdomains)
	if n == 0 {
		return ""
	}
	i := (int64(t.X) + int64(t.Y)) % int64(n)
	return o.Subdomains[i]
}

// ExpandURL 用瓦片坐标与图层选项替换模板占位符
// 无法识别的占位符保持原样
func ExpandURL(template string, o LayerOptions, t maptile.Tile) string {
	return placeholder.ReplaceAllStringFunc(template, func(token string) string {
		switch name := token[1 : len(token)-1]; name {
		case "s":
			return o.Subdomain(t)
		case "x":
			return strconv.FormatUint(uint64(t.X), 10)
		case "y":
			return strconv.FormatUint(uint64(t.Y), 10)
		case "z":
			return strconv.FormatUint(uint64(t.Z), 10)
		case "type":
			return o.Type
		case "format":
			return o.Format
		case "variant":
			return o.Variant
		default:
			if v, ok := o.Extra[name]; ok {
				return ValueString(v)
			}
			return token
		}
	})
}

// AppendQuery 在地址后追加查询参数
func AppendQuery(rawURL string, params map[string]any) string {
	qs := QueryString(params)
	if qs == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + qs
	}
	return rawURL + "?" + qs
}
