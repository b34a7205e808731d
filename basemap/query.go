package basemap

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// 组件编码后需要还原的字符, 与 encodeURIComponent 保持一致
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent 按 URI 组件规则转义字符串
// 字母、数字以及 -_.~!*'() 保持原样, 空格编码为 %20
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// ValueString 将参数值转为字符串
// 浮点数不使用指数形式, nil 为 "null", 切片元素以逗号连接
func ValueString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = ValueString(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// QueryString 将参数编码为 key=value&key=value 形式
// 键按字典序输出, 值由 ValueString 转换
func QueryString(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EscapeComponent(k))
		b.WriteByte('=')
		b.WriteString(EscapeComponent(ValueString(params[k])))
	}
	return b.String()
}
