package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 站点语言常量
const (
	LocaleVI = "vi-VN"
	LocaleEN = "en-US"
)

// DefaultLocale 默认站点语言
const DefaultLocale = LocaleVI

const localeQueryKey = "locale"

// ResolveLocale 解析请求语言（query 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := NormalizeLocale(c.Query(localeQueryKey)); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := NormalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 将语言标签归一到受支持的语言，未识别返回空串
func NormalizeLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case tag == "":
		return ""
	case strings.HasPrefix(tag, "vi"):
		return LocaleVI
	case strings.HasPrefix(tag, "en"):
		return LocaleEN
	}
	return ""
}

// T 按语言取文案，缺失时回退默认语言再回退 key 本身
func T(locale string, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言取带参数的文案
func Sprintf(locale string, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
