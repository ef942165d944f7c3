// Package fonts selects the font family used for a deck from its language
// tag. Font files themselves are registered by the embedding application.
package fonts

import (
	"strings"

	"golang.org/x/text/language"
)

// Family names a typeface for both backends.
type Family struct {
	// Name is the family registered with the PDF backend when the caller
	// supplies font bytes for it.
	Name string `json:"name"`
	// CSS is the font-family stack emitted by the preview backend.
	CSS string `json:"css"`
	// Core is the PDF core font used when Name has not been registered.
	Core string `json:"core"`
}

var (
	latin = Family{Name: "Inter", CSS: `"Inter", "Helvetica Neue", Arial, sans-serif`, Core: "Helvetica"}

	families = []struct {
		tag    language.Tag
		family Family
	}{
		{tag: language.English, family: latin},
		{tag: language.Japanese, family: Family{Name: "NotoSansJP", CSS: `"Noto Sans JP", "Hiragino Sans", sans-serif`, Core: "Helvetica"}},
		{tag: language.SimplifiedChinese, family: Family{Name: "NotoSansSC", CSS: `"Noto Sans SC", "PingFang SC", sans-serif`, Core: "Helvetica"}},
		{tag: language.TraditionalChinese, family: Family{Name: "NotoSansTC", CSS: `"Noto Sans TC", "PingFang TC", sans-serif`, Core: "Helvetica"}},
		{tag: language.Korean, family: Family{Name: "NotoSansKR", CSS: `"Noto Sans KR", "Apple SD Gothic Neo", sans-serif`, Core: "Helvetica"}},
		{tag: language.Arabic, family: Family{Name: "NotoSansArabic", CSS: `"Noto Sans Arabic", Tahoma, sans-serif`, Core: "Helvetica"}},
		{tag: language.Thai, family: Family{Name: "NotoSansThai", CSS: `"Noto Sans Thai", Tahoma, sans-serif`, Core: "Helvetica"}},
		{tag: language.Hebrew, family: Family{Name: "NotoSansHebrew", CSS: `"Noto Sans Hebrew", Arial, sans-serif`, Core: "Helvetica"}},
	}

	matcher = newMatcher()
)

func newMatcher() language.Matcher {
	tags := make([]language.Tag, len(families))
	for i, f := range families {
		tags[i] = f.tag
	}
	return language.NewMatcher(tags)
}

// Default is the Latin family used for unknown or empty tags.
func Default() Family {
	return latin
}

// ForLanguage returns the family for a BCP 47 tag such as "ja-JP" or "zh-Hant".
func ForLanguage(tag string) Family {
	raw := strings.TrimSpace(tag)
	if raw == "" {
		return latin
	}
	parsed, err := language.Parse(raw)
	if err != nil {
		return latin
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return latin
	}
	return families[index].family
}
