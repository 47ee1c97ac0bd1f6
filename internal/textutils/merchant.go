// Package textutils provides merchant text normalization.
package textutils

import "strings"

// Removal lists, applied in this order.
var (
	symbolTokens = []string{"－", "０", "/", "＊", "＆"}

	localeTokens = []string{
		"台灣", "TW", "TAIPEI", "Taipei", "CITY", "City", "HSINCHU", "YUANLIN",
		"YUNLIN", "TAICHUNG", "KAOHSIUNG", "PINGTUNG", "Pingtung", "TAITUNG", "HUALIEN",
	}

	suffixTokens = []string{
		"股份有限", "時尚廣場", "財團法人", "便利商", "實業", "公司",
		"餐廳", "生活", "百貨", "超商", "藥妝", "門巿",
	}

	noiseTokens = []string{"Ｕｎｏｃｈ", "ＭＯＳ", "（Ｄ２", "＆ｂ", "不抵用五倍券", "網路／語", "電支"}
)

var removalLists = [][]string{symbolTokens, localeTokens, suffixTokens, noiseTokens}

// NormalizeMerchant strips symbols, locale names, corporate suffixes and
// known noise from a raw merchant string. Removal is repeated until nothing
// changes, so NormalizeMerchant(NormalizeMerchant(s)) == NormalizeMerchant(s).
func NormalizeMerchant(s string) string {
	for {
		next := removeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func removeOnce(s string) string {
	for _, list := range removalLists {
		for _, token := range list {
			s = strings.ReplaceAll(s, token, "")
		}
	}
	return strings.TrimSpace(s)
}

// ContainsAny reports whether s contains any of the keywords and returns the
// first one found, in keyword order.
func ContainsAny(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return kw, true
		}
	}
	return "", false
}
