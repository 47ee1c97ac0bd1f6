package categorizer

import "bujichang/spending/internal/models"

// topUpKeywords mark items that load money onto a stored-value card.
var topUpKeywords = []string{"儲值"}

// DefaultMerchantRules returns the built-in merchant table. Order matters:
// the first rule with a keyword hit wins.
func DefaultMerchantRules() []models.MerchantRule {
	return []models.MerchantRule{
		{Tag: models.TagBill, Keywords: []string{"瓦斯", "中華電信", "台哥大"}},
		{Tag: models.TagFamily, Keywords: []string{"必勝客"}},
		{Tag: models.TagFurnish, Keywords: []string{"宜家家居", "宜得利"}},
		{Tag: models.TagConsumable, Keywords: []string{"日藥本舖", "康是美", "金興發", "大創", "寶雅"}},
		{Tag: models.TagMarket, Keywords: []string{"健康食彩", "大潤發", "家樂福", "全聯", "黑沃"}},
		{Tag: models.TagEatOut, Keywords: []string{
			"ＦｏｏｄＰａｎｄａ", "ｆｏｏｄｐａｎｄａ", "誠品信義店", "川川川川", "春秋大滷",
			"好想見麵", "麥味登", "龍涎居", "麥當勞", "休息站", "優食", "早點", "胡饕",
			"摩斯", "統一", "誠記", "全家", "素食", "ＯＫ",
		}},
		{Tag: models.TagDrink, Keywords: []string{
			"約翰紅茶", "萊爾富", "茶湯會", "康青龍", "星巴克", "醋頭家", "清心", "烏弄", "山焙", "５嵐",
		}},
		{Tag: models.TagShow, Keywords: []string{
			"國家表演藝術中心", "臺北表演藝術中心", "融藝", "ｕｄｎ售票", "ＫＫＴＩＸ", "威秀", "秀泰",
		}},
		{Tag: models.TagExercise, Keywords: []string{"ＤＥＣＡＴＨＬＯＮ", "迪卡儂", "捷安特"}},
		{Tag: models.TagCommute, Keywords: []string{"微笑單車", "悠遊付", "悠遊卡", "Ｇｏ Ｓｈａｒｅ"}},
		{Tag: models.TagTaxi, Keywords: []string{"計程車", "大都會衛星"}},
		{Tag: models.TagCar, Keywords: []string{"中油", "加油站", "台塑石油", "台亞", "臺北市路邊"}},
	}
}
