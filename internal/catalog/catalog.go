// Package catalog holds the fixed default challenge catalog shared by all
// workshops. The list is read-only at runtime; per-workshop additions live in
// the store as custom challenges.
package catalog

// defaults is the ordered list of default challenge prompts.
var defaults = []string{
	"環境問題の解決策",
	"AIと人間の共存",
	"高齢化社会への対応",
	"教育格差の解消",
	"食料問題の解決",
	"エネルギー問題への取り組み",
	"都市部の交通渋滞解消",
	"デジタルデバイド対策",
	"働き方改革の推進",
	"医療費削減の方法",
	"地方創生のアイデア",
	"災害対策の強化",
	"若者の政治参加促進",
	"プラスチック廃棄物削減",
	"子育て支援の充実",
	"企業のSDGs推進",
	"メンタルヘルスケア",
	"観光業の復活",
	"スマートシティの実現",
	"国際協力の推進",
}

// Default returns a copy of the default catalog in its fixed order.
func Default() []string {
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}
