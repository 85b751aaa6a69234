package entity

// MarketAdvisory は商品に対する市況アドバイスを表します。
type MarketAdvisory struct {
	Commodity string // 対象の商品名
	Summary   string // AI生成のアドバイス
}
