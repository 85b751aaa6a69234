// Package entity は価格意思決定支援フィーチャーのドメインモデルを定義します。
package entity

import "time"

// PriceObservation は価格データセットの正規化済み1レコードを表します。
// プロセス起動時に一度だけ生成され、以降は不変です。
type PriceObservation struct {
	Commodity string    // 品目名（保存時の大文字小文字を保持、照合は大文字小文字を無視）
	Region    string    // 地域。ソースに存在しない場合は "ALL"
	Date      time.Time // 観測日（時刻成分なし）
	Price     float64   // モーダル価格（正の値のみ）
}

// DailyAverage はある品目の1暦日あたりの全地域平均価格です。
// クエリごとに導出される一時データです。
type DailyAverage struct {
	Date         time.Time
	AveragePrice float64
}

// TrendFit は直近ウィンドウに対する最小二乗法の直線あてはめ結果です。
// x座標はウィンドウ内の時系列位置（1..n）であり暦日ではありません。
type TrendFit struct {
	Slope     float64
	Intercept float64
	Points    int // あてはめに使用した点数（ウィンドウサイズ）
}

// PriceAt は位置xにおける推定価格を返します。
func (t TrendFit) PriceAt(x int) float64 {
	return t.Slope*float64(x) + t.Intercept
}

// DemandLevel は需要シグナルの粗い分類です。
type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
)

// RecommendationLabel は売り時判定の離散ラベルです。
type RecommendationLabel string

const (
	RecommendSellNow RecommendationLabel = "SELL_NOW"
	RecommendWait    RecommendationLabel = "WAIT"
	RecommendHold    RecommendationLabel = "HOLD"
)

// Recommendation はトレンドと需要から導かれた判定結果です。
type Recommendation struct {
	Label               RecommendationLabel
	Explanation         string // 予測価格を埋め込んだ英語の説明文
	PredictedPrice      int    // 位置n+1（翌日）の予測価格
	ProjectedPrice3Days int    // 位置n+3の予測価格
	Demand              DemandLevel
}

// ChartPoint はチャート描画用の系列の1点です。
type ChartPoint struct {
	Day          string // 日付ラベル（YYYY-MM-DD）
	Price        int    // 最近傍整数に丸めた価格
	IsPrediction bool   // 末尾に付加される「明日」の合成点のみtrue
}

// Decision は意思決定支援クエリの最終結果です。
// 翻訳はベストエフォートであり、失敗時は英語の原文が入ります。
type Decision struct {
	Commodity           string
	Recommendation      RecommendationLabel
	RecommendationLabel string // 翻訳後（または原文の）ラベル表示文字列
	Explanation         string // 翻訳後（または原文の）説明文
	Language            string // 実際に使用した言語コード
	Translated          bool
	PredictedPrice      *int // データなしの場合はnil
	ProjectedPrice3Days *int // データなしの場合はnil
	Slope               float64
	Demand              DemandLevel
	Chart               []ChartPoint
}
