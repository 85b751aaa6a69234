// Package dto はdecisionフィーチャーのレスポンスDTOを定義します。
package dto

// ChartPoint はチャート系列の1点のレスポンス表現です。
type ChartPoint struct {
	DayLabel     string `json:"dayLabel"`     // 日付ラベル（YYYY-MM-DD）
	Price        int    `json:"price"`        // 最近傍整数に丸めた価格
	IsPrediction bool   `json:"isPrediction"` // 合成予測点のみtrue
}

// DecisionResponse は意思決定支援クエリのレスポンスDTOです。
// predictedPrice / projectedPrice3Days はデータなしの場合にnullになります。
type DecisionResponse struct {
	Commodity           string       `json:"commodity"`
	Recommendation      string       `json:"recommendation"`
	RecommendationLabel string       `json:"recommendationLabel"`
	Explanation         string       `json:"explanation"`
	Language            string       `json:"language"`
	Translated          bool         `json:"translated"`
	PredictedPrice      *int         `json:"predictedPrice"`
	ProjectedPrice3Days *int         `json:"projectedPrice3Days"`
	Slope               float64      `json:"slope"`
	DemandLevel         string       `json:"demandLevel,omitempty"`
	ChartData           []ChartPoint `json:"chartData"`
}

// CommoditiesResponse は読み込み済みデータの品目・地域一覧のレスポンスDTOです。
type CommoditiesResponse struct {
	Commodities []string `json:"commodities"`
	Regions     []string `json:"regions"`
}
