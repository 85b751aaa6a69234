package usecase

import (
	"math"

	"mandi_backend/internal/feature/decision/domain/entity"
)

// TrendWindowSize はトレンド推定に使用する直近日数の上限です。
const TrendWindowSize = 5

// Window は日次平均の末尾から最大 TrendWindowSize 点を返します。
// 履歴が短い場合はあるだけの点を使用します。
func Window(averages []entity.DailyAverage) []entity.DailyAverage {
	if len(averages) <= TrendWindowSize {
		return averages
	}
	return averages[len(averages)-TrendWindowSize:]
}

// Fit はウィンドウ内の点に最小二乗法で直線をあてはめます。
// x座標はウィンドウ内の時系列位置（最古の点が1）で、暦日ではありません。
// 1点でも直線を返します（slope=0）。0点の呼び出しは呼び出し側が除外します。
func Fit(window []entity.DailyAverage) entity.TrendFit {
	n := float64(len(window))

	var sumX, sumY, sumXY, sumXX float64
	for i, avg := range window {
		x := float64(i + 1)
		sumX += x
		sumY += avg.AveragePrice
		sumXY += x * avg.AveragePrice
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// 1点のみ: 傾きなしの水平線
		return entity.TrendFit{Slope: 0, Intercept: sumY / n, Points: len(window)}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return entity.TrendFit{Slope: slope, Intercept: intercept, Points: len(window)}
}

// ProjectNext は翌日（位置n+1）の予測価格を最近傍整数で返します。
func ProjectNext(fit entity.TrendFit) int {
	return roundPrice(fit.PriceAt(fit.Points + 1))
}

// ProjectPlus3 は3日後（位置n+3）の予測価格を最近傍整数で返します。
func ProjectPlus3(fit entity.TrendFit) int {
	return roundPrice(fit.PriceAt(fit.Points + 3))
}

// roundPrice は表示用の価格を最近傍整数に丸めます。
func roundPrice(p float64) int {
	return int(math.Round(p))
}

// roundSlope はレスポンス用に傾きを小数第2位へ丸めます。
// 分類には丸め前の値を使用します。
func roundSlope(slope float64) float64 {
	return math.Round(slope*100) / 100
}
