package usecase

import (
	"fmt"

	"mandi_backend/internal/feature/decision/domain/entity"
)

// Classify はあてはめ済みトレンドと需要シグナルから判定ラベルを導きます。
// ルールは記載順に評価され、最初に一致したものが採用されます。
// 入力が同じであれば結果は常に同じです（クエリ間に状態を持ちません）。
func Classify(fit entity.TrendFit, demand entity.DemandLevel) entity.Recommendation {
	next := ProjectNext(fit)
	plus3 := ProjectPlus3(fit)

	rec := entity.Recommendation{
		PredictedPrice:      next,
		ProjectedPrice3Days: plus3,
		Demand:              demand,
	}

	switch {
	case fit.Slope > 0 && demand == entity.DemandHigh:
		rec.Label = entity.RecommendWait
		rec.Explanation = fmt.Sprintf("Prices are rising and demand is high. Waiting is likely to pay off: the price is projected to reach %d in 3 days.", plus3)
	case fit.Slope < 0:
		rec.Label = entity.RecommendSellNow
		rec.Explanation = fmt.Sprintf("Prices are falling. Selling now is advised; the price is projected to drop to %d tomorrow.", next)
	default:
		rec.Label = entity.RecommendHold
		rec.Explanation = fmt.Sprintf("Prices are stable around %d. Either selling or waiting is reasonable.", next)
	}
	return rec
}
