package usecase

import (
	"math/rand"

	"mandi_backend/internal/feature/decision/domain/entity"
)

// DemandSampler は品目の需要シグナルを供給します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DemandSampler interface {
	Sample(commodity string) entity.DemandLevel
}

// randomDemandSampler はクエリごとに需要レベルを一様ランダムに抽出します。
// 実需データからの算出に置き換えられるまでの暫定実装です。
type randomDemandSampler struct{}

// NewRandomDemandSampler はrandomDemandSamplerの新しいインスタンスを生成します。
func NewRandomDemandSampler() DemandSampler {
	return randomDemandSampler{}
}

// Sample はHighまたはMediumを等確率で返します。品目は参照しません。
func (randomDemandSampler) Sample(string) entity.DemandLevel {
	if rand.Intn(2) == 0 {
		return entity.DemandHigh
	}
	return entity.DemandMedium
}
