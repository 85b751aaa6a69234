// Package usecase は価格意思決定支援のビジネスロジックを実装します。
package usecase

import (
	"sort"
	"time"

	"mandi_backend/internal/feature/decision/domain/entity"
)

// Aggregate は観測を暦日単位でグループ化し、1日あたり1点の平均価格に畳み込みます。
// 地域は意図的に区別せず、全地域をプールした全国平均を算出します。
// 結果は日付昇順でソートされます。観測が0件の場合は空のスライスを返します。
func Aggregate(observations []entity.PriceObservation) []entity.DailyAverage {
	type bucket struct {
		sum   float64
		count int
	}
	byDay := make(map[time.Time]*bucket)
	for _, obs := range observations {
		day := obs.Date.Truncate(24 * time.Hour)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.sum += obs.Price
		b.count++
	}

	out := make([]entity.DailyAverage, 0, len(byDay))
	for day, b := range byDay {
		out = append(out, entity.DailyAverage{
			Date:         day,
			AveragePrice: b.sum / float64(b.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
