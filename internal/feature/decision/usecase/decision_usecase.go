package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"mandi_backend/internal/feature/decision/domain"
	"mandi_backend/internal/feature/decision/domain/entity"
)

const (
	// DefaultLanguage は翻訳を行わない既定の言語コードです。
	DefaultLanguage = "en"
	// dayLabelLayout はチャートの日付ラベルのフォーマットです。
	dayLabelLayout = "2006-01-02"
)

// PriceRepository は正規化済み価格観測の読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// Query は品目が大文字小文字を無視して一致する観測を返します。一致なしは空スライスです。
	Query(ctx context.Context, commodity string) []entity.PriceObservation
	// Commodities はソート・重複排除済みの品目一覧を返します。
	Commodities(ctx context.Context) []string
	// Regions はソート・重複排除済みの地域一覧を返します。
	Regions(ctx context.Context) []string
}

// Translator は判定ラベルと説明文のペアを対象言語へ翻訳します。
// 翻訳はベストエフォートであり、エラー時は呼び出し側が原文へフォールバックします。
type Translator interface {
	TranslatePair(ctx context.Context, label, explanation, targetLang string) (string, string, error)
}

// CallBudget は外部翻訳APIの呼び出し頻度を制限します。
type CallBudget interface {
	// Allow は呼び出しが許可される場合にtrueを返します。falseでも待機はしません。
	Allow() bool
}

// decisionUsecase は意思決定支援クエリの単一エントリポイントです。
// ストア検索 → 日次集約 → トレンド推定 → ルール分類 → レスポンス整形 →
// （任意の）翻訳、の順にパイプラインを実行します。
type decisionUsecase struct {
	prices     PriceRepository
	demand     DemandSampler
	translator Translator
	budget     CallBudget
}

// NewDecisionUsecase はdecisionUsecaseの新しいインスタンスを生成します。
// translatorとbudgetはnilを許容し、その場合は翻訳をスキップします。
func NewDecisionUsecase(prices PriceRepository, demand DemandSampler, translator Translator, budget CallBudget) *decisionUsecase {
	return &decisionUsecase{prices: prices, demand: demand, translator: translator, budget: budget}
}

// GetDecision は指定品目の売り時判定を計算して返します。
// 品目が空の場合はErrCommodityRequiredを返します。品目のデータが存在しない場合は
// エラーではなく「データなし」のHOLDレスポンスを返します。
func (u *decisionUsecase) GetDecision(ctx context.Context, commodity, lang string) (*entity.Decision, error) {
	if commodity == "" {
		return nil, domain.ErrCommodityRequired
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	observations := u.prices.Query(ctx, commodity)
	if len(observations) == 0 {
		return u.noDataDecision(ctx, commodity, lang), nil
	}

	window := Window(Aggregate(observations))
	fit := Fit(window)
	rec := Classify(fit, u.demand.Sample(commodity))

	decision := &entity.Decision{
		Commodity:           commodity,
		Recommendation:      rec.Label,
		RecommendationLabel: string(rec.Label),
		Explanation:         rec.Explanation,
		Language:            DefaultLanguage,
		PredictedPrice:      &rec.PredictedPrice,
		ProjectedPrice3Days: &rec.ProjectedPrice3Days,
		Slope:               roundSlope(fit.Slope),
		Demand:              rec.Demand,
		Chart:               buildChart(window, rec.PredictedPrice),
	}
	u.localize(ctx, decision, lang)
	return decision, nil
}

// ListCommodities は読み込み済みストアに含まれる品目と地域の一覧を返します。
func (u *decisionUsecase) ListCommodities(ctx context.Context) (commodities, regions []string) {
	return u.prices.Commodities(ctx), u.prices.Regions(ctx)
}

// noDataDecision はデータなし時の終端レスポンスを組み立てます。
// 集約やあてはめは行わず、予測価格はnil、チャートは空になります。
func (u *decisionUsecase) noDataDecision(ctx context.Context, commodity, lang string) *entity.Decision {
	decision := &entity.Decision{
		Commodity:           commodity,
		Recommendation:      entity.RecommendHold,
		RecommendationLabel: string(entity.RecommendHold),
		Explanation:         fmt.Sprintf("No price data is available for %s. Holding is advised until data arrives.", commodity),
		Language:            DefaultLanguage,
		Chart:               []entity.ChartPoint{},
	}
	u.localize(ctx, decision, lang)
	return decision
}

// buildChart はウィンドウ内の実績点に「明日」の合成予測点を1つ付加した系列を返します。
func buildChart(window []entity.DailyAverage, predicted int) []entity.ChartPoint {
	chart := make([]entity.ChartPoint, 0, len(window)+1)
	for _, avg := range window {
		chart = append(chart, entity.ChartPoint{
			Day:   avg.Date.Format(dayLabelLayout),
			Price: roundPrice(avg.AveragePrice),
		})
	}
	tomorrow := window[len(window)-1].Date.AddDate(0, 0, 1)
	chart = append(chart, entity.ChartPoint{
		Day:          tomorrow.Format(dayLabelLayout),
		Price:        predicted,
		IsPrediction: true,
	})
	return chart
}

// localize はラベルと説明文をベストエフォートで翻訳します。
// アダプタ未設定・呼び出し上限超過・翻訳失敗のいずれの場合も英語の原文のまま返し、
// リクエスト自体は決して失敗させません。
func (u *decisionUsecase) localize(ctx context.Context, decision *entity.Decision, lang string) {
	if lang == DefaultLanguage || u.translator == nil {
		return
	}
	if u.budget != nil && !u.budget.Allow() {
		slog.Warn("translation budget exhausted, falling back to english", "lang", lang)
		return
	}

	label, explanation, err := u.translator.TranslatePair(ctx, decision.RecommendationLabel, decision.Explanation, lang)
	if err != nil {
		slog.Warn("translation failed, falling back to english", "lang", lang, "error", err)
		return
	}

	decision.RecommendationLabel = label
	decision.Explanation = explanation
	decision.Language = lang
	decision.Translated = true
}
