package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"mandi_backend/internal/feature/decision/domain"
	"mandi_backend/internal/feature/decision/domain/entity"
)

// mockPriceRepository はPriceRepositoryインターフェースのモック実装です。
type mockPriceRepository struct {
	QueryFunc       func(ctx context.Context, commodity string) []entity.PriceObservation
	CommoditiesFunc func(ctx context.Context) []string
	RegionsFunc     func(ctx context.Context) []string
}

func (m *mockPriceRepository) Query(ctx context.Context, commodity string) []entity.PriceObservation {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, commodity)
	}
	return nil
}

func (m *mockPriceRepository) Commodities(ctx context.Context) []string {
	if m.CommoditiesFunc != nil {
		return m.CommoditiesFunc(ctx)
	}
	return nil
}

func (m *mockPriceRepository) Regions(ctx context.Context) []string {
	if m.RegionsFunc != nil {
		return m.RegionsFunc(ctx)
	}
	return nil
}

// fixedDemand は常に同じ需要レベルを返すDemandSamplerです。
type fixedDemand struct {
	level entity.DemandLevel
}

func (f fixedDemand) Sample(string) entity.DemandLevel { return f.level }

// mockTranslator はTranslatorインターフェースのモック実装です。
type mockTranslator struct {
	TranslatePairFunc func(ctx context.Context, label, explanation, targetLang string) (string, string, error)
	calls             int
}

func (m *mockTranslator) TranslatePair(ctx context.Context, label, explanation, targetLang string) (string, string, error) {
	m.calls++
	if m.TranslatePairFunc != nil {
		return m.TranslatePairFunc(ctx, label, explanation, targetLang)
	}
	return label, explanation, nil
}

// mockBudget は固定の許可判定を返すCallBudgetです。
type mockBudget struct {
	allow bool
}

func (m mockBudget) Allow() bool { return m.allow }

// risingObservations は5日間の上昇トレンド（日次平均20,21,22,23,24）を返します。
func risingObservations() []entity.PriceObservation {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	out := make([]entity.PriceObservation, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, entity.PriceObservation{
			Commodity: "Tomato",
			Region:    "ALL",
			Date:      base.AddDate(0, 0, i),
			Price:     float64(20 + i),
		})
	}
	return out
}

func TestGetDecision_RisingTrend(t *testing.T) {
	repo := &mockPriceRepository{
		QueryFunc: func(ctx context.Context, commodity string) []entity.PriceObservation {
			return risingObservations()
		},
	}
	uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, nil, nil)

	decision, err := uc.GetDecision(context.Background(), "Tomato", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Recommendation != entity.RecommendWait {
		t.Errorf("expected WAIT, got %s", decision.Recommendation)
	}
	if decision.PredictedPrice == nil || *decision.PredictedPrice != 25 {
		t.Errorf("expected predicted price 25, got %v", decision.PredictedPrice)
	}
	if decision.ProjectedPrice3Days == nil || *decision.ProjectedPrice3Days != 27 {
		t.Errorf("expected 3-day projection 27, got %v", decision.ProjectedPrice3Days)
	}
	if decision.Slope != 1 {
		t.Errorf("expected slope 1, got %v", decision.Slope)
	}

	// チャートは実績5点 + 予測1点
	if len(decision.Chart) != 6 {
		t.Fatalf("expected 6 chart points, got %d", len(decision.Chart))
	}
	for i, p := range decision.Chart[:5] {
		if p.IsPrediction {
			t.Errorf("point %d should not be a prediction", i)
		}
	}
	last := decision.Chart[5]
	if !last.IsPrediction {
		t.Error("last chart point should be the prediction")
	}
	if last.Price != 25 {
		t.Errorf("expected prediction point price 25, got %d", last.Price)
	}
	if last.Day != "2026-08-25" {
		t.Errorf("expected prediction day 2026-08-25, got %s", last.Day)
	}
}

func TestGetDecision_FallingTrend(t *testing.T) {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &mockPriceRepository{
		QueryFunc: func(ctx context.Context, commodity string) []entity.PriceObservation {
			prices := []float64{30, 28, 26, 24, 22}
			out := make([]entity.PriceObservation, 0, len(prices))
			for i, p := range prices {
				out = append(out, entity.PriceObservation{
					Commodity: commodity, Region: "ALL", Date: base.AddDate(0, 0, i), Price: p,
				})
			}
			return out
		},
	}
	// 下降トレンドは需要が高くてもSELL_NOW
	uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, nil, nil)

	decision, err := uc.GetDecision(context.Background(), "Onion", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Recommendation != entity.RecommendSellNow {
		t.Errorf("expected SELL_NOW, got %s", decision.Recommendation)
	}
	if decision.Slope != -2 {
		t.Errorf("expected slope -2, got %v", decision.Slope)
	}
	if decision.PredictedPrice == nil || *decision.PredictedPrice != 20 {
		t.Errorf("expected predicted price 20, got %v", decision.PredictedPrice)
	}
}

func TestGetDecision_SparseHistory(t *testing.T) {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &mockPriceRepository{
		QueryFunc: func(ctx context.Context, commodity string) []entity.PriceObservation {
			return []entity.PriceObservation{
				{Commodity: commodity, Region: "ALL", Date: base, Price: 100},
				{Commodity: commodity, Region: "ALL", Date: base.AddDate(0, 0, 1), Price: 110},
			}
		},
	}
	uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, nil, nil)

	decision, err := uc.GetDecision(context.Background(), "Wheat", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2点のみでも直線あてはめは機能する: y=10x+90, next=120
	if decision.PredictedPrice == nil || *decision.PredictedPrice != 120 {
		t.Errorf("expected predicted price 120, got %v", decision.PredictedPrice)
	}
	if len(decision.Chart) != 3 {
		t.Errorf("expected 3 chart points, got %d", len(decision.Chart))
	}
}

func TestGetDecision_NoData(t *testing.T) {
	repo := &mockPriceRepository{}
	uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, nil, nil)

	first, err := uc.GetDecision(context.Background(), "Dragonfruit", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Recommendation != entity.RecommendHold {
		t.Errorf("expected HOLD, got %s", first.Recommendation)
	}
	if first.PredictedPrice != nil || first.ProjectedPrice3Days != nil {
		t.Error("expected nil price projections for unknown commodity")
	}
	if len(first.Chart) != 0 {
		t.Errorf("expected empty chart, got %d points", len(first.Chart))
	}
	if first.Demand != "" {
		t.Errorf("expected empty demand level, got %s", first.Demand)
	}

	// 同じクエリの繰り返しは同じ結果になる
	second, err := uc.GetDecision(context.Background(), "Dragonfruit", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Explanation != second.Explanation || first.Recommendation != second.Recommendation {
		t.Error("no-data decision should be identical across calls")
	}
}

func TestGetDecision_EmptyCommodity(t *testing.T) {
	uc := NewDecisionUsecase(&mockPriceRepository{}, fixedDemand{entity.DemandHigh}, nil, nil)

	_, err := uc.GetDecision(context.Background(), "", "en")
	if !errors.Is(err, domain.ErrCommodityRequired) {
		t.Errorf("expected ErrCommodityRequired, got %v", err)
	}
}

func TestGetDecision_Localization(t *testing.T) {
	repo := &mockPriceRepository{
		QueryFunc: func(ctx context.Context, commodity string) []entity.PriceObservation {
			return risingObservations()
		},
	}

	t.Run("translates label and explanation on success", func(t *testing.T) {
		tr := &mockTranslator{
			TranslatePairFunc: func(ctx context.Context, label, explanation, targetLang string) (string, string, error) {
				if targetLang != "hi" {
					t.Errorf("expected target lang hi, got %s", targetLang)
				}
				return "प्रतीक्षा करें", "भाव बढ़ रहे हैं", nil
			},
		}
		uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, tr, mockBudget{allow: true})

		decision, err := uc.GetDecision(context.Background(), "Tomato", "hi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Translated {
			t.Error("expected decision to be translated")
		}
		if decision.Language != "hi" {
			t.Errorf("expected language hi, got %s", decision.Language)
		}
		if decision.RecommendationLabel != "प्रतीक्षा करें" {
			t.Errorf("unexpected translated label: %s", decision.RecommendationLabel)
		}
		// 判定ラベル自体は翻訳の影響を受けない
		if decision.Recommendation != entity.RecommendWait {
			t.Errorf("expected WAIT, got %s", decision.Recommendation)
		}
	})

	t.Run("falls back to english on translator error", func(t *testing.T) {
		tr := &mockTranslator{
			TranslatePairFunc: func(ctx context.Context, label, explanation, targetLang string) (string, string, error) {
				return "", "", errors.New("upstream down")
			},
		}
		uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, tr, mockBudget{allow: true})

		decision, err := uc.GetDecision(context.Background(), "Tomato", "hi")
		if err != nil {
			t.Fatalf("translation failure must not fail the request: %v", err)
		}
		if decision.Translated {
			t.Error("expected fallback to untranslated response")
		}
		if decision.Language != "en" {
			t.Errorf("expected language en, got %s", decision.Language)
		}
		if decision.RecommendationLabel != string(entity.RecommendWait) {
			t.Errorf("expected original label, got %s", decision.RecommendationLabel)
		}
	})

	t.Run("skips translator when budget is exhausted", func(t *testing.T) {
		tr := &mockTranslator{}
		uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, tr, mockBudget{allow: false})

		decision, err := uc.GetDecision(context.Background(), "Tomato", "hi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.calls != 0 {
			t.Errorf("expected no translator calls, got %d", tr.calls)
		}
		if decision.Translated {
			t.Error("expected untranslated response")
		}
	})

	t.Run("skips translator for english", func(t *testing.T) {
		tr := &mockTranslator{}
		uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandHigh}, tr, mockBudget{allow: true})

		if _, err := uc.GetDecision(context.Background(), "Tomato", "en"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.calls != 0 {
			t.Errorf("expected no translator calls, got %d", tr.calls)
		}
	})
}

func TestListCommodities(t *testing.T) {
	repo := &mockPriceRepository{
		CommoditiesFunc: func(ctx context.Context) []string { return []string{"Onion", "Tomato"} },
		RegionsFunc:     func(ctx context.Context) []string { return []string{"Karnataka", "Maharashtra"} },
	}
	uc := NewDecisionUsecase(repo, fixedDemand{entity.DemandMedium}, nil, nil)

	commodities, regions := uc.ListCommodities(context.Background())
	if len(commodities) != 2 || commodities[0] != "Onion" {
		t.Errorf("unexpected commodities: %v", commodities)
	}
	if len(regions) != 2 || regions[1] != "Maharashtra" {
		t.Errorf("unexpected regions: %v", regions)
	}
}
