// Package usecase はcropscanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"mandi_backend/internal/feature/cropscan/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// AdvisoryPromptTemplate は市況アドバイスのプロンプトテンプレートです。
	AdvisoryPromptTemplate = "You are an agricultural market advisor for Indian mandis. In 3 short bullet points, give practical selling advice for a farmer holding %s this week."
	// MaxCommodityNameLength は商品名の最大文字数（rune数）です。
	MaxCommodityNameLength = 100
)

// validCommodityName は商品名に許可される文字パターンです（文字・数字・スペース・記号の一部）。
var validCommodityName = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.&,()]+$`)

// ProduceDetector は画像から農産物を検出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ProduceDetector interface {
	// DetectProduce は画像バイト列から農産物ラベルを検出し、検出結果を返します。
	DetectProduce(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error)
}

// AdvisoryGenerator は市況アドバイスを生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type AdvisoryGenerator interface {
	// Generate はプロンプトからアドバイスを生成します。
	Generate(ctx context.Context, prompt string) (string, error)
}

// cropscanUsecase は農産物検出・市況アドバイスのビジネスロジックを提供します。
type cropscanUsecase struct {
	detector ProduceDetector
	advisor  AdvisoryGenerator
}

// NewCropScanUsecase はcropscanUsecaseの新しいインスタンスを生成します。
func NewCropScanUsecase(d ProduceDetector, a AdvisoryGenerator) *cropscanUsecase {
	return &cropscanUsecase{detector: d, advisor: a}
}

// DetectProduce は画像データから農産物を検出します。
func (u *cropscanUsecase) DetectProduce(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}
	return u.detector.DetectProduce(ctx, imageData)
}

// GetAdvisory は商品名から市況アドバイスを生成します。
func (u *cropscanUsecase) GetAdvisory(ctx context.Context, commodity string) (*entity.MarketAdvisory, error) {
	if commodity == "" {
		return nil, fmt.Errorf("commodity name is required")
	}
	if utf8.RuneCountInString(commodity) > MaxCommodityNameLength {
		return nil, fmt.Errorf("commodity name exceeds maximum length of %d characters", MaxCommodityNameLength)
	}
	if !validCommodityName.MatchString(commodity) {
		return nil, fmt.Errorf("commodity name contains invalid characters")
	}
	prompt := fmt.Sprintf(AdvisoryPromptTemplate, commodity)
	summary, err := u.advisor.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("advisory generator failed for %q: %w", commodity, err)
	}
	return &entity.MarketAdvisory{
		Commodity: commodity,
		Summary:   summary,
	}, nil
}
