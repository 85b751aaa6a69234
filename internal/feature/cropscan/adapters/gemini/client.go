// Package gemini はGoogle Gemini APIを使用した市況アドバイス生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"mandi_backend/internal/feature/cropscan/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiAdvisor はGoogle Gemini APIを使用して市況アドバイスを生成します。
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

// GeminiAdvisorがAdvisoryGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.AdvisoryGenerator = (*GeminiAdvisor)(nil)

// NewGeminiAdvisor はADCを使用してGeminiAdvisorの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiAdvisor(ctx context.Context) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAdvisor{client: client, model: DefaultModel}, nil
}

// Generate はプロンプトを使用してアドバイスを生成します。
func (g *GeminiAdvisor) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
