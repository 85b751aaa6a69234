package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"mandi_backend/internal/feature/decision/usecase"
	"mandi_backend/internal/platform/externalapi/translate/dto"
)

// Client は外部翻訳APIを呼び出すTranslator実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがTranslatorを実装していることをコンパイル時に検証します。
var _ usecase.Translator = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// TranslatePair はラベルと説明文を対象言語へ翻訳します。
// BaseURL未設定・HTTPエラー・不正レスポンスはすべてエラーとして返し、
// フォールバックの判断は呼び出し側に委ねます。
func (t *Client) TranslatePair(ctx context.Context, label, explanation, targetLang string) (string, string, error) {
	if t.cfg.BaseURL == "" {
		return "", "", errors.New("translate: base URL is not configured")
	}

	body, err := json.Marshal(dto.TranslateRequest{
		Q:      []string{label, explanation},
		Source: "en",
		Target: targetLang,
		Format: "text",
	})
	if err != nil {
		return "", "", err
	}

	u := t.cfg.BaseURL
	if t.cfg.APIKey != "" {
		q := url.Values{}
		q.Set("key", t.cfg.APIKey)
		u = fmt.Sprintf("%s?%s", u, q.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return "", "", fmt.Errorf("translate http %d", res.StatusCode)
	}

	var out dto.TranslateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", "", err
	}
	if out.Error.Message != "" {
		return "", "", fmt.Errorf("translate: %s", out.Error.Message)
	}
	if len(out.Data.Translations) != 2 {
		return "", "", fmt.Errorf("translate: expected 2 translations, got %d", len(out.Data.Translations))
	}

	return out.Data.Translations[0].TranslatedText, out.Data.Translations[1].TranslatedText, nil
}
