package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mandi_backend/internal/platform/externalapi/translate/dto"
)

// newTestClient はhttptestサーバーを指すClientを生成します。
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL, Timeout: DefaultTimeout}
	return NewClient(cfg, srv.Client()), srv
}

func TestTranslatePair_Success(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req dto.TranslateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Q) != 2 || req.Q[0] != "WAIT" {
			t.Errorf("unexpected query payload: %v", req.Q)
		}
		if req.Source != "en" || req.Target != "hi" {
			t.Errorf("unexpected language pair: %s -> %s", req.Source, req.Target)
		}

		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"प्रतीक्षा करें"},{"translatedText":"भाव बढ़ रहे हैं"}]}}`))
	})

	label, explanation, err := client.TranslatePair(context.Background(), "WAIT", "Prices are rising.", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "प्रतीक्षा करें" {
		t.Errorf("unexpected label: %s", label)
	}
	if explanation != "भाव बढ़ रहे हैं" {
		t.Errorf("unexpected explanation: %s", explanation)
	}
}

func TestTranslatePair_SendsAPIKey(t *testing.T) {
	t.Parallel()

	srvHit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srvHit = true
		if got := r.URL.Query().Get("key"); got != "secret" {
			t.Errorf("expected key query parameter, got %q", got)
		}
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"a"},{"translatedText":"b"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: srv.URL, Timeout: DefaultTimeout}, srv.Client())
	if _, _, err := client.TranslatePair(context.Background(), "HOLD", "x", "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !srvHit {
		t.Error("server was not called")
	}
}

func TestTranslatePair_MissingBaseURL(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{}, http.DefaultClient)
	_, _, err := client.TranslatePair(context.Background(), "HOLD", "x", "hi")
	if err == nil {
		t.Fatal("expected error for missing base URL")
	}
}

func TestTranslatePair_HTTPError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, _, err := client.TranslatePair(context.Background(), "HOLD", "x", "hi")
	if err == nil {
		t.Fatal("expected error for HTTP 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestTranslatePair_APIError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"invalid target language"}}`))
	})

	_, _, err := client.TranslatePair(context.Background(), "HOLD", "x", "zz")
	if err == nil || !strings.Contains(err.Error(), "invalid target language") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestTranslatePair_WrongTranslationCount(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"only one"}]}}`))
	})

	_, _, err := client.TranslatePair(context.Background(), "HOLD", "x", "hi")
	if err == nil {
		t.Fatal("expected error for incomplete translation response")
	}
}

func TestTranslatePair_InvalidJSON(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, _, err := client.TranslatePair(context.Background(), "HOLD", "x", "hi"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestTranslatePair_ContextCancellation(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"a"},{"translatedText":"b"}]}}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, _, err := client.TranslatePair(ctx, "HOLD", "x", "hi"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
