// Package dto defines data transfer objects for the translation API.
package dto

// TranslateRequest represents the JSON request body for the translate endpoint.
type TranslateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

// TranslateResponse represents the JSON response from the translate endpoint.
type TranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error struct {
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}
