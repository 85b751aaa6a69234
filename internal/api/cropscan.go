package api

// DetectedProduceResponse は農産物検出のレスポンスDTOです。
type DetectedProduceResponse struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
}

// MarketAdvisoryResponse は市況アドバイスのレスポンスDTOです。
type MarketAdvisoryResponse struct {
	Commodity string `json:"commodity"`
	Summary   string `json:"summary"`
}
