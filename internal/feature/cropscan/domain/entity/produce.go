// Package entity はcropscanフィーチャーのドメインモデルを定義します。
package entity

// DetectedProduce は画像から検出された農産物を表します。
type DetectedProduce struct {
	Name       string  // 検出された農産物名
	Confidence float32 // 信頼度スコア（0.0 ~ 1.0）
}
