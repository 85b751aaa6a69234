// Package vision はGoogle Cloud Vision APIを使用した農産物検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"mandi_backend/internal/feature/cropscan/domain/entity"
	"mandi_backend/internal/feature/cropscan/usecase"
)

// maxLabels はラベル検出の最大件数です。
const maxLabels = 10

// VisionProduceDetector はGoogle Cloud Vision APIのラベル検出で農産物を推定します。
type VisionProduceDetector struct {
	client *gvision.ImageAnnotatorClient
}

// VisionProduceDetectorがProduceDetectorを実装していることをコンパイル時に検証します。
var _ usecase.ProduceDetector = (*VisionProduceDetector)(nil)

// NewVisionProduceDetector はADCを使用してVisionProduceDetectorの新しいインスタンスを生成します。
func NewVisionProduceDetector(ctx context.Context) (*VisionProduceDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionProduceDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionProduceDetector) Close() error {
	return v.client.Close()
}

// DetectProduce は画像バイト列からラベルを検出し、農産物候補として返します。
func (v *VisionProduceDetector) DetectProduce(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabels},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}

	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	labels := make([]entity.DetectedProduce, 0, len(resp.Responses[0].LabelAnnotations))
	for _, label := range resp.Responses[0].LabelAnnotations {
		labels = append(labels, entity.DetectedProduce{
			Name:       label.Description,
			Confidence: label.Score,
		})
	}

	return labels, nil
}
