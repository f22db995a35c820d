package application

import (
	"context"
	"errors"

	"contentstudio/internal/domain"
)

// GenerationGateway は、外部の生成AIプロバイダーとの唯一の境界となるインターフェースです
// 各操作はリトライを行わず、失敗は domain.GenerationError として返されます
type GenerationGateway interface {
	// Summarize は、記事本文から5〜10語のテーマフレーズを生成します
	Summarize(ctx context.Context, articleText string) (string, error)

	// GenerateImage は、安全指示を付与したプロンプトから画像を1枚生成します
	GenerateImage(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedImage, error)

	// GeneratePost は、トピックまたは記事からLinkedIn投稿文を生成します
	GeneratePost(ctx context.Context, source domain.PostSource) (string, error)
}

// classifyError は、Gatewayが分類していないエラーを指定の種類のGenerationErrorに変換します
func classifyError(kind domain.FailureKind, err error) error {
	if err == nil {
		return nil
	}

	var generationErr *domain.GenerationError
	if errors.As(err, &generationErr) {
		return err
	}
	return domain.NewGenerationError(kind, err)
}
