package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"contentstudio/internal/domain"
	"contentstudio/internal/infrastructure/config"

	"google.golang.org/genai"
)

// modelsAPI は、GeminiAPIClientが利用するgenai.Modelsのメソッドです
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GeminiAPIClient は、Gemini APIとの通信を行うGenerationGatewayの実装です
type GeminiAPIClient struct {
	models modelsAPI
	config *config.GeminiConfig
}

// NewGeminiAPIClient は新しいGeminiAPIClientインスタンスを作成します
func NewGeminiAPIClient(ctx context.Context, geminiConfig *config.GeminiConfig) (*GeminiAPIClient, error) {
	if geminiConfig == nil {
		geminiConfig = config.DefaultGeminiConfig()
	}
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Gemini APIキーが設定されていません")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("Gemini APIクライアントの作成に失敗: %w", err)
	}

	return newGeminiAPIClient(client.Models, geminiConfig), nil
}

// newGeminiAPIClient は、任意のmodelsAPIからGeminiAPIClientを作成します
func newGeminiAPIClient(models modelsAPI, geminiConfig *config.GeminiConfig) *GeminiAPIClient {
	if geminiConfig == nil {
		geminiConfig = config.DefaultGeminiConfig()
	}
	return &GeminiAPIClient{
		models: models,
		config: geminiConfig,
	}
}

// safetySettings は、テキスト生成に適用する安全フィルターの設定です（中程度の制限）
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}
	return settings
}

// createSummarizeConfig は、要約用の生成設定を作成します
func (g *GeminiAPIClient) createSummarizeConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
		// 短いフレーズのみが必要なため思考は無効化
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	}
}

// createPostConfig は、投稿文生成用の生成設定を作成します
func (g *GeminiAPIClient) createPostConfig() *genai.GenerateContentConfig {
	temperature := g.config.Temperature
	return &genai.GenerateContentConfig{
		Temperature:    &temperature,
		SafetySettings: safetySettings(),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: domain.PostSystemInstruction}},
		},
	}
}

// createImageConfig は、画像生成の設定を作成します
func (g *GeminiAPIClient) createImageConfig(aspectRatio domain.AspectRatio) *genai.GenerateImagesConfig {
	return &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: g.config.ImageMIMEType,
		AspectRatio:    string(aspectRatio),
	}
}

// Summarize は、記事本文から画像生成用の短いテーマフレーズを生成します
func (g *GeminiAPIClient) Summarize(ctx context.Context, articleText string) (string, error) {
	log.Printf("Gemini APIに記事の要約をリクエスト中: %d文字", len(articleText))

	contents := genai.Text(domain.BuildSummarizePrompt(articleText))
	resp, err := g.models.GenerateContent(ctx, g.config.TextModelName, contents, g.createSummarizeConfig())
	if err != nil {
		return "", domain.NewGenerationError(domain.FailureSummarization, wrapRequestError(ctx, err))
	}

	summary, err := g.processResponse(resp)
	if err != nil {
		return "", domain.NewGenerationError(domain.FailureSummarization, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", domain.NewGenerationError(domain.FailureSummarization, errors.New("要約結果が空です"))
	}

	log.Printf("記事の要約を取得: %s", summary)
	return summary, nil
}

// GenerateImage は、安全指示を付与したプロンプトから画像を1枚生成します
func (g *GeminiAPIClient) GenerateImage(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedImage, error) {
	fullPrompt := domain.BuildImagePrompt(prompt)
	log.Printf("Gemini APIに画像生成をリクエスト中: モデル=%s, アスペクト比=%s, %d文字", g.config.ImageModelName, aspectRatio, len(fullPrompt))

	resp, err := g.models.GenerateImages(ctx, g.config.ImageModelName, fullPrompt, g.createImageConfig(aspectRatio))
	if err != nil {
		return domain.GeneratedImage{}, domain.NewGenerationError(domain.FailureImageGeneration, wrapRequestError(ctx, err))
	}

	image, err := g.processImageResponse(resp)
	if err != nil {
		return domain.GeneratedImage{}, domain.NewGenerationError(domain.FailureImageGeneration, err)
	}

	log.Printf("Gemini APIから画像を取得: %dバイト, %s", len(image.Data), image.MIMEType)
	return image, nil
}

// GeneratePost は、トピックまたは記事からLinkedIn投稿文を生成します
func (g *GeminiAPIClient) GeneratePost(ctx context.Context, source domain.PostSource) (string, error) {
	prompt := domain.BuildPostPrompt(source)
	log.Printf("Gemini APIに投稿文の生成をリクエスト中: %d文字", len(prompt))

	resp, err := g.models.GenerateContent(ctx, g.config.TextModelName, genai.Text(prompt), g.createPostConfig())
	if err != nil {
		return "", domain.NewGenerationError(domain.FailurePostGeneration, wrapRequestError(ctx, err))
	}

	text, err := g.processResponse(resp)
	if err != nil {
		return "", domain.NewGenerationError(domain.FailurePostGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewGenerationError(domain.FailurePostGeneration, errors.New("投稿文が空です"))
	}

	return text, nil
}

// wrapRequestError は、タイムアウトとそれ以外の通信エラーを区別してラップします
func wrapRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("Gemini APIへのリクエストがタイムアウトしました: %w", err)
	}
	return fmt.Errorf("Gemini APIからの応答取得に失敗: %w", err)
}

// processResponse は、Gemini APIのテキスト応答を処理します
func (g *GeminiAPIClient) processResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini APIから有効な応答が得られませんでした")
	}

	candidate := resp.Candidates[0]
	log.Printf("Gemini APIレスポンス: Candidates数=%d, FinishReason=%s", len(resp.Candidates), candidate.FinishReason)

	// FinishReasonをチェックして安全フィルターによるブロックを検出
	if candidate.FinishReason == genai.FinishReasonSafety {
		for i, rating := range candidate.SafetyRatings {
			log.Printf("SafetyRating[%d]: Category=%s, Probability=%s", i, rating.Category, rating.Probability)
		}
		return "", fmt.Errorf("Gemini APIの安全フィルターによって応答がブロックされました")
	}

	if candidate.FinishReason == genai.FinishReasonRecitation {
		return "", fmt.Errorf("Gemini APIが著作権保護された内容を検出しました")
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini APIの応答にコンテンツが含まれていません")
	}

	// テキスト部分を抽出
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			builder.WriteString(part.Text)
		}
	}

	result := builder.String()
	log.Printf("Gemini APIから応答を取得: %d文字", len(result))
	return result, nil
}

// processImageResponse は、画像生成の応答から先頭の画像を取り出します
func (g *GeminiAPIClient) processImageResponse(resp *genai.GenerateImagesResponse) (domain.GeneratedImage, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return domain.GeneratedImage{}, fmt.Errorf("Gemini APIから画像が返されませんでした")
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		reason := ""
		if generated != nil {
			reason = generated.RAIFilteredReason
		}
		if reason != "" {
			return domain.GeneratedImage{}, fmt.Errorf("画像が安全フィルターによって除外されました: %s", reason)
		}
		return domain.GeneratedImage{}, fmt.Errorf("Gemini APIの応答に画像データが含まれていません")
	}

	mimeType := generated.Image.MIMEType
	if mimeType == "" {
		mimeType = g.config.ImageMIMEType
	}

	return domain.GeneratedImage{
		Data:     generated.Image.ImageBytes,
		MIMEType: mimeType,
	}, nil
}
