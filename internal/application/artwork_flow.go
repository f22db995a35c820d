package application

import (
	"context"
	"log"
	"time"

	"contentstudio/internal/domain"
	"contentstudio/internal/infrastructure/config"
)

// ArtworkValidationMessage は、Artworkフローで入力が空の場合のメッセージです
const ArtworkValidationMessage = "Please enter a description or article text."

// ArtworkInput は、Artworkフローへの送信内容です
type ArtworkInput struct {
	Mode      domain.Mode // 空の場合は description
	Text      string
	Dimension domain.ImageDimensionOption // 未指定の場合はカタログの先頭項目
}

// ArtworkFlow は、説明文または記事からLinkedIn向け画像を生成するフローです
type ArtworkFlow struct {
	gateway        GenerationGateway
	lifecycle      *Lifecycle
	requestTimeout time.Duration
	now            func() time.Time
}

// NewArtworkFlow は新しいArtworkFlowインスタンスを作成します
func NewArtworkFlow(gateway GenerationGateway, studioConfig *config.StudioConfig) *ArtworkFlow {
	if studioConfig == nil {
		studioConfig = config.DefaultStudioConfig()
	}

	return &ArtworkFlow{
		gateway:        gateway,
		lifecycle:      NewLifecycle(domain.FlowArtwork, ArtworkValidationMessage),
		requestTimeout: studioConfig.RequestTimeout,
		now:            time.Now,
	}
}

// Submit は、画像生成を完了まで実行して最終状態を返します
func (f *ArtworkFlow) Submit(ctx context.Context, input ArtworkInput) (domain.LifecycleState, error) {
	request, err := f.newRequest(input)
	if err != nil {
		return f.State(), err
	}
	return f.lifecycle.Submit(ctx, request, f.run)
}

// Start は、画像生成をバックグラウンドで開始します
func (f *ArtworkFlow) Start(ctx context.Context, input ArtworkInput) (<-chan domain.LifecycleState, error) {
	request, err := f.newRequest(input)
	if err != nil {
		return nil, err
	}
	return f.lifecycle.Start(ctx, request, f.run)
}

// State は現在の状態を返します
func (f *ArtworkFlow) State() domain.LifecycleState {
	return f.lifecycle.State()
}

// Watch は状態遷移のリスナーを登録します
func (f *ArtworkFlow) Watch(listener StateListener) {
	f.lifecycle.Watch(listener)
}

// Reset は、生成結果と要約プロンプトを破棄してIdleに戻します
func (f *ArtworkFlow) Reset() error {
	return f.lifecycle.Reset()
}

// Download は、生成された画像をタイムスタンプ付きのファイル名で返します
func (f *ArtworkFlow) Download() (domain.ImageDownload, error) {
	image, ok := f.State().ImageResult()
	if !ok {
		return domain.ImageDownload{}, domain.ErrNoResult
	}
	return domain.NewImageDownload(image, f.now()), nil
}

// newRequest は、入力からGenerationRequestを作成します
func (f *ArtworkFlow) newRequest(input ArtworkInput) (domain.GenerationRequest, error) {
	mode := input.Mode
	if mode == "" {
		mode = domain.ModeDescription
	}

	dimension := input.Dimension
	if dimension.AspectRatio == "" {
		dimension = domain.DefaultImageDimensionOption()
	}

	request, err := domain.NewGenerationRequest(domain.FlowArtwork, mode, input.Text)
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	return request.WithAspectRatio(dimension.AspectRatio), nil
}

// run は、必要に応じて要約したあと画像を生成します
func (f *ArtworkFlow) run(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
	prompt := request.RawInput

	if request.Mode == domain.ModeArticle {
		summary, err := f.summarize(ctx, request.RawInput)
		if err != nil {
			return nil, err
		}
		log.Printf("記事を要約しました (%s): %s", request.ID, summary)
		request = request.WithDerivedPrompt(summary)
		progress(request)
		prompt = summary
	}

	image, err := f.generateImage(ctx, prompt, request.AspectRatio)
	if err != nil {
		return nil, err
	}

	return domain.NewImageResult(image, request.AspectRatio, prompt), nil
}

func (f *ArtworkFlow) summarize(ctx context.Context, articleText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.requestTimeout)
	defer cancel()

	summary, err := f.gateway.Summarize(ctx, articleText)
	if err != nil {
		return "", classifyError(domain.FailureSummarization, err)
	}
	return summary, nil
}

func (f *ArtworkFlow) generateImage(ctx context.Context, prompt string, ratio domain.AspectRatio) (domain.GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.requestTimeout)
	defer cancel()

	image, err := f.gateway.GenerateImage(ctx, prompt, ratio)
	if err != nil {
		return domain.GeneratedImage{}, classifyError(domain.FailureImageGeneration, err)
	}
	return image, nil
}
