package domain

import (
	"encoding/base64"
	"fmt"
	"time"
)

// ResultKind は生成結果の種類です
type ResultKind string

const (
	ResultImage ResultKind = "image"
	ResultText  ResultKind = "text"
)

// GenerationResult は、画像またはテキストの生成結果を表します
type GenerationResult interface {
	Kind() ResultKind
	isGenerationResult()
}

// GeneratedImage は、Gatewayが返す画像データです
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// ImageResult は画像の生成結果です
type ImageResult struct {
	Data        []byte
	MIMEType    string
	AspectRatio AspectRatio
	Prompt      string // 画像生成に使用したプロンプト（安全指示を除く）
	GeneratedAt time.Time
}

// NewImageResult は新しいImageResultを作成します
func NewImageResult(image GeneratedImage, ratio AspectRatio, prompt string) ImageResult {
	return ImageResult{
		Data:        image.Data,
		MIMEType:    image.MIMEType,
		AspectRatio: ratio,
		Prompt:      prompt,
		GeneratedAt: time.Now(),
	}
}

// Kind は結果の種類を返します
func (ImageResult) Kind() ResultKind { return ResultImage }

func (ImageResult) isGenerationResult() {}

// DataURL は、埋め込み可能なdata URLを返します
func (r ImageResult) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", r.MIMEType, base64.StdEncoding.EncodeToString(r.Data))
}

// Extension は、MIMEタイプに対応するファイル拡張子を返します
func (r ImageResult) Extension() string {
	switch r.MIMEType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}

// TextResult はテキストの生成結果です
type TextResult struct {
	Text        string
	GeneratedAt time.Time
}

// NewTextResult は新しいTextResultを作成します
func NewTextResult(text string) TextResult {
	return TextResult{
		Text:        text,
		GeneratedAt: time.Now(),
	}
}

// Kind は結果の種類を返します
func (TextResult) Kind() ResultKind { return ResultText }

func (TextResult) isGenerationResult() {}

// ImageDownload は、クライアント側で保存する画像ファイルです
type ImageDownload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// NewImageDownload は、タイムスタンプ付きのファイル名でImageDownloadを作成します
func NewImageDownload(result ImageResult, now time.Time) ImageDownload {
	return ImageDownload{
		Filename: fmt.Sprintf("linkedin-artwork-%d.%s", now.UnixMilli(), result.Extension()),
		MIMEType: result.MIMEType,
		Data:     result.Data,
	}
}
