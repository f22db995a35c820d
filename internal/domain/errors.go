package domain

import (
	"errors"
	"fmt"
)

// ドメイン固有のエラー型を定義
var (
	// ErrSummarizationFailure は、記事の要約に失敗した場合のエラーです
	ErrSummarizationFailure = errors.New("記事の要約に失敗しました")

	// ErrImageGenerationFailure は、画像生成に失敗した場合のエラーです
	ErrImageGenerationFailure = errors.New("画像生成に失敗しました")

	// ErrPostGenerationFailure は、投稿文の生成に失敗した場合のエラーです
	ErrPostGenerationFailure = errors.New("投稿文の生成に失敗しました")

	// ErrRequestInFlight は、同じフローで生成処理が実行中の場合のエラーです
	ErrRequestInFlight = errors.New("生成処理が実行中です")

	// ErrNoResult は、ダウンロードやコピーの対象となる生成結果がない場合のエラーです
	ErrNoResult = errors.New("生成結果がありません")

	// ErrInvalidMode は、フローが対応していない入力モードの場合のエラーです
	ErrInvalidMode = errors.New("無効な入力モードです")

	// ErrInvalidAspectRatio は、カタログにないアスペクト比の場合のエラーです
	ErrInvalidAspectRatio = errors.New("無効なアスペクト比です")
)

// ValidationError は、ネットワーク呼び出しの前に検出された入力エラーです
type ValidationError struct {
	Message string
}

// NewValidationError は新しいValidationErrorを作成します
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FailureKind は、生成失敗がどのGateway操作で発生したかを表します
type FailureKind int

const (
	FailureSummarization FailureKind = iota
	FailureImageGeneration
	FailurePostGeneration
)

// failureData はFailureKindごとの表示データを保持します
type failureData struct {
	Sentinel    error
	UserMessage string
}

var failures = []failureData{
	{ErrSummarizationFailure, "Failed to summarize text for image generation."},
	{ErrImageGenerationFailure, "Failed to generate image. Please check the logs for details."},
	{ErrPostGenerationFailure, "Failed to generate post."},
}

// String はFailureKindの名前を返します
func (k FailureKind) String() string {
	switch k {
	case FailureSummarization:
		return "summarization"
	case FailureImageGeneration:
		return "image_generation"
	case FailurePostGeneration:
		return "post_generation"
	default:
		return "unknown"
	}
}

// GenerationError は、Gateway操作の失敗（プロバイダーのエラーまたは空の応答）を表します
type GenerationError struct {
	Kind  FailureKind
	Cause error
}

// NewGenerationError は新しいGenerationErrorを作成します
func NewGenerationError(kind FailureKind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Cause: cause}
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel().Error(), e.Cause)
}

// Unwrap は、原因となったエラーを返します
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is は、対応するセンチネルエラーとの比較を可能にします
func (e *GenerationError) Is(target error) bool {
	return target == e.sentinel()
}

// UserMessage は、ユーザーに表示するメッセージを返します
func (e *GenerationError) UserMessage() string {
	if int(e.Kind) >= 0 && int(e.Kind) < len(failures) {
		return failures[e.Kind].UserMessage
	}
	return UnknownErrorMessage
}

func (e *GenerationError) sentinel() error {
	if int(e.Kind) >= 0 && int(e.Kind) < len(failures) {
		return failures[e.Kind].Sentinel
	}
	return errors.New("不明な生成エラー")
}

// UnknownErrorMessage は、分類できないエラーの表示メッセージです
const UnknownErrorMessage = "An unknown error occurred."

// UserMessage は、任意のエラーをユーザー向けのメッセージに変換します
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var generationErr *GenerationError
	if errors.As(err, &generationErr) {
		return generationErr.UserMessage()
	}

	return UnknownErrorMessage
}
