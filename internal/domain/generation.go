package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlowKind は生成フローの種類です
type FlowKind string

const (
	FlowArtwork FlowKind = "artwork"
	FlowPost    FlowKind = "post"
)

// Mode はユーザー入力の解釈方法です
type Mode string

const (
	// ModeDescription は入力をそのまま画像プロンプトとして使用します
	ModeDescription Mode = "description"
	// ModeTopic は入力を投稿のトピックとして使用します
	ModeTopic Mode = "topic"
	// ModeArticle は入力を記事本文として使用します
	ModeArticle Mode = "article"
)

// ArtworkModes はArtworkフローで選択できるモードを返します
func ArtworkModes() []Mode {
	return []Mode{ModeDescription, ModeArticle}
}

// PostModes はPostフローで選択できるモードを返します
func PostModes() []Mode {
	return []Mode{ModeTopic, ModeArticle}
}

// Supports は、フローがモードに対応しているかを判定します
func (f FlowKind) Supports(mode Mode) bool {
	var modes []Mode
	switch f {
	case FlowArtwork:
		modes = ArtworkModes()
	case FlowPost:
		modes = PostModes()
	}
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

// GenerationRequest は、1回の送信操作を表す不変の値オブジェクトです
type GenerationRequest struct {
	ID            string
	Flow          FlowKind
	Mode          Mode
	RawInput      string
	AspectRatio   AspectRatio // Artworkフローのみ
	DerivedPrompt string      // 要約ステップを実行した場合のみ設定
	CreatedAt     time.Time
}

// NewGenerationRequest は新しいGenerationRequestを作成します
func NewGenerationRequest(flow FlowKind, mode Mode, rawInput string) (GenerationRequest, error) {
	if !flow.Supports(mode) {
		return GenerationRequest{}, fmt.Errorf("%w: flow=%s, mode=%s", ErrInvalidMode, flow, mode)
	}

	return GenerationRequest{
		ID:        uuid.NewString(),
		Flow:      flow,
		Mode:      mode,
		RawInput:  rawInput,
		CreatedAt: time.Now(),
	}, nil
}

// WithAspectRatio は、アスペクト比を設定したコピーを返します
func (r GenerationRequest) WithAspectRatio(ratio AspectRatio) GenerationRequest {
	r.AspectRatio = ratio
	return r
}

// WithDerivedPrompt は、要約結果を設定したコピーを返します
func (r GenerationRequest) WithDerivedPrompt(prompt string) GenerationRequest {
	r.DerivedPrompt = prompt
	return r
}

// IsBlank は、入力が空または空白のみかを判定します
func (r GenerationRequest) IsBlank() bool {
	return strings.TrimSpace(r.RawInput) == ""
}

// HasDerivedPrompt は、要約ステップが実行済みかを判定します
func (r GenerationRequest) HasDerivedPrompt() bool {
	return r.DerivedPrompt != ""
}

// String はGenerationRequestの文字列表現を返します
func (r GenerationRequest) String() string {
	return fmt.Sprintf("GenerationRequest{ID: %s, Flow: %s, Mode: %s, Input: %d文字, AspectRatio: %s}",
		r.ID, r.Flow, r.Mode, len(r.RawInput), r.AspectRatio)
}

// PostSource は投稿文生成の入力です。トピックと記事はどちらか一方のみが設定されます
type PostSource struct {
	topic   string
	article string
}

// NewPostSource は、モードに応じてトピックまたは記事のどちらか一方を設定します
func NewPostSource(mode Mode, input string) (PostSource, error) {
	switch mode {
	case ModeTopic:
		return PostSource{topic: input}, nil
	case ModeArticle:
		return PostSource{article: input}, nil
	default:
		return PostSource{}, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// Topic はトピックを返します
func (s PostSource) Topic() string {
	return s.topic
}

// Article は記事本文を返します
func (s PostSource) Article() string {
	return s.article
}

// HasArticle は、記事本文が設定されているかを判定します
func (s PostSource) HasArticle() bool {
	return s.article != ""
}
