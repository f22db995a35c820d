package application

import (
	"context"
	"log"
	"sync"
	"time"

	"contentstudio/internal/domain"
	"contentstudio/internal/infrastructure/config"
)

// PostValidationMessage は、Postフローで入力が空の場合のメッセージです
const PostValidationMessage = "Please enter a topic or article text."

// PostInput は、Postフローへの送信内容です
type PostInput struct {
	Mode domain.Mode // 空の場合は topic
	Text string
}

// CopiedListener は、コピー済み表示が切り替わるたびに呼び出されます
type CopiedListener func(copied bool)

// PostFlow は、トピックまたは記事からLinkedIn投稿文を生成するフローです
type PostFlow struct {
	gateway          GenerationGateway
	lifecycle        *Lifecycle
	requestTimeout   time.Duration
	copiedResetDelay time.Duration

	copyMutex       sync.Mutex
	copied          bool
	copyGeneration  uint64
	copyTimer       *time.Timer
	copiedListeners []CopiedListener
}

// NewPostFlow は新しいPostFlowインスタンスを作成します
func NewPostFlow(gateway GenerationGateway, studioConfig *config.StudioConfig) *PostFlow {
	if studioConfig == nil {
		studioConfig = config.DefaultStudioConfig()
	}

	return &PostFlow{
		gateway:          gateway,
		lifecycle:        NewLifecycle(domain.FlowPost, PostValidationMessage),
		requestTimeout:   studioConfig.RequestTimeout,
		copiedResetDelay: studioConfig.CopiedResetDelay,
	}
}

// Submit は、投稿文の生成を完了まで実行して最終状態を返します
func (f *PostFlow) Submit(ctx context.Context, input PostInput) (domain.LifecycleState, error) {
	request, err := f.newRequest(input)
	if err != nil {
		return f.State(), err
	}

	state, err := f.lifecycle.Submit(ctx, request, f.run)
	if err == nil {
		f.clearCopied()
	}
	return state, err
}

// Start は、投稿文の生成をバックグラウンドで開始します
func (f *PostFlow) Start(ctx context.Context, input PostInput) (<-chan domain.LifecycleState, error) {
	request, err := f.newRequest(input)
	if err != nil {
		return nil, err
	}

	done, err := f.lifecycle.Start(ctx, request, f.run)
	if err != nil {
		return nil, err
	}
	f.clearCopied()
	return done, nil
}

// State は現在の状態を返します
func (f *PostFlow) State() domain.LifecycleState {
	return f.lifecycle.State()
}

// Watch は状態遷移のリスナーを登録します
func (f *PostFlow) Watch(listener StateListener) {
	f.lifecycle.Watch(listener)
}

// OnCopiedChange は、コピー済み表示の切り替えを通知するリスナーを登録します
func (f *PostFlow) OnCopiedChange(listener CopiedListener) {
	if listener == nil {
		return
	}
	f.copyMutex.Lock()
	defer f.copyMutex.Unlock()
	f.copiedListeners = append(f.copiedListeners, listener)
}

// Reset は、生成結果を破棄してIdleに戻します
func (f *PostFlow) Reset() error {
	if err := f.lifecycle.Reset(); err != nil {
		return err
	}
	f.clearCopied()
	return nil
}

// Copied は、直近のコピーから一定時間内かどうかを返します
func (f *PostFlow) Copied() bool {
	f.copyMutex.Lock()
	defer f.copyMutex.Unlock()
	return f.copied
}

// Copy は、生成された投稿文をクリップボードに書き込みます
// 書き込みの失敗はログに記録するのみで、ユーザーには通知しません
func (f *PostFlow) Copy(ctx context.Context, clipboard Clipboard) error {
	result, ok := f.State().TextResult()
	if !ok || result.Text == "" {
		return domain.ErrNoResult
	}

	if err := clipboard.WriteText(ctx, result.Text); err != nil {
		log.Printf("クリップボードへの書き込みに失敗しました: %v", err)
		return nil
	}

	f.markCopied()
	return nil
}

// newRequest は、入力からGenerationRequestを作成します
func (f *PostFlow) newRequest(input PostInput) (domain.GenerationRequest, error) {
	mode := input.Mode
	if mode == "" {
		mode = domain.ModeTopic
	}
	return domain.NewGenerationRequest(domain.FlowPost, mode, input.Text)
}

// run は、トピックまたは記事から投稿文を生成します
func (f *PostFlow) run(ctx context.Context, request domain.GenerationRequest, _ func(domain.GenerationRequest)) (domain.GenerationResult, error) {
	source, err := domain.NewPostSource(request.Mode, request.RawInput)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.requestTimeout)
	defer cancel()

	text, err := f.gateway.GeneratePost(ctx, source)
	if err != nil {
		return nil, classifyError(domain.FailurePostGeneration, err)
	}

	return domain.NewTextResult(text), nil
}

// markCopied は、コピー済み表示を有効にして一定時間後に戻すタイマーを設定します
func (f *PostFlow) markCopied() {
	f.copyMutex.Lock()
	f.copyGeneration++
	generation := f.copyGeneration
	if f.copyTimer != nil {
		f.copyTimer.Stop()
	}
	f.copyTimer = time.AfterFunc(f.copiedResetDelay, func() {
		f.expireCopied(generation)
	})
	changed := !f.copied
	f.copied = true
	listeners := f.copiedListenersLocked()
	f.copyMutex.Unlock()

	if changed {
		notifyCopied(listeners, true)
	}
}

// expireCopied は、より新しいコピーがない場合のみコピー済み表示を戻します
func (f *PostFlow) expireCopied(generation uint64) {
	f.copyMutex.Lock()
	if generation != f.copyGeneration || !f.copied {
		f.copyMutex.Unlock()
		return
	}
	f.copied = false
	f.copyTimer = nil
	listeners := f.copiedListenersLocked()
	f.copyMutex.Unlock()

	notifyCopied(listeners, false)
}

// clearCopied は、新しい送信やリセットの際にコピー済み表示を取り消します
func (f *PostFlow) clearCopied() {
	f.copyMutex.Lock()
	f.copyGeneration++
	if f.copyTimer != nil {
		f.copyTimer.Stop()
		f.copyTimer = nil
	}
	changed := f.copied
	f.copied = false
	listeners := f.copiedListenersLocked()
	f.copyMutex.Unlock()

	if changed {
		notifyCopied(listeners, false)
	}
}

func (f *PostFlow) copiedListenersLocked() []CopiedListener {
	listeners := make([]CopiedListener, len(f.copiedListeners))
	copy(listeners, f.copiedListeners)
	return listeners
}

func notifyCopied(listeners []CopiedListener, copied bool) {
	for _, listener := range listeners {
		listener(copied)
	}
}
