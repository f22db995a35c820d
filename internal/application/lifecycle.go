package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"contentstudio/internal/domain"
)

// RunFunc は、1回の送信で実行されるGateway呼び出しの手順です
// progress は、要約プロンプトなど実行途中で確定したリクエスト情報を記録します
type RunFunc func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error)

// StateListener は、状態遷移のたびに呼び出されます
type StateListener func(state domain.LifecycleState)

// Lifecycle は、検証→読み込み→Gateway呼び出し→成功/失敗の状態遷移を管理します
// 状態を書き換えるのはLifecycle自身のみで、同時に実行される送信は1件に制限されます
type Lifecycle struct {
	flow              domain.FlowKind
	validationMessage string

	mutex     sync.RWMutex
	state     domain.LifecycleState
	listeners []StateListener
}

// NewLifecycle は新しいLifecycleインスタンスを作成します
func NewLifecycle(flow domain.FlowKind, validationMessage string) *Lifecycle {
	return &Lifecycle{
		flow:              flow,
		validationMessage: validationMessage,
		state:             domain.IdleState(),
	}
}

// State は現在の状態のスナップショットを返します
func (l *Lifecycle) State() domain.LifecycleState {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.state
}

// Watch は、状態遷移を通知するリスナーを登録します
func (l *Lifecycle) Watch(listener StateListener) {
	if listener == nil {
		return
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.listeners = append(l.listeners, listener)
}

// Submit は、送信を受け付けて完了まで実行し、最終状態を返します
// 返されるエラーは検証エラーまたは ErrRequestInFlight のみで、生成の失敗は状態として保持されます
func (l *Lifecycle) Submit(ctx context.Context, request domain.GenerationRequest, run RunFunc) (domain.LifecycleState, error) {
	if err := l.begin(request); err != nil {
		return l.State(), err
	}
	return l.execute(ctx, request, run), nil
}

// Start は、送信を受け付けたあと別のgoroutineで実行し、最終状態をチャネルで返します
func (l *Lifecycle) Start(ctx context.Context, request domain.GenerationRequest, run RunFunc) (<-chan domain.LifecycleState, error) {
	if err := l.begin(request); err != nil {
		return nil, err
	}

	done := make(chan domain.LifecycleState, 1)
	go func() {
		defer close(done)
		done <- l.execute(ctx, request, run)
	}()
	return done, nil
}

// Reset は、成功・失敗・初期状態からIdleに戻します
func (l *Lifecycle) Reset() error {
	l.mutex.Lock()
	if l.state.IsLoading() {
		l.mutex.Unlock()
		return domain.ErrRequestInFlight
	}
	l.state = domain.IdleState()
	listeners := l.listenersLocked()
	l.mutex.Unlock()

	log.Printf("%sフローをリセットしました", l.flow)
	notify(listeners, domain.IdleState())
	return nil
}

// begin は、入力を検証してLoading状態に遷移します
func (l *Lifecycle) begin(request domain.GenerationRequest) error {
	if request.IsBlank() {
		log.Printf("%sフロー: 入力が空のため送信を拒否しました", l.flow)
		return domain.NewValidationError(l.validationMessage)
	}

	l.mutex.Lock()
	if l.state.IsLoading() {
		l.mutex.Unlock()
		log.Printf("%sフロー: 生成中のため送信を拒否しました (実行中: %s)", l.flow, l.state.Request.ID)
		return domain.ErrRequestInFlight
	}
	state := domain.LoadingState(request)
	l.state = state
	listeners := l.listenersLocked()
	l.mutex.Unlock()

	log.Printf("%sフロー: 生成を開始します: %s", l.flow, request.String())
	notify(listeners, state)
	return nil
}

// execute は、手順を実行して必ずLoading以外の状態で終了します
func (l *Lifecycle) execute(ctx context.Context, request domain.GenerationRequest, run RunFunc) (final domain.LifecycleState) {
	current := request

	defer func() {
		if r := recover(); r != nil {
			log.Printf("%sフロー: 生成中にpanicが発生しました (%s): %v", l.flow, request.ID, r)
			final = l.finish(request.ID, domain.FailedState(current, domain.UnknownErrorMessage))
		}
	}()

	progress := func(updated domain.GenerationRequest) {
		current = updated
		l.transition(request.ID, domain.LoadingState(updated))
	}

	result, err := run(ctx, request, progress)
	if err == nil && result == nil {
		err = errors.New("生成結果が空です")
	}
	if err != nil {
		log.Printf("%sフロー: 生成に失敗しました (%s): %v", l.flow, request.ID, err)
		return l.finish(request.ID, domain.FailedState(current, domain.UserMessage(err)))
	}

	log.Printf("%sフロー: 生成が完了しました (%s)", l.flow, request.ID)
	return l.finish(request.ID, domain.SuccessState(current, result))
}

// transition は、実行中のリクエストが現在のものである場合のみ状態を更新します
func (l *Lifecycle) transition(requestID string, next domain.LifecycleState) bool {
	l.mutex.Lock()
	if !l.ownsLocked(requestID) {
		l.mutex.Unlock()
		return false
	}
	l.state = next
	listeners := l.listenersLocked()
	l.mutex.Unlock()

	notify(listeners, next)
	return true
}

// finish は、終了状態へ遷移して最終状態を返します
func (l *Lifecycle) finish(requestID string, next domain.LifecycleState) domain.LifecycleState {
	if l.transition(requestID, next) {
		return next
	}
	return l.State()
}

func (l *Lifecycle) ownsLocked(requestID string) bool {
	return l.state.IsLoading() && l.state.Request != nil && l.state.Request.ID == requestID
}

func (l *Lifecycle) listenersLocked() []StateListener {
	listeners := make([]StateListener, len(l.listeners))
	copy(listeners, l.listeners)
	return listeners
}

func notify(listeners []StateListener, state domain.LifecycleState) {
	for _, listener := range listeners {
		listener(state)
	}
}

// String はLifecycleの文字列表現を返します
func (l *Lifecycle) String() string {
	return fmt.Sprintf("Lifecycle{Flow: %s, State: %s}", l.flow, l.State())
}
