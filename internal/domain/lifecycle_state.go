package domain

import "fmt"

// Phase はフローのライフサイクル段階です
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

var phaseNames = []string{"idle", "loading", "success", "failed"}

// String はPhaseの名前を返します
func (p Phase) String() string {
	if int(p) >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// LifecycleState はフローの現在の状態です
// Resultは成功時のみ、ErrorMessageは失敗時のみ設定されます
type LifecycleState struct {
	Phase        Phase
	Request      *GenerationRequest
	Result       GenerationResult
	ErrorMessage string
}

// IdleState は初期状態を返します
func IdleState() LifecycleState {
	return LifecycleState{Phase: PhaseIdle}
}

// LoadingState は生成中の状態を返します
func LoadingState(request GenerationRequest) LifecycleState {
	return LifecycleState{Phase: PhaseLoading, Request: &request}
}

// SuccessState は成功状態を返します
func SuccessState(request GenerationRequest, result GenerationResult) LifecycleState {
	return LifecycleState{Phase: PhaseSuccess, Request: &request, Result: result}
}

// FailedState は失敗状態を返します
func FailedState(request GenerationRequest, message string) LifecycleState {
	return LifecycleState{Phase: PhaseFailed, Request: &request, ErrorMessage: message}
}

// IsLoading は生成中かどうかを返します
func (s LifecycleState) IsLoading() bool {
	return s.Phase == PhaseLoading
}

// IsTerminal は、成功または失敗で完了した状態かを返します
func (s LifecycleState) IsTerminal() bool {
	return s.Phase == PhaseSuccess || s.Phase == PhaseFailed
}

// ImageResult は画像の生成結果を返します
func (s LifecycleState) ImageResult() (ImageResult, bool) {
	if s.Phase != PhaseSuccess {
		return ImageResult{}, false
	}
	result, ok := s.Result.(ImageResult)
	return result, ok
}

// TextResult はテキストの生成結果を返します
func (s LifecycleState) TextResult() (TextResult, bool) {
	if s.Phase != PhaseSuccess {
		return TextResult{}, false
	}
	result, ok := s.Result.(TextResult)
	return result, ok
}

// DerivedPrompt は、要約によって得られたプロンプトを返します
func (s LifecycleState) DerivedPrompt() string {
	if s.Request == nil {
		return ""
	}
	return s.Request.DerivedPrompt
}

// String はLifecycleStateの文字列表現を返します
func (s LifecycleState) String() string {
	requestID := ""
	if s.Request != nil {
		requestID = s.Request.ID
	}
	return fmt.Sprintf("LifecycleState{Phase: %s, RequestID: %s, Error: %q}", s.Phase, requestID, s.ErrorMessage)
}
