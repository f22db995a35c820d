package application

import (
	"context"
	"errors"
	"sync"

	"contentstudio/internal/domain"
)

// imageCall は、GenerateImageの呼び出し内容です
type imageCall struct {
	Prompt      string
	AspectRatio domain.AspectRatio
}

// MockGenerationGateway は、テスト用のモックGatewayです
type MockGenerationGateway struct {
	mutex sync.Mutex

	summary      string
	summaryError error
	image        domain.GeneratedImage
	imageError   error
	post         string
	postError    error

	// release が設定されている場合、各呼び出しはcloseされるまで待機します
	release chan struct{}

	summarizeCalls []string
	imageCalls     []imageCall
	postCalls      []domain.PostSource
}

func newMockGateway() *MockGenerationGateway {
	return &MockGenerationGateway{
		summary: "abstract network of connected ideas",
		image:   domain.GeneratedImage{Data: []byte("image-bytes"), MIMEType: "image/jpeg"},
		post:    "Remote work is here to stay. #RemoteWork #Leadership #Productivity",
	}
}

func (m *MockGenerationGateway) Summarize(ctx context.Context, articleText string) (string, error) {
	m.mutex.Lock()
	m.summarizeCalls = append(m.summarizeCalls, articleText)
	summary, err := m.summary, m.summaryError
	m.mutex.Unlock()

	if err := m.wait(ctx); err != nil {
		return "", err
	}
	return summary, err
}

func (m *MockGenerationGateway) GenerateImage(ctx context.Context, prompt string, aspectRatio domain.AspectRatio) (domain.GeneratedImage, error) {
	m.mutex.Lock()
	m.imageCalls = append(m.imageCalls, imageCall{Prompt: prompt, AspectRatio: aspectRatio})
	image, err := m.image, m.imageError
	m.mutex.Unlock()

	if err := m.wait(ctx); err != nil {
		return domain.GeneratedImage{}, err
	}
	return image, err
}

func (m *MockGenerationGateway) GeneratePost(ctx context.Context, source domain.PostSource) (string, error) {
	m.mutex.Lock()
	m.postCalls = append(m.postCalls, source)
	post, err := m.post, m.postError
	m.mutex.Unlock()

	if err := m.wait(ctx); err != nil {
		return "", err
	}
	return post, err
}

func (m *MockGenerationGateway) wait(ctx context.Context) error {
	if m.release == nil {
		return nil
	}
	select {
	case <-m.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockGenerationGateway) SummarizeCalls() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string(nil), m.summarizeCalls...)
}

func (m *MockGenerationGateway) ImageCalls() []imageCall {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]imageCall(nil), m.imageCalls...)
}

func (m *MockGenerationGateway) PostCalls() []domain.PostSource {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]domain.PostSource(nil), m.postCalls...)
}

// MockClipboard は、テスト用のモッククリップボードです
type MockClipboard struct {
	mutex   sync.Mutex
	written []string
	err     error
}

func (m *MockClipboard) WriteText(ctx context.Context, text string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, text)
	return nil
}

func (m *MockClipboard) Written() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string(nil), m.written...)
}

// MockStudioRepository は、テスト用のモックリポジトリです
type MockStudioRepository struct {
	mutex    sync.Mutex
	studios  map[string]*Studio
	getError error
	saves    int
}

func newMockStudioRepository() *MockStudioRepository {
	return &MockStudioRepository{studios: make(map[string]*Studio)}
}

func (m *MockStudioRepository) Get(ctx context.Context, userID string) (*Studio, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.getError != nil {
		return nil, false, m.getError
	}
	studio, ok := m.studios[userID]
	return studio, ok, nil
}

func (m *MockStudioRepository) Save(ctx context.Context, studio *Studio) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if studio == nil {
		return errors.New("studio is nil")
	}
	m.studios[studio.UserID] = studio
	m.saves++
	return nil
}

// stateRecorder は、状態遷移を記録するリスナーです
type stateRecorder struct {
	mutex  sync.Mutex
	states []domain.LifecycleState
}

func (r *stateRecorder) Listen(state domain.LifecycleState) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) Phases() []domain.Phase {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	phases := make([]domain.Phase, 0, len(r.states))
	for _, state := range r.states {
		phases = append(phases, state.Phase)
	}
	return phases
}

func (r *stateRecorder) States() []domain.LifecycleState {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]domain.LifecycleState(nil), r.states...)
}
