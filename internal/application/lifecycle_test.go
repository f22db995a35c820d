package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio/internal/domain"
)

func newTestRequest(t *testing.T, input string) domain.GenerationRequest {
	t.Helper()
	request, err := domain.NewGenerationRequest(domain.FlowPost, domain.ModeTopic, input)
	require.NoError(t, err)
	return request
}

func textRun(text string) RunFunc {
	return func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		return domain.NewTextResult(text), nil
	}
}

func TestLifecycle_InitialStateIsIdle(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)

	state := lifecycle.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Nil(t, state.Request)
	assert.Nil(t, state.Result)
	assert.Empty(t, state.ErrorMessage)
}

func TestLifecycle_SubmitSuccess(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	recorder := &stateRecorder{}
	lifecycle.Watch(recorder.Listen)

	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, "AI in hiring"), textRun("post body"))
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseSuccess, state.Phase)
	result, ok := state.TextResult()
	require.True(t, ok)
	assert.Equal(t, "post body", result.Text)
	assert.Empty(t, state.ErrorMessage)
	assert.Equal(t, []domain.Phase{domain.PhaseLoading, domain.PhaseSuccess}, recorder.Phases())
}

func TestLifecycle_BlankInputIsRejectedWithoutTransition(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "空文字", input: ""},
		{name: "空白のみ", input: "   "},
		{name: "改行とタブ", input: "\n\t \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
			recorder := &stateRecorder{}
			lifecycle.Watch(recorder.Listen)
			called := false
			run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
				called = true
				return domain.NewTextResult("x"), nil
			}

			state, err := lifecycle.Submit(context.Background(), newTestRequest(t, tt.input), run)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, PostValidationMessage, validationErr.Message)
			assert.False(t, called)
			assert.Equal(t, domain.PhaseIdle, state.Phase)
			assert.Empty(t, recorder.Phases())
		})
	}
}

func TestLifecycle_BlankInputKeepsPreviousResult(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	_, err := lifecycle.Submit(context.Background(), newTestRequest(t, "first"), textRun("first post"))
	require.NoError(t, err)

	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, " "), textRun("second post"))
	require.Error(t, err)

	result, ok := state.TextResult()
	require.True(t, ok)
	assert.Equal(t, "first post", result.Text)
}

func TestLifecycle_FailureStoresUserMessage(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		return nil, domain.NewGenerationError(domain.FailurePostGeneration, errors.New("quota exceeded"))
	}

	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), run)
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseFailed, state.Phase)
	assert.Equal(t, "Failed to generate post.", state.ErrorMessage)
	assert.Nil(t, state.Result)
}

func TestLifecycle_UnclassifiedFailureUsesUnknownMessage(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		return nil, errors.New("boom")
	}

	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), run)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, state.Phase)
	assert.Equal(t, domain.UnknownErrorMessage, state.ErrorMessage)
}

func TestLifecycle_NilResultIsFailure(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		return nil, nil
	}

	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), run)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, state.Phase)
}

func TestLifecycle_PanicEndsInFailedState(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		panic("unexpected")
	}

	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), run)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, state.Phase)
	assert.Equal(t, domain.UnknownErrorMessage, state.ErrorMessage)
	assert.False(t, lifecycle.State().IsLoading())
}

func TestLifecycle_ProgressUpdatesLoadingRequest(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowArtwork, ArtworkValidationMessage)
	recorder := &stateRecorder{}
	lifecycle.Watch(recorder.Listen)

	request, err := domain.NewGenerationRequest(domain.FlowArtwork, domain.ModeArticle, "long article")
	require.NoError(t, err)

	run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		progress(request.WithDerivedPrompt("core theme"))
		return domain.NewImageResult(domain.GeneratedImage{Data: []byte{1}, MIMEType: "image/png"}, domain.AspectRatioSquare, "core theme"), nil
	}

	state, err := lifecycle.Submit(context.Background(), request, run)
	require.NoError(t, err)

	states := recorder.States()
	require.Len(t, states, 3)
	assert.Equal(t, domain.PhaseLoading, states[1].Phase)
	assert.Equal(t, "core theme", states[1].DerivedPrompt())
	assert.Equal(t, "core theme", state.DerivedPrompt())
}

func TestLifecycle_RejectsSubmitWhileLoading(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	release := make(chan struct{})
	run := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		<-release
		return domain.NewTextResult("first"), nil
	}

	done, err := lifecycle.Start(context.Background(), newTestRequest(t, "first"), run)
	require.NoError(t, err)
	assert.True(t, lifecycle.State().IsLoading())

	_, err = lifecycle.Submit(context.Background(), newTestRequest(t, "second"), textRun("second"))
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	assert.ErrorIs(t, lifecycle.Reset(), domain.ErrRequestInFlight)

	close(release)
	select {
	case final := <-done:
		result, ok := final.TextResult()
		require.True(t, ok)
		assert.Equal(t, "first", result.Text)
	case <-time.After(time.Second):
		t.Fatal("生成が完了しませんでした")
	}
}

func TestLifecycle_ResetReturnsToIdle(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	_, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), textRun("post"))
	require.NoError(t, err)

	require.NoError(t, lifecycle.Reset())

	state := lifecycle.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Nil(t, state.Result)
	assert.Nil(t, state.Request)
}

func TestLifecycle_ResubmitAfterFailureClearsError(t *testing.T) {
	lifecycle := NewLifecycle(domain.FlowPost, PostValidationMessage)
	failing := func(ctx context.Context, request domain.GenerationRequest, progress func(domain.GenerationRequest)) (domain.GenerationResult, error) {
		return nil, domain.NewGenerationError(domain.FailurePostGeneration, nil)
	}
	_, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), failing)
	require.NoError(t, err)

	recorder := &stateRecorder{}
	lifecycle.Watch(recorder.Listen)
	state, err := lifecycle.Submit(context.Background(), newTestRequest(t, "topic"), textRun("post"))
	require.NoError(t, err)

	states := recorder.States()
	require.NotEmpty(t, states)
	assert.Empty(t, states[0].ErrorMessage)
	assert.Nil(t, states[0].Result)
	assert.Equal(t, domain.PhaseSuccess, state.Phase)
	assert.Empty(t, state.ErrorMessage)
}
