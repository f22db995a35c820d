package discord

import (
	"sync"

	"contentstudio/internal/application"
	"contentstudio/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// trackedStudio は、Studioごとに最後に結果を表示したインタラクションを保持します
type trackedStudio struct {
	artwork *discordgo.Interaction
	post    *discordgo.Interaction
}

// StudioTracker は、フローの状態変化を表示中のDiscordメッセージへ反映します
type StudioTracker struct {
	session   *discordgo.Session
	responses *ResponseHandler

	mutex   sync.Mutex
	studios map[string]*trackedStudio
}

// NewStudioTracker は新しいStudioTrackerインスタンスを作成します
func NewStudioTracker(session *discordgo.Session, responses *ResponseHandler) *StudioTracker {
	return &StudioTracker{
		session:   session,
		responses: responses,
		studios:   make(map[string]*trackedStudio),
	}
}

// Track は、Studioのリスナーを初回のみ登録します
func (t *StudioTracker) Track(studio *application.Studio) {
	t.mutex.Lock()
	if _, exists := t.studios[studio.UserID]; exists {
		t.mutex.Unlock()
		return
	}
	t.studios[studio.UserID] = &trackedStudio{}
	t.mutex.Unlock()

	userID := studio.UserID
	studio.Artwork.Watch(func(state domain.LifecycleState) {
		t.onArtworkState(userID, state)
	})
	studio.Post.OnCopiedChange(func(copied bool) {
		t.onCopiedChange(userID, copied)
	})
}

// SetArtworkInteraction は、Artworkの進捗を表示するインタラクションを記録します
func (t *StudioTracker) SetArtworkInteraction(userID string, interaction *discordgo.Interaction) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if tracked, exists := t.studios[userID]; exists {
		tracked.artwork = interaction
	}
}

// SetPostInteraction は、Copyボタンを表示するインタラクションを記録します
func (t *StudioTracker) SetPostInteraction(userID string, interaction *discordgo.Interaction) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if tracked, exists := t.studios[userID]; exists {
		tracked.post = interaction
	}
}

func (t *StudioTracker) artworkInteraction(userID string) *discordgo.Interaction {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if tracked, exists := t.studios[userID]; exists {
		return tracked.artwork
	}
	return nil
}

func (t *StudioTracker) postInteraction(userID string) *discordgo.Interaction {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if tracked, exists := t.studios[userID]; exists {
		return tracked.post
	}
	return nil
}

// onArtworkState は、要約が完了した時点で「Based on prompt」を表示します
func (t *StudioTracker) onArtworkState(userID string, state domain.LifecycleState) {
	if !state.IsLoading() || state.DerivedPrompt() == "" {
		return
	}
	interaction := t.artworkInteraction(userID)
	if interaction == nil {
		return
	}
	t.responses.editResponse(t.session, interaction, t.responses.formatArtworkState(state), []discordgo.MessageComponent{}, nil)
}

// onCopiedChange は、Copyボタンの表示を切り替えます
func (t *StudioTracker) onCopiedChange(userID string, copied bool) {
	interaction := t.postInteraction(userID)
	if interaction == nil {
		return
	}
	t.responses.editComponents(t.session, interaction, postComponents(userID, copied))
}
