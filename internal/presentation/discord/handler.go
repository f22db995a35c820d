package discord

import (
	"context"

	"contentstudio/internal/application"

	"github.com/bwmarrin/discordgo"
)

// DiscordHandler は、Discordのイベントハンドラです
type DiscordHandler struct {
	session             *discordgo.Session
	slashCommandHandler *SlashCommandHandler
	componentHandler    *ComponentHandler
}

// NewDiscordHandler は新しいDiscordHandlerインスタンスを作成します
// guildID が空の場合、スラッシュコマンドはグローバルに登録されます
func NewDiscordHandler(
	ctx context.Context,
	session *discordgo.Session,
	studioService *application.StudioService,
	guildID string,
) *DiscordHandler {
	// ResponseHandlerを作成
	responseHandler := NewResponseHandler()
	tracker := NewStudioTracker(session, responseHandler)

	return &DiscordHandler{
		session:             session,
		slashCommandHandler: NewSlashCommandHandler(ctx, session, studioService, tracker, responseHandler, guildID),
		componentHandler:    NewComponentHandler(ctx, studioService, tracker, responseHandler),
	}
}

// SetupHandlers は、Discordのイベントハンドラを設定します
func (h *DiscordHandler) SetupHandlers() {
	h.session.AddHandler(h.handleInteractionCreate)
}

// SetupSlashCommands は、スラッシュコマンドを登録します
func (h *DiscordHandler) SetupSlashCommands() error {
	return h.slashCommandHandler.SetupSlashCommands()
}

// handleInteractionCreate は、インタラクションの種類に応じて処理を振り分けます
func (h *DiscordHandler) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.slashCommandHandler.HandleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.componentHandler.HandleComponent(s, i)
	}
}
