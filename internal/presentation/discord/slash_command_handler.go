package discord

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"contentstudio/internal/application"
	"contentstudio/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// スラッシュコマンド名
const (
	commandArtwork    = "artwork"
	commandPost       = "post"
	commandDimensions = "dimensions"
)

// Discordの選択肢名の最大文字数
const choiceNameLimit = 100

// SlashCommandHandler は、Discordのスラッシュコマンドを処理するハンドラーです
type SlashCommandHandler struct {
	ctx           context.Context
	session       *discordgo.Session
	studioService *application.StudioService
	tracker       *StudioTracker
	responses     *ResponseHandler
	guildID       string
}

// NewSlashCommandHandler は新しいSlashCommandHandlerインスタンスを作成します
func NewSlashCommandHandler(
	ctx context.Context,
	session *discordgo.Session,
	studioService *application.StudioService,
	tracker *StudioTracker,
	responses *ResponseHandler,
	guildID string,
) *SlashCommandHandler {
	return &SlashCommandHandler{
		ctx:           ctx,
		session:       session,
		studioService: studioService,
		tracker:       tracker,
		responses:     responses,
		guildID:       guildID,
	}
}

// buildCommands は、登録するスラッシュコマンドの定義を作成します
func buildCommands(options []domain.ImageDimensionOption) []*discordgo.ApplicationCommand {
	dimensionChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(options))
	for index, option := range options {
		name := option.DisplayName()
		if len(name) > choiceNameLimit {
			name = option.Label
		}
		// 16:9 が2項目あるため、値にはカタログの位置を使用
		dimensionChoices = append(dimensionChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: strconv.Itoa(index),
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        commandArtwork,
			Description: "Generate a copyright-safe LinkedIn image from a description or an article",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "input",
					Description: "Image description, or the article text in article mode",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "How to interpret the input (default: description)",
					Choices:     modeChoices(domain.ArtworkModes()),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "dimension",
					Description: "LinkedIn image size (default: square)",
					Choices:     dimensionChoices,
				},
			},
		},
		{
			Name:        commandPost,
			Description: "Write a LinkedIn post from a topic or an article",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "input",
					Description: "Post topic, or the article text in article mode",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "How to interpret the input (default: topic)",
					Choices:     modeChoices(domain.PostModes()),
				},
			},
		},
		{
			Name:        commandDimensions,
			Description: "List the LinkedIn image sizes available for /artwork",
		},
	}
}

// modeChoices は、入力モードの選択肢を作成します
func modeChoices(modes []domain.Mode) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(modes))
	for _, mode := range modes {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(mode),
			Value: string(mode),
		})
	}
	return choices
}

// optionMap は、コマンドのオプションを名前で引けるようにします
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(options))
	for _, option := range options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			values[option.Name] = option.StringValue()
		}
	}
	return values
}

// parseArtworkInput は、/artworkのオプションをArtworkInputに変換します
func parseArtworkInput(options []*discordgo.ApplicationCommandInteractionDataOption) (application.ArtworkInput, error) {
	values := optionMap(options)
	input := application.ArtworkInput{
		Mode:      domain.Mode(values["mode"]),
		Text:      values["input"],
		Dimension: domain.DefaultImageDimensionOption(),
	}

	if raw, ok := values["dimension"]; ok && raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			return application.ArtworkInput{}, fmt.Errorf("%w: %s", domain.ErrInvalidAspectRatio, raw)
		}
		dimension, found := domain.ImageDimensionOptionAt(index)
		if !found {
			return application.ArtworkInput{}, fmt.Errorf("%w: %s", domain.ErrInvalidAspectRatio, raw)
		}
		input.Dimension = dimension
	}

	return input, nil
}

// parsePostInput は、/postのオプションをPostInputに変換します
func parsePostInput(options []*discordgo.ApplicationCommandInteractionDataOption) application.PostInput {
	values := optionMap(options)
	return application.PostInput{
		Mode: domain.Mode(values["mode"]),
		Text: values["input"],
	}
}

// SetupSlashCommands は、スラッシュコマンドを登録します
func (h *SlashCommandHandler) SetupSlashCommands() error {
	// BotのユーザーIDを取得
	user, err := h.session.User("@me")
	if err != nil {
		return fmt.Errorf("Botユーザー情報の取得に失敗: %w", err)
	}

	// ギルドIDが空の場合はグローバルコマンドとして登録
	for _, command := range buildCommands(h.studioService.DimensionOptions()) {
		if _, err := h.session.ApplicationCommandCreate(user.ID, h.guildID, command); err != nil {
			log.Printf("スラッシュコマンド %s の登録に失敗: %v", command.Name, err)
			return err
		}
		log.Printf("スラッシュコマンド %s を登録しました", command.Name)
	}

	return nil
}

// HandleCommand は、スラッシュコマンドのインタラクションを処理します
func (h *SlashCommandHandler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case commandArtwork:
		h.handleArtworkCommand(s, i)
	case commandPost:
		h.handlePostCommand(s, i)
	case commandDimensions:
		h.responses.respond(s, i.Interaction, h.responses.formatDimensions(h.studioService.DimensionOptions()), true)
	default:
		log.Printf("未知のスラッシュコマンド: %s", i.ApplicationCommandData().Name)
	}
}

// openStudio は、コマンドを実行したユーザーのStudioを取得します
func (h *SlashCommandHandler) openStudio(s *discordgo.Session, i *discordgo.InteractionCreate) (*application.Studio, bool) {
	studio, err := h.studioService.Open(h.ctx, interactionUserID(i))
	if err != nil {
		log.Printf("Studioの取得に失敗: %v", err)
		h.responses.respondError(s, i.Interaction, err)
		return nil, false
	}
	h.tracker.Track(studio)
	return studio, true
}

// handleArtworkCommand は、/artworkコマンドを処理します
func (h *SlashCommandHandler) handleArtworkCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	input, err := parseArtworkInput(i.ApplicationCommandData().Options)
	if err != nil {
		h.responses.respondError(s, i.Interaction, err)
		return
	}

	studio, ok := h.openStudio(s, i)
	if !ok {
		return
	}

	// 要約完了時の表示更新が新しいメッセージに届くよう、開始前に記録する
	previous := h.tracker.artworkInteraction(studio.UserID)
	h.tracker.SetArtworkInteraction(studio.UserID, i.Interaction)

	done, err := studio.Artwork.Start(h.ctx, input)
	if err != nil {
		h.tracker.SetArtworkInteraction(studio.UserID, previous)
		h.responses.respondError(s, i.Interaction, err)
		return
	}

	if err := h.responses.deferResponse(s, i.Interaction); err != nil {
		log.Printf("%v", err)
	}

	go func() {
		final := <-done
		var files []*discordgo.File
		components := []discordgo.MessageComponent{}
		if final.Phase == domain.PhaseSuccess {
			if download, err := studio.Artwork.Download(); err == nil {
				files = append(files, h.responses.imageFile(download))
				components = artworkComponents(studio.UserID)
			}
		}
		h.responses.editResponse(s, i.Interaction, h.responses.formatArtworkState(final), components, files)
	}()
}

// handlePostCommand は、/postコマンドを処理します
func (h *SlashCommandHandler) handlePostCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	input := parsePostInput(i.ApplicationCommandData().Options)

	studio, ok := h.openStudio(s, i)
	if !ok {
		return
	}

	done, err := studio.Post.Start(h.ctx, input)
	if err != nil {
		h.responses.respondError(s, i.Interaction, err)
		return
	}

	if err := h.responses.deferResponse(s, i.Interaction); err != nil {
		log.Printf("%v", err)
	}

	go func() {
		final := <-done
		chunks := h.responses.formatPostState(final)
		components := []discordgo.MessageComponent{}
		if final.Phase == domain.PhaseSuccess {
			components = postComponents(studio.UserID, false)
			h.tracker.SetPostInteraction(studio.UserID, i.Interaction)
		}
		h.responses.editResponse(s, i.Interaction, chunks[0], components, nil)
		h.responses.sendFollowups(s, i.Interaction, chunks[1:], false)
	}()
}

// interactionUserID は、インタラクションを実行したユーザーのIDを返します
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
