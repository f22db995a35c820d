package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"contentstudio/internal/application"
	"contentstudio/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// ボタンのアクション名
const (
	actionDownload = "download"
	actionReset    = "reset"
	actionCopy     = "copy"
)

// errForeignStudio は、他のユーザーのStudioのボタンが押された場合のエラーです
var errForeignStudio = errors.New("他のユーザーのStudioです")

// customID は、ボタンのカスタムIDを作成します（flow:action:ownerID）
func customID(flow domain.FlowKind, action, ownerID string) string {
	return fmt.Sprintf("%s:%s:%s", flow, action, ownerID)
}

// parseCustomID は、ボタンのカスタムIDを分解します
func parseCustomID(id string) (flow domain.FlowKind, action, ownerID string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}

	flow = domain.FlowKind(parts[0])
	if flow != domain.FlowArtwork && flow != domain.FlowPost {
		return "", "", "", false
	}
	return flow, parts[1], parts[2], true
}

// artworkComponents は、生成画像に付けるDownload/Start Overボタンを作成します
func artworkComponents(ownerID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Download",
					Style:    discordgo.PrimaryButton,
					CustomID: customID(domain.FlowArtwork, actionDownload, ownerID),
				},
				discordgo.Button{
					Label:    "Start Over",
					Style:    discordgo.SecondaryButton,
					CustomID: customID(domain.FlowArtwork, actionReset, ownerID),
				},
			},
		},
	}
}

// postComponents は、投稿文に付けるCopy/Start Overボタンを作成します
func postComponents(ownerID string, copied bool) []discordgo.MessageComponent {
	copyLabel := "Copy"
	copyStyle := discordgo.PrimaryButton
	if copied {
		copyLabel = "Copied!"
		copyStyle = discordgo.SuccessButton
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    copyLabel,
					Style:    copyStyle,
					CustomID: customID(domain.FlowPost, actionCopy, ownerID),
				},
				discordgo.Button{
					Label:    "Start Over",
					Style:    discordgo.SecondaryButton,
					CustomID: customID(domain.FlowPost, actionReset, ownerID),
				},
			},
		},
	}
}

// ComponentHandler は、生成結果に付けたボタンを処理するハンドラーです
type ComponentHandler struct {
	ctx           context.Context
	studioService *application.StudioService
	tracker       *StudioTracker
	responses     *ResponseHandler
}

// NewComponentHandler は新しいComponentHandlerインスタンスを作成します
func NewComponentHandler(
	ctx context.Context,
	studioService *application.StudioService,
	tracker *StudioTracker,
	responses *ResponseHandler,
) *ComponentHandler {
	return &ComponentHandler{
		ctx:           ctx,
		studioService: studioService,
		tracker:       tracker,
		responses:     responses,
	}
}

// HandleComponent は、ボタンのインタラクションを処理します
func (h *ComponentHandler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	id := i.MessageComponentData().CustomID
	flow, action, ownerID, ok := parseCustomID(id)
	if !ok {
		log.Printf("未知のボタン: %s", id)
		return
	}

	userID := interactionUserID(i)
	if userID != ownerID {
		h.responses.respondError(s, i.Interaction, errForeignStudio)
		return
	}

	studio, found, err := h.studioService.Find(h.ctx, userID)
	if err != nil || !found {
		if err != nil {
			log.Printf("Studioの取得に失敗: %v", err)
		}
		h.responses.respondError(s, i.Interaction, domain.ErrNoResult)
		return
	}

	switch {
	case flow == domain.FlowArtwork && action == actionDownload:
		h.handleDownload(s, i, studio)
	case flow == domain.FlowArtwork && action == actionReset:
		h.handleArtworkReset(s, i, studio)
	case flow == domain.FlowPost && action == actionCopy:
		h.handleCopy(s, i, studio)
	case flow == domain.FlowPost && action == actionReset:
		h.handlePostReset(s, i, studio)
	default:
		log.Printf("未知のボタンアクション: %s", id)
	}
}

// handleDownload は、生成画像をファイル名付きで送信します
func (h *ComponentHandler) handleDownload(s *discordgo.Session, i *discordgo.InteractionCreate, studio *application.Studio) {
	download, err := studio.Artwork.Download()
	if err != nil {
		h.responses.respondError(s, i.Interaction, err)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("📥 `%s`", download.Filename),
			Files:   []*discordgo.File{h.responses.imageFile(download)},
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("画像の送信に失敗: %v", err)
	}
}

// handleArtworkReset は、Artworkフローを初期状態に戻します
func (h *ComponentHandler) handleArtworkReset(s *discordgo.Session, i *discordgo.InteractionCreate, studio *application.Studio) {
	if err := studio.Artwork.Reset(); err != nil {
		h.responses.respondError(s, i.Interaction, err)
		return
	}
	h.tracker.SetArtworkInteraction(studio.UserID, nil)
	h.responses.updateMessage(s, i.Interaction, h.responses.formatArtworkState(studio.Artwork.State()))
}

// handleCopy は、投稿文をコピー用のメッセージとして送信します
func (h *ComponentHandler) handleCopy(s *discordgo.Session, i *discordgo.InteractionCreate, studio *application.Studio) {
	clipboard := NewInteractionClipboard(s, i.Interaction, h.responses)
	if err := studio.Post.Copy(h.ctx, clipboard); err != nil {
		h.responses.respondError(s, i.Interaction, err)
	}
}

// handlePostReset は、Postフローを初期状態に戻します
func (h *ComponentHandler) handlePostReset(s *discordgo.Session, i *discordgo.InteractionCreate, studio *application.Studio) {
	if studio.Post.State().IsLoading() {
		h.responses.respondError(s, i.Interaction, domain.ErrRequestInFlight)
		return
	}

	// コピー済み表示の解除で、消去したメッセージにボタンが戻らないようにする
	h.tracker.SetPostInteraction(studio.UserID, nil)
	if err := studio.Post.Reset(); err != nil {
		h.responses.respondError(s, i.Interaction, err)
		return
	}

	chunks := h.responses.formatPostState(studio.Post.State())
	h.responses.updateMessage(s, i.Interaction, chunks[0])
}
