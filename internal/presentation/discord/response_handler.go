package discord

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"contentstudio/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// ResponseHandler は、Discordのレスポンス送信・フォーマット処理を担当するハンドラーです
type ResponseHandler struct{}

// DiscordMessageLimit は、Discordのメッセージ文字数制限です
const DiscordMessageLimit = 2000

// NewResponseHandler は新しいResponseHandlerインスタンスを作成します
func NewResponseHandler() *ResponseHandler {
	return &ResponseHandler{}
}

// respond は、インタラクションにメッセージで応答します
func (h *ResponseHandler) respond(s *discordgo.Session, i *discordgo.Interaction, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("インタラクションへの応答に失敗: %v", err)
	}
}

// respondError は、エラーをエフェメラルメッセージで応答します
func (h *ResponseHandler) respondError(s *discordgo.Session, i *discordgo.Interaction, err error) {
	h.respond(s, i, h.formatError(err), true)
}

// deferResponse は、時間のかかる処理の前に応答を保留します
func (h *ResponseHandler) deferResponse(s *discordgo.Session, i *discordgo.Interaction) error {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("応答の保留に失敗: %w", err)
	}
	return nil
}

// editResponse は、保留した応答の内容を書き換えます
func (h *ResponseHandler) editResponse(s *discordgo.Session, i *discordgo.Interaction, content string, components []discordgo.MessageComponent, files []*discordgo.File) {
	edit := &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
		Files:      files,
	}

	if _, err := s.InteractionResponseEdit(i, edit); err != nil {
		log.Printf("応答メッセージの更新に失敗: %v", err)
	}
}

// editComponents は、応答メッセージのボタンのみを書き換えます
func (h *ResponseHandler) editComponents(s *discordgo.Session, i *discordgo.Interaction, components []discordgo.MessageComponent) {
	if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Components: &components}); err != nil {
		log.Printf("ボタンの更新に失敗: %v", err)
	}
}

// updateMessage は、ボタンが押されたメッセージ自体を書き換えます
func (h *ResponseHandler) updateMessage(s *discordgo.Session, i *discordgo.Interaction, content string) {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Printf("メッセージの更新に失敗: %v", err)
	}
}

// sendFollowups は、2件目以降のチャンクを追加メッセージとして送信します
func (h *ResponseHandler) sendFollowups(s *discordgo.Session, i *discordgo.Interaction, chunks []string, ephemeral bool) {
	for index, chunk := range chunks {
		params := &discordgo.WebhookParams{Content: chunk}
		if ephemeral {
			params.Flags = discordgo.MessageFlagsEphemeral
		}
		if _, err := s.FollowupMessageCreate(i, true, params); err != nil {
			log.Printf("追加メッセージの送信に失敗 (チャンク %d): %v", index+2, err)
			return
		}
	}
}

// imageFile は、生成画像をDiscordの添付ファイルに変換します
func (h *ResponseHandler) imageFile(download domain.ImageDownload) *discordgo.File {
	return &discordgo.File{
		Name:        download.Filename,
		ContentType: download.MIMEType,
		Reader:      bytes.NewReader(download.Data),
	}
}

// formatArtworkState は、Artworkフローの状態を表示用の文字列にフォーマットします
func (h *ResponseHandler) formatArtworkState(state domain.LifecycleState) string {
	var builder strings.Builder

	switch state.Phase {
	case domain.PhaseLoading:
		builder.WriteString("🎨 Generating your artwork...")
	case domain.PhaseSuccess:
		builder.WriteString("🎨 **Your LinkedIn artwork is ready!**")
		if image, ok := state.ImageResult(); ok {
			builder.WriteString(fmt.Sprintf("\n**Aspect ratio:** %s", image.AspectRatio))
		}
	case domain.PhaseFailed:
		builder.WriteString("❌ " + state.ErrorMessage)
	default:
		return "🔄 Artwork cleared. Use `/artwork` to start again."
	}

	if prompt := state.DerivedPrompt(); prompt != "" {
		builder.WriteString(fmt.Sprintf("\n**Based on prompt:** _%s_", prompt))
	}
	return builder.String()
}

// formatPostState は、Postフローの状態を表示用のチャンクに分割してフォーマットします
func (h *ResponseHandler) formatPostState(state domain.LifecycleState) []string {
	switch state.Phase {
	case domain.PhaseLoading:
		return []string{"✍️ Writing your LinkedIn post..."}
	case domain.PhaseSuccess:
		result, ok := state.TextResult()
		if !ok {
			return []string{"❌ " + domain.UnknownErrorMessage}
		}
		return h.splitMessage(result.Text)
	case domain.PhaseFailed:
		return []string{"❌ " + state.ErrorMessage}
	default:
		return []string{"🔄 Post cleared. Use `/post` to start again."}
	}
}

// formatDimensions は、画像サイズのカタログを一覧表示用にフォーマットします
func (h *ResponseHandler) formatDimensions(options []domain.ImageDimensionOption) string {
	var builder strings.Builder
	builder.WriteString("📐 **LinkedIn image sizes**\n")
	for _, option := range options {
		builder.WriteString(fmt.Sprintf("\n- **%s**: %s", option.Label, option.Description))
	}
	return builder.String()
}

// formatClipboard は、コピー用にテキストをコードブロックで囲んだチャンクに分割します
func (h *ResponseHandler) formatClipboard(text string) []string {
	const fence = "```\n"
	const closing = "\n```"

	limit := DiscordMessageLimit - len(fence) - len(closing)
	var chunks []string
	for _, chunk := range splitMessageWithLimit(text, limit) {
		chunks = append(chunks, fence+chunk+closing)
	}
	return chunks
}

// formatError は、エラーを適切なメッセージにフォーマットします
func (h *ResponseHandler) formatError(err error) string {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return "⚠️ " + validationErr.Message
	case errors.Is(err, domain.ErrRequestInFlight):
		return "⏳ **Generation in progress**\nPlease wait for the current request to finish."
	case errors.Is(err, domain.ErrNoResult):
		return "📭 Nothing has been generated yet."
	case errors.Is(err, domain.ErrInvalidMode):
		return "⚠️ This mode is not available here."
	case errors.Is(err, errForeignStudio):
		return "🔒 These buttons belong to another user's studio."
	default:
		return "❌ " + domain.UserMessage(err)
	}
}

// splitMessage は、長いメッセージをDiscordの制限に合わせて分割します
func (h *ResponseHandler) splitMessage(message string) []string {
	return splitMessageWithLimit(message, DiscordMessageLimit)
}

// splitMessageWithLimit は、改行・空白・文字の境界の順に分割位置を探します
func splitMessageWithLimit(message string, limit int) []string {
	if len(message) <= limit {
		return []string{message}
	}

	var chunks []string
	remaining := message

	for len(remaining) > 0 {
		if len(remaining) <= limit {
			chunks = append(chunks, remaining)
			break
		}

		// 制限以内で最も近い改行位置を探す
		splitIndex := strings.LastIndexByte(remaining[:limit], '\n') + 1

		// 改行が見つからない場合は、単語の境界で分割
		if splitIndex <= 0 {
			splitIndex = strings.LastIndexByte(remaining[:limit], ' ') + 1
		}

		// それでも見つからない場合は、UTF-8の文字境界で強制的に分割
		if splitIndex <= 0 {
			splitIndex = limit
			for splitIndex > 0 && !isRuneStart(remaining[splitIndex]) {
				splitIndex--
			}
			if splitIndex == 0 {
				splitIndex = limit
			}
		}

		chunks = append(chunks, remaining[:splitIndex])

		// 先頭の空白を除去
		remaining = strings.TrimLeft(remaining[splitIndex:], " \n")
	}

	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
