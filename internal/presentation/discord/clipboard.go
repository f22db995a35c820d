package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// InteractionClipboard は、コピー用のテキストを本人のみに見えるメッセージとして送るクリップボードです
// Discordからユーザー端末のクリップボードへは直接書き込めないため、コードブロックのコピー機能を利用します
type InteractionClipboard struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	responses   *ResponseHandler
}

// NewInteractionClipboard は新しいInteractionClipboardインスタンスを作成します
func NewInteractionClipboard(session *discordgo.Session, interaction *discordgo.Interaction, responses *ResponseHandler) *InteractionClipboard {
	return &InteractionClipboard{
		session:     session,
		interaction: interaction,
		responses:   responses,
	}
}

// WriteText は、テキストをコードブロックに分割してエフェメラルメッセージで送信します
func (c *InteractionClipboard) WriteText(ctx context.Context, text string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	chunks := c.responses.formatClipboard(text)
	err := c.session.InteractionRespond(c.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: chunks[0],
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return fmt.Errorf("コピー用メッセージの送信に失敗: %w", err)
	}

	c.responses.sendFollowups(c.session, c.interaction, chunks[1:], true)
	return nil
}
