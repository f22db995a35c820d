package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

// 必要な権限
const (
	permissionSendMessages = discordgo.PermissionSendMessages
	permissionEmbedLinks   = discordgo.PermissionEmbedLinks
	permissionAttachFiles  = discordgo.PermissionAttachFiles
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: .envファイルの読み込みに失敗しました: %v", err)
	}

	// Bot Tokenを取得
	botToken := os.Getenv("DISCORD_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("DISCORD_BOT_TOKEN が設定されていません")
	}

	// Discordセッションを作成
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		log.Fatalf("Discordセッションの作成に失敗: %v", err)
	}
	defer session.Close()

	// Botの情報を取得
	user, err := session.User("@me")
	if err != nil {
		log.Fatalf("Bot情報の取得に失敗: %v", err)
	}

	fmt.Printf("🤖 Bot情報:\n")
	fmt.Printf("   名前: %s#%s\n", user.Username, user.Discriminator)
	fmt.Printf("   Client ID: %s\n", user.ID)
	fmt.Println()

	permissions := permissionSendMessages | permissionEmbedLinks | permissionAttachFiles

	// 招待URLを生成（スラッシュコマンドの登録には applications.commands スコープが必要）
	inviteURL := fmt.Sprintf("https://discord.com/api/oauth2/authorize?client_id=%s&permissions=%d&scope=bot%%20applications.commands", user.ID, permissions)

	fmt.Printf("🔗 Bot招待URL:\n")
	fmt.Printf("   %s\n", inviteURL)
	fmt.Println()

	fmt.Printf("📋 必要な権限:\n")
	fmt.Printf("   - Send Messages (%d)\n", permissionSendMessages)
	fmt.Printf("   - Embed Links (%d)\n", permissionEmbedLinks)
	fmt.Printf("   - Attach Files (%d)\n", permissionAttachFiles)
	fmt.Printf("   - 合計: %d\n", permissions)
	fmt.Println()

	fmt.Printf("🎯 Botの使い方:\n")
	fmt.Printf("   1. /artwork で説明文または記事からLinkedIn向け画像を生成\n")
	fmt.Printf("   2. /post でトピックまたは記事からLinkedIn投稿文を生成\n")
	fmt.Printf("   3. 結果のボタンからダウンロード・コピー・やり直しができます\n")
}
