package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"contentstudio/configs"
	"contentstudio/internal/application"
	discordInfra "contentstudio/internal/infrastructure/discord"
	"contentstudio/internal/infrastructure/gemini"
	discordPres "contentstudio/internal/presentation/discord"

	"github.com/bwmarrin/discordgo"
)

func main() {
	log.Println("LinkedIn Content Studio Botを起動中...")

	// 設定を読み込み
	config, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Gemini APIクライアントを作成
	geminiClient, err := gemini.NewGeminiAPIClient(ctx, &config.Gemini)
	if err != nil {
		log.Fatalf("Gemini APIクライアントの作成に失敗: %v", err)
	}

	// Discordセッションを作成
	session, err := discordgo.New("Bot " + config.Discord.BotToken)
	if err != nil {
		log.Fatalf("Discordセッションの作成に失敗: %v", err)
	}
	defer session.Close()

	// Botの情報を取得
	user, err := session.User("@me")
	if err != nil {
		log.Fatalf("Bot情報の取得に失敗: %v", err)
	}

	log.Printf("Bot情報: %s#%s (ID: %s)", user.Username, user.Discriminator, user.ID)

	// リポジトリとアプリケーションサービスを作成
	studioRepo := discordInfra.NewDiscordStudioRepository()
	studioService := application.NewStudioService(geminiClient, studioRepo, &config.Studio)

	// Discordハンドラを作成
	handler := discordPres.NewDiscordHandler(ctx, session, studioService, config.Discord.GuildID)
	handler.SetupHandlers()

	// スラッシュコマンドを設定
	if err := handler.SetupSlashCommands(); err != nil {
		log.Fatalf("スラッシュコマンドの設定に失敗: %v", err)
	}

	// Discordに接続
	err = session.Open()
	if err != nil {
		log.Fatalf("Discordへの接続に失敗: %v", err)
	}

	log.Println("Discordに接続しました。Botが準備完了しました！")
	log.Println("利用可能なスラッシュコマンド:")
	log.Println("  /artwork - 説明文または記事からLinkedIn向け画像を生成")
	log.Println("  /post - トピックまたは記事からLinkedIn投稿文を生成")
	log.Println("  /dimensions - 画像サイズの一覧を表示")

	// シグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// 終了シグナルを待機
	<-stop
	log.Println("終了シグナルを受信しました。Botを停止中...")

	// 実行中の生成を中断
	cancel()
	log.Printf("利用中だったStudio: %d件", studioRepo.Count())

	// クリーンアップ
	if err := session.Close(); err != nil {
		log.Printf("Discordセッションのクローズに失敗: %v", err)
	}

	log.Println("Botが正常に停止しました。")
}
