package config

import "time"

// GeminiConfig は、Gemini API関連の設定を定義します
type GeminiConfig struct {
	APIKey         string
	TextModelName  string  // 要約・投稿文生成用モデル名
	ImageModelName string  // 画像生成用モデル名
	ImageMIMEType  string  // 生成画像のエンコード形式
	Temperature    float32 // 投稿文生成時のTemperature
}

// StudioConfig は、生成フロー関連の設定を定義します
type StudioConfig struct {
	RequestTimeout   time.Duration // Gemini API呼び出し1回あたりのタイムアウト
	CopiedResetDelay time.Duration // 「Copied」表示を元に戻すまでの時間
}

// DiscordConfig は、Discord関連の設定を定義します
type DiscordConfig struct {
	BotToken string
	GuildID  string // 空の場合はグローバルコマンドとして登録
}

// DefaultGeminiConfig は、デフォルトのGemini設定を返します
func DefaultGeminiConfig() *GeminiConfig {
	return &GeminiConfig{
		TextModelName:  "gemini-2.5-flash",
		ImageModelName: "imagen-3.0-generate-002",
		ImageMIMEType:  "image/jpeg",
		Temperature:    0.7,
	}
}

// DefaultStudioConfig は、デフォルトのフロー設定を返します
func DefaultStudioConfig() *StudioConfig {
	return &StudioConfig{
		RequestTimeout:   60 * time.Second,
		CopiedResetDelay: 2 * time.Second,
	}
}
