package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"contentstudio/internal/infrastructure/config"

	"github.com/joho/godotenv"
)

// Config は、アプリケーション全体の設定を定義します
type Config struct {
	Discord config.DiscordConfig
	Gemini  config.GeminiConfig
	Studio  config.StudioConfig
}

// LoadConfig は、環境変数から設定を読み込みます
func LoadConfig() (*Config, error) {
	// .envファイルを読み込み（ファイルが存在しない場合は無視）
	if err := godotenv.Load(); err != nil {
		fmt.Printf("警告: .envファイルの読み込みに失敗しました: %v\n", err)
	}

	geminiDefaults := config.DefaultGeminiConfig()
	studioDefaults := config.DefaultStudioConfig()

	cfg := &Config{
		Discord: config.DiscordConfig{
			BotToken: getEnvOrDefault("DISCORD_BOT_TOKEN", ""),
			GuildID:  getEnvOrDefault("DISCORD_GUILD_ID", ""),
		},
		Gemini: config.GeminiConfig{
			APIKey:         getEnvOrDefault("GEMINI_API_KEY", ""),
			TextModelName:  getEnvOrDefault("GEMINI_TEXT_MODEL", geminiDefaults.TextModelName),
			ImageModelName: getEnvOrDefault("GEMINI_IMAGE_MODEL", geminiDefaults.ImageModelName),
			ImageMIMEType:  getEnvOrDefault("GEMINI_IMAGE_MIME_TYPE", geminiDefaults.ImageMIMEType),
			Temperature:    float32(getEnvAsFloatOrDefault("GEMINI_TEMPERATURE", float64(geminiDefaults.Temperature))),
		},
		Studio: config.StudioConfig{
			RequestTimeout:   getEnvAsDurationOrDefault("REQUEST_TIMEOUT", studioDefaults.RequestTimeout),
			CopiedResetDelay: getEnvAsDurationOrDefault("COPIED_RESET_DELAY", studioDefaults.CopiedResetDelay),
		},
	}

	// 必須設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate は、設定の妥当性を検証します
func (c *Config) Validate() error {
	if c.Discord.BotToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN が設定されていません")
	}

	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}

	if c.Gemini.TextModelName == "" {
		return fmt.Errorf("GEMINI_TEXT_MODEL が設定されていません")
	}

	if c.Gemini.ImageModelName == "" {
		return fmt.Errorf("GEMINI_IMAGE_MODEL が設定されていません")
	}

	switch c.Gemini.ImageMIMEType {
	case "image/jpeg", "image/png":
	default:
		return fmt.Errorf("GEMINI_IMAGE_MIME_TYPE は image/jpeg または image/png である必要があります")
	}

	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE は0から2の範囲である必要があります")
	}

	if c.Studio.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT は正の値である必要があります")
	}

	if c.Studio.CopiedResetDelay <= 0 {
		return fmt.Errorf("COPIED_RESET_DELAY は正の値である必要があります")
	}

	return nil
}

// getEnvOrDefault は、環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsFloatOrDefault は、環境変数を浮動小数点数として取得し、存在しない場合はデフォルト値を返します
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は、環境変数を時間として取得し、存在しない場合はデフォルト値を返します
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
