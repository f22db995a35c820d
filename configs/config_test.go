package configs

import (
	"os"
	"testing"
	"time"

	"contentstudio/internal/infrastructure/config"
)

// validConfig は、検証を通過する設定を返します
func validConfig() *Config {
	return &Config{
		Discord: config.DiscordConfig{
			BotToken: "test-token",
		},
		Gemini: config.GeminiConfig{
			APIKey:         "test-api-key",
			TextModelName:  "gemini-2.5-flash",
			ImageModelName: "imagen-3.0-generate-002",
			ImageMIMEType:  "image/jpeg",
			Temperature:    0.7,
		},
		Studio: config.StudioConfig{
			RequestTimeout:   60 * time.Second,
			CopiedResetDelay: 2 * time.Second,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "有効な設定",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "Discord BotTokenが空",
			modify:  func(c *Config) { c.Discord.BotToken = "" },
			wantErr: true,
			errMsg:  "DISCORD_BOT_TOKEN が設定されていません",
		},
		{
			name:    "Gemini APIKeyが空",
			modify:  func(c *Config) { c.Gemini.APIKey = "" },
			wantErr: true,
			errMsg:  "GEMINI_API_KEY が設定されていません",
		},
		{
			name:    "テキストモデル名が空",
			modify:  func(c *Config) { c.Gemini.TextModelName = "" },
			wantErr: true,
			errMsg:  "GEMINI_TEXT_MODEL が設定されていません",
		},
		{
			name:    "画像モデル名が空",
			modify:  func(c *Config) { c.Gemini.ImageModelName = "" },
			wantErr: true,
			errMsg:  "GEMINI_IMAGE_MODEL が設定されていません",
		},
		{
			name:    "PNG形式は許可される",
			modify:  func(c *Config) { c.Gemini.ImageMIMEType = "image/png" },
			wantErr: false,
		},
		{
			name:    "未対応の画像形式",
			modify:  func(c *Config) { c.Gemini.ImageMIMEType = "image/gif" },
			wantErr: true,
			errMsg:  "GEMINI_IMAGE_MIME_TYPE は image/jpeg または image/png である必要があります",
		},
		{
			name:    "Temperatureが範囲外（負の値）",
			modify:  func(c *Config) { c.Gemini.Temperature = -0.1 },
			wantErr: true,
			errMsg:  "GEMINI_TEMPERATURE は0から2の範囲である必要があります",
		},
		{
			name:    "Temperatureが範囲外（2より大きい）",
			modify:  func(c *Config) { c.Gemini.Temperature = 2.5 },
			wantErr: true,
			errMsg:  "GEMINI_TEMPERATURE は0から2の範囲である必要があります",
		},
		{
			name:    "RequestTimeoutが0以下",
			modify:  func(c *Config) { c.Studio.RequestTimeout = 0 },
			wantErr: true,
			errMsg:  "REQUEST_TIMEOUT は正の値である必要があります",
		},
		{
			name:    "CopiedResetDelayが0以下",
			modify:  func(c *Config) { c.Studio.CopiedResetDelay = -time.Second },
			wantErr: true,
			errMsg:  "COPIED_RESET_DELAY は正の値である必要があります",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("エラーが期待されましたが、発生しませんでした")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("期待されるエラーメッセージ: %s, 実際: %s", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("予期しないエラーが発生しました: %v", err)
				}
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "test-token")
	t.Setenv("GEMINI_API_KEY", "test-api-key")
	t.Setenv("GEMINI_TEXT_MODEL", "")
	t.Setenv("GEMINI_IMAGE_MODEL", "")
	t.Setenv("GEMINI_IMAGE_MIME_TYPE", "")
	t.Setenv("GEMINI_TEMPERATURE", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("COPIED_RESET_DELAY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗: %v", err)
	}

	if cfg.Gemini.TextModelName != "gemini-2.5-flash" {
		t.Errorf("期待されるTextModelName: gemini-2.5-flash, 実際: %s", cfg.Gemini.TextModelName)
	}
	if cfg.Gemini.ImageModelName != "imagen-3.0-generate-002" {
		t.Errorf("期待されるImageModelName: imagen-3.0-generate-002, 実際: %s", cfg.Gemini.ImageModelName)
	}
	if cfg.Gemini.ImageMIMEType != "image/jpeg" {
		t.Errorf("期待されるImageMIMEType: image/jpeg, 実際: %s", cfg.Gemini.ImageMIMEType)
	}
	if cfg.Studio.RequestTimeout != 60*time.Second {
		t.Errorf("期待されるRequestTimeout: 60s, 実際: %v", cfg.Studio.RequestTimeout)
	}
	if cfg.Studio.CopiedResetDelay != 2*time.Second {
		t.Errorf("期待されるCopiedResetDelay: 2s, 実際: %v", cfg.Studio.CopiedResetDelay)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "test-token")
	t.Setenv("DISCORD_GUILD_ID", "guild123")
	t.Setenv("GEMINI_API_KEY", "test-api-key")
	t.Setenv("GEMINI_IMAGE_MIME_TYPE", "image/png")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("COPIED_RESET_DELAY", "500ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗: %v", err)
	}

	if cfg.Discord.GuildID != "guild123" {
		t.Errorf("期待されるGuildID: guild123, 実際: %s", cfg.Discord.GuildID)
	}
	if cfg.Gemini.ImageMIMEType != "image/png" {
		t.Errorf("期待されるImageMIMEType: image/png, 実際: %s", cfg.Gemini.ImageMIMEType)
	}
	if cfg.Studio.RequestTimeout != 15*time.Second {
		t.Errorf("期待されるRequestTimeout: 15s, 実際: %v", cfg.Studio.RequestTimeout)
	}
	if cfg.Studio.CopiedResetDelay != 500*time.Millisecond {
		t.Errorf("期待されるCopiedResetDelay: 500ms, 実際: %v", cfg.Studio.CopiedResetDelay)
	}
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "test-token")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("GEMINI_API_KEY が未設定の場合はエラーになるべきです")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	// 環境変数をクリア
	os.Unsetenv("TEST_ENV_VAR")

	// デフォルト値のテスト
	result := getEnvOrDefault("TEST_ENV_VAR", "default")
	if result != "default" {
		t.Errorf("期待される値: default, 実際: %s", result)
	}

	// 環境変数が設定されている場合のテスト
	t.Setenv("TEST_ENV_VAR", "test-value")

	result = getEnvOrDefault("TEST_ENV_VAR", "default")
	if result != "test-value" {
		t.Errorf("期待される値: test-value, 実際: %s", result)
	}
}

func TestGetEnvAsFloatOrDefault(t *testing.T) {
	os.Unsetenv("TEST_FLOAT_VAR")

	result := getEnvAsFloatOrDefault("TEST_FLOAT_VAR", 3.14)
	if result != 3.14 {
		t.Errorf("期待される値: 3.14, 実際: %f", result)
	}

	t.Setenv("TEST_FLOAT_VAR", "2.71")
	result = getEnvAsFloatOrDefault("TEST_FLOAT_VAR", 3.14)
	if result != 2.71 {
		t.Errorf("期待される値: 2.71, 実際: %f", result)
	}

	// 無効な値のテスト
	t.Setenv("TEST_FLOAT_VAR", "invalid")
	result = getEnvAsFloatOrDefault("TEST_FLOAT_VAR", 3.14)
	if result != 3.14 {
		t.Errorf("無効な値の場合、デフォルト値が返されるべきです。期待: 3.14, 実際: %f", result)
	}
}

func TestGetEnvAsDurationOrDefault(t *testing.T) {
	os.Unsetenv("TEST_DURATION_VAR")

	defaultDuration := 30 * time.Second
	result := getEnvAsDurationOrDefault("TEST_DURATION_VAR", defaultDuration)
	if result != defaultDuration {
		t.Errorf("期待される値: %v, 実際: %v", defaultDuration, result)
	}

	t.Setenv("TEST_DURATION_VAR", "60s")
	result = getEnvAsDurationOrDefault("TEST_DURATION_VAR", defaultDuration)
	if result != 60*time.Second {
		t.Errorf("期待される値: %v, 実際: %v", 60*time.Second, result)
	}

	// 無効な値のテスト
	t.Setenv("TEST_DURATION_VAR", "invalid")
	result = getEnvAsDurationOrDefault("TEST_DURATION_VAR", defaultDuration)
	if result != defaultDuration {
		t.Errorf("無効な値の場合、デフォルト値が返されるべきです。期待: %v, 実際: %v", defaultDuration, result)
	}
}
