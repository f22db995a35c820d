package discord

import (
	"context"
	"fmt"
	"sync"

	"contentstudio/internal/application"
)

// DiscordStudioRepository は、DiscordユーザーごとのStudioを保持するリポジトリの実装です
// 現在はメモリベースのため、Botの再起動で生成結果は破棄されます
type DiscordStudioRepository struct {
	studios map[string]*application.Studio
	mutex   sync.RWMutex
}

// NewDiscordStudioRepository は新しいDiscordStudioRepositoryインスタンスを作成します
func NewDiscordStudioRepository() *DiscordStudioRepository {
	return &DiscordStudioRepository{
		studios: make(map[string]*application.Studio),
	}
}

// Get は、指定されたユーザーのStudioを取得します
func (r *DiscordStudioRepository) Get(ctx context.Context, userID string) (*application.Studio, bool, error) {
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	studio, exists := r.studios[userID]
	return studio, exists, nil
}

// Save は、Studioを保存します
func (r *DiscordStudioRepository) Save(ctx context.Context, studio *application.Studio) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if studio == nil || studio.UserID == "" {
		return fmt.Errorf("ユーザーIDのないStudioは保存できません")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.studios[studio.UserID] = studio
	return nil
}

// Count は、保持しているStudioの数を返します
func (r *DiscordStudioRepository) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.studios)
}
