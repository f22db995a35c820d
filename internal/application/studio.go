package application

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"contentstudio/internal/domain"
	"contentstudio/internal/infrastructure/config"
)

// Studio は、1人のユーザーが利用するArtworkフローとPostフローの組です
// 2つのフローは状態を共有せず、互いに独立して動作します
type Studio struct {
	UserID    string
	Artwork   *ArtworkFlow
	Post      *PostFlow
	CreatedAt time.Time
}

// NewStudio は新しいStudioインスタンスを作成します
func NewStudio(userID string, gateway GenerationGateway, studioConfig *config.StudioConfig) *Studio {
	return &Studio{
		UserID:    userID,
		Artwork:   NewArtworkFlow(gateway, studioConfig),
		Post:      NewPostFlow(gateway, studioConfig),
		CreatedAt: time.Now(),
	}
}

// StudioRepository は、ユーザーごとのStudioを保持するインターフェースです
type StudioRepository interface {
	// Get は、指定されたユーザーのStudioを取得します
	Get(ctx context.Context, userID string) (*Studio, bool, error)

	// Save は、Studioを保存します
	Save(ctx context.Context, studio *Studio) error
}

// StudioService は、ユーザーごとのStudioを払い出すアプリケーションサービスです
type StudioService struct {
	gateway      GenerationGateway
	repository   StudioRepository
	studioConfig *config.StudioConfig
	mutex        sync.Mutex
}

// NewStudioService は新しいStudioServiceインスタンスを作成します
func NewStudioService(gateway GenerationGateway, repository StudioRepository, studioConfig *config.StudioConfig) *StudioService {
	if studioConfig == nil {
		studioConfig = config.DefaultStudioConfig()
	}

	return &StudioService{
		gateway:      gateway,
		repository:   repository,
		studioConfig: studioConfig,
	}
}

// Open は、ユーザーのStudioを取得し、存在しない場合は新しく作成します
func (s *StudioService) Open(ctx context.Context, userID string) (*Studio, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	studio, found, err := s.repository.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Studioの取得に失敗: %w", err)
	}
	if found {
		return studio, nil
	}

	studio = NewStudio(userID, s.gateway, s.studioConfig)
	if err := s.repository.Save(ctx, studio); err != nil {
		return nil, fmt.Errorf("Studioの保存に失敗: %w", err)
	}

	log.Printf("ユーザー %s のStudioを作成しました", userID)
	return studio, nil
}

// Find は、作成済みのStudioのみを取得します
func (s *StudioService) Find(ctx context.Context, userID string) (*Studio, bool, error) {
	return s.repository.Get(ctx, userID)
}

// DimensionOptions は、Artworkフローで選択できる画像サイズの一覧を返します
func (s *StudioService) DimensionOptions() []domain.ImageDimensionOption {
	return domain.AllImageDimensionOptions()
}
