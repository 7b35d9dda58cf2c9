package service

import (
	"strings"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"
)

// 归一化兜底值
const (
	placeNameFallback    = "Unknown place"
	placeAddressFallback = "No address provided"
)

// PlaceCard 地点卡片视图。
// 历史数据的 name/title 双列与遗留单图列只在这里归一化一次，
// 下游不再做任何列探测。
type PlaceCard struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhotoURL    string  `json:"photo_url"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

// PlaceSuggestion 地点输入联想视图
type PlaceSuggestion struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	AvgRating float64 `json:"avg_rating"`
}

// PlaceDetail 地点详情视图
type PlaceDetail struct {
	PlaceCard
	Images []string `json:"images"`
}

// PlaceUpsertInput 后台创建/更新地点输入
type PlaceUpsertInput struct {
	Name      string
	Address   string
	Longitude float64
	Latitude  float64
	PhotoURL  string
	IsActive  bool
	Images    []string
}

// PlaceService 地点服务
type PlaceService struct {
	cfg  *config.Config
	repo repository.PlaceRepository
}

// NewPlaceService 创建地点服务
func NewPlaceService(cfg *config.Config, repo repository.PlaceRepository) *PlaceService {
	return &PlaceService{cfg: cfg, repo: repo}
}

// TopRated 评分最高的展示中地点
func (s *PlaceService) TopRated(limit int) ([]PlaceCard, error) {
	places, err := s.repo.TopRated(limit)
	if err != nil {
		return nil, err
	}
	return s.buildCards(places), nil
}

// List 地点列表
func (s *PlaceService) List(filter repository.PlaceListFilter) ([]PlaceCard, int64, error) {
	places, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return s.buildCards(places), total, nil
}

// Search 按名称子串搜索展示中的地点
func (s *PlaceService) Search(query string, limit int) ([]PlaceCard, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []PlaceCard{}, nil
	}
	places, err := s.repo.SearchByName(trimmed, limit)
	if err != nil {
		return nil, err
	}
	return s.buildCards(places), nil
}

// Suggest 输入联想（评分前列的少量匹配）
func (s *PlaceService) Suggest(term string, limit int) ([]PlaceSuggestion, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return []PlaceSuggestion{}, nil
	}
	places, err := s.repo.Suggest(trimmed, limit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]PlaceSuggestion, 0, len(places))
	for _, place := range places {
		suggestions = append(suggestions, PlaceSuggestion{
			ID:        place.ID,
			Name:      resolvePlaceName(&place),
			AvgRating: place.AvgRating,
		})
	}
	return suggestions, nil
}

// GetDetail 地点详情（含全部图片）
func (s *PlaceService) GetDetail(id uint) (*PlaceDetail, error) {
	place, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if place == nil || !place.IsActive {
		return nil, ErrPlaceNotFound
	}

	images := make([]string, 0, len(place.Images))
	for _, image := range place.Images {
		if url := strings.TrimSpace(image.URL); url != "" {
			images = append(images, s.resolvePlaceImage(url))
		}
	}
	return &PlaceDetail{
		PlaceCard: s.buildCard(place),
		Images:    images,
	}, nil
}

// Create 后台创建地点
func (s *PlaceService) Create(input PlaceUpsertInput) (*models.Place, error) {
	place := &models.Place{
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		Longitude: input.Longitude,
		Latitude:  input.Latitude,
		PhotoURL:  strings.TrimSpace(input.PhotoURL),
		IsActive:  input.IsActive,
	}
	for i, url := range input.Images {
		place.Images = append(place.Images, models.PlaceImage{URL: strings.TrimSpace(url), SortOrder: i})
	}
	if err := s.repo.Create(place); err != nil {
		return nil, err
	}
	return place, nil
}

// Update 后台更新地点
func (s *PlaceService) Update(id uint, input PlaceUpsertInput) (*models.Place, error) {
	place, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	place.Name = strings.TrimSpace(input.Name)
	place.Address = strings.TrimSpace(input.Address)
	place.Longitude = input.Longitude
	place.Latitude = input.Latitude
	place.PhotoURL = strings.TrimSpace(input.PhotoURL)
	place.IsActive = input.IsActive

	if err := s.repo.Update(place); err != nil {
		return nil, err
	}
	return place, nil
}

// Delete 后台删除地点
func (s *PlaceService) Delete(id uint) error {
	place, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if place == nil {
		return ErrPlaceNotFound
	}
	return s.repo.Delete(id)
}

func (s *PlaceService) buildCards(places []models.Place) []PlaceCard {
	cards := make([]PlaceCard, 0, len(places))
	for i := range places {
		cards = append(cards, s.buildCard(&places[i]))
	}
	return cards
}

// buildCard 单次归一化：name 优先于遗留 title，空地址与空图给固定兜底。
func (s *PlaceService) buildCard(place *models.Place) PlaceCard {
	address := strings.TrimSpace(place.Address)
	if address == "" {
		address = placeAddressFallback
	}

	photo := ""
	for _, image := range place.Images {
		if url := strings.TrimSpace(image.URL); url != "" {
			photo = s.resolvePlaceImage(url)
			break
		}
	}
	if photo == "" {
		if legacy := strings.TrimSpace(place.PhotoURL); legacy != "" {
			photo = s.resolvePlaceImage(legacy)
		} else {
			photo = joinAssetPath(s.cfg.Assets.PlaceImageBase, s.cfg.Assets.PlaceholderImage)
		}
	}

	return PlaceCard{
		ID:          place.ID,
		Name:        resolvePlaceName(place),
		Address:     address,
		PhotoURL:    photo,
		AvgRating:   place.AvgRating,
		RatingCount: place.RatingCount,
		Longitude:   place.Longitude,
		Latitude:    place.Latitude,
	}
}

func (s *PlaceService) resolvePlaceImage(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "/") {
		return raw
	}
	return joinAssetPath(s.cfg.Assets.PlaceImageBase, raw)
}

func resolvePlaceName(place *models.Place) string {
	if name := strings.TrimSpace(place.Name); name != "" {
		return name
	}
	if title := strings.TrimSpace(place.Title); title != "" {
		return title
	}
	return placeNameFallback
}
