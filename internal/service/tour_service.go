package service

import (
	"strings"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"
)

// TourCard 行程卡片视图
type TourCard struct {
	ID             uint         `json:"id"`
	Name           string       `json:"name"`
	CategoryName   string       `json:"category_name"`
	Price          models.Money `json:"price"`
	Duration       string       `json:"duration"`
	AvatarURL      string       `json:"avatar_url"`
	Tags           []string     `json:"tags"`
	SoldCount      int          `json:"sold_count"`
	AvailableSlots int          `json:"available_slots"`
	TotalSlots     int          `json:"total_slots"`
}

// TourDetail 行程详情视图
type TourDetail struct {
	TourCard
	Description string                 `json:"description"`
	Itineraries []models.TourItinerary `json:"itineraries"`
}

// TourUpsertInput 后台创建/更新行程输入
type TourUpsertInput struct {
	CategoryID  uint
	Name        string
	Description string
	Price       models.Money
	Duration    string
	TotalSlots  int
	AvatarURL   string
	Tags        []string
	Status      string
	SortOrder   int
	Itineraries []models.TourItinerary
}

// TourService 行程目录服务
type TourService struct {
	cfg          *config.Config
	tourRepo     repository.TourRepository
	categoryRepo repository.CategoryRepository
}

// NewTourService 创建行程服务
func NewTourService(cfg *config.Config, tourRepo repository.TourRepository, categoryRepo repository.CategoryRepository) *TourService {
	return &TourService{
		cfg:          cfg,
		tourRepo:     tourRepo,
		categoryRepo: categoryRepo,
	}
}

// ListActive 前台行程列表（含分类名与已售人数）
func (s *TourService) ListActive(filter repository.TourListFilter) ([]TourCard, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	tours, total, err := s.tourRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(tours))
	for _, tour := range tours {
		ids = append(ids, tour.ID)
	}
	soldCounts, err := s.tourRepo.SoldCounts(ids)
	if err != nil {
		return nil, 0, err
	}

	cards := make([]TourCard, 0, len(tours))
	for _, tour := range tours {
		cards = append(cards, s.buildCard(&tour, soldCounts[tour.ID]))
	}
	return cards, total, nil
}

// GetDetail 前台行程详情（含每日安排）
func (s *TourService) GetDetail(id uint) (*TourDetail, error) {
	tour, err := s.tourRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	if tour.Status != constants.TourStatusActive {
		return nil, ErrTourInactive
	}

	soldCounts, err := s.tourRepo.SoldCounts([]uint{tour.ID})
	if err != nil {
		return nil, err
	}

	detail := &TourDetail{
		TourCard:    s.buildCard(tour, soldCounts[tour.ID]),
		Description: tour.Description,
		Itineraries: tour.Itineraries,
	}
	return detail, nil
}

// ListAdmin 后台行程列表（不过滤上架状态）
func (s *TourService) ListAdmin(filter repository.TourListFilter) ([]models.Tour, int64, error) {
	filter.WithCategory = true
	return s.tourRepo.List(filter)
}

// GetAdmin 后台获取行程
func (s *TourService) GetAdmin(id uint) (*models.Tour, error) {
	tour, err := s.tourRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	return tour, nil
}

// Create 后台创建行程
func (s *TourService) Create(input TourUpsertInput) (*models.Tour, error) {
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.TourStatusActive
	}

	tour := &models.Tour{
		CategoryID:     input.CategoryID,
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		Duration:       input.Duration,
		TotalSlots:     input.TotalSlots,
		AvailableSlots: input.TotalSlots,
		AvatarURL:      strings.TrimSpace(input.AvatarURL),
		Tags:           models.StringArray(input.Tags),
		Status:         status,
		SortOrder:      input.SortOrder,
	}
	if err := s.tourRepo.Create(tour); err != nil {
		return nil, err
	}
	if len(input.Itineraries) > 0 {
		if err := s.tourRepo.ReplaceItineraries(tour.ID, input.Itineraries); err != nil {
			return nil, err
		}
	}
	return s.tourRepo.GetByID(tour.ID)
}

// Update 后台更新行程。总名额变化时剩余名额按差值同步调整。
func (s *TourService) Update(id uint, input TourUpsertInput) (*models.Tour, error) {
	tour, err := s.tourRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}

	if input.CategoryID != 0 && input.CategoryID != tour.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		tour.CategoryID = input.CategoryID
	}

	if delta := input.TotalSlots - tour.TotalSlots; delta != 0 {
		tour.AvailableSlots += delta
		if tour.AvailableSlots < 0 {
			tour.AvailableSlots = 0
		}
	}
	tour.TotalSlots = input.TotalSlots
	tour.Name = strings.TrimSpace(input.Name)
	tour.Description = input.Description
	tour.Price = input.Price
	tour.Duration = input.Duration
	tour.AvatarURL = strings.TrimSpace(input.AvatarURL)
	tour.Tags = models.StringArray(input.Tags)
	if strings.TrimSpace(input.Status) != "" {
		tour.Status = strings.TrimSpace(input.Status)
	}
	tour.SortOrder = input.SortOrder

	if err := s.tourRepo.Update(tour); err != nil {
		return nil, err
	}
	if input.Itineraries != nil {
		if err := s.tourRepo.ReplaceItineraries(tour.ID, input.Itineraries); err != nil {
			return nil, err
		}
	}
	return s.tourRepo.GetByID(tour.ID)
}

// Delete 后台删除行程
func (s *TourService) Delete(id uint) error {
	tour, err := s.tourRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tour == nil {
		return ErrTourNotFound
	}
	return s.tourRepo.Delete(id)
}

func (s *TourService) buildCard(tour *models.Tour, sold int) TourCard {
	tags := []string(tour.Tags)
	if tags == nil {
		tags = []string{}
	}
	return TourCard{
		ID:             tour.ID,
		Name:           tour.Name,
		CategoryName:   tour.Category.Name,
		Price:          tour.Price,
		Duration:       tour.Duration,
		AvatarURL:      resolveTourAvatarURL(s.cfg.Assets, tour.AvatarURL),
		Tags:           tags,
		SoldCount:      sold,
		AvailableSlots: tour.AvailableSlots,
		TotalSlots:     tour.TotalSlots,
	}
}

// resolveTourAvatarURL 解析行程封面图地址，空引用退回占位图。
func resolveTourAvatarURL(assets config.AssetsConfig, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return joinAssetPath(assets.TourImageBase, assets.PlaceholderImage)
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") || strings.HasPrefix(trimmed, "/") {
		return trimmed
	}
	return joinAssetPath(assets.TourImageBase, trimmed)
}

func joinAssetPath(base, name string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	if base == "" {
		return "/" + name
	}
	return base + "/" + name
}
