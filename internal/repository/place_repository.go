package repository

import (
	"errors"
	"fmt"

	"github.com/vietour/internal/models"

	"gorm.io/gorm"
)

// PlaceRepository 地点数据访问接口
type PlaceRepository interface {
	List(filter PlaceListFilter) ([]models.Place, int64, error)
	GetByID(id uint) (*models.Place, error)
	TopRated(limit int) ([]models.Place, error)
	SearchByName(keyword string, limit int) ([]models.Place, error)
	Suggest(term string, limit int) ([]models.Place, error)
	Create(place *models.Place) error
	Update(place *models.Place) error
	Delete(id uint) error
}

// GormPlaceRepository GORM 实现
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewPlaceRepository 创建地点仓库
func NewPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// nameMatchCondition 同时匹配 name 与遗留 title 列
func (r *GormPlaceRepository) nameMatchCondition() string {
	operator := likeOperator(r.db)
	return fmt.Sprintf("name %s ? OR title %s ?", operator, operator)
}

// List 地点列表
func (r *GormPlaceRepository) List(filter PlaceListFilter) ([]models.Place, int64, error) {
	query := r.db.Model(&models.Place{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(r.nameMatchCondition(), like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var places []models.Place
	if err := query.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Order("avg_rating DESC, id ASC").Find(&places).Error; err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

// GetByID 根据 ID 获取地点（含图片）
func (r *GormPlaceRepository) GetByID(id uint) (*models.Place, error) {
	var place models.Place
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&place, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

// TopRated 按评分取展示中的地点
func (r *GormPlaceRepository) TopRated(limit int) ([]models.Place, error) {
	if limit <= 0 {
		limit = 12
	}
	places := make([]models.Place, 0, limit)
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).
		Where("is_active = ?", true).
		Order("avg_rating DESC, rating_count DESC, id ASC").
		Limit(limit).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

// SearchByName 按名称模糊搜索展示中的地点
func (r *GormPlaceRepository) SearchByName(keyword string, limit int) ([]models.Place, error) {
	if limit <= 0 {
		limit = 20
	}
	places := make([]models.Place, 0)
	like := "%" + keyword + "%"
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).
		Where("is_active = ?", true).
		Where(r.nameMatchCondition(), like, like).
		Order("avg_rating DESC, id ASC").
		Limit(limit).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Suggest 输入联想（仅取少量高分匹配）
func (r *GormPlaceRepository) Suggest(term string, limit int) ([]models.Place, error) {
	if limit <= 0 {
		limit = 6
	}
	places := make([]models.Place, 0, limit)
	like := "%" + term + "%"
	err := r.db.Model(&models.Place{}).
		Select("id", "name", "title", "avg_rating").
		Where("is_active = ?", true).
		Where(r.nameMatchCondition(), like, like).
		Order("avg_rating DESC, id ASC").
		Limit(limit).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Create 创建地点
func (r *GormPlaceRepository) Create(place *models.Place) error {
	return r.db.Create(place).Error
}

// Update 更新地点
func (r *GormPlaceRepository) Update(place *models.Place) error {
	return r.db.Save(place).Error
}

// Delete 删除地点（软删除）
func (r *GormPlaceRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Place{}, id).Error
}
