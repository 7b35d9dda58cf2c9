package repository

import (
	"errors"
	"fmt"

	"github.com/vietour/internal/models"

	"gorm.io/gorm"
)

// TourRepository 行程数据访问接口
type TourRepository interface {
	List(filter TourListFilter) ([]models.Tour, int64, error)
	GetByID(id uint) (*models.Tour, error)
	GetActiveByID(id uint) (*models.Tour, error)
	Create(tour *models.Tour) error
	Update(tour *models.Tour) error
	Delete(id uint) error
	ReplaceItineraries(tourID uint, itineraries []models.TourItinerary) error
	SoldCounts(tourIDs []uint) (map[uint]int, error)
	ReserveSlots(tourID uint, quantity int) (int64, error)
	RestoreSlots(tourID uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) *GormTourRepository
}

// GormTourRepository GORM 实现
type GormTourRepository struct {
	db *gorm.DB
}

// NewTourRepository 创建行程仓库
func NewTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTourRepository) WithTx(tx *gorm.DB) *GormTourRepository {
	if tx == nil {
		return r
	}
	return &GormTourRepository{db: tx}
}

// List 行程列表
func (r *GormTourRepository) List(filter TourListFilter) ([]models.Tour, int64, error) {
	query := r.db.Model(&models.Tour{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OnlyActive {
		query = query.Where("status = ?", "active")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		operator := likeOperator(r.db)
		query = query.Where(
			fmt.Sprintf("name %s ? OR description %s ?", operator, operator),
			like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if filter.WithCategory {
		query = query.Preload("Category")
	}

	var tours []models.Tour
	if err := query.Order("sort_order DESC, id DESC").Find(&tours).Error; err != nil {
		return nil, 0, err
	}
	return tours, total, nil
}

// GetByID 根据 ID 获取行程（含分类与每日安排）
func (r *GormTourRepository) GetByID(id uint) (*models.Tour, error) {
	var tour models.Tour
	err := r.db.Preload("Category").
		Preload("Itineraries", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		First(&tour, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

// GetActiveByID 获取上架中的行程
func (r *GormTourRepository) GetActiveByID(id uint) (*models.Tour, error) {
	var tour models.Tour
	err := r.db.Where("id = ? AND status = ?", id, "active").First(&tour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

// Create 创建行程
func (r *GormTourRepository) Create(tour *models.Tour) error {
	return r.db.Create(tour).Error
}

// Update 更新行程
func (r *GormTourRepository) Update(tour *models.Tour) error {
	return r.db.Save(tour).Error
}

// Delete 删除行程（软删除）
func (r *GormTourRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Tour{}, id).Error
}

// ReplaceItineraries 整体替换行程的每日安排
func (r *GormTourRepository) ReplaceItineraries(tourID uint, itineraries []models.TourItinerary) error {
	if tourID == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", tourID).Delete(&models.TourItinerary{}).Error; err != nil {
			return err
		}
		for i := range itineraries {
			itineraries[i].ID = 0
			itineraries[i].TourID = tourID
		}
		if len(itineraries) == 0 {
			return nil
		}
		return tx.Create(&itineraries).Error
	})
}

// SoldCounts 按行程统计已售人数（取消的预订不计入）
func (r *GormTourRepository) SoldCounts(tourIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(tourIDs))
	if len(tourIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		TourID uint
		Sold   int
	}
	err := r.db.Model(&models.BookingItem{}).
		Select("booking_items.tour_id AS tour_id, COALESCE(SUM(booking_items.quantity), 0) AS sold").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("booking_items.tour_id IN ? AND bookings.status != ? AND bookings.deleted_at IS NULL", tourIDs, "canceled").
		Group("booking_items.tour_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TourID] = row.Sold
	}
	return counts, nil
}

// ReserveSlots 扣减剩余名额（条件更新防止超卖，返回受影响行数）
func (r *GormTourRepository) ReserveSlots(tourID uint, quantity int) (int64, error) {
	if tourID == 0 || quantity <= 0 {
		return 0, errors.New("invalid slot reserve params")
	}
	result := r.db.Model(&models.Tour{}).
		Where("id = ? AND available_slots >= ?", tourID, quantity).
		Update("available_slots", gorm.Expr("available_slots - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreSlots 归还名额（不超过总名额）
func (r *GormTourRepository) RestoreSlots(tourID uint, quantity int) (int64, error) {
	if tourID == 0 || quantity <= 0 {
		return 0, errors.New("invalid slot restore params")
	}
	result := r.db.Model(&models.Tour{}).
		Where("id = ? AND available_slots + ? <= total_slots", tourID, quantity).
		Update("available_slots", gorm.Expr("available_slots + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
