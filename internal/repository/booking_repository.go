package repository

import (
	"errors"
	"strings"

	"github.com/vietour/internal/models"

	"gorm.io/gorm"
)

// BookingRepository 预订数据访问接口
type BookingRepository interface {
	Create(booking *models.Booking, items []models.BookingItem) error
	GetByID(id uint) (*models.Booking, error)
	GetByIDAndUser(id uint, userID uint) (*models.Booking, error)
	GetByBookingNoAndUser(bookingNo string, userID uint) (*models.Booking, error)
	ListByUser(filter BookingListFilter) ([]models.Booking, int64, error)
	ListAdmin(filter BookingListFilter) ([]models.Booking, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	UpdateStatusIf(id uint, fromStatuses []string, status string, updates map[string]interface{}) (int64, error)
	ResolveReceiverEmailByBookingID(bookingID uint) (string, error)
	WithTx(tx *gorm.DB) *GormBookingRepository
}

// GormBookingRepository GORM 实现
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓库
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBookingRepository) WithTx(tx *gorm.DB) *GormBookingRepository {
	if tx == nil {
		return r
	}
	return &GormBookingRepository{db: tx}
}

// Create 创建预订与预订项
func (r *GormBookingRepository) Create(booking *models.Booking, items []models.BookingItem) error {
	if err := r.db.Create(booking).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].BookingID = booking.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取预订
func (r *GormBookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Items").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByIDAndUser 获取用户预订详情
func (r *GormBookingRepository) GetByIDAndUser(id uint, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Items").Where("id = ? AND user_id = ?", id, userID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByBookingNoAndUser 获取用户预订详情（按编号）
func (r *GormBookingRepository) GetByBookingNoAndUser(bookingNo string, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Items").Where("booking_no = ? AND user_id = ?", bookingNo, userID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// ListByUser 获取用户预订列表
func (r *GormBookingRepository) ListByUser(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{}).Where("user_id = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BookingNo != "" {
		query = query.Where("booking_no LIKE ?", "%"+filter.BookingNo+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var bookings []models.Booking
	if err := query.Preload("Items").Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListAdmin 管理端预订列表
func (r *GormBookingRepository) ListAdmin(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BookingNo != "" {
		query = query.Where("booking_no = ?", filter.BookingNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var bookings []models.Booking
	if err := query.Preload("Items").Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatus 更新预订状态
func (r *GormBookingRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusIf 仅当当前状态在指定集合内时更新状态，返回受影响行数
func (r *GormBookingRepository) UpdateStatusIf(id uint, fromStatuses []string, status string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	result := r.db.Model(&models.Booking{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ResolveReceiverEmailByBookingID 根据预订 ID 解析状态通知的收件邮箱。
func (r *GormBookingRepository) ResolveReceiverEmailByBookingID(bookingID uint) (string, error) {
	if bookingID == 0 {
		return "", nil
	}

	var bookingRow struct {
		UserID uint
	}
	if err := r.db.Model(&models.Booking{}).
		Select("user_id").
		Where("id = ?", bookingID).
		Take(&bookingRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if bookingRow.UserID == 0 {
		return "", nil
	}

	var userRow struct {
		Email string
	}
	if err := r.db.Model(&models.User{}).
		Select("email").
		Where("id = ?", bookingRow.UserID).
		Take(&userRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(userRow.Email), nil
}
