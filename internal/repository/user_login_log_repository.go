package repository

import (
	"github.com/vietour/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository 登录记录数据访问接口
type UserLoginLogRepository interface {
	Create(log *models.UserLoginLog) error
	ListAdmin(filter UserLoginLogListFilter) ([]models.UserLoginLog, int64, error)
	ListByUser(userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error)
}

// GormUserLoginLogRepository GORM 实现
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository 创建登录记录仓库
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

// Create 写入登录记录
func (r *GormUserLoginLogRepository) Create(log *models.UserLoginLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

func scopeLoginLogFilter(tx *gorm.DB, filter UserLoginLogListFilter) *gorm.DB {
	if filter.UserID != 0 {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.Email != "" {
		tx = tx.Where("email = ?", filter.Email)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.FailReason != "" {
		tx = tx.Where("fail_reason = ?", filter.FailReason)
	}
	if filter.ClientIP != "" {
		tx = tx.Where("client_ip = ?", filter.ClientIP)
	}
	if filter.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		tx = tx.Where("created_at <= ?", *filter.CreatedTo)
	}
	return tx
}

// ListAdmin 后台按条件检索登录记录，新的在前
func (r *GormUserLoginLogRepository) ListAdmin(filter UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	tx := scopeLoginLogFilter(r.db.Model(&models.UserLoginLog{}), filter)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.UserLoginLog, 0)
	if err := applyPagination(tx, filter.Page, filter.PageSize).
		Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ListByUser 查询某个用户自己的登录历史，新的在前
func (r *GormUserLoginLogRepository) ListByUser(userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	tx := r.db.Model(&models.UserLoginLog{}).Where("user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.UserLoginLog, 0)
	if err := applyPagination(tx, page, pageSize).
		Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
