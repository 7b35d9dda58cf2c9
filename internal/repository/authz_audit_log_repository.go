package repository

import (
	"github.com/vietour/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 权限审计数据访问接口
type AuthzAuditLogRepository interface {
	Create(log *models.AuthzAuditLog) error
	ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error)
}

// GormAuthzAuditLogRepository GORM 实现
type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

// NewAuthzAuditLogRepository 创建权限审计仓库
func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

// Create 写入一条审计记录
func (r *GormAuthzAuditLogRepository) Create(log *models.AuthzAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

func scopeAuditLogFilter(tx *gorm.DB, filter AuthzAuditLogListFilter) *gorm.DB {
	if filter.OperatorAdminID != 0 {
		tx = tx.Where("operator_admin_id = ?", filter.OperatorAdminID)
	}
	if filter.TargetAdminID != 0 {
		tx = tx.Where("target_admin_id = ?", filter.TargetAdminID)
	}
	if filter.Action != "" {
		tx = tx.Where("action = ?", filter.Action)
	}
	if filter.Role != "" {
		tx = tx.Where("role = ?", filter.Role)
	}
	if filter.Object != "" {
		tx = tx.Where("object = ?", filter.Object)
	}
	if filter.Method != "" {
		tx = tx.Where("method = ?", filter.Method)
	}
	if filter.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		tx = tx.Where("created_at <= ?", *filter.CreatedTo)
	}
	return tx
}

// ListAdmin 后台按条件检索审计记录，新的在前
func (r *GormAuthzAuditLogRepository) ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	tx := scopeAuditLogFilter(r.db.Model(&models.AuthzAuditLog{}), filter)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.AuthzAuditLog, 0)
	if err := applyPagination(tx, filter.Page, filter.PageSize).
		Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
