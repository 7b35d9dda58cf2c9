package models

import (
	"time"

	"gorm.io/gorm"
)

// Tour 行程表
type Tour struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                // 主键
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                   // 分类ID
	Name           string         `gorm:"not null" json:"name"`                                // 行程名称
	Description    string         `gorm:"type:text" json:"description"`                        // 行程介绍
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 单人价格
	Duration       string         `gorm:"type:varchar(64)" json:"duration"`                    // 行程时长（如 3 ngày 2 đêm）
	TotalSlots     int            `gorm:"not null;default:0" json:"total_slots"`               // 名额总量
	AvailableSlots int            `gorm:"not null;default:0" json:"available_slots"`           // 剩余名额
	AvatarURL      string         `gorm:"type:varchar(500)" json:"avatar_url"`                 // 封面图路径（空则使用占位图）
	Tags           StringArray    `gorm:"type:json" json:"tags"`                               // 标签数组
	Status         string         `gorm:"type:varchar(20);default:'active';index" json:"status"` // 上架状态
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	// 关联
	Category    Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Itineraries []TourItinerary `gorm:"foreignKey:TourID" json:"itineraries,omitempty"`  // 每日行程
}

// TableName 指定表名
func (Tour) TableName() string {
	return "tours"
}
