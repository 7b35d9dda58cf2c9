package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingItem 预订项表
type BookingItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	BookingID  uint           `gorm:"index;not null" json:"booking_id"`                         // 预订ID
	TourID     uint           `gorm:"index;not null" json:"tour_id"`                            // 行程ID
	TourName   string         `gorm:"not null" json:"tour_name"`                                // 行程名称快照
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照
	Quantity   int            `gorm:"not null" json:"quantity"`                                 // 人数
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (BookingItem) TableName() string {
	return "booking_items"
}
