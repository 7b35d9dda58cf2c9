package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking 预订单表
type Booking struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	BookingNo   string         `gorm:"uniqueIndex;not null" json:"booking_no"`                    // 预订编号
	UserID      uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status      string         `gorm:"index;not null" json:"status"`                              // 预订状态
	Currency    string         `gorm:"not null" json:"currency"`                                  // 币种
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 总金额
	ContactJSON JSON           `gorm:"type:json" json:"contact"`                                  // 下单时联系方式快照
	ClientIP    string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`               // 下单客户端IP
	ExpiresAt   *time.Time     `gorm:"index" json:"expires_at"`                                   // pending 占位到期时间
	ConfirmedAt *time.Time     `gorm:"index" json:"confirmed_at"`                                 // 确认时间
	CanceledAt  *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items,omitempty"` // 预订项
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}
