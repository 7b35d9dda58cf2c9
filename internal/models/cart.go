package models

import "time"

// Cart 购物车表
// 说明：每个用户至多一行，由 user_id 唯一索引兜底并发下的惰性创建。
// 购物车与购物车项均为硬删除，避免软删除残留与唯一索引冲突。
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                  // 主键
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`   // 用户ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                            // 更新时间

	// 关联
	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
