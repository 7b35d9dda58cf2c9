package models

import "time"

// CartItem 购物车项
// 说明：同一购物车内每个行程至多一行，由 (cart_id, tour_id) 唯一索引保证，
// 重复加购走原子 upsert 累加数量。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                      // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_item_cart_tour" json:"cart_id"` // 购物车ID
	TourID    uint      `gorm:"not null;uniqueIndex:idx_cart_item_cart_tour" json:"tour_id"` // 行程ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                  // 数量
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 加购时快照单价
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                // 更新时间

	// 关联
	Tour *Tour `gorm:"foreignKey:TourID" json:"tour,omitempty"` // 关联行程
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
