package models

import "time"

// PlaceImage 地点图片表
type PlaceImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	PlaceID   uint      `gorm:"not null;index" json:"place_id"`    // 地点ID
	URL       string    `gorm:"not null" json:"url"`               // 图片路径
	SortOrder int       `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time `json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (PlaceImage) TableName() string {
	return "place_images"
}
