package models

import (
	"time"

	"gorm.io/gorm"
)

// Place 地点表
// 说明：历史数据存在 name/title 双列与遗留 photo_url 列，展示层统一经过
// PlaceCard 归一化后输出。
type Place struct {
	ID          uint           `gorm:"primarykey" json:"id"`                        // 主键
	Name        string         `gorm:"index" json:"name"`                           // 地点名称
	Title       string         `gorm:"index" json:"title"`                          // 遗留名称列（部分历史数据只填了它）
	CategoryID  *uint          `gorm:"index" json:"category_id,omitempty"`          // 分类ID（可空）
	Address     string         `gorm:"type:varchar(500)" json:"address"`            // 地址
	Longitude   float64        `json:"longitude"`                                   // 经度
	Latitude    float64        `json:"latitude"`                                    // 纬度
	AvgRating   float64        `gorm:"index" json:"avg_rating"`                     // 平均评分
	RatingCount int            `gorm:"default:0" json:"rating_count"`               // 评分数量
	PhotoURL    string         `gorm:"type:varchar(500)" json:"photo_url"`          // 遗留单图列
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`         // 是否展示
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                  // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间

	// 关联
	Images []PlaceImage `gorm:"foreignKey:PlaceID" json:"images,omitempty"` // 地点图片
}

// TableName 指定表名
func (Place) TableName() string {
	return "places"
}
