package models

import "time"

// TourItinerary 行程每日安排表
type TourItinerary struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                          // 主键
	TourID      uint      `gorm:"not null;uniqueIndex:idx_itinerary_tour_day" json:"tour_id"`    // 行程ID
	DayNumber   int       `gorm:"not null;uniqueIndex:idx_itinerary_tour_day" json:"day_number"` // 第几天
	Title       string    `gorm:"not null" json:"title"`                                         // 当日标题
	Description string    `gorm:"type:text" json:"description"`                                  // 当日内容
	CreatedAt   time.Time `json:"created_at"`                                                    // 创建时间
}

// TableName 指定表名
func (TourItinerary) TableName() string {
	return "tour_itineraries"
}
