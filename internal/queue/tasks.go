package queue

import (
	"encoding/json"

	"github.com/vietour/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskBookingStatusEmail 预订状态邮件通知任务
	TaskBookingStatusEmail = constants.TaskBookingStatusEmail
	// TaskBookingHoldExpire 预订占位到期取消任务
	TaskBookingHoldExpire = constants.TaskBookingHoldExpire
)

// BookingStatusEmailPayload 预订状态邮件任务载荷
type BookingStatusEmailPayload struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
}

// BookingHoldExpirePayload 预订占位到期任务载荷
type BookingHoldExpirePayload struct {
	BookingID uint `json:"booking_id"`
}

// NewBookingStatusEmailTask 创建预订状态邮件任务
func NewBookingStatusEmailTask(payload BookingStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingStatusEmail, body), nil
}

// NewBookingHoldExpireTask 创建预订占位到期任务
func NewBookingHoldExpireTask(payload BookingHoldExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingHoldExpire, body), nil
}
