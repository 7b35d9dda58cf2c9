package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vietour/internal/logger"
	"github.com/vietour/internal/provider"
	"github.com/vietour/internal/queue"
	"github.com/vietour/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBookingStatusEmail, c.handleBookingStatusEmail)
	mux.HandleFunc(queue.TaskBookingHoldExpire, c.handleBookingHoldExpire)
}

func (c *Consumer) handleBookingStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_booking_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookingStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.BookingID == 0 {
		logger.Debugw("worker_booking_status_email_skip_invalid_payload", "booking_id", payload.BookingID)
		return nil
	}
	booking, err := c.BookingRepo.GetByID(payload.BookingID)
	if err != nil {
		logger.Warnw("worker_booking_status_email_fetch_booking_failed", "booking_id", payload.BookingID, "error", err)
		return err
	}
	if booking == nil {
		logger.Debugw("worker_booking_status_email_skip_booking_not_found", "booking_id", payload.BookingID)
		return nil
	}
	var receiverEmail string
	var locale string
	user, err := c.UserRepo.GetByID(booking.UserID)
	if err != nil {
		logger.Warnw("worker_booking_status_email_fetch_user_failed", "booking_id", booking.ID, "user_id", booking.UserID, "error", err)
		return err
	}
	if user != nil {
		receiverEmail = strings.TrimSpace(user.Email)
		locale = strings.TrimSpace(user.Locale)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_booking_status_email_skip_empty_receiver", "booking_id", booking.ID, "booking_no", booking.BookingNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_booking_status_email_skip_email_service_nil", "booking_id", booking.ID, "booking_no", booking.BookingNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = booking.Status
	}
	input := service.BookingStatusEmailInput{
		BookingNo: booking.BookingNo,
		Status:    status,
		Amount:    booking.TotalAmount,
		Currency:  booking.Currency,
	}
	if err := c.EmailService.SendBookingStatusEmail(receiverEmail, input, locale); err != nil {
		logger.Warnw("worker_booking_status_email_send_failed",
			"booking_id", booking.ID,
			"booking_no", booking.BookingNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleBookingHoldExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_booking_hold_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookingHoldExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_hold_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.BookingID == 0 {
		logger.Debugw("worker_booking_hold_expire_skip_invalid_payload", "booking_id", payload.BookingID)
		return nil
	}
	if c.BookingService == nil {
		logger.Warnw("worker_booking_hold_expire_skip_booking_service_nil", "booking_id", payload.BookingID)
		return nil
	}
	_, err := c.BookingService.CancelExpired(payload.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			logger.Debugw("worker_booking_hold_expire_skip_booking_not_found", "booking_id", payload.BookingID)
			return nil
		default:
			logger.Warnw("worker_booking_hold_expire_failed", "booking_id", payload.BookingID, "error", err)
			return err
		}
	}
	return nil
}
