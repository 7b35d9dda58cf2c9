package worker

import (
	"context"
	"testing"

	"github.com/vietour/internal/provider"
	"github.com/vietour/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleBookingStatusEmailInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskBookingStatusEmail, []byte("not-json"))
	if err := consumer.handleBookingStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleBookingStatusEmailZeroBookingID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskBookingStatusEmail, []byte(`{"booking_id":0}`))
	if err := consumer.handleBookingStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero booking id should be skipped, got %v", err)
	}
}

func TestHandleBookingHoldExpireNilTask(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	if err := consumer.handleBookingHoldExpire(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
}

func TestHandleBookingHoldExpireZeroBookingID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskBookingHoldExpire, []byte(`{"booking_id":0}`))
	if err := consumer.handleBookingHoldExpire(context.Background(), task); err != nil {
		t.Fatalf("zero booking id should be skipped, got %v", err)
	}
}

func TestHandleBookingHoldExpireMissingService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskBookingHoldExpire, []byte(`{"booking_id":42}`))
	if err := consumer.handleBookingHoldExpire(context.Background(), task); err != nil {
		t.Fatalf("missing booking service should be skipped, got %v", err)
	}
}
