package service

import (
	"strings"
	"testing"

	"github.com/vietour/internal/i18n"
	"github.com/vietour/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildBookingStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		status              string
		bookingNo           string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:      "confirmed_vi",
			locale:    i18n.LocaleVI,
			status:    "confirmed",
			bookingNo: "VT-CONFIRM",
			wantSubjectContains: []string{
				"Cập nhật đơn đặt tour",
				"Đã xác nhận",
			},
			wantBodyContains: []string{
				"VT-CONFIRM",
				"Đã xác nhận",
			},
		},
		{
			name:      "canceled_en",
			locale:    i18n.LocaleEN,
			status:    "canceled",
			bookingNo: "VT-CANCEL",
			wantSubjectContains: []string{
				"Booking update",
				"Canceled",
			},
			wantBodyContains: []string{
				"Booking VT-CANCEL has been canceled",
			},
		},
		{
			name:      "completed_en",
			locale:    i18n.LocaleEN,
			status:    "completed",
			bookingNo: "VT-DONE",
			wantSubjectContains: []string{
				"Booking update",
				"Completed",
			},
			wantBodyContains: []string{
				"Your booking VT-DONE is now",
				"Completed",
			},
		},
		{
			name:      "unknown_status_falls_through",
			locale:    i18n.LocaleEN,
			status:    "on_hold",
			bookingNo: "VT-HOLD",
			wantSubjectContains: []string{
				"Booking update",
				"on_hold",
			},
			wantBodyContains: []string{
				"VT-HOLD",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := BookingStatusEmailInput{
				BookingNo: tt.bookingNo,
				Status:    tt.status,
				Amount:    models.NewMoneyFromDecimal(decimal.NewFromInt(3200000)),
				Currency:  "VND",
			}
			subject, body := buildBookingStatusContent(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
			if !strings.Contains(body, "3200000.00 VND") {
				t.Fatalf("body missing amount: %s", body)
			}
		})
	}
}

func TestSendBookingStatusEmailNotConfigured(t *testing.T) {
	svc := NewEmailService(nil)
	err := svc.SendBookingStatusEmail("user@example.com", BookingStatusEmailInput{BookingNo: "VT1", Status: "confirmed"}, i18n.LocaleVI)
	if err != ErrEmailServiceNotConfigured {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}
