package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateBookingStatusRequest 更新预订状态请求
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminBookings 获取预订列表 (Admin)
func (h *Handler) GetAdminBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		userID = uint(parsed)
	}

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	bookings, total, err := h.BookingService.ListAdmin(repository.BookingListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		BookingNo:   strings.TrimSpace(c.Query("booking_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.booking_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, bookings, pagination)
}

// GetAdminBooking 获取预订详情 (Admin)
func (h *Handler) GetAdminBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "error.booking_not_found")
	if !ok {
		return
	}

	booking, err := h.BookingService.GetAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.booking_fetch_failed", err)
		return
	}

	response.Success(c, booking)
}

// UpdateBookingStatus 管理端流转预订状态
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "error.booking_not_found")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	booking, err := h.BookingService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		case errors.Is(err, service.ErrInvalidBookingStatus):
			respondError(c, response.CodeBadRequest, "error.booking_status_invalid", nil)
		case errors.Is(err, service.ErrBookingNotCancelable):
			respondError(c, response.CodeBadRequest, "error.booking_not_cancelable", nil)
		default:
			respondError(c, response.CodeInternal, "error.booking_update_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_booking_status_updated",
		"booking_id", booking.ID,
		"booking_no", booking.BookingNo,
		"status", booking.Status,
	)
	response.Success(c, booking)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
