package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
)

// BookingCheckoutRequest 下单请求
type BookingCheckoutRequest struct {
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	ContactEmail string `json:"contact_email"`
}

// CreateBooking 从购物车结算下单
func (h *Handler) CreateBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req BookingCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	booking, err := h.BookingService.Checkout(service.CheckoutInput{
		UserID:       uid,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ClientIP:     c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "error.cart_empty", nil)
		case errors.Is(err, service.ErrTourNotFound):
			respondError(c, response.CodeBadRequest, "error.tour_not_found", nil)
		case errors.Is(err, service.ErrInsufficientSlots):
			respondError(c, response.CodeBadRequest, "error.insufficient_slots", nil)
		default:
			respondError(c, response.CodeInternal, "error.checkout_failed", err)
		}
		return
	}

	requestLog(c).Infow("booking_created",
		"booking_no", booking.BookingNo,
		"user_id", uid,
		"total_amount", booking.TotalAmount.String(),
	)
	response.Success(c, booking)
}

// GetMyBookings 获取当前用户的预订列表
func (h *Handler) GetMyBookings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	bookings, total, err := h.BookingService.ListByUser(repository.BookingListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
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

// GetMyBooking 获取当前用户的预订详情
func (h *Handler) GetMyBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := h.BookingService.GetForUser(bookingID, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.booking_fetch_failed", err)
		}
		return
	}

	response.Success(c, booking)
}

// CancelMyBooking 用户取消预订
func (h *Handler) CancelMyBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := h.BookingService.Cancel(bookingID, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		case errors.Is(err, service.ErrBookingNotCancelable):
			respondError(c, response.CodeBadRequest, "error.booking_not_cancelable", nil)
		default:
			respondError(c, response.CodeInternal, "error.booking_cancel_failed", err)
		}
		return
	}

	response.Success(c, booking)
}

func parseBookingID(c *gin.Context) (uint, bool) {
	rawID := c.Param("id")
	bookingID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || bookingID == 0 {
		respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		return 0, false
	}
	return uint(bookingID), true
}
