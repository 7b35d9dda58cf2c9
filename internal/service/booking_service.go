package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/logger"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/queue"
	"github.com/vietour/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结账输入
type CheckoutInput struct {
	UserID       uint
	ContactName  string
	ContactPhone string
	ContactEmail string
	ClientIP     string
}

// BookingService 预订服务
type BookingService struct {
	cfg         *config.Config
	bookingRepo repository.BookingRepository
	cartRepo    repository.CartRepository
	tourRepo    repository.TourRepository
	queueClient *queue.Client
}

// NewBookingService 创建预订服务
func NewBookingService(cfg *config.Config, bookingRepo repository.BookingRepository, cartRepo repository.CartRepository, tourRepo repository.TourRepository, queueClient *queue.Client) *BookingService {
	return &BookingService{
		cfg:         cfg,
		bookingRepo: bookingRepo,
		cartRepo:    cartRepo,
		tourRepo:    tourRepo,
		queueClient: queueClient,
	}
}

var allowedBookingTransitions = map[string]map[string]bool{
	constants.BookingStatusPending: {
		constants.BookingStatusConfirmed: true,
		constants.BookingStatusCanceled:  true,
	},
	constants.BookingStatusConfirmed: {
		constants.BookingStatusCompleted: true,
		constants.BookingStatusCanceled:  true,
	},
}

// Checkout 结账：购物车整体转为一笔预订。
// 同一事务内逐项做受保护的名额扣减（防超卖）、写入价格快照并清空购物车。
func (s *BookingService) Checkout(input CheckoutInput) (*models.Booking, error) {
	if input.UserID == 0 {
		return nil, ErrNotFound
	}

	cart, err := s.cartRepo.GetByUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}
	cartItems, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	expireMinutes := s.resolveHoldExpireMinutes()
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireMinutes) * time.Minute)

	booking := &models.Booking{
		BookingNo: generateBookingNo(),
		UserID:    input.UserID,
		Status:    constants.BookingStatusPending,
		Currency:  constants.SiteCurrencyDefault,
		ContactJSON: models.JSON{
			"name":  strings.TrimSpace(input.ContactName),
			"phone": strings.TrimSpace(input.ContactPhone),
			"email": strings.TrimSpace(input.ContactEmail),
		},
		ClientIP:  strings.TrimSpace(input.ClientIP),
		ExpiresAt: &expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		tourRepo := s.tourRepo.WithTx(tx)
		total := decimal.Zero
		items := make([]models.BookingItem, 0, len(cartItems))

		for _, cartItem := range cartItems {
			tour, err := tourRepo.GetActiveByID(cartItem.TourID)
			if err != nil {
				return err
			}
			if tour == nil {
				return ErrTourNotFound
			}

			affected, err := tourRepo.ReserveSlots(tour.ID, cartItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientSlots
			}

			subtotal := cartItem.UnitPrice.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
			total = total.Add(subtotal)
			items = append(items, models.BookingItem{
				TourID:     tour.ID,
				TourName:   tour.Name,
				UnitPrice:  cartItem.UnitPrice,
				Quantity:   cartItem.Quantity,
				TotalPrice: models.NewMoneyFromDecimal(subtotal),
			})
		}

		booking.TotalAmount = models.NewMoneyFromDecimal(total)
		if err := s.bookingRepo.WithTx(tx).Create(booking, items); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).Clear(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(booking.ID, constants.BookingStatusPending)
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueBookingHoldExpire(queue.BookingHoldExpirePayload{
			BookingID: booking.ID,
		}, time.Duration(expireMinutes)*time.Minute); err != nil {
			logger.Warnw("booking_enqueue_hold_expire_failed",
				"booking_id", booking.ID,
				"booking_no", booking.BookingNo,
				"error", err,
			)
		}
	}

	return s.bookingRepo.GetByID(booking.ID)
}

// ListByUser 用户预订历史
func (s *BookingService) ListByUser(filter repository.BookingListFilter) ([]models.Booking, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotFound
	}
	bookings, total, err := s.bookingRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range bookings {
		if err := s.ensureCanceledIfExpired(&bookings[i]); err != nil {
			return nil, 0, err
		}
	}
	return bookings, total, nil
}

// GetForUser 用户预订详情
func (s *BookingService) GetForUser(bookingID, userID uint) (*models.Booking, error) {
	if bookingID == 0 || userID == 0 {
		return nil, ErrBookingNotFound
	}
	booking, err := s.bookingRepo.GetByIDAndUser(bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if err := s.ensureCanceledIfExpired(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel 用户取消预订（归还名额）
func (s *BookingService) Cancel(bookingID, userID uint) (*models.Booking, error) {
	booking, err := s.GetForUser(bookingID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cancelBooking(booking); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(booking.ID, constants.BookingStatusCanceled)
	return s.bookingRepo.GetByID(booking.ID)
}

// CancelExpired 取消已过期的 pending 预订（worker 调用）
func (s *BookingService) CancelExpired(bookingID uint) (*models.Booking, error) {
	if bookingID == 0 {
		return nil, ErrBookingNotFound
	}
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != constants.BookingStatusPending {
		return booking, nil
	}
	if booking.ExpiresAt == nil || booking.ExpiresAt.After(time.Now()) {
		return booking, nil
	}
	if err := s.cancelBooking(booking); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(booking.ID, constants.BookingStatusCanceled)
	return s.bookingRepo.GetByID(booking.ID)
}

// ListAdmin 后台预订列表
func (s *BookingService) ListAdmin(filter repository.BookingListFilter) ([]models.Booking, int64, error) {
	return s.bookingRepo.ListAdmin(filter)
}

// GetAdmin 后台预订详情
func (s *BookingService) GetAdmin(bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// UpdateStatus 后台推进预订状态（校验状态机，取消时归还名额）
func (s *BookingService) UpdateStatus(bookingID uint, targetStatus string) (*models.Booking, error) {
	target := strings.ToLower(strings.TrimSpace(targetStatus))
	booking, err := s.GetAdmin(bookingID)
	if err != nil {
		return nil, err
	}
	if !allowedBookingTransitions[booking.Status][target] {
		return nil, ErrInvalidBookingStatus
	}

	now := time.Now()
	switch target {
	case constants.BookingStatusCanceled:
		if err := s.cancelBooking(booking); err != nil {
			return nil, err
		}
	case constants.BookingStatusConfirmed:
		affected, err := s.bookingRepo.UpdateStatusIf(
			booking.ID,
			[]string{constants.BookingStatusPending},
			constants.BookingStatusConfirmed,
			map[string]interface{}{"confirmed_at": now, "expires_at": nil},
		)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInvalidBookingStatus
		}
	case constants.BookingStatusCompleted:
		affected, err := s.bookingRepo.UpdateStatusIf(
			booking.ID,
			[]string{constants.BookingStatusConfirmed},
			constants.BookingStatusCompleted,
			nil,
		)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInvalidBookingStatus
		}
	default:
		return nil, ErrInvalidBookingStatus
	}

	s.enqueueStatusEmail(booking.ID, target)
	return s.bookingRepo.GetByID(booking.ID)
}

// cancelBooking 取消预订并归还名额。状态条件更新保证并发下只取消一次。
func (s *BookingService) cancelBooking(booking *models.Booking) error {
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.Status != constants.BookingStatusPending && booking.Status != constants.BookingStatusConfirmed {
		return ErrBookingNotCancelable
	}

	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.bookingRepo.WithTx(tx).UpdateStatusIf(
			booking.ID,
			[]string{constants.BookingStatusPending, constants.BookingStatusConfirmed},
			constants.BookingStatusCanceled,
			map[string]interface{}{"canceled_at": now},
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrBookingNotCancelable
		}

		tourRepo := s.tourRepo.WithTx(tx)
		for _, item := range booking.Items {
			if _, err := tourRepo.RestoreSlots(item.TourID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// ensureCanceledIfExpired 读取时懒同步过期预订状态
func (s *BookingService) ensureCanceledIfExpired(booking *models.Booking) error {
	if booking == nil {
		return nil
	}
	if booking.Status != constants.BookingStatusPending {
		return nil
	}
	if booking.ExpiresAt == nil || booking.ExpiresAt.After(time.Now()) {
		return nil
	}
	if err := s.cancelBooking(booking); err != nil {
		return err
	}
	now := time.Now()
	booking.Status = constants.BookingStatusCanceled
	booking.CanceledAt = &now
	return nil
}

func (s *BookingService) enqueueStatusEmail(bookingID uint, status string) {
	if s.queueClient == nil || bookingID == 0 {
		return
	}
	receiver, err := s.bookingRepo.ResolveReceiverEmailByBookingID(bookingID)
	if err == nil && strings.TrimSpace(receiver) == "" {
		return
	}
	if err := s.queueClient.EnqueueBookingStatusEmail(queue.BookingStatusEmailPayload{
		BookingID: bookingID,
		Status:    status,
	}); err != nil {
		logger.Warnw("booking_enqueue_status_email_failed",
			"booking_id", bookingID,
			"status", status,
			"error", err,
		)
	}
}

func (s *BookingService) resolveHoldExpireMinutes() int {
	if s.cfg == nil || s.cfg.Booking.HoldExpireMinutes <= 0 {
		return 30
	}
	return s.cfg.Booking.HoldExpireMinutes
}

func generateBookingNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("VT%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
