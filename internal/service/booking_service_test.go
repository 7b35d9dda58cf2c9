package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupBookingServiceTest(t *testing.T) (*BookingService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tour{},
		&models.Cart{},
		&models.CartItem{},
		&models.Booking{},
		&models.BookingItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cfg := &config.Config{}
	cfg.Booking.HoldExpireMinutes = 30
	bookingRepo := repository.NewBookingRepository(db)
	cartRepo := repository.NewCartRepository(db)
	tourRepo := repository.NewTourRepository(db)
	bookingSvc := NewBookingService(cfg, bookingRepo, cartRepo, tourRepo, nil)
	cartSvc := NewCartService(cfg, cartRepo, tourRepo)
	return bookingSvc, cartSvc, db
}

func createBookingTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("booking_user_%d@example.com", id),
		PasswordHash: "hash",
		Status:       "active",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func createBookingTestTour(t *testing.T, db *gorm.DB, name string, price int64, slots int) *models.Tour {
	t.Helper()
	tour := &models.Tour{
		CategoryID:     1,
		Name:           name,
		Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		TotalSlots:     slots,
		AvailableSlots: slots,
		Status:         "active",
	}
	if err := db.Create(tour).Error; err != nil {
		t.Fatalf("create tour failed: %v", err)
	}
	return tour
}

func TestCheckoutCreatesPendingBookingAndClearsCart(t *testing.T) {
	bookingSvc, cartSvc, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)
	tour := createBookingTestTour(t, db, "Hạ Long Bay 3N2Đ", 3200000, 10)

	if _, err := cartSvc.AddItem(1, tour.ID, 3); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	booking, err := bookingSvc.Checkout(CheckoutInput{
		UserID:       1,
		ContactName:  "Nguyễn Văn A",
		ContactPhone: "0900000000",
		ContactEmail: "a@example.com",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if booking.Status != constants.BookingStatusPending {
		t.Fatalf("status want pending got %s", booking.Status)
	}
	if booking.ExpiresAt == nil {
		t.Fatalf("pending booking should carry expires_at")
	}
	if !booking.TotalAmount.Equal(decimal.NewFromInt(9600000)) {
		t.Fatalf("total want 9600000 got %s", booking.TotalAmount.String())
	}
	if len(booking.Items) != 1 || booking.Items[0].Quantity != 3 {
		t.Fatalf("unexpected booking items: %+v", booking.Items)
	}

	var reloaded models.Tour
	if err := db.First(&reloaded, tour.ID).Error; err != nil {
		t.Fatalf("reload tour failed: %v", err)
	}
	if reloaded.AvailableSlots != 7 {
		t.Fatalf("available slots want 7 got %d", reloaded.AvailableSlots)
	}

	var remaining int64
	if err := db.Model(&models.CartItem{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("checkout should clear cart, rows=%d", remaining)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	bookingSvc, _, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)

	if _, err := bookingSvc.Checkout(CheckoutInput{UserID: 1}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutInsufficientSlotsRollsBack(t *testing.T) {
	bookingSvc, cartSvc, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)
	tour := createBookingTestTour(t, db, "Sa Pa 2N1Đ", 2450000, 2)

	if _, err := cartSvc.AddItem(1, tour.ID, 5); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := bookingSvc.Checkout(CheckoutInput{UserID: 1}); !errors.Is(err, ErrInsufficientSlots) {
		t.Fatalf("expected ErrInsufficientSlots, got %v", err)
	}

	// 失败后名额与购物车均应保持原样
	var reloaded models.Tour
	if err := db.First(&reloaded, tour.ID).Error; err != nil {
		t.Fatalf("reload tour failed: %v", err)
	}
	if reloaded.AvailableSlots != 2 {
		t.Fatalf("available slots want 2 got %d", reloaded.AvailableSlots)
	}
	var bookings int64
	if err := db.Model(&models.Booking{}).Count(&bookings).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookings != 0 {
		t.Fatalf("no booking should be created, rows=%d", bookings)
	}
	var items int64
	if err := db.Model(&models.CartItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if items != 1 {
		t.Fatalf("cart should keep its item, rows=%d", items)
	}
}

func TestCancelRestoresSlots(t *testing.T) {
	bookingSvc, cartSvc, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)
	tour := createBookingTestTour(t, db, "Huế - Hội An 4N3Đ", 4850000, 10)

	if _, err := cartSvc.AddItem(1, tour.ID, 4); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	booking, err := bookingSvc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	canceled, err := bookingSvc.Cancel(booking.ID, 1)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.Status != constants.BookingStatusCanceled {
		t.Fatalf("status want canceled got %s", canceled.Status)
	}
	if canceled.CanceledAt == nil {
		t.Fatalf("canceled booking should carry canceled_at")
	}

	var reloaded models.Tour
	if err := db.First(&reloaded, tour.ID).Error; err != nil {
		t.Fatalf("reload tour failed: %v", err)
	}
	if reloaded.AvailableSlots != 10 {
		t.Fatalf("available slots want 10 got %d", reloaded.AvailableSlots)
	}

	// 已取消的预订不可再次取消
	if _, err := bookingSvc.Cancel(booking.ID, 1); !errors.Is(err, ErrBookingNotCancelable) {
		t.Fatalf("expected ErrBookingNotCancelable, got %v", err)
	}
}

func TestCancelRejectsForeignBooking(t *testing.T) {
	bookingSvc, cartSvc, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)
	createBookingTestUser(t, db, 2)
	tour := createBookingTestTour(t, db, "Đà Lạt 3N2Đ", 2990000, 10)

	if _, err := cartSvc.AddItem(1, tour.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	booking, err := bookingSvc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := bookingSvc.Cancel(booking.ID, 2); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for foreign booking, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	bookingSvc, cartSvc, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)
	tour := createBookingTestTour(t, db, "Phú Quốc 3N2Đ", 3990000, 10)

	if _, err := cartSvc.AddItem(1, tour.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	booking, err := bookingSvc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// pending 不可直接 completed
	if _, err := bookingSvc.UpdateStatus(booking.ID, constants.BookingStatusCompleted); !errors.Is(err, ErrInvalidBookingStatus) {
		t.Fatalf("expected ErrInvalidBookingStatus, got %v", err)
	}

	confirmed, err := bookingSvc.UpdateStatus(booking.ID, constants.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != constants.BookingStatusConfirmed {
		t.Fatalf("status want confirmed got %s", confirmed.Status)
	}
	if confirmed.ExpiresAt != nil {
		t.Fatalf("confirmed booking should drop expires_at")
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatalf("confirmed booking should carry confirmed_at")
	}

	completed, err := bookingSvc.UpdateStatus(booking.ID, constants.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.BookingStatusCompleted {
		t.Fatalf("status want completed got %s", completed.Status)
	}

	// completed 为终态
	if _, err := bookingSvc.UpdateStatus(booking.ID, constants.BookingStatusCanceled); !errors.Is(err, ErrInvalidBookingStatus) {
		t.Fatalf("expected ErrInvalidBookingStatus for terminal state, got %v", err)
	}
}

func TestCancelExpiredPendingBooking(t *testing.T) {
	bookingSvc, cartSvc, db := setupBookingServiceTest(t)
	createBookingTestUser(t, db, 1)
	tour := createBookingTestTour(t, db, "Cát Bà 2N1Đ", 1990000, 10)

	if _, err := cartSvc.AddItem(1, tour.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	booking, err := bookingSvc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 未到期的 pending 不处理
	got, err := bookingSvc.CancelExpired(booking.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if got.Status != constants.BookingStatusPending {
		t.Fatalf("unexpired booking should stay pending, got %s", got.Status)
	}

	expired := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("expires_at", expired).Error; err != nil {
		t.Fatalf("force expire failed: %v", err)
	}

	got, err = bookingSvc.CancelExpired(booking.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if got.Status != constants.BookingStatusCanceled {
		t.Fatalf("status want canceled got %s", got.Status)
	}
	var reloaded models.Tour
	if err := db.First(&reloaded, tour.ID).Error; err != nil {
		t.Fatalf("reload tour failed: %v", err)
	}
	if reloaded.AvailableSlots != 10 {
		t.Fatalf("available slots want 10 got %d", reloaded.AvailableSlots)
	}

	if _, err := bookingSvc.CancelExpired(9999); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
