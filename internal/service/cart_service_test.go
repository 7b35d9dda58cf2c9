package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Tour{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cfg := &config.Config{}
	cfg.Assets.TourImageBase = "/content/images/tours"
	cfg.Assets.PlaceholderImage = "placeholder.jpg"
	cartRepo := repository.NewCartRepository(db)
	tourRepo := repository.NewTourRepository(db)
	return NewCartService(cfg, cartRepo, tourRepo), db
}

func createCartTestTour(t *testing.T, db *gorm.DB, name string, price int64, status string) *models.Tour {
	t.Helper()
	tour := &models.Tour{
		CategoryID:     1,
		Name:           name,
		Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		TotalSlots:     20,
		AvailableSlots: 20,
		Status:         status,
	}
	if err := db.Create(tour).Error; err != nil {
		t.Fatalf("create tour failed: %v", err)
	}
	return tour
}

func TestCartAddItemCreatesCartAndAccumulates(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Hạ Long Bay 3N2Đ", 3200000, "active")

	result, err := svc.AddItem(1, tour.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if result.CartCount != 2 {
		t.Fatalf("cart count want 2 got %d", result.CartCount)
	}

	// 重复加购同一行程应累加数量而不是新增一行
	result, err = svc.AddItem(1, tour.ID, 3)
	if err != nil {
		t.Fatalf("second add item failed: %v", err)
	}
	if result.CartCount != 5 {
		t.Fatalf("cart count want 5 got %d", result.CartCount)
	}

	var itemCount int64
	if err := db.Model(&models.CartItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if itemCount != 1 {
		t.Fatalf("cart item rows want 1 got %d", itemCount)
	}
	if !result.Total.Equal(decimal.NewFromInt(16000000)) {
		t.Fatalf("total want 16000000 got %s", result.Total.String())
	}
}

func TestCartAddItemRejectsInactiveTour(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Phú Quốc 3N2Đ", 3990000, "inactive")

	if _, err := svc.AddItem(1, tour.ID, 1); !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestCartAddItemRejectsInvalidQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Sa Pa 2N1Đ", 2450000, "active")

	if _, err := svc.AddItem(1, tour.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddItem(1, tour.ID, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative quantity, got %v", err)
	}
}

func TestCartUpdateQuantityZeroDeletesItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Huế - Hội An 4N3Đ", 4850000, "active")

	if _, err := svc.AddItem(1, tour.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	var item models.CartItem
	if err := db.Where("tour_id = ?", tour.ID).First(&item).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}

	result, err := svc.UpdateQuantity(1, item.ID, 0)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if result.CartCount != 0 {
		t.Fatalf("cart count want 0 got %d", result.CartCount)
	}
	var remaining int64
	if err := db.Model(&models.CartItem{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected zero-quantity item to be removed, rows=%d", remaining)
	}
}

func TestCartUpdateQuantityReturnsItemSubtotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Ninh Bình 1N", 890000, "active")

	if _, err := svc.AddItem(1, tour.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	var item models.CartItem
	if err := db.Where("tour_id = ?", tour.ID).First(&item).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}

	result, err := svc.UpdateQuantity(1, item.ID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if result.CartCount != 4 {
		t.Fatalf("cart count want 4 got %d", result.CartCount)
	}
	if !result.ItemSubtotal.Equal(decimal.NewFromInt(3560000)) {
		t.Fatalf("item subtotal want 3560000 got %s", result.ItemSubtotal.String())
	}
}

func TestCartRemoveItemNotFound(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Đà Lạt 3N2Đ", 2990000, "active")

	if _, err := svc.AddItem(1, tour.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := svc.RemoveItem(1, 9999); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
	// 另一用户尚无购物车
	if _, err := svc.RemoveItem(2, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for missing cart, got %v", err)
	}
}

func TestCartViewEmpty(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	view, err := svc.View(42)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Items) != 0 || view.CartCount != 0 {
		t.Fatalf("expected empty cart view, got %+v", view)
	}
	if !view.Total.Equal(decimal.Zero) {
		t.Fatalf("empty cart total want 0 got %s", view.Total.String())
	}
}

func TestCartViewKeepsPriceSnapshot(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	tour := createCartTestTour(t, db, "Cát Bà 2N1Đ", 1990000, "active")

	if _, err := svc.AddItem(1, tour.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	// 加购后涨价不影响已有快照
	tour.Price = models.NewMoneyFromDecimal(decimal.NewFromInt(2590000))
	if err := db.Save(tour).Error; err != nil {
		t.Fatalf("update tour price failed: %v", err)
	}

	view, err := svc.View(1)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("cart items want 1 got %d", len(view.Items))
	}
	if !view.Items[0].UnitPrice.Equal(decimal.NewFromInt(1990000)) {
		t.Fatalf("unit price snapshot want 1990000 got %s", view.Items[0].UnitPrice.String())
	}
	if !view.Total.Equal(decimal.NewFromInt(3980000)) {
		t.Fatalf("total want 3980000 got %s", view.Total.String())
	}
}
