package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/vietour/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cart{}, &models.CartItem{}, &models.Tour{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestEnsureByUserIDIdempotent(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	first, err := repo.EnsureByUserID(1)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}
	second, err := repo.EnsureByUserID(1)
	if err != nil {
		t.Fatalf("second ensure cart failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("ensure should reuse existing cart: %d vs %d", first.ID, second.ID)
	}
	if _, err := repo.EnsureByUserID(0); err == nil {
		t.Fatalf("expected error for zero user id")
	}
}

func TestUpsertItemAccumulatesQuantityAndRefreshesPrice(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	cart, err := repo.EnsureByUserID(1)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}

	now := time.Now()
	if err := repo.UpsertItem(&models.CartItem{
		CartID:    cart.ID,
		TourID:    7,
		Quantity:  2,
		UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertItem(&models.CartItem{
		CartID:    cart.ID,
		TourID:    7,
		Quantity:  3,
		UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("item rows want 1 got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", items[0].Quantity)
	}
	if !items[0].UnitPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unit price should take latest snapshot, got %s", items[0].UnitPrice.String())
	}
}

func TestCartAggregates(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)
	cart, err := repo.EnsureByUserID(1)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}

	now := time.Now()
	items := []models.CartItem{
		{CartID: cart.ID, TourID: 1, Quantity: 2, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100))},
		{CartID: cart.ID, TourID: 2, Quantity: 1, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(250))},
	}
	for i := range items {
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		if err := repo.UpsertItem(&items[i]); err != nil {
			t.Fatalf("upsert item failed: %v", err)
		}
	}

	count, err := repo.CountItems(cart.ID)
	if err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("count want 3 got %d", count)
	}

	total, err := repo.TotalAmount(cart.ID)
	if err != nil {
		t.Fatalf("total amount failed: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("total want 450 got %s", total.String())
	}

	subtotal, err := repo.ItemSubtotal(items[0].ID)
	if err != nil {
		t.Fatalf("item subtotal failed: %v", err)
	}
	if !subtotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("subtotal want 200 got %s", subtotal.String())
	}

	if err := repo.Clear(cart.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	count, err = repo.CountItems(cart.ID)
	if err != nil {
		t.Fatalf("count after clear failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after clear want 0 got %d", count)
	}
}

func TestGetItemForCartScopesByCart(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)
	cartA, err := repo.EnsureByUserID(1)
	if err != nil {
		t.Fatalf("ensure cart A failed: %v", err)
	}
	cartB, err := repo.EnsureByUserID(2)
	if err != nil {
		t.Fatalf("ensure cart B failed: %v", err)
	}

	now := time.Now()
	item := models.CartItem{CartID: cartA.ID, TourID: 1, Quantity: 1, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), CreatedAt: now, UpdatedAt: now}
	if err := repo.UpsertItem(&item); err != nil {
		t.Fatalf("upsert item failed: %v", err)
	}

	got, err := repo.GetItemForCart(cartB.ID, item.ID)
	if err != nil {
		t.Fatalf("get item for cart failed: %v", err)
	}
	if got != nil {
		t.Fatalf("item should not be visible from another cart: %+v", got)
	}

	got, err = repo.GetItemForCart(cartA.ID, item.ID)
	if err != nil {
		t.Fatalf("get item for cart failed: %v", err)
	}
	if got == nil {
		t.Fatalf("item should be visible from its own cart")
	}
}
