package public

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/provider"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:public_cart_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	container := &provider.Container{
		Config:      cfg,
		CartService: service.NewCartService(cfg, cartRepo, tourRepo),
	}
	return New(container), db
}

func newCartAddContext(t *testing.T, userID uint, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(userIDContextKey, userID)
	return c, recorder
}

func createHandlerTestTour(t *testing.T, db *gorm.DB) *models.Tour {
	t.Helper()
	tour := &models.Tour{
		CategoryID:     1,
		Name:           "Sa Pa 2N1Đ",
		Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(1890000)),
		TotalSlots:     10,
		AvailableSlots: 10,
		Status:         "active",
	}
	if err := db.Create(tour).Error; err != nil {
		t.Fatalf("create tour failed: %v", err)
	}
	return tour
}

func TestAddCartItemDefaultsOmittedQuantityToOne(t *testing.T) {
	h, db := setupCartHandlerTest(t)
	tour := createHandlerTestTour(t, db)

	// quantity 缺省
	c, recorder := newCartAddContext(t, 1, fmt.Sprintf(`{"tour_id":%d}`, tour.ID))
	h.AddCartItem(c)
	if recorder.Code != http.StatusOK {
		t.Fatalf("omitted quantity want 200 got %d body %s", recorder.Code, recorder.Body.String())
	}

	var item models.CartItem
	if err := db.First(&item).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("omitted quantity want 1 got %d", item.Quantity)
	}

	// quantity 为 0 同样按 1 处理，叠加到已有行上
	c, recorder = newCartAddContext(t, 1, fmt.Sprintf(`{"tour_id":%d,"quantity":0}`, tour.ID))
	h.AddCartItem(c)
	if recorder.Code != http.StatusOK {
		t.Fatalf("zero quantity want 200 got %d body %s", recorder.Code, recorder.Body.String())
	}
	if err := db.First(&item, item.ID).Error; err != nil {
		t.Fatalf("reload cart item failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("zero quantity should add one more, want 2 got %d", item.Quantity)
	}
}

func TestAddCartItemKeepsExplicitQuantity(t *testing.T) {
	h, db := setupCartHandlerTest(t)
	tour := createHandlerTestTour(t, db)

	c, recorder := newCartAddContext(t, 1, fmt.Sprintf(`{"tour_id":%d,"quantity":3}`, tour.ID))
	h.AddCartItem(c)
	if recorder.Code != http.StatusOK {
		t.Fatalf("explicit quantity want 200 got %d body %s", recorder.Code, recorder.Body.String())
	}

	var item models.CartItem
	if err := db.First(&item).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("explicit quantity want 3 got %d", item.Quantity)
	}
}
