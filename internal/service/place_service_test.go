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
	"gorm.io/gorm"
)

func setupPlaceServiceTest(t *testing.T) (*PlaceService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:place_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Place{}, &models.PlaceImage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cfg := &config.Config{}
	cfg.Assets.PlaceImageBase = "/content/images/places"
	cfg.Assets.PlaceholderImage = "placeholder.jpg"
	return NewPlaceService(cfg, repository.NewPlaceRepository(db)), db
}

func TestPlaceCardNormalizesLegacyColumns(t *testing.T) {
	svc, db := setupPlaceServiceTest(t)

	// 只填了遗留 title/photo_url 的历史数据
	legacy := models.Place{
		Title:     "Chùa Một Cột",
		PhotoURL:  "motcot.jpg",
		AvgRating: 4.2,
		IsActive:  true,
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("create place failed: %v", err)
	}

	cards, err := svc.TopRated(10)
	if err != nil {
		t.Fatalf("top rated failed: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("cards want 1 got %d", len(cards))
	}
	if cards[0].Name != "Chùa Một Cột" {
		t.Fatalf("name should fall back to legacy title, got %q", cards[0].Name)
	}
	if cards[0].Address != placeAddressFallback {
		t.Fatalf("empty address should use fallback, got %q", cards[0].Address)
	}
	if cards[0].PhotoURL != "/content/images/places/motcot.jpg" {
		t.Fatalf("relative photo should join image base, got %q", cards[0].PhotoURL)
	}
}

func TestPlaceCardPlaceholderWhenNoImage(t *testing.T) {
	svc, db := setupPlaceServiceTest(t)

	place := models.Place{Name: "Bãi Sao", IsActive: true}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("create place failed: %v", err)
	}

	cards, err := svc.TopRated(10)
	if err != nil {
		t.Fatalf("top rated failed: %v", err)
	}
	if cards[0].PhotoURL != "/content/images/places/placeholder.jpg" {
		t.Fatalf("expected placeholder photo, got %q", cards[0].PhotoURL)
	}
}

func TestPlaceSearchBlankQuery(t *testing.T) {
	svc, _ := setupPlaceServiceTest(t)

	cards, err := svc.Search("   ", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("blank query should return empty result, got %d", len(cards))
	}
	suggestions, err := svc.Suggest("", 5)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("blank term should return empty suggestions, got %d", len(suggestions))
	}
}

func TestPlaceGetDetailHidesInactive(t *testing.T) {
	svc, db := setupPlaceServiceTest(t)

	place := models.Place{Name: "Vịnh Hạ Long", IsActive: false}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("create place failed: %v", err)
	}

	if _, err := svc.GetDetail(place.ID); !errors.Is(err, ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound for inactive place, got %v", err)
	}
	if _, err := svc.GetDetail(9999); !errors.Is(err, ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound for missing place, got %v", err)
	}
}

func TestPlaceGetDetailCollectsImages(t *testing.T) {
	svc, db := setupPlaceServiceTest(t)

	place := models.Place{
		Name:     "Phố cổ Hội An",
		Address:  "Quảng Nam",
		IsActive: true,
		Images: []models.PlaceImage{
			{URL: "hoian-1.jpg", SortOrder: 1},
			{URL: "https://cdn.example.com/hoian-2.jpg", SortOrder: 2},
			{URL: "   ", SortOrder: 3},
		},
	}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("create place failed: %v", err)
	}

	detail, err := svc.GetDetail(place.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if len(detail.Images) != 2 {
		t.Fatalf("images want 2 got %d", len(detail.Images))
	}
	if detail.Images[0] != "/content/images/places/hoian-1.jpg" {
		t.Fatalf("relative image should join image base, got %q", detail.Images[0])
	}
	if detail.Images[1] != "https://cdn.example.com/hoian-2.jpg" {
		t.Fatalf("absolute image should pass through, got %q", detail.Images[1])
	}
}

func TestPlaceAdminUpdateAndDelete(t *testing.T) {
	svc, db := setupPlaceServiceTest(t)

	created, err := svc.Create(PlaceUpsertInput{
		Name:     "  Đỉnh Fansipan  ",
		Address:  "Lào Cai",
		IsActive: true,
		Images:   []string{"fansipan-1.jpg"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Đỉnh Fansipan" {
		t.Fatalf("name should be trimmed, got %q", created.Name)
	}

	updated, err := svc.Update(created.ID, PlaceUpsertInput{
		Name:     "Fansipan",
		Address:  "Sa Pa, Lào Cai",
		IsActive: false,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Address != "Sa Pa, Lào Cai" || updated.IsActive {
		t.Fatalf("unexpected updated place: %+v", updated)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound after delete, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Place{}).Count(&count).Error; err != nil {
		t.Fatalf("count places failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("soft-deleted place should be excluded, rows=%d", count)
	}
}
