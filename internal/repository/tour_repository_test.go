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

func setupTourRepositoryTest(t *testing.T) (*GormTourRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:tour_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Tour{},
		&models.TourItinerary{},
		&models.Booking{},
		&models.BookingItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewTourRepository(db), db
}

func createTestTour(t *testing.T, repo *GormTourRepository, name string, total int, available int, status string) *models.Tour {
	t.Helper()
	tour := &models.Tour{
		CategoryID:     1,
		Name:           name,
		Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(1000000)),
		TotalSlots:     total,
		AvailableSlots: available,
		Status:         status,
	}
	if err := repo.Create(tour); err != nil {
		t.Fatalf("create tour failed: %v", err)
	}
	return tour
}

func TestReserveSlotsGuardsAgainstOversell(t *testing.T) {
	repo, db := setupTourRepositoryTest(t)
	tour := createTestTour(t, repo, "Hạ Long Bay", 10, 3, "active")

	affected, err := repo.ReserveSlots(tour.ID, 3)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("reserve affected want 1 got %d", affected)
	}

	// 名额已用尽，条件更新不命中任何行
	affected, err = repo.ReserveSlots(tour.ID, 1)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("oversell reserve affected want 0 got %d", affected)
	}

	var reloaded models.Tour
	if err := db.First(&reloaded, tour.ID).Error; err != nil {
		t.Fatalf("reload tour failed: %v", err)
	}
	if reloaded.AvailableSlots != 0 {
		t.Fatalf("available slots want 0 got %d", reloaded.AvailableSlots)
	}

	if _, err := repo.ReserveSlots(tour.ID, 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
	if _, err := repo.ReserveSlots(0, 1); err == nil {
		t.Fatalf("expected error for zero tour id")
	}
}

func TestRestoreSlotsCapsAtTotal(t *testing.T) {
	repo, db := setupTourRepositoryTest(t)
	tour := createTestTour(t, repo, "Sa Pa", 10, 8, "active")

	affected, err := repo.RestoreSlots(tour.ID, 2)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("restore affected want 1 got %d", affected)
	}

	// 超过总名额的归还被拒绝
	affected, err = repo.RestoreSlots(tour.ID, 1)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("over-restore affected want 0 got %d", affected)
	}

	var reloaded models.Tour
	if err := db.First(&reloaded, tour.ID).Error; err != nil {
		t.Fatalf("reload tour failed: %v", err)
	}
	if reloaded.AvailableSlots != 10 {
		t.Fatalf("available slots want 10 got %d", reloaded.AvailableSlots)
	}
}

func TestGetActiveByIDFiltersStatus(t *testing.T) {
	repo, _ := setupTourRepositoryTest(t)
	active := createTestTour(t, repo, "Huế", 10, 10, "active")
	inactive := createTestTour(t, repo, "Phú Quốc", 10, 10, "inactive")

	got, err := repo.GetActiveByID(active.ID)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if got == nil {
		t.Fatalf("active tour should be returned")
	}

	got, err = repo.GetActiveByID(inactive.ID)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if got != nil {
		t.Fatalf("inactive tour should be hidden, got %+v", got)
	}
}

func TestReplaceItineraries(t *testing.T) {
	repo, db := setupTourRepositoryTest(t)
	tour := createTestTour(t, repo, "Đà Lạt", 10, 10, "active")

	if err := repo.ReplaceItineraries(tour.ID, []models.TourItinerary{
		{DayNumber: 1, Title: "Ngày 1"},
		{DayNumber: 2, Title: "Ngày 2"},
	}); err != nil {
		t.Fatalf("replace itineraries failed: %v", err)
	}
	if err := repo.ReplaceItineraries(tour.ID, []models.TourItinerary{
		{DayNumber: 1, Title: "Ngày 1 (mới)"},
	}); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	var rows []models.TourItinerary
	if err := db.Where("tour_id = ?", tour.ID).Order("day_number ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load itineraries failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("itineraries want 1 got %d", len(rows))
	}
	if rows[0].Title != "Ngày 1 (mới)" {
		t.Fatalf("unexpected itinerary title: %q", rows[0].Title)
	}
}

func TestSoldCountsExcludesCanceled(t *testing.T) {
	repo, db := setupTourRepositoryTest(t)
	tour := createTestTour(t, repo, "Ninh Bình", 20, 20, "active")

	bookings := []models.Booking{
		{BookingNo: "VT1", UserID: 1, Status: "confirmed", Currency: "VND"},
		{BookingNo: "VT2", UserID: 2, Status: "canceled", Currency: "VND"},
	}
	for i := range bookings {
		if err := db.Create(&bookings[i]).Error; err != nil {
			t.Fatalf("create booking failed: %v", err)
		}
	}
	items := []models.BookingItem{
		{BookingID: bookings[0].ID, TourID: tour.ID, TourName: tour.Name, Quantity: 3},
		{BookingID: bookings[1].ID, TourID: tour.ID, TourName: tour.Name, Quantity: 5},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create booking item failed: %v", err)
		}
	}

	counts, err := repo.SoldCounts([]uint{tour.ID})
	if err != nil {
		t.Fatalf("sold counts failed: %v", err)
	}
	if counts[tour.ID] != 3 {
		t.Fatalf("sold count want 3 got %d", counts[tour.ID])
	}

	counts, err = repo.SoldCounts(nil)
	if err != nil {
		t.Fatalf("sold counts failed: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("empty input should return empty map, got %+v", counts)
	}
}
