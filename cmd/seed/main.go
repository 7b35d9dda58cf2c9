package main

import (
	"github.com/vietour/internal/config"
	"github.com/vietour/internal/logger"
	"github.com/vietour/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "beach", Name: "Biển đảo", SortOrder: 10},
		{Slug: "mountain", Name: "Núi rừng", SortOrder: 20},
		{Slug: "culture", Name: "Văn hóa - Di sản", SortOrder: 30},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"beach", "mountain", "culture"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	beachID := categoryIDs["beach"]
	mountainID := categoryIDs["mountain"]
	cultureID := categoryIDs["culture"]

	// 添加行程
	tours := []models.Tour{
		{
			CategoryID:     beachID,
			Name:           "Hạ Long Bay 3 ngày 2 đêm",
			Description:    "Du thuyền qua vịnh Hạ Long, chèo kayak, thăm hang Sửng Sốt và làng chài Cửa Vạn.",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(3200000)),
			Duration:       "3 ngày 2 đêm",
			TotalSlots:     40,
			AvailableSlots: 40,
			AvatarURL:      "/content/images/tours/halong.jpg",
			Tags:           models.StringArray([]string{"du thuyền", "kayak", "di sản"}),
			Status:         "active",
			SortOrder:      10,
			Itineraries: []models.TourItinerary{
				{DayNumber: 1, Title: "Hà Nội - Hạ Long", Description: "Khởi hành từ Hà Nội, lên du thuyền, ăn trưa trên vịnh, chèo kayak buổi chiều."},
				{DayNumber: 2, Title: "Hang Sửng Sốt - Làng chài", Description: "Thăm hang Sửng Sốt, đảo Ti Tốp, làng chài Cửa Vạn, tiệc BBQ trên boong."},
				{DayNumber: 3, Title: "Hạ Long - Hà Nội", Description: "Ngắm bình minh trên vịnh, trả phòng, về Hà Nội."},
			},
		},
		{
			CategoryID:     mountainID,
			Name:           "Sa Pa - Fansipan 2 ngày 1 đêm",
			Description:    "Chinh phục nóc nhà Đông Dương bằng cáp treo, thăm bản Cát Cát và ruộng bậc thang Mường Hoa.",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(2450000)),
			Duration:       "2 ngày 1 đêm",
			TotalSlots:     30,
			AvailableSlots: 30,
			AvatarURL:      "/content/images/tours/sapa.jpg",
			Tags:           models.StringArray([]string{"trekking", "cáp treo", "bản làng"}),
			Status:         "active",
			SortOrder:      20,
			Itineraries: []models.TourItinerary{
				{DayNumber: 1, Title: "Hà Nội - Sa Pa - Cát Cát", Description: "Di chuyển lên Sa Pa, nhận phòng, đi bộ thăm bản Cát Cát."},
				{DayNumber: 2, Title: "Fansipan - Hà Nội", Description: "Cáp treo lên đỉnh Fansipan, ăn trưa, về Hà Nội."},
			},
		},
		{
			CategoryID:     cultureID,
			Name:           "Huế - Hội An 4 ngày 3 đêm",
			Description:    "Đại Nội Huế, lăng Tự Đức, phố cổ Hội An và thánh địa Mỹ Sơn trong một hành trình di sản miền Trung.",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(4850000)),
			Duration:       "4 ngày 3 đêm",
			TotalSlots:     25,
			AvailableSlots: 25,
			AvatarURL:      "/content/images/tours/hue-hoian.jpg",
			Tags:           models.StringArray([]string{"di sản", "ẩm thực", "phố cổ"}),
			Status:         "active",
			SortOrder:      30,
			Itineraries: []models.TourItinerary{
				{DayNumber: 1, Title: "Đến Huế", Description: "Nhận phòng, dạo thuyền sông Hương, nghe ca Huế buổi tối."},
				{DayNumber: 2, Title: "Đại Nội - Lăng Tự Đức", Description: "Thăm Đại Nội, chùa Thiên Mụ, lăng Tự Đức."},
				{DayNumber: 3, Title: "Huế - Hội An", Description: "Vượt đèo Hải Vân vào Hội An, thả đèn hoa đăng phố cổ."},
				{DayNumber: 4, Title: "Mỹ Sơn - Kết thúc", Description: "Thăm thánh địa Mỹ Sơn, trả phòng, kết thúc hành trình."},
			},
		},
		{
			CategoryID:     beachID,
			Name:           "Phú Quốc nghỉ dưỡng 3 ngày 2 đêm",
			Description:    "Tắm biển Bãi Sao, cáp treo Hòn Thơm, chợ đêm Dương Đông.",
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(3990000)),
			Duration:       "3 ngày 2 đêm",
			TotalSlots:     0,
			AvailableSlots: 0,
			AvatarURL:      "/content/images/tours/phuquoc.jpg",
			Tags:           models.StringArray([]string{"nghỉ dưỡng", "biển"}),
			Status:         "inactive",
			SortOrder:      40,
		},
	}

	for _, tour := range tours {
		var existing models.Tour
		if err := models.DB.Where("name = ?", tour.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tour).Error; err != nil {
				stdLog.Printf("Failed to create tour %s: %v", tour.Name, err)
			} else {
				stdLog.Printf("Created tour: %s", tour.Name)
			}
		} else {
			stdLog.Printf("Tour already exists: %s", tour.Name)
		}
	}

	// 添加地点
	places := []models.Place{
		{
			Name:        "Vịnh Hạ Long",
			CategoryID:  &beachID,
			Address:     "Thành phố Hạ Long, Quảng Ninh",
			Longitude:   107.0448,
			Latitude:    20.9101,
			AvgRating:   4.8,
			RatingCount: 1260,
			IsActive:    true,
			Images: []models.PlaceImage{
				{URL: "/content/images/places/halong-1.jpg", SortOrder: 1},
				{URL: "/content/images/places/halong-2.jpg", SortOrder: 2},
			},
		},
		{
			Name:        "Đỉnh Fansipan",
			CategoryID:  &mountainID,
			Address:     "Thị xã Sa Pa, Lào Cai",
			Longitude:   103.7754,
			Latitude:    22.3034,
			AvgRating:   4.7,
			RatingCount: 845,
			IsActive:    true,
			Images: []models.PlaceImage{
				{URL: "/content/images/places/fansipan-1.jpg", SortOrder: 1},
			},
		},
		{
			Name:        "Phố cổ Hội An",
			CategoryID:  &cultureID,
			Address:     "Thành phố Hội An, Quảng Nam",
			Longitude:   108.3380,
			Latitude:    15.8801,
			AvgRating:   4.9,
			RatingCount: 2210,
			IsActive:    true,
			Images: []models.PlaceImage{
				{URL: "/content/images/places/hoian-1.jpg", SortOrder: 1},
			},
		},
		{
			Name:        "Bãi Sao Phú Quốc",
			CategoryID:  &beachID,
			Address:     "Phú Quốc, Kiên Giang",
			Longitude:   104.0372,
			Latitude:    10.0525,
			AvgRating:   4.5,
			RatingCount: 530,
			IsActive:    true,
		},
	}

	for _, place := range places {
		var existing models.Place
		if err := models.DB.Where("name = ?", place.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&place).Error; err != nil {
				stdLog.Printf("Failed to create place %s: %v", place.Name, err)
			} else {
				stdLog.Printf("Created place: %s", place.Name)
			}
		} else {
			stdLog.Printf("Place already exists: %s", place.Name)
		}
	}

	// 添加演示用户
	demoEmail := "demo@vietour.local"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Printf("Failed to hash demo password: %v", hashErr)
		} else {
			user := models.User{
				Email:        demoEmail,
				PasswordHash: string(hash),
				FullName:     "Khách Demo",
				Phone:        "0900000000",
				Locale:       "vi-VN",
				Status:       "active",
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s (password: demo1234)", demoEmail)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	stdLog.Println("Seed data initialized successfully!")
}
