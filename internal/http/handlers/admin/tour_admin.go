package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TourItineraryRequest 行程每日安排请求项
type TourItineraryRequest struct {
	DayNumber   int    `json:"day_number" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateTourRequest 创建/更新行程请求
type CreateTourRequest struct {
	CategoryID  uint                   `json:"category_id" binding:"required"`
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Price       float64                `json:"price" binding:"required"`
	Duration    string                 `json:"duration"`
	TotalSlots  int                    `json:"total_slots" binding:"required"`
	AvatarURL   string                 `json:"avatar_url"`
	Tags        []string               `json:"tags"`
	Status      string                 `json:"status"`
	SortOrder   int                    `json:"sort_order"`
	Itineraries []TourItineraryRequest `json:"itineraries"`
}

func (r CreateTourRequest) toServiceInput() service.TourUpsertInput {
	input := service.TourUpsertInput{
		CategoryID:  r.CategoryID,
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Duration:    strings.TrimSpace(r.Duration),
		TotalSlots:  r.TotalSlots,
		AvatarURL:   strings.TrimSpace(r.AvatarURL),
		Tags:        r.Tags,
		Status:      strings.ToLower(strings.TrimSpace(r.Status)),
		SortOrder:   r.SortOrder,
	}
	if r.Itineraries != nil {
		itineraries := make([]models.TourItinerary, 0, len(r.Itineraries))
		for _, item := range r.Itineraries {
			itineraries = append(itineraries, models.TourItinerary{
				DayNumber:   item.DayNumber,
				Title:       strings.TrimSpace(item.Title),
				Description: item.Description,
			})
		}
		input.Itineraries = itineraries
	}
	return input
}

// GetAdminTours 获取行程列表 (Admin)
func (h *Handler) GetAdminTours(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	tours, total, err := h.TourService.ListAdmin(repository.TourListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   c.Query("category_id"),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.tour_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, tours, pagination)
}

// GetAdminTour 获取行程详情 (Admin)
func (h *Handler) GetAdminTour(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tour_not_found")
	if !ok {
		return
	}

	tour, err := h.TourService.GetAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			respondError(c, response.CodeNotFound, "error.tour_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tour_fetch_failed", err)
		return
	}

	response.Success(c, tour)
}

// CreateTour 创建行程
func (h *Handler) CreateTour(c *gin.Context) {
	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tour, err := h.TourService.Create(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tour_create_failed", err)
		return
	}

	response.Success(c, tour)
}

// UpdateTour 更新行程
func (h *Handler) UpdateTour(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tour_not_found")
	if !ok {
		return
	}

	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tour, err := h.TourService.Update(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			respondError(c, response.CodeNotFound, "error.tour_not_found", nil)
			return
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tour_update_failed", err)
		return
	}

	response.Success(c, tour)
}

// DeleteTour 删除行程（软删除）
func (h *Handler) DeleteTour(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tour_not_found")
	if !ok {
		return
	}

	if err := h.TourService.Delete(id); err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			respondError(c, response.CodeNotFound, "error.tour_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tour_delete_failed", err)
		return
	}

	response.Success(c, nil)
}
