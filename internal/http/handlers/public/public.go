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

const (
	placeSearchLimitDefault  = 20
	placeSuggestLimitDefault = 8
	placeSearchLimitMax      = 50
)

// GetTours 前台行程列表
func (h *Handler) GetTours(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID := c.Query("category_id")
	search := strings.TrimSpace(c.Query("search"))

	tours, total, err := h.TourService.ListActive(repository.TourListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     search,
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

// GetTourDetail 前台行程详情
func (h *Handler) GetTourDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeNotFound, "error.tour_not_found", nil)
		return
	}

	detail, err := h.TourService.GetDetail(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound), errors.Is(err, service.ErrTourInactive):
			respondError(c, response.CodeNotFound, "error.tour_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.tour_fetch_failed", err)
		}
		return
	}

	response.Success(c, detail)
}

// GetCategories 行程分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// GetPlaces 地点列表。
// top 参数非空时返回评分最高的少量地点（首页场景）。
func (h *Handler) GetPlaces(c *gin.Context) {
	if c.Query("top") != "" {
		limit := parseLimit(c.Query("limit"), placeSuggestLimitDefault)
		places, err := h.PlaceService.TopRated(limit)
		if err != nil {
			respondError(c, response.CodeInternal, "error.place_fetch_failed", err)
			return
		}
		response.Success(c, gin.H{"items": places})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	places, total, err := h.PlaceService.List(repository.PlaceListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.place_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, places, pagination)
}

// SearchPlaces 按名称搜索展示中的地点
func (h *Handler) SearchPlaces(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	limit := parseLimit(c.Query("limit"), placeSearchLimitDefault)

	places, err := h.PlaceService.Search(query, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.place_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": places})
}

// SuggestPlaces 地点输入联想
func (h *Handler) SuggestPlaces(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	limit := parseLimit(c.Query("limit"), placeSuggestLimitDefault)

	suggestions, err := h.PlaceService.Suggest(term, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.place_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": suggestions})
}

// GetPlaceDetail 地点详情
func (h *Handler) GetPlaceDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeNotFound, "error.place_not_found", nil)
		return
	}

	detail, err := h.PlaceService.GetDetail(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			respondError(c, response.CodeNotFound, "error.place_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.place_fetch_failed", err)
		}
		return
	}

	response.Success(c, detail)
}

func parseLimit(raw string, fallback int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > placeSearchLimitMax {
		return placeSearchLimitMax
	}
	return limit
}
