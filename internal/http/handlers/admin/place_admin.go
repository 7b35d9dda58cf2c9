package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePlaceRequest 创建/更新地点请求
type CreatePlaceRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	PhotoURL  string   `json:"photo_url"`
	IsActive  *bool    `json:"is_active"`
	Images    []string `json:"images"`
}

func (r CreatePlaceRequest) toServiceInput() service.PlaceUpsertInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.PlaceUpsertInput{
		Name:      strings.TrimSpace(r.Name),
		Address:   strings.TrimSpace(r.Address),
		Longitude: r.Longitude,
		Latitude:  r.Latitude,
		PhotoURL:  strings.TrimSpace(r.PhotoURL),
		IsActive:  isActive,
		Images:    r.Images,
	}
}

// GetAdminPlaces 获取地点列表 (Admin)
func (h *Handler) GetAdminPlaces(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	places, total, err := h.PlaceService.List(repository.PlaceListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
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

// CreatePlace 创建地点
func (h *Handler) CreatePlace(c *gin.Context) {
	var req CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	place, err := h.PlaceService.Create(req.toServiceInput())
	if err != nil {
		respondError(c, response.CodeInternal, "error.place_create_failed", err)
		return
	}

	response.Success(c, place)
}

// UpdatePlace 更新地点
func (h *Handler) UpdatePlace(c *gin.Context) {
	id, ok := parseIDParam(c, "error.place_not_found")
	if !ok {
		return
	}

	var req CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	place, err := h.PlaceService.Update(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			respondError(c, response.CodeNotFound, "error.place_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.place_update_failed", err)
		return
	}

	response.Success(c, place)
}

// DeletePlace 删除地点
func (h *Handler) DeletePlace(c *gin.Context) {
	id, ok := parseIDParam(c, "error.place_not_found")
	if !ok {
		return
	}

	if err := h.PlaceService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			respondError(c, response.CodeNotFound, "error.place_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.place_delete_failed", err)
		return
	}

	response.Success(c, nil)
}
