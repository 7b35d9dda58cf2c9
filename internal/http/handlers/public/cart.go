package public

import (
	"strconv"

	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
)

// 购物车变更接口共用的错误映射
var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrTourNotFound, code: response.CodeNotFound, key: "error.tour_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

// CartAddItemRequest 加购请求。quantity 省略时默认为 1。
type CartAddItemRequest struct {
	TourID   uint `json:"tour_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// CartUpdateItemRequest 修改购物车项数量请求
type CartUpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购行程
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartAddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	result, err := h.CartService.AddItem(uid, req.TourID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}

	response.Success(c, gin.H{
		"cart_count":    result.CartCount,
		"total":         result.Total,
		"item_subtotal": result.ItemSubtotal,
	})
}

// UpdateCartItem 修改购物车项数量（0 视为移除）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseCartItemID(c)
	if !ok {
		return
	}
	var req CartUpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CartService.UpdateQuantity(uid, itemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}

	response.Success(c, gin.H{
		"cart_count":    result.CartCount,
		"total":         result.Total,
		"item_subtotal": result.ItemSubtotal,
	})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseCartItemID(c)
	if !ok {
		return
	}

	result, err := h.CartService.RemoveItem(uid, itemID)
	if err != nil {
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}

	response.Success(c, gin.H{
		"cart_count":    result.CartCount,
		"total":         result.Total,
		"item_subtotal": result.ItemSubtotal,
	})
}

func parseCartItemID(c *gin.Context) (uint, bool) {
	rawID := c.Param("id")
	itemID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_not_found", nil)
		return 0, false
	}
	return uint(itemID), true
}
