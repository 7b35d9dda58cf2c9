package admin

import (
	handlershared "github.com/vietour/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const adminIDContextKey = "admin_id"

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, adminIDContextKey, "error.admin_id_invalid", "error.admin_id_type_invalid")
}
