package public

import (
	handlershared "github.com/vietour/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const userIDContextKey = "user_id"

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, userIDContextKey, "error.user_id_invalid", "error.user_id_type_invalid")
}
