package public

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/provider"
	"github.com/vietour/internal/repository"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupLoginLogHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:public_login_log_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.UserLoginLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	container := &provider.Container{
		UserLoginLogService: service.NewUserLoginLogService(repository.NewUserLoginLogRepository(db)),
	}
	return New(container), db
}

func TestRecordUserLoginWithoutContext(t *testing.T) {
	h, db := setupLoginLogHandlerTest(t)

	// 异步或测试场景下可能拿不到请求上下文，记录不能崩
	h.recordUserLogin(nil, "khach@vietour.vn", 3, constants.LoginLogStatusSuccess, "", constants.LoginLogSourceWeb)

	var stored models.UserLoginLog
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load login log failed: %v", err)
	}
	if stored.UserID != 3 || stored.Status != constants.LoginLogStatusSuccess {
		t.Fatalf("unexpected record: %+v", stored)
	}
	if stored.ClientIP != "" || stored.UserAgent != "" || stored.RequestID != "" {
		t.Fatalf("nil context must leave request fields empty: %+v", stored)
	}
}

func TestRecordUserLoginCapturesRequestFields(t *testing.T) {
	h, db := setupLoginLogHandlerTest(t)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	c.Request.RemoteAddr = "203.0.113.9:40312"
	c.Request.Header.Set("User-Agent", "vietour-test/1.0")
	c.Set("request_id", " req-7f3a ")

	h.recordUserLogin(c, "khach@vietour.vn", 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInvalidCredentials, constants.LoginLogSourceWeb)

	var stored models.UserLoginLog
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load login log failed: %v", err)
	}
	if stored.ClientIP != "203.0.113.9" {
		t.Fatalf("client ip want 203.0.113.9 got %q", stored.ClientIP)
	}
	if stored.UserAgent != "vietour-test/1.0" {
		t.Fatalf("user agent not captured, got %q", stored.UserAgent)
	}
	if stored.RequestID != "req-7f3a" {
		t.Fatalf("request id want req-7f3a got %q", stored.RequestID)
	}
	if stored.FailReason != constants.LoginLogFailReasonInvalidCredentials {
		t.Fatalf("fail reason not kept, got %q", stored.FailReason)
	}
}

func TestRecordUserLoginNoServiceIsNoop(t *testing.T) {
	h := New(&provider.Container{})

	// 未装配登录日志服务时静默跳过
	h.recordUserLogin(nil, "khach@vietour.vn", 1, constants.LoginLogStatusSuccess, "", constants.LoginLogSourceWeb)
}
