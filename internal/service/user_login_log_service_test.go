package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupLoginLogServiceTest(t *testing.T) (*UserLoginLogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_login_log_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.UserLoginLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserLoginLogService(repository.NewUserLoginLogRepository(db)), db
}

func TestLoginLogRecordNormalizesFields(t *testing.T) {
	svc, db := setupLoginLogServiceTest(t)

	err := svc.Record(RecordUserLoginInput{
		UserID:      7,
		Email:       " Khach@ViETour.VN ",
		Status:      " SUCCESS ",
		FailReason:  "invalid_credentials",
		ClientIP:    " 203.0.113.9 ",
		LoginSource: " WEB ",
	})
	if err != nil {
		t.Fatalf("record success failed: %v", err)
	}

	var stored models.UserLoginLog
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load record failed: %v", err)
	}
	if stored.Email != "khach@vietour.vn" {
		t.Fatalf("email not normalized, got %s", stored.Email)
	}
	if stored.Status != constants.LoginLogStatusSuccess {
		t.Fatalf("status want success got %s", stored.Status)
	}
	// 成功记录不保留失败原因
	if stored.FailReason != "" {
		t.Fatalf("success record must not keep fail reason, got %s", stored.FailReason)
	}
	if stored.ClientIP != "203.0.113.9" || stored.LoginSource != constants.LoginLogSourceWeb {
		t.Fatalf("ip/source not normalized: %q %q", stored.ClientIP, stored.LoginSource)
	}
}

func TestLoginLogRecordDefaultsFailure(t *testing.T) {
	svc, db := setupLoginLogServiceTest(t)

	if err := svc.Record(RecordUserLoginInput{Email: "khach@vietour.vn", Status: "weird"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	var stored models.UserLoginLog
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load record failed: %v", err)
	}
	if stored.Status != constants.LoginLogStatusFailed {
		t.Fatalf("unknown status must collapse to failed, got %s", stored.Status)
	}
	if stored.FailReason != constants.LoginLogFailReasonInternalError {
		t.Fatalf("missing fail reason must default, got %s", stored.FailReason)
	}
	if stored.LoginSource != constants.LoginLogSourceWeb {
		t.Fatalf("missing source must default to web, got %s", stored.LoginSource)
	}
}

func TestLoginLogListByUserScopesAndPaginates(t *testing.T) {
	svc, _ := setupLoginLogServiceTest(t)

	for i := 0; i < 3; i++ {
		if err := svc.Record(RecordUserLoginInput{UserID: 1, Email: "a@vietour.vn", Status: "success"}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}
	if err := svc.Record(RecordUserLoginInput{UserID: 2, Email: "b@vietour.vn", Status: "success"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	logs, total, err := svc.ListByUser(1, 1, 2)
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 3 || len(logs) != 2 {
		t.Fatalf("want total 3 page of 2, got total %d len %d", total, len(logs))
	}
	for _, item := range logs {
		if item.UserID != 1 {
			t.Fatalf("leaked record of user %d", item.UserID)
		}
	}

	// 非法分页参数回落默认值，页大小封顶 100
	logs, total, err = svc.ListByUser(1, 0, 500)
	if err != nil {
		t.Fatalf("list with wild pagination failed: %v", err)
	}
	if total != 3 || len(logs) != 3 {
		t.Fatalf("clamped list want all 3, got total %d len %d", total, len(logs))
	}

	if _, total, err = svc.ListByUser(0, 1, 10); err != nil || total != 0 {
		t.Fatalf("zero user id must return empty, total %d err %v", total, err)
	}
}
