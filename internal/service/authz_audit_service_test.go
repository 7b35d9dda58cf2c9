package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzAuditServiceTest(t *testing.T) (*AuthzAuditService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_audit_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AuthzAuditLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAuthzAuditService(repository.NewAuthzAuditLogRepository(db)), db
}

func TestAuthzAuditRecordAndFilter(t *testing.T) {
	svc, _ := setupAuthzAuditServiceTest(t)

	targetID := uint(9)
	records := []AuthzAuditRecordInput{
		{OperatorAdminID: 1, OperatorUsername: " admin ", Action: "policy_grant", Role: "role:support", Object: "/admin/bookings", Method: "get"},
		{OperatorAdminID: 1, Action: "role_delete", Role: "role:temp"},
		{OperatorAdminID: 2, Action: "admin_roles_update", TargetAdminID: &targetID, TargetUsername: "ops@vietour.local"},
	}
	for _, input := range records {
		if err := svc.Record(input); err != nil {
			t.Fatalf("record %s failed: %v", input.Action, err)
		}
	}

	items, total, err := svc.ListForAdmin(repository.AuthzAuditLogListFilter{OperatorAdminID: 1})
	if err != nil {
		t.Fatalf("list by operator failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("operator 1 want 2 records got %d", total)
	}
	// 新的在前
	if items[0].Action != "role_delete" {
		t.Fatalf("order want newest first, got %s", items[0].Action)
	}
	if items[1].OperatorUsername != "admin" || items[1].Method != "GET" {
		t.Fatalf("fields not normalized: %q %q", items[1].OperatorUsername, items[1].Method)
	}

	items, total, err = svc.ListForAdmin(repository.AuthzAuditLogListFilter{TargetAdminID: targetID})
	if err != nil || total != 1 {
		t.Fatalf("list by target want 1 got %d err %v", total, err)
	}
	if items[0].TargetAdminID == nil || *items[0].TargetAdminID != targetID {
		t.Fatalf("target admin id not stored: %+v", items[0])
	}
}

func TestAuthzAuditRecordDropsIncompleteInput(t *testing.T) {
	svc, db := setupAuthzAuditServiceTest(t)

	if err := svc.Record(AuthzAuditRecordInput{Action: "role_create"}); err != nil {
		t.Fatalf("record without operator should be a no-op, got %v", err)
	}
	if err := svc.Record(AuthzAuditRecordInput{OperatorAdminID: 1, Action: "   "}); err != nil {
		t.Fatalf("record without action should be a no-op, got %v", err)
	}

	var count int64
	if err := db.Model(&models.AuthzAuditLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("incomplete inputs must not persist, got %d rows", count)
	}
}
