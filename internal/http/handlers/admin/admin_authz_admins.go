package admin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vietour/internal/cache"
	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/i18n"
	"github.com/vietour/internal/logger"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
)

// 员工账号管理。根账号 admin 永远保持超管且不可删除。
const rootAdminUsername = "admin"

type createStaffRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	IsSuper  *bool  `json:"is_super"`
}

type updateStaffRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	IsSuper  *bool   `json:"is_super"`
}

// CreateAuthzAdmin 创建员工账号
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	username, err := normalizeStaffUsername(req.Username)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.admin_username_invalid", err)
		return
	}

	existing, err := h.AdminRepo.GetByUsername(username)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_create_failed", err)
		return
	}
	if existing != nil {
		respondError(c, response.CodeBadRequest, "error.admin_username_exists", nil)
		return
	}

	hash, ok := h.hashStaffPassword(c, req.Password, "error.admin_create_failed")
	if !ok {
		return
	}

	isSuper := req.IsSuper != nil && *req.IsSuper
	if strings.EqualFold(username, rootAdminUsername) {
		isSuper = true
	}

	staff := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		IsSuper:      isSuper,
	}
	if err := h.AdminRepo.Create(staff); err != nil {
		respondError(c, response.CodeInternal, "error.admin_create_failed", err)
		return
	}
	_ = cache.SetAdminAuthState(c.Request.Context(), cache.BuildAdminAuthState(staff))

	op := authzOperatorFrom(c)
	h.auditAuthzChange(op, "admin_create", models.JSON{
		"target_admin_id": staff.ID,
		"target_username": staff.Username,
		"is_super":        staff.IsSuper,
	}, func(input *service.AuthzAuditRecordInput) {
		input.TargetAdminID = &staff.ID
		input.TargetUsername = staff.Username
	})
	logger.Infow("admin_authz_admin_created",
		"operator_admin_id", op.AdminID,
		"target_admin_id", staff.ID,
		"target_username", staff.Username,
		"is_super", staff.IsSuper,
	)

	response.Success(c, staff)
}

// UpdateAuthzAdmin 更新员工账号，改密会顺带吊销其已发 Token
func (h *Handler) UpdateAuthzAdmin(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}

	staff, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_update_failed", err)
		return
	}
	if staff == nil {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return
	}

	var req updateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	changed := make([]string, 0, 4)

	if req.Username != nil {
		username, err := normalizeStaffUsername(*req.Username)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.admin_username_invalid", err)
			return
		}
		if username != staff.Username {
			existing, err := h.AdminRepo.GetByUsername(username)
			if err != nil {
				respondError(c, response.CodeInternal, "error.admin_update_failed", err)
				return
			}
			if existing != nil && existing.ID != staff.ID {
				respondError(c, response.CodeBadRequest, "error.admin_username_exists", nil)
				return
			}
			staff.Username = username
			changed = append(changed, "username")
		}
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName != staff.FullName {
			staff.FullName = fullName
			changed = append(changed, "full_name")
		}
	}

	if req.IsSuper != nil {
		nextIsSuper := *req.IsSuper
		if strings.EqualFold(strings.TrimSpace(staff.Username), rootAdminUsername) {
			nextIsSuper = true
		}
		if staff.IsSuper != nextIsSuper {
			staff.IsSuper = nextIsSuper
			changed = append(changed, "is_super")
		}
	}

	if req.Password != nil {
		hash, ok := h.hashStaffPassword(c, *req.Password, "error.admin_update_failed")
		if !ok {
			return
		}
		staff.PasswordHash = hash
		now := time.Now()
		staff.TokenVersion++
		staff.TokenInvalidBefore = &now
		changed = append(changed, "password")
	}

	if len(changed) == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AdminRepo.Update(staff); err != nil {
		respondError(c, response.CodeInternal, "error.admin_update_failed", err)
		return
	}
	_ = cache.SetAdminAuthState(c.Request.Context(), cache.BuildAdminAuthState(staff))

	sort.Strings(changed)
	op := authzOperatorFrom(c)
	if op.AdminID == staff.ID {
		c.Set("admin_is_super", staff.IsSuper)
	}

	h.auditAuthzChange(op, "admin_update", models.JSON{
		"target_admin_id": staff.ID,
		"target_username": staff.Username,
		"updated_fields":  changed,
		"is_super":        staff.IsSuper,
	}, func(input *service.AuthzAuditRecordInput) {
		input.TargetAdminID = &staff.ID
		input.TargetUsername = staff.Username
	})
	logger.Infow("admin_authz_admin_updated",
		"operator_admin_id", op.AdminID,
		"target_admin_id", staff.ID,
		"target_username", staff.Username,
		"updated_fields", changed,
	)

	response.Success(c, staff)
}

// DeleteAuthzAdmin 删除员工账号。不能删自己、根账号与最后一个账号。
func (h *Handler) DeleteAuthzAdmin(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}

	staff, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_delete_failed", err)
		return
	}
	if staff == nil {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return
	}

	op := authzOperatorFrom(c)
	if op.AdminID == adminID {
		respondError(c, response.CodeBadRequest, "error.admin_delete_self_forbidden", nil)
		return
	}
	if strings.EqualFold(strings.TrimSpace(staff.Username), rootAdminUsername) {
		respondError(c, response.CodeBadRequest, "error.admin_delete_protected", nil)
		return
	}

	count, err := h.AdminRepo.Count()
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_delete_failed", err)
		return
	}
	if count <= 1 {
		respondError(c, response.CodeBadRequest, "error.admin_delete_last_forbidden", nil)
		return
	}

	// 先摘角色再删账号，避免策略表留下悬空主体
	if err := h.AuthzService.SetAdminRoles(adminID, []string{}); err != nil {
		respondError(c, response.CodeInternal, "error.admin_delete_failed", err)
		return
	}
	if err := h.AdminRepo.Delete(adminID); err != nil {
		respondError(c, response.CodeInternal, "error.admin_delete_failed", err)
		return
	}
	_ = cache.DelAdminAuthState(c.Request.Context(), adminID)

	h.auditAuthzChange(op, "admin_delete", models.JSON{
		"target_admin_id": adminID,
		"target_username": staff.Username,
	}, func(input *service.AuthzAuditRecordInput) {
		input.TargetAdminID = &adminID
		input.TargetUsername = staff.Username
	})
	logger.Infow("admin_authz_admin_deleted",
		"operator_admin_id", op.AdminID,
		"target_admin_id", adminID,
		"target_username", staff.Username,
	)

	response.Success(c, nil)
}

// hashStaffPassword 校验密码策略并生成哈希，失败时已写好响应
func (h *Handler) hashStaffPassword(c *gin.Context, rawPassword, failKey string) (string, bool) {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		return "", false
	}
	if err := h.AuthService.ValidatePassword(password); err != nil {
		if respondStaffPasswordPolicyError(c, err) {
			return "", false
		}
		respondError(c, response.CodeBadRequest, "error.password_weak", err)
		return "", false
	}
	hash, err := h.AuthService.HashPassword(password)
	if err != nil {
		respondError(c, response.CodeInternal, failKey, err)
		return "", false
	}
	return hash, true
}

func normalizeStaffUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", fmt.Errorf("username is required")
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return "", fmt.Errorf("username contains whitespace")
	}
	length := len([]rune(trimmed))
	if length < 3 || length > 64 {
		return "", fmt.Errorf("username length out of range")
	}
	return trimmed, nil
}

func respondStaffPasswordPolicyError(c *gin.Context, err error) bool {
	if err == nil || !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}
