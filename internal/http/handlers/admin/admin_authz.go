package admin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vietour/internal/authz"
	"github.com/vietour/internal/http/response"
	"github.com/vietour/internal/logger"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/service"

	"github.com/gin-gonic/gin"
)

// 后台权限管理接口。角色面向旅行社的岗位划分（内容、运营、客服、审计），
// 每次策略变更都会写入权限审计日志。

type authzRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzStaffRolesRequest struct {
	Roles []string `json:"roles"`
}

// authzOperator 当前操作者身份，来自 JWT 中间件写入的上下文
type authzOperator struct {
	AdminID   uint
	Username  string
	RequestID string
}

func authzOperatorFrom(c *gin.Context) authzOperator {
	op := authzOperator{}
	if value, exists := c.Get(adminIDContextKey); exists {
		switch id := value.(type) {
		case uint:
			op.AdminID = id
		case int:
			if id > 0 {
				op.AdminID = uint(id)
			}
		case float64:
			if id > 0 {
				op.AdminID = uint(id)
			}
		}
	}
	if value, exists := c.Get("username"); exists {
		if username, ok := value.(string); ok {
			op.Username = strings.TrimSpace(username)
		}
	}
	if value, exists := c.Get("request_id"); exists {
		if requestID, ok := value.(string); ok {
			op.RequestID = strings.TrimSpace(requestID)
		}
	}
	return op
}

// GetAuthzMe 当前员工的权限快照：角色列表与生效策略
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	isSuper := false
	if value, exists := c.Get("admin_is_super"); exists {
		if flag, typeOK := value.(bool); typeOK {
			isSuper = flag
		}
	}

	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": isSuper,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// ListAuthzAdmins 员工列表，附带各自的角色
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	staff, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	items := make([]gin.H, 0, len(staff))
	for _, member := range staff {
		roles, roleErr := h.AuthzService.GetAdminRoles(member.ID)
		if roleErr != nil {
			respondError(c, response.CodeInternal, "error.config_fetch_failed", roleErr)
			return
		}
		items = append(items, gin.H{
			"id":            member.ID,
			"username":      member.Username,
			"full_name":     member.FullName,
			"is_super":      member.IsSuper,
			"last_login_at": member.LastLoginAt,
			"created_at":    member.CreatedAt,
			"roles":         roles,
		})
	}

	response.Success(c, items)
}

// CreateAuthzRole 创建空角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	op := authzOperatorFrom(c)
	h.auditAuthzChange(op, "role_create", models.JSON{"role": role}, func(input *service.AuthzAuditRecordInput) {
		input.Role = role
	})
	logger.Infow("admin_authz_role_created", "operator_admin_id", op.AdminID, "role", role)

	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色，预置岗位角色不可删除
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if isBuiltinRole(role) {
		respondError(c, response.CodeBadRequest, "error.role_protected", nil)
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	op := authzOperatorFrom(c)
	h.auditAuthzChange(op, "role_delete", models.JSON{"role": role}, func(input *service.AuthzAuditRecordInput) {
		input.Role = role
	})
	logger.Infow("admin_authz_role_deleted", "operator_admin_id", op.AdminID, "role", role)

	response.Success(c, nil)
}

// GetAuthzRolePolicies 角色直接持有的策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 给角色授予策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	op := authzOperatorFrom(c)
	method := strings.ToUpper(strings.TrimSpace(req.Action))
	h.auditAuthzChange(op, "policy_grant", models.JSON{
		"role":   req.Role,
		"object": req.Object,
		"method": method,
	}, func(input *service.AuthzAuditRecordInput) {
		input.Role = req.Role
		input.Object = req.Object
		input.Method = method
	})
	logger.Infow("admin_authz_policy_granted",
		"operator_admin_id", op.AdminID,
		"role", req.Role,
		"object", req.Object,
		"action", method,
	)

	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	op := authzOperatorFrom(c)
	method := strings.ToUpper(strings.TrimSpace(req.Action))
	h.auditAuthzChange(op, "policy_revoke", models.JSON{
		"role":   req.Role,
		"object": req.Object,
		"method": method,
	}, func(input *service.AuthzAuditRecordInput) {
		input.Role = req.Role
		input.Object = req.Object
		input.Method = method
	})
	logger.Infow("admin_authz_policy_revoked",
		"operator_admin_id", op.AdminID,
		"role", req.Role,
		"object", req.Object,
		"action", method,
	)

	response.Success(c, nil)
}

// GetAuthzAdminRoles 查询员工角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	if _, err := h.AdminRepo.GetByID(adminID); err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 覆盖设置员工角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	staff, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if staff == nil {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return
	}

	var req authzStaffRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	op := authzOperatorFrom(c)
	h.auditAuthzChange(op, "admin_roles_update", models.JSON{
		"target_admin_id": adminID,
		"target_username": staff.Username,
		"roles":           req.Roles,
	}, func(input *service.AuthzAuditRecordInput) {
		input.TargetAdminID = &adminID
		input.TargetUsername = staff.Username
	})
	logger.Infow("admin_authz_admin_roles_updated",
		"operator_admin_id", op.AdminID,
		"target_admin_id", adminID,
		"roles", req.Roles,
	)

	response.Success(c, nil)
}

// auditAuthzChange 写权限审计日志，失败只告警不阻断业务
func (h *Handler) auditAuthzChange(op authzOperator, action string, detail models.JSON, fill func(*service.AuthzAuditRecordInput)) {
	if h == nil || h.AuthzAuditService == nil {
		return
	}
	if op.AdminID == 0 || strings.TrimSpace(action) == "" {
		return
	}
	input := service.AuthzAuditRecordInput{
		OperatorAdminID:  op.AdminID,
		OperatorUsername: op.Username,
		Action:           action,
		RequestID:        op.RequestID,
		Detail:           detail,
	}
	if fill != nil {
		fill(&input)
	}
	if err := h.AuthzAuditService.Record(input); err != nil {
		logger.Warnw("admin_authz_audit_record_failed",
			"error", err,
			"action", action,
			"operator_admin_id", op.AdminID,
		)
	}
}

func isBuiltinRole(role string) bool {
	normalized, err := authz.NormalizeRole(role)
	if err != nil {
		return false
	}
	for _, seed := range authz.BuiltinRoleSeeds() {
		if !seed.Immutable {
			continue
		}
		seedRole, seedErr := authz.NormalizeRole(seed.Role)
		if seedErr == nil && seedRole == normalized {
			return true
		}
	}
	return false
}

func parseAdminIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
