package models

import "time"

// AuthzAuditLog 后台权限变更审计。
// 记录谁在什么时候动了哪个角色或账号的权限，detail 里保留完整变更内容。
type AuthzAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                              // 主键
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`                           // 操作者
	OperatorUsername string    `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	TargetAdminID    *uint     `gorm:"index" json:"target_admin_id,omitempty"` // 被操作的员工（角色/策略操作时为空）
	TargetUsername   string    `gorm:"type:varchar(100);index;not null;default:''" json:"target_username"`
	Action           string    `gorm:"type:varchar(100);index;not null" json:"action"`          // role_create / policy_grant / admin_delete 等
	Role             string    `gorm:"type:varchar(120);index;not null;default:''" json:"role"` // 涉及的角色
	Object           string    `gorm:"type:varchar(255);index;not null;default:''" json:"object"`
	Method           string    `gorm:"type:varchar(20);index;not null;default:''" json:"method"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DetailJSON       JSON      `gorm:"type:json" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
