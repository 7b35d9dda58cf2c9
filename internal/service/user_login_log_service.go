package service

import (
	"strings"
	"time"

	"github.com/vietour/internal/constants"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"
)

const maxLoginLogPageSize = 100

// UserLoginLogService 登录留痕服务。
// 游客站点与后台登录都会落一条记录，失败时带上归一化的失败原因，
// 供风控排查与用户自查登录历史使用。
type UserLoginLogService struct {
	repo repository.UserLoginLogRepository
}

// NewUserLoginLogService 创建登录留痕服务
func NewUserLoginLogService(repo repository.UserLoginLogRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo}
}

// RecordUserLoginInput 一次登录尝试的上下文
type RecordUserLoginInput struct {
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	UserAgent   string
	LoginSource string
	RequestID   string
}

// toModel 归一化为存储记录：状态二值化，成功记录不保留失败原因
func (in RecordUserLoginInput) toModel() *models.UserLoginLog {
	email := strings.TrimSpace(in.Email)
	if normalized, err := NormalizeEmail(email); err == nil {
		email = normalized
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != constants.LoginLogStatusSuccess {
		status = constants.LoginLogStatusFailed
	}

	failReason := ""
	if status == constants.LoginLogStatusFailed {
		failReason = strings.ToLower(strings.TrimSpace(in.FailReason))
		if failReason == "" {
			failReason = constants.LoginLogFailReasonInternalError
		}
	}

	source := strings.ToLower(strings.TrimSpace(in.LoginSource))
	if source == "" {
		source = constants.LoginLogSourceWeb
	}

	return &models.UserLoginLog{
		UserID:      in.UserID,
		Email:       email,
		Status:      status,
		FailReason:  failReason,
		ClientIP:    strings.TrimSpace(in.ClientIP),
		UserAgent:   strings.TrimSpace(in.UserAgent),
		LoginSource: source,
		RequestID:   strings.TrimSpace(in.RequestID),
		CreatedAt:   time.Now(),
	}
}

// Record 落一条登录记录
func (s *UserLoginLogService) Record(input RecordUserLoginInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.Create(input.toModel())
}

// ListForAdmin 后台按条件检索登录记录
func (s *UserLoginLogService) ListForAdmin(filter repository.UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.UserLoginLog{}, 0, nil
	}
	return s.repo.ListAdmin(filter)
}

// ListByUser 用户查看自己的登录历史
func (s *UserLoginLogService) ListByUser(userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil || userID == 0 {
		return []models.UserLoginLog{}, 0, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > maxLoginLogPageSize {
		pageSize = maxLoginLogPageSize
	}
	return s.repo.ListByUser(userID, page, pageSize)
}
