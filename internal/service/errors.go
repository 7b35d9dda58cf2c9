package service

import "errors"

// 通用错误
var (
	ErrNotFound = errors.New("记录不存在")
)

// 用户认证相关错误
var (
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrInvalidPassword    = errors.New("旧密码不正确")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrProfileEmpty       = errors.New("没有可更新的资料字段")
)

// 行程与分类相关错误
var (
	ErrTourNotFound       = errors.New("行程不存在")
	ErrTourInactive       = errors.New("行程未上架")
	ErrCategoryNotFound   = errors.New("分类不存在")
	ErrCategorySlugExists = errors.New("分类标识已存在")
	ErrCategoryInUse      = errors.New("分类下仍有行程")
)

// 地点相关错误
var (
	ErrPlaceNotFound = errors.New("地点不存在")
)

// 购物车相关错误
var (
	ErrInvalidQuantity  = errors.New("数量不合法")
	ErrCartItemNotFound = errors.New("购物车项不存在")
	ErrCartEmpty        = errors.New("购物车为空")
)

// 预订相关错误
var (
	ErrInsufficientSlots    = errors.New("行程剩余名额不足")
	ErrBookingNotFound      = errors.New("预订不存在")
	ErrBookingNotCancelable = errors.New("预订当前状态不可取消")
	ErrInvalidBookingStatus = errors.New("预订状态不合法")
)

// 验证码与邮件相关错误
var (
	ErrCaptchaRequired           = errors.New("需要验证码")
	ErrCaptchaInvalid            = errors.New("验证码不正确")
	ErrCaptchaNotConfigured      = errors.New("验证码服务未配置")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
)
