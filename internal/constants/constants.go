package constants

// 预订状态常量
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCanceled  = "canceled"
)

// 行程状态常量
const (
	TourStatusActive   = "active"
	TourStatusInactive = "inactive"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonCaptchaRequired    = "captcha_required"
	LoginLogFailReasonCaptchaInvalid     = "captcha_invalid"
	LoginLogFailReasonInvalidEmail       = "invalid_email"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 登录日志来源常量
const (
	LoginLogSourceWeb   = "web"
	LoginLogSourceAdmin = "admin"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin      = "login"
	CaptchaSceneRegister   = "register"
	CaptchaSceneAdminLogin = "admin_login"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskBookingStatusEmail = "booking:status_email"
	TaskBookingHoldExpire  = "booking:hold_expire"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "vt"
)

// 币种常量
const (
	SiteCurrencyDefault = "VND"
)

// 站点语言常量
const (
	LocaleViVN = "vi-VN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleViVN, LocaleEnUS}
