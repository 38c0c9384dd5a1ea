package constants

// 会话角色常量
const (
	RoleParent = "parent"
)

// 家长账号状态常量
const (
	ParentStatusActive   = "active"
	ParentStatusInactive = "inactive"
)

// 同意书状态常量
const (
	FormStatusSubmitted = "submitted"
	FormStatusReviewed  = "reviewed"
	FormStatusApproved  = "approved"
	FormStatusRejected  = "rejected"
)

// 验证码场景常量
const (
	CaptchaSceneSendVerification = "send_verification"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskFormStatusEmail = "form:status_email"
)

// 缓存键常量
const (
	CacheKeyActiveGroups    = "groups:active"
	CacheKeyActiveEducators = "educators:active"
)
