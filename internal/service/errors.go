package service

import "errors"

// 服务层哨兵错误，handler 按 errors.Is 映射为对外响应。
var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrInvalidEmail 邮箱格式非法
	ErrInvalidEmail = errors.New("邮箱格式非法")
	// ErrParentNotFound 家长邮箱未注册
	ErrParentNotFound = errors.New("家长邮箱未注册")
	// ErrEmailExists 邮箱已被占用
	ErrEmailExists = errors.New("邮箱已存在")

	// ErrVerifyCodeNotFound 验证码不存在或已被消费
	ErrVerifyCodeNotFound = errors.New("验证码不存在")
	// ErrVerifyCodeExpired 验证码已过期
	ErrVerifyCodeExpired = errors.New("验证码已过期")
	// ErrVerifyCodeMismatch 验证码不匹配
	ErrVerifyCodeMismatch = errors.New("验证码不正确")

	// ErrEmailServiceDisabled 邮件服务未启用
	ErrEmailServiceDisabled = errors.New("邮件服务未启用")
	// ErrEmailServiceNotConfigured 邮件服务配置不完整
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	// ErrEmailRecipientRejected 收件人被服务器拒绝
	ErrEmailRecipientRejected = errors.New("收件人地址被拒绝")

	// ErrCaptchaRequired 需要验证码
	ErrCaptchaRequired = errors.New("需要验证码")
	// ErrCaptchaInvalid 验证码校验失败
	ErrCaptchaInvalid = errors.New("验证码校验失败")
	// ErrCaptchaConfigInvalid 验证码配置无效
	ErrCaptchaConfigInvalid = errors.New("验证码配置无效")

	// ErrInvalidParent 家长信息不完整
	ErrInvalidParent = errors.New("家长信息不完整")
	// ErrInvalidEducator 教育者信息不完整
	ErrInvalidEducator = errors.New("教育者信息不完整")
	// ErrInvalidGroup 班组信息不完整
	ErrInvalidGroup = errors.New("班组信息不完整")
	// ErrInvalidForm 同意书信息不完整
	ErrInvalidForm = errors.New("同意书信息不完整")
	// ErrInvalidAgeRange 班组年龄区间非法
	ErrInvalidAgeRange = errors.New("年龄区间非法")
	// ErrFormChildrenRequired 同意书未选择儿童
	ErrFormChildrenRequired = errors.New("同意书至少选择一名儿童")
	// ErrFormSignatureRequired 同意书缺少签名
	ErrFormSignatureRequired = errors.New("同意书缺少电子签名")
	// ErrFormStatusInvalid 同意书状态非法
	ErrFormStatusInvalid = errors.New("同意书状态非法")
)
