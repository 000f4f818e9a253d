package consts

// 数据库运行时配置项的键名
const (
	// ConfigAllowRegister 是否开放注册 (true/false)
	ConfigAllowRegister = "allow_register"

	// ConfigMaxUploadSize 单个文件最大上传限制 (MB)
	ConfigMaxUploadSize = "max_upload_size"

	// ConfigMaxRequestBodyKB 非文件上传接口最大请求体限制 (KB)
	ConfigMaxRequestBodyKB = "max_request_body_kb"

	// ConfigDefaultStorageQuota 默认存储配额 (字节)
	ConfigDefaultStorageQuota = "default_storage_quota"

	// ConfigRateLimitEnabled 是否开启限流
	ConfigRateLimitEnabled = "rate_limit_enabled"

	// ConfigRateLimitAuthRPS 认证接口限流 RPS
	ConfigRateLimitAuthRPS = "rate_limit_auth_rps"

	// ConfigRateLimitAuthBurst 认证接口限流 Burst
	ConfigRateLimitAuthBurst = "rate_limit_auth_burst"

	// ConfigRateLimitUploadRPS 上传接口限流 RPS
	ConfigRateLimitUploadRPS = "rate_limit_upload_rps"

	// ConfigRateLimitUploadBurst 上传接口限流 Burst
	ConfigRateLimitUploadBurst = "rate_limit_upload_burst"
)
