package types

import "time"

// Config 主配置结构
type Config struct {
	LogLevel string         `mapstructure:"log_level"` // 兼容保留
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Network  NetworkConfig  `mapstructure:"network"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Stream   StreamConfig   `mapstructure:"stream"`
	Profiles ProfilesConfig `mapstructure:"profiles"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`       // 日志级别
	FilePath   string `mapstructure:"file_path"`   // 日志输出路径名
	MaxSize    int    `mapstructure:"max_size"`    // 日志文件大小 单位：MB，超限后会自动切割
	MaxAge     int    `mapstructure:"max_age"`     // 日志文件存放时间 单位：天
	MaxBackups int    `mapstructure:"max_backups"` // 日志文件备份数量
	Compress   bool   `mapstructure:"compress"`    // 日志文件压缩
}

// RedisConfig Redis配置（信号状态备份，未配置则使用纯内存模式）
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
}

// MySQLConfig MySQL配置（预警日志持久化，Host为空则关闭）
type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// NetworkConfig 网络配置
type NetworkConfig struct {
	Proxy   string        `mapstructure:"proxy"`   // HTTP代理地址，如 http://127.0.0.1:7890
	Timeout time.Duration `mapstructure:"timeout"` // 网络超时时间
}

// MonitorConfig 监控循环配置
type MonitorConfig struct {
	CheckInterval time.Duration  `mapstructure:"check_interval"` // 分析周期，默认300秒
	MaxDuration   time.Duration  `mapstructure:"max_duration"`   // 运行时长上限，0表示不限制
	FailureDelay  time.Duration  `mapstructure:"failure_delay"`  // 周期失败后的退避时间
	RetryAttempts int            `mapstructure:"retry_attempts"` // 单标的抓取重试次数
	RetryDelay    time.Duration  `mapstructure:"retry_delay"`    // 重试间隔
	Markets       []MarketConfig `mapstructure:"markets"`
}

// MarketConfig 单个市场的监控目标
type MarketConfig struct {
	Market   Market            `mapstructure:"market"` // crypto / gold / vnstock
	Symbols  []string          `mapstructure:"symbols"`
	Names    map[string]string `mapstructure:"names"` // 标的显示名称
	Interval string            `mapstructure:"interval"`
	Limit    int               `mapstructure:"limit"` // 抓取K线数量
}

// NotifyConfig 通知渠道配置
type NotifyConfig struct {
	Console bool        `mapstructure:"console"`
	Desktop bool        `mapstructure:"desktop"`
	Email   EmailConfig `mapstructure:"email"`
}

// EmailConfig 邮件通知配置
type EmailConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	SMTPServer string   `mapstructure:"smtp_server"`
	SMTPPort   int      `mapstructure:"smtp_port"`
	Sender     string   `mapstructure:"sender"`
	Password   string   `mapstructure:"password"`
	Recipients []string `mapstructure:"recipients"`
	UseTLS     bool     `mapstructure:"use_tls"`
}

// StreamConfig 实时行情流配置
type StreamConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	Endpoint             string        `mapstructure:"endpoint"`
	ReconnectInterval    time.Duration `mapstructure:"reconnect_interval"`
	PingInterval         time.Duration `mapstructure:"ping_interval"`
	MaxReconnectAttempts int           `mapstructure:"max_reconnect_attempts"`
}

// ProfilesConfig 三个市场的参数集
type ProfilesConfig struct {
	Crypto  MarketProfile `mapstructure:"crypto"`
	Gold    MarketProfile `mapstructure:"gold"`
	VNStock MarketProfile `mapstructure:"vnstock"`
}

// Profile 按市场取参数集
func (pc ProfilesConfig) Profile(market Market) MarketProfile {
	switch market {
	case MarketGold:
		return pc.Gold
	case MarketVNStock:
		return pc.VNStock
	default:
		return pc.Crypto
	}
}
