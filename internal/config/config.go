package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig          `mapstructure:"postgres"` // Postgres配置
	Ingest   IngestConfig            `mapstructure:"ingest"`   // 采集调度配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 多数据源独立配置
	Filter   FilterConfig            `mapstructure:"filter"`   // 业务筛选配置
	OpenAI   OpenAIConfig            `mapstructure:"openai"`   // LLM富化配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig Postgres数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// IngestConfig 采集调度配置
type IngestConfig struct {
	CpvPrefix      string   `mapstructure:"cpv_prefix"`      // CPV行业前缀过滤（如"72"=IT服务）
	EnabledSources []string `mapstructure:"enabled_sources"` // 启用的数据源列表
}

// SourceConfig 单个数据源的独立配置
type SourceConfig struct {
	BaseURL   string `mapstructure:"base_url"`   // API基础地址
	Timeout   int    `mapstructure:"timeout"`    // 请求超时（秒）
	PageSize  int    `mapstructure:"page_size"`  // 分页大小（OCDS搜索用）
	Proxy     string `mapstructure:"proxy"`      // 代理地址
	UserAgent string `mapstructure:"user_agent"` // 请求UA（部分门户对默认UA返回403）
}

// FilterConfig 业务筛选配置
type FilterConfig struct {
	HighValueThreshold float64  `mapstructure:"high_value_threshold"` // 高价值金额阈值（欧元）
	ExclusionKeywords  []string `mapstructure:"exclusion_keywords"`   // 标题排除关键词
	HighValueKeywords  []string `mapstructure:"high_value_keywords"`  // 高价值加分关键词
}

// OpenAIConfig LLM富化配置
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"` // API Key（建议走 .env）
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // 请求超时（秒）
	Enabled bool   `mapstructure:"enabled"` // 关闭时跳过富化，不影响主流程
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if g, ok := cfg.Sources["germany"]; ok {
		if v := os.Getenv("GERMANY_PROXY"); v != "" {
			g.Proxy = v
		}
		cfg.Sources["germany"] = g
	}
	if u, ok := cfg.Sources["uk"]; ok {
		if v := os.Getenv("UK_PROXY"); v != "" {
			u.Proxy = v
		}
		cfg.Sources["uk"] = u
	}
}

// GetGORMConfig 获取Postgres配置（适配GORM）
func (p *PostgresConfig) GetGORMConfig() gorm.Config {
	return gorm.Config{} // 可扩展：添加日志、命名策略等
}
