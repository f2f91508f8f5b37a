package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Recommend   RecommendConfig `mapstructure:"recommend"`
	Session     SessionConfig   `mapstructure:"session"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CatalogConfig 產品目錄設定
// Path/StoresPath 指向本地 JSON；URL 若非空則啟動時改由遠端下載
type CatalogConfig struct {
	Path       string        `mapstructure:"path"`
	StoresPath string        `mapstructure:"stores_path"`
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RecommendConfig 推薦引擎設定
type RecommendConfig struct {
	DefaultTopK int `mapstructure:"default_top_k"` // 無狀態呼叫預設回傳數
	PoolSize    int `mapstructure:"pool_size"`     // 會話式推薦一次排序的候選數
	PageSize    int `mapstructure:"page_size"`     // 會話式推薦每頁數量
	MaxStores   int `mapstructure:"max_stores"`    // 每個品項附帶的門市數
}

// SessionConfig 推薦會話設定
type SessionConfig struct {
	IdleTTL         time.Duration `mapstructure:"idle_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisEnabled    bool          `mapstructure:"redis_enabled"`
	RedisAddr       string        `mapstructure:"redis_addr"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("catalog.path", "CATALOG_PATH")
	viper.BindEnv("catalog.stores_path", "STORES_PATH")
	viper.BindEnv("catalog.url", "CATALOG_URL")
	viper.BindEnv("session.redis_enabled", "SESSION_REDIS_ENABLED")
	viper.BindEnv("session.redis_addr", "SESSION_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "catalog_path:", viper.GetString("catalog.path"), "stores_path:", viper.GetString("catalog.stores_path"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "healthscan-api")

	// 伺服器設定
	viper.SetDefault("server.port", 8888)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 目錄設定
	viper.SetDefault("catalog.path", "data/health_catalog.json")
	viper.SetDefault("catalog.stores_path", "data/hanoi_stores.json")
	viper.SetDefault("catalog.url", "")
	viper.SetDefault("catalog.timeout", "30s")

	// 推薦設定
	viper.SetDefault("recommend.default_top_k", 5)
	viper.SetDefault("recommend.pool_size", 50)
	viper.SetDefault("recommend.page_size", 5)
	viper.SetDefault("recommend.max_stores", 3)

	// 會話設定
	viper.SetDefault("session.idle_ttl", "30m")
	viper.SetDefault("session.cleanup_interval", "5m")
	viper.SetDefault("session.redis_enabled", false)
	viper.SetDefault("session.redis_addr", "localhost:6379")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 去重設定
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證推薦設定
	if config.Recommend.DefaultTopK <= 0 {
		return fmt.Errorf("invalid recommend default top k")
	}
	if config.Recommend.PoolSize <= 0 {
		return fmt.Errorf("invalid recommend pool size")
	}
	if config.Recommend.PageSize <= 0 {
		return fmt.Errorf("invalid recommend page size")
	}

	// 驗證會話設定
	if config.Session.IdleTTL <= 0 {
		return fmt.Errorf("invalid session idle ttl")
	}
	if config.Session.CleanupInterval <= 0 {
		return fmt.Errorf("invalid session cleanup interval")
	}
	if config.Session.RedisEnabled && config.Session.RedisAddr == "" {
		return fmt.Errorf("session redis addr is required when redis is enabled")
	}

	return nil
}
