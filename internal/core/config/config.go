package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// 单请求处理超时、请求体上限、全局并发与限流
	RequestTimeoutSec int
	MaxBodyMB         int
	MaxConcurrent     int
	RatePerSec        float64
	RateBurst         int
	AllowOrigins      []string
}

type AdminHTTP struct {
	Host string
	Port int
	// 启动时若不存在则创建的初始管理员
	BootstrapEmail    string
	BootstrapPassword string
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level  string
	JSON   bool
	Rotate LogRotate
}

type LogRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	CookieName        string
	CookieSecure      bool
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Storage S3 兼容对象存储；Endpoint 为空走 AWS 默认
type Storage struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	TimeoutSec      int
}

// Payment 外部支付网关
type Payment struct {
	URL            string
	MerchantID     string
	MerchantSecret string
	APIKey         string
	PostBackURL    string
	CurrencyCode   string
	Lang           string
	Channel        string
	TimeoutSec     int
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Files struct {
	RetentionHours int
	PresignTTLMin  int
	SweepCron      string
	SweepBatch     int
	MaxUploadMB    int
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Storage Storage
	Payment Payment
	Kafka   Kafka
	Files   Files
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "printshop-api")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 30)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 15)
	v.SetDefault("app.http.maxBodyMB", 32)
	v.SetDefault("app.http.maxConcurrent", 512)
	v.SetDefault("app.http.ratePerSec", 200)
	v.SetDefault("app.http.rateBurst", 400)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "printshop-api")
	v.SetDefault("jwt.accessTokenTTLMin", 24*60)
	v.SetDefault("jwt.cookieName", "access_token")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.maxOpenConns", 50)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("storage.region", "ap-southeast-1")
	v.SetDefault("storage.timeoutSec", 30)
	v.SetDefault("payment.currencyCode", "00")
	v.SetDefault("payment.lang", "TH")
	v.SetDefault("payment.channel", "full")
	v.SetDefault("payment.timeoutSec", 10)
	v.SetDefault("kafka.topic", "printshop.events")
	v.SetDefault("files.retentionHours", 24)
	v.SetDefault("files.presignTTLMin", 60)
	v.SetDefault("files.sweepCron", "@midnight")
	v.SetDefault("files.sweepBatch", 500)
	v.SetDefault("files.maxUploadMB", 20)
}

func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}

// Read 读取 yaml，APP_ 前缀环境变量覆盖（APP_DB_DSN → db.dsn）
func Read(path string) (*Config, error) {
	// .env 可选，不存在不报错
	_ = godotenv.Load()

	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
