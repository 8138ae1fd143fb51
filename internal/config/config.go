package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type VerificationConfig struct {
	CodeTTL      string `yaml:"code_ttl"`
	ResendWindow string `yaml:"resend_window"`
	ResendLimit  int    `yaml:"resend_limit"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type BootstrapConfig struct {
	SuperAdminEmail    string `yaml:"super_admin_email"`
	SuperAdminPassword string `yaml:"super_admin_password"`
	AdminEmail         string `yaml:"admin_email"`
	AdminPassword      string `yaml:"admin_password"`
}

type StorageConfig struct {
	UploadURL    string `yaml:"upload_url"`
	UploadPreset string `yaml:"upload_preset"`
}

type GeoConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	Casbin       CasbinConfig       `yaml:"casbin"`
	Bootstrap    BootstrapConfig    `yaml:"bootstrap"`
	Storage      StorageConfig      `yaml:"storage"`
	Geo          GeoConfig          `yaml:"geo"`
}

type Config struct {
	Port               string
	GinMode            string
	DSN                string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTIssuer          string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	CodeTTL            time.Duration
	ResendWindow       time.Duration
	ResendLimit        int
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPFrom           string
	CasbinModelPath    string
	SuperAdminEmail    string
	SuperAdminPassword string
	AdminEmail         string
	AdminPassword      string
	StorageUploadURL   string
	StoragePreset      string
	GeoEndpoint        string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// secrets and bootstrap credentials.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(configFile.Verification.CodeTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification code TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.Verification.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid resend window: %w", err)
	}

	return &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		DSN:                env("DATABASE_URL", configFile.Database.DSN),
		RedisAddr:          configFile.Redis.Addr,
		RedisPassword:      env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:            configFile.Redis.DB,
		JWTAccessSecret:    env("JWT_SECRET", configFile.JWT.AccessSecret),
		JWTRefreshSecret:   env("JWT_REFRESH_SECRET", configFile.JWT.RefreshSecret),
		JWTIssuer:          configFile.JWT.Issuer,
		AccessTTL:          accTTL,
		RefreshTTL:         refTTL,
		CodeTTL:            codeTTL,
		ResendWindow:       resWnd,
		ResendLimit:        configFile.Verification.ResendLimit,
		SMTPHost:           env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:           configFile.SMTP.Port,
		SMTPUsername:       env("SMTP_USER", configFile.SMTP.Username),
		SMTPPassword:       env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:           env("SMTP_FROM_EMAIL", configFile.SMTP.From),
		CasbinModelPath:    configFile.Casbin.ModelPath,
		SuperAdminEmail:    env("SUPER_ADMIN_EMAIL", configFile.Bootstrap.SuperAdminEmail),
		SuperAdminPassword: env("SUPER_ADMIN_PASSWORD", configFile.Bootstrap.SuperAdminPassword),
		AdminEmail:         env("ADMIN_EMAIL", configFile.Bootstrap.AdminEmail),
		AdminPassword:      env("ADMIN_PASSWORD", configFile.Bootstrap.AdminPassword),
		StorageUploadURL:   configFile.Storage.UploadURL,
		StoragePreset:      configFile.Storage.UploadPreset,
		GeoEndpoint:        configFile.Geo.Endpoint,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
