package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Leaderboard  LeaderboardConfig  `mapstructure:"leaderboard"`
	Email        EmailConfig        `mapstructure:"email"`
	Audit        AuditConfig        `mapstructure:"audit"`
	Admin        AdminConfig        `mapstructure:"admin"`
}

// AdminConfig 初始管理员账号，两项都非空才会在空库时写入
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	FrontendOrigin string `mapstructure:"frontend_origin"` // CORS 允许的前端源
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RegistrationConfig struct {
	MinTeamSize int `mapstructure:"min_team_size"` // 含队长的最小队伍人数
}

type LeaderboardConfig struct {
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	TiePolicy  string `mapstructure:"tie_policy"` // team_id 或 dense
}

type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type AuditConfig struct {
	Sink       string `mapstructure:"sink"`        // console, file, redis
	File       string `mapstructure:"file"`        // sink 为 file 时的日志路径
	Stream     string `mapstructure:"stream"`      // sink 为 redis 时的 stream key
	BatchSize  int    `mapstructure:"batch_size"`  // redis sink 的批量条数
	FlushSecs  int    `mapstructure:"flush_secs"`  // redis sink 的刷新间隔
	Env        string `mapstructure:"env"`
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/hackoverflow")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.frontend_origin", "http://localhost:5173")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.user", "root")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "hackoverflow")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.expiry_hours", 12)
	viper.SetDefault("registration.min_team_size", 3)
	viper.SetDefault("leaderboard.ttl_seconds", 300)
	viper.SetDefault("leaderboard.tie_policy", "team_id")
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.host", "smtp.gmail.com")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("audit.sink", "console")
	viper.SetDefault("audit.stream", "hackoverflow:audit")
	viper.SetDefault("audit.batch_size", 50)
	viper.SetDefault("audit.flush_secs", 5)
	viper.SetDefault("audit.env", "development")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read config file: %v", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	return &cfg
}
