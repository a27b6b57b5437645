package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port" validate:"required"`
		Env  string `mapstructure:"env" validate:"oneof=development production test"`
	} `mapstructure:"app"`
	DB struct {
		Driver     string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
		DSN        string `mapstructure:"dsn" validate:"required"`
		SchemaPath string `mapstructure:"schema_path"`
		SeedPath   string `mapstructure:"seed_path" validate:"required"`
		// TransactionalReplace wraps a profile replace in one transaction.
		// Off by default: each delete/insert commits on its own.
		TransactionalReplace bool `mapstructure:"transactional_replace"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db" validate:"gte=0,lte=15"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Static struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"static"`
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none is given), then applies environment overrides.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetDefault("app.port", "3000")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "data/meapi.db")
	v.SetDefault("db.seed_path", "seed.json")
	v.SetDefault("db.transactional_replace", false)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("static.dir", "public")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT", "PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.schema_path", "DB_SCHEMA_PATH")
	v.BindEnv("db.seed_path", "DB_SEED_PATH")
	v.BindEnv("db.transactional_replace", "DB_TRANSACTIONAL_REPLACE")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("redis.ttl", "REDIS_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")
	v.BindEnv("static.dir", "STATIC_DIR")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	if err = validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
