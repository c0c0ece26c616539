package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ViolationConfig struct {
	Env             string `yaml:"env"`
	ViolationDB     `yaml:"violation_db"`
	LogConfig       `yaml:"log_config"`
	MetricsServer   `yaml:"metrics_server"`
	KafkaService    `yaml:"kafka-service"`
	EvidenceStorage `yaml:"evidence-storage"`
	Background      `yaml:"background"`
}

type ViolationDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"notification-events"`
}

type EvidenceStorage struct {
	Bucket          string `yaml:"bucket"`
	ProjectID       string `yaml:"project_id"`
	CredentialsPath string `yaml:"credentials_path"`
}

type Background struct {
	OrderSweepInterval time.Duration `yaml:"order_sweep_interval" env-default:"24h"`
	SettlementInterval time.Duration `yaml:"settlement_interval" env-default:"1m"`
}

func MustLoad() *ViolationConfig {

	// Processing env config variable and file
	configPath := os.Getenv("VIOLATION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("VIOLATION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ViolationConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
