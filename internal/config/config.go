package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PassConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	PassDB       `yaml:"pass_db"`
	KafkaService `yaml:"kafka-service"`
	PassRules    `yaml:"pass_rules"`
	Features     FeaturesConfig `yaml:"features"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PassDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type KafkaService struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	VenueUpdatesTopic string `yaml:"venue_updates_topic" env-default:"venue-updates"`
}

type PassRules struct {
	ValidityWindowHours int    `yaml:"validity_window_hours" env-default:"24"`
	VerifierRole        string `yaml:"verifier_role" env-default:"doorman"`
	ExpirySweepSeconds  int    `yaml:"expiry_sweep_seconds" env-default:"30"`
}

type FeaturesConfig struct {
	Strict bool         `yaml:"strict"`
	Flags  []FlagConfig `yaml:"flags"`
}

type FlagConfig struct {
	Key               string `yaml:"key"`
	Enabled           bool   `yaml:"enabled"`
	RolloutPercentage int    `yaml:"rollout_percentage"`
	Description       string `yaml:"description"`
}

func MustLoad() *PassConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PASS_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PASS_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PassConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
