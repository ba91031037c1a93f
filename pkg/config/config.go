package config

import (
	"github.com/kelseyhightower/envconfig"

	pkgtls "github.com/northlake-labs/product-service/pkg/tls"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	MongoURI      string `envconfig:"MONGO_URI" required:"true"` // startup is fatal without it
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"catalog"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	KafkaBrokers  string `envconfig:"KAFKA_BROKERS" default:""` // empty disables event publishing
	KafkaTopic    string `envconfig:"KAFKA_TOPIC" default:"product-events"`
	TLS           pkgtls.TLSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
