package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type S3Config struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type KafkaConfig struct {
	BrokerList  string `mapstructure:"broker_list"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

type OutputConfig struct {
	Format      string `mapstructure:"format"`      // "csv", "json", "parquet", "kafka", "console"
	Path        string `mapstructure:"path"`        // base directory for file formats
	Folder      string `mapstructure:"folder"`      // sub folder / object prefix
	Destination string `mapstructure:"destination"` // "local" or "s3", parquet only
}

type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type GeneratorConfig struct {
	Seed        int64     `mapstructure:"seed"`
	Customers   int       `mapstructure:"customers"`
	Restaurants int       `mapstructure:"restaurants"`
	Riders      int       `mapstructure:"riders"`
	Orders      int       `mapstructure:"orders"`
	StartDate   time.Time `mapstructure:"start_date"`
	EndDate     time.Time `mapstructure:"end_date"`
	CancelRate  float64   `mapstructure:"cancel_rate"`
	PlacedRate  float64   `mapstructure:"placed_rate"`
	LateRate    float64   `mapstructure:"late_rate"`
	Cities      []string  `mapstructure:"cities"`
}

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Source    string          `mapstructure:"source"` // "local", "s3", "postgres"
	S3        S3Config        `mapstructure:"s3"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Output    OutputConfig    `mapstructure:"output"`
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

func setDefaults() {
	viper.SetDefault("data_dir", ".")
	viper.SetDefault("source", SourceLocal)
	viper.SetDefault("s3.region", "me-central-1")
	viper.SetDefault("kafka.broker_list", "localhost:9092")
	viper.SetDefault("kafka.topic_prefix", "bitesdash")
	viper.SetDefault("output.format", "csv")
	viper.SetDefault("output.path", "output")
	viper.SetDefault("output.folder", "export")
	viper.SetDefault("output.destination", "local")
	viper.SetDefault("server.listen_addr", ":8080")
	viper.SetDefault("generator.seed", 42)
	viper.SetDefault("generator.customers", 500)
	viper.SetDefault("generator.restaurants", 60)
	viper.SetDefault("generator.riders", 80)
	viper.SetDefault("generator.orders", 5000)
	viper.SetDefault("generator.start_date", "2024-01-01")
	viper.SetDefault("generator.end_date", "2024-03-31")
	viper.SetDefault("generator.cancel_rate", 0.08)
	viper.SetDefault("generator.placed_rate", 0.02)
	viper.SetDefault("generator.late_rate", 0.2)
	viper.SetDefault("generator.cities", []string{"Dubai", "Abu Dhabi", "Sharjah"})
}

// LoadConfig initializes and reads the configuration using Viper. The config
// file is optional unless cfgFile names one explicitly.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName("bitesdash")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("bitesdash")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc("2006-01-02"),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
