package config

import "github.com/spf13/viper"

// Config holds all configuration of the application, read from an env
// file or environment variables.
type Config struct {
	ServerAddress   string `mapstructure:"SERVER_ADDRESS"`
	DatasetSource   string `mapstructure:"DATASET_SOURCE"` // file or postgres
	DatasetPath     string `mapstructure:"DATASET_PATH"`
	DatasetEncoding string `mapstructure:"DATASET_ENCODING"` // sjis or utf8
	DBSource        string `mapstructure:"DB_SOURCE"`
}

// LoadConfig reads configuration from app.env in path, with environment
// variables taking precedence.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
