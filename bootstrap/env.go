package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv                string `mapstructure:"APP_ENV"`
	ServerAddress         string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout        int    `mapstructure:"CONTEXT_TIMEOUT"`
	StorageDriver         string `mapstructure:"STORAGE_DRIVER"`
	LocalStoragePath      string `mapstructure:"LOCAL_STORAGE_PATH"`
	DBHost                string `mapstructure:"DB_HOST"`
	DBPort                string `mapstructure:"DB_PORT"`
	DBUser                string `mapstructure:"DB_USER"`
	DBPass                string `mapstructure:"DB_PASS"`
	DBName                string `mapstructure:"DB_NAME"`
	AccessTokenExpiryHour int    `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`
	AccessTokenSecret     string `mapstructure:"ACCESS_TOKEN_SECRET"`
	SpotifyClientID       string `mapstructure:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret   string `mapstructure:"SPOTIFY_CLIENT_SECRET"`
}

func NewEnv() *Env {
	env := Env{}
	viper.SetConfigFile(".env")

	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal("Can't find the file .env : ", err)
	}

	err = viper.Unmarshal(&env)
	if err != nil {
		log.Fatal("Environment can't be loaded: ", err)
	}

	// 默认走本地存储
	if env.StorageDriver == "" {
		env.StorageDriver = "local"
	}
	if env.LocalStoragePath == "" {
		env.LocalStoragePath = "./data"
	}

	if env.AppEnv == "development" {
		log.Println("The App is running in development env")
	}

	return &env
}
