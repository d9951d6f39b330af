package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Mail         Mail
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Mail struct {
	ResendApiKey  string
	From          string
	FlushInterval int // seconds between flush runs
	FlushBatch    int // max queued emails delivered per run
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("MAIL_FROM", "Kuiz <no-reply@kuiz.app>")
	viper.SetDefault("MAIL_FLUSH_INTERVAL", 60)
	viper.SetDefault("MAIL_FLUSH_BATCH", 50)

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Mail.ResendApiKey = viper.GetString("RESEND_API_KEY")
	config.Mail.From = viper.GetString("MAIL_FROM")
	config.Mail.FlushInterval = viper.GetInt("MAIL_FLUSH_INTERVAL")
	config.Mail.FlushBatch = viper.GetInt("MAIL_FLUSH_BATCH")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("server_port", config.Server.Port).Str("database_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
