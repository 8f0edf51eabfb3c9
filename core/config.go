package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default) | TEST | QA | PROD
		Build    string
		AppName  string

		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		SendgridAPIKey   string
		RollbarToken     string

		Database DatabaseConfig
		Server   ServerConfig
	}

	DatabaseConfig struct {
		// Path is the sqlite database file.
		Path string
	}

	ServerConfig struct {
		Host                      string
		Port                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}
)

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// NewConfig loads the app configuration from the environment,
// preloading an optional config/.env.<env> file.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("build", "develop")
	conf.SetDefault("appName", "Shkolla")
	conf.SetDefault("secretKey", "w3m-kq2)dnb$+84=yz&ubxh9(h!x)#*c5(#yg1h^$cegm7eqy")
	conf.SetDefault("defaultFromEmail", "noreply@school.edu")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("databasePath", "school.db")
	conf.SetDefault("serverHost", "0.0.0.0")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("serverDebugHost", "0.0.0.0:8001")
	conf.SetDefault("shutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: conf.GetString("defaultFromEmail"),
		FrontendBaseURL:  conf.GetString("frontendBaseURL"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		Database: DatabaseConfig{
			Path: conf.GetString("databasePath"),
		},
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Port:                      conf.GetString("serverPort"),
			DebugHost:                 conf.GetString("serverDebugHost"),
			ShutdownTimeout:           conf.GetDuration("shutdownTimeout"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
	}
}
