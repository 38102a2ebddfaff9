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

type Config struct {
	Env          string
	Debug        bool
	TestMode     bool
	AppName      string
	Build        string
	RollbarToken string

	API struct {
		BaseURL string
		Timeout time.Duration // 0: no timeout
	}

	SessionFile string
	DownloadDir string
}

// NewConfig loads the configuration from the environment,
// optionally seeded by `config/.env.<env>` in the working directory.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "EduLearn")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("apiBaseURL", "http://localhost:5000/api")
	conf.SetDefault("apiTimeout", time.Duration(0))
	conf.SetDefault("sessionFile", defaultSessionFile())
	conf.SetDefault("downloadDir", ".")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		SessionFile:  conf.GetString("sessionFile"),
		DownloadDir:  conf.GetString("downloadDir"),
	}
	c.API.BaseURL = strings.TrimRight(conf.GetString("apiBaseURL"), "/")
	c.API.Timeout = conf.GetDuration("apiTimeout")
	return c
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "edulearn", "session.json")
}
