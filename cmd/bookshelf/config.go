package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configuration struct {
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Reset struct {
		Key string `toml:"key"`
	} `toml:"reset"`
	Summarizer struct {
		Enabled bool     `toml:"enabled"`
		URL     string   `toml:"url"`
		Token   string   `toml:"token"`
		Timeout duration `toml:"timeout"`
	} `toml:"summarizer"`
	Recommend struct {
		Enabled bool `toml:"enabled"`
		K       int  `toml:"k"`
	} `toml:"recommend"`
	Mail struct {
		Enabled  bool   `toml:"enabled"`
		Server   string `toml:"server"`
		Port     int    `toml:"port"`
		Email    string `toml:"email"`
		Password string `toml:"password"`
		From     string `toml:"from"`
	} `toml:"mail"`
}

// duration reads strings like "30s" from the configuration file.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

const (
	envResetKey        = "BOOKSHELF_RESET_KEY"
	envSummarizerToken = "BOOKSHELF_SUMMARIZER_TOKEN"
	envMailPassword    = "BOOKSHELF_MAIL_PASSWORD"
)

func defaultConfiguration() Configuration {
	var cfg Configuration
	cfg.Bolt.Store = "data/bookshelf.db"
	cfg.Summarizer.Timeout = duration{30 * time.Second}
	cfg.Recommend.Enabled = true
	cfg.Mail.Port = 587
	return cfg
}

// loadConfiguration reads the toml file at path. Secrets found in the
// environment, or in a .env file, take precedence over the file.
func loadConfiguration(path string) (Configuration, error) {
	cfg := defaultConfiguration()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("error reading configuration %s: %w", path, err)
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	overrides := map[string]*string{
		envResetKey:        &cfg.Reset.Key,
		envSummarizerToken: &cfg.Summarizer.Token,
		envMailPassword:    &cfg.Mail.Password,
	}
	for key, value := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*value = v
		}
	}

	if cfg.Reset.Key == "" {
		return Configuration{}, fmt.Errorf("no reset key: set [reset] key or %s", envResetKey)
	}
	if cfg.Summarizer.Enabled && cfg.Summarizer.URL == "" {
		return Configuration{}, fmt.Errorf("summarizer is enabled but has no url")
	}
	if cfg.Mail.Enabled && (cfg.Mail.Server == "" || cfg.Mail.Email == "") {
		return Configuration{}, fmt.Errorf("mail is enabled but has no server or email")
	}

	return cfg, nil
}
