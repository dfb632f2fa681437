package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port          int           `yaml:"port"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	CorsOrigins   []string      `yaml:"cors_origins"`
	JwtTTL        time.Duration `yaml:"jwt_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`

	// LoadFailsafe bounds how long an event-stream client waits for the
	// first snapshot before being told the board is ready anyway.
	LoadFailsafe time.Duration `yaml:"load_failsafe"`

	MaxContentLen int `yaml:"max_content_len"` // item content, in runes
	MaxTitleLen   int `yaml:"max_title_len"`   // board title, in runes
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}

func (p *Public) applyDefaults() {
	if p.Port == 0 {
		p.Port = 8080
	}
	if p.JwtTTL == 0 {
		p.JwtTTL = 24 * time.Hour
	}
	if p.LoadFailsafe == 0 {
		p.LoadFailsafe = 8 * time.Second
	}
	if p.MaxContentLen == 0 {
		p.MaxContentLen = 2000
	}
	if p.MaxTitleLen == 0 {
		p.MaxTitleLen = 200
	}
}
