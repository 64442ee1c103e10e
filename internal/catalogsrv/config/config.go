package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type ConfigParam struct {
	ServerPort     string   `toml:"server_port"`
	TLSKeyFile     string   `toml:"tls_key_file"`
	TLSCertFile    string   `toml:"tls_cert_file"`
	DBFile         string   `toml:"db_file"`
	CeramicURL     string   `toml:"ceramic_url"`
	HandleCORS     bool     `toml:"handle_cors"`
	AllowedOrigins []string `toml:"allowed_origins"`
	GithubOwner    string   `toml:"github_owner"`
	GithubRepo     string   `toml:"github_repo"`
	GithubBranch   string   `toml:"github_branch"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

// LoadConfig reads a TOML config file and applies environment overrides.
// An empty filename loads defaults; when APP_ENV is set and no file is
// given, config.<env>.toml is used if present.
func LoadConfig(filename string) error {
	cp := defaults()

	if filename == "" {
		if env := os.Getenv("APP_ENV"); env != "" {
			candidate := fmt.Sprintf("config.%s.toml", env)
			if _, err := os.Stat(candidate); err == nil {
				filename = candidate
			}
		}
	}
	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading config file: %v", err)
		}
		if _, err := toml.Decode(string(content), cp); err != nil {
			return fmt.Errorf("error parsing config file: %v", err)
		}
	}

	applyEnv(cp)
	cfg = cp
	return nil
}

func defaults() *ConfigParam {
	return &ConfigParam{
		ServerPort: "8878",
		DBFile:     "db/model_catalog.db",
		CeramicURL: "https://ceramic-clay.3boxlabs.com",
		HandleCORS: true,
		AllowedOrigins: []string{
			"https://ceramic-explore.vercel.app",
		},
		GithubOwner:  "ceramicstudio",
		GithubRepo:   "datamodels",
		GithubBranch: "main",
	}
}

func applyEnv(cp *ConfigParam) {
	if v := os.Getenv("PORT"); v != "" {
		cp.ServerPort = v
	}
	if v := os.Getenv("KEY"); v != "" {
		cp.TLSKeyFile = v
	}
	if v := os.Getenv("CERT"); v != "" {
		cp.TLSCertFile = v
	}
	if v := os.Getenv("DB_FILE"); v != "" {
		cp.DBFile = v
	}
	if v := os.Getenv("CERAMIC_URL"); v != "" {
		cp.CeramicURL = v
	}
}

func init() {
	if err := LoadConfig(""); err != nil {
		panic(err)
	}
}
