package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"gopkg.in/ini.v1"
)

const (
	SectionGithub = "Github"
	SectionAPI    = "API"

	KeyToken        = "Token"
	KeyVCSProvider  = "Provider"
	KeyVCSBaseURL   = "BaseURL"
	KeyAPIURL       = "SonnetAPIUrl"
	KeyAPIKey       = "SonnetAPIKey"
	KeyModel        = "SonnetModel"
	KeyDiffURL      = "DiffUrl"
	KeyAIProvider   = "Provider"
	KeyMaxDiffChars = "MaxDiffChars"

	EnvToken  = "CODESCORE_GITHUB_TOKEN"
	EnvAPIKey = "CODESCORE_API_KEY"

	DefaultConfigFile   = "codescore.cfg"
	DefaultMaxDiffChars = 100000
)

type (
	// Config is built once by Load and treated as read-only afterwards.
	Config struct {
		VCS      VCSConfig
		AI       AIConfig
		PathFile string
	}

	VCSConfig struct {
		Provider VCS
		Token    string
		BaseURL  string
	}

	AIConfig struct {
		Provider     AI
		APIURL       string
		APIKey       string
		Model        string
		DiffURL      string
		MaxDiffChars int
	}
)

// fileConfig holds the raw section values shared by both file formats.
type fileConfig struct {
	Github struct {
		Token    string
		Provider string
		BaseURL  string
	}
	API struct {
		SonnetAPIUrl string
		SonnetAPIKey string
		SonnetModel  string
		DiffUrl      string
		Provider     string
		MaxDiffChars string
	}
}

// tomlFile is the TOML shape; MaxDiffChars may be an integer or a string.
type tomlFile struct {
	Github struct {
		Token    string `toml:"Token"`
		Provider string `toml:"Provider"`
		BaseURL  string `toml:"BaseURL"`
	} `toml:"Github"`
	API struct {
		SonnetAPIUrl string      `toml:"SonnetAPIUrl"`
		SonnetAPIKey string      `toml:"SonnetAPIKey"`
		SonnetModel  string      `toml:"SonnetModel"`
		DiffUrl      string      `toml:"DiffUrl"`
		Provider     string      `toml:"Provider"`
		MaxDiffChars interface{} `toml:"MaxDiffChars"`
	} `toml:"API"`
}

// Load reads the configuration at path. Files ending in .toml are decoded as
// TOML, everything else as a sectioned INI file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domainErrors.ErrConfigMissing.WithError(err).WithContext("path", path)
		}
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", path)
	}

	var (
		fc  *fileConfig
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		fc, err = readTOML(path)
	} else {
		fc, err = readINI(path)
	}
	if err != nil {
		return nil, err
	}

	applyEnv(fc)

	cfg, err := fc.toConfig()
	if err != nil {
		return nil, err
	}
	cfg.PathFile = path

	return cfg, nil
}

func readINI(path string) (*fileConfig, error) {
	// Secrets and URLs may contain '#' or ';', so only whole-line comments count.
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", path)
	}

	get := func(section, key string) string {
		return strings.TrimSpace(file.Section(section).Key(key).String())
	}

	fc := &fileConfig{}
	fc.Github.Token = get(SectionGithub, KeyToken)
	fc.Github.Provider = get(SectionGithub, KeyVCSProvider)
	fc.Github.BaseURL = get(SectionGithub, KeyVCSBaseURL)
	fc.API.SonnetAPIUrl = get(SectionAPI, KeyAPIURL)
	fc.API.SonnetAPIKey = get(SectionAPI, KeyAPIKey)
	fc.API.SonnetModel = get(SectionAPI, KeyModel)
	fc.API.DiffUrl = get(SectionAPI, KeyDiffURL)
	fc.API.Provider = get(SectionAPI, KeyAIProvider)
	fc.API.MaxDiffChars = get(SectionAPI, KeyMaxDiffChars)

	return fc, nil
}

func readTOML(path string) (*fileConfig, error) {
	var tf tomlFile
	if _, err := toml.DecodeFile(path, &tf); err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", path)
	}

	fc := &fileConfig{}
	fc.Github.Token = tf.Github.Token
	fc.Github.Provider = tf.Github.Provider
	fc.Github.BaseURL = tf.Github.BaseURL
	fc.API.SonnetAPIUrl = tf.API.SonnetAPIUrl
	fc.API.SonnetAPIKey = tf.API.SonnetAPIKey
	fc.API.SonnetModel = tf.API.SonnetModel
	fc.API.DiffUrl = tf.API.DiffUrl
	fc.API.Provider = tf.API.Provider
	if tf.API.MaxDiffChars != nil {
		fc.API.MaxDiffChars = strings.TrimSpace(fmt.Sprint(tf.API.MaxDiffChars))
	}

	return fc, nil
}

func applyEnv(fc *fileConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		fc.Github.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		fc.API.SonnetAPIKey = v
	}
}

func (fc *fileConfig) toConfig() (*Config, error) {
	required := []struct {
		key   string
		value string
	}{
		{SectionGithub + "." + KeyToken, fc.Github.Token},
		{SectionAPI + "." + KeyAPIURL, fc.API.SonnetAPIUrl},
		{SectionAPI + "." + KeyAPIKey, fc.API.SonnetAPIKey},
		{SectionAPI + "." + KeyModel, fc.API.SonnetModel},
		{SectionAPI + "." + KeyDiffURL, fc.API.DiffUrl},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, domainErrors.ErrConfigKeyMissing.WithContext("key", r.key)
		}
	}

	cfg := &Config{
		VCS: VCSConfig{
			Provider: VCSGitHub,
			Token:    strings.TrimSpace(fc.Github.Token),
			BaseURL:  strings.TrimSpace(fc.Github.BaseURL),
		},
		AI: AIConfig{
			Provider:     AIOpenAI,
			APIURL:       strings.TrimSpace(fc.API.SonnetAPIUrl),
			APIKey:       strings.TrimSpace(fc.API.SonnetAPIKey),
			Model:        strings.TrimSpace(fc.API.SonnetModel),
			DiffURL:      strings.TrimSpace(fc.API.DiffUrl),
			MaxDiffChars: DefaultMaxDiffChars,
		},
	}

	if p := strings.ToLower(strings.TrimSpace(fc.Github.Provider)); p != "" {
		cfg.VCS.Provider = VCS(p)
	}
	if p := strings.ToLower(strings.TrimSpace(fc.API.Provider)); p != "" {
		cfg.AI.Provider = AI(p)
	}

	if fc.API.MaxDiffChars != "" {
		n, err := strconv.Atoi(fc.API.MaxDiffChars)
		if err != nil || n < 0 {
			return nil, domainErrors.ErrConfigValueInvalid.
				WithContext("key", SectionAPI+"."+KeyMaxDiffChars).
				WithSuggestion("MaxDiffChars must be a non-negative integer (0 disables the cap)")
		}
		cfg.AI.MaxDiffChars = n
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if !isSupportedVCS(cfg.VCS.Provider) {
		return domainErrors.ErrVCSNotSupported.WithContext("key", string(cfg.VCS.Provider))
	}
	if !isSupportedAI(cfg.AI.Provider) {
		return domainErrors.ErrAIProviderNotSupported.WithContext("key", string(cfg.AI.Provider))
	}
	return nil
}

// Masked returns a copy safe to print or log.
func (c *Config) Masked() Config {
	m := *c
	m.VCS.Token = maskSecret(c.VCS.Token)
	m.AI.APIKey = maskSecret(c.AI.APIKey)
	return m
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-2:]
}
