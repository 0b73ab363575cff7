// Package config provides the runtime configuration of the ATS scoring service.
// Settings are read through viper from an optional YAML file, ATS_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/gcbaptista/go-ats-score/internal/scoring"
)

// EnvPrefix is the prefix of every environment variable read by the service,
// e.g. ATS_SERVER_PORT for server.port.
const EnvPrefix = "ATS"

// Default values
const (
	DefaultPort           = "8080"
	DefaultMaxUploadBytes = 10 << 20 // 10 MiB
	DefaultMode           = "release"
)

// ServerSettings configures the HTTP shell.
type ServerSettings struct {
	Port           string `mapstructure:"port" json:"port"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes" json:"max_upload_bytes"` // limit for request bodies, including PDF uploads
	Mode           string `mapstructure:"mode" json:"mode"`                         // gin mode: debug, release or test
}

// LexiconSettings selects the lexical database used for synonym expansion.
type LexiconSettings struct {
	Path string `mapstructure:"path" json:"path"` // YAML synset file or WordNet wn_s.pl; empty means the embedded database
}

// LogSettings configures the zap logger.
type LogSettings struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// Settings contains all configuration options of the service.
type Settings struct {
	Server  ServerSettings  `mapstructure:"server" json:"server"`
	Lexicon LexiconSettings `mapstructure:"lexicon" json:"lexicon"`
	Weights scoring.Weights `mapstructure:"weights" json:"weights"`
	Log     LogSettings     `mapstructure:"log" json:"log"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Server: ServerSettings{
			Port:           DefaultPort,
			MaxUploadBytes: DefaultMaxUploadBytes,
			Mode:           DefaultMode,
		},
		Weights: scoring.DefaultWeights(),
	}
}

// SetDefaults registers the default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max-upload-bytes", d.Server.MaxUploadBytes)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("lexicon.path", d.Lexicon.Path)
	v.SetDefault("weights.overlap-scale", d.Weights.OverlapScale)
	v.SetDefault("weights.overlap", d.Weights.Overlap)
	v.SetDefault("weights.cosine", d.Weights.Cosine)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load decodes the settings held by v and validates them.
func Load(v *viper.Viper) (*Settings, error) {
	var settings Settings

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		TagName:          "mapstructure",
		WeaklyTypedInput: true, // env vars arrive as strings
	})
	if err != nil {
		return nil, fmt.Errorf("creating settings decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	settings.ApplyDefaults()

	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}

	return &settings, nil
}

// ApplyDefaults fills in values that must never be empty.
// Weights are left alone: a zero weight is a valid setting.
func (s *Settings) ApplyDefaults() {
	if strings.TrimSpace(s.Server.Port) == "" {
		s.Server.Port = DefaultPort
	}
	if s.Server.MaxUploadBytes == 0 {
		s.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if s.Server.Mode == "" {
		s.Server.Mode = DefaultMode
	}
	s.Lexicon.Path = strings.TrimSpace(s.Lexicon.Path)
}

// Validate returns a description of every invalid setting.
func (s *Settings) Validate() []string {
	var problems []string

	if s.Server.MaxUploadBytes < 0 {
		problems = append(problems, "server.max-upload-bytes must not be negative")
	}

	switch s.Server.Mode {
	case "debug", "release", "test":
	default:
		problems = append(problems, "Invalid server.mode '"+s.Server.Mode+"' (must be 'debug', 'release' or 'test')")
	}

	if s.Weights.OverlapScale < 0 {
		problems = append(problems, "weights.overlap-scale must not be negative")
	}
	if s.Weights.Overlap < 0 {
		problems = append(problems, "weights.overlap must not be negative")
	}
	if s.Weights.Cosine < 0 {
		problems = append(problems, "weights.cosine must not be negative")
	}
	if s.Weights.Overlap == 0 && s.Weights.Cosine == 0 {
		problems = append(problems, "weights.overlap and weights.cosine cannot both be zero")
	}

	return problems
}

// Address returns the listen address for the HTTP server.
func (s *Settings) Address() string {
	if strings.Contains(s.Server.Port, ":") {
		return s.Server.Port
	}
	return ":" + s.Server.Port
}
