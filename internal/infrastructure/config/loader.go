package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/otorrinoweb/triagem-go/assets"
	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/pkg/filesystem"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.triagem/config.yaml (overridable via TRIAGEM_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := writeDefault(path); err != nil {
				return domain.Config{}, err
			}
			return DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("TRIAGEM_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".triagem", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// writeDefault copies the embedded, commented template so a first run leaves
// a self-documenting file behind.
func writeDefault(path string) error {
	return os.WriteFile(path, assets.DefaultConfigYAML, 0o600)
}

// DefaultConfig mirrors the embedded default template.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Classifier: domain.ClassifierSettings{
			MinConfidence: 0.34,
		},
		Logic: domain.LogicSettings{
			PainCheck: domain.PainCheckImmediate,
		},
		Transcript: domain.TranscriptSettings{
			Backend:       domain.TranscriptBackendSQLite,
			RetentionDays: 30,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Classifier.MinConfidence == 0 {
		cfg.Classifier.MinConfidence = 0.34
	}
	if cfg.Logic.PainCheck == "" {
		cfg.Logic.PainCheck = domain.PainCheckImmediate
	}
	if cfg.Transcript.Backend == "" {
		cfg.Transcript.Backend = domain.TranscriptBackendSQLite
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
