// Package rules loads the declarative rules document from disk.
package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/otorrinoweb/triagem-go/assets"
	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// DefaultFileName is the well-known rules document name in the working
// directory.
const DefaultFileName = "rules_otorrino.json"

// FileLoader resolves and parses the rules document. Resolution order:
// explicit path, TRIAGEM_RULES, ./rules_otorrino.json, embedded default.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path enables the fallback
// chain.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.RulesProvider. Unreadable or undecodable input is a
// load error, distinct from the schema violations the validator reports.
func (l *FileLoader) Load(context.Context) (domain.RulesDocument, error) {
	path := l.resolvePath()
	if path == "" {
		return Parse(assets.DefaultRulesJSON)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RulesDocument{}, fmt.Errorf("could not load rules document %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return domain.RulesDocument{}, fmt.Errorf("could not load rules document %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a rules document from raw JSON.
func Parse(data []byte) (domain.RulesDocument, error) {
	var doc domain.RulesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.RulesDocument{}, fmt.Errorf("could not load rules document: %w", err)
	}
	return doc, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("TRIAGEM_RULES"); custom != "" {
		return custom
	}
	if _, err := os.Stat(DefaultFileName); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return DefaultFileName
	}
	return ""
}

var _ ports.RulesProvider = (*FileLoader)(nil)
