package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultRulesJSON contains the embedded default triage rules document, so
// the binary works out of the box without a rules file on disk.
//
//go:embed defaults/rules_otorrino.json
var DefaultRulesJSON []byte
