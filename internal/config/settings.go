package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// AutoCreate is the policy for creating a descriptor when a folder without
// one is opened. It is a closed enumeration; unknown spellings in the
// settings file are rejected at load time.
type AutoCreate int

const (
	// AutoCreateAsk requires confirmation before creating a descriptor.
	AutoCreateAsk AutoCreate = iota

	// AutoCreateAlways creates a descriptor without asking.
	AutoCreateAlways

	// AutoCreateNever never creates descriptors automatically.
	AutoCreateNever
)

// String returns the settings-file spelling of the policy.
func (a AutoCreate) String() string {
	switch a {
	case AutoCreateAlways:
		return "always"
	case AutoCreateNever:
		return "never"
	default:
		return "ask"
	}
}

// ParseAutoCreate parses the settings-file spelling of the policy.
// The empty string means the default, ask.
func ParseAutoCreate(s string) (AutoCreate, error) {
	switch strings.ToLower(s) {
	case "", "ask":
		return AutoCreateAsk, nil
	case "always":
		return AutoCreateAlways, nil
	case "never":
		return AutoCreateNever, nil
	default:
		return AutoCreateAsk, fmt.Errorf("invalid auto_create value %q (want always, ask or never)", s)
	}
}

// EditorSettings describes how to invoke the host editor.
type EditorSettings struct {
	// Command is the editor binary.
	Command string

	// ProjectFlag is the flag that selects a project descriptor.
	ProjectFlag string

	// NewWindowFlag requests a separate window.
	NewWindowFlag string
}

// Settings holds user-tunable behavior.
type Settings struct {
	// AutoCreate governs descriptor creation for bare folders.
	AutoCreate AutoCreate

	// Editor describes the editor invocation.
	Editor EditorSettings
}

// DefaultSettings returns the built-in defaults (Sublime Text's subl).
func DefaultSettings() *Settings {
	return &Settings{
		AutoCreate: AutoCreateAsk,
		Editor: EditorSettings{
			Command:       "subl",
			ProjectFlag:   "--project",
			NewWindowFlag: "--new-window",
		},
	}
}

// LoadSettings loads settings from the YAML file at path, then overrides with
// OPENPROJ_* environment variables. A missing file yields the defaults.
//
// Precedence (highest to lowest):
//  1. Environment variables (OPENPROJ_AUTO_CREATE, OPENPROJ_EDITOR_COMMAND, ...)
//  2. YAML settings file
//  3. Built-in defaults
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	if data, err := os.ReadFile(path); err == nil {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := k.Load(env.Provider("OPENPROJ_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	settings := DefaultSettings()

	if k.Exists("auto_create") {
		policy, err := ParseAutoCreate(k.String("auto_create"))
		if err != nil {
			return nil, err
		}
		settings.AutoCreate = policy
	}
	if v := k.String("editor.command"); v != "" {
		settings.Editor.Command = v
	}
	if v := k.String("editor.project_flag"); v != "" {
		settings.Editor.ProjectFlag = v
	}
	if v := k.String("editor.new_window_flag"); v != "" {
		settings.Editor.NewWindowFlag = v
	}

	return settings, nil
}

// envKey maps OPENPROJ_* environment variables to settings keys:
//
//	OPENPROJ_AUTO_CREATE            -> auto_create
//	OPENPROJ_EDITOR_COMMAND         -> editor.command
//	OPENPROJ_EDITOR_PROJECT_FLAG    -> editor.project_flag
//	OPENPROJ_EDITOR_NEW_WINDOW_FLAG -> editor.new_window_flag
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "OPENPROJ_"))
	if rest, ok := strings.CutPrefix(key, "editor_"); ok {
		return "editor." + rest
	}
	return key
}
