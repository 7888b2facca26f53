package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"kitty/internal/lang"
)

// LanguageConfig is one entry of the languages list in kitty.yml.
// Unix/Windows override individual keys on that platform.
type LanguageConfig struct {
	Name           string            `yaml:"name"`
	FileExtension  string            `yaml:"file_extension"`
	RunCommand     string            `yaml:"run_command"`
	CompileCommand string            `yaml:"compile_command,omitempty"`
	Unix           *PlatformOverride `yaml:"unix,omitempty"`
	Windows        *PlatformOverride `yaml:"windows,omitempty"`
}

// PlatformOverride replaces the non-empty keys of a LanguageConfig
type PlatformOverride struct {
	Name           string `yaml:"name,omitempty"`
	FileExtension  string `yaml:"file_extension,omitempty"`
	RunCommand     string `yaml:"run_command,omitempty"`
	CompileCommand string `yaml:"compile_command,omitempty"`
}

type languageFile struct {
	DefaultLanguage string           `yaml:"default_language,omitempty"`
	Languages       []LanguageConfig `yaml:"languages"`
}

// Language converts the entry for the running platform
func (lc LanguageConfig) Language() lang.Language {
	resolved := lc.forPlatform(runtime.GOOS)
	return lang.Language{
		Name:       resolved.Name,
		FileExt:    strings.ToLower(resolved.FileExtension),
		RunCmd:     resolved.RunCommand,
		CompileCmd: resolved.CompileCommand,
	}
}

func (lc LanguageConfig) forPlatform(goos string) LanguageConfig {
	override := lc.Unix
	if goos == "windows" {
		override = lc.Windows
	}
	if override == nil {
		return lc
	}
	if override.Name != "" {
		lc.Name = override.Name
	}
	if override.FileExtension != "" {
		lc.FileExtension = override.FileExtension
	}
	if override.RunCommand != "" {
		lc.RunCommand = override.RunCommand
	}
	if override.CompileCommand != "" {
		lc.CompileCommand = override.CompileCommand
	}
	return lc
}

func (lc LanguageConfig) validate(goos string) error {
	resolved := lc.forPlatform(goos)
	if resolved.Name == "" {
		return errors.New("languages in the config file must contain a 'name' field")
	}
	if resolved.FileExtension == "" {
		return fmt.Errorf("failed to read language configuration for '%s': languages in the config file must contain a 'file_extension' field", resolved.Name)
	}
	if resolved.RunCommand == "" {
		return fmt.Errorf("failed to read language configuration for '%s': languages in the config file must contain a 'run_command' field", resolved.Name)
	}
	return nil
}

// LoadLanguages reads kitty.yml if present. Without it the defaults stay.
func (c *Config) LoadLanguages() error {
	path := c.ConfigFilePath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file at '%s': %w", path, err)
	}

	defaultLanguage, languages, err := ParseLanguages(data)
	if err != nil {
		return err
	}
	c.DefaultLanguage = defaultLanguage
	if len(languages) > 0 {
		c.Languages = languages
	}
	return nil
}

// ParseLanguages parses the contents of kitty.yml
func ParseLanguages(data []byte) (string, []LanguageConfig, error) {
	var file languageFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to parse kitty config file: %w", err)
	}

	for _, l := range file.Languages {
		if err := l.validate(runtime.GOOS); err != nil {
			return "", nil, err
		}
	}
	return strings.ToLower(file.DefaultLanguage), file.Languages, nil
}

// MarshalLanguages renders a kitty.yml document
func MarshalLanguages(defaultLanguage string, languages []LanguageConfig) ([]byte, error) {
	data, err := yaml.Marshal(languageFile{DefaultLanguage: defaultLanguage, Languages: languages})
	if err != nil {
		return nil, fmt.Errorf("marshal languages: %w", err)
	}
	return data, nil
}
