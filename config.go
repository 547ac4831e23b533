package logfacade

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"gopkg.in/yaml.v3"
)

// Appender types understood by the fallback engine.
const (
	AppenderConsole = "console"
	AppenderStdout  = "stdout"
	AppenderStderr  = "stderr"
	AppenderFile    = "file"
)

// Appender output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the fallback engine's configuration document: named appenders
// (destinations) and categories routed to them.
type Config struct {
	Appenders  map[string]AppenderConfig `json:"appenders" yaml:"appenders" validate:"required,min=1,dive"`
	Categories map[string]CategoryConfig `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
}

// AppenderConfig describes one destination. Console, stdout and stderr
// default to text; file defaults to JSON.
type AppenderConfig struct {
	Type       string `json:"type" yaml:"type" validate:"required,oneof=console stdout stderr file"`
	Format     string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=text json"`
	NoColor    bool   `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	TimeFormat string `json:"timeFormat,omitempty" yaml:"timeFormat,omitempty"`

	// File appender settings, handed to lumberjack.
	Filename   string `json:"filename,omitempty" yaml:"filename,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty" yaml:"maxSizeMB,omitempty" validate:"gte=0"`
	MaxBackups int    `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty" validate:"gte=0"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty" yaml:"maxAgeDays,omitempty" validate:"gte=0"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// CategoryConfig routes a category (and its descendants) to appenders at a level.
type CategoryConfig struct {
	Appenders []string `json:"appenders" yaml:"appenders" validate:"required,min=1,dive,required"`
	Level     string   `json:"level" yaml:"level" validate:"required,loglevel"`
}

// DefaultConfig returns the synthesized configuration: one console appender
// and the default category routed to it at level.
func DefaultConfig(level string) Config {
	if level == emptyString {
		level = DefaultLevel
	}
	return Config{
		Appenders: map[string]AppenderConfig{
			ConsoleAppender: {Type: AppenderConsole},
		},
		Categories: map[string]CategoryConfig{
			DefaultCategory: {Appenders: []string{ConsoleAppender}, Level: level},
		},
	}
}

// OverrideLevels forces every declared category to level.
func (c *Config) OverrideLevels(level string) {
	for name, cat := range c.Categories {
		cat.Level = level
		c.Categories[name] = cat
	}
}

// CategoryNames returns the declared category names, sorted.
func (c *Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfigFile reads and decodes the configuration at path. Files ending in
// .json are decoded as JSON, anything else as YAML. The file is closed as
// soon as its content has been read.
func LoadConfigFile(path string) (Config, error) {
	const op smerrors.Op = "logfacade.LoadConfigFile"

	data, err := readConfigFile(path)
	if err != nil {
		return Config{}, configError(op, err, errMsgConfigRead+" "+path)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, configError(op, err, errMsgConfigParse+" "+path)
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// configError tags cause with ErrInvalidConfig while keeping it in the chain.
func configError(op smerrors.Op, cause error, msg string) error {
	return smerrors.New(op).Err(fmt.Errorf("%w: %w", ErrInvalidConfig, cause)).Msg(msg)
}
