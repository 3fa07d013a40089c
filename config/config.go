package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"

	"goban/engine"
	"goban/rules"
	"goban/types"
)

var (
	appDir  = "goban"
	cfgFile = "goban/config.json"
	logFile = "goban/debug.log"
)

var validate = validator.New()

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board" validate:"min=0,max=255"`
	BoardColorAlt     int `json:"board_alt" validate:"min=0,max=255"`
	BlackColor        int `json:"black" validate:"min=0,max=255"`
	BlackColorAlt     int `json:"black_alt" validate:"min=0,max=255"`
	WhiteColor        int `json:"white" validate:"min=0,max=255"`
	WhiteColorAlt     int `json:"white_alt" validate:"min=0,max=255"`
	LineColor         int `json:"line" validate:"min=0,max=255"`
	CursorColorFG     int `json:"cursor_fg" validate:"min=0,max=255"`
	CursorColorBG     int `json:"cursor_bg" validate:"min=0,max=255"`
	LastPlayedColorBG int `json:"last_played_bg" validate:"min=0,max=255"`
	BlackAreaColor    int `json:"black_area" validate:"min=0,max=255"`
	WhiteAreaColor    int `json:"white_area" validate:"min=0,max=255"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black"`
	WhiteStone  rune `json:"white"`
	BoardSquare rune `json:"board"`
	Cursor      rune `json:"cursor"`
	LastPlayed  rune `json:"last_played"`
}

type Theme struct {
	DrawStoneBackground      bool          `json:"draw_stone_bg"`
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	FullWidthLetters         bool          `json:"fullwidth_letters"`
	UseGridLines             bool          `json:"use_grid_lines"`
	ShowTerritory            bool          `json:"show_territory"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameDefaults holds the settings a new game starts with.
type GameDefaults struct {
	BoardSize   int     `json:"board_size" validate:"min=1,max=25"`
	Komi        float64 `json:"komi" validate:"gte=-200,lte=200"`
	Rule        string  `json:"rule" validate:"oneof=chinese japanese"`
	KoRule      string  `json:"ko_rule" validate:"oneof=simple superko"`
	PlayerColor int     `json:"player_color" validate:"oneof=1 2"` // 1=black, 2=white
	RecordGames bool    `json:"record_games"`
	HistoryDir  string  `json:"history_dir"` // empty means the XDG data directory
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
}

// InitConfig loads the config file found in the XDG config directories on top
// of DefaultConfig. A missing file is not an error.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads a config file from an explicit path on top of DefaultConfig.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return &InvalidConfig{err.Error()}
		}
		return &InvalidConfig{describe(errs)}
	}
	return nil
}

// describe turns validator failures into one readable line.
func describe(errs validator.ValidationErrors) string {
	var details strings.Builder
	for _, err := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := err.Namespace()
		switch err.Tag() {
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", field, err.Param()))
		case "min", "gte":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", field, err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", field, err.Param()))
			}
		case "max", "lte":
			details.WriteString(fmt.Sprintf("%s must be at most %s", field, err.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", field, err.Tag()))
		}
	}
	return details.String()
}

// EngineConfig converts the game defaults into an engine configuration.
func (c *Config) EngineConfig() (engine.GameConfig, error) {
	rule, err := rules.ParseRule(c.Game.Rule)
	if err != nil {
		return engine.GameConfig{}, err
	}
	ko, err := rules.ParseKoRule(c.Game.KoRule)
	if err != nil {
		return engine.GameConfig{}, err
	}
	cfg := engine.GameConfig{
		BoardSize:   c.Game.BoardSize,
		Komi:        c.Game.Komi,
		Rule:        rule,
		KoRule:      ko,
		PlayerColor: types.Color(c.Game.PlayerColor),
	}
	if c.Game.RecordGames {
		cfg.RecordDir = c.HistoryPath()
	}
	return cfg, nil
}

// HistoryPath is the directory game records are written to.
func (c *Config) HistoryPath() string {
	if c.Game.HistoryDir != "" {
		return c.Game.HistoryDir
	}
	return filepath.Join(xdg.DataHome, appDir, "history")
}

// LogPath returns the debug log location under the XDG state directory,
// creating its parent directory.
func LogPath() (string, error) {
	return xdg.StateFile(logFile)
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
