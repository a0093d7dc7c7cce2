// Package config loads the reroller settings from config.toml.
//
// Values are read with viper so every key can be overridden from the
// environment (REROLLER_REROLL_MATCH_THRESHOLD, dots become underscores),
// and written back with BurntSushi/toml when the session settings are saved.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/ocsin1/artian-reroller/matcher"
	"github.com/ocsin1/artian-reroller/rerolltable"
)

// EnvPrefix - 环境变量前缀
const EnvPrefix = "REROLLER"

// Config is the full reroller configuration.
type Config struct {
	Output      Output      `mapstructure:"output" toml:"output"`
	Reroll      Reroll      `mapstructure:"reroll" toml:"reroll"`
	Game        Game        `mapstructure:"game" toml:"game"`
	Coordinates Coordinates `mapstructure:"coordinates" toml:"coordinates"`
	Delays      Delays      `mapstructure:"delays" toml:"delays"`
	Matcher     Matcher     `mapstructure:"matcher" toml:"matcher"`
}

type Output struct {
	Dir        string `mapstructure:"dir" toml:"dir"`
	TableFile  string `mapstructure:"table_file" toml:"table_file"`
	ReportName string `mapstructure:"report_name" toml:"report_name"`
	LogDir     string `mapstructure:"log_dir" toml:"log_dir"`
}

type Reroll struct {
	MaxAttempts        int        `mapstructure:"max_attempts" toml:"max_attempts"`
	StopOnMatch        bool       `mapstructure:"stop_on_match" toml:"stop_on_match"`
	ReturnToTitle      bool       `mapstructure:"return_to_title" toml:"return_to_title"`
	MatchThreshold     float64    `mapstructure:"match_threshold" toml:"match_threshold"`
	PointsPerAttempt   int        `mapstructure:"points_per_attempt" toml:"points_per_attempt"`
	ConfirmedCount     int        `mapstructure:"confirmed_count" toml:"confirmed_count"`
	TargetCombinations [][]string `mapstructure:"target_combinations" toml:"target_combinations"`
}

type Game struct {
	WindowTitle  string   `mapstructure:"window_title" toml:"window_title"`
	Weapons      []string `mapstructure:"weapons" toml:"weapons"`
	Elements     []string `mapstructure:"elements" toml:"elements"`
	SeriesSkills []string `mapstructure:"series_skills" toml:"series_skills"`
	GroupSkills  []string `mapstructure:"group_skills" toml:"group_skills"`
}

// Coordinates are fractions of the game window: [left, top, right, bottom].
type Coordinates struct {
	SkillArea     []float64   `mapstructure:"skill_area" toml:"skill_area"`
	MaterialRows  [][]float64 `mapstructure:"material_rows" toml:"material_rows"`
	WeaponName    []float64   `mapstructure:"weapon_name" toml:"weapon_name"`
	WeaponElement []float64   `mapstructure:"weapon_element" toml:"weapon_element"`
}

// Matcher - OCR 误识替换表
type Matcher struct {
	SimilarWords map[string]string `mapstructure:"similar_words" toml:"similar_words"`
}

// Delays are in seconds.
type Delays struct {
	AfterClick      float64 `mapstructure:"after_click" toml:"after_click"`
	RerollAnimation float64 `mapstructure:"reroll_animation" toml:"reroll_animation"`
	ReturnToTitle   float64 `mapstructure:"return_to_title" toml:"return_to_title"`
}

// Load reads path (TOML) on top of the defaults. A missing file is not an
// error: the defaults are returned.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Info().Str("path", path).Msg("<Config> config file not found, using defaults")
		} else {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the matching and capture code rely on.
func (c *Config) Validate() error {
	if c.Reroll.MatchThreshold < 0 || c.Reroll.MatchThreshold > 1 {
		return errors.WithHint(
			errors.Newf("match_threshold %v out of range", c.Reroll.MatchThreshold),
			"use a value between 0 and 1, e.g. 0.65")
	}
	if c.Reroll.MaxAttempts < 0 {
		return errors.Newf("max_attempts %d must not be negative", c.Reroll.MaxAttempts)
	}
	if c.Reroll.ConfirmedCount < 0 {
		return errors.Newf("confirmed_count %d must not be negative", c.Reroll.ConfirmedCount)
	}
	if c.Reroll.PointsPerAttempt <= 0 {
		return errors.Newf("points_per_attempt %d must be positive", c.Reroll.PointsPerAttempt)
	}
	if err := checkRect("skill_area", c.Coordinates.SkillArea); err != nil {
		return err
	}
	if err := checkRect("weapon_name", c.Coordinates.WeaponName); err != nil {
		return err
	}
	if err := checkRect("weapon_element", c.Coordinates.WeaponElement); err != nil {
		return err
	}
	for i, r := range c.Coordinates.MaterialRows {
		if err := checkRect("material_rows", r); err != nil {
			return errors.Wrapf(err, "row %d", i+1)
		}
	}
	return nil
}

func checkRect(name string, r []float64) error {
	if len(r) != 4 {
		return errors.Newf("%s must have 4 values, got %d", name, len(r))
	}
	for _, f := range r {
		if f < 0 || f > 1 {
			return errors.WithHint(
				errors.Newf("%s value %v out of range", name, f),
				"coordinates are fractions of the game window (0..1)")
		}
	}
	if r[0] >= r[2] || r[1] >= r[3] {
		return errors.Newf("%s is empty: %v", name, r)
	}
	return nil
}

// Combinations builds the target combinations. Entries whose slots are all
// empty are skipped, the way unset dropdown pairs were.
func (c *Config) Combinations() []matcher.Combination {
	out := make([]matcher.Combination, 0, len(c.Reroll.TargetCombinations))
	for i, raw := range c.Reroll.TargetCombinations {
		combo, err := matcher.NewCombination(raw...)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Strs("skills", raw).Msg("<Config> skip target combination")
			continue
		}
		out = append(out, combo)
	}
	return out
}

// NewMatcher builds the matcher used against live OCR text.
func (c *Config) NewMatcher() *matcher.Matcher {
	return matcher.New(c.Reroll.MatchThreshold).WithCorrections(c.Corrections())
}

// Corrections returns the configured misreading table.
func (c *Config) Corrections() matcher.Corrections {
	return matcher.Corrections(c.Matcher.SimilarWords)
}

// SetCombinations replaces the configured targets.
func (c *Config) SetCombinations(cs []matcher.Combination) {
	c.Reroll.TargetCombinations = make([][]string, 0, len(cs))
	for _, combo := range cs {
		c.Reroll.TargetCombinations = append(c.Reroll.TargetCombinations, append([]string(nil), combo...))
	}
}

// ColumnOrder is the canonical weapon/element ordering for the reroll table.
func (c *Config) ColumnOrder() rerolltable.ColumnOrder {
	return rerolltable.ColumnOrder{Weapons: c.Game.Weapons, Elements: c.Game.Elements}
}

// UnknownSkills lists target skills missing from the known skill lists. It is
// empty when no lists are configured.
func (c *Config) UnknownSkills() []string {
	if len(c.Game.SeriesSkills) == 0 && len(c.Game.GroupSkills) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(c.Game.SeriesSkills)+len(c.Game.GroupSkills))
	for _, s := range c.Game.SeriesSkills {
		known[s] = struct{}{}
	}
	for _, s := range c.Game.GroupSkills {
		known[s] = struct{}{}
	}
	var unknown []string
	for _, combo := range c.Combinations() {
		for _, s := range combo {
			if _, ok := known[s]; !ok {
				unknown = append(unknown, s)
			}
		}
	}
	return unknown
}
