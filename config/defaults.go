package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ocsin1/artian-reroller/matcher"
)

// Reference layout was measured on a 2560x1440 window and stored as fractions.
var (
	defaultSkillArea    = []float64{0.83984, 0.49306, 1.0, 0.55556}
	defaultMaterialRows = [][]float64{
		{0.26563, 0.23611, 0.35938, 0.27083},
		{0.26563, 0.31944, 0.35938, 0.35417},
		{0.26563, 0.40278, 0.35938, 0.4375},
	}
	defaultWeaponName    = []float64{0.63281, 0.175, 0.78906, 0.21042}
	defaultWeaponElement = []float64{0.69922, 0.38889, 0.79297, 0.41667}

	// 表格列排序用的规范顺序
	defaultWeapons = []string{
		"大剣", "太刀", "片手剣", "双剣", "ハンマー", "狩猟笛", "ランス",
		"ガンランス", "スラッシュアックス", "チャージアックス", "操虫棍",
		"ライトボウガン", "ヘビィボウガン", "弓",
	}
	defaultElements = []string{"火", "水", "雷", "氷", "龍", "毒", "麻痺", "睡眠", "爆破"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: Output{
			Dir:        filepath.Join("data", "output", "skill_reroller"),
			TableFile:  "reroll_table.csv",
			ReportName: "report",
			LogDir:     filepath.Join("data", "logs"),
		},
		Reroll: Reroll{
			MaxAttempts:        0,
			StopOnMatch:        false,
			ReturnToTitle:      true,
			MatchThreshold:     matcher.DefaultThreshold,
			PointsPerAttempt:   1500,
			ConfirmedCount:     0,
			TargetCombinations: [][]string{{"闘獣の力", "甲虫の知らせ"}},
		},
		Game: Game{
			WindowTitle: "Monster Hunter Wilds",
			Weapons:     append([]string(nil), defaultWeapons...),
			Elements:    append([]string(nil), defaultElements...),
		},
		Coordinates: Coordinates{
			SkillArea:     append([]float64(nil), defaultSkillArea...),
			MaterialRows:  copyRows(defaultMaterialRows),
			WeaponName:    append([]float64(nil), defaultWeaponName...),
			WeaponElement: append([]float64(nil), defaultWeaponElement...),
		},
		Delays: Delays{
			AfterClick:      0.15,
			RerollAnimation: 5.0,
			ReturnToTitle:   0.3,
		},
		Matcher: Matcher{
			SimilarWords: map[string]string{},
		},
	}
}

// SetDefaults registers every key of Default on v so env overrides and
// partial files both resolve.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.table_file", d.Output.TableFile)
	v.SetDefault("output.report_name", d.Output.ReportName)
	v.SetDefault("output.log_dir", d.Output.LogDir)

	v.SetDefault("reroll.max_attempts", d.Reroll.MaxAttempts)
	v.SetDefault("reroll.stop_on_match", d.Reroll.StopOnMatch)
	v.SetDefault("reroll.return_to_title", d.Reroll.ReturnToTitle)
	v.SetDefault("reroll.match_threshold", d.Reroll.MatchThreshold)
	v.SetDefault("reroll.points_per_attempt", d.Reroll.PointsPerAttempt)
	v.SetDefault("reroll.confirmed_count", d.Reroll.ConfirmedCount)
	v.SetDefault("reroll.target_combinations", d.Reroll.TargetCombinations)

	v.SetDefault("game.window_title", d.Game.WindowTitle)
	v.SetDefault("game.weapons", d.Game.Weapons)
	v.SetDefault("game.elements", d.Game.Elements)
	v.SetDefault("game.series_skills", d.Game.SeriesSkills)
	v.SetDefault("game.group_skills", d.Game.GroupSkills)

	v.SetDefault("coordinates.skill_area", d.Coordinates.SkillArea)
	v.SetDefault("coordinates.material_rows", d.Coordinates.MaterialRows)
	v.SetDefault("coordinates.weapon_name", d.Coordinates.WeaponName)
	v.SetDefault("coordinates.weapon_element", d.Coordinates.WeaponElement)

	v.SetDefault("delays.after_click", d.Delays.AfterClick)
	v.SetDefault("delays.reroll_animation", d.Delays.RerollAnimation)
	v.SetDefault("delays.return_to_title", d.Delays.ReturnToTitle)

	v.SetDefault("matcher.similar_words", d.Matcher.SimilarWords)
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

// TablePath is where the reroll table lives.
func (c *Config) TablePath() string {
	return filepath.Join(c.Output.Dir, c.Output.TableFile)
}
