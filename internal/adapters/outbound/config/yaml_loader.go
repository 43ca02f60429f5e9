package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mulegate/mulegate/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".mulegate.yaml"

// Environment overrides. They apply on top of the file, so a CI job can
// tighten a single knob without shipping a config file.
const (
	envFileWeight     = "MULEGATE_FILE_WEIGHT"
	envSeverityWeight = "MULEGATE_SEVERITY_WEIGHT"
	envHighWeight     = "MULEGATE_HIGH_WEIGHT"
	envMediumWeight   = "MULEGATE_MEDIUM_WEIGHT"
	envLowWeight      = "MULEGATE_LOW_WEIGHT"
	envInfoWeight     = "MULEGATE_INFO_WEIGHT"
	envMinScore       = "MULEGATE_MIN_SCORE"
	envThreshold      = "MULEGATE_THRESHOLD"
)

// YAMLLoader implements domain.ConfigLoader by reading .mulegate.yaml from
// the project root and layering environment overrides on top.
type YAMLLoader struct {
	file string
}

// New creates a YAMLLoader that probes the project root for .mulegate.yaml.
func New() *YAMLLoader { return &YAMLLoader{} }

// NewWithFile creates a YAMLLoader bound to an explicit config file. Unlike
// the probed file, an explicitly named one must exist.
func NewWithFile(file string) *YAMLLoader { return &YAMLLoader{file: file} }

// fileConfig mirrors domain.Config with pointer fields so an absent key can
// be told apart from an explicit zero.
type fileConfig struct {
	Scoring          *scoringOverlay  `yaml:"scoring"`
	Severity         *severityOverlay `yaml:"severity_weights"`
	MinimumScore     *float64         `yaml:"minimum_score"`
	Gate             *gateOverlay     `yaml:"gate"`
	Filter           *string          `yaml:"filter"`
	Mode             *string          `yaml:"mode"`
	CustomCategories []string         `yaml:"custom_categories"`
}

type scoringOverlay struct {
	FileWeight     *float64 `yaml:"file_weight"`
	SeverityWeight *float64 `yaml:"severity_weight"`
}

type severityOverlay struct {
	High   *float64 `yaml:"high"`
	Medium *float64 `yaml:"medium"`
	Low    *float64 `yaml:"low"`
	Info   *float64 `yaml:"info"`
}

type gateOverlay struct {
	Threshold      *float64 `yaml:"threshold"`
	Skip           *bool    `yaml:"skip"`
	RequirePrimary *bool    `yaml:"require_primary"`
}

// Load reads .mulegate.yaml from projectPath, or the bound explicit file. A
// missing probed file yields the defaults; explicit keys override them field
// by field.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(projectPath, fileName)
	if l.file != "" {
		path = l.file
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && l.file == "":
		// keep defaults
	case err != nil:
		return domain.Config{}, err
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		applyFile(&cfg, fc)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func applyFile(cfg *domain.Config, fc fileConfig) {
	if fc.Scoring != nil {
		setFloat(&cfg.Scoring.FileWeight, fc.Scoring.FileWeight)
		setFloat(&cfg.Scoring.SeverityWeight, fc.Scoring.SeverityWeight)
	}
	if fc.Severity != nil {
		setFloat(&cfg.Severity.High, fc.Severity.High)
		setFloat(&cfg.Severity.Medium, fc.Severity.Medium)
		setFloat(&cfg.Severity.Low, fc.Severity.Low)
		setFloat(&cfg.Severity.Info, fc.Severity.Info)
	}
	setFloat(&cfg.MinimumScore, fc.MinimumScore)
	if fc.Gate != nil {
		setFloat(&cfg.Gate.Threshold, fc.Gate.Threshold)
		if fc.Gate.Skip != nil {
			cfg.Gate.Skip = *fc.Gate.Skip
		}
		if fc.Gate.RequirePrimary != nil {
			cfg.Gate.RequirePrimary = *fc.Gate.RequirePrimary
		}
	}
	if fc.Filter != nil {
		cfg.Filter = *fc.Filter
	}
	if fc.Mode != nil {
		cfg.Mode = *fc.Mode
	}
	if len(fc.CustomCategories) > 0 {
		cfg.CustomCategories = fc.CustomCategories
	}
}

func applyEnv(cfg *domain.Config) {
	envFloatInto(&cfg.Scoring.FileWeight, envFileWeight)
	envFloatInto(&cfg.Scoring.SeverityWeight, envSeverityWeight)
	envFloatInto(&cfg.Severity.High, envHighWeight)
	envFloatInto(&cfg.Severity.Medium, envMediumWeight)
	envFloatInto(&cfg.Severity.Low, envLowWeight)
	envFloatInto(&cfg.Severity.Info, envInfoWeight)
	envFloatInto(&cfg.MinimumScore, envMinScore)
	envFloatInto(&cfg.Gate.Threshold, envThreshold)
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// envFloatInto leaves dst untouched when the variable is unset or does not
// parse, so a typo in CI degrades to the configured value.
func envFloatInto(dst *float64, key string) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}
	*dst = v
}
