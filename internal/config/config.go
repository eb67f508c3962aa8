// Package config loads curveprep settings from defaults, an optional YAML
// file and CURVEPREP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-curves/dataset"
	"github.com/cwbudde/algo-curves/dsp/smooth"
	"github.com/cwbudde/algo-curves/measure/peak"
)

// EnvPrefix is prepended to environment overrides, e.g.
// CURVEPREP_SMOOTHING_WINDOW=31.
const EnvPrefix = "CURVEPREP"

// Config holds every tunable of a curveprep run.
type Config struct {
	Smoothing SmoothingConfig `mapstructure:"smoothing"`
	Peaks     PeaksConfig     `mapstructure:"peaks"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type SmoothingConfig struct {
	Method    string `mapstructure:"method" validate:"oneof=savgol moving-average"`
	Window    int    `mapstructure:"window" validate:"gte=1"`
	PolyOrder int    `mapstructure:"poly_order" validate:"gte=0"`
}

type PeaksConfig struct {
	Distance   int     `mapstructure:"distance" validate:"gte=1"`
	Prominence float64 `mapstructure:"prominence" validate:"gte=0"`
	// Height is the minimum peak height; 0 selects half the curve maximum.
	Height float64 `mapstructure:"height"`
}

type PipelineConfig struct {
	// Workers bounds per-curve parallelism; 0 uses GOMAXPROCS.
	Workers int `mapstructure:"workers" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type MetricsConfig struct {
	// Textfile is a node-exporter textfile path; empty disables export.
	Textfile string `mapstructure:"textfile"`
}

// ErrInvalid wraps every validation failure returned by Load and Validate.
var ErrInvalid = errors.New("config: invalid")

func setDefaults(v *viper.Viper) {
	v.SetDefault("smoothing.method", "savgol")
	v.SetDefault("smoothing.window", 101)
	v.SetDefault("smoothing.poly_order", smooth.DefaultPolyOrder)
	v.SetDefault("peaks.distance", peak.DefaultDistance)
	v.SetDefault("peaks.prominence", peak.DefaultProminence)
	v.SetDefault("peaks.height", 0.0)
	v.SetDefault("pipeline.workers", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("metrics.textfile", "")
}

// Load reads configuration from path (or curveprep.yaml in the usual
// locations when path is empty) and the environment, then validates it.
// A missing default config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("curveprep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks field constraints and reports every failing field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Prep converts the smoothing and peak settings into dataset preparation
// parameters.
func (c *Config) Prep() (dataset.Prep, error) {
	method, err := smooth.ParseMethod(c.Smoothing.Method)
	if err != nil {
		return dataset.Prep{}, err
	}

	p := dataset.Prep{
		Method: method,
		Smooth: []smooth.Option{
			smooth.WithWindow(c.Smoothing.Window),
			smooth.WithPolyOrder(c.Smoothing.PolyOrder),
		},
		Peak: []peak.Option{
			peak.WithDistance(c.Peaks.Distance),
			peak.WithProminence(c.Peaks.Prominence),
		},
	}
	if c.Peaks.Height != 0 {
		p.Peak = append(p.Peak, peak.WithHeight(c.Peaks.Height))
	}
	return p, nil
}

// DatasetOptions returns the dataset options implied by the pipeline
// settings.
func (c *Config) DatasetOptions() []dataset.Option {
	return []dataset.Option{dataset.WithWorkers(c.Pipeline.Workers)}
}
