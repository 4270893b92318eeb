package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Directory        string  `mapstructure:"directory"`
	TimeoutInSeconds int     `mapstructure:"timeout_in_seconds"`
	Noise            float64 `mapstructure:"noise"`
	MaxFlips         int     `mapstructure:"max_flips"`
	PinMaxFlips      bool    `mapstructure:"pin_max_flips"` // Use MaxFlips instead of the no_clauses/2+1 rule
	Seed             uint64  `mapstructure:"seed"`          // 0 draws a fresh seed per solve
	Debug            bool    `mapstructure:"debug"`
	MetricsFile      string  `mapstructure:"metrics_file"`
}

func Default() Config {
	return Config{
		TimeoutInSeconds: 10,
		Noise:            0.1,
		MaxFlips:         1000,
	}
}

// Load overlays the values found in a JSON file on top of Default().
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot read config file")
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config file %s", path)
	}

	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "%s: %v", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	switch {
	case c.Directory == "":
		return errors.Wrap(ErrInvalidConfig, "a problem directory must be specified")
	case c.TimeoutInSeconds < 0:
		return errors.Wrapf(ErrInvalidConfig, "timeout must not be negative: %d", c.TimeoutInSeconds)
	case c.Noise < 0 || c.Noise > 1:
		return errors.Wrapf(ErrInvalidConfig, "noise must be within [0, 1]: %v", c.Noise)
	case c.MaxFlips < 1:
		return errors.Wrapf(ErrInvalidConfig, "max flips must be positive: %d", c.MaxFlips)
	}
	return nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutInSeconds) * time.Second
}
