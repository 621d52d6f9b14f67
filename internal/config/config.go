package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"tarot-server/internal/util"
	"tarot-server/pkg/playable/tarot"
)

// Config provides configuration for the tarot server and client
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Tarot struct {
		HumanSeat           string `yaml:"humanSeat" envconfig:"human_seat"`
		TalonChance         int    `yaml:"talonChance" envconfig:"talon_chance"`
		ChooseDealer        bool   `yaml:"chooseDealer" envconfig:"choose_dealer"`
		PaceDealerSelection bool   `yaml:"paceDealerSelection" envconfig:"pace_dealer_selection"`
		PaceBids            bool   `yaml:"paceBids" envconfig:"pace_bids"`
		Seed                int64  `yaml:"seed" envconfig:"seed"`
		Pacing              struct {
			CardUpdateMS int `yaml:"cardUpdateMs" envconfig:"card_update_ms"`
			ShortMS      int `yaml:"shortMs" envconfig:"short_ms"`
			MediumMS     int `yaml:"mediumMs" envconfig:"medium_ms"`
			LongMS       int `yaml:"longMs" envconfig:"long_ms"`
		} `yaml:"pacing"`
	} `yaml:"tarot"`
	Server struct {
		SubscriberBuffer int `yaml:"subscriberBuffer" envconfig:"subscriber_buffer"`
	} `yaml:"server"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	opts := tarot.DefaultOptions()

	var c Config
	c.Log.Level = "info"
	c.Tarot.HumanSeat = opts.HumanSeat.String()
	c.Tarot.TalonChance = opts.TalonChance
	c.Tarot.ChooseDealer = opts.ChooseDealer
	c.Tarot.PaceDealerSelection = opts.PaceDealerSelection
	c.Tarot.PaceBids = opts.PaceBids
	c.Tarot.Pacing.CardUpdateMS = int(opts.Pacing.CardUpdate / time.Millisecond)
	c.Tarot.Pacing.ShortMS = int(opts.Pacing.Short / time.Millisecond)
	c.Tarot.Pacing.MediumMS = int(opts.Pacing.Medium / time.Millisecond)
	c.Tarot.Pacing.LongMS = int(opts.Pacing.Long / time.Millisecond)
	c.Server.SubscriberBuffer = 4096

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing configuration file leaves the defaults in place
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("TAROT_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return errors.Wrapf(err, "could not decode %s", configFile)
		}
	case !os.IsNotExist(err):
		return err
	}

	if err := envconfig.Process("tarot", &c); err != nil {
		return errors.Wrap(err, "could not process environment")
	}

	c.loaded = true
	config = c
	return nil
}

// TarotOptions converts the configuration into game options
func (c Config) TarotOptions() (tarot.Options, error) {
	opts := tarot.DefaultOptions()

	seat, err := tarot.SeatFromString(c.Tarot.HumanSeat)
	if err != nil {
		return opts, err
	}

	opts.HumanSeat = seat
	opts.TalonChance = c.Tarot.TalonChance
	opts.ChooseDealer = c.Tarot.ChooseDealer
	opts.PaceDealerSelection = c.Tarot.PaceDealerSelection
	opts.PaceBids = c.Tarot.PaceBids
	opts.Seed = c.Tarot.Seed
	opts.Pacing = tarot.Pacing{
		CardUpdate: time.Duration(c.Tarot.Pacing.CardUpdateMS) * time.Millisecond,
		Short:      time.Duration(c.Tarot.Pacing.ShortMS) * time.Millisecond,
		Medium:     time.Duration(c.Tarot.Pacing.MediumMS) * time.Millisecond,
		Long:       time.Duration(c.Tarot.Pacing.LongMS) * time.Millisecond,
	}

	return opts, nil
}
