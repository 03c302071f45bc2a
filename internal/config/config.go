package config

import (
	"fmt"
	"net"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/lojhan/chainkv/internal/hashtable"
	"github.com/lojhan/chainkv/internal/logutil"
)

const DefaultAddr = ":6379"

type Config struct {
	Server ServerConfig      `toml:"server"`
	Table  TableConfig       `toml:"table"`
	Log    logutil.LogConfig `toml:"log"`
}

type ServerConfig struct {
	Addr      string `toml:"addr"`
	Multicore bool   `toml:"multicore"`
}

type TableConfig struct {
	OnDuplicate  string `toml:"on-duplicate"`
	StrictLookup bool   `toml:"strict-lookup"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:      DefaultAddr,
			Multicore: true,
		},
		Table: TableConfig{
			OnDuplicate:  hashtable.DuplicateAppend.String(),
			StrictLookup: true,
		},
		Log: logutil.DefaultLogConfig(),
	}
}

// Load decodes the TOML file at path over the defaults. Keys the file sets
// but Config does not know are reported as an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error

	if c.Server.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("server.addr must not be empty"))
	} else if _, _, splitErr := net.SplitHostPort(c.Server.Addr); splitErr != nil {
		err = multierr.Append(err, fmt.Errorf("server.addr: %w", splitErr))
	}

	if _, parseErr := hashtable.ParseDuplicatePolicy(c.Table.OnDuplicate); parseErr != nil {
		err = multierr.Append(err, fmt.Errorf("table.on-duplicate: %w", parseErr))
	}

	if logErr := c.Log.Validate(); logErr != nil {
		err = multierr.Append(err, logErr)
	}

	return err
}

// TableOptions translates the table section into hashtable options.
func (c *Config) TableOptions() ([]func(*hashtable.Config), error) {
	policy, err := hashtable.ParseDuplicatePolicy(c.Table.OnDuplicate)
	if err != nil {
		return nil, err
	}

	opts := []func(*hashtable.Config){hashtable.WithDuplicatePolicy(policy)}
	if c.Table.StrictLookup {
		opts = append(opts, hashtable.WithStrictLookup())
	}
	return opts, nil
}
