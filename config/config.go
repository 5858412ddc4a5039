package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/spf13/viper"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"

	// DefaultAddress is used when neither ADDRESS_LISTEN nor WHITELIST_HOST
	// is set.
	DefaultAddress = ":4000"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env           string `mapstructure:"env"`
	AddressListen string `mapstructure:"address_listen"`
	WhitelistHost string `mapstructure:"whitelist_host"`
	AutocertCache string `mapstructure:"autocert_cache"`
	DB            `mapstructure:",squash"`
}

type DB struct {
	Driver       string `mapstructure:"db_driver"`
	User         string `mapstructure:"db_user"`
	Host         string `mapstructure:"db_host"`
	Name         string `mapstructure:"db_name"`
	Password     string `mapstructure:"db_password"`
	Port         int    `mapstructure:"db_port"`
	URL          string `mapstructure:"db_url"`
	AutoMigrate  bool   `mapstructure:"db_auto_migrate"`
	MaxOpenConns int    `mapstructure:"db_max_open_conns"`
}

var defaults = map[string]any{
	"env":               ProEnv,
	"address_listen":    "",
	"whitelist_host":    "",
	"autocert_cache":    "/var/www/.cache",
	"db_driver":         DriverPostgres,
	"db_user":           "postgres",
	"db_host":           "localhost",
	"db_name":           "postgres",
	"db_password":       "",
	"db_port":           5432,
	"db_url":            "",
	"db_auto_migrate":   false,
	"db_max_open_conns": 10,
}

// Load reads the configuration from the environment. Every key maps to the
// upper-cased env variable of the same name, e.g. db_host -> DB_HOST.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %v", err)
	}
	if err := c.DB.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (d DB) validate() error {
	switch d.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("invalid DB_PORT %d", d.Port)
	}
	return nil
}

// DSN returns DB_URL when set, otherwise a data source name built from the
// individual connection fields.
func (d DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == DriverSQLite {
		return "./postboard.db?_pragma=foreign_keys(1)"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
