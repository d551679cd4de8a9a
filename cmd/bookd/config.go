// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"

	"github.com/diffeo/go-bookpatch/backend"
)

// Config holds the daemon settings that can come from a YAML file.
// Command-line flags override the file.
type Config struct {
	HTTP                string `mapstructure:"http"`
	Backend             string `mapstructure:"backend"`
	LogLevel            string `mapstructure:"log_level"`
	LogRequests         bool   `mapstructure:"log_requests"`
	RejectUnknownFields bool   `mapstructure:"reject_unknown_fields"`

	// CacheSize, if positive, puts an LRU cache of this many
	// records of each kind in front of the backend.
	CacheSize int `mapstructure:"cache_size"`
}

func defaultConfig() Config {
	return Config{
		HTTP:     ":8080",
		LogLevel: "info",
	}
}

// loadConfigYaml reads a YAML file over base.  Keys the file does not
// mention keep their values from base; keys that are not Config
// settings are an error.
func loadConfigYaml(filename string, base Config) (Config, error) {
	var raw map[string]interface{}
	bytes, err := ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return base, err
	}
	return decodeConfig(raw, base)
}

func decodeConfig(raw map[string]interface{}, base Config) (Config, error) {
	result := base
	config := mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &result,
	}
	decoder, err := mapstructure.NewDecoder(&config)
	if err == nil {
		err = decoder.Decode(raw)
	}
	if err != nil {
		return base, err
	}
	return result, nil
}

// withFlags overrides settings with any command-line flags that were
// given explicitly.
func (c Config) withFlags(ctx *cli.Context) Config {
	if ctx.IsSet("http") {
		c.HTTP = ctx.String("http")
	}
	if ctx.IsSet("log-level") {
		c.LogLevel = ctx.String("log-level")
	}
	if ctx.IsSet("log-requests") {
		c.LogRequests = ctx.Bool("log-requests")
	}
	if ctx.IsSet("reject-unknown-fields") {
		c.RejectUnknownFields = ctx.Bool("reject-unknown-fields")
	}
	if ctx.IsSet("cache-size") {
		c.CacheSize = ctx.Int("cache-size")
	}
	return c
}

// apply sets the global log level, and the backend if the file named
// one and the command line did not.
func (c Config) apply(b *backend.Backend, backendFlagSet bool) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if c.Backend != "" && !backendFlagSet {
		return b.Set(c.Backend)
	}
	return nil
}
