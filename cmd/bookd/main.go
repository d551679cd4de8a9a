// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command bookd serves a library of books and contacts over a REST
// API that accepts JSON Patch and JSON Merge Patch updates.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/diffeo/go-bookpatch/backend"
	"github.com/diffeo/go-bookpatch/cache"
	"github.com/diffeo/go-bookpatch/library"
)

func main() {
	app := newApp(func(config Config, backend backend.Backend) error {
		lib, err := openLibrary(config, backend)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err":     err,
				"backend": backend.String(),
			}).Fatal("Could not create library backend")
			return err
		}

		go observe(lib)
		return serveHTTP(lib, config)
	})

	if err := app.Run(os.Args); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("bookd failed")
	}
}

// openLibrary creates the backend library, wrapping it in a cache if
// the configuration asks for one.
func openLibrary(config Config, backend backend.Backend) (library.Library, error) {
	lib, err := backend.Library()
	if err != nil {
		return nil, err
	}
	if config.CacheSize > 0 {
		lib = cache.NewWithSize(lib, config.CacheSize)
	}
	return lib, nil
}

// newApp builds the command-line interface.  It works out the final
// configuration from the YAML file and flags, sets the log level, and
// passes the result to run.
func newApp(run func(Config, backend.Backend) error) *cli.App {
	config := defaultConfig()
	backend := backend.Backend{Implementation: "memory"}

	app := cli.NewApp()
	app.Name = "bookd"
	app.Usage = "serve a patchable library over HTTP"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "http",
			Value: config.HTTP,
			Usage: "[ip]:port for HTTP REST interface",
		},
		cli.GenericFlag{
			Name:  "backend",
			Value: &backend,
			Usage: "impl[:address] of the storage backend",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "global configuration YAML file",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: config.LogLevel,
			Usage: "minimum level of log messages",
		},
		cli.BoolFlag{
			Name:  "log-requests",
			Usage: "log all requests",
		},
		cli.IntFlag{
			Name:  "cache-size",
			Usage: "records of each kind to cache in front of the backend (0 to disable)",
		},
		cli.BoolFlag{
			Name:  "reject-unknown-fields",
			Usage: "fail updates that leave unknown fields in a record",
		},
	}
	app.Action = func(c *cli.Context) error {
		var err error
		if file := c.String("config"); file != "" {
			config, err = loadConfigYaml(file, config)
			if err != nil {
				return fmt.Errorf("could not load YAML configuration: %v", err)
			}
		}
		config = config.withFlags(c)
		if err = config.apply(&backend, c.IsSet("backend")); err != nil {
			return fmt.Errorf("invalid configuration: %v", err)
		}
		return run(config, backend)
	}
	return app
}
