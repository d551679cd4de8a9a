// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command jsonpatch applies JSON Patch and JSON Merge Patch documents
// to JSON files, without a server.
//
//	jsonpatch apply target.json patch.json
//	jsonpatch merge target.json merge.json
//
// The patched document is written to standard output.  A file name
// of "-" reads standard input.
package main

import (
	"errors"
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/diffeo/go-bookpatch/jsonpatch"
	"github.com/diffeo/go-bookpatch/mergepatch"
	"github.com/diffeo/go-bookpatch/patch"
)

var errUsage = errors.New("expected a target file and a patch file")

func readFile(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return ioutil.ReadAll(stdin)
	}
	return ioutil.ReadFile(name)
}

// run reads the two named files, combines them with engine, and
// writes the result to out.
func run(
	args []string,
	stdin io.Reader,
	out io.Writer,
	engine func(target, patchDoc []byte) ([]byte, error),
) error {
	if len(args) != 2 {
		return errUsage
	}
	target, err := readFile(args[0], stdin)
	if err != nil {
		return err
	}
	patchDoc, err := readFile(args[1], stdin)
	if err != nil {
		return err
	}
	result, err := engine(target, patchDoc)
	if err != nil {
		return err
	}
	_, err = out.Write(append(result, '\n'))
	return err
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "jsonpatch"
	app.Usage = "apply JSON Patch or JSON Merge Patch documents"
	app.Commands = []cli.Command{
		{
			Name:      "apply",
			Usage:     "apply an RFC 6902 JSON Patch",
			ArgsUsage: "target.json patch.json",
			Action: func(c *cli.Context) error {
				return run(c.Args(), stdin, stdout, jsonpatch.ApplyBytes)
			},
		},
		{
			Name:      "merge",
			Usage:     "apply an RFC 7396 JSON Merge Patch",
			ArgsUsage: "target.json merge.json",
			Action: func(c *cli.Context) error {
				return run(c.Args(), stdin, stdout, mergepatch.ApplyBytes)
			},
		},
	}
	return app
}

func main() {
	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		logrus.WithFields(logrus.Fields{
			"kind": patch.KindOf(err),
			"err":  err,
		}).Fatal("patch failed")
	}
}
