// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffeo/go-bookpatch/backend"
	"github.com/diffeo/go-bookpatch/memory"
)

// runApp runs the command line and returns what it would serve with.
func runApp(t *testing.T, args ...string) (Config, backend.Backend, error) {
	var (
		config Config
		b      backend.Backend
	)
	app := newApp(func(c Config, bb backend.Backend) error {
		config = c
		b = bb
		return nil
	})
	err := app.Run(append([]string{"bookd"}, args...))
	return config, b, err
}

func writeConfig(t *testing.T, text string) string {
	f, err := ioutil.TempFile("", "bookd-config")
	require.NoError(t, err)
	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestDefaults(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	config, b, err := runApp(t)
	if assert.NoError(t, err) {
		assert.Equal(t, defaultConfig(), config)
		assert.Equal(t, backend.Backend{Implementation: "memory"}, b)
	}
}

func TestConfigFile(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	file := writeConfig(t, `
http: ":9000"
backend: "memory:file"
log_level: debug
log_requests: true
reject_unknown_fields: true
cache_size: 16
`)
	config, b, err := runApp(t, "--config", file)
	if assert.NoError(t, err) {
		assert.Equal(t, Config{
			HTTP:                ":9000",
			Backend:             "memory:file",
			LogLevel:            "debug",
			LogRequests:         true,
			RejectUnknownFields: true,
			CacheSize:           16,
		}, config)
		assert.Equal(t, backend.Backend{Implementation: "memory", Address: "file"}, b)
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	file := writeConfig(t, `
http: ":9000"
backend: "memory:file"
log_level: debug
`)
	config, b, err := runApp(t,
		"--config", file,
		"--http", ":9001",
		"--backend", "memory:flag",
		"--log-level", "warning",
		"--log-requests",
		"--cache-size", "4",
	)
	if assert.NoError(t, err) {
		assert.Equal(t, ":9001", config.HTTP)
		assert.Equal(t, "warning", config.LogLevel)
		assert.True(t, config.LogRequests)
		assert.False(t, config.RejectUnknownFields)
		assert.Equal(t, 4, config.CacheSize)
		assert.Equal(t, backend.Backend{Implementation: "memory", Address: "flag"}, b)
		assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	}
}

func TestBadConfig(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	_, _, err := runApp(t, "--config", writeConfig(t, "colour: blue\n"))
	assert.Error(t, err)

	_, _, err = runApp(t, "--config", writeConfig(t, "http: [\n"))
	assert.Error(t, err)

	_, _, err = runApp(t, "--log-level", "chatty")
	assert.Error(t, err)

	_, _, err = runApp(t, "--config", writeConfig(t, "backend: postgres\n"))
	assert.Error(t, err)
}

func TestDecodeConfigKeepsBase(t *testing.T) {
	config, err := decodeConfig(map[string]interface{}{"log_requests": "true"}, defaultConfig())
	if assert.NoError(t, err) {
		expected := defaultConfig()
		expected.LogRequests = true
		assert.Equal(t, expected, config)
	}
}

func TestOpenLibrary(t *testing.T) {
	b := backend.Backend{Implementation: "memory"}
	for _, size := range []int{0, 8} {
		config := defaultConfig()
		config.CacheSize = size
		lib, err := openLibrary(config, b)
		if assert.NoError(t, err) {
			book, err := lib.Book(1)
			if assert.NoError(t, err) {
				assert.Equal(t, "Foo Adventures", *book.Title)
			}
		}
	}

	_, err := openLibrary(defaultConfig(), backend.Backend{Implementation: "bogus"})
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	lib := memory.New()
	require.NoError(t, summarize(lib))
	assert.Equal(t, 2.0, testutil.ToFloat64(librarySummary.WithLabelValues("book")))
	assert.Equal(t, 1.0, testutil.ToFloat64(librarySummary.WithLabelValues("contact")))

	server := httptest.NewServer(newHandler(lib, defaultConfig()))
	defer server.Close()

	for _, path := range []string{"/", "/books", "/contacts/1", "/metrics"} {
		resp, err := http.Get(server.URL + path)
		if assert.NoError(t, err, path) {
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
			resp.Body.Close()
		}
	}
}
