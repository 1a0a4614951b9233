// Package config loads the optional elgamal.ini file. Every key has a
// built-in default, so running without a file uses the fixed
// parameters of the classic demonstration.
package config

import (
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/kardianos/osext"
	"github.com/pkg/errors"
	ini "gopkg.in/ini.v1"

	"github.com/smallyu/go-elgamal/internal/crypto/safeprime"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

const (
	FileName = "elgamal.ini"

	DefaultBitLength = 2048
	DefaultCertainty = 1000

	EphemeralReuse = "reuse"
	EphemeralFresh = "fresh"
)

// ElGamal holds the cryptographic settings.
type ElGamal struct {
	BitLength     int    `comment:"Bit length of the Sophie Germain prime q; p = 2q+1 has one bit more"`
	Certainty     int    `comment:"Primality error probability is at most 2^-Certainty"`
	GeneratorTest string `comment:"standard: r^q mod p != 1, legacy: r^(p-1) mod q != 1"`
	Ephemeral     string `comment:"fresh: new secret per message, reuse: the sender's private exponent is the ephemeral secret"`
	Verbose       int    `comment:"Log verbosity, overridden by --v"`
}

// Attempts bounds the random searches. 0 means unbounded.
type Attempts struct {
	SafePrime  int
	Generator  int
	PrivateKey int
}

// Files names the stored values.
type Files struct {
	Dir       string `comment:"Directory holding the files below, empty for the working directory"`
	Prime     string
	Generator string
	Message   string
	Decrypted string
}

// Config is the whole configuration file.
type Config struct {
	ElGamal  ElGamal  `ini:"ElGamal"`
	Attempts Attempts `ini:"Attempts"`
	Files    Files    `ini:"Files"`

	path string `ini:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ElGamal: ElGamal{
			BitLength:     DefaultBitLength,
			Certainty:     DefaultCertainty,
			GeneratorTest: safeprime.StandardTest.String(),
			Ephemeral:     EphemeralFresh,
			Verbose:       0,
		},
		Attempts: Attempts{
			SafePrime:  10000000,
			Generator:  100000,
			PrivateKey: 100000,
		},
		Files: Files{
			Prime:     elg.NamePrime,
			Generator: elg.NameGenerator,
			Message:   elg.NameMessage,
			Decrypted: elg.NameDecrypted,
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: load %s", path)
	}
	conf := Default()
	if err := f.MapTo(conf); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	// MapTo leaves a field at its default when the value is empty
	for _, key := range f.Section("Files").Keys() {
		if key.Name() != "Dir" && strings.TrimSpace(key.String()) == "" {
			return nil, errors.Errorf("config: %s: Files.%s must not be empty", path, key.Name())
		}
	}
	conf.path = path
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return conf, nil
}

// Detect loads specified when it is non-empty. Otherwise it looks for
// elgamal.ini in the working directory, next to the executable and in the
// home directory, and falls back to Default when none exists.
func Detect(specified string) (*Config, error) {
	if specified != "" {
		return Load(specified)
	}
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// SearchPaths lists the candidate locations of elgamal.ini in lookup order.
func SearchPaths() []string {
	paths := []string{FileName}
	if dir, err := osext.ExecutableFolder(); err == nil {
		paths = append(paths, filepath.Join(dir, FileName))
	}
	var home string
	if u, err := user.Current(); err == nil {
		home = u.HomeDir
	} else {
		home = os.Getenv("HOME")
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, FileName))
	}
	return paths
}

// Path returns the file the configuration was read from, empty for defaults.
func (c *Config) Path() string {
	return c.path
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.ElGamal.BitLength < 2 {
		return errors.New("BitLength must be at least 2")
	}
	if c.ElGamal.Certainty < 1 {
		return errors.New("Certainty must be positive")
	}
	if _, err := safeprime.ParseGeneratorTest(c.ElGamal.GeneratorTest); err != nil {
		return err
	}
	switch strings.ToLower(c.ElGamal.Ephemeral) {
	case EphemeralReuse, EphemeralFresh:
	default:
		return errors.Errorf("Ephemeral must be %q or %q, got %q", EphemeralReuse, EphemeralFresh, c.ElGamal.Ephemeral)
	}
	if c.Attempts.SafePrime < 0 || c.Attempts.Generator < 0 || c.Attempts.PrivateKey < 0 {
		return errors.New("Attempts must not be negative")
	}
	for key, name := range map[string]string{
		"Prime":     c.Files.Prime,
		"Generator": c.Files.Generator,
		"Message":   c.Files.Message,
		"Decrypted": c.Files.Decrypted,
	} {
		if strings.TrimSpace(name) == "" {
			return errors.Errorf("Files.%s must not be empty", key)
		}
	}
	return nil
}

// GeneratorTest returns the parsed generator test. An unknown name reads as
// StandardTest, so callers run Validate first.
func (c *Config) GeneratorTest() safeprime.GeneratorTest {
	t, _ := safeprime.ParseGeneratorTest(c.ElGamal.GeneratorTest)
	return t
}

// FreshEphemeral reports whether every encryption draws a new secret.
func (c *Config) FreshEphemeral() bool {
	return strings.EqualFold(c.ElGamal.Ephemeral, EphemeralFresh)
}

// WriteTemplate writes the default configuration with comments to w.
func WriteTemplate(w io.Writer) error {
	f := ini.Empty()
	if err := ini.ReflectFrom(f, Default()); err != nil {
		return errors.Wrap(err, "config: template")
	}
	if _, err := io.WriteString(w, _CONF_HEADER[1:]); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

const _CONF_HEADER = `
# -------------------------------------------------
#   elgamal demonstration configuration
#   every key is optional; defaults are shown
# -------------------------------------------------

`
