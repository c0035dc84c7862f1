// Package config loads the process wide settings of the secp256k1 layer from
// environment variables, and optionally a .env file, using go-simpler.org/env.
package config

import (
	"io"

	"github.com/adrg/xdg"
	"go-simpler.org/env"

	"p256k.lol/chk"
	"p256k.lol/config/keyvalue"
	dotenv "p256k.lol/env"
	"p256k.lol/lol"
)

// C is the configuration. The zero Engine selects the best engine compiled in.
type C struct {
	LogLevel string `env:"P256K_LOG_LEVEL" usage:"log level: off fatal error warn info debug trace (empty leaves the level unchanged)"`
	Engine   string `env:"P256K_ENGINE" usage:"EC engine to use: btcec or libsecp256k1 (empty picks the best available)"`
	EnvFile  string `env:"P256K_ENV_FILE" usage:"optional .env file read before the process environment"`
}

// EnvFileName is the .env file looked up in the XDG config directories when
// P256K_ENV_FILE is not set.
const EnvFileName = "p256k/.env"

// New loads the configuration from the process environment, then, if
// P256K_ENV_FILE names a file or one is found at EnvFileName under the XDG
// config directories, again with that file layered over the environment. A
// log level that is set is applied to the main logger, an empty one leaves the
// main logger alone.
func New() (c *C, err error) {
	if c, err = Load(nil); chk.E(err) {
		return
	}
	if c.EnvFile == "" {
		if path, e := xdg.SearchConfigFile(EnvFileName); e == nil {
			c.EnvFile = path
		}
	}
	if c.EnvFile != "" {
		var e dotenv.Env
		if e, err = dotenv.GetEnv(c.EnvFile); chk.E(err) {
			return
		}
		path := c.EnvFile
		if c, err = Load(e); chk.E(err) {
			return
		}
		c.EnvFile = path
	}
	if c.LogLevel != "" {
		lol.SetLogLevel(c.LogLevel)
	}
	return
}

// Load reads a C from the given source, or the process environment when src is
// nil.
func Load(src env.Source) (c *C, err error) {
	c = &C{}
	if err = env.Load(c, &env.Options{Source: src}); chk.E(err) {
		return
	}
	return
}

// Usage prints the documentation of the environment variables.
func Usage(w io.Writer) { env.Usage(&C{}, w, nil) }

// PrintEnv renders the configuration as an editable shell script.
func (c *C) PrintEnv(w io.Writer) { keyvalue.PrintEnv(*c, w) }
