// Package env is an implementation of the env.Source interface from
// go-simpler.org, reading KEY=value pairs from a .env style file.
package env

import (
	"os"
	"strings"

	"p256k.lol/chk"
)

// Env is a key/value map used to represent environment variables.
type Env map[string]string

// GetEnv reads a file expected to represent a collection of KEY=value in
// standard shell environment variable format. Blank lines, # comments and a
// leading `export ` are skipped, and matching surrounding quotes are removed from
// values, so the output of config.PrintEnv can be read back.
func GetEnv(path string) (env Env, err error) {
	var s []byte
	env = make(Env)
	if s, err = os.ReadFile(path); chk.T(err) {
		return
	}
	env.Parse(string(s))
	return
}

// Parse adds the KEY=value lines of s to the Env.
func (env Env) Parse(s string) {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		split := strings.SplitN(line, "=", 2)
		if len(split) != 2 {
			continue
		}
		value := strings.TrimSpace(split[1])
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') &&
			value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		env[strings.TrimSpace(split[0])] = value
	}
}

// LookupEnv returns the raw string value associated with a provided key name.
// Keys missing from the file fall through to the process environment.
func (env Env) LookupEnv(key string) (value string, ok bool) {
	if value, ok = env[key]; ok {
		return
	}
	return os.LookupEnv(key)
}
