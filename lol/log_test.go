package lol

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	for i, name := range LevelNames {
		require.Equal(t, i, GetLogLevel(name))
	}
	require.Equal(t, Info, GetLogLevel("bogus"))
}

func TestLevelFiltering(t *testing.T) {
	buf := new(bytes.Buffer)
	l, c, e := New(buf)
	prev := Level.Load()
	defer Level.Store(prev)
	Level.Store(Warn)
	l.I.Ln("hidden")
	require.Zero(t, buf.Len())
	l.W.F("shown %d", 7)
	require.True(t, strings.Contains(buf.String(), "shown 7"))
	require.True(t, strings.Contains(buf.String(), "log_test.go"))
	buf.Reset()
	require.False(t, c.E(nil))
	require.True(t, c.D(errors.New("quiet")))
	require.Zero(t, buf.Len())
	err := e.E("failed %s", "here")
	require.EqualError(t, err, "failed here")
	require.True(t, strings.Contains(buf.String(), "failed here"))
}

func TestNullPrinter(t *testing.T) {
	p := GetNullPrinter()
	require.True(t, p.Chk(errors.New("x")))
	require.False(t, p.Chk(nil))
	require.EqualError(t, p.Err("a %d", 1), "a 1")
}
