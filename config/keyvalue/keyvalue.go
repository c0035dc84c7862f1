// Package keyvalue converts a go-simpler.org/env tagged configuration struct
// into a sorted list of key/values, and renders them as a shell script that can
// be edited and sourced, or read back with the env package.
package keyvalue

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"
)

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a collection of key/value pairs.
type KVSlice []KV

func (kv KVSlice) Len() int           { return len(kv) }
func (kv KVSlice) Less(i, j int) bool { return kv[i].Key < kv[j].Key }
func (kv KVSlice) Swap(i, j int)      { kv[i], kv[j] = kv[j], kv[i] }

// EnvKV turns a struct (or pointer to struct) with `env` tags into key/value
// pairs. Fields without an env tag are skipped.
func EnvKV(cfg any) (m KVSlice) {
	v := reflect.ValueOf(cfg)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		k := t.Field(i).Tag.Get("env")
		if k == "" {
			continue
		}
		var val string
		switch f := v.Field(i).Interface().(type) {
		case string:
			val = f
		case int, int64, int32, uint64, uint32, bool, time.Duration:
			val = fmt.Sprint(f)
		case []string:
			val = strings.Join(f, ",")
		}
		m = append(m, KV{k, val})
	}
	return
}

// PrintEnv renders the key/values of a configuration to a provided io.Writer.
func PrintEnv(cfg any, printer io.Writer) {
	_, _ = fmt.Fprintln(printer, "#!/usr/bin/env bash")
	kvs := EnvKV(cfg)
	sort.Sort(kvs)
	for _, v := range kvs {
		if strings.ContainsAny(v.Value, " \t") {
			_, _ = fmt.Fprintf(printer, "export %s=%q\n", v.Key, v.Value)
			continue
		}
		_, _ = fmt.Fprintf(printer, "export %s=%s\n", v.Key, v.Value)
	}
}
