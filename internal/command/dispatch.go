/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/command/dispatch.go
*/

// Package command implements the request dispatcher: it turns a parsed
// resp.Frame into a reply resp.Frame by routing to the handler named by the
// frame's first element.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/akashmaji946/kvredis/internal/resp"
	"github.com/akashmaji946/kvredis/internal/store"
)

// State is everything a handler needs beyond its arguments.
type State struct {
	Store     *store.Store
	StartedAt time.Time
}

// Handler executes one command against state, given the raw argument
// frames (the frame elements after the command name, untouched). Handlers
// decide for themselves which arguments must be BulkString, per their own
// typing rules. A Handler never returns a Go error - failures are
// reported as an Error frame, the reply itself.
type Handler func(state *State, args []resp.Frame) resp.Frame

// table is the command name (uppercased) to Handler mapping.
var table = map[string]Handler{
	"PING":    ping,
	"ECHO":    echo,
	"COMMAND": commandCmd,
	"INFO":    info,

	"SET":    set,
	"GET":    get,
	"GETSET": getset,
	"MSET":   mset,
	"MGET":   mget,
	"STRLEN": strlen,
	"APPEND": appendCmd,
	"INCR":   incr,
	"DECR":   decr,

	"DEL":    del,
	"EXISTS": exists,
	"EXPIRE": expire,
	"TTL":    ttl,
	"KEYS":   keys,
}

// Dispatch applies the top-level request rules: it must be an Array, must
// be non-empty, and its first element names a known command.
func Dispatch(state *State, frame resp.Frame) resp.Frame {
	if frame.Type != resp.Array {
		return resp.NewError("ERR command must be an array")
	}
	if len(frame.Items) == 0 {
		return resp.NewError("ERR empty command")
	}

	name, err := commandName(frame.Items[0])
	if err != nil {
		return resp.NewError(err.Error())
	}

	upper := strings.ToUpper(name)
	handler, ok := table[upper]
	if !ok {
		return resp.NewError(fmt.Sprintf("ERR unknown command '%s'", upper))
	}

	return handler(state, frame.Items[1:])
}

func commandName(f resp.Frame) (string, error) {
	switch f.Type {
	case resp.BulkString:
		return string(f.Bulk), nil
	case resp.SimpleString:
		return f.Str, nil
	default:
		return "", fmt.Errorf("ERR invalid command format")
	}
}

// bulk returns f's payload and true if f is a BulkString, the rule for
// arguments that must name a key or carry a value.
func bulk(f resp.Frame) ([]byte, bool) {
	if f.Type != resp.BulkString {
		return nil, false
	}
	return f.Bulk, true
}

func wrongArity(name string) resp.Frame {
	return resp.NewError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(name)))
}
