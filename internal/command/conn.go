/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/command/conn.go
*/

package command

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/akashmaji946/kvredis/internal/resp"
)

// ping handles PING [message]. With no argument it replies PONG; with one
// argument it echoes it back unchanged, whatever its frame type.
func ping(state *State, args []resp.Frame) resp.Frame {
	switch len(args) {
	case 0:
		return resp.NewSimpleString("PONG")
	case 1:
		return args[0]
	default:
		return wrongArity("ping")
	}
}

// echo handles ECHO message, returning the argument frame unchanged
// regardless of its type.
func echo(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 1 {
		return wrongArity("echo")
	}
	return args[0]
}

// commandCmd handles COMMAND, a minimal stub accepted with any arity.
func commandCmd(state *State, args []resp.Frame) resp.Frame {
	return resp.NewArray(nil)
}

// info handles INFO: a human-readable status block covering the sections
// that make sense for a scalar-only, persistence-free store.
func info(state *State, args []resp.Frame) resp.Frame {
	uptime := int64(time.Since(state.StartedAt).Seconds())

	var totalMem uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMem = vm.Total
	}

	keyCount := len(state.Store.KeysAll())

	text := fmt.Sprintf(
		"# Server\r\nkvredis_version:1.0.0\r\nuptime_in_seconds:%d\r\n"+
			"# Keyspace\r\ndb0:keys=%d\r\n"+
			"# Memory\r\ntotal_system_memory:%d\r\n",
		uptime, keyCount, totalMem,
	)
	return resp.NewBulkString([]byte(text))
}
