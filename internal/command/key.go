/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/command/key.go
*/

package command

import (
	"strconv"

	"github.com/akashmaji946/kvredis/internal/resp"
)

// del handles DEL key [key ...]. Non-BulkString arguments are silently
// skipped rather than rejected.
func del(state *State, args []resp.Frame) resp.Frame {
	if len(args) == 0 {
		return wrongArity("del")
	}
	keys := bulkKeys(args)
	return resp.NewInteger(int64(state.Store.Delete(keys...)))
}

// exists handles EXISTS key [key ...]. Duplicates count separately; a
// non-BulkString argument is silently skipped.
func exists(state *State, args []resp.Frame) resp.Frame {
	if len(args) == 0 {
		return wrongArity("exists")
	}
	keys := bulkKeys(args)
	return resp.NewInteger(int64(state.Store.Exists(keys...)))
}

// bulkKeys extracts the BulkString payloads from args, dropping any
// argument that is not a BulkString.
func bulkKeys(args []resp.Frame) [][]byte {
	keys := make([][]byte, 0, len(args))
	for _, a := range args {
		if key, ok := bulk(a); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// expire handles EXPIRE key seconds.
func expire(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 2 {
		return wrongArity("expire")
	}
	key, ok := bulk(args[0])
	if !ok {
		return resp.NewError("ERR invalid command format")
	}
	seconds, err := argInt(args[1])
	if err != nil {
		return resp.NewError("ERR value is not an integer or out of range")
	}
	return resp.NewInteger(int64(state.Store.Expire(key, seconds)))
}

// ttl handles TTL key.
func ttl(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 1 {
		return wrongArity("ttl")
	}
	key, ok := bulk(args[0])
	if !ok {
		return resp.NewError("ERR invalid command format")
	}
	return resp.NewInteger(state.Store.TTL(key))
}

// keys handles KEYS pattern. Only the literal pattern "*" is supported
// (spec's glob support is a non-goal); anything else is an Error.
func keys(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 1 {
		return wrongArity("keys")
	}
	pattern, ok := bulk(args[0])
	if !ok || string(pattern) != "*" {
		return resp.NewError("ERR unsupported KEYS pattern, only '*' is supported")
	}
	all := state.Store.KeysAll()
	items := make([]resp.Frame, len(all))
	for i, k := range all {
		items[i] = resp.NewBulkString(k)
	}
	return resp.NewArray(items)
}

// argInt parses a BulkString argument as a signed decimal integer.
func argInt(f resp.Frame) (int64, error) {
	raw, ok := bulk(f)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(string(raw), 10, 64)
}
