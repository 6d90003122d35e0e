/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/command/string.go
*/

package command

import "github.com/akashmaji946/kvredis/internal/resp"

// get handles GET key. Returns BulkString or Null.
func get(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 1 {
		return wrongArity("get")
	}
	key, ok := bulk(args[0])
	if !ok {
		return resp.NewError("ERR invalid command format")
	}
	data, found := state.Store.Get(key)
	if !found {
		return resp.NewNull()
	}
	return resp.NewBulkString(data)
}

// set handles SET key value. Preserves any existing, still-live expiry.
func set(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 2 {
		return wrongArity("set")
	}
	key, ok1 := bulk(args[0])
	value, ok2 := bulk(args[1])
	if !ok1 || !ok2 {
		return resp.NewError("ERR invalid command format")
	}
	state.Store.Set(key, value)
	return resp.NewSimpleString("OK")
}

// getset handles GETSET key value: atomically replaces the value, clearing
// expiry, and returns the previous value or Null.
func getset(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 2 {
		return wrongArity("getset")
	}
	key, ok1 := bulk(args[0])
	value, ok2 := bulk(args[1])
	if !ok1 || !ok2 {
		return resp.NewError("ERR invalid command format")
	}
	prev, existed := state.Store.GetSet(key, value)
	if !existed {
		return resp.NewNull()
	}
	return resp.NewBulkString(prev)
}

// mset handles MSET key value [key value ...]: arity must be the command
// name plus an even, positive number of key/value arguments.
func mset(state *State, args []resp.Frame) resp.Frame {
	if len(args) == 0 || len(args)%2 != 0 {
		return wrongArity("mset")
	}
	pairs := make([][2][]byte, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok1 := bulk(args[i])
		value, ok2 := bulk(args[i+1])
		if !ok1 || !ok2 {
			return resp.NewError("ERR invalid command format")
		}
		pairs = append(pairs, [2][]byte{key, value})
	}
	state.Store.MSet(pairs)
	return resp.NewSimpleString("OK")
}

// mget handles MGET key [key ...]: one reply per argument, in order. A
// non-BulkString argument replies Null for that position rather than
// failing the whole command.
func mget(state *State, args []resp.Frame) resp.Frame {
	if len(args) == 0 {
		return wrongArity("mget")
	}
	keys := make([][]byte, len(args))
	valid := make([]bool, len(args))
	for i, a := range args {
		if key, ok := bulk(a); ok {
			keys[i] = key
			valid[i] = true
		}
	}
	values, present := state.Store.MGet(keys)

	items := make([]resp.Frame, len(args))
	for i := range args {
		if valid[i] && present[i] {
			items[i] = resp.NewBulkString(values[i])
		} else {
			items[i] = resp.NewNull()
		}
	}
	return resp.NewArray(items)
}

// strlen handles STRLEN key.
func strlen(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 1 {
		return wrongArity("strlen")
	}
	key, ok := bulk(args[0])
	if !ok {
		return resp.NewError("ERR invalid command format")
	}
	return resp.NewInteger(state.Store.Strlen(key))
}

// appendCmd handles APPEND key value, named to avoid colliding with the
// builtin append. An absent or expired key is treated as empty.
func appendCmd(state *State, args []resp.Frame) resp.Frame {
	if len(args) != 2 {
		return wrongArity("append")
	}
	key, ok1 := bulk(args[0])
	value, ok2 := bulk(args[1])
	if !ok1 || !ok2 {
		return resp.NewError("ERR invalid command format")
	}
	return resp.NewInteger(state.Store.Append(key, value))
}

// incr handles INCR key: saturating +1.
func incr(state *State, args []resp.Frame) resp.Frame {
	return incrByN(state, args, "incr", 1)
}

// decr handles DECR key: saturating -1.
func decr(state *State, args []resp.Frame) resp.Frame {
	return incrByN(state, args, "decr", -1)
}

func incrByN(state *State, args []resp.Frame, name string, delta int64) resp.Frame {
	if len(args) != 1 {
		return wrongArity(name)
	}
	key, ok := bulk(args[0])
	if !ok {
		return resp.NewError("ERR invalid command format")
	}
	n, err := state.Store.IncrBy(key, delta)
	if err != nil {
		return resp.NewError("ERR " + err.Error())
	}
	return resp.NewInteger(n)
}
