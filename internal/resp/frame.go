/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/resp/frame.go
*/

// Package resp implements the RESP-compatible wire protocol: a Frame value
// type plus a streaming Reader/Writer pair that parse and serialize it.
package resp

import "bytes"

// Type identifies which variant of Frame is populated. Mirrors the single
// byte prefix each variant carries on the wire.
type Type byte

const (
	SimpleString Type = '+'
	Error        Type = '-'
	Integer      Type = ':'
	BulkString   Type = '$'
	Array        Type = '*'
	Null         Type = 0 // no wire prefix of its own; always serialized as $-1
)

// EOD is the RESP line terminator.
const EOD = "\r\n"

// Frame is a parsed or to-be-serialized RESP value. Only the field(s)
// relevant to Type are populated; the rest are zero.
//
//   - SimpleString/Error: Str holds the text.
//   - Integer: Int holds the value.
//   - BulkString: Bulk holds the raw payload (may be empty; an empty
//     payload may be nil, and Equal treats nil and empty alike).
//   - Array: Items holds the ordered children (may be empty, non-nil if
//     parsed as an empty array).
//   - Null: no field populated; represents both absent-bulk and absent-array.
type Frame struct {
	Type  Type
	Str   string
	Int   int64
	Bulk  []byte
	Items []Frame
}

// NewSimpleString builds a SimpleString frame.
func NewSimpleString(s string) Frame { return Frame{Type: SimpleString, Str: s} }

// NewError builds an Error frame.
func NewError(msg string) Frame { return Frame{Type: Error, Str: msg} }

// NewInteger builds an Integer frame.
func NewInteger(i int64) Frame { return Frame{Type: Integer, Int: i} }

// NewBulkString builds a BulkString frame from raw bytes.
func NewBulkString(b []byte) Frame { return Frame{Type: BulkString, Bulk: b} }

// NewArray builds an Array frame from a slice of children (may be empty).
func NewArray(items []Frame) Frame {
	if items == nil {
		items = []Frame{}
	}
	return Frame{Type: Array, Items: items}
}

// NewNull builds the Null sentinel frame.
func NewNull() Frame { return Frame{Type: Null} }

// Equal reports whether two frames are structurally identical.
func (f Frame) Equal(other Frame) bool {
	if f.Type != other.Type {
		return false
	}
	switch f.Type {
	case SimpleString, Error:
		return f.Str == other.Str
	case Integer:
		return f.Int == other.Int
	case BulkString:
		return bytes.Equal(f.Bulk, other.Bulk)
	case Array:
		if len(f.Items) != len(other.Items) {
			return false
		}
		for i := range f.Items {
			if !f.Items[i].Equal(other.Items[i]) {
				return false
			}
		}
		return true
	case Null:
		return true
	default:
		return false
	}
}
