package command

import (
	"math"
	"strconv"

	"github.com/lojhan/chainkv/internal/hashtable"
	"github.com/lojhan/chainkv/internal/resp"
	"github.com/lojhan/chainkv/internal/store"
)

func DBSizeCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return resp.ErrorValue("ERR wrong number of arguments for 'dbsize' command")
		}
		return resp.IntegerValue(int64(s.Len()))
	}
}

func KeysCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		if len(args) > 1 {
			return resp.ErrorValue("ERR wrong number of arguments for 'keys' command")
		}

		pattern := ""
		if len(args) == 1 {
			if args[0].Type != resp.BulkString {
				return resp.ErrorValue("ERR invalid argument type")
			}
			if args[0].Str != "*" {
				pattern = args[0].Str
			}
		}

		keys, err := s.Keys(pattern)
		if err != nil {
			return resp.ErrorValue("ERR invalid pattern")
		}

		values := make([]resp.Value, len(keys))
		for i, key := range keys {
			values[i] = resp.BulkStringValue(key)
		}
		return resp.ArrayValue(values...)
	}
}

// HashSlotCommand reports the bucket index of a key, either at the live
// table capacity or at an explicit one.
func HashSlotCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		if len(args) < 1 || len(args) > 2 {
			return resp.ErrorValue("ERR wrong number of arguments for 'hashslot' command")
		}

		for _, arg := range args {
			if arg.Type != resp.BulkString {
				return resp.ErrorValue("ERR invalid argument type")
			}
		}

		key := args[0].Str
		if len(args) == 1 {
			return resp.IntegerValue(int64(s.HashIndex(key)))
		}

		capacity, err := strconv.ParseInt(args[1].Str, 10, 64)
		if err != nil || capacity <= 0 || capacity > math.MaxUint32 {
			return resp.ErrorValue("ERR capacity is not a positive integer or out of range")
		}
		return resp.IntegerValue(int64(hashtable.Hash(key, int(capacity))))
	}
}
