package command

import (
	"github.com/lojhan/chainkv/internal/resp"
	"github.com/lojhan/chainkv/internal/store"
)

func SetCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		if len(args) != 2 {
			return resp.ErrorValue("ERR wrong number of arguments for 'set' command")
		}

		if args[0].Type != resp.BulkString || args[1].Type != resp.BulkString {
			return resp.ErrorValue("ERR invalid argument type")
		}

		s.Set(args[0].Str, args[1].Str)
		return resp.OKValue()
	}
}

func GetCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		if len(args) != 1 {
			return resp.ErrorValue("ERR wrong number of arguments for 'get' command")
		}

		if args[0].Type != resp.BulkString {
			return resp.ErrorValue("ERR invalid argument type")
		}

		value, ok := s.Get(args[0].Str)
		if !ok {
			return resp.NullBulkStringValue()
		}
		return resp.BulkStringValue(value)
	}
}

func DelCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		keys, errValue, ok := bulkStrings("del", args)
		if !ok {
			return errValue
		}
		return resp.IntegerValue(int64(s.Delete(keys...)))
	}
}

func ExistsCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		keys, errValue, ok := bulkStrings("exists", args)
		if !ok {
			return errValue
		}
		return resp.IntegerValue(int64(s.Exists(keys...)))
	}
}

func bulkStrings(name string, args []resp.Value) ([]string, resp.Value, bool) {
	if len(args) == 0 {
		return nil, resp.ErrorValue("ERR wrong number of arguments for '" + name + "' command"), false
	}

	keys := make([]string, len(args))
	for i, arg := range args {
		if arg.Type != resp.BulkString {
			return nil, resp.ErrorValue("ERR invalid argument type"), false
		}
		keys[i] = arg.Str
	}
	return keys, resp.Value{}, true
}
