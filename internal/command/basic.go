package command

import (
	"fmt"
	"strings"

	"github.com/lojhan/chainkv/internal/resp"
	"github.com/lojhan/chainkv/internal/store"
)

func PingCommand(args []resp.Value) resp.Value {
	if len(args) == 0 {
		return resp.PongValue()
	}

	if len(args) > 1 {
		return resp.ErrorValue("ERR wrong number of arguments for 'ping' command")
	}

	if args[0].Type != resp.BulkString {
		return resp.ErrorValue("ERR invalid argument type")
	}

	return args[0]
}

func EchoCommand(args []resp.Value) resp.Value {
	if len(args) != 1 {
		return resp.ErrorValue("ERR wrong number of arguments for 'echo' command")
	}

	if args[0].Type != resp.BulkString {
		return resp.ErrorValue("ERR invalid argument type")
	}

	return args[0]
}

// CommandCommand answers the COMMAND probe clients send on connect.
func CommandCommand(args []resp.Value) resp.Value {
	return resp.ArrayValue()
}

func InfoCommand(s *store.Store) func([]resp.Value) resp.Value {
	return func(args []resp.Value) resp.Value {
		section := "all"
		if len(args) > 0 {
			if args[0].Type != resp.BulkString {
				return resp.ErrorValue("ERR invalid argument type")
			}
			section = strings.ToLower(args[0].Str)
		}

		var sb strings.Builder
		if section == "all" || section == "server" {
			sb.WriteString("# Server\r\n")
			sb.WriteString("chainkv_version:1.0.0\r\n")
			sb.WriteString("os:Go\r\n")
		}
		if section == "all" || section == "table" {
			sb.WriteString("# Table\r\n")
			fmt.Fprintf(&sb, "entries:%d\r\n", s.Len())
			fmt.Fprintf(&sb, "capacity:%d\r\n", s.Capacity())
			fmt.Fprintf(&sb, "load_factor:%.4f\r\n", s.LoadFactor())
			fmt.Fprintf(&sb, "on_duplicate:%s\r\n", s.DuplicatePolicy())
		}
		if section == "all" || section == "stats" {
			stats := s.Stats()
			sb.WriteString("# Stats\r\n")
			fmt.Fprintf(&sb, "keyspace_hits:%d\r\n", stats.Hits)
			fmt.Fprintf(&sb, "keyspace_misses:%d\r\n", stats.Misses)
			fmt.Fprintf(&sb, "total_inserts:%d\r\n", stats.Inserts)
			fmt.Fprintf(&sb, "total_deletes:%d\r\n", stats.Deletes)
		}

		return resp.BulkStringValue(sb.String())
	}
}
