package command

import (
	"strings"
	"testing"

	"github.com/lojhan/chainkv/internal/resp"
	"github.com/lojhan/chainkv/internal/store"
)

func TestPingCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []resp.Value
		expected resp.Value
	}{
		{
			name:     "PING without argument",
			args:     []resp.Value{},
			expected: resp.PongValue(),
		},
		{
			name: "PING with message",
			args: []resp.Value{
				resp.BulkStringValue("hello"),
			},
			expected: resp.BulkStringValue("hello"),
		},
		{
			name: "PING with multiple arguments (error)",
			args: []resp.Value{
				resp.BulkStringValue("hello"),
				resp.BulkStringValue("world"),
			},
			expected: resp.ErrorValue("ERR wrong number of arguments for 'ping' command"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValue(t, PingCommand(tt.args), tt.expected)
		})
	}
}

func TestEchoCommand(t *testing.T) {
	assertValue(t, EchoCommand([]resp.Value{resp.BulkStringValue("hello world")}), resp.BulkStringValue("hello world"))
	assertValue(t, EchoCommand(nil), resp.ErrorValue("ERR wrong number of arguments for 'echo' command"))
	assertValue(t, EchoCommand([]resp.Value{resp.IntegerValue(1)}), resp.ErrorValue("ERR invalid argument type"))
}

func TestCommandCommand(t *testing.T) {
	result := CommandCommand(nil)
	if result.Type != resp.Array || len(result.Array) != 0 {
		t.Errorf("Expected empty array, got %+v", result)
	}
}

func TestInfoCommand(t *testing.T) {
	s := store.NewStore()
	s.Set("a", "1")
	s.Get("a")
	s.Get("b")

	info := InfoCommand(s)
	result := info(nil)
	if result.Type != resp.BulkString {
		t.Fatalf("Expected bulk string, got %+v", result)
	}

	for _, want := range []string{
		"# Server", "# Table", "# Stats",
		"entries:1\r\n", "capacity:16\r\n", "load_factor:0.0625\r\n", "on_duplicate:append\r\n",
		"keyspace_hits:1\r\n", "keyspace_misses:1\r\n", "total_inserts:1\r\n",
	} {
		if !strings.Contains(result.Str, want) {
			t.Errorf("INFO output missing %q:\n%s", want, result.Str)
		}
	}

	result = info([]resp.Value{resp.BulkStringValue("TABLE")})
	if strings.Contains(result.Str, "# Stats") || !strings.Contains(result.Str, "# Table") {
		t.Errorf("INFO table returned wrong sections:\n%s", result.Str)
	}
}

func assertValue(t *testing.T, got, want resp.Value) {
	t.Helper()

	if got.Type != want.Type || got.Null != want.Null {
		t.Fatalf("Expected %+v, got %+v", want, got)
	}

	switch got.Type {
	case resp.SimpleString, resp.Error, resp.BulkString:
		if got.Str != want.Str {
			t.Errorf("Expected %q, got %q", want.Str, got.Str)
		}
	case resp.Integer:
		if got.Int != want.Int {
			t.Errorf("Expected %d, got %d", want.Int, got.Int)
		}
	case resp.Array:
		if len(got.Array) != len(want.Array) {
			t.Fatalf("Expected %d elements, got %d", len(want.Array), len(got.Array))
		}
		for i := range got.Array {
			assertValue(t, got.Array[i], want.Array[i])
		}
	}
}
