package server

import (
	"fmt"
	"testing"

	"github.com/lojhan/chainkv/internal/command"
	"github.com/lojhan/chainkv/internal/resp"
	"github.com/lojhan/chainkv/internal/store"
)

func bulkCommand(args ...string) string {
	raw := fmt.Sprintf("*%d\r\n", len(args))
	for _, arg := range args {
		raw += fmt.Sprintf("$%d\r\n%s\r\n", len(arg), arg)
	}
	return raw
}

func TestHelloScenarioOverRESP(t *testing.T) {
	dataStore := store.NewStore()
	startServer(t, "16385", func(s *Server) {
		s.RegisterCommand("SET", command.SetCommand(dataStore))
		s.RegisterCommand("GET", command.GetCommand(dataStore))
		s.RegisterCommand("DEL", command.DelCommand(dataStore))
		s.RegisterCommand("DBSIZE", command.DBSizeCommand(dataStore))
	})
	c := dial(t, "16385")

	keys := []string{"hello"}
	for i := 2; i <= 20; i++ {
		keys = append(keys, fmt.Sprintf("hello%d", i))
	}
	for i, key := range keys {
		c.send(t, bulkCommand("SET", key, fmt.Sprint((i+1)*2)))
		if r := c.read(t); r.Str != "OK" {
			t.Fatalf("SET %s: got %+v", key, r)
		}
	}
	if dataStore.Capacity() != 32 {
		t.Errorf("Expected capacity 32, got %d", dataStore.Capacity())
	}

	deletes := map[string]int64{"hello1": 0, "hello2": 1, "hello3": 1, "hello4": 1, "hello5": 1, "hello10": 1}
	for key, want := range deletes {
		c.send(t, bulkCommand("DEL", key))
		if r := c.read(t); r.Type != resp.Integer || r.Int != want {
			t.Errorf("DEL %s: expected %d, got %+v", key, want, r)
		}
	}

	c.send(t, bulkCommand("DBSIZE"))
	if r := c.read(t); r.Int != 15 {
		t.Errorf("Expected DBSIZE 15, got %+v", r)
	}

	gets := map[string]string{"hello": "2", "hello6": "12", "hello9": "18", "hello20": "40"}
	for key, want := range gets {
		c.send(t, bulkCommand("GET", key))
		if r := c.read(t); r.Type != resp.BulkString || r.Str != want {
			t.Errorf("GET %s: expected %s, got %+v", key, want, r)
		}
	}
	for _, key := range []string{"hello2", "hello10"} {
		c.send(t, bulkCommand("GET", key))
		if r := c.read(t); !r.Null {
			t.Errorf("GET %s: expected nil, got %+v", key, r)
		}
	}
}
