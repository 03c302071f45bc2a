package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/gnet/v2"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/lojhan/chainkv/internal/resp"
)

var ErrNotRunning = errors.New("server is not running")

type CommandHandler func(args []resp.Value) resp.Value

// Server speaks RESP over a gnet event loop. Handlers run on the loop
// goroutines, so anything they share must be safe for concurrent use.
type Server struct {
	gnet.BuiltinEventEngine

	logger    *zap.Logger
	multicore bool

	mu       sync.RWMutex
	handlers map[string]CommandHandler

	eng     gnet.Engine
	ready   chan struct{}
	started atomic.Bool

	clients  atomic.Int64
	commands atomic.Int64
}

func NewServer(logger *zap.Logger, multicore bool) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:    logger,
		multicore: multicore,
		handlers:  make(map[string]CommandHandler),
		ready:     make(chan struct{}),
	}
}

func (s *Server) RegisterCommand(name string, handler CommandHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[strings.ToUpper(name)] = handler
}

func (s *Server) GetHandler(name string) CommandHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers[strings.ToUpper(name)]
}

// Start serves addr until Stop is called. It blocks.
func (s *Server) Start(addr string) error {
	if !s.started.CAS(false, true) {
		return errors.New("server already started")
	}

	err := gnet.Run(s, "tcp://"+addr,
		gnet.WithMulticore(s.multicore),
		gnet.WithReusePort(true),
		gnet.WithTCPNoDelay(gnet.TCPNoDelay),
		gnet.WithLogger(s.logger.Sugar()),
	)
	if err != nil {
		return fmt.Errorf("failed to serve %s: %w", addr, err)
	}
	return nil
}

// Ready is closed once the engine is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

func (s *Server) Stop(ctx context.Context) error {
	select {
	case <-s.ready:
	default:
		return ErrNotRunning
	}
	return s.eng.Stop(ctx)
}

func (s *Server) ClientCount() int {
	return int(s.clients.Load())
}

func (s *Server) CommandCount() int64 {
	return s.commands.Load()
}

func (s *Server) OnBoot(eng gnet.Engine) gnet.Action {
	s.eng = eng
	close(s.ready)
	s.logger.Info("server listening", zap.Bool("multicore", s.multicore))
	return gnet.None
}

func (s *Server) OnShutdown(_ gnet.Engine) {
	s.logger.Info("server stopped", zap.Int64("commands", s.commands.Load()))
}

func (s *Server) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	s.clients.Inc()
	s.logger.Debug("client connected", zap.Stringer("remote", c.RemoteAddr()))
	return nil, gnet.None
}

func (s *Server) OnClose(c gnet.Conn, err error) gnet.Action {
	s.clients.Dec()
	if err != nil {
		s.logger.Debug("client disconnected", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
	} else {
		s.logger.Debug("client disconnected", zap.Stringer("remote", c.RemoteAddr()))
	}
	return gnet.None
}

// OnTraffic answers every complete frame in the inbound buffer and leaves a
// trailing partial frame for the next event.
func (s *Server) OnTraffic(c gnet.Conn) gnet.Action {
	buf, err := c.Peek(-1)
	if err != nil {
		s.logger.Warn("failed to read inbound buffer", zap.Error(err))
		return gnet.Close
	}

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	consumed := 0
	action := gnet.None
	for consumed < len(buf) {
		value, n, err := resp.Decode(buf[consumed:])
		if errors.Is(err, resp.ErrIncomplete) {
			break
		}
		if err != nil {
			s.logger.Warn("protocol error", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
			out.B, _ = resp.AppendValue(out.B, resp.ErrorValue("ERR protocol error"))
			consumed = len(buf)
			action = gnet.Close
			break
		}
		consumed += n

		if out.B, err = resp.AppendValue(out.B, s.processCommand(value)); err != nil {
			s.logger.Error("failed to encode reply", zap.Error(err))
			action = gnet.Close
			break
		}
	}

	if _, err := c.Discard(consumed); err != nil {
		s.logger.Warn("failed to discard inbound bytes", zap.Error(err))
		return gnet.Close
	}
	if out.Len() > 0 {
		if _, err := c.Write(out.B); err != nil {
			s.logger.Warn("failed to write reply", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
			return gnet.Close
		}
	}
	return action
}

func (s *Server) processCommand(value resp.Value) resp.Value {
	if value.Type != resp.Array {
		return resp.ErrorValue("ERR protocol error: expected array")
	}

	if len(value.Array) == 0 {
		return resp.ErrorValue("ERR empty command")
	}

	cmdValue := value.Array[0]
	if cmdValue.Type != resp.BulkString {
		return resp.ErrorValue("ERR protocol error: command must be bulk string")
	}

	handler := s.GetHandler(cmdValue.Str)
	if handler == nil {
		return resp.ErrorValue(fmt.Sprintf("ERR unknown command '%s'", strings.ToUpper(cmdValue.Str)))
	}

	s.commands.Inc()
	return handler(value.Array[1:])
}
