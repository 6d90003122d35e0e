/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/server/server.go
*/

// Package server owns the TCP listener and the per-connection
// parse/dispatch/serialize loop.
package server

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/akashmaji946/kvredis/internal/command"
	"github.com/akashmaji946/kvredis/internal/logging"
	"github.com/akashmaji946/kvredis/internal/resp"
	"github.com/akashmaji946/kvredis/internal/store"
)

// Server accepts connections on a single TCP listener and serves them
// against one shared Store. Every accepted connection runs its own
// goroutine; the store's internal locking is the only synchronization
// between them.
type Server struct {
	addr string
	log  *logging.Logger
	db   *store.Store

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup

	startedAt time.Time
}

// New builds a Server bound to addr, backed by a fresh empty Store.
func New(addr string, log *logging.Logger) *Server {
	return &Server{
		addr:  addr,
		log:   log,
		db:    store.New(),
		conns: make(map[net.Conn]struct{}),
	}
}

// Run listens on the server's address and accepts connections until the
// listener is closed (by Shutdown). Any other Accept error is logged and
// the loop keeps accepting. It blocks until every in-flight connection has
// finished.
func (s *Server) Run() error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = l
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.log.Info("listening on %s", s.addr)

	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.Info("listener closed, no longer accepting connections")
				break
			}
			s.log.Warn("accept error: %v", err)
			continue
		}

		s.trackConn(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrackConn(conn)
			s.handleConnection(conn)
		}()
	}

	s.wg.Wait()
	return nil
}

// Shutdown stops accepting new connections and closes every connection
// currently in flight, then waits for their goroutines to exit.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) trackConn(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrackConn(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// handleConnection owns conn for its entire lifetime: parse one request
// frame, dispatch it, write the reply, repeat. A clean EOF or a framing
// error both end the loop; the connection is always closed on return.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	s.log.Info("accepted connection from %s", conn.RemoteAddr())

	reader := resp.NewReader(conn)
	writer := resp.NewWriter(conn)
	state := &command.State{Store: s.db, StartedAt: s.startedAt}

	for {
		frame, err := reader.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Info("connection closed by %s", conn.RemoteAddr())
				return
			}
			s.log.Warn("protocol error from %s: %v", conn.RemoteAddr(), err)
			return
		}

		reply := command.Dispatch(state, frame)

		if err := writer.WriteFrame(reply); err != nil {
			s.log.Warn("write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
		if err := writer.Flush(); err != nil {
			s.log.Warn("flush error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
