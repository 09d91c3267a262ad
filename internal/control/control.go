// Package control serves the local control socket. Requests are turned into
// hotkey events so that a trigger from the CLI follows exactly the same path
// as a key press.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"go.klb.dev/clipbridge/internal/hotkey"
	"go.klb.dev/clipbridge/internal/ipc"
	"go.klb.dev/clipbridge/internal/message"
	"go.klb.dev/clipbridge/internal/wire"
)

const (
	readTimeout    = 5 * time.Second
	requestTimeout = 5 * time.Second
)

// StatusFunc reports the daemon's current status.
type StatusFunc func() message.Status

// Server answers control requests.
type Server struct {
	events *hotkey.Queue
	status StatusFunc
	stop   func()
	log    *slog.Logger

	wg sync.WaitGroup
}

// NewServer returns a Server that feeds events and reports status. stop is
// called when a STOP request cannot be queued.
func NewServer(events *hotkey.Queue, status StatusFunc, stop func(), log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if stop == nil {
		stop = func() {}
	}
	return &Server{
		events: events,
		status: status,
		stop:   stop,
		log:    log.With("component", "control"),
	}
}

// Serve accepts connections on ln until ctx is done, then closes ln and
// waits for open connections to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	s.log.Debug("control socket listening", "addr", ln.Addr())
	defer s.wg.Wait()
	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(c)
		}()
	}
}

func (s *Server) handle(nc net.Conn) {
	c := wire.New(nc)
	defer c.Close()

	c.SetReadDeadline(readTimeout)
	req, err := c.ReadMsg()
	if err != nil {
		s.log.Debug("control read failed", "err", err)
		_ = c.WriteMsg(message.Errorf("bad request: %v", err))
		return
	}
	c.SetReadDeadline(0)

	resp := s.dispatch(req)
	if err := c.WriteMsg(resp); err != nil {
		s.log.Debug("control write failed", "err", err)
	}
}

func (s *Server) dispatch(req *message.Message) *message.Message {
	switch req.Type {
	case message.TypeTrigger:
		action, err := hotkey.ParseAction(req.Action)
		if err != nil {
			return message.Errorf("%v", err)
		}
		if !s.events.Push(hotkey.Event{Kind: hotkey.EventTrigger, Action: action}) {
			return message.Errorf("busy: trigger queue full")
		}
		s.log.Debug("trigger queued", "action", string(action))
		return message.Ack()

	case message.TypeStatus:
		st := message.Status{}
		if s.status != nil {
			st = s.status()
		}
		return &message.Message{Type: message.TypeStatusResponse, Status: &st}

	case message.TypeStop:
		s.log.Info("stop requested over control socket")
		if !s.events.Push(hotkey.Event{Kind: hotkey.EventQuit}) {
			s.stop()
		}
		return message.Ack()
	}
	return message.Errorf("unsupported request type %q", req.Type)
}

// Request sends req to the daemon at path and returns its response. A
// response of type ERROR is returned as an error.
func Request(path string, req *message.Message) (*message.Message, error) {
	nc, err := ipc.Dial(path)
	if err != nil {
		return nil, err
	}
	c := wire.New(nc)
	defer c.Close()

	resp, err := c.Exchange(req, requestTimeout)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}
