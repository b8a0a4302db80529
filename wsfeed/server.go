// Package wsfeed exposes a gesture engine over WebSocket: clients send JSON
// pointer frames in and receive every recognized gesture out.
//
// Inbound text frames:
//
//	{"kind":"start","target":"card-1","points":[{"x":10,"y":20}]}
//
// Outbound text frames use an envelope {type, ts, data}; gesture events have
// type "gesture" and the event fields in data.
package wsfeed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/gesture"
)

// Server wires the hub, the HTTP upgrade handler and the event forwarder.
type Server struct {
	logger *slog.Logger
	hub    *Hub
	frames FrameHandler

	upgrader websocket.Upgrader
}

// ServerConfig configures a Server.
type ServerConfig struct {
	Hub HubConfig
	// CheckOrigin overrides the upgrader's origin check. Nil allows all
	// origins.
	CheckOrigin func(r *http.Request) bool
}

// NewServer constructs the server components. Call Register on a mux and
// start Hub().Run(ctx) and Forward(ctx, stream).
func NewServer(logger *slog.Logger, frames FrameHandler, cfg ServerConfig) *Server {
	check := cfg.CheckOrigin
	if check == nil {
		check = func(r *http.Request) bool { return true }
	}
	return &Server{
		logger:   logger,
		hub:      NewHub(logger, cfg.Hub),
		frames:   frames,
		upgrader: websocket.Upgrader{CheckOrigin: check},
	}
}

// Hub returns the server's hub.
func (s *Server) Hub() *Hub { return s.hub }

// Register registers the WS handler on the provided mux.
func (s *Server) Register(mux *http.ServeMux, path string) {
	if mux == nil {
		return
	}
	mux.HandleFunc(path, s.handleWS)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("feed upgrade failed", "error", err)
		return
	}

	client := NewClient(s.hub, conn, r.RemoteAddr, s.logger, s.frames)
	s.hub.register <- client

	// The client loops outlive the request context; the hub and the read/write
	// errors end them.
	go client.writeLoop(context.Background())
	go client.readLoop(context.Background())
}

// Forward reads the engine's event stream and broadcasts every event until
// ctx ends or the stream closes.
func (s *Server) Forward(ctx context.Context, stream *gesture.Stream) error {
	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, gesture.ErrStreamClosed) {
				return nil
			}
			return err
		}
		msg, err := EncodeEvent(ev)
		if err != nil {
			s.logger.Warn("feed event dropped", "zone", ev.ZoneID, "error", err)
			continue
		}
		s.hub.Publish(msg)
	}
}

// LoopFrames returns a FrameHandler that submits frames to loop.
func LoopFrames(loop *gesture.Loop) FrameHandler {
	return func(ctx context.Context, f Frame) error {
		return loop.Do(ctx, func(e *gesture.Engine) {
			e.SubmitPointerFrame(f.Kind, f.Target, f.Points, f)
		})
	}
}
