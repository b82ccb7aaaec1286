package websocket

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/logging"
	"github.com/fortuna/augur/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server represents the WebSocket server. Completed analyses arrive over the
// Redis stream and fan out to every connected subscriber.
type Server struct {
	port      string
	server    *http.Server
	hub       *Hub
	publisher *publisher.RedisPublisher
	cancel    context.CancelFunc
}

// NewServer creates a new WebSocket server. pub may be nil, in which case
// only direct broadcasts reach clients.
func NewServer(pub *publisher.RedisPublisher) *Server {
	return &Server{
		hub:       NewHub(),
		publisher: pub,
	}
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	go s.hub.Run()

	if s.publisher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.consumeStream(ctx)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/analyses", s.handleAnalyses)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	logging.Get().WithField("port", port).Info("WebSocket server listening")
	return s.server.ListenAndServe()
}

// consumeStream tails the analysis stream and broadcasts each entry. Only
// entries published after startup are delivered.
func (s *Server) consumeStream(ctx context.Context) {
	log := logging.Get()
	lastID := "$"

	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := s.publisher.Client().XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.AnalysisStream, lastID},
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.WithFields(logrus.Fields{
				"component": "websocket",
				"error":     err.Error(),
			}).Warn("Analysis stream read failed")
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				lastID = message.ID
				if data, ok := message.Values["data"].(string); ok {
					s.hub.Broadcast([]byte(data))
				}
			}
		}
	}
}

// handleAnalyses handles WebSocket connections for the analysis feed
func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Get().WithFields(logrus.Fields{
			"component": "websocket",
			"error":     err.Error(),
		}).Warn("Failed to upgrade connection")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastAnalysis sends an analysis payload to all connected clients
func (s *Server) BroadcastAnalysis(data []byte) {
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	s.hub.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
