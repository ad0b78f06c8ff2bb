package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lab1702/duel-arena/game"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Message types
const (
	MsgTypeStart    = "start"
	MsgTypeAim      = "aim"
	MsgTypeMove     = "move"
	MsgTypeFire     = "fire"
	MsgTypeFireHold = "firehold"
	MsgTypeMenu     = "menu"
	MsgTypeUpdate   = "update"
	MsgTypeRoundEnd = "roundEnd"
	MsgTypeError    = "error"
)

// Connection timing
const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 256
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Config holds the server settings that are fixed for the process lifetime
type Config struct {
	SendEvery      int // Publish a snapshot every N physics frames
	Codec          Codec
	AllowedOrigins []string
	Profiles       game.ProfileTable
	Rules          Rules
	Seed           uint64 // 0 seeds each session from the clock
}

// DefaultConfig returns the stock server settings
func DefaultConfig() Config {
	return Config{
		SendEvery: 2,
		Codec:     JSONCodec{},
		Profiles:  game.DefaultProfiles.Clone(),
		Rules:     DefaultRules(),
	}
}

// Client is one websocket connection and the session it plays in
type Client struct {
	ID      string
	conn    *websocket.Conn
	send    chan ServerMessage
	done    chan struct{}
	server  *Server
	session *Session
	cancel  context.CancelFunc
	log     zerolog.Logger
	once    sync.Once
}

// Server manages client connections, each with its own session
type Server struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when the hub stops
	cfg        Config
	upgrader   websocket.Upgrader
	metrics    *Metrics
	gauge      metric.Registration // Active sessions callback, dropped when Run returns
	log        zerolog.Logger
	sessions   int // Sessions created so far, used to vary seeded sources
}

// NewServer creates a new game server
func NewServer(cfg Config, logger zerolog.Logger) (*Server, error) {
	if cfg.SendEvery < 1 {
		cfg.SendEvery = 1
	}
	if cfg.Codec == nil {
		cfg.Codec = JSONCodec{}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = game.DefaultProfiles.Clone()
	}
	if err := cfg.Profiles.Validate(); err != nil {
		return nil, fmt.Errorf("difficulty profiles: %w", err)
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("round rules: %w", err)
	}

	metrics, err := NewMetrics()
	if err != nil {
		return nil, err
	}

	s := &Server{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		cfg:        cfg,
		metrics:    metrics,
		log:        logger,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin:       s.isValidOrigin,
		EnableCompression: true, // Enable per-message deflate compression
	}
	if s.gauge, err = registerActiveSessions(s.SessionCount); err != nil {
		return nil, err
	}
	return s, nil
}

// isValidOrigin checks if the origin is allowed to connect
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.log.Warn().Str("origin", origin).Msg("Invalid origin URL")
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	host := originURL.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return true
	}

	if slices.Contains(s.cfg.AllowedOrigins, strings.TrimSuffix(origin, "/")) {
		return true
	}

	s.log.Warn().Str("origin", origin).Msg("Rejected WebSocket connection")
	return false
}

// Run handles client registration until ctx is done, then closes every client
func (s *Server) Run(ctx context.Context) {
	defer close(s.done)
	defer func() {
		if err := s.gauge.Unregister(); err != nil {
			s.log.Warn().Err(err).Msg("Unregistering sessions gauge")
		}
	}()
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			client.log.Info().Msg("Client connected")

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				client.close()
				client.log.Info().Msg("Client disconnected")
			}
			s.mu.Unlock()

		case <-ctx.Done():
			s.mu.Lock()
			for id, client := range s.clients {
				delete(s.clients, id)
				client.close()
			}
			s.mu.Unlock()
			s.log.Info().Msg("Hub stopped")
			return
		}
	}
}

// SessionCount returns the number of connected clients
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// newSession builds a session wired to this server's settings
func (s *Server) newSession(l Listener, logger zerolog.Logger) *Session {
	s.mu.Lock()
	s.sessions++
	n := s.sessions
	s.mu.Unlock()

	seed := uint64(0)
	if s.cfg.Seed != 0 {
		seed = s.cfg.Seed + uint64(n)
	}
	return NewSession(
		WithRand(game.NewRand(seed)),
		WithProfiles(s.cfg.Profiles),
		WithRules(s.cfg.Rules),
		WithLogger(logger),
		WithMetrics(s.metrics),
		WithListener(l),
	)
}

// HandleStats returns the number of connected sessions and running rounds
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	// Enable CORS for cross-origin requests
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	sessions := len(s.clients)
	active := 0
	for _, c := range s.clients {
		if c.session.Phase() == game.PhaseActive {
			active++
		}
	}
	s.mu.RUnlock()

	response := map[string]any{
		"sessions": sessions,
		"active":   active,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.log.Error().Err(err).Msg("Encoding stats")
	}
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		conn:   conn,
		send:   make(chan ServerMessage, sendBuffer),
		done:   make(chan struct{}),
		server: s,
	}
	client.log = s.log.With().Str("client", client.ID).Logger()
	client.session = s.newSession(client, client.log)

	ctx, cancel := context.WithCancel(context.Background())
	client.cancel = cancel

	select {
	case s.register <- client:
	case <-s.done:
		client.close()
		conn.Close()
		return
	}

	go client.session.Run(ctx)
	go client.writePump()
	go client.readPump()
}

// close stops the client's session and output; safe to call more than once
func (c *Client) close() {
	c.once.Do(func() {
		c.cancel()
		c.session.Close()
		close(c.done)
	})
}

// queue hands a message to the write pump without blocking the simulation
func (c *Client) queue(msg ServerMessage) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- msg:
	default:
		// Client send channel is full, skip this message
		c.log.Warn().Str("type", msg.Type).Msg("Send buffer full, dropping message")
	}
}

// sendError reports a rejected request to the client
func (c *Client) sendError(err error) {
	c.queue(ServerMessage{Type: MsgTypeError, Data: ErrorData{Message: err.Error()}})
}

// sendSnapshot queues the current session state
func (c *Client) sendSnapshot() {
	c.queue(ServerMessage{Type: MsgTypeUpdate, Data: c.session.Snapshot()})
}

// OnFrame publishes every SendEvery-th frame
func (c *Client) OnFrame(frame int64) {
	if frame%int64(c.server.cfg.SendEvery) != 0 {
		return
	}
	c.sendSnapshot()
}

// OnRoundEnd publishes the final state followed by the round summary. An
// abandoned round has already been reset, and the handler that abandoned it
// sends the new state itself.
func (c *Client) OnRoundEnd(summary Summary) {
	if summary.Reason != game.EndAbandoned {
		c.sendSnapshot()
	}
	c.queue(ServerMessage{Type: MsgTypeRoundEnd, Data: summary})
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}

		c.handleMessage(msg)
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	codec := c.server.cfg.Codec
	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			frameType, data, err := codec.Encode(message)
			if err != nil {
				c.log.Error().Err(err).Msg("Encoding message")
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(frameType, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
