package statfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	drepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a StatStream backed by the provider's WebSocket feed.
type Client struct {
	apiKey         string
	websocketURL   string
	sports         []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new StatStream over the provider WebSocket.
func New(apiKey, websocketURL string, sports []string, reconnectDelay, pingInterval time.Duration) drepo.StatStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		sports:         sports,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("statfeed connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("statfeed: connected")
	return nil
}

// Subscribe subscribes to configured sports channels.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("statfeed not connected")
	}
	for _, s := range c.sports {
		msg := map[string]string{"type": "subscribe", "sport": s}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
		log.Printf("statfeed: subscribed %s", s)
	}
	return nil
}

type feedLine struct {
	Sport      string  `json:"sport"`
	GameID     string  `json:"game_id"`
	PlayerID   string  `json:"player_id"`
	Stat       string  `json:"stat"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Opponent   string  `json:"opponent"`
	Team       string  `json:"team"`
	Home       bool    `json:"home"`
	BackToBack bool    `json:"back_to_back"`
	RestDays   int     `json:"rest_days"`
	OppDefRank int     `json:"opp_def_rank"`
	Value      float64 `json:"value"`
}

type feedMessage struct {
	Type string     `json:"type"`
	Data []feedLine `json:"data"`
}

// Read streams GameEvent records and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.GameEvent, <-chan error) {
	events := make(chan *models.GameEvent, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(events)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("statfeed conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("statfeed read: %w", err)
					return
				}
				var m feedMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-stat frames
					continue
				}
				if m.Type != "stat_line" {
					continue
				}
				for _, d := range m.Data {
					date, err := time.Parse("2006-01-02", d.Date)
					if err != nil {
						continue
					}
					ev := &models.GameEvent{
						Sport:               d.Sport,
						GameID:              d.GameID,
						PlayerID:            d.PlayerID,
						Stat:                d.Stat,
						Date:                date,
						Opponent:            d.Opponent,
						Team:                d.Team,
						IsHome:              d.Home,
						IsBackToBack:        d.BackToBack,
						RestDays:            d.RestDays,
						OpponentDefenseRank: d.OppDefRank,
						Value:               d.Value,
					}
					select {
					case events <- ev:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return events, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
