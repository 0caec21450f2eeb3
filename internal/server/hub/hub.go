// Package hub pushes room views to websocket subscribers.
package hub

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"dropchess/internal/server/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// room tracks the subscribers of one room and the newest view sent to them.
type room struct {
	subs map[*client]struct{}
	seq  uint64
	last []byte
}

type Hub struct {
	games    *game.Manager
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
}

// New creates a hub that broadcasts every change made through games.
func New(games *game.Manager) *Hub {
	h := &Hub{
		games: games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The local server is opened from file:// and other ports too.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		rooms: make(map[string]*room),
	}
	games.OnChange(h.Broadcast)
	return h
}

// ServeWS subscribes the caller to ?game_id= and blocks until it goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("game_id")
	if _, err := h.games.Get(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	if err := h.subscribe(id, c); err != nil {
		log.Printf("ws subscribe %s: %v", id, err)
		conn.Close()
		return
	}
	log.Printf("ws subscribed to room %s", id)

	go c.writePump()
	c.readPump()

	h.unsubscribe(id, c)
	log.Printf("ws unsubscribed from room %s", id)
}

func (h *Hub) roomLocked(id string) *room {
	rm, ok := h.rooms[id]
	if !ok {
		rm = &room{subs: make(map[*client]struct{})}
		h.rooms[id] = rm
	}
	return rm
}

// subscribe registers c and queues the newest known view as its first
// message.
func (h *Hub) subscribe(id string, c *client) error {
	v, err := h.games.View(id)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	rm := h.roomLocked(id)
	if rm.last != nil && rm.seq > v.Seq {
		msg = rm.last
	}
	rm.subs[c] = struct{}{}
	c.send <- msg
	return nil
}

func (h *Hub) unsubscribe(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(id, c)
}

func (h *Hub) dropLocked(id string, c *client) {
	rm, ok := h.rooms[id]
	if !ok {
		return
	}
	if _, ok := rm.subs[c]; !ok {
		return
	}
	delete(rm.subs, c)
	close(c.send)
}

// Broadcast sends v to every subscriber of its room. A view older than one
// already sent is ignored. Clients whose buffer is full are dropped.
func (h *Hub) Broadcast(v game.View) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("ws broadcast %s: %v", v.GameID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	rm := h.roomLocked(v.GameID)
	if rm.last != nil && v.Seq <= rm.seq {
		return
	}
	rm.seq, rm.last = v.Seq, msg
	for c := range rm.subs {
		select {
		case c.send <- msg:
		default:
			log.Printf("ws client too slow in room %s, dropping", v.GameID)
			h.dropLocked(v.GameID, c)
		}
	}
}

// Subscribers returns the number of live connections watching id.
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if rm, ok := h.rooms[id]; ok {
		return len(rm.subs)
	}
	return 0
}

// readPump discards client messages and returns once the connection closes.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					log.Printf("ws write: %v", err)
				}
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
