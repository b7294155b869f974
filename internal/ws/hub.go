package ws

import (
	"encoding/json"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// Event types pushed to feed subscribers.
const (
	EventTaskCreated = "task_created"
	EventTaskUpdated = "task_updated"
	EventTaskDeleted = "task_deleted"
)

type Event struct {
	Type string       `json:"type"`
	Task *domain.Task `json:"task,omitempty"`
	ID   string       `json:"id,omitempty"`
}

// Hub fans task events out to all connected feed clients. Membership is
// serialized through the run loop, so no locking in clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			logger.Debug("feed client connected", "clients", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow client, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues an event for all subscribers. Never blocks the caller;
// if the hub is saturated the event is dropped.
func (h *Hub) Broadcast(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("feed event marshal failed", "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn("feed broadcast buffer full, event dropped", "type", ev.Type)
	}
}
