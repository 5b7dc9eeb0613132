package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventClient represents a client connected for achievement updates
type EventClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (ec *EventClient) SafeWriteJSON(v interface{}) error {
	ec.writeMu.Lock()
	defer ec.writeMu.Unlock()
	return ec.Conn.WriteJSON(v)
}

// Global hub for broadcasting achievement events to all connected clients
var (
	eventClients = make(map[*EventClient]bool)
	eventMutex   sync.RWMutex
)

// RegisterEventClient registers a client for achievement updates
func RegisterEventClient(client *EventClient) {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	eventClients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(eventClients))
}

// UnregisterEventClient removes a client from achievement updates
func UnregisterEventClient(client *EventClient) {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	delete(eventClients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(eventClients))
}

// Hub satisfies the services.EventSink interface.
type Hub struct{}

// AchievementEarned broadcasts an earned achievement to all connected clients.
func (Hub) AchievementEarned(userID, code string, at time.Time) {
	eventMutex.RLock()
	defer eventMutex.RUnlock()

	message := map[string]interface{}{
		"type":      "achievement_earned",
		"userId":    userID,
		"code":      code,
		"timestamp": at,
	}

	for client := range eventClients {
		if err := client.SafeWriteJSON(message); err != nil {
			log.Printf("Error broadcasting achievement event to client: %v", err)
			// Remove client if write fails
			go UnregisterEventClient(client)
		}
	}
}

// GetEventClientsCount returns the number of connected clients
func GetEventClientsCount() int {
	eventMutex.RLock()
	defer eventMutex.RUnlock()
	return len(eventClients)
}
