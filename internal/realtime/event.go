package realtime

import (
	"encoding/json"
	"fmt"
)

// Event types carried over the websocket.
const (
	EventEnteredChat = "enteredChat"
	EventExitedChat  = "exitedChat"
	EventChatMessage = "chatMessage"
)

// Event is the JSON frame exchanged with clients. Clients send only
// chatMessage events; Email is filled in by the server.
type Event struct {
	Type    string `json:"type"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

func enteredChat(email string) Event {
	return Event{Type: EventEnteredChat, Message: fmt.Sprintf("%s has entered the chat", email)}
}

func exitedChat(email string) Event {
	return Event{Type: EventExitedChat, Message: fmt.Sprintf("%s has left the chat.", email)}
}

func chatMessage(email, text string) Event {
	return Event{Type: EventChatMessage, Email: email, Message: text}
}

func (e Event) encode() []byte {
	b, _ := json.Marshal(e) // plain strings only, cannot fail
	return b
}
