package domain

// Action websocket request action
type Action string

const (
	// CreateRoom websocket action create_room
	CreateRoom Action = "create_room"

	// EnterRoom websocket action enter_room (start room stream)
	EnterRoom Action = "enter_room"
	// LeaveRoom websocket action leave_room (cancel room stream)
	LeaveRoom Action = "leave_room"

	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// ReadMessage websocket action read_message
	ReadMessage Action = "read_message"

	// GetUnread websocket action get_unread (start unread stream)
	GetUnread Action = "get_unread"

	// NotifyMessage websocket action notify_message (server push)
	NotifyMessage Action = "notify_message"
	// NotifyRoom websocket action notify_room (room snapshot push)
	NotifyRoom Action = "notify_room"
	// NotifyUnread websocket action notify_unread (unread counts push)
	NotifyUnread Action = "notify_unread"
)

// WSRequest websocket Request
type WSRequest struct {
	Action     string `json:"action"`
	RoomID     string `json:"room_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	MessageID  string `json:"message_id"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
