package domain

// ChangeEvent 每次訊息寫入 (send / mark read) 後發布到 room 與 receiver
// channel，訂閱端收到後重新查詢快照
type ChangeEvent struct {
	RoomID     string `json:"room_id"`
	MessageID  string `json:"message_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}
