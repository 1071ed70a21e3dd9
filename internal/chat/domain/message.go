package domain

// Message 表示一則 1對1 聊天訊息
type Message struct {
	ID string `bson:"_id" json:"id"`
	// RoomID 由 sender/receiver 推導後存入，讓 room 查詢走單欄位等值過濾
	RoomID     string `bson:"room_id" json:"room_id"`
	SenderID   string `bson:"sender_id" json:"sender_id"`
	ReceiverID string `bson:"receiver_id" json:"receiver_id"`
	Content    string `bson:"content" json:"content"`
	// Timestamp 毫秒 (assigned by the writer at send time)
	Timestamp int64 `bson:"timestamp" json:"timestamp"`
	IsRead    bool  `bson:"is_read" json:"is_read"`
	// Read 舊版已讀欄位。Kept only so records written before the is_read
	// migration still count as read; new writes always set both flags.
	Read bool `bson:"read,omitempty" json:"read,omitempty"`
}

// IsUnread 未讀判斷，兩個已讀欄位都要是 false
func (m Message) IsUnread() bool {
	return !m.IsRead && !m.Read
}

// UnreadCounts per sender unread count, senders with zero unread are absent
type UnreadCounts map[string]int

// CountUnread recompute unread counts from scratch for one recipient's
// message set. 沒有未讀的 sender 不會出現在 map 裡
func CountUnread(messages []Message) UnreadCounts {
	counts := UnreadCounts{}
	for _, m := range messages {
		if m.IsUnread() {
			counts[m.SenderID]++
		}
	}
	return counts
}

// MessageNotification 推播用資料 (out-of-band delivery payload)
type MessageNotification struct {
	SenderName     string `json:"sender_name"`
	ReceiverID     string `json:"receiver_id"`
	MessageContent string `json:"message_content"`
	ChatRoomID     string `json:"chat_room_id"`
}
