package domain

import "strings"

// RoomIDDelimiter joins the two participant ids of a private room
const RoomIDDelimiter = "_"

// Room 1對1 聊天室，id 由雙方 user id 推導，本身只存 bookkeeping 欄位
type Room struct {
	ID           string   `bson:"_id" json:"id"`
	Participants []string `bson:"participants" json:"participants"`
	CreatedAt    int64    `bson:"created_at" json:"created_at"`
	// LastMessage / LastMessageTime 每次 send 更新 (room list preview 用)
	LastMessage     string `bson:"last_message" json:"last_message"`
	LastMessageTime int64  `bson:"last_message_time" json:"last_message_time"`
}

// RoomID derive the canonical room id for an unordered user pair.
// 兩個 id 按字典序排序後用 "_" 串接: RoomID(a,b) == RoomID(b,a)
func RoomID(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + RoomIDDelimiter + userB
}

// MessageInRoom check a message belongs to a room: the unordered
// {sender, receiver} pair must derive the same room id.
func MessageInRoom(roomID string, m Message) bool {
	return RoomID(m.SenderID, m.ReceiverID) == roomID
}

// UserChannel redis pub/sub channel for all messages addressed to a user
func UserChannel(userID string) string {
	return "chat:user:" + userID
}

// RoomChannel redis pub/sub channel for a room's change events
func RoomChannel(roomID string) string {
	return "chat:room:" + roomID
}

// TrimContent normalize message content before validation
func TrimContent(content string) string {
	return strings.TrimSpace(content)
}
