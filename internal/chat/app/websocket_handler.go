package app

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"direct_chat_service/internal/chat/domain"
	"direct_chat_service/internal/chat/identity"
	"direct_chat_service/internal/chat/repository"
	"direct_chat_service/pkg"
	"direct_chat_service/pkg/logger"
	"direct_chat_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler 可包含所有需要的 UseCase
type ChatWebsocketHandler struct {
	roomUC    *RoomUseCase
	messageUC *SendMessageUseCase
	streamUC  *StreamRoomUseCase
	unreadUC  *UnreadTrackerUseCase
	pubSub    repository.PubSub
}

// connState 單一連線的串流狀態 (handler 本身跨連線共用)
type connState struct {
	roomStream   *Stream[[]domain.Message]
	unreadStream *Stream[domain.UnreadCounts]
}

// wsWriter 序列化同一條連線上的寫入 (read loop、串流轉發與 ping 會同時寫)
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) WriteMessage(mt int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(mt, data)
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	roomUC *RoomUseCase,
	messageUC *SendMessageUseCase,
	streamUC *StreamRoomUseCase,
	unreadUC *UnreadTrackerUseCase,
	pubSub repository.PubSub,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		roomUC:    roomUC,
		messageUC: messageUC,
		streamUC:  streamUC,
		unreadUC:  unreadUC,
		pubSub:    pubSub,
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	userID, ok := tokenUser.(string)
	logger.Log.Info("websocket handle userID", zap.String("userID", userID), zap.String("ok", strconv.FormatBool(ok)))

	ctx = identity.WithUserID(ctx, userID)
	state := &connState{}
	writer := &wsWriter{conn: conn}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", userID))
		conn.Close()
		cancel()
		if state.roomStream != nil {
			state.roomStream.Cancel()
		}
		if state.unreadStream != nil {
			state.unreadStream.Cancel()
		}
	}()

	//client發出close
	//fiber會自動處理(在read msg 回傳err),故需要SetCloseHandler另外接出
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	//client發出ping
	conn.SetPingHandler(func(appData string) error {
		logger.Log.Infof("Received PING:", appData)
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	//啟用sub訂閱自己的訊息: 有人傳訊息給自己時推 notify_message。
	//訂閱失敗整條連線的推播都收不到，直接結束連線讓 client 重連
	if err := h.subscribeUserNotifications(ctxClose, writer, userID); err != nil {
		logger.Log.Error("user channel subscribe err", zap.String("userID", userID), zap.Error(err))
		h.sendError(writer, "subscription unavailable")
		return
	}

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				pingMsg := "ping message"
				if err := writer.WriteMessage(websocket.PingMessage, []byte(pingMsg)); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
				logger.Log.Infof("%s Ping sent", userID)
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for user:", userID)
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Errorf("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, writer, state, userID, mt, message)
	}
}

// subscribeUserNotifications 訂閱 user 自己的變更 channel，收到事件推 notify_message
func (h *ChatWebsocketHandler) subscribeUserNotifications(ctx context.Context, writer *wsWriter, userID string) error {
	return h.pubSub.Subscribe(ctx, domain.UserChannel(userID), func(event domain.ChangeEvent) {
		h.sendResponse(writer, domain.WSResponse{
			Action:  string(domain.NotifyMessage),
			Success: true,
			Payload: map[string]interface{}{
				"message_id": event.MessageID,
				"sender_id":  event.SenderID,
				"room_id":    event.RoomID,
			},
		})
	})
}

// enterRoomGuard room 已存在時只有成員能進; room 還沒 create 容許直接串流;
// 查詢失敗一律擋下，不能讓 store 錯誤變成放行
func (h *ChatWebsocketHandler) enterRoomGuard(ctx context.Context, roomID, userID string) error {
	room, err := h.roomUC.FindRoom(ctx, roomID)
	if errors.Is(err, domain.ErrRoomNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !pkg.Contains(room.Participants, userID) {
		return errors.New("not a room participant")
	}
	return nil
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, writer *wsWriter, state *connState, userID string, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, writer, state, userID, msg)
	default:
		h.sendError(writer, "unknown action")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, writer *wsWriter, state *connState, userID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Errorf("json unmarshal error:", err)
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {
	//建立 1對1 聊天室
	case string(domain.CreateRoom):
		roomID, err := h.roomUC.CreateRoom(ctx, userID, req.ReceiverID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["room_id"] = roomID
		}

	//傳送訊息: 寫入 db 並通知聊天室與 receiver
	case string(domain.SendMessage):
		msgID, err := h.messageUC.Execute(ctx, userID, req.ReceiverID, req.Content)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["message_id"] = msgID
		}

	//進入聊天室: 開始快照串流
	case string(domain.EnterRoom):
		if state.roomStream != nil {
			state.roomStream.Cancel()
			state.roomStream = nil
		}

		if err := h.enterRoomGuard(ctx, req.RoomID, userID); err != nil {
			resp.Error = err.Error()
			break
		}

		stream, err := h.streamUC.Execute(ctx, req.RoomID)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		state.roomStream = stream
		go h.forwardRoomSnapshots(writer, req.RoomID, stream)
		resp.Success = true
		resp.Payload["room_id"] = req.RoomID

	//離開聊天室: 取消快照串流
	case string(domain.LeaveRoom):
		if state.roomStream != nil {
			state.roomStream.Cancel()
			state.roomStream = nil
		}
		resp.Success = true
		resp.Payload["leave_room"] = req.RoomID

	//讀取訊息  將未讀訊息改為已讀
	case string(domain.ReadMessage):
		err := h.messageUC.MarkRead(ctx, req.RoomID, req.MessageID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
		}

	//開始未讀數串流
	case string(domain.GetUnread):
		if state.unreadStream != nil {
			state.unreadStream.Cancel()
			state.unreadStream = nil
		}
		stream, err := h.unreadUC.Execute(ctx, userID)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		state.unreadStream = stream
		go h.forwardUnreadCounts(writer, stream)
		resp.Success = true

	default:
		h.sendError(writer, "unknown message types ")
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.String("UserID", userID), zap.String("Action", req.Action), zap.String("err", resp.Error))
	}
	h.sendResponse(writer, resp)
}

// forwardRoomSnapshots 把串流快照轉成 notify_room 推給前端，串流結束時停止
func (h *ChatWebsocketHandler) forwardRoomSnapshots(writer *wsWriter, roomID string, stream *Stream[[]domain.Message]) {
	for snapshot := range stream.Updates() {
		h.sendResponse(writer, domain.WSResponse{
			Action:  string(domain.NotifyRoom),
			Success: true,
			Payload: map[string]interface{}{
				"room_id":  roomID,
				"messages": snapshot,
			},
		})
	}
	if err := stream.Err(); err != nil {
		logger.Log.Errorf("room stream terminated:", err)
		h.sendError(writer, err.Error())
	}
}

// forwardUnreadCounts 把未讀數快照轉成 notify_unread 推給前端
func (h *ChatWebsocketHandler) forwardUnreadCounts(writer *wsWriter, stream *Stream[domain.UnreadCounts]) {
	for counts := range stream.Updates() {
		payload := map[string]interface{}{}
		for senderID, count := range counts {
			payload[senderID] = count
		}
		h.sendResponse(writer, domain.WSResponse{
			Action:  string(domain.NotifyUnread),
			Success: true,
			Payload: payload,
		})
	}
	if err := stream.Err(); err != nil {
		logger.Log.Errorf("unread stream terminated:", err)
		h.sendError(writer, err.Error())
	}
}

// sendResponse - 發送 JSON 給前端
func (h *ChatWebsocketHandler) sendResponse(writer *wsWriter, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := writer.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(writer *wsWriter, errorMsg string) {
	resp := domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	}
	h.sendResponse(writer, resp)
}
