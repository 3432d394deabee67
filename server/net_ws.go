package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 64
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws    *websocket.Conn
	codec Codec
	send  chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewClientConn(ws *websocket.Conn, codec Codec) *ClientConn {
	return &ClientConn{
		ws:    ws,
		codec: codec,
		send:  make(chan []byte, sendBuffer),
		done:  make(chan struct{}),
	}
}

// Codec 该连接协商的出站编码
func (c *ClientConn) Codec() Codec { return c.codec }

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		// 为了实时性，丢弃新消息（防止阻塞 Tick）
		return false
	}
}

// Close 关闭底层连接；可重复调用
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定时发送 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(c.codec.FrameType(), msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端指令并在房间锁内执行；退出时将玩家移出房间
func (c *ClientConn) readPump(rm *RoomManager, room *Room, pid PlayerID) {
	defer func() {
		rm.Leave(pid)
		c.Close()
	}()
	c.ws.SetReadLimit(1 << 20) // 1MB
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Warnw("ws read error", "room", room.ID, "player", pid, "err", err)
			}
			return
		}
		dispatch(room, pid, payload)
	}
}

// dispatch 解析一条入站消息并执行；非法指令静默丢弃
func dispatch(room *Room, pid PlayerID, payload []byte) {
	var im InputMessage
	if err := json.Unmarshal(payload, &im); err != nil {
		Log.Debugw("drop malformed message", "room", room.ID, "player", pid, "err", err)
		room.metrics.IncRejected()
		return
	}
	switch strings.ToLower(im.Type) {
	case MsgPlaceTower:
		var d PlaceTowerData
		if decodeData(room, pid, im, &d) {
			room.PlaceTower(pid, d)
		}
	case MsgUpgradeTower:
		var d UpgradeTowerData
		if decodeData(room, pid, im, &d) {
			room.UpgradeTower(pid, d)
		}
	case MsgSpeedToggle:
		var d SpeedToggleData
		if decodeData(room, pid, im, &d) {
			room.SetSpeed(pid, d)
		}
	default:
		Log.Debugw("drop unknown message", "room", room.ID, "player", pid, "type", im.Type)
		room.metrics.IncRejected()
	}
}

func decodeData(room *Room, pid PlayerID, im InputMessage, dst any) bool {
	if len(im.Data) == 0 {
		room.metrics.IncRejected()
		return false
	}
	if err := json.Unmarshal(im.Data, dst); err != nil {
		Log.Debugw("drop bad payload", "room", room.ID, "player", pid, "type", im.Type, "err", err)
		room.metrics.IncRejected()
		return false
	}
	return true
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：/ws?codec=json|msgpack
// 连接即分配玩家 ID 并撮合房间，随后下发 joined 与每 Tick 的 game_update
func HandleWS(rm *RoomManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			Log.Warnw("upgrade error", "err", err)
			return
		}

		pid := PlayerID(uuid.NewString())
		client := NewClientConn(ws, ParseCodec(r.URL.Query().Get("codec")))
		go client.writePump()

		room := rm.Join(&Member{ID: pid, Conn: client})
		go client.readPump(rm, room, pid)
	}
}
