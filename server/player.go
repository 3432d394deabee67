package server

// PlayerID 表示玩家唯一标识（连接建立时分配）
type PlayerID string

// Sender 向客户端发送已编码消息的抽象；ClientConn 为 WebSocket 实现，测试中可替换
type Sender interface {
	Enqueue(b []byte) bool
	Codec() Codec
	Close()
}

// Member 房间成员：玩家 ID + 发送端
type Member struct {
	ID   PlayerID
	Conn Sender
}
