package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec 出站消息的编码方式
type Codec string

const (
	CodecJSON    Codec = "json"
	CodecMsgpack Codec = "msgpack"
)

// ParseCodec 解析 ?codec= 参数，未知值回退为 JSON
func ParseCodec(s string) Codec {
	if Codec(s) == CodecMsgpack {
		return CodecMsgpack
	}
	return CodecJSON
}

// FrameType 对应的 WebSocket 帧类型
func (c Codec) FrameType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Encode 编码消息；msgpack 复用 json 标签，保证两种格式字段名一致
func (c Codec) Encode(v any) ([]byte, error) {
	switch c {
	case CodecMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("msgpack encode: %w", err)
		}
		return buf.Bytes(), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
		return b, nil
	}
}

// encodeCache 同一 Tick 内每种编码只编码一次
type encodeCache map[Codec][]byte

func (ec encodeCache) get(c Codec, v any) ([]byte, error) {
	if b, ok := ec[c]; ok {
		return b, nil
	}
	b, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	ec[c] = b
	return b, nil
}
