package quicwire

import (
	"sync"

	"github.com/quic-go/quicwire/internal/protocol"
)

var bufferPool sync.Pool

// getPacketBuffer returns a buffer large enough to hold a decrypted packet
// payload. It is put back into the pool with putPacketBuffer.
func getPacketBuffer() *[]byte {
	buf := bufferPool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return buf
}

func putPacketBuffer(buf *[]byte) {
	if cap(*buf) != int(protocol.MaxReceivePacketSize) {
		panic("putPacketBuffer called with packet of wrong size!")
	}
	bufferPool.Put(buf)
}

func init() {
	bufferPool.New = func() interface{} {
		b := make([]byte, 0, protocol.MaxReceivePacketSize)
		return &b
	}
}
