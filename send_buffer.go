package quicwire

import (
	"errors"
	"fmt"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/utils"
	"github.com/quic-go/quicwire/internal/utils/intervalset"
	"github.com/quic-go/quicwire/internal/wire"
)

// A bufferedSlice is one contiguous chunk of an outgoing stream's bytes
// together with its starting offset in the stream.
// The data is freed (set to nil) once every byte of it has been acked.
type bufferedSlice struct {
	offset protocol.ByteCount
	data   []byte
}

// A SendBuffer buffers the outgoing bytes of one stream and tracks which of
// them are outstanding, which have been acknowledged, and which are lost and
// awaiting retransmission.
// It is not safe for concurrent use.
type SendBuffer struct {
	slices []bufferedSlice
	// index into slices of the slice currently being written to the wire,
	// or -1 when all buffered data has been written
	writeIndex int

	streamOffset     protocol.ByteCount // end offset of the buffered data
	bytesWritten     protocol.ByteCount // bytes placed on the wire so far
	bytesOutstanding protocol.ByteCount // written, but not yet acked

	acked intervalset.Set[protocol.ByteCount]
	lost  intervalset.Set[protocol.ByteCount]
}

// NewSendBuffer creates a new send buffer.
func NewSendBuffer() *SendBuffer {
	return &SendBuffer{writeIndex: -1}
}

// Append buffers data at the end of the stream. It takes ownership of data,
// the caller must not modify it afterwards.
func (b *SendBuffer) Append(data []byte) error {
	if len(data) == 0 {
		return errors.New("SendBuffer: append of empty data")
	}
	b.slices = append(b.slices, bufferedSlice{offset: b.streamOffset, data: data})
	if b.writeIndex == -1 {
		b.writeIndex = len(b.slices) - 1
	}
	b.streamOffset += protocol.ByteCount(len(data))
	return nil
}

// MarkConsumed records that n buffered bytes were placed on the wire.
// It doesn't move any data.
func (b *SendBuffer) MarkConsumed(n protocol.ByteCount) error {
	if b.bytesWritten+n > b.streamOffset {
		return fmt.Errorf("SendBuffer: consumed %d bytes, but only %d bytes are buffered", b.bytesWritten+n, b.streamOffset)
	}
	b.bytesWritten += n
	b.bytesOutstanding += n
	return nil
}

// WriteRange copies the bytes of [offset, offset+length) to w, crossing
// slice boundaries transparently.
// Sequential writes of new data advance an internal cursor and don't need to
// search for the slice containing the offset. Writes of previously written
// data (retransmissions) start below the cursor and are found by scanning
// from the front. A write starting beyond the cursor's slice is out of
// sequence and an error: new data is only ever requested in order.
func (b *SendBuffer) WriteRange(offset, length protocol.ByteCount, w io.Writer) error {
	if length == 0 {
		return nil
	}
	i := 0
	cursorHit := false
	if b.writeIndex != -1 {
		sl := b.slices[b.writeIndex]
		if offset >= sl.offset+protocol.ByteCount(len(sl.data)) {
			return errors.New("SendBuffer: write out of sequence")
		}
		if offset >= sl.offset {
			i = b.writeIndex
			cursorHit = true
		}
	}

	writeIndex := b.writeIndex
	for ; i < len(b.slices); i++ {
		sl := b.slices[i]
		if length == 0 || offset < sl.offset {
			break
		}
		end := sl.offset + protocol.ByteCount(len(sl.data))
		if offset >= end {
			continue
		}
		if sl.data == nil {
			return errors.New("SendBuffer: range was already acked and freed")
		}
		n := utils.MinByteCount(end-offset, length)
		if _, err := w.Write(sl.data[offset-sl.offset : offset-sl.offset+n]); err != nil {
			return err
		}
		offset += n
		length -= n
		if cursorHit && i == writeIndex && offset == end {
			// the cursor's slice has been fully written, advance the cursor
			writeIndex++
		}
	}
	if length > 0 {
		return errors.New("SendBuffer: range is not buffered")
	}
	if writeIndex == len(b.slices) {
		writeIndex = -1
	}
	b.writeIndex = writeIndex
	return nil
}

// OnAck marks [offset, offset+length) as acknowledged and returns the number
// of bytes that had not been acked before. Already-acked sub-ranges are a
// no-op. Any overlap with the lost set is cleared, an acked byte is never
// retransmitted.
// It is an error for the peer to ack more bytes than are outstanding. On
// failure the buffer's state is unchanged.
func (b *SendBuffer) OnAck(offset, length protocol.ByteCount) (protocol.ByteCount, error) {
	if length == 0 {
		return 0, nil
	}
	end := offset + length
	if end > b.bytesWritten {
		return 0, fmt.Errorf("SendBuffer: acked bytes up to offset %d, but only %d bytes were written", end, b.bytesWritten)
	}
	newlyAcked := length - b.acked.CoveredSize(offset, end)
	if newlyAcked == 0 {
		return 0, nil
	}
	if newlyAcked > b.bytesOutstanding {
		return 0, fmt.Errorf("SendBuffer: acked %d new bytes, but only %d bytes are outstanding", newlyAcked, b.bytesOutstanding)
	}

	b.acked.Add(offset, end)
	b.lost.Difference(offset, end)
	b.bytesOutstanding -= newlyAcked
	b.freeAckedSlices()
	return newlyAcked, nil
}

// freeAckedSlices frees every slice fully covered by the acked set, and pops
// freed slices from the front of the sequence. The cursor index is adjusted
// down by one per pop.
func (b *SendBuffer) freeAckedSlices() {
	for i := range b.slices {
		sl := &b.slices[i]
		if sl.data == nil {
			continue
		}
		if b.acked.Contains(sl.offset, sl.offset+protocol.ByteCount(len(sl.data))) {
			sl.data = nil
		}
	}
	for len(b.slices) > 0 && b.slices[0].data == nil {
		b.slices = b.slices[1:]
		if b.writeIndex != -1 {
			b.writeIndex--
		}
	}
}

// OnLost marks the not-yet-acked part of [offset, offset+length) as lost.
// A no-op if the whole range is already acked.
func (b *SendBuffer) OnLost(offset, length protocol.ByteCount) {
	if length == 0 {
		return
	}
	end := offset + length
	b.lost.Add(offset, end)
	for _, in := range b.acked.Intervals() {
		if in.End <= offset {
			continue
		}
		if in.Start >= end {
			break
		}
		b.lost.Difference(in.Start, in.End)
	}
}

// OnRetransmitted records that [offset, offset+length) was retransmitted.
// The range becomes ordinary outstanding data again.
func (b *SendBuffer) OnRetransmitted(offset, length protocol.ByteCount) {
	b.lost.Difference(offset, offset+length)
}

// HasPendingRetransmission says if any lost bytes are awaiting retransmission.
func (b *SendBuffer) HasPendingRetransmission() bool {
	return !b.lost.Empty()
}

// NextPendingRetransmission returns the lowest lost byte range.
// It must only be called when HasPendingRetransmission is true.
func (b *SendBuffer) NextPendingRetransmission() (protocol.ByteCount /* offset */, protocol.ByteCount /* length */) {
	if b.lost.Empty() {
		panic("SendBuffer: no pending retransmission")
	}
	in := b.lost.First()
	return in.Start, in.Len()
}

// IsOutstanding says if any byte of [offset, offset+length) has not been
// acked yet. It doesn't check that the range was ever sent, callers only
// query ranges they sent.
func (b *SendBuffer) IsOutstanding(offset, length protocol.ByteCount) bool {
	return length > 0 && !b.acked.Contains(offset, offset+length)
}

// BytesWritten returns the total number of bytes placed on the wire.
func (b *SendBuffer) BytesWritten() protocol.ByteCount {
	return b.bytesWritten
}

// BytesOutstanding returns the number of bytes that are on the wire but not
// acked yet.
func (b *SendBuffer) BytesOutstanding() protocol.ByteCount {
	return b.bytesOutstanding
}

// BytesBuffered returns the total number of bytes handed to Append.
func (b *SendBuffer) BytesBuffered() protocol.ByteCount {
	return b.streamOffset
}

// Producer returns a wire.StreamDataProducer backed by this buffer, so that
// STREAM frames can pull their body from the buffer during serialization
// instead of carrying a copy.
// The stream ID is ignored, a SendBuffer holds the data of a single stream.
func (b *SendBuffer) Producer() wire.StreamDataProducer {
	return sendBufferProducer{b}
}

type sendBufferProducer struct {
	b *SendBuffer
}

func (p sendBufferProducer) WriteStreamData(_ protocol.StreamID, offset, length protocol.ByteCount, w io.Writer) error {
	return p.b.WriteRange(offset, length, w)
}
