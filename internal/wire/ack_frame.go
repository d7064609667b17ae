package wire

import (
	"bytes"
	"errors"
	"time"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils/intervalset"
	"github.com/quic-go/quicwire/quicvarint"
)

var errInconsistentAckRanges = errors.New("AckFrame: inconsistent ACK ranges")

// An AckFrame is an ACK frame
type AckFrame struct {
	LargestAcked protocol.PacketNumber
	DelayTime    time.Duration
	// Ranges is the set of acknowledged packet numbers, as half-open intervals.
	// Ranges.Last() contains the highest acknowledged packet number.
	Ranges intervalset.Set[protocol.PacketNumber]

	// ECN counts. Only carried by the IETF encoding.
	ECT0, ECT1, ECNCE uint64

	// Receive timestamps. Only carried by the legacy encoding.
	Timestamps []AckTimestamp
}

// An AckTimestamp is the receive timestamp of a single acknowledged packet.
// Delta is the distance of the packet number from the frame's largest acked.
// Time is the receive time, relative to the connection start.
type AckTimestamp struct {
	Delta uint8
	Time  time.Duration
}

// an ACK block, in the values that actually appear on the wire.
// For the IETF encoding gap and length are the real values minus 1.
type ackBlock struct {
	gap    uint64
	length uint64
}

// ParseAckFrame reads an ACK frame. The type byte must not have been read yet.
func ParseAckFrame(r *bytes.Reader, version protocol.VersionNumber) (*AckFrame, error) {
	if version.UsesIETFFrameFormat() {
		return parseAckFrameIETF(r, version)
	}
	return parseAckFrameLegacy(r, version)
}

func parseAckFrameIETF(r *bytes.Reader, version protocol.VersionNumber) (*AckFrame, error) {
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	hasECN := typeByte&0x1 > 0

	frame := &AckFrame{}
	la, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	frame.LargestAcked = protocol.PacketNumber(la)
	delay, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	frame.DelayTime = time.Duration(delay*1<<protocol.AckDelayExponent) * time.Microsecond

	numBlocks, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	firstLen, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	// the lowest packet number of the first block must not drop below 1
	if firstLen >= la {
		return nil, qerr.Error(qerr.InvalidAckData, "invalid first ACK range")
	}
	smallest := protocol.PacketNumber(la - firstLen)
	frame.Ranges.Add(smallest, frame.LargestAcked+1)

	for i := uint64(0); i < numBlocks; i++ {
		g, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		l, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		gap := protocol.PacketNumber(g) + 1
		length := protocol.PacketNumber(l) + 1
		if gap+length >= smallest {
			return nil, qerr.Error(qerr.InvalidAckData, "ACK range underflows")
		}
		end := smallest - gap
		start := end - length
		frame.Ranges.Add(start, end)
		smallest = start
	}

	if hasECN {
		if frame.ECT0, err = quicvarint.Read(r); err != nil {
			return nil, err
		}
		if frame.ECT1, err = quicvarint.Read(r); err != nil {
			return nil, err
		}
		if frame.ECNCE, err = quicvarint.Read(r); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// Write writes an ACK frame
func (f *AckFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return f.writeLegacy(b, version)
	}

	firstLen, blocks, err := f.ietfAckBlocks()
	if err != nil {
		return err
	}
	hasECN := f.ECT0 > 0 || f.ECT1 > 0 || f.ECNCE > 0
	if hasECN {
		b.WriteByte(0x03)
	} else {
		b.WriteByte(0x02)
	}
	quicvarint.Write(b, uint64(f.LargestAcked))
	quicvarint.Write(b, encodeAckDelay(f.DelayTime))
	quicvarint.Write(b, uint64(len(blocks)))
	quicvarint.Write(b, firstLen)
	for _, blk := range blocks {
		quicvarint.Write(b, blk.gap)
		quicvarint.Write(b, blk.length)
	}
	if hasECN {
		quicvarint.Write(b, f.ECT0)
		quicvarint.Write(b, f.ECT1)
		quicvarint.Write(b, f.ECNCE)
	}
	return nil
}

// ietfAckBlocks plans the ACK block section of the IETF encoding: the
// length of the first block (already encoded as length-1) and the
// subsequent gap / length pairs, walking the ranges from highest to lowest.
func (f *AckFrame) ietfAckBlocks() (uint64, []ackBlock, error) {
	intervals := f.Ranges.Intervals()
	idx := len(intervals) - 1

	var firstLen uint64
	var prevSmallest protocol.PacketNumber
	if idx >= 0 && intervals[idx].End == f.LargestAcked+1 {
		firstLen = uint64(intervals[idx].Len()) - 1
		prevSmallest = intervals[idx].Start
		idx--
	} else {
		// the highest range doesn't reach up to the largest acked:
		// ack the largest acked on its own, and fold the highest range
		// into the gap / length list
		if idx >= 0 && intervals[idx].End > f.LargestAcked {
			return 0, nil, errInconsistentAckRanges
		}
		firstLen = 0
		prevSmallest = f.LargestAcked
	}

	var blocks []ackBlock
	for i := idx; i >= 0; i-- {
		in := intervals[i]
		gap := prevSmallest - in.End
		if gap == 0 { // adjacent ranges should have been merged by the interval set
			return 0, nil, errInconsistentAckRanges
		}
		blocks = append(blocks, ackBlock{gap: uint64(gap) - 1, length: uint64(in.Len()) - 1})
		prevSmallest = in.Start
	}
	return firstLen, blocks, nil
}

// Length of a written frame
func (f *AckFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if !version.UsesIETFFrameFormat() {
		return f.lengthLegacy(version)
	}
	firstLen, blocks, err := f.ietfAckBlocks()
	if err != nil {
		return 0
	}
	length := 1 + protocol.ByteCount(quicvarint.Len(uint64(f.LargestAcked)))
	length += protocol.ByteCount(quicvarint.Len(encodeAckDelay(f.DelayTime)))
	length += protocol.ByteCount(quicvarint.Len(uint64(len(blocks))))
	length += protocol.ByteCount(quicvarint.Len(firstLen))
	for _, blk := range blocks {
		length += protocol.ByteCount(quicvarint.Len(blk.gap) + quicvarint.Len(blk.length))
	}
	if f.ECT0 > 0 || f.ECT1 > 0 || f.ECNCE > 0 {
		length += protocol.ByteCount(quicvarint.Len(f.ECT0) + quicvarint.Len(f.ECT1) + quicvarint.Len(f.ECNCE))
	}
	return length
}

// HasMissingRanges says if this frame reports any missing packets
func (f *AckFrame) HasMissingRanges() bool {
	if f.Ranges.Len() > 1 {
		return true
	}
	return !f.Ranges.Empty() && f.Ranges.Last().End != f.LargestAcked+1
}

// LowestAcked returns the lowest acked packet number
func (f *AckFrame) LowestAcked() protocol.PacketNumber {
	if f.Ranges.Empty() {
		return f.LargestAcked
	}
	return f.Ranges.First().Start
}

// AcksPacket says if this ACK frame acks a certain packet number
func (f *AckFrame) AcksPacket(p protocol.PacketNumber) bool {
	return f.Ranges.Contains(p, p+1)
}

func encodeAckDelay(delay time.Duration) uint64 {
	return uint64(delay/time.Microsecond) >> protocol.AckDelayExponent
}
