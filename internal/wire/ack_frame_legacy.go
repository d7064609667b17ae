package wire

import (
	"bytes"
	"time"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
)

// maximum gap between two ACK blocks of the legacy encoding.
// Larger gaps are split into zero-length blocks chained by maximum-size gaps.
const maxLegacyAckBlockGap = 0xff

// maximum number of ACK blocks of the legacy encoding
const maxLegacyAckBlocks = 0xff

func parseAckFrameLegacy(r *bytes.Reader, version protocol.VersionNumber) (*AckFrame, error) {
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	hasMissingRanges := typeByte&0x20 > 0

	largestAckedLen := 2 * ((typeByte & 0x0c) >> 2)
	if largestAckedLen == 0 {
		largestAckedLen = 1
	}
	missingSequenceNumberDeltaLen := 2 * (typeByte & 0x03)
	if missingSequenceNumberDeltaLen == 0 {
		missingSequenceNumberDeltaLen = 1
	}

	frame := &AckFrame{}
	la, err := utils.BigEndian.ReadUintN(r, largestAckedLen)
	if err != nil {
		return nil, err
	}
	frame.LargestAcked = protocol.PacketNumber(la)

	delay, err := utils.BigEndian.ReadUfloat16(r)
	if err != nil {
		return nil, err
	}
	frame.DelayTime = time.Duration(delay) * time.Microsecond

	var numBlocks uint8
	if hasMissingRanges {
		numBlocks, err = r.ReadByte()
		if err != nil {
			return nil, err
		}
	}

	firstBlockLength, err := utils.BigEndian.ReadUintN(r, missingSequenceNumberDeltaLen)
	if err != nil {
		return nil, err
	}
	// the first block covers the largest acked itself, so it can neither be
	// empty nor reach below packet number 1
	if firstBlockLength == 0 || firstBlockLength > la {
		return nil, qerr.Error(qerr.InvalidAckData, "invalid first ACK block")
	}
	firstReceived := protocol.PacketNumber(la - firstBlockLength + 1)
	frame.Ranges.Add(firstReceived, frame.LargestAcked+1)

	for i := uint8(0); i < numBlocks; i++ {
		gap, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		blockLength, err := utils.BigEndian.ReadUintN(r, missingSequenceNumberDeltaLen)
		if err != nil {
			return nil, err
		}
		if protocol.PacketNumber(uint64(gap)+blockLength) >= firstReceived {
			return nil, qerr.Error(qerr.InvalidAckData, "ACK block underflows")
		}
		firstReceived -= protocol.PacketNumber(uint64(gap) + blockLength)
		// a zero-length block only bridges a gap larger than one gap byte can hold
		if blockLength > 0 {
			frame.Ranges.Add(firstReceived, firstReceived+protocol.PacketNumber(blockLength))
		}
	}

	if err := frame.parseTimestamps(r); err != nil {
		return nil, err
	}
	return frame, nil
}

func (f *AckFrame) parseTimestamps(r *bytes.Reader) error {
	numTimestamps, err := r.ReadByte()
	if err != nil {
		return err
	}
	if numTimestamps == 0 {
		return nil
	}

	delta, err := r.ReadByte()
	if err != nil {
		return err
	}
	firstTime, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return err
	}
	prev := time.Duration(firstTime) * time.Microsecond
	f.Timestamps = append(f.Timestamps, AckTimestamp{Delta: delta, Time: prev})

	for i := uint8(0); i < numTimestamps-1; i++ {
		delta, err := r.ReadByte()
		if err != nil {
			return err
		}
		sincePrev, err := utils.BigEndian.ReadUfloat16(r)
		if err != nil {
			return err
		}
		prev += time.Duration(sincePrev) * time.Microsecond
		f.Timestamps = append(f.Timestamps, AckTimestamp{Delta: delta, Time: prev})
	}
	return nil
}

func (f *AckFrame) writeLegacy(b *bytes.Buffer, _ protocol.VersionNumber) error {
	firstBlockLength, blocks, err := f.legacyAckBlocks()
	if err != nil {
		return err
	}

	largestAckedLen := protocol.GetPacketNumberLength(f.LargestAcked)
	// the block length fields have to be able to hold the first block length,
	// which is at most the largest acked
	missingSequenceNumberDeltaLen := largestAckedLen

	typeByte := uint8(0x40)
	if len(blocks) > 0 {
		typeByte |= 0x20
	}
	if largestAckedLen != protocol.PacketNumberLen1 {
		typeByte |= uint8(largestAckedLen/2) << 2
	}
	if missingSequenceNumberDeltaLen != protocol.PacketNumberLen1 {
		typeByte |= uint8(missingSequenceNumberDeltaLen / 2)
	}

	b.WriteByte(typeByte)
	utils.BigEndian.WriteUintN(b, uint8(largestAckedLen), uint64(f.LargestAcked))
	utils.BigEndian.WriteUfloat16(b, uint64(f.DelayTime/time.Microsecond))

	if len(blocks) > 0 {
		b.WriteByte(uint8(len(blocks)))
	}
	utils.BigEndian.WriteUintN(b, uint8(missingSequenceNumberDeltaLen), firstBlockLength)
	for _, blk := range blocks {
		b.WriteByte(uint8(blk.gap))
		utils.BigEndian.WriteUintN(b, uint8(missingSequenceNumberDeltaLen), blk.length)
	}

	f.writeTimestamps(b)
	return nil
}

// legacyAckBlocks plans the ACK block section of the legacy encoding.
// Unlike the IETF encoding, the legacy encoding writes gaps and block
// lengths as their real values, and a gap wider than one gap byte is
// chained using zero-length blocks.
func (f *AckFrame) legacyAckBlocks() (uint64, []ackBlock, error) {
	intervals := f.Ranges.Intervals()
	idx := len(intervals) - 1

	var firstBlockLength uint64
	var prevSmallest protocol.PacketNumber
	if idx >= 0 && intervals[idx].End == f.LargestAcked+1 {
		firstBlockLength = uint64(intervals[idx].Len())
		prevSmallest = intervals[idx].Start
		idx--
	} else {
		if idx >= 0 && intervals[idx].End > f.LargestAcked {
			return 0, nil, errInconsistentAckRanges
		}
		firstBlockLength = 1
		prevSmallest = f.LargestAcked
	}

	var blocks []ackBlock
	for i := idx; i >= 0; i-- {
		in := intervals[i]
		gap := uint64(prevSmallest - in.End)
		if gap == 0 {
			return 0, nil, errInconsistentAckRanges
		}
		for gap > maxLegacyAckBlockGap {
			blocks = append(blocks, ackBlock{gap: maxLegacyAckBlockGap, length: 0})
			gap -= maxLegacyAckBlockGap
		}
		blocks = append(blocks, ackBlock{gap: gap, length: uint64(in.Len())})
		prevSmallest = in.Start
	}
	if len(blocks) > maxLegacyAckBlocks {
		// too many blocks: drop the lowest ranges, the peer will eventually
		// learn about them from a later ACK frame
		blocks = blocks[:maxLegacyAckBlocks]
	}
	return firstBlockLength, blocks, nil
}

func (f *AckFrame) writeTimestamps(b *bytes.Buffer) {
	timestamps := f.Timestamps[:utils.Min(len(f.Timestamps), protocol.MaxAckTimestamps)]
	b.WriteByte(uint8(len(timestamps)))
	if len(timestamps) == 0 {
		return
	}
	b.WriteByte(timestamps[0].Delta)
	utils.BigEndian.WriteUint32(b, uint32(timestamps[0].Time/time.Microsecond))
	prev := timestamps[0].Time
	for _, ts := range timestamps[1:] {
		b.WriteByte(ts.Delta)
		sincePrev := ts.Time - prev
		if sincePrev < 0 {
			sincePrev = 0
		}
		utils.BigEndian.WriteUfloat16(b, uint64(sincePrev/time.Microsecond))
		prev = ts.Time
	}
}

func (f *AckFrame) lengthLegacy(_ protocol.VersionNumber) protocol.ByteCount {
	_, blocks, err := f.legacyAckBlocks()
	if err != nil {
		return 0
	}
	largestAckedLen := protocol.GetPacketNumberLength(f.LargestAcked)
	missingSequenceNumberDeltaLen := largestAckedLen

	length := 1 + protocol.ByteCount(largestAckedLen) + 2 // type byte, largest acked, delay
	if len(blocks) > 0 {
		length++ // number of blocks
	}
	length += protocol.ByteCount(missingSequenceNumberDeltaLen) // first block length
	length += protocol.ByteCount(len(blocks)) * (1 + protocol.ByteCount(missingSequenceNumberDeltaLen))

	numTimestamps := utils.Min(len(f.Timestamps), protocol.MaxAckTimestamps)
	length++ // number of timestamps
	if numTimestamps > 0 {
		length += 1 + 4                                         // first timestamp
		length += protocol.ByteCount(numTimestamps-1) * (1 + 2) // subsequent timestamps
	}
	return length
}
