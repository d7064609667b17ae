package wire

import (
	"github.com/quic-go/quicwire/internal/utils"
)

// LogFrame logs a frame, either sent or received
func LogFrame(frame Frame, sent bool) {
	if !utils.Debug() {
		return
	}
	dir := "<-"
	if sent {
		dir = "->"
	}
	switch f := frame.(type) {
	case *StreamFrame:
		utils.Debugf("\t%s &wire.StreamFrame{StreamID: %d, FinBit: %t, Offset: %#x, Data length: %#x, Offset + Data length: %#x}", dir, f.StreamID, f.FinBit, f.Offset, f.DataLen(), f.Offset+f.DataLen())
	case *AckFrame:
		utils.Debugf("\t%s &wire.AckFrame{LargestAcked: %#x, LowestAcked: %#x, Ranges: %s, DelayTime: %s}", dir, f.LargestAcked, f.LowestAcked(), f.Ranges.String(), f.DelayTime.String())
	case *StopWaitingFrame:
		utils.Debugf("\t%s &wire.StopWaitingFrame{LeastUnacked: %#x}", dir, f.LeastUnacked)
	case *CryptoFrame:
		utils.Debugf("\t%s &wire.CryptoFrame{Offset: %#x, Data length: %#x}", dir, f.Offset, len(f.Data))
	case *PaddingFrame:
		utils.Debugf("\t%s &wire.PaddingFrame{NumBytes: %d}", dir, f.NumBytes)
	default:
		utils.Debugf("\t%s %#v", dir, frame)
	}
}
