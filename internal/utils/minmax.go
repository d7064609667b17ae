package utils

import "github.com/quic-go/quicwire/internal/protocol"

// Min returns the minimum of two Ints
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MinByteCount returns the minimum of two ByteCounts
func MinByteCount(a, b protocol.ByteCount) protocol.ByteCount {
	if a < b {
		return a
	}
	return b
}

// MaxPacketNumber returns the maximum of two packet numbers
func MaxPacketNumber(a, b protocol.PacketNumber) protocol.PacketNumber {
	if a < b {
		return b
	}
	return a
}
