package protocol

import "fmt"

// A PacketNumber in QUIC
type PacketNumber uint64

// InvalidPacketNumber is 0. Packet numbers start at 1,
// a packet number of 0 on the wire is always an error.
const InvalidPacketNumber PacketNumber = 0

// A PacketNumberLen is the length of a truncated packet number on the wire, in bytes.
type PacketNumberLen uint8

const (
	// PacketNumberLenInvalid is the default value and must not appear on the wire
	PacketNumberLenInvalid PacketNumberLen = 0
	// PacketNumberLen1 is a packet number length of 1 byte
	PacketNumberLen1 PacketNumberLen = 1
	// PacketNumberLen2 is a packet number length of 2 bytes
	PacketNumberLen2 PacketNumberLen = 2
	// PacketNumberLen4 is a packet number length of 4 bytes
	PacketNumberLen4 PacketNumberLen = 4
	// PacketNumberLen6 is a packet number length of 6 bytes, only used by the legacy encoding
	PacketNumberLen6 PacketNumberLen = 6
	// PacketNumberLen8 is a packet number length of 8 bytes, only used by the legacy encoding
	PacketNumberLen8 PacketNumberLen = 8
)

// A ByteCount in QUIC
type ByteCount uint64

// MaxByteCount is the maximum value of a ByteCount
const MaxByteCount = ByteCount(1<<62 - 1)

// MaxPacketSize is the maximum packet size, including the header, that we use for sending packets
const MaxPacketSize ByteCount = 1350

// MaxReceivePacketSize is the maximum packet size we accept on the receive side
const MaxReceivePacketSize ByteCount = 1452

// ConnectionIDLen is the length of connection IDs we send and expect.
// Connection IDs are either absent or 8 bytes long.
const ConnectionIDLen = 8

// DiversificationNonceLen is the length of the diversification nonce
// carried in server-sent long headers of type 0-RTT.
const DiversificationNonceLen = 32

// AckDelayExponent is the exponent used to scale the ACK delay field
// of ACK frames in the IETF frame format.
const AckDelayExponent = 3

// MaxAckTimestamps is the maximum number of receive timestamps carried
// in an ACK frame of the legacy frame format.
const MaxAckTimestamps = 255

// A PacketType is the type of a long header packet
type PacketType uint8

const (
	// PacketTypeInitial is the packet type of an Initial packet
	PacketTypeInitial PacketType = 1 + iota
	// PacketTypeZeroRTT is the packet type of a 0-RTT packet
	PacketTypeZeroRTT
	// PacketTypeHandshake is the packet type of a Handshake packet
	PacketTypeHandshake
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeInitial:
		return "Initial"
	case PacketTypeZeroRTT:
		return "0-RTT Protected"
	case PacketTypeHandshake:
		return "Handshake"
	default:
		return fmt.Sprintf("unknown packet type: %d", uint8(t))
	}
}
