// Package logging defines a logging interface for packet and frame events.
package logging

import (
	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/wire"
)

type (
	// A ByteCount in QUIC
	ByteCount = protocol.ByteCount
	// A ConnectionID is a QUIC Connection ID
	ConnectionID = protocol.ConnectionID
	// A PacketNumber is a QUIC packet number
	PacketNumber = protocol.PacketNumber
	// A VersionNumber is a QUIC version number
	VersionNumber = protocol.VersionNumber
	// A Header is a QUIC packet header
	Header = wire.Header
	// A Frame is a QUIC frame
	Frame = wire.Frame
)

// PacketDropReason is the reason a packet was dropped
type PacketDropReason uint8

const (
	// PacketDropHeaderParseError: parsing the packet header failed
	PacketDropHeaderParseError PacketDropReason = iota
	// PacketDropPayloadDecryptError: decrypting the packet payload failed
	PacketDropPayloadDecryptError
	// PacketDropFrameParseError: parsing a frame of the payload failed
	PacketDropFrameParseError
)

func (r PacketDropReason) String() string {
	switch r {
	case PacketDropHeaderParseError:
		return "header_parse_error"
	case PacketDropPayloadDecryptError:
		return "payload_decrypt_error"
	case PacketDropFrameParseError:
		return "frame_parse_error"
	default:
		return "unknown"
	}
}

// A Tracer traces packet and frame events.
// Implementations must not retain the header or frame pointers.
type Tracer interface {
	SentPacket(hdr *Header, size ByteCount, frames []Frame)
	ReceivedPacket(hdr *Header, size ByteCount)
	ReceivedFrame(frame Frame)
	ReceivedVersionNegotiationPacket(hdr *Header)
	ReceivedPublicResetPacket(hdr *Header)
	ReceivedStatelessResetPacket(hdr *Header)
	DroppedPacket(reason PacketDropReason, err error)
}
