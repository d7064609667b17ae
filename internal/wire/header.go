package wire

import (
	"bytes"
	"errors"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
)

// ErrUnsupportedVersion is returned when parsing a long header of a version
// this implementation doesn't know. The invariant part of the header (the
// connection IDs) is parsed nevertheless, so that the caller can answer with
// a version negotiation packet.
var ErrUnsupportedVersion = errors.New("unsupported version")

// publicResetTypeByte marks a legacy public reset packet.
// It has neither the long header bit (0x80) nor the fixed bit (0x40) set.
const publicResetTypeByte = 0x0a

// The Header of a QUIC packet.
//
// Long header:
//
//	0x80|type | version label (4) | conn ID lengths | dest conn ID (0/8) |
//	src conn ID (0/8) | packet number (4) | [diversification nonce (32)]
//
// Short header:
//
//	0x40|pn length bits | dest conn ID (0/8) | packet number (1/2/4)
//
// A long header with version 0 is a version negotiation packet, it carries a
// list of supported version labels instead of a packet number.
type Header struct {
	IsLongHeader bool
	Type         protocol.PacketType

	Version          protocol.VersionNumber
	DestConnectionID protocol.ConnectionID
	SrcConnectionID  protocol.ConnectionID

	// After parsing, PacketNumber holds the truncated wire value.
	// The packet framer reconstructs the full value.
	PacketNumber    protocol.PacketNumber
	PacketNumberLen protocol.PacketNumberLen

	// only set for server-sent long headers of type 0-RTT
	DiversificationNonce []byte

	IsVersionNegotiation bool
	SupportedVersions    []protocol.VersionNumber

	IsPublicReset bool

	parsedLen protocol.ByteCount
}

// IsLongHeaderPacket says if a packet is a long header packet
func IsLongHeaderPacket(firstByte byte) bool {
	return firstByte&0x80 > 0
}

// IsVersionNegotiationPacket says if this is a version negotiation packet
func IsVersionNegotiationPacket(b []byte) bool {
	if len(b) < 5 {
		return false
	}
	return b[0]&0x80 > 0 && b[1] == 0 && b[2] == 0 && b[3] == 0 && b[4] == 0
}

// ParseHeader parses a packet header.
// sentBy is the perspective of the peer that sent the packet. It determines
// whether a short header carries a destination connection ID: clients always
// include it, servers omit it.
// For long headers of an unknown version, the connection IDs are parsed and
// ErrUnsupportedVersion is returned together with the partial header.
func ParseHeader(r *bytes.Reader, sentBy protocol.Perspective) (*Header, error) {
	startLen := r.Len()
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	h := &Header{}
	if typeByte&0x80 > 0 {
		h.IsLongHeader = true
		err = h.parseLongHeader(r, sentBy, typeByte)
	} else {
		err = h.parseShortHeader(r, sentBy, typeByte)
	}
	if err != nil {
		return h, err
	}
	h.parsedLen = protocol.ByteCount(startLen - r.Len())
	return h, nil
}

func (h *Header) parseLongHeader(r *bytes.Reader, sentBy protocol.Perspective, typeByte byte) error {
	label, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return err
	}

	if label == 0 { // version negotiation packet
		return h.parseVersionNegotiation(r)
	}
	h.Version = protocol.VersionLabelToNumber(label)

	connIDLens, err := r.ReadByte()
	if err != nil {
		return err
	}
	destConnIDLen := int(connIDLens >> 4)
	srcConnIDLen := int(connIDLens & 0xf)
	if (destConnIDLen != 0 && destConnIDLen != protocol.ConnectionIDLen) ||
		(srcConnIDLen != 0 && srcConnIDLen != protocol.ConnectionIDLen) {
		return qerr.Error(qerr.InvalidPacketHeader, "invalid connection ID length")
	}
	if h.DestConnectionID, err = protocol.ReadConnectionID(r, destConnIDLen); err != nil {
		return err
	}
	if h.SrcConnectionID, err = protocol.ReadConnectionID(r, srcConnIDLen); err != nil {
		return err
	}

	// we don't know how to interpret the rest of the bytes of an unsupported version
	if !protocol.IsSupportedVersion(protocol.SupportedVersions, h.Version) {
		return ErrUnsupportedVersion
	}

	switch protocol.PacketType(typeByte & 0x7f) {
	case protocol.PacketTypeInitial:
		h.Type = protocol.PacketTypeInitial
	case protocol.PacketTypeZeroRTT:
		h.Type = protocol.PacketTypeZeroRTT
	case protocol.PacketTypeHandshake:
		h.Type = protocol.PacketTypeHandshake
	default:
		return qerr.Error(qerr.InvalidPacketHeader, "invalid long header type")
	}

	pn, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return err
	}
	h.PacketNumber = protocol.PacketNumber(pn)
	h.PacketNumberLen = protocol.PacketNumberLen4

	// the diversification nonce is only sent by the server, on 0-RTT packets
	if h.Type == protocol.PacketTypeZeroRTT && sentBy == protocol.PerspectiveServer {
		h.DiversificationNonce = make([]byte, protocol.DiversificationNonceLen)
		if _, err := io.ReadFull(r, h.DiversificationNonce); err != nil {
			if err == io.ErrUnexpectedEOF {
				return io.EOF
			}
			return err
		}
	}
	return nil
}

func (h *Header) parseVersionNegotiation(r *bytes.Reader) error {
	h.IsVersionNegotiation = true
	connIDLens, err := r.ReadByte()
	if err != nil {
		return err
	}
	destConnIDLen := int(connIDLens >> 4)
	srcConnIDLen := int(connIDLens & 0xf)
	if h.DestConnectionID, err = protocol.ReadConnectionID(r, destConnIDLen); err != nil {
		return err
	}
	if h.SrcConnectionID, err = protocol.ReadConnectionID(r, srcConnIDLen); err != nil {
		return err
	}
	if r.Len() == 0 {
		return qerr.Error(qerr.InvalidVersionNegotiationPacket, "empty version list")
	}
	if r.Len()%4 != 0 {
		return qerr.Error(qerr.InvalidVersionNegotiationPacket, "version list has odd length")
	}
	h.SupportedVersions = make([]protocol.VersionNumber, 0, r.Len()/4)
	for r.Len() > 0 {
		label, err := utils.BigEndian.ReadUint32(r)
		if err != nil {
			return err
		}
		h.SupportedVersions = append(h.SupportedVersions, protocol.VersionLabelToNumber(label))
	}
	return nil
}

func (h *Header) parseShortHeader(r *bytes.Reader, sentBy protocol.Perspective, typeByte byte) error {
	if typeByte&0x40 == 0 {
		if typeByte == publicResetTypeByte {
			return h.parsePublicReset(r)
		}
		return qerr.Error(qerr.InvalidPacketHeader, "invalid short header type byte")
	}

	switch typeByte & 0x3 {
	case 0x0:
		h.PacketNumberLen = protocol.PacketNumberLen1
	case 0x1:
		h.PacketNumberLen = protocol.PacketNumberLen2
	case 0x2:
		h.PacketNumberLen = protocol.PacketNumberLen4
	default:
		return qerr.Error(qerr.InvalidPacketHeader, "invalid packet number length")
	}

	// clients always include the connection ID, servers never do
	if sentBy == protocol.PerspectiveClient {
		var err error
		if h.DestConnectionID, err = protocol.ReadConnectionID(r, protocol.ConnectionIDLen); err != nil {
			return err
		}
	}

	pn, err := utils.BigEndian.ReadUintN(r, uint8(h.PacketNumberLen))
	if err != nil {
		return err
	}
	h.PacketNumber = protocol.PacketNumber(pn)
	return nil
}

func (h *Header) parsePublicReset(r *bytes.Reader) error {
	h.IsPublicReset = true
	var err error
	h.DestConnectionID, err = protocol.ReadConnectionID(r, protocol.ConnectionIDLen)
	return err
}

// Write writes the header.
// sentBy is the perspective of the sender of the packet.
func (h *Header) Write(b *bytes.Buffer, sentBy protocol.Perspective, version protocol.VersionNumber) error {
	if h.IsLongHeader {
		return h.writeLongHeader(b, sentBy, version)
	}
	return h.writeShortHeader(b, sentBy, version)
}

func (h *Header) writeLongHeader(b *bytes.Buffer, sentBy protocol.Perspective, version protocol.VersionNumber) error {
	if h.Type != protocol.PacketTypeInitial && h.Type != protocol.PacketTypeZeroRTT && h.Type != protocol.PacketTypeHandshake {
		return errors.New("invalid long header type")
	}
	if err := validateConnectionIDLen(h.DestConnectionID); err != nil {
		return err
	}
	if err := validateConnectionIDLen(h.SrcConnectionID); err != nil {
		return err
	}

	b.WriteByte(0x80 | uint8(h.Type))
	utils.BigEndian.WriteUint32(b, version.ToVersionLabel())
	b.WriteByte(uint8(h.DestConnectionID.Len())<<4 | uint8(h.SrcConnectionID.Len()))
	b.Write(h.DestConnectionID.Bytes())
	b.Write(h.SrcConnectionID.Bytes())
	utils.BigEndian.WriteUint32(b, uint32(h.PacketNumber))

	if h.DiversificationNonce != nil {
		if h.Type != protocol.PacketTypeZeroRTT || sentBy != protocol.PerspectiveServer {
			return errors.New("diversification nonce is only sent on server-sent 0-RTT packets")
		}
		if len(h.DiversificationNonce) != protocol.DiversificationNonceLen {
			return errors.New("invalid diversification nonce length")
		}
		b.Write(h.DiversificationNonce)
	}
	return nil
}

func (h *Header) writeShortHeader(b *bytes.Buffer, sentBy protocol.Perspective, version protocol.VersionNumber) error {
	typeByte := uint8(0x40)
	switch h.PacketNumberLen {
	case protocol.PacketNumberLen1:
	case protocol.PacketNumberLen2:
		typeByte |= 0x1
	case protocol.PacketNumberLen4:
		typeByte |= 0x2
	default:
		return errors.New("invalid packet number length")
	}
	b.WriteByte(typeByte)

	if sentBy == protocol.PerspectiveClient {
		if h.DestConnectionID.Len() != protocol.ConnectionIDLen {
			return errors.New("clients must send a destination connection ID")
		}
		b.Write(h.DestConnectionID.Bytes())
	}

	utils.BigEndian.WriteUintN(b, uint8(h.PacketNumberLen), uint64(h.PacketNumber))
	return nil
}

func validateConnectionIDLen(connID protocol.ConnectionID) error {
	if l := connID.Len(); l != 0 && l != protocol.ConnectionIDLen {
		return errors.New("invalid connection ID length")
	}
	return nil
}

// GetLength determines the length of the serialized header
func (h *Header) GetLength(sentBy protocol.Perspective) (protocol.ByteCount, error) {
	if h.IsLongHeader {
		length := 1 + 4 + 1 + protocol.ByteCount(h.DestConnectionID.Len()+h.SrcConnectionID.Len()) + 4
		if h.DiversificationNonce != nil {
			length += protocol.DiversificationNonceLen
		}
		return length, nil
	}

	length := protocol.ByteCount(1)
	if sentBy == protocol.PerspectiveClient {
		length += protocol.ConnectionIDLen
	}
	if h.PacketNumberLen != protocol.PacketNumberLen1 && h.PacketNumberLen != protocol.PacketNumberLen2 && h.PacketNumberLen != protocol.PacketNumberLen4 {
		return 0, errors.New("invalid packet number length")
	}
	length += protocol.ByteCount(h.PacketNumberLen)
	return length, nil
}

// ParsedLen returns the number of bytes that were consumed when parsing the header
func (h *Header) ParsedLen() protocol.ByteCount {
	return h.parsedLen
}
