package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/utils"
)

// ComposeVersionNegotiation composes a version negotiation packet.
// It is long-header shaped, with version 0 and no packet number, followed by
// the list of supported version labels.
func ComposeVersionNegotiation(destConnID protocol.ConnectionID, versions []protocol.VersionNumber) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 1+4+1+destConnID.Len()+4*len(versions)))
	buf.WriteByte(0x80)
	utils.BigEndian.WriteUint32(buf, 0) // version 0 marks the packet as a version negotiation packet
	buf.WriteByte(uint8(destConnID.Len()) << 4)
	buf.Write(destConnID.Bytes())
	for _, v := range versions {
		utils.BigEndian.WriteUint32(buf, v.ToVersionLabel())
	}
	return buf.Bytes()
}
