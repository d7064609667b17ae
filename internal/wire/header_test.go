package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Header", func() {
	connID := protocol.ConnectionID{0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe, 0x13, 0x37}
	srcConnID := protocol.ConnectionID{0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7, 0x8}

	Context("long headers", func() {
		It("parses a long header", func() {
			data := []byte{0x80 ^ uint8(protocol.PacketTypeHandshake)}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x88) // connection ID lengths
			data = append(data, connID...)
			data = append(data, srcConnID...)
			data = append(data, 0xde, 0xca, 0xfb, 0xad) // packet number
			b := bytes.NewReader(data)
			hdr, err := ParseHeader(b, protocol.PerspectiveClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.IsLongHeader).To(BeTrue())
			Expect(hdr.Type).To(Equal(protocol.PacketTypeHandshake))
			Expect(hdr.Version).To(Equal(protocol.Version43))
			Expect(hdr.DestConnectionID).To(Equal(connID))
			Expect(hdr.SrcConnectionID).To(Equal(srcConnID))
			Expect(hdr.PacketNumber).To(Equal(protocol.PacketNumber(0xdecafbad)))
			Expect(hdr.PacketNumberLen).To(Equal(protocol.PacketNumberLen4))
			Expect(hdr.ParsedLen()).To(Equal(protocol.ByteCount(len(data))))
			Expect(b.Len()).To(BeZero())
		})

		It("parses a long header with empty connection IDs", func() {
			data := []byte{0x80 ^ uint8(protocol.PacketTypeInitial)}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x0) // connection ID lengths
			data = append(data, 0x0, 0x0, 0x0, 0x42)
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.DestConnectionID.Len()).To(BeZero())
			Expect(hdr.SrcConnectionID.Len()).To(BeZero())
			Expect(hdr.PacketNumber).To(Equal(protocol.PacketNumber(0x42)))
		})

		It("rejects connection IDs that are neither 0 nor 8 bytes long", func() {
			data := []byte{0x80 ^ uint8(protocol.PacketTypeInitial)}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x48) // 4-byte destination connection ID
			data = append(data, 0xde, 0xad, 0xbe, 0xef)
			data = append(data, srcConnID...)
			data = append(data, 0x0, 0x0, 0x0, 0x42)
			_, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveClient)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an invalid long header type", func() {
			data := []byte{0x80 ^ 0x1f}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x0)
			data = append(data, 0x0, 0x0, 0x0, 0x42)
			_, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveClient)
			Expect(err).To(HaveOccurred())
		})

		It("parses the connection IDs of an unsupported version", func() {
			data := []byte{0x80 ^ uint8(protocol.PacketTypeInitial)}
			data = append(data, 'Q', '0', '9', '9') // gQUIC 99 doesn't exist
			data = append(data, 0x88)
			data = append(data, connID...)
			data = append(data, srcConnID...)
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveClient)
			Expect(err).To(MatchError(ErrUnsupportedVersion))
			Expect(hdr.DestConnectionID).To(Equal(connID))
			Expect(hdr.SrcConnectionID).To(Equal(srcConnID))
		})

		It("parses the diversification nonce on a server-sent 0-RTT packet", func() {
			nonce := bytes.Repeat([]byte{0x42}, protocol.DiversificationNonceLen)
			data := []byte{0x80 ^ uint8(protocol.PacketTypeZeroRTT)}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x80) // destination connection ID only
			data = append(data, connID...)
			data = append(data, 0x0, 0x0, 0x13, 0x37)
			data = append(data, nonce...)
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.Type).To(Equal(protocol.PacketTypeZeroRTT))
			Expect(hdr.DiversificationNonce).To(Equal(nonce))
		})

		It("doesn't expect a diversification nonce on a client-sent 0-RTT packet", func() {
			data := []byte{0x80 ^ uint8(protocol.PacketTypeZeroRTT)}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x80)
			data = append(data, connID...)
			data = append(data, 0x0, 0x0, 0x13, 0x37)
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.DiversificationNonce).To(BeEmpty())
		})

		It("errors on EOFs", func() {
			data := []byte{0x80 ^ uint8(protocol.PacketTypeHandshake)}
			data = append(data, 'Q', '0', '4', '3')
			data = append(data, 0x88)
			data = append(data, connID...)
			data = append(data, srcConnID...)
			data = append(data, 0xde, 0xca, 0xfb, 0xad)
			for i := range data {
				_, err := ParseHeader(bytes.NewReader(data[:i]), protocol.PerspectiveClient)
				Expect(err).To(HaveOccurred())
			}
		})

		It("writes a long header", func() {
			hdr := &Header{
				IsLongHeader:     true,
				Type:             protocol.PacketTypeInitial,
				DestConnectionID: connID,
				SrcConnectionID:  srcConnID,
				PacketNumber:     0x1337,
			}
			b := &bytes.Buffer{}
			Expect(hdr.Write(b, protocol.PerspectiveClient, versionLegacy)).To(Succeed())
			expected := []byte{0x80 ^ uint8(protocol.PacketTypeInitial)}
			expected = append(expected, 'Q', '0', '4', '3')
			expected = append(expected, 0x88)
			expected = append(expected, connID...)
			expected = append(expected, srcConnID...)
			expected = append(expected, 0x0, 0x0, 0x13, 0x37)
			Expect(b.Bytes()).To(Equal(expected))
			length, err := hdr.GetLength(protocol.PerspectiveClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(length).To(Equal(protocol.ByteCount(b.Len())))
		})

		It("writes the diversification nonce", func() {
			nonce := bytes.Repeat([]byte{0xaa}, protocol.DiversificationNonceLen)
			hdr := &Header{
				IsLongHeader:         true,
				Type:                 protocol.PacketTypeZeroRTT,
				DestConnectionID:     connID,
				PacketNumber:         0x42,
				DiversificationNonce: nonce,
			}
			b := &bytes.Buffer{}
			Expect(hdr.Write(b, protocol.PerspectiveServer, versionLegacy)).To(Succeed())
			Expect(b.Bytes()[len(b.Bytes())-protocol.DiversificationNonceLen:]).To(Equal(nonce))
			length, err := hdr.GetLength(protocol.PerspectiveServer)
			Expect(err).ToNot(HaveOccurred())
			Expect(length).To(Equal(protocol.ByteCount(b.Len())))
		})

		It("refuses to write a diversification nonce on a client-sent packet", func() {
			hdr := &Header{
				IsLongHeader:         true,
				Type:                 protocol.PacketTypeZeroRTT,
				DestConnectionID:     connID,
				DiversificationNonce: bytes.Repeat([]byte{0xaa}, protocol.DiversificationNonceLen),
			}
			Expect(hdr.Write(&bytes.Buffer{}, protocol.PerspectiveClient, versionLegacy)).To(HaveOccurred())
		})

		It("refuses to write an invalid connection ID length", func() {
			hdr := &Header{
				IsLongHeader:     true,
				Type:             protocol.PacketTypeInitial,
				DestConnectionID: protocol.ConnectionID{0x1, 0x2, 0x3},
			}
			Expect(hdr.Write(&bytes.Buffer{}, protocol.PerspectiveClient, versionLegacy)).To(HaveOccurred())
		})
	})

	Context("short headers", func() {
		It("parses a client-sent short header", func() {
			data := []byte{0x40 ^ 0x1}
			data = append(data, connID...)
			data = append(data, 0x13, 0x37) // packet number
			b := bytes.NewReader(data)
			hdr, err := ParseHeader(b, protocol.PerspectiveClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.IsLongHeader).To(BeFalse())
			Expect(hdr.DestConnectionID).To(Equal(connID))
			Expect(hdr.PacketNumber).To(Equal(protocol.PacketNumber(0x1337)))
			Expect(hdr.PacketNumberLen).To(Equal(protocol.PacketNumberLen2))
			Expect(b.Len()).To(BeZero())
		})

		It("parses a server-sent short header, which omits the connection ID", func() {
			data := []byte{0x40 ^ 0x2}
			data = append(data, 0xde, 0xca, 0xfb, 0xad)
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.DestConnectionID.Len()).To(BeZero())
			Expect(hdr.PacketNumber).To(Equal(protocol.PacketNumber(0xdecafbad)))
			Expect(hdr.PacketNumberLen).To(Equal(protocol.PacketNumberLen4))
		})

		It("parses a 1-byte packet number", func() {
			data := []byte{0x40, 0x42}
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.PacketNumber).To(Equal(protocol.PacketNumber(0x42)))
			Expect(hdr.PacketNumberLen).To(Equal(protocol.PacketNumberLen1))
		})

		It("rejects the reserved packet number length", func() {
			data := []byte{0x40 ^ 0x3, 0x42}
			_, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a type byte with neither the long header nor the fixed bit", func() {
			_, err := ParseHeader(bytes.NewReader([]byte{0x15, 0x42}), protocol.PerspectiveServer)
			Expect(err).To(HaveOccurred())
		})

		It("writes a client-sent short header", func() {
			hdr := &Header{
				DestConnectionID: connID,
				PacketNumber:     0x1337,
				PacketNumberLen:  protocol.PacketNumberLen2,
			}
			b := &bytes.Buffer{}
			Expect(hdr.Write(b, protocol.PerspectiveClient, versionLegacy)).To(Succeed())
			expected := []byte{0x40 ^ 0x1}
			expected = append(expected, connID...)
			expected = append(expected, 0x13, 0x37)
			Expect(b.Bytes()).To(Equal(expected))
			length, err := hdr.GetLength(protocol.PerspectiveClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(length).To(Equal(protocol.ByteCount(b.Len())))
		})

		It("writes a server-sent short header without a connection ID", func() {
			hdr := &Header{
				PacketNumber:    0x42,
				PacketNumberLen: protocol.PacketNumberLen1,
			}
			b := &bytes.Buffer{}
			Expect(hdr.Write(b, protocol.PerspectiveServer, versionLegacy)).To(Succeed())
			Expect(b.Bytes()).To(Equal([]byte{0x40, 0x42}))
		})

		It("refuses to write a short header with an invalid packet number length", func() {
			hdr := &Header{
				DestConnectionID: connID,
				PacketNumber:     0x42,
				PacketNumberLen:  3,
			}
			Expect(hdr.Write(&bytes.Buffer{}, protocol.PerspectiveClient, versionLegacy)).To(HaveOccurred())
		})

		It("refuses to write a client-sent short header without a connection ID", func() {
			hdr := &Header{
				PacketNumber:    0x42,
				PacketNumberLen: protocol.PacketNumberLen1,
			}
			Expect(hdr.Write(&bytes.Buffer{}, protocol.PerspectiveClient, versionLegacy)).To(HaveOccurred())
		})
	})

	Context("version negotiation packets", func() {
		It("parses a version negotiation packet", func() {
			versions := []protocol.VersionNumber{protocol.Version39, protocol.Version43, protocol.Version99}
			data := ComposeVersionNegotiation(connID, versions)
			Expect(IsVersionNegotiationPacket(data)).To(BeTrue())
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.IsVersionNegotiation).To(BeTrue())
			Expect(hdr.DestConnectionID).To(Equal(connID))
			Expect(hdr.SupportedVersions).To(Equal(versions))
		})

		It("rejects an empty version list", func() {
			data := ComposeVersionNegotiation(connID, nil)
			_, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a version list that is not a multiple of 4 bytes long", func() {
			data := ComposeVersionNegotiation(connID, []protocol.VersionNumber{protocol.Version43})
			data = append(data, 0x42)
			_, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).To(HaveOccurred())
		})

		It("doesn't mistake a short packet for a version negotiation packet", func() {
			Expect(IsVersionNegotiationPacket([]byte{0x80, 0, 0, 0})).To(BeFalse())
		})
	})

	Context("public reset packets", func() {
		It("parses a public reset packet", func() {
			data := []byte{0x0a}
			data = append(data, connID...)
			hdr, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).ToNot(HaveOccurred())
			Expect(hdr.IsPublicReset).To(BeTrue())
			Expect(hdr.DestConnectionID).To(Equal(connID))
		})

		It("errors on a truncated public reset packet", func() {
			data := []byte{0x0a, 0xde, 0xad}
			_, err := ParseHeader(bytes.NewReader(data), protocol.PerspectiveServer)
			Expect(err).To(HaveOccurred())
		})
	})
})
