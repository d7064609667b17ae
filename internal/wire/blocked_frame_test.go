package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BlockedFrame", func() {
	Context("in the legacy frame format", func() {
		It("is written as a BLOCKED frame for stream 0, dropping the offset", func() {
			frame := &BlockedFrame{Offset: 0x1337}
			b := &bytes.Buffer{}
			Expect(frame.Write(b, versionLegacy)).To(Succeed())
			Expect(b.Bytes()).To(Equal([]byte{0x05, 0x0, 0x0, 0x0, 0x0}))
			Expect(frame.Length(versionLegacy)).To(Equal(protocol.ByteCount(b.Len())))
		})

		It("is parsed back from a BLOCKED frame for stream 0", func() {
			b := bytes.NewReader([]byte{0x05, 0x0, 0x0, 0x0, 0x0})
			frame, err := parseBlockedFrameLegacy(b, versionLegacy)
			Expect(err).ToNot(HaveOccurred())
			Expect(frame).To(Equal(&BlockedFrame{}))
		})
	})

	Context("in the IETF frame format", func() {
		It("round-trips", func() {
			frame := &BlockedFrame{Offset: 0x1337}
			b := &bytes.Buffer{}
			Expect(frame.Write(b, versionIETF)).To(Succeed())
			Expect(b.Bytes()[0]).To(Equal(byte(0x14)))
			parsed, err := ParseBlockedFrame(bytes.NewReader(b.Bytes()), versionIETF)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(frame))
			Expect(frame.Length(versionIETF)).To(Equal(protocol.ByteCount(b.Len())))
		})
	})
})

var _ = Describe("StreamBlockedFrame", func() {
	Context("in the legacy frame format", func() {
		It("is written as a BLOCKED frame, dropping the offset", func() {
			frame := &StreamBlockedFrame{StreamID: 0x1337, Offset: 0x42}
			b := &bytes.Buffer{}
			Expect(frame.Write(b, versionLegacy)).To(Succeed())
			Expect(b.Bytes()).To(Equal([]byte{0x05, 0x0, 0x0, 0x13, 0x37}))
			Expect(frame.Length(versionLegacy)).To(Equal(protocol.ByteCount(b.Len())))
		})

		It("is parsed back from a BLOCKED frame", func() {
			b := bytes.NewReader([]byte{0x05, 0x0, 0x0, 0x13, 0x37})
			frame, err := parseBlockedFrameLegacy(b, versionLegacy)
			Expect(err).ToNot(HaveOccurred())
			Expect(frame).To(Equal(&StreamBlockedFrame{StreamID: 0x1337}))
		})

		It("errors on EOFs", func() {
			data := []byte{0x05, 0x0, 0x0, 0x13, 0x37}
			for i := range data {
				_, err := parseBlockedFrameLegacy(bytes.NewReader(data[:i]), versionLegacy)
				Expect(err).To(HaveOccurred())
			}
		})
	})

	Context("in the IETF frame format", func() {
		It("round-trips", func() {
			frame := &StreamBlockedFrame{StreamID: 0xdecafbad, Offset: 0x1337}
			b := &bytes.Buffer{}
			Expect(frame.Write(b, versionIETF)).To(Succeed())
			Expect(b.Bytes()[0]).To(Equal(byte(0x15)))
			parsed, err := ParseStreamBlockedFrame(bytes.NewReader(b.Bytes()), versionIETF)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(frame))
			Expect(frame.Length(versionIETF)).To(Equal(protocol.ByteCount(b.Len())))
		})
	})
})
