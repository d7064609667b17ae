package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CryptoFrame", func() {
	It("parses a sample frame", func() {
		data := append([]byte{0x06}, encodeVarInt(0x1337)...) // offset
		data = append(data, encodeVarInt(6)...)               // data length
		data = append(data, []byte("foobar")...)
		b := bytes.NewReader(data)
		frame, err := ParseCryptoFrame(b, versionIETF)
		Expect(err).ToNot(HaveOccurred())
		Expect(frame.Offset).To(Equal(protocol.ByteCount(0x1337)))
		Expect(frame.Data).To(Equal([]byte("foobar")))
		Expect(b.Len()).To(BeZero())
	})

	It("errors when the data is cut off", func() {
		data := append([]byte{0x06}, encodeVarInt(0x1337)...)
		data = append(data, encodeVarInt(6)...)
		data = append(data, []byte("foo")...)
		_, err := ParseCryptoFrame(bytes.NewReader(data), versionIETF)
		Expect(err).To(HaveOccurred())
	})

	It("round-trips", func() {
		frame := &CryptoFrame{Offset: 0x123456, Data: []byte("lorem ipsum")}
		b := &bytes.Buffer{}
		Expect(frame.Write(b, versionIETF)).To(Succeed())
		parsed, err := ParseCryptoFrame(bytes.NewReader(b.Bytes()), versionIETF)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(Equal(frame))
		Expect(frame.Length(versionIETF)).To(Equal(protocol.ByteCount(b.Len())))
	})

	It("refuses to write in the legacy frame format", func() {
		frame := &CryptoFrame{Data: []byte("foo")}
		Expect(frame.Write(&bytes.Buffer{}, versionLegacy)).To(HaveOccurred())
	})
})
