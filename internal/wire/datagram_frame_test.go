package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DatagramFrame", func() {
	It("round-trips with the data length present", func() {
		frame := &DatagramFrame{Data: []byte("foobar"), DataLenPresent: true}
		b := &bytes.Buffer{}
		Expect(frame.Write(b, versionIETF)).To(Succeed())
		Expect(b.Bytes()[0]).To(Equal(byte(0x31)))
		parsed, err := ParseDatagramFrame(bytes.NewReader(b.Bytes()), versionIETF)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(Equal(frame))
		Expect(frame.Length(versionIETF)).To(Equal(protocol.ByteCount(b.Len())))
	})

	It("reads until the end of the packet, when no data length is present", func() {
		data := append([]byte{0x30}, []byte("foobar")...)
		frame, err := ParseDatagramFrame(bytes.NewReader(data), versionIETF)
		Expect(err).ToNot(HaveOccurred())
		Expect(frame.DataLenPresent).To(BeFalse())
		Expect(frame.Data).To(Equal([]byte("foobar")))
	})

	It("errors when the data is cut off", func() {
		data := append([]byte{0x31}, encodeVarInt(10)...)
		data = append(data, []byte("foo")...)
		_, err := ParseDatagramFrame(bytes.NewReader(data), versionIETF)
		Expect(err).To(HaveOccurred())
	})

	It("refuses to write in the legacy frame format", func() {
		frame := &DatagramFrame{Data: []byte("foo")}
		Expect(frame.Write(&bytes.Buffer{}, versionLegacy)).To(HaveOccurred())
	})
})
