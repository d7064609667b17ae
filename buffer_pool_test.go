package quicwire

import (
	"github.com/quic-go/quicwire/internal/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer Pool", func() {
	It("returns empty buffers with the full capacity", func() {
		buf := getPacketBuffer()
		Expect(*buf).To(BeEmpty())
		Expect(*buf).To(HaveCap(int(protocol.MaxReceivePacketSize)))
	})

	It("accepts used buffers back", func() {
		buf := getPacketBuffer()
		*buf = append(*buf, []byte("foobar")...)
		putPacketBuffer(buf)
		Expect(*getPacketBuffer()).To(BeEmpty())
	})

	It("panics when a buffer of the wrong capacity is returned", func() {
		b := make([]byte, 10)
		Expect(func() { putPacketBuffer(&b) }).To(Panic())
	})
})
