package quicvarint

import (
	"bytes"
	"io"
)

// Writer is the interface varints are written to.
type Writer interface {
	io.ByteWriter
	io.Writer
}

var _ Writer = &bytes.Buffer{}
