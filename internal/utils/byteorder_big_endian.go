package utils

import (
	"bytes"
	"io"
	"math"
)

// BigEndian is the big-endian implementation of ByteOrder.
// All multi-byte integer fields are network byte order.
var BigEndian ByteOrder = bigEndian{}

type bigEndian struct{}

var _ ByteOrder = &bigEndian{}

// ReadUintN reads N bytes
func (bigEndian) ReadUintN(b io.ByteReader, length uint8) (uint64, error) {
	var res uint64
	for i := uint8(0); i < length; i++ {
		bt, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		res ^= uint64(bt) << ((length - 1 - i) * 8)
	}
	return res, nil
}

// ReadUint64 reads a uint64
func (l bigEndian) ReadUint64(b io.ByteReader) (uint64, error) {
	return l.ReadUintN(b, 8)
}

// ReadUint48 reads a uint48
func (l bigEndian) ReadUint48(b io.ByteReader) (uint64, error) {
	return l.ReadUintN(b, 6)
}

// ReadUint32 reads a uint32
func (l bigEndian) ReadUint32(b io.ByteReader) (uint32, error) {
	i, err := l.ReadUintN(b, 4)
	return uint32(i), err
}

// ReadUint16 reads a uint16
func (l bigEndian) ReadUint16(b io.ByteReader) (uint16, error) {
	i, err := l.ReadUintN(b, 2)
	return uint16(i), err
}

// WriteUintN writes N bytes of i
func (bigEndian) WriteUintN(b *bytes.Buffer, length uint8, i uint64) {
	for j := length; j > 0; j-- {
		b.WriteByte(uint8(i >> ((j - 1) * 8)))
	}
}

// WriteUint64 writes a uint64
func (l bigEndian) WriteUint64(b *bytes.Buffer, i uint64) {
	l.WriteUintN(b, 8, i)
}

// WriteUint48 writes a uint48
func (l bigEndian) WriteUint48(b *bytes.Buffer, i uint64) {
	l.WriteUintN(b, 6, i&(1<<48-1))
}

// WriteUint32 writes a uint32
func (l bigEndian) WriteUint32(b *bytes.Buffer, i uint32) {
	l.WriteUintN(b, 4, uint64(i))
}

// WriteUint16 writes a uint16
func (l bigEndian) WriteUint16(b *bytes.Buffer, i uint16) {
	l.WriteUintN(b, 2, uint64(i))
}

const (
	uFloat16ExponentBits          = 5
	uFloat16MaxExponent           = (1 << uFloat16ExponentBits) - 2 // 30
	uFloat16MantissaBits          = 16 - uFloat16ExponentBits       // 11
	uFloat16MantissaEffectiveBits = uFloat16MantissaBits + 1        // 12
)

// UFloat16MaxValue is the maximum value that can be encoded as a UFloat16
const UFloat16MaxValue = ((uint64(1) << uFloat16MantissaEffectiveBits) - 1) << uFloat16MaxExponent // 0x3FFC0000000

// ReadUfloat16 reads a UFloat16
func (l bigEndian) ReadUfloat16(b io.ByteReader) (uint64, error) {
	val16, err := l.ReadUint16(b)
	if err != nil {
		return 0, err
	}
	res := uint64(val16)
	if res >= (1 << uFloat16MantissaEffectiveBits) {
		// extract the exponent and unhide the implicit high bit
		exponent := val16>>uFloat16MantissaBits - 1
		res -= uint64(exponent) << uFloat16MantissaBits
		res <<= exponent
	}
	return res, nil
}

// WriteUfloat16 writes a UFloat16
func (l bigEndian) WriteUfloat16(b *bytes.Buffer, value uint64) {
	var result uint16
	if value < (uint64(1) << uFloat16MantissaEffectiveBits) {
		// fast path: either the value is denormalized, or has exponent zero
		result = uint16(value)
	} else if value >= UFloat16MaxValue {
		result = math.MaxUint16
	} else {
		exponent := uint16(0)
		for offset := uint16(16); offset > 0; offset /= 2 {
			// the exponent is the position of the highest set bit beyond the mantissa
			if value >= (uint64(1) << (uFloat16MantissaBits + offset)) {
				exponent += offset
				value >>= offset
			}
		}
		result = uint16(value) + exponent<<uFloat16MantissaBits
	}
	l.WriteUint16(b, result)
}
