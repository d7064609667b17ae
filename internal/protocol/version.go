package protocol

import (
	"fmt"
)

// VersionNumber is a version number as int
type VersionNumber int

// gquicVersion0 is the "base" for legacy versions
// e.g. version 39 is gquicVersion0 + 0x39
const gquicVersion0 = 0x51303300

// The version numbers, making grepping easier
const (
	Version39 VersionNumber = gquicVersion0 + 0x39
	Version42 VersionNumber = gquicVersion0 + 0x42
	Version43 VersionNumber = gquicVersion0 + 0x43
	// Version99 is the IETF frame format version
	Version99 VersionNumber = 99
	// VersionWhatever is for when the version doesn't matter
	VersionWhatever VersionNumber = 0
	// VersionUnknown is the value before version negotiation completed
	VersionUnknown VersionNumber = -1
)

// SupportedVersions lists the versions that the server supports,
// in sorted descending order of preference.
var SupportedVersions = []VersionNumber{
	Version99,
	Version43,
	Version42,
	Version39,
}

// UsesIETFFrameFormat says if this version uses the IETF frame format,
// as opposed to the legacy one.
func (vn VersionNumber) UsesIETFFrameFormat() bool {
	return vn == Version99
}

// IsLegacy says if this is one of the legacy versions (≤ 43)
func (vn VersionNumber) IsLegacy() bool {
	return vn >= gquicVersion0 && vn <= gquicVersion0+0x43
}

func (vn VersionNumber) String() string {
	switch vn {
	case VersionWhatever:
		return "whatever"
	case VersionUnknown:
		return "unknown"
	case Version99:
		return "QUIC 99"
	default:
		if vn.IsLegacy() {
			return fmt.Sprintf("gQUIC %x", uint32(vn-gquicVersion0))
		}
		return fmt.Sprintf("%d", vn)
	}
}

// ToVersionLabel converts a version number to the 4-byte label that
// appears on the wire. Legacy versions use the tag form (e.g. Q043),
// the IETF version is encoded as a plain number.
func (vn VersionNumber) ToVersionLabel() uint32 {
	if vn.IsLegacy() {
		x := uint32(vn) - gquicVersion0
		digit1 := x % 0x10
		digit2 := x / 0x10
		return 'Q'<<24 + '0'<<16 + ('0'+digit2)<<8 + ('0' + digit1)
	}
	return uint32(vn)
}

// VersionLabelToNumber converts a wire version label to the corresponding
// version number.
func VersionLabelToNumber(label uint32) VersionNumber {
	if label>>24 == 'Q' && (label>>16)&0xff == '0' {
		digit2 := (label >> 8 & 0xff) - '0'
		digit1 := (label & 0xff) - '0'
		return VersionNumber(gquicVersion0 + 0x10*int(digit2) + int(digit1))
	}
	return VersionNumber(label)
}

// IsSupportedVersion returns true if the server supports this version
func IsSupportedVersion(supported []VersionNumber, v VersionNumber) bool {
	for _, t := range supported {
		if t == v {
			return true
		}
	}
	return false
}

// ChooseSupportedVersion finds the best version in the overlap of ours and theirs,
// in our preference order. The bool tells if there was an overlap.
func ChooseSupportedVersion(ours, theirs []VersionNumber) (VersionNumber, bool) {
	for _, ourVer := range ours {
		for _, theirVer := range theirs {
			if ourVer == theirVer {
				return ourVer, true
			}
		}
	}
	return 0, false
}
