package protocol

// GetPacketNumberLength returns the smallest length in {1, 2, 4, 6} bytes
// that can hold the given packet number. It is used by the legacy encoding.
func GetPacketNumberLength(packetNumber PacketNumber) PacketNumberLen {
	if packetNumber < (1 << (uint8(PacketNumberLen1) * 8)) {
		return PacketNumberLen1
	}
	if packetNumber < (1 << (uint8(PacketNumberLen2) * 8)) {
		return PacketNumberLen2
	}
	if packetNumber < (1 << (uint8(PacketNumberLen4) * 8)) {
		return PacketNumberLen4
	}
	return PacketNumberLen6
}

// InferPacketNumber reconstructs a full packet number from its truncated wire
// form. The truncated value might have wrapped to the next epoch, or reverse
// wrapped to the previous epoch, or remained in the same epoch. Select the
// value closest to the next expected packet number, largest+1.
// On an exact tie the lower candidate wins. This tie-break is a wire
// compatibility requirement and must not be changed.
func InferPacketNumber(packetNumberLength PacketNumberLen, largest PacketNumber, wirePacketNumber PacketNumber) PacketNumber {
	epochDelta := PacketNumber(1) << (uint8(packetNumberLength) * 8)
	epoch := largest & ^(epochDelta - 1)
	prevEpochBegin := epoch - epochDelta
	nextEpochBegin := epoch + epochDelta
	return closestTo(
		largest+1,
		epoch+wirePacketNumber,
		closestTo(largest+1, prevEpochBegin+wirePacketNumber, nextEpochBegin+wirePacketNumber),
	)
}

func closestTo(target, a, b PacketNumber) PacketNumber {
	da := delta(target, a)
	db := delta(target, b)
	if da < db {
		return a
	}
	if db < da {
		return b
	}
	// exact tie: the lower candidate wins
	if a < b {
		return a
	}
	return b
}

func delta(a, b PacketNumber) PacketNumber {
	if a < b {
		return b - a
	}
	return a - b
}
