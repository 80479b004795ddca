package eventstream

import "encoding/binary"

// Encode renders msg as a single contiguous event-stream frame: prelude
// (totalLen, headerLen, prelude CRC), encoded headers, payload, and a
// trailing CRC over everything that precedes it.
func Encode(msg Message) ([]byte, error) {
	hdrBytes, err := encodeHeaders(msg.Headers)
	if err != nil {
		return nil, err
	}

	totalLen := preludeLen + len(hdrBytes) + len(msg.Payload) + crcLen

	buf := make([]byte, preludeLen, totalLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(totalLen))
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(hdrBytes)))
	binary.BigEndian.PutUint32(buf[8:12], ieeeCRC32(buf[0:8]))

	buf = append(buf, hdrBytes...)
	buf = append(buf, msg.Payload...)

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], ieeeCRC32(buf))
	buf = append(buf, crc[:]...)

	return buf, nil
}
