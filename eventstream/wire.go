package eventstream

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"time"
)

// preludeLen is the fixed size, in bytes, of totalLen + headerLen + the
// prelude's own CRC.
const preludeLen = 12

// crcLen is the size, in bytes, of a single CRC-32 checksum field.
const crcLen = 4

func encodeHeaders(h Headers) ([]byte, error) {
	var buf []byte
	for _, hdr := range h {
		if len(hdr.Name) > 255 {
			return nil, fmt.Errorf("eventstream: header name %q exceeds 255 bytes", hdr.Name)
		}

		buf = append(buf, byte(len(hdr.Name)))
		buf = append(buf, hdr.Name...)

		switch hdr.Value.typ {
		case HeaderTypeBoolTrue:
			buf = append(buf, byte(HeaderTypeBoolTrue))
		case HeaderTypeBoolFalse:
			buf = append(buf, byte(HeaderTypeBoolFalse))
		case HeaderTypeByte:
			buf = append(buf, byte(HeaderTypeByte), byte(hdr.Value.intVal))
		case HeaderTypeShort:
			var tmp [2]byte
			binary.BigEndian.PutUint16(tmp[:], uint16(hdr.Value.intVal))
			buf = append(buf, byte(HeaderTypeShort))
			buf = append(buf, tmp[:]...)
		case HeaderTypeInteger:
			var tmp [4]byte
			binary.BigEndian.PutUint32(tmp[:], uint32(hdr.Value.intVal))
			buf = append(buf, byte(HeaderTypeInteger))
			buf = append(buf, tmp[:]...)
		case HeaderTypeLong:
			var tmp [8]byte
			binary.BigEndian.PutUint64(tmp[:], uint64(hdr.Value.intVal))
			buf = append(buf, byte(HeaderTypeLong))
			buf = append(buf, tmp[:]...)
		case HeaderTypeBytes:
			if len(hdr.Value.byteVal) > 0xffff {
				return nil, fmt.Errorf("eventstream: header %q bytes value exceeds 65535 bytes", hdr.Name)
			}
			var tmp [2]byte
			binary.BigEndian.PutUint16(tmp[:], uint16(len(hdr.Value.byteVal)))
			buf = append(buf, byte(HeaderTypeBytes))
			buf = append(buf, tmp[:]...)
			buf = append(buf, hdr.Value.byteVal...)
		case HeaderTypeString:
			if len(hdr.Value.strVal) > 0xffff {
				return nil, fmt.Errorf("eventstream: header %q string value exceeds 65535 bytes", hdr.Name)
			}
			var tmp [2]byte
			binary.BigEndian.PutUint16(tmp[:], uint16(len(hdr.Value.strVal)))
			buf = append(buf, byte(HeaderTypeString))
			buf = append(buf, tmp[:]...)
			buf = append(buf, hdr.Value.strVal...)
		case HeaderTypeTimestamp:
			var tmp [8]byte
			binary.BigEndian.PutUint64(tmp[:], uint64(hdr.Value.tsVal.UnixMilli()))
			buf = append(buf, byte(HeaderTypeTimestamp))
			buf = append(buf, tmp[:]...)
		case HeaderTypeUUID:
			buf = append(buf, byte(HeaderTypeUUID))
			buf = append(buf, hdr.Value.uuidVal[:]...)
		default:
			return nil, fmt.Errorf("eventstream: header %q has invalid type %d", hdr.Name, hdr.Value.typ)
		}
	}
	return buf, nil
}

func decodeHeaders(b []byte) (Headers, error) {
	var hdrs Headers
	for len(b) > 0 {
		nameLen := int(b[0])
		b = b[1:]
		if len(b) < nameLen+1 {
			return nil, fmt.Errorf("eventstream: truncated header name")
		}
		name := string(b[:nameLen])
		b = b[nameLen:]

		typ := HeaderType(b[0])
		b = b[1:]

		var val HeaderValue
		switch typ {
		case HeaderTypeBoolTrue:
			val = BoolHeaderValue(true)
		case HeaderTypeBoolFalse:
			val = BoolHeaderValue(false)
		case HeaderTypeByte:
			if len(b) < 1 {
				return nil, fmt.Errorf("eventstream: truncated byte header %q", name)
			}
			val = ByteHeaderValue(int8(b[0]))
			b = b[1:]
		case HeaderTypeShort:
			if len(b) < 2 {
				return nil, fmt.Errorf("eventstream: truncated short header %q", name)
			}
			val = ShortHeaderValue(int16(binary.BigEndian.Uint16(b)))
			b = b[2:]
		case HeaderTypeInteger:
			if len(b) < 4 {
				return nil, fmt.Errorf("eventstream: truncated integer header %q", name)
			}
			val = IntegerHeaderValue(int32(binary.BigEndian.Uint32(b)))
			b = b[4:]
		case HeaderTypeLong:
			if len(b) < 8 {
				return nil, fmt.Errorf("eventstream: truncated long header %q", name)
			}
			val = LongHeaderValue(int64(binary.BigEndian.Uint64(b)))
			b = b[8:]
		case HeaderTypeBytes:
			if len(b) < 2 {
				return nil, fmt.Errorf("eventstream: truncated bytes header %q", name)
			}
			n := int(binary.BigEndian.Uint16(b))
			b = b[2:]
			if len(b) < n {
				return nil, fmt.Errorf("eventstream: truncated bytes header %q", name)
			}
			v := make([]byte, n)
			copy(v, b[:n])
			val = BytesHeaderValue(v)
			b = b[n:]
		case HeaderTypeString:
			if len(b) < 2 {
				return nil, fmt.Errorf("eventstream: truncated string header %q", name)
			}
			n := int(binary.BigEndian.Uint16(b))
			b = b[2:]
			if len(b) < n {
				return nil, fmt.Errorf("eventstream: truncated string header %q", name)
			}
			val = StringHeaderValue(string(b[:n]))
			b = b[n:]
		case HeaderTypeTimestamp:
			if len(b) < 8 {
				return nil, fmt.Errorf("eventstream: truncated timestamp header %q", name)
			}
			ms := int64(binary.BigEndian.Uint64(b))
			val = TimestampHeaderValue(msToTime(ms))
			b = b[8:]
		case HeaderTypeUUID:
			if len(b) < 16 {
				return nil, fmt.Errorf("eventstream: truncated uuid header %q", name)
			}
			var u [16]byte
			copy(u[:], b[:16])
			val = UUIDHeaderValue(u)
			b = b[16:]
		default:
			return nil, fmt.Errorf("eventstream: header %q has unknown wire type %d", name, typ)
		}

		hdrs = append(hdrs, Header{Name: name, Value: val})
	}
	return hdrs, nil
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ieeeCRC32 computes the CRC-32 over b using the IEEE (Ethernet)
// polynomial 0xEDB88320, matching hash/crc32's default table.
func ieeeCRC32(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}
