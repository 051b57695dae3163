package wire

// PaddedString encodes s as a null-terminated, zero-padded byte string whose
// total length (including terminator and padding) is a multiple of 8, and at
// least minLen bytes. This mirrors caproto's padded_string_payload helper,
// used by HostNameRequest, ClientNameRequest and the like.
func PaddedString(s string, minLen int) []byte {
	n := len(s) + 1 // null terminator
	if n < minLen {
		n = minLen
	}
	out := make([]byte, n)
	copy(out, s)
	return AppendPadding(out, len(out))
}

// UnpaddedString trims the trailing NUL bytes (and any padding before them)
// from a fixed-size field produced by PaddedString.
func UnpaddedString(b []byte) string {
	i := 0
	for i < len(b) && b[i] != 0 {
		i++
	}
	return string(b[:i])
}

// DataPayload pads a raw DBR value payload out to a multiple of 8 bytes, the
// counterpart of caproto's data_payload helper used by every command whose
// payload is a value buffer (ReadNotifyResponse, WriteNotify, EventAdd, ...).
func DataPayload(raw []byte) []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	return AppendPadding(out, len(out))
}
