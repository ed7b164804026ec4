package stego

import "strings"

// DecodeText converts an extracted payload to text, dropping malformed
// UTF-8 sequences instead of failing. Extraction from a corrupted or
// foreign carrier must never crash on decode.
func DecodeText(payload []byte) string {
	return strings.ToValidUTF8(string(payload), "")
}
