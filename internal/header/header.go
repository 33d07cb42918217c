// Package header adds and strips a fixed text header at the start of file content.
package header

import (
	"bytes"
	"fmt"

	"github.com/temirov/codeheader/internal/types"
)

const errorUnsupportedActionFormat = "unsupported header action %q"

// ByteOrderMark is the UTF-8 encoding of U+FEFF.
var ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// TrimByteOrderMark returns content without a leading UTF-8 byte order mark.
func TrimByteOrderMark(content []byte) []byte {
	return bytes.TrimPrefix(content, ByteOrderMark)
}

// splitByteOrderMark separates a leading byte order mark from the rest of content.
func splitByteOrderMark(content []byte) ([]byte, []byte) {
	if bytes.HasPrefix(content, ByteOrderMark) {
		return content[:len(ByteOrderMark)], content[len(ByteOrderMark):]
	}
	return nil, content
}

// Add returns content prefixed with header. A byte order mark on content stays in front of the header.
func Add(header, content []byte) []byte {
	header = TrimByteOrderMark(header)
	byteOrderMark, body := splitByteOrderMark(content)
	result := make([]byte, 0, len(byteOrderMark)+len(header)+len(body))
	result = append(result, byteOrderMark...)
	result = append(result, header...)
	return append(result, body...)
}

// Remove strips header from the start of content, looking past a leading byte order mark,
// which is kept. The second result is false, and content is returned unchanged, when
// content does not start with header.
func Remove(header, content []byte) ([]byte, bool) {
	header = TrimByteOrderMark(header)
	byteOrderMark, body := splitByteOrderMark(content)
	if !bytes.HasPrefix(body, header) {
		return content, false
	}
	if len(byteOrderMark) == 0 {
		return body[len(header):], true
	}
	result := make([]byte, 0, len(byteOrderMark)+len(body)-len(header))
	result = append(result, byteOrderMark...)
	return append(result, body[len(header):]...), true
}

// Apply runs action against content and reports the resulting outcome.
func Apply(action types.Action, header, content []byte) ([]byte, types.Outcome, error) {
	switch action {
	case types.ActionAdd:
		return Add(header, content), types.OutcomeAdded, nil
	case types.ActionRemove:
		stripped, found := Remove(header, content)
		if !found {
			return content, types.OutcomeHeaderMissing, nil
		}
		return stripped, types.OutcomeRemoved, nil
	default:
		return nil, "", fmt.Errorf(errorUnsupportedActionFormat, action)
	}
}
