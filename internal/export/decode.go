package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidFile is returned when an export payload is not a JSON array.
var ErrInvalidFile = errors.New("invalid export file")

var errNotObject = errors.New("not a message object")

// Decode parses an export payload. The payload must be a JSON array; any
// other shape, or a syntax error, yields ErrInvalidFile and no messages.
// Elements that are not decodable message objects are kept as placeholders
// so that BuildConversation can report them with their input position.
func Decode(data []byte) ([]RawMessage, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of messages", ErrInvalidFile)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	msgs := make([]RawMessage, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			msgs[i].decodeErr = errNotObject
			continue
		}
		if err := json.Unmarshal(item, &msgs[i]); err != nil {
			msgs[i] = RawMessage{decodeErr: err}
		}
	}
	return msgs, nil
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader) ([]RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return Decode(data)
}
