package services

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ParsedReply is the outcome of decoding a generation reply: either a
// well-formed value or the raw text to hand to a fallback parser.
type ParsedReply[T any] struct {
	Value      T
	Raw        string
	WellFormed bool
}

func wellFormed[T any](value T, raw string) ParsedReply[T] {
	return ParsedReply[T]{Value: value, Raw: raw, WellFormed: true}
}

func malformed[T any](raw string) ParsedReply[T] {
	return ParsedReply[T]{Raw: raw}
}

// decodeReply strips markdown fences and decodes the outermost open/close
// delimited block of raw into a T.
func decodeReply[T any](raw string, open, close byte) (T, error) {
	var value T
	payload, ok := extractJSON(raw, open, close)
	if !ok {
		return value, &MalformedReplyError{Raw: raw, Err: errors.Errorf("no %c...%c block in reply", open, close)}
	}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return value, &MalformedReplyError{Raw: raw, Err: errors.Wrap(err, "failed to decode reply")}
	}
	return value, nil
}

// parseReply decodes raw into the tagged variant, absorbing MalformedReplyError.
func parseReply[T any](raw string, open, close byte) ParsedReply[T] {
	value, err := decodeReply[T](raw, open, close)
	if err != nil {
		return malformed[T](raw)
	}
	return wellFormed(value, raw)
}

func extractJSON(text string, open, close byte) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
