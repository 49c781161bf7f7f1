package transform

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	// The closing fence of a multi-line block must start its own line, so
	// backticks inside JSON strings never end the block early.
	fencedBlockPattern = regexp.MustCompile("(?s)```(?i:json)?[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")
	inlineBlockPattern = regexp.MustCompile("(?s)```(?i:json)?\\s*(.*?)\\s*```")
)

// ExtractJSONBlock returns the body of the first fenced code block in raw,
// labelled json or unlabelled, with surrounding whitespace trimmed. A block
// written on a single line is accepted when no multi-line block exists.
func ExtractJSONBlock(raw string) (string, error) {
	match := fencedBlockPattern.FindStringSubmatch(raw)
	if match == nil {
		match = inlineBlockPattern.FindStringSubmatch(raw)
	}
	if match == nil {
		return "", ErrNoFencedBlock
	}
	return strings.TrimSpace(match[1]), nil
}

// DecodeJSONBlock extracts the first fenced block of raw and unmarshals it into v.
// The returned error matches ErrNoFencedBlock or ErrInvalidJSON.
func DecodeJSONBlock(raw string, v any) error {
	body, err := ExtractJSONBlock(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
