// Package extract turns free text into structured records by prompting a
// language model and scraping the JSON object out of its reply.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSON means the reply contained no brace-delimited object.
	ErrNoJSON = errors.New("no JSON object in model reply")
	// ErrInvalidJSON means the brace-delimited span did not decode.
	ErrInvalidJSON = errors.New("model reply is not valid JSON")
)

// Completer sends a single user prompt to a chat model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// JSONObject returns the span from the first '{' to the last '}' of reply.
func JSONObject(reply string) (string, bool) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end < start {
		return "", false
	}
	return reply[start : end+1], true
}

// Structured prompts the model and decodes the object in its reply into T.
func Structured[T any](ctx context.Context, c Completer, prompt string) (T, error) {
	var out T
	reply, err := c.Complete(ctx, prompt)
	if err != nil {
		return out, fmt.Errorf("completing prompt: %w", err)
	}
	return Decode[T](reply)
}

// Decode applies the brace scan to reply and unmarshals the result into T.
func Decode[T any](reply string) (T, error) {
	var out T
	raw, ok := JSONObject(reply)
	if !ok {
		return out, ErrNoJSON
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}
