// Package remote provides a client for an out-of-process text engine that
// speaks a JSON request/response protocol.
//
// Request frames have the shape
//
//	{"doc":"<id>","method":"insertText","params":{"offset":3,"text":"p"}}
//
// and responses
//
//	{"ok":true,"result":{"text":"...","canUndo":true,"canRedo":false}}
//	{"ok":false,"error":"..."}
//
// Responses are validated field by field; anything missing or of the wrong
// type is rejected as ErrMalformedPayload rather than defaulting silently.
// Offsets follow the engine convention: Unicode scalar values (runes).
package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	// ErrMalformedPayload is returned for response frames that fail
	// validation. It is distinct from engine rejection.
	ErrMalformedPayload = errors.New("remote: malformed payload")

	// ErrEngineRejected is returned when the engine reports a failure.
	ErrEngineRejected = errors.New("remote: engine rejected request")
)

// Transport sends one encoded request frame and returns the response frame.
type Transport interface {
	RoundTrip(ctx context.Context, req []byte) ([]byte, error)
}

// Client drives a remote text engine. It caches the undo/redo availability
// flags carried on each response so CanUndo/CanRedo stay synchronous.
type Client struct {
	mu        sync.Mutex
	transport Transport
	docID     string
	canUndo   bool
	canRedo   bool
}

// NewClient creates a client for the given document ID.
func NewClient(transport Transport, docID string) *Client {
	return &Client{transport: transport, docID: docID}
}

// InsertText places text at offset and returns the full updated buffer.
func (c *Client) InsertText(ctx context.Context, offset int, text string) (string, error) {
	return c.call(ctx, "insertText", map[string]any{"offset": offset, "text": text})
}

// DeleteText removes length runes at offset and returns the full updated
// buffer.
func (c *Client) DeleteText(ctx context.Context, offset, length int) (string, error) {
	return c.call(ctx, "deleteText", map[string]any{"offset": offset, "length": length})
}

// Undo reverses the last edit and returns the full updated buffer.
func (c *Client) Undo(ctx context.Context) (string, error) {
	return c.call(ctx, "undo", nil)
}

// Redo re-applies the last undone edit and returns the full updated buffer.
func (c *Client) Redo(ctx context.Context) (string, error) {
	return c.call(ctx, "redo", nil)
}

// FullText fetches the full buffer content.
func (c *Client) FullText(ctx context.Context) (string, error) {
	return c.call(ctx, "getFullText", nil)
}

// CanUndo reports the undo availability carried on the last response.
func (c *Client) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canUndo
}

// CanRedo reports the redo availability carried on the last response.
func (c *Client) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canRedo
}

// call encodes a request frame, round-trips it and validates the response.
func (c *Client) call(ctx context.Context, method string, params map[string]any) (string, error) {
	req, err := c.encode(method, params)
	if err != nil {
		return "", err
	}

	resp, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		return "", fmt.Errorf("remote: %s: %w", method, err)
	}
	return c.decode(method, resp)
}

func (c *Client) encode(method string, params map[string]any) ([]byte, error) {
	frame := []byte(`{}`)
	var err error
	if frame, err = sjson.SetBytes(frame, "doc", c.docID); err != nil {
		return nil, err
	}
	if frame, err = sjson.SetBytes(frame, "method", method); err != nil {
		return nil, err
	}
	for key, value := range params {
		if frame, err = sjson.SetBytes(frame, "params."+key, value); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func (c *Client) decode(method string, resp []byte) (string, error) {
	if !gjson.ValidBytes(resp) {
		return "", fmt.Errorf("%w: %s: invalid JSON", ErrMalformedPayload, method)
	}
	root := gjson.ParseBytes(resp)

	ok := root.Get("ok")
	if !ok.Exists() || !ok.IsBool() {
		return "", fmt.Errorf("%w: %s: missing ok flag", ErrMalformedPayload, method)
	}
	if !ok.Bool() {
		msg := root.Get("error")
		if !msg.Exists() || msg.Type != gjson.String {
			return "", fmt.Errorf("%w: %s: failure without error message", ErrMalformedPayload, method)
		}
		return "", fmt.Errorf("%w: %s: %s", ErrEngineRejected, method, msg.String())
	}

	text := root.Get("result.text")
	if !text.Exists() || text.Type != gjson.String {
		return "", fmt.Errorf("%w: %s: missing result.text", ErrMalformedPayload, method)
	}

	c.mu.Lock()
	if canUndo := root.Get("result.canUndo"); canUndo.IsBool() {
		c.canUndo = canUndo.Bool()
	}
	if canRedo := root.Get("result.canRedo"); canRedo.IsBool() {
		c.canRedo = canRedo.Bool()
	}
	c.mu.Unlock()

	return text.String(), nil
}
