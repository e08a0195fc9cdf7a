package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/hostbridge/internal/domain/entity"
)

// ResponseKey is the routing key of replies to correlated requests.
const ResponseKey = "response"

// Request is a correlated call: {"id","method","params"}.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response answers a Request: {"type":"response","id","result"|"error"}.
type Response struct {
	Type   string          `json:"type"`
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// RemoteError is an error string returned by the other side of a call.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Message)
}

// ErrUnknownResponse means a response arrived for no pending request.
var ErrUnknownResponse = errors.New("response does not match a pending request")

// Requester issues host-to-page requests and pairs them with page responses.
// Call blocks until the reply arrives, so it must not run on the thread
// that dispatches page messages unless the engine answers synchronously.
type Requester struct {
	router *Router

	mu      sync.Mutex
	pending map[string]pendingCall
	newID   func() string
}

type pendingCall struct {
	method string
	done   chan Response
}

// NewRequester registers the response route on router.
func NewRequester(router *Router) (*Requester, error) {
	q := &Requester{
		router:  router,
		pending: make(map[string]pendingCall),
		newID:   uuid.NewString,
	}
	if err := router.Register(ResponseKey, HandlerFunc(q.handleResponse)); err != nil {
		return nil, err
	}
	return q, nil
}

// Call sends method(params) to the page and decodes the result into result
// (which may be nil). The context bounds the wait.
func (q *Requester) Call(ctx context.Context, method string, params, result any) error {
	if method == "" {
		return errors.New("method cannot be empty")
	}

	req := Request{ID: q.newID(), Method: method}
	if params != nil {
		env, err := entity.Marshal(params)
		if err != nil {
			return err
		}
		req.Params = json.RawMessage(env)
	}

	done := make(chan Response, 1)
	q.mu.Lock()
	q.pending[req.ID] = pendingCall{method: method, done: done}
	q.mu.Unlock()
	defer q.forget(req.ID)

	if err := q.router.Deliver(ctx, req); err != nil {
		return err
	}

	select {
	case resp := <-done:
		if resp.Error != "" {
			return &RemoteError{Method: method, Message: resp.Error}
		}
		if result == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", method, ctx.Err())
	}
}

// Pending returns the number of calls awaiting a response.
func (q *Requester) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Requester) forget(id string) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

func (q *Requester) handleResponse(_ context.Context, msg Inbound) error {
	var resp Response
	if err := msg.Decode(&resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	q.mu.Lock()
	call, ok := q.pending[resp.ID]
	delete(q.pending, resp.ID)
	q.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResponse, resp.ID)
	}

	call.done <- resp
	return nil
}

// Respond answers a page request carried by msg.
// A non-nil callErr is sent as the error string instead of result.
func Respond(ctx context.Context, router *Router, msg Inbound, result any, callErr error) error {
	var req Request
	if err := msg.Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	if req.ID == "" {
		return errors.New("request has no id")
	}

	resp := Response{Type: ResponseKey, ID: req.ID}
	if callErr != nil {
		resp.Error = callErr.Error()
	} else if result != nil {
		env, err := entity.Marshal(result)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Result = json.RawMessage(env)
		}
	}
	return router.Deliver(ctx, resp)
}

// RequestHandler adapts a function serving page requests to a Handler that
// decodes params and answers through Respond.
func RequestHandler(router *Router, fn func(ctx context.Context, params json.RawMessage) (any, error)) Handler {
	return HandlerFunc(func(ctx context.Context, msg Inbound) error {
		var req Request
		if err := msg.Decode(&req); err != nil {
			return fmt.Errorf("decode request: %w", err)
		}
		result, callErr := fn(ctx, req.Params)
		return Respond(ctx, router, msg, result, callErr)
	})
}
