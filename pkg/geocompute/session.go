package geocompute

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNotReady is wrapped by InitError when the service answers but reports
// that it cannot serve reductions.
var ErrNotReady = eris.New("geocompute: service not ready")

// InitError reports a failed Connect.
type InitError struct {
	BaseURL string
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("geocompute: initialize %s: %v", e.BaseURL, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Session is a client whose service has been checked as ready.
type Session struct {
	client *Client
	status Status
}

// Connect verifies the service is reachable and ready. Callers build
// providers from the returned session, so a failed initialization surfaces at
// construction time instead of on the first request.
func Connect(ctx context.Context, c *Client) (*Session, error) {
	st, err := c.Status(ctx)
	if err != nil {
		return nil, &InitError{BaseURL: c.baseURL, Err: err}
	}
	if !st.Ready {
		return nil, &InitError{BaseURL: c.baseURL, Err: ErrNotReady}
	}
	return &Session{client: c, status: *st}, nil
}

// Status returns the status observed at connect time.
func (s *Session) Status() Status { return s.status }

// MeanOver reduces one layer over the request region with a mean reducer.
func (s *Session) MeanOver(ctx context.Context, req ReduceRequest) (*float64, error) {
	req.Reducer = "mean"
	return s.client.ReduceRegion(ctx, req)
}
