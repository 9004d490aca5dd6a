package followerwatch

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultHTTPTimeout = 20 * time.Second

func initHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// decodeResponse unmarshals a JSON payload into dest, which must be a pointer.
func decodeResponse(payload io.Reader, dest interface{}) error {
	d := json.NewDecoder(payload)
	if err := d.Decode(dest); err != nil {
		return errors.Wrap(err, "error decoding GitHub JSON response")
	}
	return nil
}

// checkStatus turns a non-2xx response into a TransportError for the
// request URL. Every API failure is terminal for the run: no retries.
func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &TransportError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        url,
	}
}
