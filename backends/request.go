package backends

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single request so a hung connection cannot pin a fetch forever.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with HTTP %d", e.URL, e.StatusCode)
}

// NewClient builds the HTTP client a backend uses for every request.
func NewClient(insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: insecure}

	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
}

// GetJSON issues one GET and decodes the body into v. Non-2xx statuses,
// transport errors and malformed JSON are all returned as errors.
func GetJSON(ctx context.Context, client *http.Client, url string, header http.Header, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	for k, values := range header {
		for _, value := range values {
			req.Header.Add(k, value)
		}
	}

	logrus.WithField("url", url).Debug("GET")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("cannot parse %s: %w", url, err)
	}

	return nil
}
