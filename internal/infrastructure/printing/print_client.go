package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"forneiro_pix/internal/usecase/interfaces"
)

// PrintClient posts order payloads to the external print webhook. The sink is
// an opaque HTTP endpoint on the restaurant side; failures here are an
// operational concern and never bubble up to the provider-facing webhook
// response.
type PrintClient struct {
	url        string
	httpClient *http.Client
}

var _ interfaces.IPrintForwarder = (*PrintClient)(nil)

func NewPrintClient(url string) *PrintClient {
	return &PrintClient{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PrintClient) Configured() bool {
	return p != nil && p.url != ""
}

// Send posts the payload and relays the upstream status and body, for the
// print passthrough endpoints.
func (p *PrintClient) Send(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// Forward delivers a completed-order snapshot, treating any non-2xx as an error.
func (p *PrintClient) Forward(ctx context.Context, payload json.RawMessage) error {
	status, body, err := p.Send(ctx, payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("print sink returned status %d: %s", status, truncate(body, 512))
	}
	log.Printf("[pix][print] order forwarded status=%d", status)
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
