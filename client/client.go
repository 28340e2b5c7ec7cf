// Package client is the sole network boundary of the TUI. It issues one
// POST per user turn and normalizes every outcome — transport failures
// included — into an AnalyzeResult. It never returns a Go error for the
// analyze path; the caller always gets something displayable.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the MatForge backend's default bind address.
const DefaultBaseURL = "http://localhost:8000"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        zerolog.Logger
}

// New constructs a Client for the given base URL. The long timeout
// accommodates the backend's full pipeline run per request.
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		log: log,
	}
}

// HealthResponse from GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health checks backend reachability before the chat loop starts.
func (c *Client) Health() (*HealthResponse, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health %d: %s", resp.StatusCode, body)
	}
	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}

// analyzeRequest is the body of POST /api/analyze. Each request is
// stateless and carries only the latest user text.
type analyzeRequest struct {
	MaterialName string `json:"material_name"`
}

// AnalyzeResult is the normalized outcome of one analyze call. OK=false
// with a message-bearing Text means the transport failed or a raw-text
// reply arrived on a non-2xx status. It is consumed once by the
// classifier and not stored verbatim.
type AnalyzeResult struct {
	OK   bool
	Text string
	Err  string
}

// Analyze sends the trimmed material name to the backend. The caller is
// responsible for rejecting empty input before calling.
func (c *Client) Analyze(material string) AnalyzeResult {
	data, err := json.Marshal(analyzeRequest{MaterialName: material})
	if err != nil {
		return transportFailure(err)
	}
	resp, err := c.HTTPClient.Post(c.BaseURL+"/api/analyze", "application/json", bytes.NewReader(data))
	if err != nil {
		c.log.Warn().Err(err).Str("material", material).Msg("analyze transport failure")
		return transportFailure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn().Err(err).Msg("analyze body read failure")
		return transportFailure(err)
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Str("material", material).
		Msg("analyze response")

	httpOK := resp.StatusCode >= 200 && resp.StatusCode < 300
	return resultFromBody(body, httpOK)
}

// transportFailure folds a network-level error into a displayable result.
func transportFailure(err error) AnalyzeResult {
	return AnalyzeResult{
		OK:   false,
		Text: "Request failed: " + err.Error(),
		Err:  err.Error(),
	}
}

// payloadKind tags how a response body decoded.
type payloadKind int

const (
	payloadRaw        payloadKind = iota // literal text, not JSON
	payloadStructured                    // JSON object with named fields
	payloadOtherJSON                     // valid JSON but not an object
)

// payload is the decoded shape of an analyze response body.
type payload struct {
	kind   payloadKind
	fields map[string]json.RawMessage
	raw    string
}

// Markdown envelope field names, in lookup order. The backend normally
// streams literal markdown; proxied deployments wrap it as JSON under
// one of these keys.
var markdownKeys = []string{"markdown", "report"}

// decodePayload classifies the body as structured JSON, other JSON, or
// raw text.
func decodePayload(body []byte) payload {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		return payload{kind: payloadStructured, fields: fields}
	}
	var anything any
	if err := json.Unmarshal(body, &anything); err == nil {
		return payload{kind: payloadOtherJSON, raw: string(body)}
	}
	return payload{kind: payloadRaw, raw: string(body)}
}

// resultFromBody applies the trust rule: a JSON-parseable body yields
// OK=true regardless of HTTP status, because the backend reports
// application errors inside 200-coded JSON and a well-formed envelope on
// a 5xx is still the envelope. Only the raw-text path takes OK from the
// status line.
func resultFromBody(body []byte, httpOK bool) AnalyzeResult {
	p := decodePayload(body)
	switch p.kind {
	case payloadStructured:
		for _, key := range markdownKeys {
			raw, present := p.fields[key]
			if !present {
				continue
			}
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				return AnalyzeResult{OK: true, Text: text}
			}
		}
		return AnalyzeResult{OK: true, Text: prettyJSON(body)}
	case payloadOtherJSON:
		return AnalyzeResult{OK: true, Text: prettyJSON(body)}
	default:
		return AnalyzeResult{OK: httpOK, Text: p.raw}
	}
}

// prettyJSON re-indents a JSON body for display. Falls back to the
// original bytes if indentation fails.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
