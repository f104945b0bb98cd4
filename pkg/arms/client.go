package arms

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service paths on the ARMS API.
const (
	PathParticipants = "/api/v1/participants"
	PathServiceCodes = "/api/v1/codes"
	PathEligibility  = "/api/v1/eligibility"
	PathCases        = "/api/v1/cases"
)

// Client queries and submits to the ARMS database over its XML API. Every
// interaction is logged for the program's audit trail.
type Client struct {
	endpoint string
	apiKey   string
	logger   *slog.Logger
	httpc    *http.Client
}

func NewClient(endpoint, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		logger:   logger,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Query is an XML request to one of the ARMS query services.
type Query struct {
	XMLName          xml.Name     `xml:"ARMSQuery"`
	QueryType        string       `xml:"QueryType"`
	RequestID        string       `xml:"RequestId"`
	Timestamp        string       `xml:"Timestamp"`
	Parameters       []QueryParam `xml:"Parameters>Param"`
	RequestingSystem string       `xml:"RequestingSystem"`
	Version          string       `xml:"Version"`
}

type QueryParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Response is the generic envelope ARMS answers with.
type Response struct {
	XMLName xml.Name        `xml:"ARMSResponse"`
	Status  string          `xml:"Status"`
	Message string          `xml:"Message"`
	Records []ResponseEntry `xml:"Records>Record"`
}

type ResponseEntry struct {
	Fields []PayloadField `xml:"Field"`
}

// ParticipantLookup searches ARMS for a participant record.
func (c *Client) ParticipantLookup(ctx context.Context, params map[string]string) (*Response, error) {
	return c.query(ctx, PathParticipants, "ParticipantLookup", params)
}

// EligibilityCheck verifies a participant's program eligibility.
func (c *Client) EligibilityCheck(ctx context.Context, participantID, serviceCode string) (*Response, error) {
	return c.query(ctx, PathEligibility, "EligibilityCheck", map[string]string{
		"ParticipantId": participantID,
		"ServiceCode":   serviceCode,
		"EffectiveDate": time.Now().Format("2006-01-02"),
	})
}

// SubmitDocument sends a prepared submission document to case management.
func (c *Client) SubmitDocument(ctx context.Context, document []byte) (*Response, error) {
	response, err := c.post(ctx, PathCases, document)

	c.logInteraction(ctx, "submit", PathCases, err)

	return response, err
}

func (c *Client) query(ctx context.Context, path, queryType string, params map[string]string) (*Response, error) {
	request := Query{
		QueryType:        queryType,
		RequestID:        "REQ-" + uuid.NewString(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		RequestingSystem: sourceSystem,
		Version:          systemVersion,
	}

	for name, value := range params {
		request.Parameters = append(request.Parameters, QueryParam{Name: name, Value: value})
	}

	body, err := xml.MarshalIndent(request, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ARMS query: %w", err)
	}

	response, err := c.post(ctx, path, append([]byte(xml.Header), body...))

	c.logInteraction(ctx, "query", path, err)

	return response, err
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ARMS request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("User-Agent", sourceSystem+"/"+systemVersion)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ARMS integration failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ARMS API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ARMS response: %w", err)
	}

	var parsed Response
	if err := xml.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("parse ARMS response: %w", err)
	}

	return &parsed, nil
}

func (c *Client) logInteraction(ctx context.Context, kind, path string, err error) {
	if err != nil {
		c.logger.ErrorContext(ctx, "ARMS interaction failed",
			"type", kind,
			"endpoint", path,
			"error", err)

		return
	}

	c.logger.InfoContext(ctx, "ARMS interaction completed",
		"type", kind,
		"endpoint", path)
}
