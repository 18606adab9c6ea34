package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "factoria/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is the HTTP implementation of the gateway ports. It owns the
// endpoint shapes and the translation of failures into the error
// taxonomy; it holds no entity state.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type apiErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

// do issues one request. A non-nil body is sent as JSON; a non-nil out
// receives the decoded 2xx response body. Non-2xx responses become
// OperationError, no-response failures become TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewTransportError("encoding request body", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return apperrors.NewTransportError("building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("no response received",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("requestId", requestID),
			zap.Error(err))
		return apperrors.NewTransportError("no response received", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path, requestID)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.NewTransportError("decoding response body", err)
		}
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("requestId", requestID))
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path, requestID string) error {
	var payload apiErrorResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	c.logger.Warn("server rejected request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("requestId", requestID))

	if decodeErr != nil || payload.Message == "" && payload.Error == "" {
		return apperrors.NewOperationError(resp.StatusCode, "",
			fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}
	return apperrors.NewOperationError(resp.StatusCode, payload.Error, payload.Message, payload.Details...)
}
