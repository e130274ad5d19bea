package vk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
)

// Client wraps the VK API calls needed for an album backup. It owns the
// access token and the owner (subject) id for the duration of a run.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	ownerID    string
	version    string
	logger     logger.Logger
}

// NewClient creates a new VK API client
func NewClient(token, ownerID string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: BaseURL,
		token:   token,
		ownerID: ownerID,
		version: DefaultAPIVersion,
		logger:  log,
	}
}

// SetAPIVersion overrides the default API version string
func (c *Client) SetAPIVersion(version string) {
	if version != "" {
		c.version = version
	}
}

// OwnerID returns the owner id this client was created for
func (c *Client) OwnerID() string {
	return c.ownerID
}

// GetAlbum fetches the photo album with the given id for the configured
// owner. An absent response body yields an empty album; a VK-level error
// object and any transport or decode failure are returned as errors.
func (c *Client) GetAlbum(albumID string) (*Album, error) {
	if albumID == "" {
		albumID = AlbumProfile
	}

	endpoint := photosGetURL(c.baseURL, c.token, c.version, c.ownerID, albumID)

	c.logger.InfoWithFields("fetching album", map[string]interface{}{
		"owner_id": c.ownerID,
		"album_id": albumID,
	})

	var envelope apiResponse
	if err := c.getJSON(endpoint, &envelope); err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"owner_id": c.ownerID,
			"album_id": albumID,
		}).Error("failed to fetch album")
		return nil, err
	}

	if envelope.Error != nil {
		c.logger.ErrorWithFields("VK API returned an error", map[string]interface{}{
			"owner_id":   c.ownerID,
			"album_id":   albumID,
			"error_code": envelope.Error.ErrorCode,
			"error_msg":  envelope.Error.ErrorMsg,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeAPI,
			Message: envelope.Error.ErrorMsg,
			Code:    envelope.Error.ErrorCode,
		}
	}

	if envelope.Response == nil {
		c.logger.WarnWithFields("album response missing, treating as empty", map[string]interface{}{
			"owner_id": c.ownerID,
			"album_id": albumID,
		})
		return &Album{}, nil
	}

	c.logger.InfoWithFields("album fetched", map[string]interface{}{
		"owner_id": c.ownerID,
		"album_id": albumID,
		"count":    envelope.Response.Count,
		"items":    len(envelope.Response.Items),
	})

	return envelope.Response, nil
}

// getJSON performs a GET request and decodes the JSON response
func (c *Client) getJSON(endpoint string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.Path,
			"error":    err.Error(),
			"duration": duration,
		})
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.Path,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode != http.StatusOK {
		return &errors.Error{
			Type:    errors.TypeFromStatus(resp.StatusCode),
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}
