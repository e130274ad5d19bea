package disk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
)

const (
	// BaseURL is the base URL for the Yandex.Disk REST API
	BaseURL = "https://cloud-api.yandex.net/v1/disk"

	// ResourcesEndpoint is the resource creation endpoint
	ResourcesEndpoint = "/resources"

	// UploadEndpoint is the upload-by-url endpoint
	UploadEndpoint = "/resources/upload"
)

// Client wraps the two Yandex.Disk calls a backup run needs: creating a
// folder and uploading a file by URL. The access token is sent as the
// Authorization header on every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     logger.Logger
}

// NewClient creates a new Yandex.Disk API client
func NewClient(token string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: BaseURL,
		token:   token,
		logger:  log,
	}
}

// MakeDir creates a folder at the given Disk path. A folder that already
// exists is not an error: the 409 the API returns for it is logged and
// swallowed so repeated runs can share a backup folder.
func (c *Client) MakeDir(path string) error {
	params := url.Values{}
	params.Set("path", path)

	c.logger.InfoWithFields("creating folder", map[string]interface{}{
		"path": path,
	})

	resp, err := c.do(http.MethodPut, ResourcesEndpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusConflict:
		c.logger.WarnWithFields("folder already exists", map[string]interface{}{
			"path": path,
		})
		return nil
	default:
		return c.errorFromResponse(resp)
	}
}

// UploadURL asks Disk to download the file at srcURL into the given path.
// The API accepts the request and performs the copy asynchronously; the
// returned Link points at the pending operation. Completion is not polled.
func (c *Client) UploadURL(path, srcURL string) (*Link, error) {
	params := url.Values{}
	params.Set("path", path)
	params.Set("url", srcURL)

	c.logger.InfoWithFields("uploading", map[string]interface{}{
		"path": path,
	})

	resp, err := c.do(http.MethodPost, UploadEndpoint, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, c.errorFromResponse(resp)
	}

	var link Link
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return &link, nil
}

// do performs a request against the Disk API with the auth header set
func (c *Client) do(method, endpoint string, params url.Values) (*http.Response, error) {
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequest(method, requestURL, nil)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}
	req.Header.Set("Authorization", c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// errorFromResponse turns a non-success Disk response into a typed error,
// decoding the API error payload when one is present
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		var payload apiError
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			message = payload.Message
		}
	}

	c.logger.ErrorWithFields("disk API error", map[string]interface{}{
		"status":  resp.StatusCode,
		"message": message,
	})

	return &errors.Error{
		Type:    errors.TypeFromStatus(resp.StatusCode),
		Message: message,
		Code:    resp.StatusCode,
	}
}
