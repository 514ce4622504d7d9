package Apis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"SpeedWatch/Models"
)

// Backend endpoints. Paths are fixed by the detection server.
const (
	UploadVideoPath     = "/upload_video"
	OpenCameraPath      = "/open_camera"
	StopCameraPath      = "/stop_camera"
	StopVideoUploadPath = "/stop_video_upload"
	ViolationsPath      = "/violations"
	StatsPath           = "/get_stats"
	StreamPath          = "/stream"
	AutocompletePath    = "/autocomplete"
	VideoFeedPath       = "/video_feed"
	UploadsPath         = "/static/uploads"
)

// Client talks to the detection backend. Every call suspends only the
// calling goroutine; timeouts are left to the transport.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// ControlReply is the acknowledgment body of the control endpoints.
type ControlReply struct {
	Status string `json:"status"`
	Msg    string `json:"msg,omitempty"`
}

func (r ControlReply) OK() bool { return r.Status == "ok" }

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: u, http: &http.Client{}, logger: logger}, nil
}

func (c *Client) resolve(endpoint string) *url.URL {
	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, endpoint)
	u.RawQuery = ""
	return &u
}

// FeedURL is the media stream URL for one feed activation. The token is
// the whole query so every activation is a distinct resource.
func (c *Client) FeedURL(token int64) string {
	u := c.resolve(VideoFeedPath)
	u.RawQuery = strconv.FormatInt(token, 10)
	return u.String()
}

// ImageURL resolves a captured frame filename against the uploads path.
func (c *Client) ImageURL(image string) string {
	return c.resolve(path.Join(UploadsPath, image)).String()
}

// StreamURL is the server-push endpoint.
func (c *Client) StreamURL() string {
	return c.resolve(StreamPath).String()
}

// UploadVideo posts the file as multipart field "video".
func (c *Client) UploadVideo(ctx context.Context, name string, content io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("video", name)
	if err != nil {
		return &Models.RequestFailure{Endpoint: UploadVideoPath, Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &Models.RequestFailure{Endpoint: UploadVideoPath, Err: fmt.Errorf("error reading upload: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return &Models.RequestFailure{Endpoint: UploadVideoPath, Err: err}
	}
	return c.control(ctx, http.MethodPost, UploadVideoPath, &body, writer.FormDataContentType())
}

func (c *Client) OpenCamera(ctx context.Context) error {
	return c.control(ctx, http.MethodGet, OpenCameraPath, nil, "")
}

func (c *Client) StopCamera(ctx context.Context) error {
	return c.control(ctx, http.MethodGet, StopCameraPath, nil, "")
}

func (c *Client) StopVideoUpload(ctx context.Context) error {
	return c.control(ctx, http.MethodGet, StopVideoUploadPath, nil, "")
}

// Violations fetches the bulk history in server order.
func (c *Client) Violations(ctx context.Context) ([]Models.ViolationRecord, error) {
	var records []Models.ViolationRecord
	err := c.getJSON(ctx, ViolationsPath, nil, func(data []byte) (err error) {
		records, err = Models.DecodeViolations(data)
		return err
	})
	return records, err
}

// Stats fetches one aggregate snapshot.
func (c *Client) Stats(ctx context.Context) (Models.AggregateStats, error) {
	var stats Models.AggregateStats
	err := c.getJSON(ctx, StatsPath, nil, func(data []byte) (err error) {
		stats, err = Models.DecodeStats(data)
		return err
	})
	return stats, err
}

// Autocomplete returns the plate suggestions for q in backend order.
func (c *Client) Autocomplete(ctx context.Context, q string) ([]string, error) {
	var plates []string
	err := c.getJSON(ctx, AutocompletePath, url.Values{"q": {q}}, func(data []byte) error {
		return json.Unmarshal(data, &plates)
	})
	return plates, err
}

func (c *Client) control(ctx context.Context, method, endpoint string, body io.Reader, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint).String(), body)
	if err != nil {
		return &Models.RequestFailure{Endpoint: endpoint, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	data, status, err := c.do(req)
	if err != nil {
		return &Models.RequestFailure{Endpoint: endpoint, Status: status, Err: err}
	}
	if status < 200 || status > 299 {
		return &Models.RequestFailure{Endpoint: endpoint, Status: status}
	}

	var reply ControlReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return &Models.RequestFailure{Endpoint: endpoint, Status: status, Err: &Models.DecodeFailure{Endpoint: endpoint, Err: err}}
	}
	if !reply.OK() {
		return &Models.RequestFailure{Endpoint: endpoint, Status: status, Reply: reply.Status}
	}
	c.logger.Debug("backend acknowledged", "endpoint", endpoint, "msg", reply.Msg)
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, decode func([]byte) error) error {
	u := c.resolve(endpoint)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &Models.RequestFailure{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	data, status, err := c.do(req)
	if err != nil {
		return &Models.RequestFailure{Endpoint: endpoint, Status: status, Err: err}
	}
	if status < 200 || status > 299 {
		return &Models.RequestFailure{Endpoint: endpoint, Status: status}
	}
	if err := decode(data); err != nil {
		return &Models.DecodeFailure{Endpoint: endpoint, Err: err}
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error reading response body: %w", err)
	}
	return data, resp.StatusCode, nil
}
