package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"quiz-trainer/internal/domain"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// Client talks to the upload endpoint of a quiz-trainer server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL. A cookie jar is attached when the
// given client has none, so a login carries over to uploads.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		httpClient.Jar = jar
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

// Login posts the login form. The server answers with a redirect to /login on
// failure and to / on success.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	noRedirect := *c.http
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := noRedirect.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound && resp.StatusCode != http.StatusSeeOther {
		return fmt.Errorf("login: unexpected status %d", resp.StatusCode)
	}
	if strings.HasPrefix(resp.Header.Get("Location"), "/login") {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Upload posts the file as multipart field "file" and returns the parsed pool.
// Non-2xx answers become *domain.UploadError carrying the server's detail.
func (c *Client) Upload(ctx context.Context, filename string, content []byte) ([]domain.Question, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var payload domain.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return normalize(payload.Questions), nil
}

func decodeError(resp *http.Response) error {
	uerr := &domain.UploadError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		uerr.Err = err
		return uerr
	}
	var payload domain.ErrorResponse
	if json.Unmarshal(raw, &payload) == nil {
		uerr.Detail = payload.Detail
	}
	if uerr.Detail == "" {
		uerr.Err = fmt.Errorf("upload: status %d", resp.StatusCode)
	}
	return uerr
}

// normalize fills missing option ids with their 1-based position.
func normalize(questions []domain.Question) []domain.Question {
	for qi := range questions {
		for oi := range questions[qi].Options {
			if questions[qi].Options[oi].ID == "" {
				questions[qi].Options[oi].ID = domain.ID(strconv.Itoa(oi + 1))
			}
		}
	}
	return questions
}
