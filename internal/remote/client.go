package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atempo/attendance-tracker/internal/model"
)

// Client is the remote data gateway: a thin HTTP client for a
// PostgREST-style store. It performs authenticated row operations against
// table endpoints and applies one retry policy to every call, so transient
// transport failures are absorbed here and business errors propagate
// unchanged.
type Client struct {
	baseURL    string
	anonKey    string
	token      string
	httpClient *http.Client
	retry      RetryPolicy
}

// NewClient creates a gateway for the store at baseURL. The anonKey is
// sent as the API key with every request; call SetSession after sign-in
// to authenticate as a user.
func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: DefaultRetryPolicy(),
	}
}

// SetSession installs the access token used for Authorization headers.
func (c *Client) SetSession(accessToken string) {
	c.token = accessToken
}

// do performs one HTTP request under the retry policy, marshaling body to
// JSON and unmarshaling the response into result when non-nil.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
	result interface{},
	headers map[string]string,
) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	return c.retry.Do(ctx, func(ctx context.Context) error {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("apikey", c.anonKey)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		} else {
			req.Header.Set("Authorization", "Bearer "+c.anonKey)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return &AuthError{Message: "session expired or invalid credentials"}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			msg := strings.TrimSpace(string(respBody))
			var errBody struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(respBody, &errBody) == nil && errBody.Message != "" {
				msg = errBody.Message
			}
			return &APIError{Status: resp.StatusCode, Message: msg}
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("parsing response from %s %s: %w", method, path, err)
			}
		}

		return nil
	})
}

// shiftRow mirrors one row of the remote shifts table.
type shiftRow struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	BusinessID string  `json:"business_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Notes      *string `json:"notes"`
}

func (r shiftRow) toModel() model.Shift {
	s := model.Shift{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		Date:       r.Date,
	}
	if r.CheckIn != nil {
		s.CheckIn = *r.CheckIn
	}
	if r.CheckOut != nil {
		s.CheckOut = *r.CheckOut
	}
	if r.Notes != nil {
		s.Note = *r.Notes
	}
	return s
}

func shiftToRow(userID string, s model.Shift) shiftRow {
	r := shiftRow{
		ID:         s.ID,
		UserID:     userID,
		BusinessID: s.BusinessID,
		Date:       s.Date,
	}
	// Empty times are stored as NULL, not ''.
	if s.CheckIn != "" {
		r.CheckIn = &s.CheckIn
	}
	if s.CheckOut != "" {
		r.CheckOut = &s.CheckOut
	}
	if s.Note != "" {
		r.Notes = &s.Note
	}
	return r
}

// SelectShifts fetches all shifts for the user in [from, to] inclusive,
// both bounds in ISO date form.
func (c *Client) SelectShifts(ctx context.Context, userID, from, to string) ([]model.Shift, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Add("date", "gte."+from)
	q.Add("date", "lte."+to)

	var rows []shiftRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/shifts", q, nil, &rows, nil); err != nil {
		return nil, fmt.Errorf("selecting shifts: %w", err)
	}

	shifts := make([]model.Shift, 0, len(rows))
	for _, r := range rows {
		shifts = append(shifts, r.toModel())
	}
	return shifts, nil
}

// SelectBusinessShifts fetches all shifts at one business in [from, to]
// inclusive, across users. Reports read through this path directly so
// their numbers reflect the remote store, never the local cache.
func (c *Client) SelectBusinessShifts(ctx context.Context, businessID, from, to string) ([]model.Shift, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("business_id", "eq."+businessID)
	q.Add("date", "gte."+from)
	q.Add("date", "lte."+to)

	var rows []shiftRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/shifts", q, nil, &rows, nil); err != nil {
		return nil, fmt.Errorf("selecting shifts for business %s: %w", businessID, err)
	}

	shifts := make([]model.Shift, 0, len(rows))
	for _, r := range rows {
		shifts = append(shifts, r.toModel())
	}
	return shifts, nil
}

// UpsertShift writes a shift keyed by id. Replaying an already-applied
// change is safe: the merge resolution makes the operation idempotent.
func (c *Client) UpsertShift(ctx context.Context, userID string, s model.Shift) error {
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates",
	}
	err := c.do(ctx, http.MethodPost, "/rest/v1/shifts", nil, []shiftRow{shiftToRow(userID, s)}, nil, headers)
	if err != nil {
		return fmt.Errorf("upserting shift %s: %w", s.ID, err)
	}
	return nil
}

// DeleteShift removes a shift by id.
func (c *Client) DeleteShift(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	if err := c.do(ctx, http.MethodDelete, "/rest/v1/shifts", q, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting shift %s: %w", id, err)
	}
	return nil
}

// noteRow mirrors one row of the remote daily_notes table.
type noteRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectNotes fetches all daily notes for the user in [from, to] inclusive.
func (c *Client) SelectNotes(ctx context.Context, userID, from, to string) ([]model.DailyNote, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Add("date", "gte."+from)
	q.Add("date", "lte."+to)

	var rows []noteRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/daily_notes", q, nil, &rows, nil); err != nil {
		return nil, fmt.Errorf("selecting notes: %w", err)
	}

	notes := make([]model.DailyNote, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, model.DailyNote{
			ID:        r.ID,
			Date:      r.Date,
			Text:      r.Text,
			Priority:  model.Priority(r.Priority),
			CreatedAt: r.CreatedAt,
		})
	}
	return notes, nil
}

// UpsertNote writes a daily note keyed by id, idempotently.
func (c *Client) UpsertNote(ctx context.Context, userID string, n model.DailyNote) error {
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates",
	}
	row := noteRow{
		ID:        n.ID,
		UserID:    userID,
		Date:      n.Date,
		Text:      n.Text,
		Priority:  string(n.Priority),
		CreatedAt: n.CreatedAt,
	}
	if err := c.do(ctx, http.MethodPost, "/rest/v1/daily_notes", nil, []noteRow{row}, nil, headers); err != nil {
		return fmt.Errorf("upserting note %s: %w", n.ID, err)
	}
	return nil
}

// DeleteNote removes a daily note by id.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	if err := c.do(ctx, http.MethodDelete, "/rest/v1/daily_notes", q, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

// SelectBusinesses fetches every business, active first then by name.
func (c *Client) SelectBusinesses(ctx context.Context) ([]model.Business, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "active.desc,name.asc")

	var businesses []model.Business
	if err := c.do(ctx, http.MethodGet, "/rest/v1/businesses", q, nil, &businesses, nil); err != nil {
		return nil, fmt.Errorf("selecting businesses: %w", err)
	}
	return businesses, nil
}

// SelectReportTemplates fetches all configured report templates.
func (c *Client) SelectReportTemplates(ctx context.Context) ([]model.ReportTemplate, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "name.asc")

	var templates []model.ReportTemplate
	if err := c.do(ctx, http.MethodGet, "/rest/v1/report_templates", q, nil, &templates, nil); err != nil {
		return nil, fmt.Errorf("selecting report templates: %w", err)
	}
	return templates, nil
}
