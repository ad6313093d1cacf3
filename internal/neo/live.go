package neo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// LiveSource reads the NeoWs REST API.
type LiveSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLiveSource creates a LiveSource. A nil httpClient uses a client with a 15s timeout.
func NewLiveSource(baseURL, apiKey string, httpClient *http.Client) *LiveSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &LiveSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type feedResponse struct {
	NearEarthObjects map[string][]Object `json:"near_earth_objects"`
}

// Feed calls GET /feed and flattens the date-keyed result.
func (s *LiveSource) Feed(ctx context.Context, start, end time.Time) ([]Object, error) {
	q := url.Values{}
	q.Set("start_date", start.Format(dateLayout))
	q.Set("end_date", end.Format(dateLayout))

	var resp feedResponse
	if err := s.get(ctx, "/feed", q, &resp); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(resp.NearEarthObjects))
	for d := range resp.NearEarthObjects {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	var objs []Object
	for _, d := range dates {
		objs = append(objs, resp.NearEarthObjects[d]...)
	}
	return objs, nil
}

// Lookup calls GET /neo/{id}.
func (s *LiveSource) Lookup(ctx context.Context, id string) (Object, error) {
	var obj Object
	if err := s.get(ctx, "/neo/"+url.PathEscape(id), url.Values{}, &obj); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *LiveSource) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Keep the api key out of logged errors.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = s.baseURL + path
		}
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
