package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Roster combines a static identifier list from the config file with
// an optional HTTP endpoint returning a JSON array of identifiers.
type Roster struct {
	ids    []string
	url    string
	client *http.Client
}

// NewRoster creates a roster source. Either ids or url may be empty.
func NewRoster(ids []string, url string) *Roster {
	return &Roster{
		ids: ids,
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchRoster returns the union of the static ids and, when a URL is
// configured, the fetched ids. A fetch failure is only an error when
// there are no static ids to fall back on; otherwise the static list
// is returned and the failure swallowed, partial data being preferred
// over none.
func (r *Roster) FetchRoster(ctx context.Context) ([]string, error) {
	out := make([]string, len(r.ids))
	copy(out, r.ids)

	if r.url == "" {
		return out, nil
	}

	remote, err := r.fetchRemote(ctx)
	if err != nil {
		if len(out) > 0 {
			return out, nil
		}
		return nil, err
	}

	return append(out, remote...), nil
}

func (r *Roster) fetchRemote(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building roster request: %v", ErrFetch, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching roster: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: roster endpoint returned %s", ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading roster body: %v", ErrFetch, err)
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%w: parsing roster body: %v", ErrFetch, err)
	}
	return ids, nil
}
