package property

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonwraymond/rentdata/api"
)

// EdgeTier reads published records from the CDN:
// GET <base>/<class>/<id>.json
type EdgeTier struct {
	base   string
	client *http.Client
}

// NewEdgeTier creates an EdgeTier.
func NewEdgeTier(base string, client *http.Client) *EdgeTier {
	if client == nil {
		client = http.DefaultClient
	}
	return &EdgeTier{base: strings.TrimRight(base, "/"), client: client}
}

func (t *EdgeTier) Name() Provenance { return ProvenanceEdge }
func (t *EdgeTier) Stage() Status    { return StatusLoadingCache }

// URL returns the edge location of a record.
func (t *EdgeTier) URL(class Class, id string) string {
	return t.base + "/" + url.PathEscape(string(class)) + "/" + url.PathEscape(id) + ".json"
}

func (t *EdgeTier) Attempt(ctx context.Context, a Attempt) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL(a.Class, a.ID), nil)
	if err != nil {
		return Outcome{Kind: KindMiss, Err: fmt.Errorf("%w: %v", api.ErrTransport, err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Outcome{Kind: KindMiss, Err: fmt.Errorf("%w: %v", api.ErrTransport, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Outcome{Kind: KindMiss, NotFound: true}
	case resp.StatusCode != http.StatusOK:
		return Outcome{Kind: KindMiss, Err: &api.StatusError{StatusCode: resp.StatusCode}}
	}

	var p Property
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Outcome{Kind: KindMiss, Err: decodeError(err)}
	}
	if p.ID == "" {
		p.ID = a.ID
	}
	return hit(&p)
}

// Ensure EdgeTier implements Tier
var _ Tier = (*EdgeTier)(nil)
