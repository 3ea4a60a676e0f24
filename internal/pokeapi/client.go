// Package pokeapi is a read-only client for the PokeAPI v2 REST service,
// the remote data source behind the catalog.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/models"
)

// ErrNotFound is returned when the source has no record for the requested reference.
var ErrNotFound = errors.New("record not found")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: bad status %d", e.URL, e.Status)
}

// Client talks to the PokeAPI.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client for the configured source.
func New(cfg config.SourceConfig, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Headers arrive fast on this API; a stalled handshake means a hung upstream.
	transport.ResponseHeaderTimeout = cfg.Timeout
	// A load fans out one request per record to the same host.
	transport.MaxIdleConnsPerHost = 32

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: logger.With("component", "pokeapi"),
	}
}

// CreatureURL returns the detail URL for an id or name.
func (c *Client) CreatureURL(ref string) string {
	return fmt.Sprintf("%s/pokemon/%s", c.baseURL, strings.ToLower(ref))
}

// ListCreatures returns the first limit references of the collection, in source order.
func (c *Client) ListCreatures(ctx context.Context, limit int) ([]models.CreatureRef, error) {
	url := fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, limit)

	var payload listResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	refs := make([]models.CreatureRef, 0, len(payload.Results))
	for _, r := range payload.Results {
		refs = append(refs, models.CreatureRef{Name: r.Name, DetailURL: r.URL})
	}
	return refs, nil
}

// GetCreature fetches one detail record. ref is either a full detail URL
// (as returned by ListCreatures) or an id/name.
func (c *Client) GetCreature(ctx context.Context, ref string) (*models.Creature, error) {
	url := ref
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		url = c.CreatureURL(ref)
	}

	var payload creatureResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// GetCreatureByID is GetCreature keyed by numeric identifier.
func (c *Client) GetCreatureByID(ctx context.Context, id int) (*models.Creature, error) {
	return c.GetCreature(ctx, strconv.Itoa(id))
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetch", "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: %w", url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
