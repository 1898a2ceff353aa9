// Package geo builds geographic features from the metadata API and matches
// them with the geographic codes of the M0 model.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/m0convert/config"
)

// Item is a region or département returned by the metadata API.
type Item struct {
	Code  string `json:"code"`
	Label string `json:"intitule"`
	URI   string `json:"uri"`
}

// Client reads regions and départements from the metadata API.
type Client struct {
	api            string
	client         *http.Client
	maxContentSize int64
	logger         *slog.Logger
}

// NewClient creates a client for the configured API.
func NewClient(cfg config.GeoConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api: cfg.API,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: cfg.Timeout,
				MaxIdleConns:          2,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		maxContentSize: cfg.MaxBodyBytes,
		logger:         logger,
	}
}

// Areas holds the items of both calls.
type Areas struct {
	Regions      []Item
	Departements []Item
}

// Fetch reads regions and départements of every date concurrently.
func (c *Client) Fetch(ctx context.Context) (*Areas, error) {
	var areas Areas
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := c.get(gctx, "geo/regions")
		areas.Regions = items
		return err
	})
	g.Go(func() error {
		items, err := c.get(gctx, "geo/departements")
		areas.Departements = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.logger.Info("Geographic areas fetched", "regions", len(areas.Regions), "departements", len(areas.Departements))
	return &areas, nil
}

func (c *Client) get(ctx context.Context, path string) ([]Item, error) {
	url := c.api + path + "?date=%2A"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxContentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(body)) > c.maxContentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, path, c.maxContentSize)
	}

	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.logger.Debug("Fetched geographic items", "path", path, "count", len(items))
	return items, nil
}
