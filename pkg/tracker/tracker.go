// Package tracker provides a client for the Octofit Tracker REST API.
package tracker

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/octofit/octofit-web/pkg/record"
)

type Fetcher interface {
	GetCollection(ctx context.Context, entity string) (record.Collection, error)
	EndpointURL(entity string) string
}

var _ Fetcher = &Client{}

type Client struct {
	client *http.Client
	apiURL string
}

// EndpointURL is the list endpoint of entity, with the trailing slash the
// API routes require.
func (c *Client) EndpointURL(entity string) string {
	return fmt.Sprintf("%s/%s/", c.apiURL, entity)
}

func (c *Client) GetCollection(ctx context.Context, entity string) (record.Collection, error) {
	const op errs.Op = "tracker.GetCollection"

	body, err := c.sendRequest(ctx, http.MethodGet, c.EndpointURL(entity))
	if err != nil {
		return nil, errs.E(op, errs.IO, errs.Parameter(entity), err)
	}

	collection, err := record.Normalize(body)
	if err != nil {
		return nil, errs.E(op, errs.Parameter(entity), err)
	}

	return collection, nil
}

func (c *Client) sendRequest(ctx context.Context, method, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return body, nil
}

func New(apiURL string, client *http.Client) *Client {
	return &Client{
		apiURL: apiURL,
		client: client,
	}
}
