// Package fakestore implements the Product Source port over the
// fakestoreapi-compatible catalog HTTP API.
package fakestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/niksmo/smartshop/internal/core/domain"
	"github.com/niksmo/smartshop/internal/core/port"
	"github.com/niksmo/smartshop/pkg/retry"
	"golang.org/x/sync/singleflight"
)

var _ port.CatalogProvider = (*Client)(nil)

const (
	productsPath   = "/products"
	categoriesPath = "/products/categories"

	maxAttempts = 3
	retryDelay  = 200 * time.Millisecond
)

var errStatus = errors.New("unexpected response status")

type Client struct {
	baseURL string
	httpCl  *http.Client
	sfg     *singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return Client{
		baseURL: baseURL,
		httpCl:  &http.Client{Timeout: timeout},
		sfg:     new(singleflight.Group),
	}
}

// FetchProducts returns the full catalog. Concurrent callers share a
// single in-flight request.
func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "fakestore.Client.FetchProducts"

	v, err, _ := c.sfg.Do(productsPath, func() (any, error) {
		var dtos []product
		if err := c.getJSON(ctx, c.baseURL+productsPath, &dtos); err != nil {
			return nil, err
		}
		return toDomain(dtos), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v.([]domain.Product), nil
}

func (c Client) FetchProduct(
	ctx context.Context, productID int,
) (domain.Product, error) {
	const op = "fakestore.Client.FetchProduct"

	url := c.baseURL + productsPath + "/" + strconv.Itoa(productID)

	var dto product
	if err := c.getJSON(ctx, url, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	// the upstream API answers 200 with a "null" body for unknown IDs
	if dto.ID == 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: %w", op, domain.ErrProductNotFound,
		)
	}

	return dto.toDomain(), nil
}

func (c Client) FetchCategories(ctx context.Context) ([]string, error) {
	const op = "fakestore.Client.FetchCategories"

	var cs []string
	if err := c.getJSON(ctx, c.baseURL+categoriesPath, &cs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

// getJSON performs a GET with bounded retries on transient failures.
// Any failure left after the retry budget is reported as the generic
// catalog-unavailable condition; callers own further retry policy.
func (c Client) getJSON(ctx context.Context, url string, v any) error {
	retryConfig := retry.Config{
		MaxAttempts: maxAttempts,
		Backoff:     retry.ExponentialBackoff(retryDelay),
		ShouldRetry: isTransient,
	}

	err := retry.Do(ctx, retryConfig, func() error {
		return c.getJSONOnce(ctx, url, v)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return nil
}

func (c Client) getJSONOnce(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	res, err := c.httpCl.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode == http.StatusNotFound:
		return domain.ErrProductNotFound
	default:
		return fmt.Errorf("%w: %s", errStatus, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

func isTransient(err error) bool {
	if errors.Is(err, domain.ErrProductNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
