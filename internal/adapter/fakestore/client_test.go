package fakestore_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/smartshop/internal/adapter/fakestore"
	"github.com/niksmo/smartshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
	{
		"id": 1,
		"title": "Fjallraven Backpack",
		"price": 109.95,
		"description": "Your perfect pack for everyday use",
		"category": "men's clothing",
		"image": "https://example.test/1.jpg",
		"rating": {"rate": 3.9, "count": 120}
	},
	{
		"id": 2,
		"title": "Mens Casual T-Shirt",
		"price": 22.3,
		"description": "Slim-fitting style",
		"category": "men's clothing",
		"image": "https://example.test/2.jpg",
		"rating": {"rate": 4.1, "count": 259}
	}
]`

const productJSON = `{
	"id": 1,
	"title": "Fjallraven Backpack",
	"price": 109.95,
	"description": "Your perfect pack for everyday use",
	"category": "men's clothing",
	"image": "https://example.test/1.jpg",
	"rating": {"rate": 3.9, "count": 120}
}`

func newClient(t *testing.T, handler http.Handler) fakestore.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return fakestore.NewClient(srv.URL, 5*time.Second)
}

func TestFetchProducts(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(productsJSON))
		})

		cl := newClient(t, mux)

		got, err := cl.FetchProducts(t.Context())
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, "Fjallraven Backpack", got[0].Title)
		assert.InDelta(t, 109.95, got[0].Price, 1e-9)
		assert.Equal(t, "men's clothing", got[0].Category)
		assert.InDelta(t, 3.9, got[0].Rating.Rate, 1e-9)
		assert.Equal(t, 120, got[0].Rating.Count)
	})

	t.Run("RetriesTransientFailure", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(productsJSON))
		})

		cl := newClient(t, mux)

		got, err := cl.FetchProducts(t.Context())
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("ConcurrentCallersShareOneRequest", func(t *testing.T) {
		const nCallers = 8

		var calls atomic.Int32
		gate := make(chan struct{})
		arrived := make(chan struct{}, 1)

		mux := http.NewServeMux()
		mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			select {
			case arrived <- struct{}{}:
			default:
			}
			<-gate
			w.Write([]byte(productsJSON))
		})

		cl := newClient(t, mux)

		results := make(chan []domain.Product, nCallers)
		var wg sync.WaitGroup
		for i := 0; i < nCallers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := cl.FetchProducts(t.Context())
				assert.NoError(t, err)
				results <- got
			}()
		}

		// hold the upstream response until every caller had time to
		// join the in-flight request
		<-arrived
		time.Sleep(100 * time.Millisecond)
		close(gate)
		wg.Wait()
		close(results)

		assert.Equal(t, int32(1), calls.Load())
		for got := range results {
			require.Len(t, got, 2)
			assert.Equal(t, 1, got[0].ID)
			assert.Equal(t, 2, got[1].ID)
		}
	})

	t.Run("PersistentFailure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		cl := newClient(t, mux)

		_, err := cl.FetchProducts(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestFetchProduct(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /products/1", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(productJSON))
		})

		cl := newClient(t, mux)

		got, err := cl.FetchProduct(t.Context(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)
		assert.Equal(t, "Fjallraven Backpack", got.Title)
	})

	t.Run("NotFoundStatus", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /products/42", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		cl := newClient(t, mux)

		_, err := cl.FetchProduct(t.Context(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("NullBodyMeansNotFound", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /products/42", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		})

		cl := newClient(t, mux)

		_, err := cl.FetchProduct(t.Context(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestFetchCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"GET /products/categories",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["electronics","jewelery","men's clothing"]`))
		},
	)

	cl := newClient(t, mux)

	got, err := cl.FetchCategories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing"}, got)
}
