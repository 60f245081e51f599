package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConcurrentDistinctSearches(t *testing.T) {
	var count atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		name := r.URL.Query().Get("name")
		w.Write(jsonResponse([]map[string]any{{"id": 1, "name": name}}))
	})

	const workers = 50
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			query := strings.Repeat("a", i+1)
			page, err := client.SearchProducts(context.Background(), ListParams{Query: query, Page: 1})
			if err == nil && page.Items[0].Name != query {
				err = assert.AnError
			}
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(workers), count.Load())
}

func TestClientHandlesMalformedJSON(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	_, err := client.SearchProducts(context.Background(), ListParams{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClientUnicodeQuery(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "obat 🚀 batuk", r.URL.Query().Get("name"))
		w.Write(jsonResponse([]map[string]any{{"id": 1, "name": "Obat 🚀 Batuk"}}))
	})

	page, err := client.SearchProducts(context.Background(), ListParams{Query: "obat 🚀 batuk"})
	require.NoError(t, err)
	assert.Equal(t, "Obat 🚀 Batuk", page.Items[0].Name)
}
