package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"danawa-crawler/adapters"
)

const boilerListing = `<html><body><ul class="product_list">
<li class="prod_item prod_layer"><a name="productName">A</a> 소비전력 표기 없음 1,000원</li>
<li class="prod_item prod_layer"><a name="productName">B</a> 소비전력 표기 없음 2,000원</li>
<li class="prod_item prod_layer"><a name="productName">C</a> 소비전력 표기 없음 3,000원</li>
</ul></body></html>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func listingServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCrawl_TextReport(t *testing.T) {
	server := listingServer(t, http.StatusOK, boilerListing)

	out, err := execute(t,
		"--base-url", server.URL+"/list/?cate=",
		"--category", "10330122",
		"--cache", "none",
		"--delay", "10ms",
		"--format", "text",
		"--log-level", "error",
	)

	require.NoError(t, err)
	assert.Equal(t,
		"Name: A, Power: 0, Price: 1000\nName: B, Power: 0, Price: 2000\nName: C, Power: 0, Price: 3000\n",
		out)
}

func TestCrawl_OutputFile(t *testing.T) {
	server := listingServer(t, http.StatusOK, boilerListing)
	path := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t,
		"--base-url", server.URL+"/list/?cate=",
		"--category", "10330122",
		"--cache", "none",
		"--delay", "10ms",
		"--format", "json",
		"--output", path,
		"--log-level", "error",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price": 3000`)
}

func TestCrawl_ErrorState(t *testing.T) {
	server := listingServer(t, http.StatusOK, "<html><body>점검 중</body></html>")

	_, err := execute(t,
		"--base-url", server.URL+"/list/?cate=",
		"--category", "10330122",
		"--cache", "none",
		"--delay", "10ms",
		"--output", "",
		"--format", "text",
		"--log-level", "error",
	)

	assert.ErrorIs(t, err, adapters.ErrNoProducts)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := execute(t, "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "10330122")
	assert.Contains(t, out, "kWh(월)")
}
