package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"danawa-crawler/adapters"
	"danawa-crawler/internal/types"
	"danawa-crawler/report"
)

func listingHTML(items ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for _, item := range items {
		b.WriteString(`<li class="prod_item prod_layer">` + item + "</li>")
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

func item(name, body string) string {
	return fmt.Sprintf(`<a name="productName">%s</a> %s`, name, body)
}

func newTestExtractor(t *testing.T, page string) *DanawaExtractor {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	config := types.DefaultConfig()
	config.BaseURL = server.URL + "/list/?cate="
	config.RequestDelay = 10 * time.Millisecond
	config.MaxRetries = 0

	extractor := NewDanawaExtractor(config, logrus.New(), nil)
	t.Cleanup(extractor.Close)
	return extractor
}

func TestNewDanawaExtractor(t *testing.T) {
	config := types.DefaultConfig()
	logger := logrus.New()

	extractor := NewDanawaExtractor(config, logger, nil)
	defer extractor.Close()

	assert.NotNil(t, extractor.adapter)
	assert.Equal(t, logger, extractor.logger)
	assert.Equal(t, config, extractor.adapter.Config())
}

// Category without power data: powers are never extracted and every
// product reports zero power.
func TestExtract_NoPowerCategoryReport(t *testing.T) {
	page := listingHTML(
		item("A", "소비전력 정보 1,000원"),
		item("B", "소비전력 정보 2,000원"),
		item("C", "소비전력 정보 3,000원"),
	)
	extractor := newTestExtractor(t, page)

	result, err := extractor.Extract(context.Background(), "10330122")
	require.NoError(t, err)

	expected := "Name: A, Power: 0, Price: 1000\n" +
		"Name: B, Power: 0, Price: 2000\n" +
		"Name: C, Power: 0, Price: 3000"
	assert.Equal(t, expected, report.Text(result.Products))
	assert.Equal(t, "보일러", result.Category.Name)
	assert.Empty(t, result.Warnings)
}

func TestExtract_PowerCategory(t *testing.T) {
	page := listingHTML(
		item("TV-1", "소비전력: 120W 1,500,000원"),
		item("TV-2", "소비전력: 95.5W 990,000원"),
	)
	extractor := newTestExtractor(t, page)

	result, err := extractor.Extract(context.Background(), "1022811")
	require.NoError(t, err)

	assert.Equal(t, []types.ProductInfo{
		{Name: "TV-1", Power: 120, Price: 1500000, PowerFound: true},
		{Name: "TV-2", Power: 95.5, Price: 990000, PowerFound: true},
	}, result.Products)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FetchedAt.IsZero())
}

func TestExtract_MissingValuesDefaultToZero(t *testing.T) {
	page := listingHTML(
		item("A", "소비전력: 10W 1,000원"),
		item("B", "가격비교 예정"),
		item("C", "출시 예정"),
	)
	extractor := newTestExtractor(t, page)

	result, err := extractor.Extract(context.Background(), "1022811")
	require.NoError(t, err)

	require.Len(t, result.Products, 3)
	assert.Equal(t, types.ProductInfo{Name: "B", Power: 0, Price: 0}, result.Products[1])
	assert.Equal(t, types.ProductInfo{Name: "C", Power: 0, Price: 0}, result.Products[2])
	assert.Len(t, result.Warnings, 2)
}

// A price ahead of the first marker lands in the preamble segment and shifts
// the prices against the names; the result carries a warning instead of a fix.
func TestExtract_PreamblePriceIsFlagged(t *testing.T) {
	page := listingHTML(
		item("A", "990원 소비전력: 10W 1,000원"),
		item("B", "소비전력: 20W 2,000원"),
	)
	extractor := newTestExtractor(t, page)

	result, err := extractor.Extract(context.Background(), "1022811")
	require.NoError(t, err)

	assert.Equal(t, int64(990), result.Products[0].Price)
	assert.Equal(t, int64(1000), result.Products[1].Price)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "extracted 3 prices for 2 products")
}

func TestExtract_MinifiedBlocksStaySeparate(t *testing.T) {
	page := `<html><body><ul><li class="prod_item prod_layer"><p><a name="productName">A</a></p>` +
		`<div class="spec_list">소비전력: 150W / 용량 150</div>` +
		`<p class="price_sect">1,000원</p></li></ul></body></html>`
	extractor := newTestExtractor(t, page)

	result, err := extractor.Extract(context.Background(), "1022811")
	require.NoError(t, err)

	assert.Equal(t, []types.ProductInfo{{Name: "A", Power: 150, Price: 1000, PowerFound: true}}, result.Products)
}

func TestExtract_NoProducts(t *testing.T) {
	extractor := newTestExtractor(t, "<html><body>empty</body></html>")

	result, err := extractor.Extract(context.Background(), "1022811")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, adapters.ErrNoProducts)
	assert.Contains(t, err.Error(), "category 1022811")
}

func TestExtract_UnknownCategory(t *testing.T) {
	extractor := newTestExtractor(t, listingHTML(item("X", "소비전력 5kW 10,000원")))

	result, err := extractor.Extract(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "123", result.Category.Code)
	assert.Equal(t, []types.ProductInfo{{Name: "X", Power: 5, Price: 10000, PowerFound: true}}, result.Products)
}

func TestAlignmentWarnings(t *testing.T) {
	assert.Empty(t, alignmentWarnings(2, true, []float64{1, 2}, []int64{1, 2}))
	assert.Empty(t, alignmentWarnings(2, false, nil, []int64{1, 2}))
	assert.Len(t, alignmentWarnings(2, true, nil, nil), 2)
	assert.Len(t, alignmentWarnings(0, false, nil, []int64{1}), 1)
}
