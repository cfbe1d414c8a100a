package catalogclient_test

import (
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/pkg/catalogclient"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$49.99", catalogclient.FormatPrice(49.99))
	assert.Equal(t, "$1,199.99", catalogclient.FormatPrice(1199.99))
	assert.Equal(t, "$0.00", catalogclient.FormatPrice(0))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "March 5, 2024", catalogclient.FormatDate(d))
	assert.Equal(t, "-", catalogclient.FormatDate(time.Time{}))
}

func TestCategories(t *testing.T) {
	cats := catalogclient.Categories()
	assert.Equal(t, []string{"electronics", "clothing", "home", "sports", "books", "other"}, cats)
	cats[0] = "changed"
	assert.Equal(t, "electronics", catalogclient.Categories()[0])
}

func TestSummarize(t *testing.T) {
	s := catalogclient.Summarize([]models.Product{
		{Price: 10, Stock: 5, Category: "sports"},
		{Price: 2.5, Stock: 20, Category: "sports"},
		{Price: 100, Stock: 0, Category: "books"},
	})
	assert.Equal(t, 3, s.Products)
	assert.Equal(t, 100.0, s.TotalValue)
	assert.Equal(t, 2, s.Categories)
	assert.Equal(t, 2, s.LowStock)
}
