package extract

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<ul class="srp-results">
  <li class="s-item">
    <a class="s-item__link" href="https://www.ebay.co.uk/itm/000"><span class="s-item__title">Shop on eBay</span></a>
    <span class="s-item__price">£20.00</span>
  </li>
  <li class="s-item">
    <a class="s-item__link" href="https://www.ebay.co.uk/itm/111">
      <span class="s-item__title">Dell XPS 13 Laptop</span>
    </a>
    <span class="s-item__price">£549.99</span>
    <span class="SECONDARY_INFO">Pre-owned</span>
    <span class="s-item__shipping">Free postage</span>
    <span class="s-item__seller-info-text">techdeals (1,204) 99.1%</span>
    <div class="s-item__subtitle">16GB RAM 512GB SSD</div>
  </li>
  <li class="s-item">
    <a class="s-item__link" href="https://www.ebay.co.uk/itm/222">
      <span class="s-item__title">Lenovo ThinkPad T14</span>
    </a>
  </li>
  <li class="s-item">
    <span class="s-item__title">HP EliteBook</span>
    <span class="s-item__price">£300.00</span>
  </li>
  <li class="s-item">
    <a class="s-item__link" href="https://www.ebay.co.uk/itm/333">
      <span class="s-item__title">Apple MacBook Air M1</span>
    </a>
    <span class="s-item__price">£450.00 to £520.00</span>
    <span class="s-item__condition">Refurbished</span>
  </li>
</ul>
</body></html>`

func TestListings_ExtractsValidNodes(t *testing.T) {
	records, skipped := Listings(resultsPage, 50, slog.Default())

	require.Len(t, records, 2, "placeholder and incomplete nodes must be skipped")
	assert.Equal(t, 3, skipped)

	first := records[0]
	assert.Equal(t, "Dell XPS 13 Laptop", first.Title)
	assert.Equal(t, "£549.99", first.PriceText)
	assert.Equal(t, "https://www.ebay.co.uk/itm/111", first.Link)
	assert.Equal(t, "Pre-owned", first.ConditionText)
	assert.Equal(t, "Free postage", first.ShippingText)
	assert.Equal(t, "techdeals (1,204) 99.1%", first.Seller)
	assert.Equal(t, "16GB RAM 512GB SSD", first.Description)

	second := records[1]
	assert.Equal(t, "Apple MacBook Air M1", second.Title)
	assert.Equal(t, "£450.00 to £520.00", second.PriceText)
	assert.Equal(t, "Refurbished", second.ConditionText)
	assert.Equal(t, domain.NotSpecified, second.ShippingText)
}

func TestListings_RespectsMax(t *testing.T) {
	records, _ := Listings(resultsPage, 1, slog.Default())
	require.Len(t, records, 1)
	assert.Equal(t, "Dell XPS 13 Laptop", records[0].Title)
}

func TestListings_GarbageMarkup(t *testing.T) {
	records, skipped := Listings("<div>no listings here</div>", 10, nil)
	assert.Empty(t, records)
	assert.Zero(t, skipped)

	records, _ = Listings("", 10, nil)
	assert.Empty(t, records)
}

func TestCleanBody_StripsNonContent(t *testing.T) {
	html := `<html><head><style>.x{color:red}</style></head><body>
	<nav>Menu Menu Menu</nav>
	<script>var tracking = true;</script>
	<p>  Dell XPS 13  </p>

	<p>£549.99</p>
	<footer>Copyright</footer>
	</body></html>`

	text := CleanBody(html)
	assert.Equal(t, "Dell XPS 13\n£549.99", text)
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "Menu")
}
