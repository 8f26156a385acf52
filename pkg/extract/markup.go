package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Result-page selectors. eBay renders several markup generations at once,
// so every field gets a selector list and the first match wins.
const (
	listingSelector   = "li.s-item, div.s-item__wrapper"
	titleSelector     = ".s-item__title"
	priceSelector     = ".s-item__price, .s-item__detail--primary"
	linkSelector      = "a.s-item__link, a[href*='itm']"
	conditionSelector = ".s-item__condition, .SECONDARY_INFO"
	shippingSelector  = ".s-item__shipping, .s-item__logisticsCost"
	sellerSelector    = ".s-item__seller-info-text"
	subtitleSelector  = ".s-item__subtitle"
)

// strippedTags are removed before the page body is handed to the delegate.
var strippedTags = []string{"script", "style", "noscript", "iframe", "nav", "header", "footer", "aside", "meta", "link"}

// Listings parses one search results page and returns at most max candidate
// records in source order, plus the number of skipped listing nodes. A node
// missing any of title, price, or link is skipped; so is the "Shop on eBay"
// placeholder card. Failures are local to a node and never abort the scan.
func Listings(html string, max int, log *slog.Logger) ([]domain.Record, int) {
	if log == nil {
		log = slog.Default()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Warn("unparseable page markup", "error", err)
		return nil, 0
	}

	records := make([]domain.Record, 0, max)
	skipped := 0

	doc.Find(listingSelector).EachWithBreak(func(i int, node *goquery.Selection) bool {
		if len(records) >= max {
			return false
		}

		rec, ok := listingRecord(node)
		if !ok {
			skipped++
			log.Debug("skipping listing node", "index", i)
			return true
		}

		records = append(records, rec)
		return true
	})

	log.Info("markup extraction complete",
		"extracted", len(records),
		"skipped", skipped,
	)
	return records, skipped
}

// listingRecord extracts one candidate record from a listing node.
// Returns false when a required field is missing or the node is the
// search-page placeholder.
func listingRecord(node *goquery.Selection) (domain.Record, bool) {
	title := cleanText(node.Find(titleSelector).First().Text())
	priceText := cleanText(node.Find(priceSelector).First().Text())
	link, hasLink := node.Find(linkSelector).First().Attr("href")

	if title == "" || priceText == "" || !hasLink || strings.TrimSpace(link) == "" {
		return domain.Record{}, false
	}
	if domain.IsPlaceholderTitle(title) {
		return domain.Record{}, false
	}

	rec := domain.Record{
		Title:         title,
		PriceText:     priceText,
		Link:          strings.TrimSpace(link),
		ConditionText: textOrNotSpecified(node, conditionSelector),
		ShippingText:  textOrNotSpecified(node, shippingSelector),
	}

	if seller := cleanText(node.Find(sellerSelector).First().Text()); seller != "" {
		rec.Seller = seller
	}
	if desc := cleanText(node.Find(subtitleSelector).First().Text()); desc != "" {
		rec.Description = desc
	}

	return rec, true
}

func textOrNotSpecified(node *goquery.Selection, selector string) string {
	if txt := cleanText(node.Find(selector).First().Text()); txt != "" {
		return txt
	}
	return domain.NotSpecified
}

// cleanText trims and collapses internal whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanBody strips non-content elements from page markup and returns the
// visible text, one trimmed non-empty line per source line. This is the
// input to the chunker on the delegate extraction path.
func CleanBody(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, tag := range strippedTags {
		doc.Find(tag).Remove()
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	var lines []string
	for _, raw := range strings.Split(body.Text(), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
