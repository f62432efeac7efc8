package scraper

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
)

// extractProducts walks the parsed page and collects product cards. A card
// is a div or anchor whose class mentions product/card/item and that sits
// outside nav, header and footer chrome.
func extractProducts(root *html.Node) []catalog.Product {
	var products []catalog.Product

	var walk func(n *html.Node, inChrome bool)
	walk = func(n *html.Node, inChrome bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "nav", "header", "footer":
				inChrome = true
			case "div", "a":
				if !inChrome && classContains(n, "product", "card", "item") {
					if p, ok := extractCard(n); ok {
						products = append(products, p)
						return // don't descend into an extracted card
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inChrome)
		}
	}
	walk(root, false)

	return products
}

// extractCard pulls title, price and image out of one candidate card. Cards
// without a plausible title, and cards with neither a dirham price nor a
// real product image, are rejected.
func extractCard(card *html.Node) (catalog.Product, bool) {
	title := findText(card, []string{"h2", "h3", "h4", "span"}, "title", "name", "label")
	if n := utf8.RuneCountInString(title); n < 10 || n > 200 {
		return catalog.Product{}, false
	}

	price := findText(card, []string{"span", "div", "p"}, "price")
	image := findImage(card)

	hasPrice := strings.Contains(strings.ToUpper(price), "DH")
	hasImage := image != "" && !containsAny(strings.ToLower(image), "logo", "icon", "svg")
	if !hasPrice && !hasImage {
		return catalog.Product{}, false
	}

	return catalog.Product{Title: title, Price: price, Image: image}, true
}

// findText returns the text of the first descendant with one of the tags
// and a class mentioning one of the markers.
func findText(root *html.Node, tags []string, markers ...string) string {
	var found string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode {
			for _, tag := range tags {
				if n.Data == tag && classContains(n, markers...) {
					found = strings.TrimSpace(textContent(n))
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// findImage returns the first descendant image source, preferring src over
// the lazy-loading attributes.
func findImage(root *html.Node) string {
	var found string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, key := range []string{"src", "data-src", "data-lazy-src"} {
				if v := attr(n, key); v != "" {
					found = v
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func classContains(n *html.Node, markers ...string) bool {
	return containsAny(strings.ToLower(attr(n, "class")), markers...)
}

func containsAny(s string, markers ...string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
