package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cnctools/catalog/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// maxReportedPages bounds total_pages before it is converted to int.
const maxReportedPages = 1 << 20

const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// feedPage is one decoded page of the product feed.
type feedPage struct {
	Products   []domain.Product
	TotalPages int
}

type feedParser struct {
	format         string
	scriptSelector string
}

func newFeedParser(format, scriptSelector string) *feedParser {
	if format == "" {
		format = FormatJSON
	}
	return &feedParser{
		format:         format,
		scriptSelector: scriptSelector,
	}
}

func (p *feedParser) Parse(body []byte) (*feedPage, error) {
	if p.format == FormatHTML {
		raw, err := p.extractScript(body)
		if err != nil {
			return nil, err
		}
		body = raw
	}
	return p.parseJSON(body)
}

// extractScript pulls the JSON payload out of the storefront page.
func (p *feedParser) extractScript(html []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	script := doc.Find(p.scriptSelector).First()
	if script.Length() == 0 {
		return nil, fmt.Errorf("feed script %q not found", p.scriptSelector)
	}

	return []byte(strings.TrimSpace(script.Text())), nil
}

func (p *feedParser) parseJSON(body []byte) (*feedPage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty feed body")
	}

	// bare array of products
	if body[0] == '[' {
		return &feedPage{Products: decodeProducts(body), TotalPages: 1}, nil
	}

	var envelope struct {
		Products   json.RawMessage `json:"products"`
		TotalPages domain.Field    `json:"total_pages"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	page := &feedPage{
		Products:   decodeProducts(envelope.Products),
		TotalPages: 1,
	}
	if total, ok := domain.ParseFloat(envelope.TotalPages.String()); ok && total > 1 {
		page.TotalPages = int(min(total, maxReportedPages))
	}

	return page, nil
}

// decodeProducts never fails: anything but an array yields an empty list
// and undecodable entries are dropped.
func decodeProducts(raw json.RawMessage) []domain.Product {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			log.Warnf("⚠️ Feed products is not a list, treating as empty")
		}
		return []domain.Product{}
	}

	products := make([]domain.Product, 0, len(entries))
	for i, entry := range entries {
		trimmed := bytes.TrimSpace(entry)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			log.Warnf("⚠️ Skipping feed entry %d: not an object", i)
			continue
		}

		var product domain.Product
		if err := json.Unmarshal(entry, &product); err != nil {
			log.Warnf("⚠️ Skipping feed entry %d: %v", i, err)
			continue
		}
		products = append(products, product)
	}

	return products
}
