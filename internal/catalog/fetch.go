// internal/catalog/fetch.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/getllm/getllm/internal/logging"
	"github.com/getllm/getllm/internal/util"
)

// userAgent identifies catalog requests to the registry.
const userAgent = "getllm/1.0 (+https://github.com/getllm/getllm)"

// paramSizePattern matches parameter-count mentions such as "7b", "6.7b" or "135m".
var paramSizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)([bm])\b`)

// Fetcher retrieves the model catalog over HTTP. JSON payloads decode through
// a tolerant per-entry parser; HTML payloads are scraped from the public
// library page.
type Fetcher struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

// NewFetcher returns a Fetcher for the given registry URL.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		URL:     url,
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

// Fetch implements Source. The second return counts malformed entries that
// were skipped.
func (f *Fetcher) Fetch(ctx context.Context) ([]Model, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: f.Timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		logging.LogRequest(http.MethodGet, f.URL, 0)
		return nil, 0, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()
	logging.LogRequest(http.MethodGet, f.URL, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return parseJSON(resp.Body)
	}
	return parseHTML(resp.Body)
}

// parseJSON decodes a JSON catalog payload. Both a bare array and an object
// wrapping a "models" array are accepted. Entries that are not objects or
// lack a usable name are skipped and counted, never fatal.
func parseJSON(r io.Reader) ([]Model, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read catalog payload: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapper struct {
			Models []json.RawMessage `json:"models"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil || wrapper.Models == nil {
			return nil, 0, fmt.Errorf("decode catalog payload: %w", err)
		}
		raw = wrapper.Models
	}

	var entries []Model
	skipped := 0
	for _, itemRaw := range raw {
		var item map[string]any
		if err := json.Unmarshal(itemRaw, &item); err != nil {
			skipped++
			continue
		}
		m, ok := parseEntry(item)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, m)
	}
	return entries, skipped, nil
}

// parseEntry builds a Model from one decoded object, ignoring unknown fields
// and accepting the name/description/size aliases registries use.
func parseEntry(item map[string]any) (Model, bool) {
	name, _ := item["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return Model{}, false
	}

	m := Model{Name: name}
	for _, key := range []string{"description", "desc"} {
		if v, ok := item[key].(string); ok && strings.TrimSpace(v) != "" {
			m.Description = strings.TrimSpace(v)
			break
		}
	}
	for _, key := range []string{"size_bytes", "size"} {
		switch v := item[key].(type) {
		case float64:
			if v > 0 {
				m.SizeBytes = int64(v)
			}
		case string:
			m.SizeBytes = util.ParseHumanSize(v)
		}
		if m.SizeBytes > 0 {
			break
		}
	}
	return m, true
}

// parseHTML scrapes the public library page: each h2 holds a model name and
// the following paragraph its description. Parameter-size mentions expand
// into one tag-qualified entry per size, matching how the runtime names
// installable tags ("codellama:7b"). Download sizes are not published on the
// page, so scraped entries carry no byte size.
func parseHTML(r io.Reader) ([]Model, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse catalog page: %w", err)
	}

	var entries []Model
	skipped := 0
	doc.Find("h2").Each(func(_ int, sel *goquery.Selection) {
		name := strings.ToLower(strings.Join(strings.Fields(sel.Text()), " "))
		if name == "" {
			skipped++
			return
		}
		desc := strings.Join(strings.Fields(sel.NextAllFiltered("p").First().Text()), " ")

		sizes := paramSizePattern.FindAllStringSubmatch(desc+" "+name, -1)
		if len(sizes) == 0 {
			entries = append(entries, Model{Name: name, Description: desc})
			return
		}
		for _, match := range sizes {
			entries = append(entries, Model{
				Name:        taggedName(name, strings.ToLower(match[1]+match[2])),
				Description: desc,
			})
		}
	})

	if len(entries) == 0 {
		return nil, skipped, fmt.Errorf("parse catalog page: no model entries found")
	}
	return entries, skipped, nil
}

// taggedName appends a parameter-size tag unless the name already carries one.
func taggedName(name, tag string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return name + ":" + tag
}
