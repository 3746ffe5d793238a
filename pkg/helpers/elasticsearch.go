package helpers

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// SearchDocument is the indexed projection of a course, project or opportunity.
type SearchDocument struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContentIndex mirrors searchable content into a single index, keyed by kind and id.
type ContentIndex struct {
	Client *elasticsearch.Client
	Index  string
}

func docID(kind, id string) string { return kind + ":" + id }

func (x *ContentIndex) Put(ctx context.Context, doc SearchDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req := esapi.IndexRequest{Index: x.Index, DocumentID: docID(doc.Kind, doc.ID), Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index %s: %s", docID(doc.Kind, doc.ID), res.Status())
	}
	return nil
}

func (x *ContentIndex) Remove(ctx context.Context, kind, id string) error {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: x.Index, DocumentID: docID(kind, id)}.Do(c, x.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete %s: %s", docID(kind, id), res.Status())
	}
	return nil
}

// Search runs a multi_match over title, description and tags, optionally restricted to kind.
func (x *ContentIndex) Search(ctx context.Context, q, kind string, size int) ([]SearchDocument, error) {
	b, err := json.Marshal(BuildSearchQuery(q, kind, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := x.Client.Search(
		x.Client.Search.WithContext(c),
		x.Client.Search.WithIndex(x.Index),
		x.Client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source SearchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]SearchDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// BuildSearchQuery returns the request body for Search. size is clamped to 1..50 (default 10).
func BuildSearchQuery(q, kind string, size int) map[string]any {
	if size <= 0 || size > 50 {
		size = 10
	}
	must := map[string]any{
		"multi_match": map[string]any{
			"query":  q,
			"fields": []string{"title^3", "description", "tags^2"},
		},
	}
	query := map[string]any{"bool": map[string]any{"must": must}}
	if kind != "" {
		query["bool"].(map[string]any)["filter"] = map[string]any{"term": map[string]any{"kind": kind}}
	}
	return map[string]any{"query": query, "size": size}
}
