// Package registry implements the registry port over the registry's JSON
// HTTP API, with a memory and disk cache in front of it.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/Baltazore/hex/internal/core/domain"
	goversion "github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// DefaultBaseURL is the registry API endpoint queried when no override is
// configured.
const DefaultBaseURL = "https://hex.pm/api"

// packageDoc is the registry's JSON document for one package.
type packageDoc struct {
	Name     string       `json:"name"`
	Releases []releaseDoc `json:"releases"`
}

type releaseDoc struct {
	Version      string                    `json:"version"`
	Checksum     string                    `json:"checksum"`
	Requirements map[string]requirementDoc `json:"requirements"`
}

type requirementDoc struct {
	Requirement string `json:"requirement"`
	Optional    bool   `json:"optional"`
}

// Client implements ports.Registry. Package documents are fetched once per
// process and memoized; a disk cache keeps them across processes for a short
// window.
type Client struct {
	baseURL string
	http    *http.Client
	disk    *diskCache

	mu   sync.Mutex
	memo map[string]*packageDoc
}

// NewClient creates a registry client. An empty cacheDir disables the disk
// cache; the in-process memo always applies.
func NewClient(baseURL, cacheDir string) *Client {
	var disk *diskCache
	if cacheDir != "" {
		disk = newDiskCache(cacheDir, defaultTTL)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		disk:    disk,
		memo:    make(map[string]*packageDoc),
	}
}

// Versions returns all published versions of a package, unordered.
func (c *Client) Versions(ctx context.Context, registryName string) ([]*goversion.Version, error) {
	doc, err := c.fetch(ctx, registryName)
	if err != nil {
		return nil, err
	}

	versions := make([]*goversion.Version, 0, len(doc.Releases))
	for _, rel := range doc.Releases {
		v, err := domain.ParseVersion(rel.Version)
		if err != nil {
			return nil, malformed(registryName, "unparsable release version "+rel.Version)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// Release returns the metadata of one published version.
func (c *Client) Release(ctx context.Context, registryName string, version *goversion.Version) (*domain.Release, error) {
	doc, err := c.fetch(ctx, registryName)
	if err != nil {
		return nil, err
	}

	for _, rel := range doc.Releases {
		v, err := domain.ParseVersion(rel.Version)
		if err != nil || !v.Equal(version) {
			continue
		}

		// The requirements arrive as a JSON map; sort the names so the
		// resolver sees the same declaration order on every call.
		names := make([]string, 0, len(rel.Requirements))
		for name := range rel.Requirements {
			names = append(names, name)
		}
		sort.Strings(names)

		raws := make([]domain.RawRequirement, 0, len(names))
		for _, name := range names {
			req := rel.Requirements[name]
			raws = append(raws, domain.RawRequirement{
				Name:       name,
				Constraint: req.Requirement,
				Optional:   req.Optional,
			})
		}
		return &domain.Release{
			Version:      v,
			Checksum:     rel.Checksum,
			Requirements: raws,
		}, nil
	}
	return nil, malformed(registryName, "release "+version.Original()+" missing from package document")
}

// fetch returns the package document, consulting memo, disk cache, and
// finally the registry. A cached document that no longer decodes counts as a
// cache miss; ErrMalformedMetadata is only attributed to bytes that came
// straight from the registry.
func (c *Client) fetch(ctx context.Context, name string) (*packageDoc, error) {
	c.mu.Lock()
	if doc, ok := c.memo[name]; ok {
		c.mu.Unlock()
		return doc, nil
	}
	c.mu.Unlock()

	if data, ok := c.disk.get(c.baseURL, name); ok {
		var doc packageDoc
		if err := json.Unmarshal(data, &doc); err == nil {
			c.memoize(name, &doc)
			return &doc, nil
		}
	}

	data, err := c.download(ctx, name)
	if err != nil {
		return nil, err
	}

	var doc packageDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformed(name, err.Error())
	}
	c.disk.put(c.baseURL, name, data)

	c.memoize(name, &doc)
	return &doc, nil
}

func (c *Client) memoize(name string, doc *packageDoc) {
	c.mu.Lock()
	c.memo[name] = doc
	c.mu.Unlock()
}

func (c *Client) download(ctx context.Context, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/packages/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build registry request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, "registry request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, zerr.With(domain.ErrPackageNotFound, "package", name)
	default:
		err := zerr.With(zerr.New("unexpected registry status"), "status", resp.StatusCode)
		return nil, zerr.With(err, "package", name)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read registry response")
	}
	return data, nil
}

func malformed(name, reason string) error {
	err := zerr.With(domain.ErrMalformedMetadata, "package", name)
	return zerr.With(err, "reason", reason)
}
