// Package catalog fetches book listings from the OpenLibrary API, re-mapping
// the provider schema onto the Book entity.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/mybooks/server/internal/entities"
)

const unknownAuthor = "Unknown"

// Client is a rate-limited OpenLibrary API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	subject    string
	limit      int
	limiter    *rate.Limiter
}

// NewClient creates an OpenLibrary client. The trending shelf is served from
// the given subject listing; limit caps both search and trending results.
func NewClient(subject string, limit int) *Client {
	if subject == "" {
		subject = "science_fiction"
	}
	if limit <= 0 {
		limit = 20
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   "https://openlibrary.org",
		coversURL: "https://covers.openlibrary.org",
		subject:   subject,
		limit:     limit,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1), // 1 request per second
	}
}

// Search queries the catalog and maps the result documents to Book entities.
func (c *Client) Search(ctx context.Context, query string) ([]entities.Book, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=%d", c.baseURL, url.QueryEscape(query), c.limit)
	var result searchResult
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	books := make([]entities.Book, 0, len(result.Docs))
	for _, doc := range result.Docs {
		book := entities.Book{
			ID:          doc.Key,
			Title:       doc.Title,
			Author:      unknownAuthor,
			PublishYear: doc.FirstPublishYear,
			Description: doc.Subtitle,
		}
		if len(doc.AuthorName) > 0 {
			book.Author = doc.AuthorName[0]
		}
		if doc.CoverI != 0 {
			book.Cover = c.coverURL(doc.CoverI)
		}
		books = append(books, book)
	}
	return books, nil
}

// Trending returns the subject listing used as the home-screen shelf.
func (c *Client) Trending(ctx context.Context) ([]entities.Book, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	subjectURL := fmt.Sprintf("%s/subjects/%s.json?limit=%d", c.baseURL, c.subject, c.limit)
	var result subjectResult
	if err := c.getJSON(ctx, subjectURL, &result); err != nil {
		return nil, fmt.Errorf("fetch trending books: %w", err)
	}

	books := make([]entities.Book, 0, len(result.Works))
	for _, work := range result.Works {
		book := entities.Book{
			ID:          work.Key,
			Title:       work.Title,
			Author:      unknownAuthor,
			PublishYear: work.FirstPublishYear,
		}
		if len(work.Authors) > 0 && work.Authors[0].Name != "" {
			book.Author = work.Authors[0].Name
		}
		if work.CoverID != 0 {
			book.Cover = c.coverURL(work.CoverID)
		}
		books = append(books, book)
	}
	return books, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "MyBooks/1.0 (https://github.com/mybooks/server)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) coverURL(coverID int) string {
	return fmt.Sprintf("%s/b/id/%d-L.jpg", c.coversURL, coverID)
}

// OpenLibrary API response types (internal)

type searchResult struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int      `json:"cover_i"`
}

type subjectResult struct {
	Works []subjectWork `json:"works"`
}

type subjectWork struct {
	Key              string       `json:"key"`
	Title            string       `json:"title"`
	Authors          []subjectRef `json:"authors"`
	FirstPublishYear int          `json:"first_publish_year"`
	CoverID          int          `json:"cover_id"`
}

type subjectRef struct {
	Name string `json:"name"`
}
