package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// pageSize is the page size used when walking paginated endpoints.
const pageSize = 100

// Client talks to the note store's HTTP API with Bearer token auth.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ Provider = (*Client)(nil)

// NewClient creates a store client for the given base URL and token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetNote returns the note with the given id.
func (c *Client) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := c.doJSON(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote creates a note; parentID may be empty for the default location.
func (c *Client) CreateNote(ctx context.Context, parentID, title, body string) (*models.Note, error) {
	req := models.Note{ParentID: parentID, Title: title, Body: body}
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces the title and body of an existing note.
func (c *Client) UpdateNote(ctx context.Context, id, title, body string) (*models.Note, error) {
	req := models.Note{Title: title, Body: body}
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateFolder creates a top-level folder.
func (c *Client) CreateFolder(ctx context.Context, title string) (*models.Folder, error) {
	req := models.Folder{Title: title}
	var folder models.Folder
	if err := c.doJSON(ctx, http.MethodPost, "/folders", req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// GetFolder returns the folder with the given id.
func (c *Client) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	if err := c.doJSON(ctx, http.MethodGet, "/folders/"+url.PathEscape(id), nil, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListFolderNotes returns every note in a folder, walking all pages.
func (c *Client) ListFolderNotes(ctx context.Context, folderID string) ([]models.Note, error) {
	return listPages[models.Note](ctx, c, "/folders/"+url.PathEscape(folderID)+"/notes")
}

// ListTags returns every tag in the store, walking all pages.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	return listPages[models.Tag](ctx, c, "/tags")
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, title string) (*models.Tag, error) {
	req := models.Tag{Title: title}
	var tag models.Tag
	if err := c.doJSON(ctx, http.MethodPost, "/tags", req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// AttachTag attaches a tag to a note.
func (c *Client) AttachTag(ctx context.Context, tagID, noteID string) error {
	req := map[string]string{"id": noteID}
	path := "/tags/" + url.PathEscape(tagID) + "/notes"
	return c.doJSON(ctx, http.MethodPost, path, req, nil)
}

// SearchNotes runs a full-text query over notes.
func (c *Client) SearchNotes(ctx context.Context, query string, limit int) ([]models.Note, error) {
	return search[models.Note](ctx, c, query, "note", limit)
}

// SearchFolders searches folders by title.
func (c *Client) SearchFolders(ctx context.Context, query string) ([]models.Folder, error) {
	return search[models.Folder](ctx, c, query, "folder", 0)
}

// SearchTags searches tags by title.
func (c *Client) SearchTags(ctx context.Context, query string) ([]models.Tag, error) {
	return search[models.Tag](ctx, c, query, "tag", 0)
}

// Selection returns the note/folder currently selected in the store's UI.
func (c *Client) Selection(ctx context.Context) (*models.Selection, error) {
	var sel models.Selection
	if err := c.doJSON(ctx, http.MethodGet, "/selection", nil, &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

// page is one page of a paginated listing.
type page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// listPages walks a paginated endpoint until has_more is false.
func listPages[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	for pageNum := 1; ; pageNum++ {
		var p page[T]
		q := fmt.Sprintf("%s?page=%d&limit=%d", path, pageNum, pageSize)
		if err := c.doJSON(ctx, http.MethodGet, q, nil, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Items...)
		if !p.HasMore {
			return out, nil
		}
	}
}

func search[T any](ctx context.Context, c *Client, query, typ string, limit int) ([]T, error) {
	v := url.Values{}
	v.Set("query", query)
	v.Set("type", typ)
	if limit > 0 {
		v.Set("limit", fmt.Sprint(limit))
	}
	var p page[T]
	if err := c.doJSON(ctx, http.MethodGet, "/search?"+v.Encode(), nil, &p); err != nil {
		return nil, err
	}
	return p.Items, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("store: %s %s: %w", method, path, apperr.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(method, path string, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("store: %s %s: %d: %s", method, path, resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("store: %s %s: status %d", method, path, resp.StatusCode)
}
