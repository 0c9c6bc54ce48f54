// Package github provides a resilient GitHub REST v3 client for the sweep
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// getJSON fetches path and decodes the body into out.
// Returns the response ETag and whether the resource was unmodified
func getJSON(ctx context.Context, c *Client, path, etag string, out any) (string, bool, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, etag)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
		}
	}()

	if resp.StatusCode == http.StatusNotModified {
		return resp.Header.Get("ETag"), true, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return "", false, &GHStatusError{Status: resp.StatusCode, Err: fmt.Errorf("%s not found", path)}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return "", false, err
	}
	return resp.Header.Get("ETag"), false, nil
}

// ListOpenPulls returns one page of open pull requests, oldest first
func (c *Client) ListOpenPulls(ctx context.Context, owner, repo string, page, perPage int) ([]Pull, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls?state=open&sort=created&direction=asc&per_page=%d&page=%d",
		owner, repo, perPage, page)
	var out []Pull
	if _, _, err := getJSON(ctx, c, path, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PullByNumber fetches one pull request with optional etag.
// The detail document carries mergeable/mergeable_state, which the
// listing omits
func (c *Client) PullByNumber(ctx context.Context, owner, repo string, number int, etag string) (Pull, string, bool, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number)
	var out Pull
	tag, notMod, err := getJSON(ctx, c, path, etag, &out)
	return out, tag, notMod, err
}

// PullFiles returns one page of changed files for a pull request
func (c *Client) PullFiles(ctx context.Context, owner, repo string, number, page, perPage int) ([]PullFile, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files?per_page=%d&page=%d", owner, repo, number, perPage, page)
	var out []PullFile
	if _, _, err := getJSON(ctx, c, path, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PullCommits returns one page of commits on a pull request branch
func (c *Client) PullCommits(ctx context.Context, owner, repo string, number, page, perPage int) ([]Commit, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/commits?per_page=%d&page=%d", owner, repo, number, perPage, page)
	var out []Commit
	if _, _, err := getJSON(ctx, c, path, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PullReviews returns one page of reviews on a pull request
func (c *Client) PullReviews(ctx context.Context, owner, repo string, number, page, perPage int) ([]Review, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews?per_page=%d&page=%d", owner, repo, number, perPage, page)
	var out []Review
	if _, _, err := getJSON(ctx, c, path, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IssueComments returns one page of conversation-tab comments
func (c *Client) IssueComments(ctx context.Context, owner, repo string, number, page, perPage int) ([]Comment, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", owner, repo, number, perPage, page)
	var out []Comment
	if _, _, err := getJSON(ctx, c, path, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewComments returns one page of inline diff comments
func (c *Client) ReviewComments(ctx context.Context, owner, repo string, number, page, perPage int) ([]Comment, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/comments?per_page=%d&page=%d", owner, repo, number, perPage, page)
	var out []Comment
	if _, _, err := getJSON(ctx, c, path, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FileContentAt returns the decoded content of a file at a ref.
// found is false on 404 so callers can treat an absent base file as a
// brand new document rather than an error
func (c *Client) FileContentAt(ctx context.Context, owner, repo, path, ref string) (string, bool, error) {
	p := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s", owner, repo, path, ref)
	resp, err := c.Do(ctx, http.MethodGet, p, "")
	if err != nil {
		return "", false, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", p).Msg("github close body failed")
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, &GHStatusError{Status: resp.StatusCode, Err: fmt.Errorf("contents %d", resp.StatusCode)}
	}

	var out struct {
		Type     string `json:"type"`
		Encoding string `json:"encoding"`
		Content  string `json:"content"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err := json.Unmarshal(b, &out); err != nil {
		return "", false, err
	}
	if out.Type != "file" {
		return "", false, nil
	}
	if out.Encoding == "base64" {
		raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(out.Content, "\n", ""))
		if err != nil {
			return "", false, fmt.Errorf("github contents decode: %w", err)
		}
		return string(raw), true, nil
	}
	return out.Content, true, nil
}
