// Package googletasks reads task lists from the Google Tasks API for import.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// PageSize is the number of items requested per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope requested by login. Import never writes.
	Scope = tasks.TasksReadonlyScope
)

// ErrAuth indicates a missing, expired or revoked token.
var ErrAuth = errors.New("token expired or revoked (run: todo login)")

// Client reads task lists and tasks from Google Tasks.
type Client struct {
	svc *tasks.Service
	log *zap.Logger
}

// OAuthConfig loads oauth_client.json from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored OAuth token.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.TokenFile, err)
	}
	return &token, nil
}

// New creates a client from the stored OAuth client and token.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, log: logOrNop(log)}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint
// (for testing). An empty endpoint uses the API default.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, log: zap.NewNop()}, nil
}

// Snapshot returns every task list with all of its tasks, including
// completed and hidden ones, in API order.
func (c *Client) Snapshot(ctx context.Context) ([]service.ImportedList, error) {
	remote, err := c.fetchLists(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]service.ImportedList, 0, len(remote))
	for _, l := range remote {
		items, err := c.fetchTasks(ctx, l.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch list: %s: %w", l.Title, err)
		}
		c.log.Debug("fetched remote list", zap.String("list", l.Title), zap.Int("tasks", len(items)))
		result = append(result, service.ImportedList{Name: l.Title, Tasks: items})
	}
	return result, nil
}

func (c *Client) fetchLists(ctx context.Context) ([]*tasks.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []*tasks.TaskList
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		result = append(result, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

func (c *Client) fetchTasks(ctx context.Context, listID string) ([]service.ImportedTask, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.ImportedTask
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				if t.Deleted {
					continue
				}
				result = append(result, convertTask(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

func convertTask(t *tasks.Task) service.ImportedTask {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "(untitled)"
	}
	return service.ImportedTask{
		Title:       title,
		Description: strings.TrimSpace(t.Notes),
		DueDate:     dueDate(t.Due),
		Completed:   t.Status == "completed",
	}
}

// dueDate extracts YYYY-MM-DD from an RFC 3339 timestamp. The API
// discards the time of day, so only the date is kept.
func dueDate(due string) string {
	if len(due) < 10 {
		return ""
	}
	d := due[:10]
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return ""
	}
	return d
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAuth
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return ErrAuth
	}

	return err
}

func logOrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
