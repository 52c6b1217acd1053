package meiligo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"meiligo/internal/httpclient"
	"meiligo/meilierr"
)

// Resource paths, relative to the configured base URL.
const (
	pathHealth  = "/health"
	pathKeys    = "/keys"
	pathVersion = "/version"
	pathStats   = "/stats"
	pathDumps   = "/dumps"
	pathIndexes = "/indexes"
	pathTasks   = "/tasks"
)

// Client is the entry point to the search service. It owns the shared
// HTTP session; every Index handle spawned from it reuses that session
// and the same read-only configuration.
type Client struct {
	config Config
	http   *httpclient.Client
	logger zerolog.Logger
}

// NewClient creates a client for the service described by cfg.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	http := httpclient.New(httpclient.Options{
		BaseURL: cfg.URL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
	logger := log.With().Str("component", "meiligo").Logger()
	http.SetLogger(logger)
	return &Client{config: cfg, http: http, logger: logger}, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases the underlying session. The client stays usable: the
// next request transparently opens a fresh session.
func (c *Client) Close() {
	c.http.Close()
}

// Health reads the service health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if _, err := c.http.Get(ctx, pathHealth, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IsHealthy reports whether the service answers its health endpoint.
func (c *Client) IsHealthy(ctx context.Context) bool {
	_, err := c.Health(ctx)
	return err == nil
}

// Version reads the service version.
func (c *Client) Version(ctx context.Context) (*Version, error) {
	var out Version
	if _, err := c.http.Get(ctx, pathVersion, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Keys reads the service API keys. The payload shape is owned by the
// server and passed through as-is.
func (c *Client) Keys(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if _, err := c.http.Get(ctx, pathKeys, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats reads service-wide statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if _, err := c.http.Get(ctx, pathStats, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDump triggers the creation of a service dump.
func (c *Client) CreateDump(ctx context.Context) (*Dump, error) {
	var out Dump
	if _, err := c.http.Post(ctx, pathDumps, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DumpStatus reads the status of a dump creation.
func (c *Client) DumpStatus(ctx context.Context, uid string) (*Dump, error) {
	var out Dump
	if _, err := c.http.Get(ctx, pathDumps+"/"+uid+"/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIndex enqueues the creation of an index. primaryKey may be
// empty, leaving the server to infer it on first document addition.
func (c *Client) CreateIndex(ctx context.Context, uid, primaryKey string) (*TaskInfo, error) {
	body := map[string]any{"uid": uid}
	if primaryKey != "" {
		body["primaryKey"] = primaryKey
	}
	var task TaskInfo
	if _, err := c.http.Post(ctx, pathIndexes, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Index returns a local handle on an index without any HTTP call. The
// index may or may not exist server-side.
func (c *Client) Index(uid string) *Index {
	return &Index{http: c.http, UID: uid}
}

// GetIndex fetches an index and returns a handle with a fresh metadata
// snapshot. A missing index surfaces as an APIError with the
// index_not_found code.
func (c *Client) GetIndex(ctx context.Context, uid string) (*Index, error) {
	index := c.Index(uid)
	if err := index.FetchInfo(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

// RawIndex fetches an index as the raw payload the server returned.
func (c *Client) RawIndex(ctx context.Context, uid string) (map[string]any, error) {
	var out map[string]any
	if _, err := c.http.Get(ctx, pathIndexes+"/"+uid, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListIndexes fetches all indexes as handles with metadata snapshots.
func (c *Client) ListIndexes(ctx context.Context) ([]*Index, error) {
	var infos []IndexInfo
	if _, err := c.http.Get(ctx, pathIndexes, &infos); err != nil {
		return nil, err
	}
	indexes := make([]*Index, 0, len(infos))
	for _, info := range infos {
		index := c.Index(info.UID)
		index.applyInfo(info)
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// RawIndexes fetches all indexes as the raw payload the server returned.
func (c *Client) RawIndexes(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if _, err := c.http.Get(ctx, pathIndexes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrCreateIndex fetches an index, creating it first when it does not
// exist yet. Only the index_not_found error code triggers creation;
// every other error propagates unchanged.
func (c *Client) GetOrCreateIndex(ctx context.Context, uid, primaryKey string) (*Index, error) {
	index, err := c.GetIndex(ctx, uid)
	if err == nil {
		return index, nil
	}
	if !meilierr.IsCode(err, meilierr.CodeIndexNotFound) {
		return nil, err
	}
	task, err := c.CreateIndex(ctx, uid, primaryKey)
	if err != nil {
		return nil, err
	}
	created, err := c.WaitForTask(ctx, task.TaskUID, nil)
	if err != nil {
		return nil, err
	}
	if created.Status == TaskFailed {
		return nil, taskFailure("create index "+uid, created)
	}
	return c.GetIndex(ctx, uid)
}

// DeleteIndex enqueues the deletion of an index.
func (c *Client) DeleteIndex(ctx context.Context, uid string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := c.http.Delete(ctx, pathIndexes+"/"+uid, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteIndexIfExists deletes an index and reports whether a deletion
// actually happened. Only the index_not_found error code is swallowed.
func (c *Client) DeleteIndexIfExists(ctx context.Context, uid string) (bool, error) {
	if _, err := c.DeleteIndex(ctx, uid); err != nil {
		if meilierr.IsCode(err, meilierr.CodeIndexNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Tasks lists all tasks across indexes.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var out TaskList
	if _, err := c.http.Get(ctx, pathTasks, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Task fetches one task by uid.
func (c *Client) Task(ctx context.Context, taskUID int64) (*Task, error) {
	var out Task
	if _, err := c.http.Get(ctx, fmt.Sprintf("%s/%d", pathTasks, taskUID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForTask polls a task until it reaches a terminal status or the
// wait times out. nil params use DefaultWaitTimeout and
// DefaultWaitInterval.
func (c *Client) WaitForTask(ctx context.Context, taskUID int64, params *WaitParams) (*Task, error) {
	return awaitTask(ctx, func(ctx context.Context) (*Task, error) {
		return c.Task(ctx, taskUID)
	}, taskUID, params)
}

// taskFailure turns a failed task record into an error carrying the
// server's error code so callers can still branch on it.
func taskFailure(operation string, task *Task) error {
	if task.Error != nil {
		return &meilierr.APIError{
			Code:    task.Error.Code,
			Message: fmt.Sprintf("%s: task %d failed: %s", operation, task.UID, task.Error.Message),
			Link:    task.Error.Link,
		}
	}
	return fmt.Errorf("%s: task %d failed", operation, task.UID)
}
