package meiligo

import (
	"context"
	"fmt"
	"time"

	"meiligo/internal/httpclient"
	"meiligo/meilierr"
)

// Index is a client-side handle on one index. The metadata snapshot
// (primary key, timestamps) reflects the last fetch and is not kept in
// sync with server-side changes made elsewhere; call FetchInfo to
// refresh it.
type Index struct {
	http *httpclient.Client

	UID        string
	PrimaryKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func indexPath(uid string) string {
	return pathIndexes + "/" + uid
}

func (i *Index) applyInfo(info IndexInfo) {
	i.PrimaryKey = info.PrimaryKey
	i.CreatedAt = info.CreatedAt.Time
	i.UpdatedAt = info.UpdatedAt.Time
}

// FetchInfo refreshes the metadata snapshot from the server.
func (i *Index) FetchInfo(ctx context.Context) error {
	var info IndexInfo
	if _, err := i.http.Get(ctx, indexPath(i.UID), &info); err != nil {
		return err
	}
	i.applyInfo(info)
	return nil
}

// FetchPrimaryKey refreshes the metadata snapshot and returns the
// primary key. Empty means the server has not inferred one yet.
func (i *Index) FetchPrimaryKey(ctx context.Context) (string, error) {
	if err := i.FetchInfo(ctx); err != nil {
		return "", err
	}
	return i.PrimaryKey, nil
}

// UpdatePrimaryKey enqueues a primary key change. The local snapshot is
// not touched; refetch after the task succeeds to observe the change.
func (i *Index) UpdatePrimaryKey(ctx context.Context, primaryKey string) (*TaskInfo, error) {
	var task TaskInfo
	body := map[string]any{"primaryKey": primaryKey}
	if _, err := i.http.Put(ctx, indexPath(i.UID), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete enqueues the deletion of the index.
func (i *Index) Delete(ctx context.Context) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Delete(ctx, indexPath(i.UID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteIfExists deletes the index and reports whether a deletion
// actually happened. Only the index_not_found error code is swallowed.
func (i *Index) DeleteIfExists(ctx context.Context) (bool, error) {
	if _, err := i.Delete(ctx); err != nil {
		if meilierr.IsCode(err, meilierr.CodeIndexNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Stats reads statistics for this index.
func (i *Index) Stats(ctx context.Context) (*IndexStats, error) {
	var out IndexStats
	if _, err := i.http.Get(ctx, indexPath(i.UID)+pathStats, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a search query. params holds the optional search
// parameters; the reserved "q" key belongs to the query argument and
// must not appear in params.
func (i *Index) Search(ctx context.Context, query string, params map[string]any) (*SearchResponse, error) {
	body := make(map[string]any, len(params)+1)
	for key, value := range params {
		if key == "q" {
			return nil, fmt.Errorf(`search params must not set the reserved "q" key`)
		}
		body[key] = value
	}
	body["q"] = query
	var out SearchResponse
	if _, err := i.http.Post(ctx, indexPath(i.UID)+"/search", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tasks lists the tasks scoped to this index.
func (i *Index) Tasks(ctx context.Context) ([]Task, error) {
	var out TaskList
	if _, err := i.http.Get(ctx, indexPath(i.UID)+pathTasks, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Task fetches one task scoped to this index.
func (i *Index) Task(ctx context.Context, taskUID int64) (*Task, error) {
	var out Task
	if _, err := i.http.Get(ctx, fmt.Sprintf("%s%s/%d", indexPath(i.UID), pathTasks, taskUID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForTask polls an index-scoped task until it reaches a terminal
// status or the wait times out.
func (i *Index) WaitForTask(ctx context.Context, taskUID int64, params *WaitParams) (*Task, error) {
	return awaitTask(ctx, func(ctx context.Context) (*Task, error) {
		return i.Task(ctx, taskUID)
	}, taskUID, params)
}
