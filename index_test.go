package meiligo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"meiligo"
)

func TestFetchInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/indexes/movies" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"uid":"movies","primaryKey":"id","createdAt":"2021-11-02T12:00:00.123456Z","updatedAt":"2021-11-03T08:30:00Z"}`)
	}))

	index := client.Index("movies")
	if err := index.FetchInfo(context.Background()); err != nil {
		t.Fatalf("FetchInfo: %v", err)
	}
	if index.PrimaryKey != "id" {
		t.Errorf("PrimaryKey = %q, want id", index.PrimaryKey)
	}
	wantCreated := time.Date(2021, 11, 2, 12, 0, 0, 123456000, time.UTC)
	if !index.CreatedAt.Equal(wantCreated) {
		t.Errorf("CreatedAt = %v, want %v", index.CreatedAt, wantCreated)
	}
	if index.UpdatedAt.IsZero() {
		t.Error("UpdatedAt is zero, want parsed timestamp")
	}
}

func TestFetchPrimaryKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"uid":"movies","primaryKey":"movie_id"}`)
	}))

	key, err := client.Index("movies").FetchPrimaryKey(context.Background())
	if err != nil {
		t.Fatalf("FetchPrimaryKey: %v", err)
	}
	if key != "movie_id" {
		t.Errorf("primary key = %q, want movie_id", key)
	}
}

func TestUpdatePrimaryKey(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/indexes/movies" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeJSON(w, http.StatusAccepted, `{"taskUid":5,"status":"enqueued","type":"indexUpdate"}`)
	}))

	index := client.Index("movies")
	task, err := index.UpdatePrimaryKey(context.Background(), "movie_id")
	if err != nil {
		t.Fatalf("UpdatePrimaryKey: %v", err)
	}
	if task.TaskUID != 5 {
		t.Errorf("TaskUID = %d, want 5", task.TaskUID)
	}
	if gotBody["primaryKey"] != "movie_id" {
		t.Errorf("request body = %v", gotBody)
	}
	// Local snapshot stays stale until the task succeeds and the caller
	// refetches.
	if index.PrimaryKey != "" {
		t.Errorf("snapshot PrimaryKey = %q, want unchanged empty", index.PrimaryKey)
	}
}

func TestIndexDeleteIfExists(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notFoundIndex(w)
	}))

	deleted, err := client.Index("ghost").DeleteIfExists(context.Background())
	if err != nil {
		t.Fatalf("DeleteIfExists: %v", err)
	}
	if deleted {
		t.Error("deleted = true for a missing index")
	}
}

func TestIndexStats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/movies/stats" {
			t.Errorf("path = %s, want /indexes/movies/stats", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"numberOfDocuments":100,"isIndexing":true,"fieldDistribution":{"title":100}}`)
	}))

	stats, err := client.Index("movies").Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.NumberOfDocuments != 100 || !stats.IsIndexing {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSearch(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/indexes/movies/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeJSON(w, http.StatusOK, `{
			"hits":[{"id":1,"title":"Carol"}],
			"offset":0,"limit":20,"nbHits":1,"exhaustiveNbHits":false,
			"processingTimeMs":2,"query":"carol"
		}`)
	}))

	result, err := client.Index("movies").Search(context.Background(), "carol", map[string]any{
		"limit":  20,
		"filter": "genre = drama",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotBody["q"] != "carol" {
		t.Errorf("body q = %v, want carol", gotBody["q"])
	}
	if gotBody["filter"] != "genre = drama" {
		t.Errorf("body filter = %v", gotBody["filter"])
	}
	if len(result.Hits) != 1 || result.Hits[0]["title"] != "Carol" {
		t.Errorf("hits = %v", result.Hits)
	}
	if result.NbHits != 1 || result.Query != "carol" {
		t.Errorf("result = %+v", result)
	}
}

func TestSearchRejectsReservedQueryKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected when params are invalid")
	}))

	_, err := client.Index("movies").Search(context.Background(), "carol", map[string]any{"q": "override"})
	if err == nil {
		t.Fatal(`error = nil, want rejection of the "q" param`)
	}
}

func TestIndexTasks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/indexes/movies/tasks":
			writeJSON(w, http.StatusOK, `{"results":[{"uid":6,"indexUid":"movies","status":"enqueued","type":"documentAddition"}]}`)
		case "/indexes/movies/tasks/6":
			writeJSON(w, http.StatusOK, `{"uid":6,"indexUid":"movies","status":"succeeded","type":"documentAddition"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	index := client.Index("movies")
	tasks, err := index.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].UID != 6 {
		t.Errorf("tasks = %+v", tasks)
	}

	task, err := index.Task(context.Background(), 6)
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if task.Status != meiligo.TaskSucceeded {
		t.Errorf("Status = %q, want succeeded", task.Status)
	}
}
