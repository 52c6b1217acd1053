package meiligo

import (
	"context"
	"net/http"
	"net/url"
)

// DefaultBatchSize is the chunk size used by the batched document
// operations when none is given.
const DefaultBatchSize = 1000

// Content types accepted by the raw document ingestion endpoints.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeCSV    = "text/csv"
	ContentTypeNDJSON = "application/x-ndjson"
)

func (i *Index) documentsPath(primaryKey string) string {
	path := indexPath(i.UID) + "/documents"
	if primaryKey != "" {
		path += "?" + url.Values{"primaryKey": {primaryKey}}.Encode()
	}
	return path
}

// Document fetches one document by id into out.
func (i *Index) Document(ctx context.Context, documentID string, out any) error {
	_, err := i.http.Get(ctx, indexPath(i.UID)+"/documents/"+url.PathEscape(documentID), out)
	return err
}

// Documents fetches a page of documents into out, normally a pointer to
// a slice of the caller's document type.
func (i *Index) Documents(ctx context.Context, query *DocumentsQuery, out any) error {
	path := indexPath(i.UID) + "/documents"
	if encoded := query.encode(); encoded != "" {
		path += "?" + encoded
	}
	_, err := i.http.Get(ctx, path, out)
	return err
}

// AddDocuments enqueues the addition of documents. primaryKey may be
// empty; the server ignores it when the index already has one.
func (i *Index) AddDocuments(ctx context.Context, documents []map[string]any, primaryKey string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Post(ctx, i.documentsPath(primaryKey), documents, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateDocuments enqueues a partial update of documents.
func (i *Index) UpdateDocuments(ctx context.Context, documents []map[string]any, primaryKey string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Put(ctx, i.documentsPath(primaryKey), documents, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// AddDocumentsInBatches splits documents into chunks of batchSize
// (DefaultBatchSize when <= 0) and enqueues one addition per chunk,
// returning one task per chunk in call order. Batches are not atomic:
// when a later chunk fails, the tasks already acknowledged are returned
// together with the error.
func (i *Index) AddDocumentsInBatches(ctx context.Context, documents []map[string]any, batchSize int, primaryKey string) ([]TaskInfo, error) {
	return i.sendInBatches(ctx, documents, batchSize, primaryKey, i.AddDocuments)
}

// UpdateDocumentsInBatches is AddDocumentsInBatches for partial updates.
func (i *Index) UpdateDocumentsInBatches(ctx context.Context, documents []map[string]any, batchSize int, primaryKey string) ([]TaskInfo, error) {
	return i.sendInBatches(ctx, documents, batchSize, primaryKey, i.UpdateDocuments)
}

func (i *Index) sendInBatches(
	ctx context.Context,
	documents []map[string]any,
	batchSize int,
	primaryKey string,
	send func(context.Context, []map[string]any, string) (*TaskInfo, error),
) ([]TaskInfo, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	tasks := make([]TaskInfo, 0, (len(documents)+batchSize-1)/batchSize)
	for start := 0; start < len(documents); start += batchSize {
		end := min(start+batchSize, len(documents))
		task, err := send(ctx, documents[start:end], primaryKey)
		if err != nil {
			return tasks, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// AddDocumentsRaw enqueues a pre-serialized document payload. The bytes
// pass through unmodified; contentType must be one of ContentTypeJSON,
// ContentTypeCSV or ContentTypeNDJSON.
func (i *Index) AddDocumentsRaw(ctx context.Context, payload []byte, contentType, primaryKey string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Do(ctx, http.MethodPost, i.documentsPath(primaryKey), payload, contentType, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// AddDocumentsJSON enqueues a raw JSON array payload.
func (i *Index) AddDocumentsJSON(ctx context.Context, payload []byte, primaryKey string) (*TaskInfo, error) {
	return i.AddDocumentsRaw(ctx, payload, ContentTypeJSON, primaryKey)
}

// AddDocumentsCSV enqueues a raw CSV payload.
func (i *Index) AddDocumentsCSV(ctx context.Context, payload []byte, primaryKey string) (*TaskInfo, error) {
	return i.AddDocumentsRaw(ctx, payload, ContentTypeCSV, primaryKey)
}

// AddDocumentsNDJSON enqueues a raw newline-delimited JSON payload.
func (i *Index) AddDocumentsNDJSON(ctx context.Context, payload []byte, primaryKey string) (*TaskInfo, error) {
	return i.AddDocumentsRaw(ctx, payload, ContentTypeNDJSON, primaryKey)
}

// UpdateDocumentsRaw is AddDocumentsRaw for partial updates.
func (i *Index) UpdateDocumentsRaw(ctx context.Context, payload []byte, contentType, primaryKey string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Do(ctx, http.MethodPut, i.documentsPath(primaryKey), payload, contentType, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteDocument enqueues the deletion of one document by id.
func (i *Index) DeleteDocument(ctx context.Context, documentID string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Delete(ctx, indexPath(i.UID)+"/documents/"+url.PathEscape(documentID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteDocuments enqueues the deletion of a batch of documents by id.
func (i *Index) DeleteDocuments(ctx context.Context, documentIDs []string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Post(ctx, indexPath(i.UID)+"/documents/delete-batch", documentIDs, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteAllDocuments enqueues the deletion of every document in the
// index.
func (i *Index) DeleteAllDocuments(ctx context.Context) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Delete(ctx, indexPath(i.UID)+"/documents", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
