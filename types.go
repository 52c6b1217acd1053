package meiligo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a time.Time that tolerates the variable sub-second
// precision the service emits. Fractions longer than nanoseconds are
// truncated before parsing instead of failing.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := parseISOTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// parseISOTime parses an ISO-8601 timestamp, reducing fractional
// seconds beyond nanosecond precision to something time.Parse accepts.
func parseISOTime(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return parsed, nil
	}
	dot := strings.IndexByte(raw, '.')
	if dot < 0 {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	end := dot + 1
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end-dot-1 <= 9 {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	reduced := raw[:dot+10] + raw[end:]
	parsed, err = time.Parse(time.RFC3339Nano, reduced)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return parsed, nil
}

// IndexInfo is the metadata record the service keeps per index.
type IndexInfo struct {
	UID        string    `json:"uid"`
	PrimaryKey string    `json:"primaryKey"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

// Health is the reply from the health endpoint.
type Health struct {
	Status string `json:"status"`
}

// Version describes the service build.
type Version struct {
	CommitSha  string `json:"commitSha"`
	CommitDate string `json:"commitDate"`
	PkgVersion string `json:"pkgVersion"`
}

// IndexStats holds per-index statistics.
type IndexStats struct {
	NumberOfDocuments int64            `json:"numberOfDocuments"`
	IsIndexing        bool             `json:"isIndexing"`
	FieldDistribution map[string]int64 `json:"fieldDistribution"`
}

// Stats holds service-wide statistics.
type Stats struct {
	DatabaseSize int64                 `json:"databaseSize"`
	LastUpdate   Timestamp             `json:"lastUpdate"`
	Indexes      map[string]IndexStats `json:"indexes"`
}

// Dump is the acknowledgment for a dump creation or status read.
type Dump struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

// SearchResponse is the reply from the search endpoint. Hits are left
// as raw maps; their shape belongs to the caller's documents.
type SearchResponse struct {
	Hits             []map[string]any `json:"hits"`
	Offset           int64            `json:"offset"`
	Limit            int64            `json:"limit"`
	NbHits           int64            `json:"nbHits"`
	ExhaustiveNbHits bool             `json:"exhaustiveNbHits"`
	ProcessingTimeMs int64            `json:"processingTimeMs"`
	Query            string           `json:"query"`
}

// DocumentsQuery selects a page of documents.
type DocumentsQuery struct {
	Offset               int64
	Limit                int64
	AttributesToRetrieve []string
}

func (q *DocumentsQuery) encode() string {
	if q == nil {
		return ""
	}
	values := url.Values{}
	if q.Offset > 0 {
		values.Set("offset", strconv.FormatInt(q.Offset, 10))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.FormatInt(q.Limit, 10))
	}
	if len(q.AttributesToRetrieve) > 0 {
		values.Set("attributesToRetrieve", strings.Join(q.AttributesToRetrieve, ","))
	}
	return values.Encode()
}
