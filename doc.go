// Package meiligo is a client for a Meilisearch-compatible search
// service. A Client talks to the service as a whole (indexes, tasks,
// dumps, health); an Index handle scopes document, search and settings
// operations to one index. Mutating calls are acknowledged with a task
// reference that can be awaited with WaitForTask.
package meiligo
