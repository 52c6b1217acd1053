package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"meiligo"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Document ingestion commands",
}

var documentsAddCmd = &cobra.Command{
	Use:   "add <index> <file>",
	Short: "Add documents from a JSON, CSV or NDJSON file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentsAdd,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete <index> [id...]",
	Short: "Delete documents by id, or all documents when no id is given",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentsDelete,
}

var searchCmd = &cobra.Command{
	Use:   "search <index> <query>",
	Short: "Search an index",
	Args:  cobra.ExactArgs(2),
	RunE:  runSearch,
}

func init() {
	documentsAddCmd.Flags().String("primary-key", "", "Primary key attribute")
	documentsAddCmd.Flags().String("content-type", "", "Payload content type (inferred from the file extension when empty)")
	documentsAddCmd.Flags().Bool("wait", false, "Wait for the ingestion task to finish")

	searchCmd.Flags().Int("limit", 20, "Maximum number of hits")
	searchCmd.Flags().String("filter", "", "Filter expression")

	documentsCmd.AddCommand(documentsAddCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
}

// contentTypeForFile infers the payload content type from the file
// extension.
func contentTypeForFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return meiligo.ContentTypeJSON, nil
	case ".csv":
		return meiligo.ContentTypeCSV, nil
	case ".ndjson", ".jsonl":
		return meiligo.ContentTypeNDJSON, nil
	default:
		return "", fmt.Errorf("cannot infer content type of %q, use --content-type", path)
	}
}

func runDocumentsAdd(cmd *cobra.Command, args []string) error {
	uid, path := args[0], args[1]
	contentType, _ := cmd.Flags().GetString("content-type")
	if contentType == "" {
		inferred, err := contentTypeForFile(path)
		if err != nil {
			return err
		}
		contentType = inferred
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	primaryKey, _ := cmd.Flags().GetString("primary-key")
	task, err := client.Index(uid).AddDocumentsRaw(cmd.Context(), payload, contentType, primaryKey)
	if err != nil {
		return err
	}
	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		done, err := client.WaitForTask(cmd.Context(), task.TaskUID, nil)
		if err != nil {
			return err
		}
		if done.Error != nil {
			return fmt.Errorf("task %d failed: %s (%s)", done.UID, done.Error.Message, done.Error.Code)
		}
		fmt.Printf("task %d: %s\n", done.UID, done.Status)
		return nil
	}
	fmt.Printf("task %d enqueued\n", task.TaskUID)
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	index := client.Index(args[0])

	var task *meiligo.TaskInfo
	switch ids := args[1:]; len(ids) {
	case 0:
		task, err = index.DeleteAllDocuments(cmd.Context())
	case 1:
		task, err = index.DeleteDocument(cmd.Context(), ids[0])
	default:
		task, err = index.DeleteDocuments(cmd.Context(), ids)
	}
	if err != nil {
		return err
	}
	fmt.Printf("task %d enqueued\n", task.TaskUID)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	params := map[string]any{}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		params["limit"] = limit
	}
	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		params["filter"] = filter
	}
	result, err := client.Index(args[0]).Search(cmd.Context(), args[1], params)
	if err != nil {
		return err
	}
	fmt.Printf("%d hits in %dms\n", result.NbHits, result.ProcessingTimeMs)
	for _, hit := range result.Hits {
		line, err := json.Marshal(hit)
		if err != nil {
			return err
		}
		fmt.Println(string(line))
	}
	return nil
}
