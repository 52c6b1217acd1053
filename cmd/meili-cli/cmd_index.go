package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index management commands",
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexes",
	RunE:  runIndexList,
}

var indexCreateCmd = &cobra.Command{
	Use:   "create <uid>",
	Short: "Create an index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexCreate,
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete <uid>",
	Short: "Delete an index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexDelete,
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats <uid>",
	Short: "Show statistics for one index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexStats,
}

var indexSettingsCmd = &cobra.Command{
	Use:   "settings <uid>",
	Short: "Show the settings of one index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexSettings,
}

func init() {
	indexCreateCmd.Flags().String("primary-key", "", "Primary key attribute")
	indexCreateCmd.Flags().Bool("wait", false, "Wait for the creation task to finish")
	indexDeleteCmd.Flags().Bool("if-exists", false, "Do not fail when the index is missing")

	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexCreateCmd)
	indexCmd.AddCommand(indexDeleteCmd)
	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexSettingsCmd)
}

func runIndexList(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	indexes, err := client.ListIndexes(cmd.Context())
	if err != nil {
		return err
	}
	if len(indexes) == 0 {
		fmt.Println("no indexes")
		return nil
	}
	for _, index := range indexes {
		key := index.PrimaryKey
		if key == "" {
			key = "(none)"
		}
		fmt.Printf("%-24s primary key %-12s created %s\n", index.UID, key, index.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func runIndexCreate(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	primaryKey, _ := cmd.Flags().GetString("primary-key")
	task, err := client.CreateIndex(cmd.Context(), args[0], primaryKey)
	if err != nil {
		return err
	}
	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		done, err := client.WaitForTask(cmd.Context(), task.TaskUID, nil)
		if err != nil {
			return err
		}
		fmt.Printf("task %d: %s\n", done.UID, done.Status)
		return nil
	}
	fmt.Printf("task %d enqueued\n", task.TaskUID)
	return nil
}

func runIndexDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	if ifExists, _ := cmd.Flags().GetBool("if-exists"); ifExists {
		deleted, err := client.DeleteIndexIfExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Printf("index %s does not exist\n", args[0])
			return nil
		}
		fmt.Printf("index %s deletion enqueued\n", args[0])
		return nil
	}
	task, err := client.DeleteIndex(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("task %d enqueued\n", task.TaskUID)
	return nil
}

func runIndexStats(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	stats, err := client.Index(args[0]).Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("documents: %d\nindexing:  %v\n", stats.NumberOfDocuments, stats.IsIndexing)
	for field, count := range stats.FieldDistribution {
		fmt.Printf("  %s: %d\n", field, count)
	}
	return nil
}

func runIndexSettings(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	settings, err := client.Index(args[0]).Settings(cmd.Context())
	if err != nil {
		return err
	}
	for key, value := range settings {
		fmt.Printf("%s: %v\n", key, value)
	}
	return nil
}
