package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"meiligo"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Task inspection commands",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskGetCmd = &cobra.Command{
	Use:   "get <uid>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskGet,
}

var taskWaitCmd = &cobra.Command{
	Use:   "wait <uid>",
	Short: "Wait for a task to reach a terminal status",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskWait,
}

func init() {
	taskListCmd.Flags().String("index", "", "Limit to tasks of one index")
	taskWaitCmd.Flags().Duration("wait-timeout", meiligo.DefaultWaitTimeout, "How long to poll before giving up")
	taskWaitCmd.Flags().Duration("interval", meiligo.DefaultWaitInterval, "Delay between status checks")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskGetCmd)
	taskCmd.AddCommand(taskWaitCmd)
}

func parseTaskUID(raw string) (int64, error) {
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task uid %q", raw)
	}
	return uid, nil
}

func printTask(task *meiligo.Task) {
	fmt.Printf("task %d [%s] %s", task.UID, task.Type, task.Status)
	if task.IndexUID != "" {
		fmt.Printf(" index=%s", task.IndexUID)
	}
	if task.Duration != "" {
		fmt.Printf(" duration=%s", task.Duration)
	}
	fmt.Println()
	if task.Error != nil {
		fmt.Printf("  error: %s (%s)\n", task.Error.Message, task.Error.Code)
	}
}

func runTaskList(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	var tasks []meiligo.Task
	if uid, _ := cmd.Flags().GetString("index"); uid != "" {
		tasks, err = client.Index(uid).Tasks(cmd.Context())
	} else {
		tasks, err = client.Tasks(cmd.Context())
	}
	if err != nil {
		return err
	}
	for i := range tasks {
		printTask(&tasks[i])
	}
	return nil
}

func runTaskGet(cmd *cobra.Command, args []string) error {
	uid, err := parseTaskUID(args[0])
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()
	task, err := client.Task(cmd.Context(), uid)
	if err != nil {
		return err
	}
	printTask(task)
	return nil
}

func runTaskWait(cmd *cobra.Command, args []string) error {
	uid, err := parseTaskUID(args[0])
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	timeout, _ := cmd.Flags().GetDuration("wait-timeout")
	interval, _ := cmd.Flags().GetDuration("interval")
	start := time.Now()
	task, err := client.WaitForTask(cmd.Context(), uid, &meiligo.WaitParams{
		Timeout:  timeout,
		Interval: interval,
	})
	if err != nil {
		return err
	}
	printTask(task)
	fmt.Printf("  finished after %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
