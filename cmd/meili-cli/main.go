package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"meiligo"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meili-cli",
	Short: "Command-line client for a Meilisearch-compatible search service",
	Long: `meili-cli talks to a search service over its HTTP API.

Connection settings come from flags, falling back to the MEILI_URL,
MEILI_API_KEY and MEILI_TIMEOUT environment variables, or from a YAML
config file given with --config.

Examples:
  meili-cli health
  meili-cli index list
  meili-cli index create movies --primary-key id
  meili-cli documents add movies ./movies.json --wait
  meili-cli search movies "carol" --limit 5
  meili-cli task wait 42`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().String("url", "", "Base URL of the search service")
	rootCmd.PersistentFlags().String("api-key", "", "API key sent as a bearer token")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout")
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(dumpCmd)
}

// newClient builds a client from flags, a config file, or the
// environment, in that order of precedence.
func newClient(cmd *cobra.Command) (*meiligo.Client, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	var cfg meiligo.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := meiligo.ConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if envCfg, err := meiligo.ConfigFromEnv(); err == nil {
		cfg = envCfg
	}

	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.URL = url
	}
	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		cfg.APIKey = key
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	return meiligo.NewClient(cfg)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()
		health, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(health.Status)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "server-version",
	Short: "Show the server version",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()
		v, err := client.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s, %s)\n", v.PkgVersion, v.CommitSha, v.CommitDate)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show service-wide statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()
		stats, err := client.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("database size: %d bytes\n", stats.DatabaseSize)
		if !stats.LastUpdate.IsZero() {
			fmt.Printf("last update:   %s\n", stats.LastUpdate.Format(time.RFC3339))
		}
		for uid, index := range stats.Indexes {
			fmt.Printf("  %s: %d documents (indexing: %v)\n", uid, index.NumberOfDocuments, index.IsIndexing)
		}
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [uid]",
	Short: "Create a dump, or show the status of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()
		if len(args) == 1 {
			dump, err := client.DumpStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", dump.UID, dump.Status)
			return nil
		}
		dump, err := client.CreateDump(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("dump %s started (%s)\n", dump.UID, dump.Status)
		return nil
	},
}
