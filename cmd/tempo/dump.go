package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sarchlab/tempo/journal"
	"github.com/sarchlab/tempo/recording"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [recording]",
	Short: "Dump the event firings of a recording.",
	Long: "`events [recording]` prints every event firing journaled in the " +
		"recording database at [recording].sqlite3, in replay order.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		reader := recording.NewReader(args[0])
		defer reader.Close()

		reader.MapTable(journal.EventTable, journal.EventEntry{})

		results, total, err := reader.Query(
			context.Background(), journal.EventTable, recording.QueryParams{
				Limit:  limit,
				Offset: offset,
			})
		if err != nil {
			log.Fatalf("Error querying events: %v", err)
		}

		for _, r := range results {
			e := r.(*journal.EventEntry)
			fmt.Printf("%s\t%.6f\t%s\n", e.ID, e.At, e.Direction)
		}

		fmt.Printf("%d of %d event firings\n", len(results), total)
	},
}

var samplesCmd = &cobra.Command{
	Use:   "samples [recording]",
	Short: "Dump the tween samples of a recording.",
	Long: "`samples [recording]` prints every tween evaluation journaled in " +
		"the recording database at [recording].sqlite3, in replay order.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		reader := recording.NewReader(args[0])
		defer reader.Close()

		reader.MapTable(journal.SampleTable, journal.SampleEntry{})

		results, total, err := reader.Query(
			context.Background(), journal.SampleTable, recording.QueryParams{
				Limit:  limit,
				Offset: offset,
			})
		if err != nil {
			log.Fatalf("Error querying samples: %v", err)
		}

		for _, r := range results {
			s := r.(*journal.SampleEntry)
			fmt.Printf("%s\t%.6f\t%.6f\n", s.ID, s.At, s.Value)
		}

		fmt.Printf("%d of %d tween samples\n", len(results), total)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(samplesCmd)

	for _, c := range []*cobra.Command{eventsCmd, samplesCmd} {
		c.Flags().Int("limit", 0, "Maximum number of rows to print")
		c.Flags().Int("offset", 0, "Number of rows to skip")
	}
}
