package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [recording]",
	Short: "List the tables of a recording.",
	Long: "`tables [recording]` lists the tables of the recording database " +
		"at [recording].sqlite3.",
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		db, err := sql.Open("sqlite3", args[0]+".sqlite3")
		if err != nil {
			log.Fatalf("Error opening recording: %v", err)
		}
		defer db.Close()

		rows, err := db.Query(
			"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
		if err != nil {
			log.Fatalf("Error listing tables: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				log.Fatalf("Error reading table name: %v", err)
			}

			fmt.Println(name)
		}

		if err := rows.Err(); err != nil {
			log.Fatalf("Error listing tables: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
