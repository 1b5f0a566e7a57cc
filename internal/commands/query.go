package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tunedeck.org/tunedeck/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the local document store",
	Long:  `Inspect vehicles, manufacturers and the activity log without starting the server`,
}

var queryVehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List vehicles in the catalog",
	RunE:  runQueryVehicles,
}

var queryManufacturersCmd = &cobra.Command{
	Use:   "manufacturers",
	Short: "List distinct manufacturers",
	RunE:  runQueryManufacturers,
}

var queryLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent activity log entries",
	RunE:  runQueryLogs,
}

func init() {
	queryVehiclesCmd.Flags().String("make", "", "filter by manufacturer")
	queryVehiclesCmd.Flags().Bool("json", false, "output as JSON")
	queryLogsCmd.Flags().Int("limit", 20, "maximum entries to show")

	queryCmd.AddCommand(queryVehiclesCmd)
	queryCmd.AddCommand(queryManufacturersCmd)
	queryCmd.AddCommand(queryLogsCmd)
}

func openStore() (*store.Store, error) {
	st, err := store.New(cfg.Store.ContentRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return st, nil
}

func runQueryVehicles(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	manufacturer, _ := cmd.Flags().GetString("make")

	vehicles, err := st.GetVehicles()
	if err != nil {
		return err
	}
	if manufacturer != "" {
		vehicles, err = st.GetVehiclesByMake(manufacturer)
		if err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(vehicles)
	}

	for _, v := range vehicles {
		fmt.Printf("%-40s %s %s (%d)\n", v.ID, v.Make, v.Model, v.Year)
	}
	fmt.Printf("\n%d vehicle(s)\n", len(vehicles))
	return nil
}

func runQueryManufacturers(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	manufacturers, err := st.GetManufacturers()
	if err != nil {
		return err
	}

	for _, m := range manufacturers {
		fmt.Println(m)
	}
	return nil
}

func runQueryLogs(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	logs, err := st.GetLogs(limit)
	if err != nil {
		return err
	}

	for _, entry := range logs {
		fmt.Printf("%s [%s/%s] %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Type, entry.Level, entry.Message)
	}
	return nil
}
