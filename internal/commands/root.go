package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tunedeck.org/tunedeck/internal/config"
	"tunedeck.org/tunedeck/internal/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tunedeck",
	Short: "ECU diagnostic and tuning workstation",
	Long: `Tunedeck is a workbench for ECU diagnostics and tuning. It keeps a
file-backed catalog of vehicles, ECU profiles and saved tunes, simulates
CAN bus traffic for bench testing, and evaluates live telemetry against
per-vehicle tuning limits.`,
	Version: version.Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("content-root", "", "document store directory")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	// These should never fail as flags are defined above
	_ = viper.BindPFlag("store.content_root", rootCmd.PersistentFlags().Lookup("content-root")) //nolint:errcheck
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))         //nolint:errcheck

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(integrityCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Println(info.String())

		if cmd.Flag("verbose").Changed {
			fmt.Printf("\nDetails:\n")
			fmt.Printf("  Version:    %s\n", info.Version)
			fmt.Printf("  Git Commit: %s\n", info.GitCommit)
			fmt.Printf("  Built:      %s\n", info.BuildTime)
			fmt.Printf("  Go Version: %s\n", info.GoVersion)
			fmt.Printf("  Platform:   %s\n", info.Platform)
		}
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "verbose version output")
}
