package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/dashboard/cmd/dashboard/commands"
)

// @title TaskMaster Dashboard API
// @version 1.0
// @description Dashboard backend for the TaskMaster REST API

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	rootCmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "TaskMaster dashboard",
		Long:          `Role-aware task and project dashboard backed by the TaskMaster REST API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.AddViewerFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewTasksCommand())
	rootCmd.AddCommand(commands.NewProjectsCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewCommentCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
