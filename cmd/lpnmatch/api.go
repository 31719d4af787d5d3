package main

import (
	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/server/endpoints"
)

var serverURL string

func getServerURL() string {
	return serverURL
}

func init() {
	registry := api.NewRegistry()
	for _, ep := range endpoints.All() {
		registry.Register(ep)
	}

	apiCmd := registry.BuildCommands(getServerURL)
	apiCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")

	rootCmd.AddCommand(apiCmd)
}
