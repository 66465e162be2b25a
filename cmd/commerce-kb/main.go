// File path: cmd/commerce-kb/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/imashishkh/commerce-kb/internal/api"
	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/llm"
	"github.com/imashishkh/commerce-kb/internal/sqlite"
	"github.com/imashishkh/commerce-kb/internal/vector"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("commerce-kb: .env file not loaded", "error", err)
	} else {
		logger.Info("commerce-kb: environment loaded from .env")
	}

	addr := flag.String("addr", ":8081", "listen address")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the SQLite catalog database")
	flag.Parse()

	logger.Info("commerce-kb: startup initiated", "addr", *addr, "catalog", *catalogPath)

	catalogCfg, err := sqlite.LoadConfig()
	if err != nil {
		logger.Error("commerce-kb: catalog config load failed", "error", err)
		fmt.Println("catalog config error:", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*catalogPath); trimmed != "" {
		catalogCfg.Path = trimmed
	}
	if err := os.MkdirAll(filepath.Dir(catalogCfg.Path), 0o755); err != nil {
		logger.Error("commerce-kb: catalog directory creation failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	catalog, err := sqlite.OpenWithConfig(catalogCfg)
	if err != nil {
		logger.Error("commerce-kb: catalog open failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	defer catalog.Close()

	vectorClient, err := vector.NewFromEnv(ctx)
	if err != nil {
		logger.Error("commerce-kb: vector config load failed", "error", err)
		fmt.Println("vector config error:", err)
		os.Exit(1)
	}
	defer vectorClient.Close()
	if vectorClient.Available() {
		logger.Info("commerce-kb: chromadb available", "collection", vectorClient.Collection())
	} else {
		logger.Warn("commerce-kb: chromadb unreachable", "collection", vectorClient.Collection())
	}

	provider := llm.NewProvider()
	logger.Info("commerce-kb: llm provider ready", "provider", provider.Name())

	server, err := api.NewServer(ctx, catalog, vectorClient, provider)
	if err != nil {
		logger.Error("commerce-kb: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("commerce-kb: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("commerce-kb: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("commerce-kb: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultCatalogPath() string {
	return filepath.Join("data", "catalog.db")
}
