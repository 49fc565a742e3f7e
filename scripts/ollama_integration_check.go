// scripts/ollama_integration_check.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getllm/getllm/internal/appconfig"
	"github.com/getllm/getllm/internal/catalog"
	"github.com/getllm/getllm/internal/runtime"
	"github.com/getllm/getllm/internal/util"
)

type taggedModel struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

type tagsResponse struct {
	Models []taggedModel `json:"models"`
}

func main() {
	configPath := flag.String("config", appconfig.DefaultConfigPath, "Path to config JSON")
	serverURL := flag.String("url", "", "Override runtime server URL")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP timeout")
	flag.Parse()

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	base := cfg.ServerBaseURL()
	if *serverURL != "" {
		base = strings.TrimRight(*serverURL, "/")
	}

	client := &http.Client{Timeout: *timeout}

	fmt.Printf("Runtime binary: %s\n", cfg.Binary())
	fmt.Printf("Server URL: %s\n", base)
	fmt.Printf("Catalog URL: %s\n\n", cfg.CatalogEndpoint())

	if err := checkVersion(client, base); err != nil {
		fmt.Fprintf(os.Stderr, "version check failed: %v\n", err)
	}

	if err := checkTags(client, base); err != nil {
		fmt.Fprintf(os.Stderr, "tags check failed: %v\n", err)
	}

	if err := checkBinary(cfg.Binary(), *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "binary check failed: %v\n", err)
	}

	if err := checkCatalog(cfg.CatalogEndpoint(), *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "catalog check failed: %v\n", err)
	}
}

func checkVersion(client *http.Client, baseURL string) error {
	fmt.Println("== /api/version ==")
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/version", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", resp.Status)

	var parsed struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Version == "" {
		fmt.Printf("Raw: %s\n\n", strings.TrimSpace(string(body)))
		return nil
	}
	fmt.Printf("Version: %s\n\n", parsed.Version)
	return nil
}

func checkTags(client *http.Client, baseURL string) error {
	fmt.Println("== /api/tags ==")
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", resp.Status)

	var parsed tagsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Printf("Parse: %v\n\n", err)
		return nil
	}
	fmt.Printf("Server models: %d\n", len(parsed.Models))
	for _, m := range parsed.Models {
		fmt.Printf("  - %s (%s)\n", displayName(m), util.FormatBytes(m.Size))
	}
	fmt.Println()
	return nil
}

func checkBinary(binary string, timeout time.Duration) error {
	fmt.Println("== runtime binary ==")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	models, err := runtime.NewExec(binary).Installed(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Installed models: %d\n", len(models))
	for _, m := range models {
		fmt.Printf("  - %s (%s)\n", m.Name, util.FormatBytes(m.SizeBytes))
	}
	fmt.Println()
	return nil
}

func checkCatalog(url string, timeout time.Duration) error {
	fmt.Println("== model catalog ==")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entries, skipped, err := catalog.NewFetcher(url, timeout).Fetch(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog models: %d (skipped %d)\n", len(entries), skipped)
	limit := len(entries)
	if limit > 5 {
		limit = 5
	}
	for _, m := range entries[:limit] {
		fmt.Printf("  - %s\n", m.Name)
	}
	fmt.Println()
	return nil
}

func displayName(model taggedModel) string {
	if strings.TrimSpace(model.Name) != "" {
		return strings.TrimSpace(model.Name)
	}
	if strings.TrimSpace(model.Model) != "" {
		return strings.TrimSpace(model.Model)
	}
	return strings.TrimSpace(model.Digest)
}
