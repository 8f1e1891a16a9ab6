// Copyright 2025 David Stotijn
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/dstotijn/go-mcp"
)

// Command-line flags.
var (
	httpAddr string
	useStdio bool
	useSSE   bool
)

const defaultBaseURL = "https://documentation-resources.opendatasoft.com"

func main() {
	log.SetFlags(0)

	flag.StringVar(&httpAddr, "http", ":8080", "HTTP listen address for JSON-RPC over HTTP")
	flag.BoolVar(&useStdio, "stdio", true, "Enable stdio transport")
	flag.BoolVar(&useSSE, "sse", false, "Enable SSE transport")
	flag.Parse()

	// The Opendatasoft domain and API key are read once at startup.
	baseURL := os.Getenv("ODS_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := NewClient(baseURL, os.Getenv("ODS_API_KEY"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	transports := []string{}
	opts := []mcp.ServerOption{}

	if useStdio {
		transports = append(transports, "stdio")
		opts = append(opts, mcp.WithStdioTransport())
	}

	var sseURL url.URL

	if useSSE {
		transports = append(transports, "sse")

		host := "localhost"

		hostPart, port, err := net.SplitHostPort(httpAddr)
		if err != nil {
			log.Fatalf("Failed to split host and port: %v", err)
		}

		if hostPart != "" {
			host = hostPart
		}

		sseURL = url.URL{
			Scheme: "http",
			Host:   host + ":" + port,
		}

		opts = append(opts, mcp.WithSSETransport(sseURL))
	}

	mcpServer := mcp.NewServer(mcp.ServerConfig{}, opts...)

	mcpServer.Start(ctx)

	// Register Opendatasoft Explore API tools.
	mcpServer.RegisterTools(
		createSearchDatasetsTool(client),
		createGetDatasetInfoTool(client),
		createListDatasetsByPublisherTool(client),
		createListDatasetFieldsTool(client),
		createGetDatasetRecordsTool(client),
		createGetDatasetAggregatesTool(client),
		createFacetAnalysisTool(client),
		createSearchDatasetRecordsTool(client),
		createGetExportURLTool(client),
		createSummarizeDatasetTool(client),
		createAnalyzeNumericFieldTool(client),
		createAnalyzeTextFieldTool(client),
		createAnalyzeDateFieldTool(client),
		createGenerateDatasetStatisticsTool(client),
	)

	httpServer := &http.Server{
		Addr:        httpAddr,
		Handler:     mcpServer,
		BaseContext: func(l net.Listener) context.Context { return ctx },
	}

	if useSSE {
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTP server error: %v", err)
			}
		}()
	}

	log.Printf("Opendatasoft MCP server started (domain: %v), using transports: %v", baseURL, transports)
	if useSSE {
		log.Printf("SSE transport endpoint: %v", sseURL.String())
	}

	// Wait for interrupt signal.
	<-ctx.Done()
	// Restore signal, allowing "force quit".
	stop()

	timeout := 5 * time.Second
	cancelContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Shutting down server (waiting %s). Press Ctrl+C to force quit.", timeout)

	var wg sync.WaitGroup

	if useSSE {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpServer.Shutdown(cancelContext); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				log.Printf("HTTP server shutdown error: %v", err)
			}
		}()
	}

	wg.Wait()
}

func newToolCallResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Text: text,
			},
		},
	}
}

func newToolCallErrorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Text: fmt.Sprintf(format, args...),
			},
		},
		IsError: true,
	}
}
