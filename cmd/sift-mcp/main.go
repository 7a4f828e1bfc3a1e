package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/sift/config"
	"github.com/use-agent/sift/content"
	"github.com/use-agent/sift/fetcher"
	"github.com/use-agent/sift/parser"
	"github.com/use-agent/sift/parser/htmlparser"
)

func main() {
	cfg := config.Load()

	// stdout carries the MCP protocol; logs go to stderr.
	level := slog.LevelInfo
	if cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	client, err := fetcher.NewHTTPClient(fetcher.Options{
		UserAgent:      cfg.Fetch.UserAgent,
		Timeout:        cfg.Fetch.Timeout,
		MaxBodyBytes:   cfg.Fetch.MaxBodyBytes,
		TLSFingerprint: cfg.Fetch.TLSFingerprint,
		Proxy:          cfg.Fetch.Proxy,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetcher: %v\n", err)
		os.Exit(1)
	}

	pipeline := &content.Pipeline{
		Fetcher: client,
		Registry: parser.NewRegistry(htmlparser.Family(htmlparser.Options{
			Format: htmlparser.Format(cfg.Extract.Format),
			Mode:   htmlparser.Mode(cfg.Extract.Mode),
		})),
	}

	s := server.NewMCPServer(
		"sift",
		config.Version,
		server.WithToolCapabilities(false),
	)

	ingestTool := mcp.NewTool("ingest_url",
		mcp.WithDescription("Fetch a web page and return it as a normalized entry: title, origin, author, body content, summary, thumbnail and publish/update times."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http(s) URL of the page to ingest"),
		),
	)
	s.AddTool(ingestTool, handleIngestURL(pipeline))

	compareTool := mcp.NewTool("compare_texts",
		mcp.WithDescription("Compare 2 to 100 texts and return their pairwise TF-IDF cosine similarity matrix."),
		mcp.WithArray("documents",
			mcp.Required(),
			mcp.Description("The texts to compare"),
			mcp.WithStringItems(),
		),
	)
	s.AddTool(compareTool, handleCompareTexts())

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
