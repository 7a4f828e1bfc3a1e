package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/sift/content"
	"github.com/use-agent/sift/similarity"
)

const (
	minDocuments = 2
	maxDocuments = 100
)

func handleIngestURL(p *content.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		res, err := p.Run(ctx, url, nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		body, err := json.MarshalIndent(res.Entry, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode entry: %v", err)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleCompareTexts() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docs, err := request.RequireStringSlice("documents")
		if err != nil {
			return mcp.NewToolResultError("documents is required and must be an array of strings"), nil
		}
		if len(docs) < minDocuments || len(docs) > maxDocuments {
			return mcp.NewToolResultError(fmt.Sprintf("documents must contain between %d and %d texts, got %d", minDocuments, maxDocuments, len(docs))), nil
		}

		matrix, err := similarity.Matrix(ctx, docs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("similarity failed: %v", err)), nil
		}

		body, err := json.Marshal(map[string]any{"matrix": matrix})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode matrix: %v", err)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}
