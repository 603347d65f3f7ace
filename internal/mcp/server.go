package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cardsnap/idcard-extract/internal/config"
	"github.com/cardsnap/idcard-extract/internal/descriptions"
	"github.com/cardsnap/idcard-extract/internal/service"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	docService *service.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, docService *service.Service) (*Server, error) {
	if docService == nil {
		return nil, fmt.Errorf("docService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		docService: docService,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"id_extract_file",
		mcp.WithDescription(descriptions.GetToolDescription("id_extract_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the scan file (PDF or image)"),
		),
		mcp.WithString("doc_type",
			mcp.Description("Document type: 'aadhaar' or 'emirates_id' (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractTextTool := mcp.NewTool(
		"id_extract_text",
		mcp.WithDescription(descriptions.GetToolDescription("id_extract_text")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Raw OCR output text"),
		),
		mcp.WithString("doc_type",
			mcp.Description("Document type: 'aadhaar' or 'emirates_id' (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractTextTool, s.handleExtractText)

	validateFileTool := mcp.NewTool(
		"id_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("id_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the scan file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	serverInfoTool := mcp.NewTool(
		"id_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("id_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := service.ExtractFileRequest{Path: path, DocType: s.docTypeArg(request)}
	result, err := s.docService.ExtractFile(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractResult(result, path)), nil
}

func (s *Server) handleExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := service.ExtractTextRequest{Text: text, DocType: s.docTypeArg(request)}
	result, err := s.docService.ExtractText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractResult(result, "")), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.ValidateFile(service.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("File %s is a valid document scan", result.Path)
	} else {
		responseText = fmt.Sprintf("Validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.docService.ServerInfo(service.ServerInfoRequest{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// docTypeArg reads the optional doc_type argument.
func (s *Server) docTypeArg(request mcp.CallToolRequest) string {
	args := request.GetArguments()
	if docType, ok := args["doc_type"].(string); ok {
		return docType
	}
	return ""
}

// Formatting methods
func (s *Server) formatExtractResult(result *service.ExtractResult, path string) string {
	var b strings.Builder
	if path != "" {
		fmt.Fprintf(&b, "Extraction for: %s\n", path)
	} else {
		b.WriteString("Extraction from raw text\n")
	}
	fmt.Fprintf(&b, "Document type: %s\n", result.DocType)
	fmt.Fprintf(&b, "Record ID: %s\n", result.ID)
	fmt.Fprintf(&b, "Provenance: %s\n", result.Provenance)
	if result.EngineUsed != "" {
		fmt.Fprintf(&b, "Engine: %s\n", result.EngineUsed)
	}
	if result.Cached {
		b.WriteString("Served from cache\n")
	}

	if result.Provenance == "fallback" {
		b.WriteString("\n⚠️  WARNING: The scan produced too little text. " +
			"This record is a synthetic placeholder, not data read from the document.\n")
	}

	b.WriteString("\nFields:\n")
	keys := make([]string, 0, len(result.Fields))
	for key := range result.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := result.Fields[key]
		if value == "" {
			value = "(not found)"
		}
		fmt.Fprintf(&b, "  %s: %s\n", key, value)
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", warning)
		}
	}

	return b.String()
}

func (s *Server) formatServerInfoResult(result *service.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("🪪 Default Document Type: %s\n", result.DefaultDocType)
	text += fmt.Sprintf("🔤 Supported Document Types: %s\n", strings.Join(result.SupportedDocTypes, ", "))
	text += fmt.Sprintf("⚙️  Engine Order: %s\n", strings.Join(result.Engines, ", "))
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d scan files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No scan files found in default directory\n\n"
	}

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting ID extraction MCP server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server over SSE on the configured address
func (s *Server) runServerMode(ctx context.Context) error {
	log.Printf("Starting ID extraction MCP server on %s", s.config.Address())
	log.Printf("Document directory: %s", s.config.DocumentDirectory)

	sseServer := server.NewSSEServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sseServer.Start(s.config.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve sse: %w", err)
		}
		return nil
	case <-ctx.Done():
		return sseServer.Shutdown(context.Background())
	}
}
