package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cardsnap/idcard-extract/internal/config"
	"github.com/cardsnap/idcard-extract/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DocumentDirectory = t.TempDir()
	cfg.ServerName = "test-server"
	cfg.FallbackSeed = 1
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	docService, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	srv, err := NewServer(cfg, docService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{name: "valid stdio mode config", mode: "stdio"},
		{name: "valid server mode config", mode: "server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Mode = tt.mode

			srv := newTestServer(t, cfg)
			if srv.config != cfg {
				t.Error("server config not set correctly")
			}
			if srv.docService == nil {
				t.Error("server docService not set correctly")
			}
			if srv.mcpServer == nil {
				t.Error("mcpServer should be initialized")
			}
		})
	}
}

func TestNewServerNilService(t *testing.T) {
	if _, err := NewServer(testConfig(t), nil); err == nil {
		t.Error("expected error for nil service")
	}
}

func TestServer_HandleValidateFile(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)

	// Create test file
	testFile := filepath.Join(cfg.DocumentDirectory, "test.png")
	if err := os.WriteFile(testFile, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := srv.handleValidateFile(context.Background(), callRequest(map[string]interface{}{
		"path": testFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "valid document scan") {
		t.Errorf("expected file to validate, got: %s", resultText)
	}
}

func TestServer_HandleValidateFileRejectsUnsupported(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)

	testFile := filepath.Join(cfg.DocumentDirectory, "notes.txt")
	if err := os.WriteFile(testFile, []byte("text"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := srv.handleValidateFile(context.Background(), callRequest(map[string]interface{}{
		"path": testFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Validation failed") {
		t.Errorf("expected validation to fail, got: %s", resultText)
	}
}

func TestServer_HandleValidateFileMissingPath(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	result, err := srv.handleValidateFile(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing path argument")
	}
}

func TestServer_HandleExtractText(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	result, err := srv.handleExtractText(context.Background(), callRequest(map[string]interface{}{
		"text": "Government of India\nMagan Dhaniya\nDOB: 07/02/2003\n8325 2709 6374",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Provenance: extracted") {
		t.Errorf("expected extracted provenance, got: %s", resultText)
	}
	if !strings.Contains(resultText, "aadhaarNumber: 832527096374") {
		t.Errorf("expected extracted number in output, got: %s", resultText)
	}
	if !strings.Contains(resultText, "name: Magan Dhaniya") {
		t.Errorf("expected extracted name in output, got: %s", resultText)
	}
}

func TestServer_HandleExtractTextFallbackWarning(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	result, err := srv.handleExtractText(context.Background(), callRequest(map[string]interface{}{
		"text": "x",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Provenance: fallback") {
		t.Errorf("expected fallback provenance, got: %s", resultText)
	}
	if !strings.Contains(resultText, "synthetic placeholder") {
		t.Errorf("expected placeholder warning, got: %s", resultText)
	}
}

func TestServer_HandleExtractTextDocTypeArg(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	result, err := srv.handleExtractText(context.Background(), callRequest(map[string]interface{}{
		"text":     "ID Number 784-1990-1234567-1 Name: Ahmed Hassan Ali",
		"doc_type": "emirates_id",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Document type: emirates_id") {
		t.Errorf("expected emirates_id document type, got: %s", resultText)
	}
	if !strings.Contains(resultText, "idNumber: 784199012345671") {
		t.Errorf("expected digits-only id number, got: %s", resultText)
	}
}

func TestServer_HandleExtractTextUnknownDocType(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	result, err := srv.handleExtractText(context.Background(), callRequest(map[string]interface{}{
		"text":     "anything at all here",
		"doc_type": "passport",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown document type")
	}
}

func TestServer_HandleExtractFileMissingFile(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)

	result, err := srv.handleExtractFile(context.Background(), callRequest(map[string]interface{}{
		"path": filepath.Join(cfg.DocumentDirectory, "missing.pdf"),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing file")
	}
}

func TestServer_HandleServerInfo(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)

	scanFile := filepath.Join(cfg.DocumentDirectory, "card.png")
	if err := os.WriteFile(scanFile, []byte("scan"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := srv.handleServerInfo(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	for _, want := range []string{
		"test-server",
		cfg.DocumentDirectory,
		"card.png",
		"id_extract_file",
		"id_extract_text",
		"id_validate_file",
		"id_server_info",
	} {
		if !strings.Contains(resultText, want) {
			t.Errorf("server info output missing %q, got: %s", want, resultText)
		}
	}
}

func TestServer_DocTypeArg(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	if got := srv.docTypeArg(callRequest(map[string]interface{}{"doc_type": "aadhaar"})); got != "aadhaar" {
		t.Errorf("docTypeArg() = %q, want %q", got, "aadhaar")
	}
	if got := srv.docTypeArg(callRequest(map[string]interface{}{})); got != "" {
		t.Errorf("docTypeArg() = %q, want empty", got)
	}
	if got := srv.docTypeArg(callRequest(map[string]interface{}{"doc_type": 42})); got != "" {
		t.Errorf("docTypeArg() = %q, want empty for non-string", got)
	}
}

func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	// Try to extract text content
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		// Handle pointer to TextContent as well
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
