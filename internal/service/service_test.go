package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsnap/idcard-extract/internal/config"
	"github.com/cardsnap/idcard-extract/internal/schema"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DocumentDirectory = t.TempDir()
	cfg.FallbackSeed = 1
	return cfg
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(testConfig(t))
	require.NoError(t, err)
	return svc
}

func writeScan(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestNewServiceRejectsBadEngineOrder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Engines = []string{"mlkit"}

	_, err := NewService(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine")
}

func TestExtractTextAadhaar(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ExtractText(ExtractTextRequest{
		Text: "Government of India\nMagan Dhaniya\nDOB: 07/02/2003\n8325 2709 6374",
	})
	require.NoError(t, err)

	assert.Equal(t, "aadhaar", result.DocType)
	assert.Equal(t, "extracted", result.Provenance)
	assert.Equal(t, "832527096374", result.Fields["aadhaarNumber"])
	assert.False(t, result.Cached)
}

func TestExtractTextEmiratesID(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ExtractText(ExtractTextRequest{
		Text:    "ID Number 784-1990-1234567-1\nName: Ahmed Hassan Ali\nNationality: Indian",
		DocType: "emirates_id",
	})
	require.NoError(t, err)

	assert.Equal(t, "emirates_id", result.DocType)
	assert.Equal(t, "784199012345671", result.Fields["idNumber"])
}

func TestExtractTextUnknownDocType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ExtractText(ExtractTextRequest{Text: "anything", DocType: "passport"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document type")
}

func TestExtractTextDefaultsDocTypeFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultDocType = "emirates_id"
	svc, err := NewService(cfg)
	require.NoError(t, err)

	result, err := svc.ExtractText(ExtractTextRequest{Text: "ID Number 784-1990-1234567-1 and more text"})
	require.NoError(t, err)
	assert.Equal(t, "emirates_id", result.DocType)
}

func TestExtractTextShortInputFallsBack(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ExtractText(ExtractTextRequest{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", result.Provenance)

	// Fallback records are fully populated.
	doc, err := schema.ForType(schema.DocTypeAadhaar)
	require.NoError(t, err)
	for _, key := range doc.Keys() {
		assert.NotEmpty(t, result.Fields[key], "field %s", key)
	}
}

func TestValidateFile(t *testing.T) {
	svc := newTestService(t)
	dir := svc.pathValidator.ConfiguredDirectory()

	valid := writeScan(t, dir, "card.png", []byte("not really a png but non-empty"))
	empty := writeScan(t, dir, "empty.pdf", nil)
	unsupported := writeScan(t, dir, "notes.txt", []byte("text"))

	tests := []struct {
		name      string
		path      string
		wantValid bool
	}{
		{name: "supported non-empty file", path: valid, wantValid: true},
		{name: "empty file", path: empty, wantValid: false},
		{name: "unsupported extension", path: unsupported, wantValid: false},
		{name: "missing file", path: filepath.Join(dir, "missing.pdf"), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ValidateFile(ValidateFileRequest{Path: tt.path})
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}

func TestValidateFileOutsideDirectory(t *testing.T) {
	svc := newTestService(t)

	outside := filepath.Join(t.TempDir(), "card.pdf")
	require.NoError(t, os.WriteFile(outside, []byte("%PDF-1.4"), 0o600))

	result, err := svc.ValidateFile(ValidateFileRequest{Path: outside})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "outside configured directory")
}

func TestValidateFileTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxFileSize = 8
	svc, err := NewService(cfg)
	require.NoError(t, err)

	path := writeScan(t, cfg.DocumentDirectory, "big.pdf", []byte("0123456789"))

	result, err := svc.ValidateFile(ValidateFileRequest{Path: path})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "file too large")
}

func TestServerInfo(t *testing.T) {
	svc := newTestService(t)
	dir := svc.pathValidator.ConfiguredDirectory()
	writeScan(t, dir, "front.png", []byte("scan"))
	writeScan(t, dir, "back.jpg", []byte("scan"))
	writeScan(t, dir, "ignore.txt", []byte("not a scan"))

	info, err := svc.ServerInfo(ServerInfoRequest{})
	require.NoError(t, err)

	assert.Equal(t, dir, info.DefaultDirectory)
	assert.Equal(t, []string{"aadhaar", "emirates_id"}, info.SupportedDocTypes)
	require.Len(t, info.DirectoryContents, 2)
	assert.Equal(t, "back.jpg", info.DirectoryContents[0].Name)
	assert.Equal(t, "front.png", info.DirectoryContents[1].Name)

	toolNames := make([]string, 0, len(info.AvailableTools))
	for _, tool := range info.AvailableTools {
		toolNames = append(toolNames, tool.Name)
	}
	assert.Equal(t, []string{"id_extract_file", "id_extract_text", "id_validate_file", "id_server_info"}, toolNames)
	assert.Contains(t, info.UsageGuidance, "id_server_info")
}

func TestCacheKeyChangesWithModTime(t *testing.T) {
	svc := newTestService(t)
	dir := svc.pathValidator.ConfiguredDirectory()
	path := writeScan(t, dir, "card.pdf", []byte("%PDF-1.4"))

	key1, err := svc.cacheKey(path, schema.DocTypeAadhaar)
	require.NoError(t, err)

	require.NoError(t, os.Chtimes(path, time.Now().Add(time.Hour), time.Now().Add(time.Hour)))

	key2, err := svc.cacheKey(path, schema.DocTypeAadhaar)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2)

	key3, err := svc.cacheKey(path, schema.DocTypeEmiratesID)
	require.NoError(t, err)
	assert.NotEqual(t, key2, key3, "cache key must separate document types")
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("scan.PDF"))
	assert.True(t, IsSupportedFormat("scan.jpeg"))
	assert.False(t, IsSupportedFormat("scan.txt"))
	assert.False(t, IsSupportedFormat("scan"))
}

func TestPathValidatorNormalizeRelativePath(t *testing.T) {
	dir := t.TempDir()
	pv, err := NewPathValidator(dir)
	require.NoError(t, err)

	got, err := pv.NormalizePath("card.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "card.pdf"), got)

	_, err = pv.NormalizePath("../escape.pdf")
	require.Error(t, err)
}
