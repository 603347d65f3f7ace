// Package service orchestrates validation, OCR engine selection, extraction
// and result caching for identity-document scans.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cardsnap/idcard-extract/internal/config"
	"github.com/cardsnap/idcard-extract/internal/engine"
	"github.com/cardsnap/idcard-extract/internal/pipeline"
	"github.com/cardsnap/idcard-extract/internal/schema"
)

// directoryListingLimit caps how many files ServerInfo reports.
const directoryListingLimit = 100

// Service handles document extraction requests by orchestrating the
// validators, the engine factory and the per-document-type pipelines.
type Service struct {
	cfg           *config.Config
	factory       *engine.Factory
	pipelines     map[schema.DocType]*pipeline.Pipeline
	fileValidator *FileValidator
	pathValidator *PathValidator
	cache         *gocache.Cache
}

// NewService creates a service from validated configuration. One pipeline is
// built per supported document type so a single server instance can handle
// mixed workloads.
func NewService(cfg *config.Config) (*Service, error) {
	pathValidator, err := NewPathValidator(cfg.DocumentDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	kinds, err := engine.ParseKinds(cfg.Engines)
	if err != nil {
		return nil, fmt.Errorf("failed to parse engine order: %w", err)
	}

	pipelines := make(map[schema.DocType]*pipeline.Pipeline, len(schema.AllDocTypes()))
	for _, docType := range schema.AllDocTypes() {
		p, err := pipeline.New(docType,
			pipeline.WithMinTextLength(cfg.MinTextLength),
			pipeline.WithTimeout(cfg.Timeout),
			pipeline.WithSeed(cfg.FallbackSeed),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s pipeline: %w", docType, err)
		}
		pipelines[docType] = p
	}

	s := &Service{
		cfg:           cfg,
		factory:       engine.NewFactory(cfg.MaxFileSize, cfg.OCRLanguage, kinds),
		pipelines:     pipelines,
		fileValidator: NewFileValidator(cfg.MaxFileSize),
		pathValidator: pathValidator,
	}
	if cfg.CacheEnabled {
		s.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s, nil
}

// ExtractFile runs the full pipeline over a document scan on disk. The
// record is served from cache when the same file version was extracted
// recently.
func (s *Service) ExtractFile(ctx context.Context, req ExtractFileRequest) (*ExtractResult, error) {
	docType, err := s.resolveDocType(req.DocType)
	if err != nil {
		return nil, err
	}

	path, err := s.pathValidator.NormalizePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	if err := s.fileValidator.validateScanFile(path); err != nil {
		return nil, err
	}

	cacheKey, err := s.cacheKey(path, docType)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			result := cached.(*ExtractResult)
			copied := *result
			copied.Cached = true
			return &copied, nil
		}
	}

	engines, err := s.factory.ChainForFile(path)
	if err != nil {
		return nil, err
	}

	pipelineResult, err := s.pipelines[docType].ExtractFile(ctx, engines, engine.Input{Path: path})
	if err != nil {
		return nil, err
	}

	result := toExtractResult(pipelineResult)
	if s.cache != nil && pipelineResult.Provenance == pipeline.ProvenanceExtracted {
		s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	}
	return result, nil
}

// ExtractText runs the pure text path on caller-supplied OCR output.
func (s *Service) ExtractText(req ExtractTextRequest) (*ExtractResult, error) {
	docType, err := s.resolveDocType(req.DocType)
	if err != nil {
		return nil, err
	}
	return toExtractResult(s.pipelines[docType].ExtractText(req.Text)), nil
}

// ValidateFile checks whether a file is a processable document scan.
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	path, err := s.pathValidator.NormalizePath(req.Path)
	if err != nil {
		return &ValidateFileResult{Path: req.Path, Message: err.Error()}, nil
	}
	return s.fileValidator.ValidateFile(ValidateFileRequest{Path: path})
}

// ServerInfo returns server configuration, the scan files currently in the
// configured directory and usage guidance for clients.
func (s *Service) ServerInfo(_ ServerInfoRequest) (*ServerInfoResult, error) {
	docTypes := make([]string, 0, len(schema.AllDocTypes()))
	for _, t := range schema.AllDocTypes() {
		docTypes = append(docTypes, string(t))
	}

	return &ServerInfoResult{
		ServerName:        s.cfg.ServerName,
		Version:           s.cfg.Version,
		DefaultDirectory:  s.pathValidator.ConfiguredDirectory(),
		DefaultDocType:    s.cfg.DefaultDocType,
		SupportedDocTypes: docTypes,
		Engines:           s.cfg.Engines,
		MaxFileSize:       s.cfg.MaxFileSize,
		AvailableTools:    availableTools(),
		DirectoryContents: s.listScanFiles(),
		UsageGuidance:     usageGuidance(s.cfg.MaxFileSize),
	}, nil
}

// MaxFileSize returns the maximum input file size limit.
func (s *Service) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// resolveDocType maps a request's document type to a schema, falling back
// to the configured default when the request leaves it empty.
func (s *Service) resolveDocType(requested string) (schema.DocType, error) {
	if requested == "" {
		requested = s.cfg.DefaultDocType
	}
	docType := schema.DocType(requested)
	if !docType.IsValid() {
		return "", fmt.Errorf("unsupported document type: %s", requested)
	}
	return docType, nil
}

// cacheKey identifies one version of one file for one schema. The mtime in
// the key invalidates entries when the file is rewritten in place.
func (s *Service) cacheKey(path string, docType schema.DocType) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot stat file for caching: %w", err)
	}
	return fmt.Sprintf("%s|%d|%s", path, info.ModTime().UnixNano(), docType), nil
}

// listScanFiles returns the processable files in the configured directory,
// capped at directoryListingLimit entries.
func (s *Service) listScanFiles() []FileInfo {
	entries, err := os.ReadDir(s.pathValidator.ConfiguredDirectory())
	if err != nil {
		return []FileInfo{}
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedFormat(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:         filepath.Join(s.pathValidator.ConfiguredDirectory(), entry.Name()),
			Name:         entry.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format(time.RFC3339),
		})
		if len(files) == directoryListingLimit {
			break
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}

func toExtractResult(r *pipeline.Result) *ExtractResult {
	return &ExtractResult{
		ID:         r.ID,
		DocType:    string(r.DocType),
		Fields:     r.Record,
		Provenance: string(r.Provenance),
		EngineUsed: r.EngineUsed,
		Warnings:   r.Warnings,
	}
}

func availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        "id_extract_file",
			Description: "Extract identity-document fields from a scan file",
			Usage: "Use this tool to turn a PDF or image scan of an Aadhaar card or Emirates ID " +
				"into a structured field record. OCR engine selection and fallback are automatic.",
			Parameters: "path (required): Full absolute path to the scan file, " +
				"doc_type (optional): 'aadhaar' or 'emirates_id' (uses default if empty)",
		},
		{
			Name:        "id_extract_text",
			Description: "Extract identity-document fields from raw OCR text",
			Usage: "Use this tool when OCR already ran elsewhere and you have the raw text. " +
				"Applies the same normalization and field extraction as id_extract_file.",
			Parameters: "text (required): Raw OCR output, " +
				"doc_type (optional): 'aadhaar' or 'emirates_id' (uses default if empty)",
		},
		{
			Name:        "id_validate_file",
			Description: "Validate that a file is a processable document scan",
			Usage:       "Use this tool to check a file before attempting extraction.",
			Parameters:  "path (required): Full absolute path to the scan file",
		},
		{
			Name:        "id_server_info",
			Description: "Get server configuration, directory contents and usage guidance",
			Usage:       "Use this tool first to discover available scans and supported document types.",
			Parameters:  "none",
		},
	}
}

func usageGuidance(maxFileSize int64) string {
	return `ID Card Extract Server Usage Guide:

1. START WITH DISCOVERY:
   - Use 'id_server_info' to see available scan files and supported document types

2. VALIDATE FILES:
   - Use 'id_validate_file' to check a file is a readable scan before processing

3. EXTRACT FIELDS:
   - Use 'id_extract_file' with the scan path and document type
   - Check the 'provenance' field in the response:
     * "extracted": fields were read from the document
     * "fallback": the scan produced too little text, the record is a synthetic placeholder
   - Empty string values mean the field was not found, keys are always present

4. TEXT-ONLY EXTRACTION:
   - Use 'id_extract_text' if OCR output is already available

IMPORTANT NOTES:
- Always use absolute file paths inside the configured document directory
- The server can handle files up to ` + fmt.Sprintf("%d", maxFileSize/(1024*1024)) + `MB
- Aadhaar numbers and Emirates ID numbers are returned digits-only
- Repeated extractions of an unchanged file are served from cache`
}
