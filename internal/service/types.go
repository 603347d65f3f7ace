package service

// ExtractFileRequest asks for field extraction from a document scan on disk.
type ExtractFileRequest struct {
	// Path is the absolute path to the scan (PDF or image).
	Path string `json:"path"`

	// DocType selects the document schema; empty uses the configured default.
	DocType string `json:"doc_type,omitempty"`
}

// ExtractTextRequest asks for field extraction from already-recognized OCR text.
type ExtractTextRequest struct {
	Text    string `json:"text"`
	DocType string `json:"doc_type,omitempty"`
}

// ExtractResult is the outcome of one extraction, file or text based.
type ExtractResult struct {
	ID         string            `json:"id"`
	DocType    string            `json:"doc_type"`
	Fields     map[string]string `json:"fields"`
	Provenance string            `json:"provenance"`
	EngineUsed string            `json:"engine_used,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
	Cached     bool              `json:"cached"`
}

// ValidateFileRequest asks whether a file is a processable document scan.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult reports the validation outcome. A failed validation is
// a result, not an error.
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ServerInfoRequest asks for server information and usage guidance.
type ServerInfoRequest struct{}

// FileInfo describes one scan file in the configured directory.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ToolInfo describes one available MCP tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// ServerInfoResult carries server configuration, directory contents and
// usage guidance.
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	DefaultDocType    string     `json:"default_doc_type"`
	SupportedDocTypes []string   `json:"supported_doc_types"`
	Engines           []string   `json:"engines"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}
