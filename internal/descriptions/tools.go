package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	IDExtractFileDescription = `Extract structured identity-document fields from a scan file.

**When to use:** You have a PDF or image scan of an Aadhaar card or Emirates ID and need its fields as structured data.

**Why it's useful:** Runs OCR engine selection, text normalization and field extraction in one call. Degraded scans never fail the call; the record degrades field by field and the provenance flag tells you what happened.

**Examples:**
• KYC intake: "Extract fields from aadhaar-front.pdf for the onboarding form"
• Renewal checks: "Get the expiry date from emirates-id.png to flag expiring cards"
• Batch digitization: "Extract every scan in /scans/ into records for the archive"

**Common workflows:**
1. Intake: id_validate_file → id_extract_file → check provenance → store record
2. Verification: Extract fields → compare against declared details → flag mismatches
3. Archive: Extract in bulk → index by ID number → enable lookup

**Best practices:** Check the 'provenance' field before trusting a record; 'fallback' means the scan produced too little text and the record is a synthetic placeholder. Empty field values mean not found, keys are always present. ID numbers come back digits-only.`

	IDExtractTextDescription = `Extract structured identity-document fields from raw OCR text.

**When to use:** OCR already ran elsewhere (a mobile SDK, a scanning service) and you have its raw text output.

**Why it's useful:** Applies the same Arabic/Devanagari stripping, line classification and field cascades as id_extract_file without re-running OCR, so results are consistent across capture paths.

**Examples:**
• Mobile capture: "Extract fields from the text our on-device recognizer produced"
• Reprocessing: "Re-extract stored OCR dumps after a schema change"
• Debugging: "See what the extractor makes of this noisy text block"

**Common workflows:**
1. Mobile pipeline: On-device OCR → id_extract_text → upload the record
2. Replay: Load stored raw text → re-extract → diff against old records
3. Tuning: Paste problem text → inspect per-field results → adjust upstream capture

**Best practices:** Pass the raw text untouched; the extractor does its own normalization and pre-cleaned input can remove the anchors the name heuristic relies on.`

	IDValidateFileDescription = `Verify a file is a processable document scan before extraction.

**When to use:** Before attempting extraction, especially in automated workflows or when handling user uploads.

**Why it's useful:** Catches missing files, unsupported formats, empty files and oversized inputs early, with a message explaining the problem instead of a mid-pipeline failure.

**Examples:**
• Upload verification: "Check user-uploaded card.pdf before queueing it"
• Batch safety: "Validate all scans in /inbox/ before the nightly run"
• Triage: "See why front-side.jpg is being rejected"

**Common workflows:**
1. Automated intake: Validate → extract if valid → report failures per file
2. Quality control: Validate → reject with message → ask for a re-scan
3. Pre-processing: Validate → route PDFs and images to the right capture path

**Best practices:** A failed validation is a normal result with a message, not an error; always surface that message to the uploader.`

	IDServerInfoDescription = `Get server status, available tools, directory contents and usage guidance.

**When to use:** Starting a session, troubleshooting issues, or discovering what the server can do.

**Why it's useful:** Reports the configured document directory with its current scan files, the supported document types and engines, and the size limits, so clients can plan work without trial and error.

**Examples:**
• Session startup: "List the scans available before planning extraction"
• Troubleshooting: "Check the configured directory when files aren't being found"
• Discovery: "See the supported document types and engine order"

**Common workflows:**
1. Startup: Check server info → pick files → validate → extract
2. Debugging: Review directory path and limits → fix the request → retry
3. Planning: Review tools → choose file or text extraction → execute

**Best practices:** Run at the start of sessions; the directory listing is capped, so use exact paths for files beyond the first page of results.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"id_extract_file":  IDExtractFileDescription,
	"id_extract_text":  IDExtractTextDescription,
	"id_validate_file": IDValidateFileDescription,
	"id_server_info":   IDServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
