package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cardsnap/idcard-extract/internal/extract"
	"github.com/cardsnap/idcard-extract/internal/schema"
)

var (
	docTypeFlag  = flag.String("doctype", "aadhaar", "Document type: aadhaar, emirates_id")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Show the cleaned text and date candidates")
	help         = flag.Bool("help", false, "Show help message")
)

// sampleAadhaarText is a real OCR dump of an Aadhaar card front, complete
// with the single-letter noise columns flatbed scanners produce.
const sampleAadhaarText = `&S Government of India .
s T g
H Magan Dhaniya g
5 S fafel/DOB: 07/02/2003 3
2 L Ces | 9oW/ MALE g
-1 s
e 1 n
N 3
2 8
‘ g §
| 8 -
8325 2709 6374 b
VID : 9149 4449 3304 2200 |
AT 3TENTY, ALY 98T`

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	docType := schema.DocType(*docTypeFlag)
	if !docType.IsValid() {
		fmt.Fprintf(os.Stderr, "Error: unknown document type: %s\n", *docTypeFlag)
		os.Exit(1)
	}

	raw, err := readInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	extractor, err := extract.NewExtractor(docType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating extractor: %v\n", err)
		os.Exit(1)
	}

	result := extractor.Extract(raw)

	if err := outputResult(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting result: %v\n", err)
		os.Exit(1)
	}
}

// readInput returns the text to parse: a file named on the command line, or
// the built-in Aadhaar sample when no argument is given.
func readInput() (string, error) {
	if flag.NArg() == 0 {
		return sampleAadhaarText, nil
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printHelp() {
	fmt.Println("Parse Sample - run the field extractor over raw OCR text")
	fmt.Println()
	fmt.Println("Runs the full text pipeline (script stripping, line classification,")
	fmt.Println("field cascades, date roles, name heuristic) over a text file or the")
	fmt.Println("built-in Aadhaar sample, and prints the resulting record.")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  parse_sample [OPTIONS] [text_file]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -doctype    Document type: aadhaar (default), emirates_id")
	fmt.Println("  -format     Output format: text (default), json")
	fmt.Println("  -verbose    Show the cleaned text and date candidates")
	fmt.Println("  -help       Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  parse_sample")
	fmt.Println("  parse_sample -verbose ocr-dump.txt")
	fmt.Println("  parse_sample -doctype emirates_id -format json eid-ocr.txt")
}

// parseResult is the JSON output shape.
type parseResult struct {
	ID       string            `json:"id"`
	DocType  string            `json:"doc_type"`
	Fields   map[string]string `json:"fields"`
	Dates    []dateInfo        `json:"dates,omitempty"`
	TextSize int               `json:"cleaned_text_length"`
}

type dateInfo struct {
	Text string `json:"text"`
	Role string `json:"role"`
}

func outputResult(result *extract.Extraction) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *extract.Extraction) error {
	out := parseResult{
		ID:       result.ID,
		DocType:  string(result.DocType),
		Fields:   result.Record,
		TextSize: result.CleanedLength,
	}
	if *verbose {
		for _, d := range result.Dates {
			out.Dates = append(out.Dates, dateInfo{Text: d.Text, Role: string(d.Role)})
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputText(result *extract.Extraction) error {
	doc, err := schema.ForType(result.DocType)
	if err != nil {
		return err
	}

	fmt.Printf("Document type: %s\n", result.DocType)
	fmt.Printf("Record ID: %s\n", result.ID)
	fmt.Printf("Cleaned text length: %d\n", result.CleanedLength)
	fmt.Println()
	fmt.Println("Fields:")
	for _, key := range doc.Keys() {
		value := result.Record[key]
		if value == "" {
			value = "(not found)"
		}
		fmt.Printf("  %-15s %s\n", key+":", value)
	}

	if *verbose {
		fmt.Println()
		fmt.Printf("Date candidates (%d):\n", len(result.Dates))
		for i, d := range result.Dates {
			role := string(d.Role)
			if role == "" {
				role = "unassigned"
			}
			fmt.Printf("  [%d] %s  role=%s\n", i+1, d.Text, role)
		}
	}

	return nil
}
