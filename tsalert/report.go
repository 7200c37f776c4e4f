package tsalert

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/report.schema.json
var reportSchemaJSON []byte

const reportSchemaURL = "https://tsalert.local/report.schema.json"

// Alert is one diagnostic location taken from a report.
type Alert struct {
	// File is the resolved path of the source file.
	File string `json:"file"`
	// Line is the 1-based row as reported.
	Line int `json:"line"`
	// Column is the 1-based column; 1 when the report gave none.
	Column  int    `json:"column"`
	Message string `json:"message"`
}

type sarifLog struct {
	Runs []struct {
		Results []sarifResult `json:"results"`
	} `json:"runs"`
}

type sarifResult struct {
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
	Locations []struct {
		PhysicalLocation struct {
			ArtifactLocation struct {
				URI string `json:"uri"`
			} `json:"artifactLocation"`
			Region struct {
				StartLine   int  `json:"startLine"`
				StartColumn *int `json:"startColumn"`
			} `json:"region"`
		} `json:"physicalLocation"`
	} `json:"locations"`
}

var reportSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reportSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decode report schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(reportSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add report schema: %w", err)
	}
	return c.Compile(reportSchemaURL)
})

// LoadReport reads the report at path and returns its alerts in report
// order, with file paths resolved against sourceRoot.
func LoadReport(path, sourceRoot string) ([]Alert, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	return ParseReport(f, sourceRoot)
}

// ParseReport decodes a report. Every location of every result becomes its
// own Alert. Any shape problem fails the whole report with ErrMalformedReport.
func ParseReport(r io.Reader, sourceRoot string) ([]Alert, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	schema, err := reportSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	var report sarifLog
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	alerts := []Alert{}
	for _, run := range report.Runs {
		for _, result := range run.Results {
			for _, loc := range result.Locations {
				phys := loc.PhysicalLocation
				column := 1
				if phys.Region.StartColumn != nil {
					column = *phys.Region.StartColumn
				}
				alerts = append(alerts, Alert{
					File:    ResolveArtifactPath(sourceRoot, phys.ArtifactLocation.URI),
					Line:    phys.Region.StartLine,
					Column:  column,
					Message: result.Message.Text,
				})
			}
		}
	}
	return alerts, nil
}
