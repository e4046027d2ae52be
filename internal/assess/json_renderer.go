package assess

import "encoding/json"

// Export is the on-disk JSON shape: metadata plus the full classified graph.
type Export struct {
	Metadata   ExportMetadata `json:"metadata"`
	Assessment *Assessment    `json:"assessment"`
}

// ExportMetadata describes the run that produced an export.
type ExportMetadata struct {
	GeneratedAt string `json:"generatedAt"`
	ToolVersion string `json:"toolVersion"`
}

// NewExport wraps an assessment with run metadata.
func NewExport(a *Assessment, toolVersion string) Export {
	return Export{
		Metadata: ExportMetadata{
			GeneratedAt: a.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
			ToolVersion: toolVersion,
		},
		Assessment: a,
	}
}

// RenderJSON renders the assessment as an indented JSON export.
func RenderJSON(a *Assessment, toolVersion string) ([]byte, error) {
	return json.MarshalIndent(NewExport(a, toolVersion), "", "  ")
}

// ParseExport reads a JSON export back into memory, for offline re-rendering.
func ParseExport(data []byte) (*Export, error) {
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}
	return &export, nil
}
