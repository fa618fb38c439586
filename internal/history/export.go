package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/HartBrook/lyra/internal/errors"
)

// Export writes the chosen prompt of session to dir as markdown and JSON.
// It returns the paths of both files.
func Export(session *Session, dir string) (mdPath, jsonPath string, err error) {
	chosen, err := session.Chosen()
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", errors.ExportFailed(dir, err)
	}

	meta, err := encodeIndented(session)
	if err != nil {
		return "", "", errors.ExportFailed(dir, err)
	}

	base := ExportBaseName(session.Timestamp)
	mdPath = filepath.Join(dir, base+".md")
	jsonPath = filepath.Join(dir, base+".json")

	var md bytes.Buffer
	md.WriteString("# Optimized Prompt\n\n")
	md.WriteString(chosen.Prompt)
	md.WriteString("\n\n## Metadata\n")
	md.Write(meta)

	if err := os.WriteFile(mdPath, md.Bytes(), 0644); err != nil {
		return "", "", errors.ExportFailed(mdPath, err)
	}
	if err := os.WriteFile(jsonPath, meta, 0644); err != nil {
		return "", "", errors.ExportFailed(jsonPath, err)
	}

	return mdPath, jsonPath, nil
}

// ExportBaseName turns "2024-05-01 12:30:45" into "2024-05-01_123045_optimized".
func ExportBaseName(timestamp string) string {
	ts := strings.ReplaceAll(timestamp, ":", "")
	ts = strings.ReplaceAll(ts, " ", "_")
	return ts + "_optimized"
}

func encodeIndented(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
