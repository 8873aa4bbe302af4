// Package fingerprint computes fixed-content fingerprints for compared
// documents and reads the truth-seal records a timestamping collaborator
// leaves next to them. It performs no network calls of its own.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SealExtension is the suffix of a truth-seal record file.
const SealExtension = ".griot"

// Fingerprint identifies a document's exact content.
type Fingerprint struct {
	SHA256    string
	SizeBytes int64
	WordCount int
}

// Anchor is one blockchain anchor entry from a seal record.
type Anchor struct {
	Chain       string `json:"chain"`
	ChainName   string `json:"chain_name,omitempty"`
	Method      string `json:"method,omitempty"`
	TxHash      string `json:"tx_hash,omitempty"`
	ExplorerURL string `json:"explorer_url,omitempty"`
	Status      string `json:"status,omitempty"`
}

// SealRecord is the JSON proof document written when a file was sealed.
type SealRecord struct {
	Protocol  string   `json:"protocol"`
	Type      string   `json:"type"`
	Filename  string   `json:"filename"`
	Filepath  string   `json:"filepath"`
	SHA256    string   `json:"sha256"`
	SizeBytes int64    `json:"size_bytes"`
	SealedAt  string   `json:"sealed_at"`
	Anchors   []Anchor `json:"anchors,omitempty"`
}

// Text fingerprints in-memory document content.
func Text(content string) Fingerprint {
	sum := sha256.Sum256([]byte(content))
	return Fingerprint{
		SHA256:    hex.EncodeToString(sum[:]),
		SizeBytes: int64(len(content)),
		WordCount: len(strings.Fields(content)),
	}
}

// File fingerprints a file's content.
func File(path string) (Fingerprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Text(string(data)), nil
}

// Matches reports whether the fingerprint equals the expected hex digest,
// ignoring case.
func (f Fingerprint) Matches(expected string) bool {
	return strings.EqualFold(f.SHA256, expected)
}

// LoadSeal reads a seal record from the given path.
func LoadSeal(path string) (*SealRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seal record %s: %w", path, err)
	}
	var record SealRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("invalid seal record %s: %w", path, err)
	}
	return &record, nil
}

// SealFor looks for a seal record next to the given document
// (<document>.griot). A missing record is not an error and returns nil.
func SealFor(documentPath string) (*SealRecord, error) {
	path := documentPath + SealExtension
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return LoadSeal(path)
}
