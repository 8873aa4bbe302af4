package domain

import "time"

// Protocol identifies the report format version.
const Protocol = "Griot Protocol v1.0"

// DocumentInfo describes one side of a comparison in a report.
type DocumentInfo struct {
	Filename  string `json:"filename"`
	Filepath  string `json:"filepath"`
	SHA256    string `json:"sha256"`
	WordCount int    `json:"word_count"`
	// SealedAt is the timestamp from the document's truth-seal record, if one exists.
	SealedAt string `json:"sealed_at,omitempty"`
	// BlockchainAnchors is the number of anchors recorded in the seal.
	BlockchainAnchors int `json:"blockchain_anchors,omitempty"`
}

// Analysis summarizes the similarity scores for a report.
// Percentages are in [0,100], rounded to two decimals.
type Analysis struct {
	OverallSimilarity  float64 `json:"overall_similarity"`
	NGramSimilarity    float64 `json:"ngram_similarity"`
	SequenceSimilarity float64 `json:"sequence_similarity"`
	PassageCount       int     `json:"stolen_passages_count"`
	Verdict            string  `json:"verdict"`
}

// ReportPassage is the report-facing view of a PassageMatch.
// Similarity is a percentage in [0,100], rounded to one decimal.
type ReportPassage struct {
	Original   string  `json:"original"`
	Suspect    string  `json:"suspect"`
	Similarity float64 `json:"similarity"`
	Verdict    Verdict `json:"verdict"`
}

// Report is the full comparison report handed to the renderers.
type Report struct {
	Protocol    string          `json:"protocol"`
	Type        string          `json:"type"`
	GeneratedAt time.Time       `json:"generated_at"`
	Original    DocumentInfo    `json:"original"`
	Suspect     DocumentInfo    `json:"suspect"`
	Analysis    Analysis        `json:"analysis"`
	Passages    []ReportPassage `json:"stolen_passages"`
}
