package predictor

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// leafFeature marks a node as a leaf; its Label is the prediction.
const leafFeature = -1

// Artifact is the deployed decision-tree model: metadata, the categorical
// vocabularies seen at training time, and the tree itself as a flat node
// array rooted at index 0.
type Artifact struct {
	ModelName  string     `json:"modelName"`
	Version    string     `json:"version"`
	TrainedAt  time.Time  `json:"trainedAt"`
	Accuracy   float64    `json:"accuracy"`
	Vocabulary Vocabulary `json:"vocabulary"`
	Nodes      []Node     `json:"nodes"`
}

// Vocabulary lists the categorical values known at training time, in the
// order their one-hot columns were laid out.
type Vocabulary struct {
	Genders            []string `json:"genders"`
	EmploymentStatuses []string `json:"employmentStatuses"`
	Occupations        []string `json:"occupations"`
	Educations         []string `json:"educations"`
}

// Node is one decision-tree node. Interior nodes route on
// feature <= threshold; leaves carry the predicted label.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Label     string  `json:"label"`
}

// IsLeaf reports whether the node is a prediction leaf.
func (n *Node) IsLeaf() bool {
	return n.Feature == leafFeature
}

// FeatureCount returns the length of the fixed-order feature vector this
// artifact expects: the four numeric features followed by the one-hot
// blocks.
func (a *Artifact) FeatureCount() int {
	return numericFeatures +
		len(a.Vocabulary.Genders) +
		len(a.Vocabulary.EmploymentStatuses) +
		len(a.Vocabulary.Occupations) +
		len(a.Vocabulary.Educations)
}

// Validate checks the artifact is internally consistent before it is used
// for prediction.
func (a *Artifact) Validate() error {
	if a.Version == "" {
		return fmt.Errorf("model artifact has no version")
	}
	if len(a.Nodes) == 0 {
		return fmt.Errorf("model artifact has no tree nodes")
	}

	featureCount := a.FeatureCount()
	for i, n := range a.Nodes {
		if n.IsLeaf() {
			if n.Label == "" {
				return fmt.Errorf("leaf node %d has no label", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= featureCount {
			return fmt.Errorf("node %d references feature %d outside the vector of %d", i, n.Feature, featureCount)
		}
		if n.Left < 0 || n.Left >= len(a.Nodes) || n.Right < 0 || n.Right >= len(a.Nodes) {
			return fmt.Errorf("node %d has child index outside the node array", i)
		}
	}

	return nil
}

// DecodeArtifact reads a gzipped JSON model artifact.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var artifact Artifact
	if err := json.NewDecoder(gzipReader).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	return &artifact, nil
}
