// Command genmodel writes a small sample prediction model artifact so the
// API can run locally without a real training pipeline.
//
// Usage: go run scripts/genmodel/main.go [output-path]
package main

import (
	"compress/gzip"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"auroramart/internal/predictor"
)

func main() {
	outPath := "data/models/preferred_category.json.gz"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// Feature order: age, household size, has children, monthly income,
	// then one-hot blocks for gender, employment, occupation, education.
	artifact := &predictor.Artifact{
		ModelName: "preferred-category",
		Version:   "sample-1",
		TrainedAt: time.Now().UTC(),
		Accuracy:  0.0,
		Vocabulary: predictor.Vocabulary{
			Genders:            []string{"female", "male"},
			EmploymentStatuses: []string{"employed", "self-employed", "student", "unemployed"},
			Occupations:        []string{"engineer", "teacher", "nurse", "retail"},
			Educations:         []string{"high school", "bachelor", "master"},
		},
		Nodes: []predictor.Node{
			{Feature: 0, Threshold: 35, Left: 1, Right: 4},
			{Feature: 2, Threshold: 0.5, Left: 2, Right: 3},
			{Feature: -1, Label: "electronics"},
			{Feature: -1, Label: "toys"},
			{Feature: 3, Threshold: 6000, Left: 5, Right: 6},
			{Feature: -1, Label: "groceries"},
			{Feature: -1, Label: "beauty"},
		},
	}

	if err := artifact.Validate(); err != nil {
		log.Fatalf("Sample artifact is invalid: %v", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", outPath, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(artifact); err != nil {
		log.Fatalf("Failed to encode artifact: %v", err)
	}
	if err := gz.Close(); err != nil {
		log.Fatalf("Failed to finish gzip stream: %v", err)
	}

	log.Printf("Wrote sample model to %s", outPath)
}
