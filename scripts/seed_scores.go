// seed_scores.go is a standalone script that loads provider scores from a
// CSV file into a project via the Rubric API.
//
// CSV columns: provider,criterion,score[,source]
//
// Usage:
//
//	go run scripts/seed_scores.go -csv scores.csv -api http://localhost:8700 -project proj-1
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
)

type scoreEntry struct {
	Provider  string  `json:"provider"`
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Source    string  `json:"source,omitempty"`
}

type putScoresRequest struct {
	Scores []scoreEntry `json:"scores"`
}

func main() {
	csvPath := flag.String("csv", "", "path to CSV file (provider,criterion,score[,source])")
	apiURL := flag.String("api", "http://localhost:8700", "Rubric API base URL")
	project := flag.String("project", "", "project ID to load scores into")
	flag.Parse()

	if *csvPath == "" || *project == "" {
		log.Fatal("-csv and -project are required")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}

	var req putScoresRequest
	for i, rec := range records {
		if len(rec) < 3 {
			log.Printf("line %d: want at least 3 columns, got %d, skipping", i+1, len(rec))
			continue
		}
		if i == 0 && rec[0] == "provider" {
			continue // header row
		}
		score, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			log.Printf("line %d: bad score %q, skipping", i+1, rec[2])
			continue
		}
		entry := scoreEntry{Provider: rec[0], Criterion: rec[1], Score: score, Source: "seed-script"}
		if len(rec) > 3 && rec[3] != "" {
			entry.Source = rec[3]
		}
		req.Scores = append(req.Scores, entry)
	}
	if len(req.Scores) == 0 {
		log.Fatal("no valid score rows found")
	}

	body, _ := json.Marshal(req)
	url := fmt.Sprintf("%s/api/v1/projects/%s/scores", *apiURL, *project)
	httpReq, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		log.Fatalf("put scores: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("put scores: unexpected status %s", resp.Status)
	}
	log.Printf("loaded %d scores into project %s", len(req.Scores), *project)
}
