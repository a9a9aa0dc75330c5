package match

import (
	"regexp"
	"strconv"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is the confidence level of a title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Candidate is one movie or person from a search response.
type Candidate struct {
	ID    int64
	Title string
	Year  int
}

// Result is the best candidate for a query.
type Result struct {
	Candidate  Candidate
	Score      float64 // Jaro-Winkler similarity (0.0-1.0) after adjustments
	Confidence Confidence
}

// Candidates extracts candidates from a decoded search response.
// Movies carry "title"/"release_date", people carry "name".
func Candidates(body map[string]any) []Candidate {
	items, _ := body["results"].([]any)
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var c Candidate
		if id, ok := m["id"].(float64); ok {
			c.ID = int64(id)
		}
		if title, ok := m["title"].(string); ok {
			c.Title = title
		} else if name, ok := m["name"].(string); ok {
			c.Title = name
		}
		if date, ok := m["release_date"].(string); ok && len(date) >= 4 {
			c.Year, _ = strconv.Atoi(date[:4])
		}
		if c.Title != "" {
			out = append(out, c)
		}
	}
	return out
}

// Best returns the candidate closest to query. year=0 means no year preference.
// Jaro-Winkler favors prefix matches; matching sequence numbers and release
// years adjust the score.
func Best(query string, year int, candidates []Candidate) Result {
	best := Result{Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	normalizedQuery := CleanTitle(query)
	queryNumbers := extractNumbers(normalizedQuery)

	for _, candidate := range candidates {
		normalizedCandidate := CleanTitle(candidate.Title)

		score := float64(edlib.JaroWinklerSimilarity(normalizedQuery, normalizedCandidate))
		score = adjustScoreForNumbers(score, queryNumbers, extractNumbers(normalizedCandidate))
		score = adjustScoreForYear(score, year, candidate.Year)

		if score > best.Score {
			best.Candidate = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Candidate = Candidate{}
	}

	return best
}

func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers rewards matching sequence numbers and penalizes
// missing or different ones.
func adjustScoreForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range queryNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

// adjustScoreForYear allows an off-by-one year (regional release dates).
func adjustScoreForYear(score float64, want, got int) float64 {
	if want == 0 || got == 0 {
		return score
	}
	switch diff := want - got; {
	case diff == 0:
		return min(score*1.05, 1.0)
	case diff == 1 || diff == -1:
		return score
	default:
		return score * 0.90
	}
}
