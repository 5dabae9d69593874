// README: Detail extractor; strict-JSON model path with regex heuristic fallback.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"voyago/internal/ai"
)

// maxUserMessageRunes bounds the text interpolated into the extraction
// prompt so a pathological message cannot blow the model's context window.
const maxUserMessageRunes = 2000

const extractionPrompt = `You are a travel request analyzer. Extract travel details from the user's message and respond with ONLY a JSON object, no prose and no code fences, matching exactly this shape:
{
  "fromLocation": "city or 'not specified'",
  "toLocation": "city or 'not specified'",
  "departureDate": "YYYY-MM-DD or 'not specified'",
  "returnDate": "YYYY-MM-DD or 'not specified'",
  "travelers": 1,
  "budget": "amount or 'not specified'",
  "preferences": [],
  "duration": "e.g. '5 days' or 'not specified'",
  "specialRequirements": "text or 'not specified'"
}
Rules:
- Use the literal string "not specified" for any string field the message does not state.
- "travelers" is a positive integer; default to 1 when not stated.
- "preferences" is an array of short free-form tags; use [] when none apply.`

// DetailExtractor turns a free-text message into a fully populated
// TravelDetails. Extract never fails: when the model path cannot produce a
// valid record it degrades to the heuristic path.
type DetailExtractor struct {
	provider ai.CompletionProvider
}

func NewDetailExtractor(provider ai.CompletionProvider) *DetailExtractor {
	return &DetailExtractor{provider: provider}
}

// Extract analyzes the user's message. All nine fields of the result are
// always populated (sentinels for the unknown ones).
func (e *DetailExtractor) Extract(ctx context.Context, userMessage string) TravelDetails {
	raw, err := e.provider.Complete(ctx, []string{extractionPrompt}, truncateRunes(userMessage, maxUserMessageRunes))
	if err != nil {
		log.Printf("detail extraction model error: %v", err)
		return heuristicExtract(userMessage)
	}

	details, err := parseDetails(raw)
	if err != nil {
		log.Printf("detail extraction parse error: %v", err)
		return heuristicExtract(userMessage)
	}
	return details
}

// rawDetails tolerates the shapes models actually emit before validation
// normalizes them into TravelDetails.
type rawDetails struct {
	FromLocation        string      `json:"fromLocation"`
	ToLocation          string      `json:"toLocation"`
	DepartureDate       string      `json:"departureDate"`
	ReturnDate          string      `json:"returnDate"`
	Travelers           json.Number `json:"travelers"`
	Budget              string      `json:"budget"`
	Preferences         []string    `json:"preferences"`
	Duration            string      `json:"duration"`
	SpecialRequirements string      `json:"specialRequirements"`
}

// parseDetails slices the first '{' .. last '}' out of the raw completion
// (models like to wrap JSON in prose or code fences), unmarshals it, and
// validates the result against the sentinel-default rules. Any problem is a
// parse failure; the caller falls to the heuristic path.
func parseDetails(raw string) (TravelDetails, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return TravelDetails{}, fmt.Errorf("no JSON object in completion")
	}

	var parsed rawDetails
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return TravelDetails{}, fmt.Errorf("unmarshal travel details: %w", err)
	}

	details := NewTravelDetails()
	details.FromLocation = orSentinel(parsed.FromLocation)
	details.ToLocation = orSentinel(parsed.ToLocation)
	details.DepartureDate = orSentinel(parsed.DepartureDate)
	details.ReturnDate = orSentinel(parsed.ReturnDate)
	details.Budget = orSentinel(parsed.Budget)
	details.Duration = orSentinel(parsed.Duration)
	details.SpecialRequirements = orSentinel(parsed.SpecialRequirements)
	if parsed.Preferences != nil {
		details.Preferences = parsed.Preferences
	}
	if n, err := parsed.Travelers.Int64(); err == nil && n > 0 {
		details.Travelers = int(n)
	}
	return details, nil
}

func orSentinel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NotSpecified
	}
	return v
}

// Heuristic extraction patterns. First match in source order wins per
// field; unmatched fields keep their sentinel.
var (
	fromToRe    = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z][a-zA-Z .'-]*?)\s+to\s+([a-zA-Z][a-zA-Z .'-]*?)(?:\s+(?:next|for|with|on|in|by|around|this)\b|[,.!?]|$)`)
	destOnlyRe  = regexp.MustCompile(`(?i)\b(?:going to|visit|traveling to|trip to)\s+([a-zA-Z][a-zA-Z .'-]*?)(?:\s+(?:next|for|with|on|in|by|around|this)\b|[,.!?]|$)`)
	travelersRe = regexp.MustCompile(`(?i)(\d+)\s+(?:people|travelers|adults|persons)`)
	budgetRe    = regexp.MustCompile(`\$(\d+(?:,\d+)*)`)
	durationRe  = regexp.MustCompile(`(?i)\d+\s+days?`)
)

// heuristicExtract is the no-model fallback. It is a pure function of the
// message text.
func heuristicExtract(userMessage string) TravelDetails {
	details := NewTravelDetails()

	if m := fromToRe.FindStringSubmatch(userMessage); m != nil {
		details.FromLocation = strings.TrimSpace(m[1])
		details.ToLocation = strings.TrimSpace(m[2])
	}
	// The destination-only pattern is skipped entirely once a destination
	// is already set.
	if details.ToLocation == NotSpecified {
		if m := destOnlyRe.FindStringSubmatch(userMessage); m != nil {
			details.ToLocation = strings.TrimSpace(m[1])
		}
	}
	if m := travelersRe.FindStringSubmatch(userMessage); m != nil {
		if n := atoiOrZero(m[1]); n > 0 {
			details.Travelers = n
		}
	}
	if m := budgetRe.FindString(userMessage); m != "" {
		details.Budget = m
	}
	if m := durationRe.FindString(userMessage); m != "" {
		details.Duration = strings.ToLower(m)
	}

	lower := strings.ToLower(userMessage)
	switch {
	case strings.Contains(lower, "romantic"):
		details.SpecialRequirements = "romantic trip"
	case strings.Contains(lower, "family") || strings.Contains(lower, "kids"):
		details.SpecialRequirements = "family trip"
	case strings.Contains(lower, "business"):
		details.SpecialRequirements = "business trip"
	}

	return details
}

func atoiOrZero(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
