// README: Itinerary synthesizer with deterministic template fallback.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"voyago/internal/ai"
	"voyago/internal/search"
)

const synthesisPrompt = `You are an expert travel planner. Using the traveler's request, the extracted travel details, and the search results below, write a complete itinerary in markdown.
Guidelines:
- Organize the trip as a day-by-day or time-blocked schedule.
- Include concrete, actionable details: specific names, addresses, and links where present.
- Call out the budget and offer alternative options where relevant.
- When a section's dataSource is "Fallback recommendations", tell the reader those are general suggestions rather than live data.
- Close with practical next steps, such as booking sites to check and details to confirm.`

// Synthesizer produces the final markdown response. Synthesize never fails:
// when the model is unavailable it assembles a templated itinerary directly
// from whatever details and results are present.
type Synthesizer struct {
	provider ai.CompletionProvider
}

func NewSynthesizer(provider ai.CompletionProvider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Synthesize builds the synthesis prompt and asks the model for a markdown
// itinerary, falling back to the template on any failure. The result is
// always non-empty.
func (s *Synthesizer) Synthesize(ctx context.Context, userMessage string, details TravelDetails, results ToolResults) string {
	text, err := s.provider.Complete(ctx, []string{synthesisPrompt}, synthesisInput(userMessage, details, results))
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("itinerary synthesis model error: %v", err)
		}
		return fallbackItinerary(details, results)
	}
	return text
}

// synthesisInput embeds the original request, the pretty-printed details,
// and the per-capability results ({} for absent keys) into one block.
func synthesisInput(userMessage string, details TravelDetails, results ToolResults) string {
	var b strings.Builder
	b.WriteString("Traveler request: ")
	b.WriteString(truncateRunes(userMessage, maxUserMessageRunes))
	b.WriteString("\n\nExtracted travel details:\n")
	b.WriteString(prettyJSON(details))
	b.WriteString("\n\nSearch results:\n")
	for _, key := range []string{"weather", "flights", "hotels", "attractions", "restaurants"} {
		b.WriteString(key)
		b.WriteString(": ")
		if res := results.Get(key); res != nil {
			b.WriteString(prettyJSON(res))
		} else {
			b.WriteString("{}")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

var sectionTitles = map[string]string{
	"weather":     "Weather",
	"flights":     "Flights",
	"hotels":      "Hotels",
	"attractions": "Attractions",
	"restaurants": "Restaurants",
}

// fallbackItinerary assembles a markdown response without any model call.
// It always returns a non-empty document, even with no details and no
// results at all.
func fallbackItinerary(details TravelDetails, results ToolResults) string {
	var b strings.Builder

	if details.ToLocation != NotSpecified {
		fmt.Fprintf(&b, "# Your Trip to %s\n\n", details.ToLocation)
	} else {
		b.WriteString("# Your Travel Itinerary\n\n")
		b.WriteString("I could not pin down a destination from your message. Tell me where you would like to go and I can plan the details.\n\n")
	}

	b.WriteString("## Trip Overview\n\n")
	writeOverviewLine(&b, "From", details.FromLocation)
	writeOverviewLine(&b, "To", details.ToLocation)
	writeOverviewLine(&b, "Departure", details.DepartureDate)
	writeOverviewLine(&b, "Return", details.ReturnDate)
	fmt.Fprintf(&b, "- **Travelers:** %d\n", details.Travelers)
	writeOverviewLine(&b, "Budget", details.Budget)
	writeOverviewLine(&b, "Duration", details.Duration)
	writeOverviewLine(&b, "Special requirements", details.SpecialRequirements)
	b.WriteString("\n")

	if results.Err != "" {
		b.WriteString("_Live search data could not be gathered for this request, so the suggestions below are general guidance._\n\n")
	}

	for _, key := range results.Keys() {
		res := results.Get(key)
		fmt.Fprintf(&b, "## %s\n\n", sectionTitles[key])
		switch {
		case res.Error != "":
			fmt.Fprintf(&b, "_Live %s data was unavailable (%s). Check booking sites directly._\n\n", key, res.Error)
		default:
			if res.DataSource == search.FallbackSource {
				b.WriteString("_Live data was unavailable; these are general suggestions._\n\n")
			}
			for _, item := range res.Items {
				writeItemLine(&b, item)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Next Steps\n\n")
	b.WriteString("- Verify prices and availability on booking sites such as Google Flights, Booking.com, and OpenTable.\n")
	b.WriteString("- Confirm entry requirements and documents for your destination.\n")
	b.WriteString("- Book early for the best rates, especially around holidays.\n")

	return b.String()
}

func writeOverviewLine(b *strings.Builder, label, value string) {
	if value == NotSpecified {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func writeItemLine(b *strings.Builder, item search.Item) {
	fmt.Fprintf(b, "- **%s**", item.Name)
	if item.Rating > 0 {
		fmt.Fprintf(b, " (rated %.1f)", item.Rating)
	}
	if item.Description != "" {
		fmt.Fprintf(b, " - %s", item.Description)
	}
	if item.Address != "" {
		fmt.Fprintf(b, ". %s", item.Address)
	}
	if item.Price != "" {
		fmt.Fprintf(b, ". Price: %s", item.Price)
	}
	if item.Link != "" {
		fmt.Fprintf(b, ". [Map](%s)", item.Link)
	}
	b.WriteString("\n")
}
