// README: Data gathering coordinator with per-capability failure isolation.
package agent

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"voyago/internal/search"
)

// luxuryBudgetThreshold splits restaurant searches into price tiers.
const luxuryBudgetThreshold = 2000

// Gatherer fans out over the applicable capability adapters and collects
// their results. A failure in one adapter never prevents the others from
// being attempted; Gather itself never fails.
type Gatherer struct {
	adapters []search.Adapter
	timeout  time.Duration
}

// NewGatherer builds a coordinator. timeout bounds each individual adapter
// call; zero means the caller's context is the only bound.
func NewGatherer(timeout time.Duration, adapters ...search.Adapter) *Gatherer {
	return &Gatherer{adapters: adapters, timeout: timeout}
}

// Gather invokes every adapter whose precondition holds, concurrently, and
// waits for all of them to settle. Absent keys mean "not applicable";
// present keys holding an error marker mean "attempted but failed".
func (g *Gatherer) Gather(ctx context.Context, details TravelDetails) ToolResults {
	var results ToolResults

	if err := ctx.Err(); err != nil {
		results.Err = fmt.Sprintf("gathering aborted: %v", err)
		return results
	}

	var applicable []search.Adapter
	for _, ad := range g.adapters {
		if capabilityApplicable(ad.Key(), details) {
			applicable = append(applicable, ad)
		}
	}
	if len(applicable) == 0 {
		return results
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, ad := range applicable {
		wg.Add(1)
		go func(ad search.Adapter) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("capability %s panicked: %v", ad.Key(), r)
					mu.Lock()
					results.set(ad.Key(), &ToolResult{Error: fmt.Sprintf("panic: %v", r)})
					mu.Unlock()
				}
			}()

			callCtx := ctx
			if g.timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, g.timeout)
				defer cancel()
			}

			res, err := ad.Search(callCtx, buildQuery(ad.Key(), details))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("capability %s failed: %v", ad.Key(), err)
				results.set(ad.Key(), &ToolResult{Error: err.Error()})
				return
			}
			results.set(ad.Key(), &ToolResult{Items: res.Items, DataSource: res.DataSource})
		}(ad)
	}
	wg.Wait()

	return results
}

// capabilityApplicable gates each capability on the fields it needs.
func capabilityApplicable(key string, d TravelDetails) bool {
	switch key {
	case "flights":
		return d.FromLocation != NotSpecified &&
			d.ToLocation != NotSpecified &&
			d.DepartureDate != NotSpecified
	case "weather", "attractions", "restaurants", "hotels":
		return d.ToLocation != NotSpecified
	}
	return false
}

// buildQuery maps travel details onto the semantic parameters a capability
// consumes, blanking sentinel values so adapters never interpolate them.
func buildQuery(key string, d TravelDetails) search.Query {
	q := search.Query{
		Location:      valueOrEmpty(d.ToLocation),
		From:          valueOrEmpty(d.FromLocation),
		DepartureDate: valueOrEmpty(d.DepartureDate),
		ReturnDate:    valueOrEmpty(d.ReturnDate),
		Travelers:     d.Travelers,
	}
	if key == "restaurants" {
		q.PriceTier = budgetTier(d.Budget)
	}
	return q
}

func valueOrEmpty(v string) string {
	if v == NotSpecified {
		return ""
	}
	return v
}

var budgetAmountRe = regexp.MustCompile(`\d+`)

// budgetTier maps a free-form budget string to a restaurant price tier.
// Amounts over the luxury threshold map to "luxury"; everything else,
// including unparsable budgets, maps to "mid-range".
func budgetTier(budget string) string {
	cleaned := strings.ReplaceAll(budget, ",", "")
	m := budgetAmountRe.FindString(cleaned)
	if m == "" {
		return "mid-range"
	}
	amount, err := strconv.Atoi(m)
	if err != nil || amount <= luxuryBudgetThreshold {
		return "mid-range"
	}
	return "luxury"
}
