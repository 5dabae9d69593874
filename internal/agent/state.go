// README: Agent state, travel details, tool results and reducer semantics.
package agent

import (
	"voyago/internal/search"
)

// NotSpecified is the sentinel stored in place of missing string fields.
// Downstream prompt templates interpolate these fields directly, so absence
// of information is always represented as data, never as an empty value.
const NotSpecified = "not specified"

// TravelDetails is the structured extraction of a user's travel request.
// Every field is always populated; see NewTravelDetails.
type TravelDetails struct {
	FromLocation        string   `json:"fromLocation"`
	ToLocation          string   `json:"toLocation"`
	DepartureDate       string   `json:"departureDate"`
	ReturnDate          string   `json:"returnDate"`
	Travelers           int      `json:"travelers"`
	Budget              string   `json:"budget"`
	Preferences         []string `json:"preferences"`
	Duration            string   `json:"duration"`
	SpecialRequirements string   `json:"specialRequirements"`
}

// NewTravelDetails returns a fully populated record with sentinel defaults.
func NewTravelDetails() TravelDetails {
	return TravelDetails{
		FromLocation:        NotSpecified,
		ToLocation:          NotSpecified,
		DepartureDate:       NotSpecified,
		ReturnDate:          NotSpecified,
		Travelers:           1,
		Budget:              NotSpecified,
		Preferences:         []string{},
		Duration:            NotSpecified,
		SpecialRequirements: NotSpecified,
	}
}

// ToolResult is one capability's outcome: either a normalized result list
// (with a data-source marker so fallback data stays distinguishable from
// live data) or an error marker when the attempt itself failed.
type ToolResult struct {
	Items      []search.Item `json:"items,omitempty"`
	DataSource string        `json:"dataSource,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// ToolResults is the per-capability bag of results. A nil field means the
// capability was not applicable this turn; a non-nil field holding an Error
// means it was attempted but failed. Err signals wholesale failure of the
// gathering stage.
type ToolResults struct {
	Weather     *ToolResult `json:"weather,omitempty"`
	Flights     *ToolResult `json:"flights,omitempty"`
	Hotels      *ToolResult `json:"hotels,omitempty"`
	Attractions *ToolResult `json:"attractions,omitempty"`
	Restaurants *ToolResult `json:"restaurants,omitempty"`
	Err         string      `json:"error,omitempty"`
}

// Keys returns the names of the capabilities that are present, in a fixed
// order. Error-marker entries count as present ("attempted but failed").
func (r ToolResults) Keys() []string {
	keys := []string{}
	for _, e := range []struct {
		key string
		res *ToolResult
	}{
		{"weather", r.Weather},
		{"flights", r.Flights},
		{"hotels", r.Hotels},
		{"attractions", r.Attractions},
		{"restaurants", r.Restaurants},
	} {
		if e.res != nil {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Get returns the result stored under key, or nil when absent.
func (r ToolResults) Get(key string) *ToolResult {
	switch key {
	case "weather":
		return r.Weather
	case "flights":
		return r.Flights
	case "hotels":
		return r.Hotels
	case "attractions":
		return r.Attractions
	case "restaurants":
		return r.Restaurants
	}
	return nil
}

func (r *ToolResults) set(key string, res *ToolResult) {
	switch key {
	case "weather":
		r.Weather = res
	case "flights":
		r.Flights = res
	case "hotels":
		r.Hotels = res
	case "attractions":
		r.Attractions = res
	case "restaurants":
		r.Restaurants = res
	}
}

// Message is one conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Step is the orchestrator's position in the pipeline.
type Step string

const (
	StepAnalyzing         Step = "analyzing"
	StepGatheringData     Step = "gathering_data"
	StepCreatingItinerary Step = "creating_itinerary"
	StepComplete          Step = "complete"
)

// stepRank orders the steps so that Apply can refuse regressions.
var stepRank = map[Step]int{
	StepAnalyzing:         0,
	StepGatheringData:     1,
	StepCreatingItinerary: 2,
	StepComplete:          3,
}

// AgentState is the full context threaded through one conversation turn.
type AgentState struct {
	Messages      []Message     `json:"messages"`
	TravelDetails TravelDetails `json:"travelDetails"`
	ToolResults   ToolResults   `json:"toolResults"`
	CurrentStep   Step          `json:"currentStep"`
	FinalResponse string        `json:"finalResponse"`
}

// NewAgentState builds the initial state for a turn seeded with the
// caller-supplied first message.
func NewAgentState(userMessage string) AgentState {
	return AgentState{
		Messages:      []Message{{Role: RoleUser, Content: userMessage}},
		TravelDetails: NewTravelDetails(),
		ToolResults:   ToolResults{},
		CurrentStep:   StepAnalyzing,
	}
}

// StateUpdate is a partial update produced by one pipeline stage. Nil or
// zero-valued fields leave the corresponding state field untouched.
type StateUpdate struct {
	Messages      []Message
	TravelDetails *TravelDetails
	ToolResults   *ToolResults
	CurrentStep   Step
	FinalResponse string
}

// Apply folds a partial update into the state using per-field reducers:
// messages concatenate, travel details and tool results shallow-merge,
// current step and final response replace. CurrentStep never regresses.
func (s AgentState) Apply(u StateUpdate) AgentState {
	next := s
	if len(u.Messages) > 0 {
		next.Messages = append(append([]Message{}, s.Messages...), u.Messages...)
	}
	if u.TravelDetails != nil {
		next.TravelDetails = mergeDetails(s.TravelDetails, *u.TravelDetails)
	}
	if u.ToolResults != nil {
		next.ToolResults = mergeToolResults(s.ToolResults, *u.ToolResults)
	}
	if u.CurrentStep != "" && stepRank[u.CurrentStep] > stepRank[s.CurrentStep] {
		next.CurrentStep = u.CurrentStep
	}
	if u.FinalResponse != "" {
		next.FinalResponse = u.FinalResponse
	}
	return next
}

// mergeDetails overwrites fields carried by the update and retains the rest.
// A populated update field is anything that is not the zero value; sentinel
// strings are populated values and do overwrite.
func mergeDetails(base, update TravelDetails) TravelDetails {
	out := base
	if update.FromLocation != "" {
		out.FromLocation = update.FromLocation
	}
	if update.ToLocation != "" {
		out.ToLocation = update.ToLocation
	}
	if update.DepartureDate != "" {
		out.DepartureDate = update.DepartureDate
	}
	if update.ReturnDate != "" {
		out.ReturnDate = update.ReturnDate
	}
	if update.Travelers > 0 {
		out.Travelers = update.Travelers
	}
	if update.Budget != "" {
		out.Budget = update.Budget
	}
	if update.Preferences != nil {
		out.Preferences = update.Preferences
	}
	if update.Duration != "" {
		out.Duration = update.Duration
	}
	if update.SpecialRequirements != "" {
		out.SpecialRequirements = update.SpecialRequirements
	}
	return out
}

func mergeToolResults(base, update ToolResults) ToolResults {
	out := base
	for _, key := range []string{"weather", "flights", "hotels", "attractions", "restaurants"} {
		if res := update.Get(key); res != nil {
			out.set(key, res)
		}
	}
	if update.Err != "" {
		out.Err = update.Err
	}
	return out
}
