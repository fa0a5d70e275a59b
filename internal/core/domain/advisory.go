package domain

const (
	SeverityInfo = "info"
	SeverityHigh = "high"
)

// Suggestion is one piece of advice returned by the generative text provider.
type Suggestion struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Advice is the response of the advisory endpoint for one request.
type Advice struct {
	Role        string       `json:"role"`
	Processes   []string     `json:"processes"`
	Suggestions []Suggestion `json:"suggestions"`
}
