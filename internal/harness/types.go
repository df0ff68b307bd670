package harness

// TurnRecord is one question and its reply in the transcript.
type TurnRecord struct {
	Question  string `json:"question"`
	Kind      string `json:"kind"`
	Shape     string `json:"shape,omitempty"`
	Text      string `json:"text"`
	RequestID string `json:"-"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Transcript holds the turns in the order they were played.
	Transcript []TurnRecord `json:"transcript"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []TurnRecord{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTurn appends a played turn to the transcript.
func (r *Result) AddTurn(t TurnRecord) {
	r.Transcript = append(r.Transcript, t)
}
