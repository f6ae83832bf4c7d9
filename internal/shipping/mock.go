package shipping

// FixedQuoter returns the same quote for every request. Used in tests that
// need a deterministic shipping cost.
type FixedQuoter struct {
	Result Quote
	Err    error

	// Calls records every request for assertion.
	Calls []QuoteRequest
}

// QuoteRequest captures the arguments of one Quote call.
type QuoteRequest struct {
	Origin      string
	Destination string
	WeightKg    float64
}

func (q *FixedQuoter) Quote(origin, destination string, weightKg float64) (*Quote, error) {
	q.Calls = append(q.Calls, QuoteRequest{Origin: origin, Destination: destination, WeightKg: weightKg})
	if q.Err != nil {
		return nil, q.Err
	}
	result := q.Result
	return &result, nil
}

// QuoterFunc adapts a function to the Quoter interface.
type QuoterFunc func(origin, destination string, weightKg float64) (*Quote, error)

func (f QuoterFunc) Quote(origin, destination string, weightKg float64) (*Quote, error) {
	return f(origin, destination, weightKg)
}
