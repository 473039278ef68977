package health

// Input is empty; the liveness probe takes no parameters.
type Input struct{}

// Output wraps the liveness response body.
type Output struct {
	Body Response
}

// Response is the liveness probe body.
type Response struct {
	Status string `json:"status" example:"OK" doc:"OK when the API is up"`
}
