package document

// DocumentBody is the wire form of one vault document. The secret field
// carries the client-side encrypted blob untouched.
type DocumentBody struct {
	ID        string `json:"id,omitempty" doc:"Server-assigned document id"`
	Label     string `json:"label" doc:"Display label"`
	Username  string `json:"username" doc:"Account username"`
	Secret    string `json:"secret" doc:"Encrypted secret blob"`
	Notes     string `json:"notes" doc:"Free-form notes"`
	CreatedAt int64  `json:"created_at" doc:"Client timestamp of the last secret refresh, epoch milliseconds"`
}

type listInput struct{}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Documents []DocumentBody `json:"documents"`
}

type createInput struct {
	Body DocumentBody
}

type createOutput struct {
	Body CreateResponse
}

type CreateResponse struct {
	ID string `json:"id" doc:"Identifier assigned to the new document"`
}

type putInput struct {
	ID   string `path:"id" doc:"Document id"`
	Body DocumentBody
}

type putOutput struct {
	Body StatusResponse
}

type deleteInput struct {
	ID string `path:"id" doc:"Document id"`
}

type deleteOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status" example:"OK"`
}
