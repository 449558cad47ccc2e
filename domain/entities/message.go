package entities

// Message is the status body returned by deletes, the seeder and the export
// submission endpoint.
type Message struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}
