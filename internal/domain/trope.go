package domain

// Trope is a free-text story trope.
type Trope struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
