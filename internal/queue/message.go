package queue

import "encoding/json"

// Fact is the wire payload of one fan-out delivery: notify UserID that
// PostID was published. It exists only as a serialized queue message;
// nothing is persisted until the consumer records an attempt.
//
// Field names are part of the wire contract.
type Fact struct {
	PostID int `json:"PostId"`
	UserID int `json:"UserId"`
}

func (f Fact) encode() ([]byte, error) {
	return json.Marshal(f)
}

func decodeFact(body []byte) (Fact, error) {
	var f Fact
	err := json.Unmarshal(body, &f)
	return f, err
}
