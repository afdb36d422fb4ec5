package http

type StreamQuery struct {
	Type string `form:"type"`
}

// ReadyMessage is the first frame of every stream, sent once the subscription is live.
type ReadyMessage struct {
	Type string `json:"type"`
}
