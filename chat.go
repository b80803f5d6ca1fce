package sitechat

// ChatResult is the outcome of one retrieval-augmented chat exchange.
type ChatResult struct {
	// Answer is the post-processed model completion.
	Answer string `json:"answer"`

	// RetrievedContent is the grounding context the answer was based on.
	RetrievedContent string `json:"relevantContent"`

	// SourceCount is the number of documents retrieved.
	SourceCount int `json:"sourceCount"`
}
