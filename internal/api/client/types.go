package client

// GenerateContentRequest is the body of a generateContent call.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
	Index        int      `json:"index"`
}

// PromptFeedback is set when the prompt itself was blocked; no candidates
// come back in that case.
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// UsageMetadata reports token counts for the call; it is only logged.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// NewTextRequest builds a single-turn request carrying only text.
func NewTextRequest(text string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []Content{
			{
				Parts: []Part{{Text: text}},
			},
		},
	}
}

// Text returns candidates[0].content.parts[0].text. The second result is
// false when any step of that path is missing or the text is empty.
func (r *GenerateContentResponse) Text() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text := content.Parts[0].Text
	return text, text != ""
}
