package types

// ResponseVersion is the envelope version tag
const ResponseVersion = "1.0"

// Directive types
const (
	DirectiveRenderDocument  = "Alexa.Presentation.APL.RenderDocument"
	DirectiveExecuteCommands = "Alexa.Presentation.APL.ExecuteCommands"
)

// Response is the envelope returned for a turn
type Response struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes,omitempty"`
	Response          ResponseBody           `json:"response"`
}

// ResponseBody holds the speech, directives and session flag
type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech is spoken text
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Directive instructs the device to render a document or run commands
type Directive struct {
	Type     string    `json:"type"`
	Token    string    `json:"token,omitempty"`
	Document *Document `json:"document,omitempty"`
	Commands []Command `json:"commands,omitempty"`
}

// PlainText builds a plain text speech block
func PlainText(text string) *OutputSpeech {
	return &OutputSpeech{Type: "PlainText", Text: text}
}

// Speech returns the spoken text, or "" when the response is silent
func (r *Response) Speech() string {
	if r == nil || r.Response.OutputSpeech == nil {
		return ""
	}
	return r.Response.OutputSpeech.Text
}
