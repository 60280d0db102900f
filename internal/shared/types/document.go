package types

// Document is a declarative display document
type Document struct {
	Type         string           `json:"type"`
	Version      string           `json:"version"`
	Settings     DocumentSettings `json:"settings"`
	MainTemplate Template         `json:"mainTemplate"`
}

// DocumentSettings controls device behaviour while the document is shown
type DocumentSettings struct {
	IdleTimeout     int   `json:"idleTimeout"`
	HandleKeyEvents *bool `json:"handleKeyEvents,omitempty"`
}

// Template is the document root
type Template struct {
	Parameters []string    `json:"parameters"`
	Items      []Component `json:"items"`
}

// Component is a visual element. Only the fields a component type uses are set.
type Component struct {
	Type            string      `json:"type"`
	ID              string      `json:"id,omitempty"`
	Width           string      `json:"width,omitempty"`
	Height          string      `json:"height,omitempty"`
	ScrollDirection string      `json:"scrollDirection,omitempty"`
	Text            string      `json:"text,omitempty"`
	Style           string      `json:"style,omitempty"`
	PaddingTop      string      `json:"paddingTop,omitempty"`
	PaddingBottom   string      `json:"paddingBottom,omitempty"`
	PaddingLeft     string      `json:"paddingLeft,omitempty"`
	PaddingRight    string      `json:"paddingRight,omitempty"`
	MaxLines        *int        `json:"maxLines,omitempty"`
	OnPress         *Command    `json:"onPress,omitempty"`
	Item            *Component  `json:"item,omitempty"`
	Items           []Component `json:"items,omitempty"`
}

// Command is an imperative instruction executed on the device
type Command struct {
	Type        string   `json:"type"`
	ComponentID string   `json:"componentId,omitempty"`
	Distance    float64  `json:"distance,omitempty"`
	Arguments   []string `json:"arguments,omitempty"`
}
