package view

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/RecipeDeck/internal/domain/content"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
)

// Document constants shared by every screen
const (
	DocumentType    = "APL"
	DocumentVersion = "2024.2"
	IdleTimeout     = 3600000

	RecipeToken        = "recipeContentToken"
	RecipeScrollViewID = "recipeScrollView"

	rowStyle     = "textStylePrimary1"
	scrollFactor = 0.75
)

// ListKind selects the layout of a listing screen
type ListKind int

const (
	// Categories lists folders directly in a Sequence
	Categories ListKind = iota
	// Items lists recipes inside a ScrollView, one line per row
	Items
)

func (k ListKind) String() string {
	if k == Items {
		return "items"
	}
	return "categories"
}

// SortedNames returns listing names in case-sensitive ordinal order
func SortedNames(l types.Listing) []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func fullBleed(c types.Component) types.Component {
	c.Width = "100%"
	c.Height = "100%"
	return c
}

func listDocument(kind ListKind, l types.Listing) *types.Document {
	names := SortedNames(l)
	rows := make([]types.Component, 0, len(names))
	for _, name := range names {
		label := types.Component{
			Type:          "Text",
			Text:          name,
			Style:         rowStyle,
			PaddingTop:    "10dp",
			PaddingBottom: "10dp",
			PaddingLeft:   "20dp",
			PaddingRight:  "20dp",
		}
		if kind == Items {
			label.MaxLines = intPtr(1)
		}
		rows = append(rows, types.Component{
			Type: "TouchWrapper",
			OnPress: &types.Command{
				Type:      "SendEvent",
				Arguments: []string{l[name]},
			},
			Item: &label,
		})
	}

	sequence := fullBleed(types.Component{
		Type:            "Sequence",
		ScrollDirection: "vertical",
		Items:           rows,
	})

	inner := sequence
	if kind == Items {
		inner = fullBleed(types.Component{Type: "ScrollView", Item: &sequence})
	}

	return &types.Document{
		Type:    DocumentType,
		Version: DocumentVersion,
		Settings: types.DocumentSettings{
			IdleTimeout:     IdleTimeout,
			HandleKeyEvents: boolPtr(false),
		},
		MainTemplate: types.Template{
			Parameters: []string{},
			Items: []types.Component{
				fullBleed(types.Component{Type: "Container", Items: []types.Component{inner}}),
			},
		},
	}
}

func recipeDocument(text string) *types.Document {
	body := types.Component{
		Type:          "Text",
		Text:          strings.Join(content.Lines(text), "<br>"),
		Style:         rowStyle,
		PaddingTop:    "20dp",
		PaddingBottom: "20dp",
		PaddingLeft:   "20dp",
		PaddingRight:  "20dp",
		MaxLines:      intPtr(0),
	}

	scroll := fullBleed(types.Component{
		Type: "ScrollView",
		ID:   RecipeScrollViewID,
		Item: &body,
	})

	return &types.Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Settings: types.DocumentSettings{IdleTimeout: IdleTimeout},
		MainTemplate: types.Template{
			Parameters: []string{},
			Items:      []types.Component{scroll},
		},
	}
}
