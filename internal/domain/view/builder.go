package view

import (
	"github.com/GriffinCanCode/RecipeDeck/internal/domain/session"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
)

// Spoken fallbacks
const (
	SpeechScrollError = "An error occurred while scrolling. Please try again."
)

// envelope wraps a body and echoes the session when it carries anything
func envelope(body types.ResponseBody, st session.State) *types.Response {
	resp := &types.Response{
		Version:  types.ResponseVersion,
		Response: body,
	}
	if len(st) > 0 {
		resp.SessionAttributes = st.Attributes()
	}
	return resp
}

// RenderList renders a tappable listing sorted by name. An empty listing
// produces no directive and ends the session.
func RenderList(kind ListKind, l types.Listing, st session.State) *types.Response {
	if len(l) == 0 {
		return envelope(types.ResponseBody{ShouldEndSession: true}, st)
	}

	return envelope(types.ResponseBody{
		Directives: []types.Directive{{
			Type:     types.DirectiveRenderDocument,
			Document: listDocument(kind, l),
		}},
	}, st)
}

// RenderRecipe shows the recipe text, focuses its scroll view and retains
// the recipe in the returned session.
func RenderRecipe(r session.Recipe, st session.State) *types.Response {
	next := st.WithRecipe(r)

	return envelope(types.ResponseBody{
		Directives: []types.Directive{
			{
				Type:     types.DirectiveRenderDocument,
				Token:    RecipeToken,
				Document: recipeDocument(r.Content),
			},
			{
				Type:  types.DirectiveExecuteCommands,
				Token: RecipeToken,
				Commands: []types.Command{
					{Type: "Focus", ComponentID: RecipeScrollViewID},
				},
			},
		},
	}, next)
}

// RenderScroll scrolls the recipe view by a fraction of its height.
// direction must be 1 (down) or -1 (up).
func RenderScroll(direction int, st session.State) *types.Response {
	if direction != 1 && direction != -1 {
		return Speak(SpeechScrollError, false, st)
	}

	return envelope(types.ResponseBody{
		Directives: []types.Directive{{
			Type:  types.DirectiveExecuteCommands,
			Token: RecipeToken,
			Commands: []types.Command{{
				Type:        "Scroll",
				ComponentID: RecipeScrollViewID,
				Distance:    scrollFactor * float64(direction),
			}},
		}},
	}, st)
}

// Speak returns a speech-only response
func Speak(text string, end bool, st session.State) *types.Response {
	return envelope(types.ResponseBody{
		OutputSpeech:     types.PlainText(text),
		ShouldEndSession: end,
	}, st)
}

// Silent returns a response with neither speech nor directives
func Silent(end bool, st session.State) *types.Response {
	return envelope(types.ResponseBody{ShouldEndSession: end}, st)
}

// WithSpeech overlays spoken text on an existing response
func WithSpeech(resp *types.Response, text string) *types.Response {
	resp.Response.OutputSpeech = types.PlainText(text)
	return resp
}
