package session

// Keys holding the retained recipe
const (
	KeyRecipeContent = "last_recipe_content"
	KeyRecipeName    = "last_recipe_name"
)

// State is the opaque attribute map carried between turns by the platform.
// Keys other than the recipe keys are preserved untouched.
type State map[string]interface{}

// Recipe is a retained recipe
type Recipe struct {
	Name    string
	Content string
}

// FromAttributes copies incoming session attributes into a State. A nil map
// yields an empty State.
func FromAttributes(attrs map[string]interface{}) State {
	s := make(State, len(attrs))
	for k, v := range attrs {
		s[k] = v
	}
	return s
}

// Recipe returns the retained recipe. ok is false unless both keys hold
// non-empty strings, so a half-written state reads as no recipe.
func (s State) Recipe() (Recipe, bool) {
	content, _ := s[KeyRecipeContent].(string)
	name, _ := s[KeyRecipeName].(string)
	if content == "" || name == "" {
		return Recipe{}, false
	}
	return Recipe{Name: name, Content: content}, true
}

// WithRecipe returns a copy of s retaining r. Both keys are always written
// together.
func (s State) WithRecipe(r Recipe) State {
	next := s.Clone()
	next[KeyRecipeContent] = r.Content
	next[KeyRecipeName] = r.Name
	return next
}

// Clone returns a shallow copy
func (s State) Clone() State {
	return FromAttributes(s)
}

// Attributes returns s as the response's sessionAttributes map
func (s State) Attributes() map[string]interface{} {
	return map[string]interface{}(s.Clone())
}
