package turn

import (
	"context"

	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
)

// ContentGateway reads the recipe store. Every method fails soft: on failure
// the outcome's Value is an empty listing, false, or a spoken apology.
type ContentGateway interface {
	ListFolders(ctx context.Context, parentID string) types.Outcome[types.Listing]
	ListFiles(ctx context.Context, parentID string) types.Outcome[types.Listing]
	FetchText(ctx context.Context, fileID string) types.Outcome[string]
	IsFolder(ctx context.Context, nodeID string) types.Outcome[bool]
}

// TimerGateway manages device timers through the platform API
type TimerGateway interface {
	Create(ctx context.Context, endpoint, token string, req types.TimerRequest) types.Outcome[*types.Timer]
	CancelAll(ctx context.Context, endpoint, token string) types.Outcome[bool]
}
