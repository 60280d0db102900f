package drive

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/RecipeDeck/internal/domain/content"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RecipeDeck/internal/providers/http/client"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// FolderMimeType marks a node as a folder
	FolderMimeType = "application/vnd.google-apps.folder"

	filesPath  = "/drive/v3/files"
	filePath   = filesPath + "/{fileId}"
	exportPath = filePath + "/export"

	listFields = "files(id, name)"
	pageSize   = "1000"

	reasonNotExportable = "fileNotExportable"
)

// Spoken apologies returned by FetchText on failure
const (
	ApologyUnavailable = "Sorry, I couldn't fetch the content of this recipe. Please try again later."
	ApologyFailed      = "An error occurred while fetching the recipe content."
)

// Options configures a Gateway
type Options struct {
	APIKey  string
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Gateway reads the recipe collection from Drive v3 with an API key.
// It fails soft: every method logs the failure and returns a fallback value.
type Gateway struct {
	client  *client.Client
	apiKey  string
	decoder *Decoder
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

type fileList struct {
	Files []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"files"`
}

type fileMeta struct {
	MimeType string `json:"mimeType"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// NewGateway creates a Drive gateway over c, whose base URL must point at the API host
func NewGateway(c *client.Client, opts Options) *Gateway {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Gateway{
		client:  c,
		apiKey:  opts.APIKey,
		decoder: NewDecoder(),
		logger:  opts.Logger.Component("drive"),
		metrics: opts.Metrics,
	}
}

// ListFolders lists the sub-folders of parentID by name
func (g *Gateway) ListFolders(ctx context.Context, parentID string) types.Outcome[types.Listing] {
	return g.list(ctx, "list_folders", parentID, "=")
}

// ListFiles lists the non-folder children of parentID by name
func (g *Gateway) ListFiles(ctx context.Context, parentID string) types.Outcome[types.Listing] {
	return g.list(ctx, "list_files", parentID, "!=")
}

func (g *Gateway) list(ctx context.Context, op, parentID, cmp string) types.Outcome[types.Listing] {
	timer := monitoring.NewTimer(g.metrics, "drive", op)

	var result fileList
	_, err := g.client.Do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetQueryParams(map[string]string{
				"q":        childQuery(parentID, cmp),
				"key":      g.apiKey,
				"fields":   listFields,
				"pageSize": pageSize,
			}).
			SetResult(&result).
			Get(filesPath)
	})
	timer.Stop(err == nil)
	if err != nil {
		g.logger.Error("listing failed",
			zap.String("operation", op),
			zap.String("node_id", parentID),
			zap.Error(err),
		)
		return types.Failed(types.Listing{}, err.Error())
	}

	listing := make(types.Listing, len(result.Files))
	for _, f := range result.Files {
		listing[f.Name] = f.ID
	}
	g.logger.Debug("listing fetched",
		zap.String("operation", op),
		zap.String("node_id", parentID),
		zap.Int("count", len(listing)),
	)
	return types.Succeeded(listing)
}

// IsFolder reports whether nodeID is a folder
func (g *Gateway) IsFolder(ctx context.Context, nodeID string) types.Outcome[bool] {
	timer := monitoring.NewTimer(g.metrics, "drive", "is_folder")

	var meta fileMeta
	_, err := g.client.Do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetPathParam("fileId", nodeID).
			SetQueryParams(map[string]string{
				"fields": "mimeType",
				"key":    g.apiKey,
			}).
			SetResult(&meta).
			Get(filePath)
	})
	timer.Stop(err == nil)
	if err != nil {
		g.logger.Error("folder check failed", zap.String("node_id", nodeID), zap.Error(err))
		return types.Failed(false, err.Error())
	}

	return types.Succeeded(meta.MimeType == FolderMimeType)
}

// FetchText exports fileID as plain text and sanitizes it. Files that cannot
// be exported are downloaded and decoded instead. On failure the value is a
// spoken apology.
func (g *Gateway) FetchText(ctx context.Context, fileID string) types.Outcome[string] {
	timer := monitoring.NewTimer(g.metrics, "drive", "fetch_text")

	text, err := g.export(ctx, fileID)
	if isNotExportable(err) {
		g.logger.Debug("file not exportable, downloading", zap.String("node_id", fileID))
		text, err = g.download(ctx, fileID)
	}
	timer.Stop(err == nil)

	if err != nil {
		g.logger.Error("recipe fetch failed", zap.String("node_id", fileID), zap.Error(err))
		if _, ok := client.AsStatus(err); ok {
			return types.Failed(ApologyUnavailable, err.Error())
		}
		return types.Failed(ApologyFailed, err.Error())
	}

	return types.Succeeded(content.Sanitize(text))
}

func (g *Gateway) export(ctx context.Context, fileID string) (string, error) {
	resp, err := g.client.Do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetPathParam("fileId", fileID).
			SetQueryParams(map[string]string{
				"mimeType": "text/plain",
				"key":      g.apiKey,
			}).
			Get(exportPath)
	})
	if err != nil {
		return "", err
	}
	return ToUTF8(resp.Body()), nil
}

func (g *Gateway) download(ctx context.Context, fileID string) (string, error) {
	resp, err := g.client.Do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetPathParam("fileId", fileID).
			SetQueryParams(map[string]string{
				"alt": "media",
				"key": g.apiKey,
			}).
			Get(filePath)
	})
	if err != nil {
		return "", err
	}

	text, err := g.decoder.Decode(resp.Body())
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", fileID, err)
	}
	return text, nil
}

func isNotExportable(err error) bool {
	se, ok := client.AsStatus(err)
	if !ok || se.Code != http.StatusForbidden {
		return false
	}

	var body apiError
	if sonic.Unmarshal(se.Body, &body) != nil {
		return false
	}
	for _, e := range body.Error.Errors {
		if e.Reason == reasonNotExportable {
			return true
		}
	}
	return false
}

var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// childQuery builds the Drive search expression for children of parentID
func childQuery(parentID, cmp string) string {
	return fmt.Sprintf("'%s' in parents and mimeType%s'%s'", queryEscaper.Replace(parentID), cmp, FolderMimeType)
}
