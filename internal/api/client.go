// Package api is the HTTP client for the AAS repository and passport
// endpoints. All operations take a context, return structured errors and
// never retry; retry policy belongs to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/dpp"
)

const defaultTimeout = 30 * time.Second

// Client talks to one repository. Construct with NewClient; the zero
// value is not usable.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	headers     map[string]string
	credentials *app.Credentials
	log         *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the resolved base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient builds a client from a repository context. The base URL is
// resolved from the context, then the environment, then the built-in
// default.
func NewClient(rctx app.RepositoryContext, opts ...Option) *Client {
	baseURL := rctx.RepositoryURL
	if baseURL == "" {
		baseURL = os.Getenv(app.RepositoryURLEnvVar)
	}
	if baseURL == "" {
		baseURL = app.DefaultRepositoryURL
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		headers:     rctx.Headers,
		credentials: rctx.Credentials,
		log:         app.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// applyContext sets credentials and context headers on a request.
func (c *Client) applyContext(req *http.Request) {
	if cred := c.credentials; cred != nil {
		switch cred.Type {
		case app.CredentialBearer:
			req.Header.Set("Authorization", "Bearer "+cred.Token)
		case app.CredentialAPIKey:
			header := cred.HeaderName
			if header == "" {
				header = "X-API-Key"
			}
			req.Header.Set(header, cred.Token)
		case app.CredentialBasic:
			req.SetBasicAuth(cred.Username, cred.Password)
		}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

// do performs one JSON request/response cycle. out may be nil when the
// response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return requestError("body_marshal_failed", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return requestError("request_build_failed", err)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.applyContext(req)

	c.log.Debug("repository request", zap.String("method", method), zap.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestError("request_failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return requestError("response_read_failed", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return requestError("response_decode_failed", err)
	}
	return nil
}

// decodeError turns an HTTP error body into a structured Error. The
// repository reports failures as {"detail": ...}.
func decodeError(statusCode int, body []byte) *Error {
	var payload struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Detail != nil {
		if msg, ok := payload.Detail.(string); ok {
			return httpError(statusCode, msg)
		}
		e := httpError(statusCode, "")
		e.Details = map[string]any{"detail": payload.Detail}
		return e
	}
	return httpError(statusCode, strings.TrimSpace(string(body)))
}

// escapeID path-escapes an identifier. AAS ids are URNs or URLs, so raw
// slashes and colons must not split the route.
func escapeID(id string) string {
	return url.PathEscape(id)
}

// AssetShell is the repository's representation of one asset
// administration shell with its submodels resolved inline.
type AssetShell struct {
	ID               string            `json:"id"`
	IDShort          string            `json:"idShort,omitempty"`
	AssetInformation AssetInformation  `json:"assetInformation"`
	Description      []aas.LangString  `json:"description,omitempty"`
	DisplayName      []aas.LangString  `json:"displayName,omitempty"`
	Submodels        []json.RawMessage `json:"submodels,omitempty"`
}

// AssetInformation carries the asset identity block of a shell.
type AssetInformation struct {
	AssetKind     string `json:"assetKind,omitempty"`
	GlobalAssetID string `json:"globalAssetId,omitempty"`
}

// DecodedSubmodels decodes every inline submodel. Submodels that fail to
// decode are skipped with a warning; one broken document must not take
// the whole asset view down.
func (a *AssetShell) DecodedSubmodels() []*aas.Submodel {
	out := make([]*aas.Submodel, 0, len(a.Submodels))
	for _, raw := range a.Submodels {
		sm, err := aas.DecodeSubmodel(raw)
		if err != nil {
			app.Logger().Warn("skipping undecodable submodel",
				zap.String("aas", a.ID), zap.Error(err))
			continue
		}
		out = append(out, sm)
	}
	return out
}

// AssetMetadata is a partial metadata update; nil fields stay untouched.
// Description and display name are written as single-language "en"
// entries, matching the repository's convention.
type AssetMetadata struct {
	GlobalAssetID *string `json:"global_asset_id,omitempty"`
	Description   *string `json:"description,omitempty"`
	DisplayName   *string `json:"display_name,omitempty"`
}

// TemplateInfo describes a server-side submodel template.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	IDShort     string `json:"idShort,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListAssets returns every stored asset shell.
func (c *Client) ListAssets(ctx context.Context) ([]AssetShell, error) {
	var assets []AssetShell
	if err := c.do(ctx, http.MethodGet, "/aas/", nil, nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetAsset returns one asset shell with submodels resolved inline.
func (c *Client) GetAsset(ctx context.Context, aasID string) (*AssetShell, error) {
	var asset AssetShell
	if err := c.do(ctx, http.MethodGet, "/aas/"+escapeID(aasID), nil, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// CreateAssetFromTemplates creates a new asset shell with one submodel
// instance per template id. assetData optionally seeds shell metadata.
func (c *Client) CreateAssetFromTemplates(ctx context.Context, templateIDs []string, assetData map[string]any) (*AssetShell, error) {
	body := map[string]any{"template_ids": templateIDs}
	if assetData != nil {
		body["asset_data"] = assetData
	}
	var asset AssetShell
	if err := c.do(ctx, http.MethodPost, "/aas/", nil, body, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAssetMetadata patches shell-level metadata.
func (c *Client) UpdateAssetMetadata(ctx context.Context, aasID string, meta AssetMetadata) (*AssetShell, error) {
	var asset AssetShell
	if err := c.do(ctx, http.MethodPatch, "/aas/"+escapeID(aasID)+"/metadata", nil, meta, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset shell and its submodel instances.
func (c *Client) DeleteAsset(ctx context.Context, aasID string) error {
	return c.do(ctx, http.MethodDelete, "/aas/"+escapeID(aasID), nil, nil, nil)
}

// ListTemplates returns the server's template catalog.
func (c *Client) ListTemplates(ctx context.Context) ([]TemplateInfo, error) {
	var templates []TemplateInfo
	if err := c.do(ctx, http.MethodGet, "/aas/templates", nil, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetSubmodel fetches one submodel instance by id.
func (c *Client) GetSubmodel(ctx context.Context, submodelID string) (*aas.Submodel, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/submodels/"+escapeID(submodelID), nil, nil, &raw); err != nil {
		return nil, err
	}
	sm, err := aas.DecodeSubmodel(raw)
	if err != nil {
		return nil, requestError("submodel_decode_failed", err)
	}
	return sm, nil
}

// UpdateSubmodelData submits a flat path-to-value patch against one
// submodel of one asset. Only the edited paths travel.
func (c *Client) UpdateSubmodelData(ctx context.Context, aasID, submodelID string, patch map[string]any) error {
	path := fmt.Sprintf("/aas/%s/submodels/%s", escapeID(aasID), escapeID(submodelID))
	return c.do(ctx, http.MethodPatch, path, nil, patch, nil)
}

// AttachSubmodels instantiates templates and attaches them to an
// existing asset.
func (c *Client) AttachSubmodels(ctx context.Context, aasID string, templateIDs []string) (*AssetShell, error) {
	body := map[string]any{"template_ids": templateIDs}
	var asset AssetShell
	if err := c.do(ctx, http.MethodPost, "/aas/"+escapeID(aasID)+"/submodels", nil, body, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// RemoveSubmodel detaches and deletes one submodel instance.
func (c *Client) RemoveSubmodel(ctx context.Context, aasID, submodelID string) error {
	path := fmt.Sprintf("/aas/%s/submodels/%s", escapeID(aasID), escapeID(submodelID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListDPPSections lists passport sections and their availability.
// statusFilter narrows by status when non-empty.
func (c *Client) ListDPPSections(ctx context.Context, aasID, statusFilter string) ([]dpp.SectionInfo, error) {
	query := url.Values{}
	if statusFilter != "" {
		query.Set("status_filter", statusFilter)
	}
	var sections []dpp.SectionInfo
	if err := c.do(ctx, http.MethodGet, "/dpp/"+escapeID(aasID)+"/sections", query, nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetDPPSection fetches one processed passport section.
func (c *Client) GetDPPSection(ctx context.Context, aasID, sectionID string, includeRaw bool) (*dpp.Section, error) {
	query := url.Values{}
	if includeRaw {
		query.Set("include_raw", "true")
	}
	path := fmt.Sprintf("/dpp/%s/section/%s", escapeID(aasID), escapeID(sectionID))
	var section dpp.Section
	if err := c.do(ctx, http.MethodGet, path, query, nil, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// GenerateCompleteDPP downloads the assembled passport document.
func (c *Client) GenerateCompleteDPP(ctx context.Context, aasID string, includeRaw bool) (*dpp.CompleteDPP, error) {
	query := url.Values{}
	if includeRaw {
		query.Set("include_raw", "true")
	}
	var passport dpp.CompleteDPP
	if err := c.do(ctx, http.MethodGet, "/dpp/"+escapeID(aasID)+"/download", query, nil, &passport); err != nil {
		return nil, err
	}
	return &passport, nil
}
