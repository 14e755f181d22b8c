package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/twinsight/aasview/internal/app"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(app.RepositoryContext{RepositoryURL: srv.URL})
}

func TestGetAsset(t *testing.T) {
	const aasID = "urn:example:aas:pump-1"
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Accept = %q", accept)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "urn:example:aas:pump-1",
			"idShort": "Pump",
			"assetInformation": {"assetKind": "Instance", "globalAssetId": "urn:example:asset:1"},
			"submodels": [
				{"id": "urn:example:sm:1", "idShort": "Nameplate", "submodelElements": []},
				"not a submodel"
			]
		}`))
	})

	asset, err := client.GetAsset(context.Background(), aasID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	// URN ids must not split the route on their colons or slashes.
	if gotPath != "/aas/urn:example:aas:pump-1" && gotPath != "/aas/urn%3Aexample%3Aaas%3Apump-1" {
		t.Errorf("request path = %q", gotPath)
	}
	if asset.AssetInformation.GlobalAssetID != "urn:example:asset:1" {
		t.Errorf("globalAssetId = %q", asset.AssetInformation.GlobalAssetID)
	}

	submodels := asset.DecodedSubmodels()
	if len(submodels) != 1 {
		t.Fatalf("decoded %d submodels, want 1 (broken one skipped)", len(submodels))
	}
	if submodels[0].IDShort != "Nameplate" {
		t.Errorf("submodel idShort = %q", submodels[0].IDShort)
	}
}

func TestUpdateSubmodelData(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	})

	patch := map[string]any{"EntryNode/Node/BulkCount": int64(7)}
	err := client.UpdateSubmodelData(context.Background(), "urn:aas:1", "urn:sm:2", patch)
	if err != nil {
		t.Fatalf("UpdateSubmodelData: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/aas/urn:aas:1/submodels/urn:sm:2" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["EntryNode/Node/BulkCount"] != float64(7) {
		t.Errorf("body = %v", gotBody)
	}
}

func TestErrorDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "No asset found with id 'urn:aas:x'."}`))
	})

	_, err := client.GetAsset(context.Background(), "urn:aas:x")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Code != "http_404" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if apiErr.Message != "No asset found with id 'urn:aas:x'." {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestErrorDecoding_NonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable\n"))
	})
	_, err := client.ListAssets(context.Background())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream unavailable" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestCredentialApplication(t *testing.T) {
	cases := []struct {
		name  string
		cred  *app.Credentials
		check func(t *testing.T, r *http.Request)
	}{
		{
			name: "bearer",
			cred: &app.Credentials{Type: app.CredentialBearer, Token: "tok-1"},
			check: func(t *testing.T, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
					t.Errorf("Authorization = %q", got)
				}
			},
		},
		{
			name: "api key default header",
			cred: &app.Credentials{Type: app.CredentialAPIKey, Token: "key-1"},
			check: func(t *testing.T, r *http.Request) {
				if got := r.Header.Get("X-API-Key"); got != "key-1" {
					t.Errorf("X-API-Key = %q", got)
				}
			},
		},
		{
			name: "basic",
			cred: &app.Credentials{Type: app.CredentialBasic, Username: "u", Password: "p"},
			check: func(t *testing.T, r *http.Request) {
				user, pass, ok := r.BasicAuth()
				if !ok || user != "u" || pass != "p" {
					t.Errorf("basic auth = %q/%q ok=%v", user, pass, ok)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotReq *http.Request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotReq = r.Clone(r.Context())
				w.Write([]byte(`[]`))
			}))
			defer srv.Close()

			client := NewClient(app.RepositoryContext{
				RepositoryURL: srv.URL,
				Credentials:   tc.cred,
				Headers:       map[string]string{"X-Tenant": "acme"},
			})
			if _, err := client.ListAssets(context.Background()); err != nil {
				t.Fatalf("ListAssets: %v", err)
			}
			tc.check(t, gotReq)
			if got := gotReq.Header.Get("X-Tenant"); got != "acme" {
				t.Errorf("X-Tenant = %q", got)
			}
		})
	}
}

func TestListDPPSections_StatusFilter(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id": "identification", "title": "Product Identification", "status": "available"}]`))
	})

	sections, err := client.ListDPPSections(context.Background(), "urn:aas:1", "available")
	if err != nil {
		t.Fatalf("ListDPPSections: %v", err)
	}
	if gotQuery != "status_filter=available" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(sections) != 1 || sections[0].ID != "identification" {
		t.Errorf("sections = %+v", sections)
	}
}

func TestCreateAssetFromTemplates(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": "urn:uuid:new", "assetInformation": {}}`))
	})

	asset, err := client.CreateAssetFromTemplates(context.Background(),
		[]string{"https://admin-shell.io/idta/SubmodelTemplate/DigitalNameplate/3/0"},
		map[string]any{"display_name": "Pump"})
	if err != nil {
		t.Fatalf("CreateAssetFromTemplates: %v", err)
	}
	if asset.ID != "urn:uuid:new" {
		t.Errorf("id = %q", asset.ID)
	}
	ids, _ := gotBody["template_ids"].([]any)
	if len(ids) != 1 {
		t.Errorf("template_ids = %v", gotBody["template_ids"])
	}
	if data, _ := gotBody["asset_data"].(map[string]any); data["display_name"] != "Pump" {
		t.Errorf("asset_data = %v", gotBody["asset_data"])
	}
}
