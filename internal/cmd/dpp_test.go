package cmd

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/twinsight/aasview/internal/app"
)

const pumpAssetJSON = `{
	"id": "urn:example:aas:pump",
	"idShort": "Pump",
	"assetInformation": {"assetKind": "Instance", "globalAssetId": "urn:example:asset:pump"},
	"submodels": [
		{
			"id": "urn:example:sm:nameplate",
			"idShort": "Nameplate",
			"submodelElements": [
				{
					"idShort": "ManufacturerName",
					"modelType": "MultiLanguageProperty",
					"value": [{"language": "en", "text": "ACME"}]
				},
				{
					"idShort": "SerialNumber",
					"modelType": "Property",
					"valueType": "xs:string",
					"value": "SN-77"
				}
			]
		}
	]
}`

// execute runs the root command against a stub repository and returns the
// ExitResult carrying the rendered output. The config dir is pointed at a
// temp dir so no real contexts leak in.
func execute(t *testing.T, handler http.Handler, args ...string) app.ExitResult {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv(app.RepositoryURLEnvVar, server.URL)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := NewRoot()
	root.SetArgs(args)
	err := root.Execute()
	var exit app.ExitResult
	if !errors.As(err, &exit) {
		t.Fatalf("Execute(%v) = %v, want ExitResult", args, err)
	}
	return exit
}

func stubAssetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pumpAssetJSON))
	})
}

func TestDPPQueryLocal(t *testing.T) {
	exit := execute(t, stubAssetHandler(),
		"dpp", "query", "--local", "urn:example:aas:pump", "id")
	if exit.Code != 0 {
		t.Fatalf("exit code = %d: %s", exit.Code, exit.Message)
	}
	if !strings.Contains(exit.Message, "urn:example:aas:pump") {
		t.Errorf("query output = %q", exit.Message)
	}
}

func TestDPPSectionsLocal(t *testing.T) {
	exit := execute(t, stubAssetHandler(),
		"dpp", "sections", "--local", "urn:example:aas:pump")
	if exit.Code != 0 {
		t.Fatalf("exit code = %d: %s", exit.Code, exit.Message)
	}
	if !strings.Contains(exit.Message, "Passport sections") {
		t.Errorf("sections output = %q", exit.Message)
	}
}
