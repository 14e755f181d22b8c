package cmd

import (
	"strings"
	"testing"

	"github.com/twinsight/aasview/internal/api"
)

func TestRenderAsset(t *testing.T) {
	asset := &api.AssetShell{
		ID:      "urn:example:aas:pump",
		IDShort: "Pump",
		AssetInformation: api.AssetInformation{
			AssetKind:     "Instance",
			GlobalAssetID: "urn:example:asset:pump",
		},
	}
	out := renderAsset(asset)
	if !strings.Contains(out, "Pump") {
		t.Errorf("idShort missing from render:\n%s", out)
	}
	if !strings.Contains(out, "urn:example:asset:pump") {
		t.Errorf("globalAssetId missing from render:\n%s", out)
	}

	// An asset without a global asset id skips the line entirely.
	asset.AssetInformation = api.AssetInformation{}
	if out := renderAsset(asset); strings.Contains(out, "globalAssetId") {
		t.Errorf("empty globalAssetId should not render:\n%s", out)
	}
}

func TestRenderAssetList(t *testing.T) {
	if out := renderAssetList(nil); !strings.Contains(out, "No assets") {
		t.Errorf("empty list render = %q", out)
	}
	out := renderAssetList([]api.AssetShell{
		{ID: "urn:example:aas:pump", IDShort: "Pump"},
		{ID: "urn:example:aas:valve"},
	})
	if !strings.Contains(out, "Pump") || !strings.Contains(out, "urn:example:aas:valve") {
		t.Errorf("list render = %q", out)
	}
}
