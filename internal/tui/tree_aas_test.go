package tui

import (
	"testing"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/render"
)

const nameplateJSON = `{
	"id": "https://example.com/sm/nameplate",
	"idShort": "Nameplate",
	"submodelElements": [
		{
			"idShort": "ManufacturerName",
			"modelType": "MultiLanguageProperty",
			"value": [
				{"language": "en", "text": "ACME Drives"},
				{"language": "de", "text": "ACME Antriebe"}
			]
		},
		{
			"idShort": "SerialNumber",
			"modelType": "Property",
			"valueType": "xs:string",
			"value": "SN-1138"
		},
		{
			"idShort": "Markings",
			"modelType": "SubmodelElementCollection",
			"value": [
				{
					"idShort": "CE",
					"modelType": "Property",
					"valueType": "xs:boolean",
					"value": "true"
				}
			]
		},
		{
			"idShort": "Manual",
			"modelType": "File",
			"contentType": "application/pdf",
			"value": "/files/manual.pdf"
		}
	]
}`

func decodeNameplate(t *testing.T) *aas.Submodel {
	t.Helper()
	sm, err := aas.DecodeSubmodel([]byte(nameplateJSON))
	if err != nil {
		t.Fatalf("DecodeSubmodel failed: %v", err)
	}
	return sm
}

func TestBuildSubmodelTree(t *testing.T) {
	root := BuildSubmodelTree(decodeNameplate(t))

	if root.ID != "Nameplate" || !root.Expanded {
		t.Errorf("Root should be the expanded submodel, got %q", root.ID)
	}
	if len(root.Children) != 4 {
		t.Fatalf("Expected 4 top-level nodes, got %d", len(root.Children))
	}

	mlp := root.Children[0]
	if mlp.Value != "ACME Drives" {
		t.Errorf("MLP preview should prefer English, got %q", mlp.Value)
	}
	if len(mlp.Children) != 2 {
		t.Fatalf("Expected 2 language nodes, got %d", len(mlp.Children))
	}
	if mlp.Children[1].ID != "ManufacturerName@de" {
		t.Errorf("Lang node id: got %q", mlp.Children[1].ID)
	}
	if mlp.Children[1].Type != NodeTypeLang {
		t.Errorf("Lang node type: got %q", mlp.Children[1].Type)
	}

	prop := root.Children[1]
	if prop.Type != NodeTypeValue || prop.Value != "SN-1138" {
		t.Errorf("Property node: type %q value %q", prop.Type, prop.Value)
	}
	if prop.Badge != "[Property]" {
		t.Errorf("Property badge: got %q", prop.Badge)
	}

	markings := root.Children[2]
	if markings.Type != NodeTypeElement || len(markings.Children) != 1 {
		t.Fatalf("Collection should nest its children")
	}
	if markings.Children[0].ID != "Markings/CE" {
		t.Errorf("Nested id should be the element path, got %q", markings.Children[0].ID)
	}

	file := root.Children[3]
	if file.Badge != "[File application/pdf]" {
		t.Errorf("File badge: got %q", file.Badge)
	}
}

func TestElementPathOf(t *testing.T) {
	root := BuildSubmodelTree(decodeNameplate(t))

	path, lang := elementPathOf(root.Children[0].Children[1])
	if path != "ManufacturerName" || lang != "de" {
		t.Errorf("Lang node: got path %q lang %q", path, lang)
	}

	path, lang = elementPathOf(root.Children[2].Children[0])
	if path != "Markings/CE" || lang != "" {
		t.Errorf("Element node: got path %q lang %q", path, lang)
	}

	if path, _ := elementPathOf(nil); path != "" {
		t.Error("nil node should give empty path")
	}
}

func TestTreePathsResolve(t *testing.T) {
	sm := decodeNameplate(t)
	root := BuildSubmodelTree(sm)

	var walk func(nodes []*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, n := range nodes {
			if n.Type != NodeTypeLang {
				if _, ok := aas.Resolve(sm, n.ID); !ok {
					t.Errorf("Node id %q should resolve to an element", n.ID)
				}
			}
			walk(n.Children)
		}
	}
	walk(root.Children)
}

func TestBuildRenderTree(t *testing.T) {
	data := map[string]any{
		"product": map[string]any{
			"name":   "Servo Drive",
			"weight": 2.5,
		},
		"missing": nil,
	}
	rendered := render.Render(data, render.Options{DeveloperMode: true})
	root := BuildRenderTree("identification", rendered)

	if !root.Expanded {
		t.Error("Render tree root should start expanded")
	}
	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(root.Children))
	}

	byLabel := map[string]*TreeNode{}
	for _, c := range root.Children {
		byLabel[c.Label] = c
	}
	missing := byLabel["missing"]
	if missing == nil || missing.Value != render.EmptyMarker {
		t.Errorf("nil value should render the empty marker")
	}
	product := byLabel["product"]
	if product == nil || len(product.Children) != 2 {
		t.Fatalf("Nested object should become a container node")
	}
	for _, c := range product.Children {
		if c.Type != NodeTypeField {
			t.Errorf("Scalar rows should be field nodes, got %q", c.Type)
		}
	}
}
