package aas

import (
	"testing"
)

const hierarchySubmodelJSON = `{
	"id": "urn:uuid:0f0e6daf-2c1e-4d6e-9a3b-6f3b6e5d4c2a",
	"idShort": "HierarchicalStructures",
	"kind": "Instance",
	"administration": {"version": "1.1.0", "templateId": "https://admin-shell.io/idta/SubmodelTemplate/HierarchicalStructuresBoM/1/1"},
	"submodelElements": [
		{"idShort": "ArcheType", "modelType": "Property", "valueType": "xs:string", "value": "Full"},
		{
			"idShort": "EntryNode",
			"modelType": "Entity",
			"entityType": "SelfManagedEntity",
			"globalAssetId": "urn:asset:pump-1",
			"statements": [
				{
					"idShort": "Node",
					"modelType": "Entity",
					"entityType": "CoManagedEntity",
					"statements": [
						{"idShort": "BulkCount", "modelType": "Property", "valueType": "xs:unsignedLong", "value": 10},
						{"idShort": "SameAs", "modelType": "RelationshipElement",
							"first": {"type": "ModelReference", "keys": [{"type": "Submodel", "value": "urn:x"}]},
							"second": {"type": "ModelReference", "keys": [{"type": "Submodel", "value": "urn:y"}]}}
					]
				},
				{"idShort": "HasPart", "modelType": "RelationshipElement",
					"first": {"type": "ModelReference", "keys": []},
					"second": {"type": "ModelReference", "keys": []}}
			]
		}
	]
}`

func decodeHierarchyFixture(t *testing.T) *Submodel {
	t.Helper()
	sm, err := DecodeSubmodel([]byte(hierarchySubmodelJSON))
	if err != nil {
		t.Fatalf("DecodeSubmodel: %v", err)
	}
	return sm
}

func TestDecodeSubmodel_Dispatch(t *testing.T) {
	sm := decodeHierarchyFixture(t)

	if len(sm.Elements) != 2 {
		t.Fatalf("expected 2 root elements, got %d", len(sm.Elements))
	}

	prop, ok := sm.Elements[0].(*Property)
	if !ok {
		t.Fatalf("ArcheType: expected *Property, got %T", sm.Elements[0])
	}
	if prop.ValueType != TypeString || prop.Value != "Full" {
		t.Errorf("ArcheType decoded wrong: type=%s value=%v", prop.ValueType, prop.Value)
	}

	entry, ok := sm.Elements[1].(*Entity)
	if !ok {
		t.Fatalf("EntryNode: expected *Entity, got %T", sm.Elements[1])
	}
	if entry.EntityType != EntityTypeSelfManaged {
		t.Errorf("EntryNode entityType = %q", entry.EntityType)
	}
	if len(entry.Statements) != 2 {
		t.Fatalf("EntryNode statements = %d, want 2", len(entry.Statements))
	}

	node, ok := entry.Statements[0].(*Entity)
	if !ok {
		t.Fatalf("Node: expected *Entity, got %T", entry.Statements[0])
	}
	if _, ok := node.Statements[1].(*RelationshipElement); !ok {
		t.Errorf("SameAs: expected *RelationshipElement, got %T", node.Statements[1])
	}
}

func TestDecodeElement_UnknownModelType(t *testing.T) {
	el, err := DecodeElement([]byte(`{"idShort": "Blob", "modelType": "BasicEventElement"}`))
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	u, ok := el.(*Unknown)
	if !ok {
		t.Fatalf("expected *Unknown, got %T", el)
	}
	if u.IDShort() != "Blob" || u.ModelType() != "BasicEventElement" {
		t.Errorf("unknown element lost identity: %s %s", u.IDShort(), u.ModelType())
	}
	if len(u.Raw()) == 0 {
		t.Error("unknown element should keep its raw JSON")
	}
}

func TestDecodeElement_MalformedChildDropped(t *testing.T) {
	el, err := DecodeElement([]byte(`{
		"idShort": "Coll", "modelType": "SubmodelElementCollection",
		"value": [
			{"idShort": "Good", "modelType": "Property", "valueType": "xs:string", "value": "x"},
			"not an object"
		]
	}`))
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	coll := el.(*Collection)
	if len(coll.Value) != 1 {
		t.Fatalf("expected the malformed child to be dropped, got %d children", len(coll.Value))
	}
	if coll.Value[0].IDShort() != "Good" {
		t.Errorf("surviving child = %q", coll.Value[0].IDShort())
	}
}

func TestDecodeElement_NotAnObject(t *testing.T) {
	if _, err := DecodeElement([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected error for non-object input")
	}
}

func TestOperationChildren(t *testing.T) {
	el, err := DecodeElement([]byte(`{
		"idShort": "Calibrate", "modelType": "Operation",
		"inputVariables": [
			{"value": {"idShort": "Target", "modelType": "Property", "valueType": "xs:double", "value": null}}
		],
		"outputVariables": [
			{"value": {"idShort": "Achieved", "modelType": "Property", "valueType": "xs:double", "value": null}}
		]
	}`))
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	op := el.(*Operation)
	kids := op.Children()
	if len(kids) != 2 {
		t.Fatalf("operation children = %d, want 2", len(kids))
	}
	if kids[0].IDShort() != "Target" || kids[1].IDShort() != "Achieved" {
		t.Errorf("operation variables out of order: %s, %s", kids[0].IDShort(), kids[1].IDShort())
	}
}
