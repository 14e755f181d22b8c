// Package aas implements the Asset Administration Shell submodel element
// model: a closed tagged union over the metamodel's element kinds, JSON
// decoding keyed on the modelType discriminant, idShort-path addressing,
// and XSD value-type validation.
package aas

import (
	"encoding/json"
)

// ModelType discriminates the submodel element union.
type ModelType string

const (
	ModelTypeProperty              ModelType = "Property"
	ModelTypeMultiLanguageProperty ModelType = "MultiLanguageProperty"
	ModelTypeFile                  ModelType = "File"
	ModelTypeRange                 ModelType = "Range"
	ModelTypeCollection            ModelType = "SubmodelElementCollection"
	ModelTypeList                  ModelType = "SubmodelElementList"
	ModelTypeEntity                ModelType = "Entity"
	ModelTypeOperation             ModelType = "Operation"
	ModelTypeReferenceElement      ModelType = "ReferenceElement"
	ModelTypeRelationshipElement   ModelType = "RelationshipElement"
)

// Element is one node of a submodel element tree.
//
// IDShort is unique among immediate siblings only; Children returns the
// node's child elements across whichever child-holding field the concrete
// kind uses (collection/list value, entity statements). Leaves return nil.
// Raw is the original JSON the element was decoded from, kept for
// raw-view display and graceful fallback rendering.
type Element interface {
	ModelType() ModelType
	IDShort() string
	Children() []Element
	Raw() json.RawMessage
}

// LangString is one language/text pair of a multi-language value.
type LangString struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// Key is a single key of a Reference chain.
type Key struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Reference points at another identifiable or referable by key chain.
type Reference struct {
	Type string `json:"type"`
	Keys []Key  `json:"keys"`
}

// Base carries the fields shared by every element kind. Semantic and
// qualifier payloads stay as raw JSON; nothing in the viewer interprets
// them beyond display.
type Base struct {
	IDShortField string          `json:"idShort"`
	Category     string          `json:"category,omitempty"`
	SemanticID   json.RawMessage `json:"semanticId,omitempty"`
	Description  []LangString    `json:"description,omitempty"`
	DisplayName  []LangString    `json:"displayName,omitempty"`
	Qualifiers   json.RawMessage `json:"qualifiers,omitempty"`

	raw json.RawMessage
}

func (b *Base) IDShort() string      { return b.IDShortField }
func (b *Base) Raw() json.RawMessage { return b.raw }

// Property is a typed scalar value.
type Property struct {
	Base
	ValueType ValueType `json:"valueType"`
	Value     any       `json:"value"`
}

func (*Property) ModelType() ModelType { return ModelTypeProperty }
func (*Property) Children() []Element  { return nil }

// MultiLanguageProperty holds an ordered sequence of language/text pairs.
type MultiLanguageProperty struct {
	Base
	Value []LangString `json:"value"`
}

func (*MultiLanguageProperty) ModelType() ModelType { return ModelTypeMultiLanguageProperty }
func (*MultiLanguageProperty) Children() []Element  { return nil }

// File references an external file by URL.
type File struct {
	Base
	Value       string `json:"value"`
	ContentType string `json:"contentType,omitempty"`
}

func (*File) ModelType() ModelType { return ModelTypeFile }
func (*File) Children() []Element  { return nil }

// Range is a typed min/max pair. Rendered read-only.
type Range struct {
	Base
	ValueType ValueType `json:"valueType"`
	Min       any       `json:"min"`
	Max       any       `json:"max"`
}

func (*Range) ModelType() ModelType { return ModelTypeRange }
func (*Range) Children() []Element  { return nil }

// Collection is an unordered group of named child elements.
type Collection struct {
	Base
	Value []Element `json:"-"`
}

func (*Collection) ModelType() ModelType  { return ModelTypeCollection }
func (c *Collection) Children() []Element { return c.Value }

// List is an ordered group of child elements.
type List struct {
	Base
	Value         []Element `json:"-"`
	OrderRelevant bool      `json:"orderRelevant,omitempty"`
}

func (*List) ModelType() ModelType  { return ModelTypeList }
func (l *List) Children() []Element { return l.Value }

// EntityType values defined by the metamodel.
const (
	EntityTypeSelfManaged = "SelfManagedEntity"
	EntityTypeCoManaged   = "CoManagedEntity"
)

// Entity is a node of a hierarchical structure with statements attached.
type Entity struct {
	Base
	EntityType    string    `json:"entityType"`
	GlobalAssetID string    `json:"globalAssetId,omitempty"`
	Statements    []Element `json:"-"`
}

func (*Entity) ModelType() ModelType  { return ModelTypeEntity }
func (e *Entity) Children() []Element { return e.Statements }

// OperationVariable wraps an element used as an operation parameter.
type OperationVariable struct {
	Value Element
}

func (v *OperationVariable) UnmarshalJSON(data []byte) error {
	var probe struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if len(probe.Value) == 0 {
		return nil
	}
	el, err := DecodeElement(probe.Value)
	if err != nil {
		return err
	}
	v.Value = el
	return nil
}

// Operation declares typed input/output variable descriptors. The viewer
// shows its signature; invocation is out of scope.
type Operation struct {
	Base
	InputVariables    []OperationVariable `json:"inputVariables,omitempty"`
	OutputVariables   []OperationVariable `json:"outputVariables,omitempty"`
	InoutputVariables []OperationVariable `json:"inoutputVariables,omitempty"`
}

func (*Operation) ModelType() ModelType { return ModelTypeOperation }
func (op *Operation) Children() []Element {
	var out []Element
	for _, v := range op.InputVariables {
		if v.Value != nil {
			out = append(out, v.Value)
		}
	}
	for _, v := range op.OutputVariables {
		if v.Value != nil {
			out = append(out, v.Value)
		}
	}
	for _, v := range op.InoutputVariables {
		if v.Value != nil {
			out = append(out, v.Value)
		}
	}
	return out
}

// ReferenceElement points at another element. Non-editable.
type ReferenceElement struct {
	Base
	Value *Reference `json:"value,omitempty"`
}

func (*ReferenceElement) ModelType() ModelType { return ModelTypeReferenceElement }
func (*ReferenceElement) Children() []Element  { return nil }

// RelationshipElement relates two referables. Non-editable.
type RelationshipElement struct {
	Base
	First  *Reference `json:"first,omitempty"`
	Second *Reference `json:"second,omitempty"`
}

func (*RelationshipElement) ModelType() ModelType { return ModelTypeRelationshipElement }
func (*RelationshipElement) Children() []Element  { return nil }

// Unknown preserves elements whose modelType is not part of the union.
// It renders as a raw JSON dump and is never editable.
type Unknown struct {
	Base
	TypeName string
}

func (u *Unknown) ModelType() ModelType { return ModelType(u.TypeName) }
func (*Unknown) Children() []Element    { return nil }

// DecodeElement decodes one submodel element, dispatching on modelType.
// Malformed or unrecognized shapes come back as *Unknown rather than an
// error so that one bad element cannot take down a whole tree; a hard
// error is returned only for input that is not a JSON object at all.
func DecodeElement(data []byte) (Element, error) {
	var probe struct {
		ModelType string `json:"modelType"`
		IDShort   string `json:"idShort"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	raw := append(json.RawMessage(nil), data...)
	unknown := func() Element {
		u := &Unknown{TypeName: probe.ModelType}
		u.IDShortField = probe.IDShort
		u.raw = raw
		return u
	}

	switch ModelType(probe.ModelType) {
	case ModelTypeProperty:
		var el Property
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	case ModelTypeMultiLanguageProperty:
		var el MultiLanguageProperty
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	case ModelTypeFile:
		var el File
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	case ModelTypeRange:
		var el Range
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	case ModelTypeCollection:
		var el Collection
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.Value = decodeChildren(data, "value")
		el.raw = raw
		return &el, nil

	case ModelTypeList:
		var el List
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.Value = decodeChildren(data, "value")
		el.raw = raw
		return &el, nil

	case ModelTypeEntity:
		var el Entity
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.Statements = decodeChildren(data, "statements")
		el.raw = raw
		return &el, nil

	case ModelTypeOperation:
		var el Operation
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	case ModelTypeReferenceElement:
		var el ReferenceElement
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	case ModelTypeRelationshipElement:
		var el RelationshipElement
		if err := json.Unmarshal(data, &el); err != nil {
			return unknown(), nil
		}
		el.raw = raw
		return &el, nil

	default:
		return unknown(), nil
	}
}

// decodeChildren extracts an element array field. Children that fail to
// decode individually are dropped; the rest of the sequence survives.
func decodeChildren(data []byte, field string) []Element {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	rawList, ok := probe[field]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawList, &items); err != nil {
		return nil
	}
	out := make([]Element, 0, len(items))
	for _, item := range items {
		el, err := DecodeElement(item)
		if err != nil {
			continue
		}
		out = append(out, el)
	}
	return out
}

// AdministrativeInformation carries version metadata of a submodel.
// TemplateID records which template the instance was created from.
type AdministrativeInformation struct {
	Version    string `json:"version,omitempty"`
	Revision   string `json:"revision,omitempty"`
	TemplateID string `json:"templateId,omitempty"`
}

// ModellingKind values.
const (
	KindTemplate = "Template"
	KindInstance = "Instance"
)

// Submodel is the root of an element tree.
type Submodel struct {
	ID             string                     `json:"id"`
	IDShort        string                     `json:"idShort"`
	Kind           string                     `json:"kind,omitempty"`
	SemanticID     json.RawMessage            `json:"semanticId,omitempty"`
	Administration *AdministrativeInformation `json:"administration,omitempty"`
	Description    []LangString               `json:"description,omitempty"`
	Elements       []Element                  `json:"-"`

	raw json.RawMessage
}

// Raw returns the JSON document the submodel was decoded from.
func (s *Submodel) Raw() json.RawMessage { return s.raw }

// TemplateID returns the administration templateId, if present.
func (s *Submodel) TemplateID() string {
	if s.Administration == nil {
		return ""
	}
	return s.Administration.TemplateID
}

// DecodeSubmodel decodes a submodel document including its element tree.
func DecodeSubmodel(data []byte) (*Submodel, error) {
	var sm Submodel
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, err
	}
	sm.Elements = decodeChildren(data, "submodelElements")
	sm.raw = append(json.RawMessage(nil), data...)
	return &sm, nil
}
