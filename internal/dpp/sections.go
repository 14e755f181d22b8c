package dpp

import (
	"strconv"
	"strings"
	"time"

	"github.com/twinsight/aasview/internal/aas"
)

// Source is the material a passport is assembled from: the asset id and
// its resolved submodels, indexed by the template id each submodel was
// instantiated from.
type Source struct {
	AASID      string
	Submodels  []*aas.Submodel
	byTemplate map[string]*aas.Submodel
}

// NewSource indexes submodels by administration.templateId. Submodels
// without a template id cannot back any section and are ignored here.
func NewSource(aasID string, submodels []*aas.Submodel) *Source {
	s := &Source{
		AASID:      aasID,
		Submodels:  submodels,
		byTemplate: make(map[string]*aas.Submodel),
	}
	for _, sm := range submodels {
		if sm == nil || sm.Administration == nil || sm.Administration.TemplateID == "" {
			continue
		}
		s.byTemplate[sm.Administration.TemplateID] = sm
	}
	return s
}

func (s *Source) submodel(templateID string) *aas.Submodel {
	return s.byTemplate[templateID]
}

// processor turns source submodels into one section, or nil when the
// backing data is absent.
type processor func(*Source) *Section

var processors = map[string]processor{
	"identification": identificationSection,
	"compliance":     complianceSection,
	"technical":      technicalSection,
	"materials":      materialsSection,
	"sustainability": sustainabilitySection,
	"business":       businessSection,
	"documentation":  documentationSection,
}

// processElement flattens one element into presentation form, or nil when
// it carries no presentable value. Multi-language values collapse to a
// language→text map; typed property values are coerced to native JSON
// types where the declared type allows.
func processElement(el aas.Element) map[string]any {
	switch typed := el.(type) {
	case *aas.Property:
		if typed.Value == nil {
			return nil
		}
		return map[string]any{
			"idShort":   typed.IDShort(),
			"modelType": string(typed.ModelType()),
			"valueType": string(typed.ValueType),
			"value":     coerceValue(typed.Value, typed.ValueType),
		}
	case *aas.MultiLanguageProperty:
		langValues := make(map[string]any)
		for _, entry := range typed.Value {
			if entry.Language != "" && entry.Text != "" {
				langValues[entry.Language] = entry.Text
			}
		}
		if len(langValues) == 0 {
			return nil
		}
		return map[string]any{
			"idShort":   typed.IDShort(),
			"modelType": string(typed.ModelType()),
			"value":     langValues,
		}
	case *aas.File:
		if typed.Value == "" {
			return nil
		}
		return map[string]any{
			"idShort":     typed.IDShort(),
			"modelType":   string(typed.ModelType()),
			"value":       typed.Value,
			"contentType": typed.ContentType,
		}
	case *aas.Collection:
		return processContainer(typed, typed.Value)
	case *aas.List:
		elements := make([]any, 0, len(typed.Value))
		for _, child := range typed.Value {
			if processed := processElement(child); processed != nil {
				elements = append(elements, processed)
			}
		}
		if len(elements) == 0 {
			return nil
		}
		return map[string]any{
			"idShort":       typed.IDShort(),
			"modelType":     string(typed.ModelType()),
			"orderRelevant": typed.OrderRelevant,
			"elements":      elements,
		}
	case *aas.Entity:
		statements := make([]any, 0, len(typed.Statements))
		for _, st := range typed.Statements {
			if processed := processElement(st); processed != nil {
				statements = append(statements, processed)
			}
		}
		if len(statements) == 0 {
			return nil
		}
		return map[string]any{
			"idShort":    typed.IDShort(),
			"modelType":  string(typed.ModelType()),
			"entityType": typed.EntityType,
			"statements": statements,
		}
	default:
		// References, relationships, operations and unknown kinds carry
		// no presentable value.
		return nil
	}
}

func processContainer(el aas.Element, children []aas.Element) map[string]any {
	elements := make(map[string]any)
	for _, child := range children {
		if child.IDShort() == "" {
			continue
		}
		if processed := processElement(child); processed != nil {
			elements[child.IDShort()] = processed
		}
	}
	if len(elements) == 0 {
		return nil
	}
	return map[string]any{
		"idShort":   el.IDShort(),
		"modelType": string(el.ModelType()),
		"elements":  elements,
	}
}

// coerceValue converts a wire value to a native JSON type per declared
// value type, keeping the original on parse failure.
func coerceValue(value any, vt aas.ValueType) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	switch vt {
	case aas.TypeInteger, aas.TypeLong, aas.TypeUnsignedLong:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case aas.TypeDouble, aas.TypeFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case aas.TypeBoolean:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return s
}

// processSubmodel flattens a whole submodel into metadata + elements.
func processSubmodel(sm *aas.Submodel) map[string]any {
	if sm == nil {
		return map[string]any{}
	}
	elements := make(map[string]any)
	for _, el := range sm.Elements {
		if el.IDShort() == "" {
			continue
		}
		if processed := processElement(el); processed != nil {
			elements[el.IDShort()] = processed
		}
	}
	var version string
	if sm.Administration != nil {
		version = sm.Administration.Version
	}
	return map[string]any{
		"metadata": map[string]any{
			"id":      sm.ID,
			"idShort": sm.IDShort,
			"version": version,
		},
		"elements": elements,
	}
}

// elementsOf returns the nested elements map of a processed container.
func elementsOf(processed map[string]any) map[string]any {
	if processed == nil {
		return nil
	}
	elements, _ := processed["elements"].(map[string]any)
	return elements
}

// valueOf extracts the flattened value of a named element.
func valueOf(elements map[string]any, idShort string) any {
	entry, _ := elements[idShort].(map[string]any)
	if entry == nil {
		return nil
	}
	return entry["value"]
}

// nestedValueOf extracts a value one container level down.
func nestedValueOf(elements map[string]any, container, idShort string) any {
	inner, _ := elements[container].(map[string]any)
	return valueOf(elementsOf(inner), idShort)
}

func identificationSection(src *Source) *Section {
	nameplate := src.submodel(TemplateNameplate)
	if nameplate == nil {
		return nil
	}
	elements := elementsOf(processSubmodel(nameplate))

	data := map[string]any{
		"product": map[string]any{
			"name":               valueOf(elements, "ManufacturerProductDesignation"),
			"type":               valueOf(elements, "ManufacturerProductType"),
			"serial":             valueOf(elements, "SerialNumber"),
			"articleNumber":      valueOf(elements, "ProductArticleNumberOfManufacturer"),
			"yearOfConstruction": valueOf(elements, "YearOfConstruction"),
			"countryOfOrigin":    valueOf(elements, "CountryOfOrigin"),
		},
		"manufacturer": map[string]any{
			"name":          valueOf(elements, "ManufacturerName"),
			"productFamily": valueOf(elements, "ManufacturerProductFamily"),
		},
		"versions": map[string]any{
			"hardware": valueOf(elements, "HardwareVersion"),
			"software": valueOf(elements, "SoftwareVersion"),
			"firmware": valueOf(elements, "FirmwareVersion"),
		},
	}
	return &Section{ID: "identification", Title: "Product Identification", Status: StatusAvailable, Data: data}
}

func businessSection(src *Source) *Section {
	contact := src.submodel(TemplateContact)
	if contact == nil {
		return nil
	}
	processed := elementsOf(processSubmodel(contact))
	info, _ := processed["ContactInformation"].(map[string]any)
	elements := elementsOf(info)
	if elements == nil {
		return nil
	}

	data := map[string]any{
		"contacts": []any{
			map[string]any{
				"role":       valueOf(elements, "RoleOfContactPerson"),
				"company":    valueOf(elements, "Company"),
				"department": valueOf(elements, "Department"),
				"address": map[string]any{
					"street":   valueOf(elements, "Street"),
					"city":     valueOf(elements, "CityTown"),
					"postCode": valueOf(elements, "Zipcode"),
					"country":  valueOf(elements, "NationalCode"),
				},
				"communication": map[string]any{
					"email": nestedValueOf(elements, "Email", "EmailAddress"),
					"phone": nestedValueOf(elements, "Phone", "TelephoneNumber"),
				},
			},
		},
	}
	return &Section{ID: "business", Title: "Business Information", Status: StatusAvailable, Data: data}
}

func technicalSection(src *Source) *Section {
	techData := src.submodel(TemplateTechnicalData)
	if techData == nil {
		return nil
	}
	return &Section{ID: "technical", Title: "Technical Data", Status: StatusAvailable, Data: processSubmodel(techData)}
}

func sustainabilitySection(src *Source) *Section {
	carbon := src.submodel(TemplateCarbon)
	if carbon == nil {
		return nil
	}
	elements := elementsOf(processSubmodel(carbon))
	pcfEntry, _ := elements["ProductCarbonFootprint"].(map[string]any)
	pcf := elementsOf(pcfEntry)
	if pcf == nil {
		return nil
	}

	data := map[string]any{
		"carbonFootprint": map[string]any{
			"value":             valueOf(pcf, "PCFCO2eq"),
			"unit":              "kg CO2 eq",
			"calculationMethod": valueOf(pcf, "PCFCalculationMethod"),
			"validFrom":         valueOf(pcf, "PublicationDate"),
			"validUntil":        valueOf(pcf, "ExpirationDate"),
			"lifecycle": map[string]any{
				"phases":    valueOf(pcf, "PCFLifeCyclePhase"),
				"reference": valueOf(pcf, "PCFReferenceValueForCalculation"),
			},
		},
	}
	return &Section{ID: "sustainability", Title: "Environmental Impact", Status: StatusAvailable, Data: data}
}

func complianceSection(src *Source) *Section {
	nameplate := src.submodel(TemplateNameplate)
	if nameplate == nil {
		return nil
	}

	markings := make([]any, 0)
	for _, el := range nameplate.Elements {
		if el.IDShort() != "Markings" {
			continue
		}
		for _, marking := range el.Children() {
			elements := elementsOf(processElement(marking))
			if elements == nil {
				continue
			}
			markings = append(markings, map[string]any{
				"name":       valueOf(elements, "MarkingName"),
				"file":       valueOf(elements, "MarkingFile"),
				"validFrom":  valueOf(elements, "MarkingValidFrom"),
				"validUntil": valueOf(elements, "MarkingValidUntil"),
			})
		}
	}

	data := map[string]any{
		"certifications": []any{},
		"standards":      []any{},
		"markings":       markings,
	}
	return &Section{ID: "compliance", Title: "Compliance & Standards", Status: StatusAvailable, Data: data}
}

func materialsSection(src *Source) *Section {
	hierarchy := src.submodel(TemplateHierarchy)
	if hierarchy == nil {
		return nil
	}

	var processNode func(entity *aas.Entity) map[string]any
	processNode = func(entity *aas.Entity) map[string]any {
		components := make([]any, 0)
		var bulkCount any
		for _, st := range entity.Statements {
			switch child := st.(type) {
			case *aas.Entity:
				components = append(components, processNode(child))
			case *aas.Property:
				if child.IDShort() == aas.HierarchyBulkCount {
					bulkCount = coerceValue(child.Value, child.ValueType)
				}
			}
		}
		node := map[string]any{
			"id":         entity.IDShort(),
			"type":       entity.EntityType,
			"components": components,
		}
		if bulkCount != nil {
			node["bulkCount"] = bulkCount
		}
		return node
	}

	structure := map[string]any{}
	for _, el := range hierarchy.Elements {
		if entry, ok := el.(*aas.Entity); ok && entry.IDShort() == aas.HierarchyEntryNode {
			structure = processNode(entry)
			break
		}
	}

	data := map[string]any{
		"structure": structure,
		"recycling": map[string]any{
			"recyclable": true,
			"materials":  []any{},
		},
	}
	return &Section{ID: "materials", Title: "Materials & Composition", Status: StatusAvailable, Data: data}
}

func documentationSection(src *Source) *Section {
	docs := src.submodel(TemplateDocumentation)
	if docs == nil {
		return nil
	}

	documents := make([]any, 0)
	for _, el := range docs.Elements {
		if !strings.HasPrefix(el.IDShort(), "Document") {
			continue
		}
		elements := elementsOf(processElement(el))
		if elements == nil {
			continue
		}
		idElements := elementsOf(mapEntry(elements, "DocumentId"))
		versionElements := elementsOf(mapEntry(elements, "DocumentVersion"))
		classElements := elementsOf(mapEntry(elements, "DocumentClassification"))
		documents = append(documents, map[string]any{
			"id":       valueOf(idElements, "DocumentIdentifier"),
			"title":    valueOf(versionElements, "Title"),
			"type":     valueOf(classElements, "ClassId"),
			"version":  valueOf(versionElements, "Version"),
			"language": valueOf(versionElements, "Language"),
			"file":     valueOf(versionElements, "DigitalFile"),
		})
	}

	data := map[string]any{"documents": documents}
	return &Section{ID: "documentation", Title: "Documentation", Status: StatusAvailable, Data: data}
}

func mapEntry(m map[string]any, key string) map[string]any {
	entry, _ := m[key].(map[string]any)
	return entry
}

// ProcessSection builds one section by id. Returns nil when the section id
// is unknown or its backing submodels are absent.
func ProcessSection(src *Source, sectionID string, includeRaw bool) *Section {
	proc, ok := processors[sectionID]
	if !ok {
		return nil
	}
	section := proc(src)
	if section == nil {
		return nil
	}
	if includeRaw {
		section.Raw = rawSubmodels(src, sectionID)
	} else {
		section.Data, _ = CleanNulls(section.Data).(map[string]any)
	}
	return section
}

// rawSubmodels collects the full processed form of every submodel a
// section requires.
func rawSubmodels(src *Source, sectionID string) map[string]any {
	req, ok := SectionRequirements[sectionID]
	if !ok {
		return nil
	}
	raw := make(map[string]any)
	for _, templateID := range req.Required {
		if sm := src.submodel(templateID); sm != nil {
			raw[templateID] = processSubmodel(sm)
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// ListSections reports the status of every known section in display
// order: available when its processor produced content, incomplete when
// the submodels are present but carry no presentable data, unavailable
// when required submodels are missing.
func ListSections(src *Source) []SectionInfo {
	core := make(map[string]bool, len(CoreSections))
	for _, id := range CoreSections {
		core[id] = true
	}

	infos := make([]SectionInfo, 0, len(SectionOrder))
	for _, sectionID := range SectionOrder {
		req := SectionRequirements[sectionID]
		info := SectionInfo{
			ID:          sectionID,
			Title:       req.Title,
			Description: req.Description,
			Icon:        req.Icon,
			Core:        core[sectionID],
		}

		var missing []string
		for _, templateID := range req.Required {
			if src.submodel(templateID) == nil {
				missing = append(missing, templateID)
			}
		}
		switch {
		case len(missing) > 0:
			info.Status = StatusUnavailable
			info.MissingSubmodels = missing
		case processors[sectionID](src) != nil:
			info.Status = StatusAvailable
		default:
			info.Status = StatusIncomplete
		}
		infos = append(infos, info)
	}
	return infos
}

// Generate assembles the complete passport from every section whose
// backing data is present. format "clean" strips nulls; "raw" keeps the
// processed submodels alongside each section.
func Generate(src *Source, format string) *CompleteDPP {
	includeRaw := format == "raw"
	sections := make(map[string]*Section)
	for sectionID := range processors {
		if section := ProcessSection(src, sectionID, includeRaw); section != nil {
			sections[sectionID] = section
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return &CompleteDPP{
		ID:          src.AASID,
		GeneratedAt: now,
		Format:      format,
		Sections:    sections,
		Metadata: map[string]any{
			"generatedBy": "aasview",
			"generatedAt": now,
			"sourceAasId": src.AASID,
			"format":      format,
		},
	}
}
