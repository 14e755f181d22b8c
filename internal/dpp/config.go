// Package dpp assembles Digital Product Passport sections from the
// submodels attached to an asset. Sections are keyed by the template id
// recorded in each submodel's administration block; a section is only as
// complete as the submodels backing it.
package dpp

// Template IDs for passport-relevant submodels.
const (
	TemplateNameplate     = "https://admin-shell.io/idta/SubmodelTemplate/DigitalNameplate/3/0"
	TemplateTechnicalData = "https://admin-shell.io/ZVEI/TechnicalData/Submodel/1/2"
	TemplateCarbon        = "https://admin-shell.io/idta/SubmodelTemplate/CarbonFootprint/0/9"
	TemplateContact       = "https://admin-shell.io/idta/SubmodelTemplate/ContactInformation/1/0"
	TemplateDocumentation = "https://admin-shell.io/idta/SubmodelTemplate/HandoverDocumentation/1/0"
	TemplateHierarchy     = "https://admin-shell.io/idta/SubmodelTemplate/HierarchicalStructuresBoM/1/1"
)

// Section availability statuses.
const (
	StatusAvailable   = "available"
	StatusIncomplete  = "incomplete"
	StatusUnavailable = "unavailable"
)

// Requirement describes which submodels a section needs and how the
// section presents itself in listings.
type Requirement struct {
	Required    []string
	Optional    []string
	Title       string
	Icon        string
	Description string
}

// SectionRequirements maps section IDs to their submodel requirements.
var SectionRequirements = map[string]Requirement{
	"identification": {
		Required:    []string{TemplateNameplate},
		Title:       "Product Identification",
		Icon:        "identification-badge",
		Description: "Basic product and manufacturer identification information",
	},
	"technical": {
		Required:    []string{TemplateTechnicalData},
		Title:       "Technical Data",
		Icon:        "gear",
		Description: "Technical specifications and parameters",
	},
	"sustainability": {
		Required:    []string{TemplateCarbon},
		Title:       "Environmental Impact",
		Icon:        "leaf",
		Description: "Carbon footprint and environmental impact data",
	},
	"business": {
		Required:    []string{TemplateContact},
		Title:       "Business Information",
		Icon:        "building",
		Description: "Contact information and business details",
	},
	"materials": {
		Required:    []string{TemplateHierarchy},
		Title:       "Materials & Composition",
		Icon:        "cube",
		Description: "Product composition and material information",
	},
	"documentation": {
		Required:    []string{TemplateDocumentation},
		Title:       "Documentation",
		Icon:        "file-text",
		Description: "Technical documentation and manuals",
	},
	"compliance": {
		Required:    []string{TemplateNameplate},
		Title:       "Compliance & Standards",
		Icon:        "check-circle",
		Description: "Regulatory compliance and certification information",
	},
}

// SectionOrder is the EU-aligned display priority for sections.
var SectionOrder = []string{
	"identification",
	"compliance",
	"technical",
	"materials",
	"sustainability",
	"business",
	"documentation",
}

// CoreSections are required for a minimal viable passport.
var CoreSections = []string{"identification", "technical", "compliance", "sustainability"}

// SectionInfo is a listing entry: what the section is and whether its
// backing submodels are present.
type SectionInfo struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Icon             string   `json:"icon,omitempty"`
	Status           string   `json:"status"`
	Core             bool     `json:"core,omitempty"`
	MissingSubmodels []string `json:"missingSubmodels,omitempty"`
}

// Section is the processed content of one passport section.
type Section struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Status string         `json:"status"`
	Data   map[string]any `json:"data,omitempty"`
	Raw    map[string]any `json:"raw,omitempty"`
}

// CompleteDPP is a fully assembled passport document.
type CompleteDPP struct {
	ID          string              `json:"id"`
	GeneratedAt string              `json:"generatedAt"`
	Format      string              `json:"format"`
	Sections    map[string]*Section `json:"sections"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
}
