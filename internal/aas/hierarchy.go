package aas

// Vocabulary of the IDTA HierarchicalStructures submodel template. These
// idShorts and relationship names are configuration data consumed when
// projecting bill-of-material structures, not executable logic.
const (
	HierarchyEntryNode = "EntryNode"
	HierarchyNode      = "Node"
	HierarchySameAs    = "SameAs"
	HierarchyIsPartOf  = "IsPartOf"
	HierarchyHasPart   = "HasPart"
	HierarchyBulkCount = "BulkCount"
	HierarchyArcheType = "ArcheType"
)

// ArcheType values a HierarchicalStructures submodel may declare.
const (
	ArcheTypeFull    = "Full"
	ArcheTypeOneDown = "OneDown"
	ArcheTypeOneUp   = "OneUp"
)
