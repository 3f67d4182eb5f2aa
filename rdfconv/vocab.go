package rdfconv

// Well-known vocabulary IRIs used during extraction. Only the terms the
// converter actually dispatches on are listed.
const (
	// RDF core.
	RDFType     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFProperty = "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property"
	RDFFirst    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	RDFRest     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	RDFNil      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"

	// RDFS.
	RDFSClass      = "http://www.w3.org/2000/01/rdf-schema#Class"
	RDFSSubClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	RDFSDomain     = "http://www.w3.org/2000/01/rdf-schema#domain"
	RDFSRange      = "http://www.w3.org/2000/01/rdf-schema#range"
	RDFSLabel      = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSLiteral    = "http://www.w3.org/2000/01/rdf-schema#Literal"

	// OWL.
	OWLClass              = "http://www.w3.org/2002/07/owl#Class"
	OWLOntology           = "http://www.w3.org/2002/07/owl#Ontology"
	OWLDatatypeProperty   = "http://www.w3.org/2002/07/owl#DatatypeProperty"
	OWLObjectProperty     = "http://www.w3.org/2002/07/owl#ObjectProperty"
	OWLAnnotationProperty = "http://www.w3.org/2002/07/owl#AnnotationProperty"
	OWLUnionOf            = "http://www.w3.org/2002/07/owl#unionOf"
	OWLIntersectionOf     = "http://www.w3.org/2002/07/owl#intersectionOf"
	OWLComplementOf       = "http://www.w3.org/2002/07/owl#complementOf"
	OWLOneOf              = "http://www.w3.org/2002/07/owl#oneOf"
	OWLRestriction        = "http://www.w3.org/2002/07/owl#Restriction"
	OWLThing              = "http://www.w3.org/2002/07/owl#Thing"

	// XSD namespace prefix; datatype IRIs under it map through the registry.
	XSDPrefix = "http://www.w3.org/2001/XMLSchema#"
)
