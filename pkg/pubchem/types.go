package pubchem

import (
	"errors"
	"fmt"
)

// Domain selects the PubChem database a request runs against.
type Domain string

const (
	DomainCompound  Domain = "compound"
	DomainSubstance Domain = "substance"
	DomainAssay     Domain = "assay"
)

// Namespace is the identifier type used for lookup.
type Namespace string

const (
	NamespaceCID      Namespace = "cid"
	NamespaceSID      Namespace = "sid"
	NamespaceAID      Namespace = "aid"
	NamespaceName     Namespace = "name"
	NamespaceSMILES   Namespace = "smiles"
	NamespaceInChI    Namespace = "inchi"
	NamespaceInChIKey Namespace = "inchikey"
	NamespaceFormula  Namespace = "formula"
	NamespaceSDF      Namespace = "sdf"
	NamespaceSourceID Namespace = "sourceid"
	NamespaceListKey  Namespace = "listkey"
)

// Operation names the record aspect retrieved for the resolved
// identifiers. OperationRecord is the service default and contributes
// no path segment; OperationImage is record retrieval rendered as PNG
// (the service has no image path segment either).
type Operation string

const (
	OperationRecord      Operation = "record"
	OperationImage       Operation = "image"
	OperationProperty    Operation = "property"
	OperationSynonyms    Operation = "synonyms"
	OperationSIDs        Operation = "sids"
	OperationCIDs        Operation = "cids"
	OperationAIDs        Operation = "aids"
	OperationDescription Operation = "description"
)

// OutputFormat tags how a response body is decoded.
type OutputFormat string

const (
	OutputJSON OutputFormat = "JSON"
	OutputCSV  OutputFormat = "CSV"
	OutputTXT  OutputFormat = "TXT"
	OutputPNG  OutputFormat = "PNG"
	OutputSDF  OutputFormat = "SDF"
)

// SearchType selects an advanced structural search. Searches carrying
// a search type (and formula-namespace lookups) run asynchronously on
// the service and are resolved by listkey polling.
type SearchType string

const (
	SearchSubstructure   SearchType = "substructure"
	SearchSuperstructure SearchType = "superstructure"
	SearchSimilarity     SearchType = "similarity"
	SearchFormula        SearchType = "formula"
)

// SearchSpec describes one PUG REST request. Identifiers must be
// non-empty and the domain/operation/output combination must be one
// the service supports; both are validated before any request is sent.
type SearchSpec struct {
	Identifiers []string
	Namespace   Namespace
	Domain      Domain
	Operation   Operation
	Output      OutputFormat

	// Properties lists the compound properties requested by
	// OperationProperty. Underscore-style names are translated via
	// PropertyMap.
	Properties []string

	SearchType   SearchType
	ListKeyCount int
	MaxRecords   int
}

// RawResponse is the undecoded reply from the transport adapter. It is
// ephemeral: decoded once and discarded.
type RawResponse struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

var (
	// ErrInvalidNamespace is returned for an unrecognized namespace.
	ErrInvalidNamespace = errors.New("pubchem: invalid namespace")
	// ErrInvalidIdentifier signals missing identifiers, or a
	// non-numeric identifier supplied to a numeric namespace.
	ErrInvalidIdentifier = errors.New("pubchem: invalid identifier")
	// ErrUnsupportedOperation signals a domain/operation/output
	// combination outside the service's documented surface.
	ErrUnsupportedOperation = errors.New("pubchem: unsupported operation")
	// ErrAsyncJobTimeout is returned when listkey polling exceeds the
	// configured maximum wait.
	ErrAsyncJobTimeout = errors.New("pubchem: asynchronous job timed out")
	// ErrResponseParse signals a response body that could not be
	// decoded in the requested output format.
	ErrResponseParse = errors.New("pubchem: response parse error")
	// ErrMalformedRecord signals a decoded record missing structure
	// the mapper requires.
	ErrMalformedRecord = errors.New("pubchem: malformed record")
	// ErrSafetyDataParse signals a GHS datasheet whose section layout
	// did not match the expected shape.
	ErrSafetyDataParse = errors.New("pubchem: safety data parse error")
)

// ServiceError is returned when the service rejects a request with a
// fault. Code is the service's fault code (e.g. "PUGREST.NotFound")
// when the body carried one, otherwise empty.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code != "" {
		return fmt.Sprintf("pubchem: service error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("pubchem: service error: %s", e.Message)
}

// TransportError wraps a network-level failure (connection error,
// timeout) surfaced unchanged from the transport adapter.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("pubchem: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
