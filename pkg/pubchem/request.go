package pubchem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// compatibility is the static table of domain/operation/output
// combinations the service supports. Anything outside it fails fast
// with ErrUnsupportedOperation before a request is issued.
var compatibility = map[Domain]map[Operation][]OutputFormat{
	DomainCompound: {
		OperationRecord:      {OutputJSON, OutputSDF},
		OperationImage:       {OutputPNG},
		OperationProperty:    {OutputJSON, OutputCSV, OutputTXT},
		OperationSynonyms:    {OutputJSON, OutputTXT},
		OperationSIDs:        {OutputJSON, OutputTXT},
		OperationCIDs:        {OutputJSON, OutputTXT},
		OperationAIDs:        {OutputJSON, OutputTXT},
		OperationDescription: {OutputJSON},
	},
	DomainSubstance: {
		OperationRecord:      {OutputJSON, OutputSDF},
		OperationImage:       {OutputPNG},
		OperationSynonyms:    {OutputJSON, OutputTXT},
		OperationSIDs:        {OutputJSON, OutputTXT},
		OperationCIDs:        {OutputJSON, OutputTXT},
		OperationAIDs:        {OutputJSON, OutputTXT},
		OperationDescription: {OutputJSON},
	},
	DomainAssay: {
		OperationRecord:      {OutputJSON},
		OperationDescription: {OutputJSON},
		OperationSIDs:        {OutputJSON, OutputTXT},
		OperationCIDs:        {OutputJSON, OutputTXT},
		OperationAIDs:        {OutputJSON, OutputTXT},
	},
}

// domainNamespaces lists the identifier types each domain accepts.
var domainNamespaces = map[Domain]map[Namespace]bool{
	DomainCompound: {
		NamespaceCID: true, NamespaceName: true, NamespaceSMILES: true,
		NamespaceInChI: true, NamespaceInChIKey: true, NamespaceFormula: true,
		NamespaceSDF: true, NamespaceListKey: true,
	},
	DomainSubstance: {
		NamespaceSID: true, NamespaceName: true, NamespaceSourceID: true,
		NamespaceListKey: true,
	},
	DomainAssay: {
		NamespaceAID: true, NamespaceListKey: true,
	},
}

// Build composes the endpoint path and query parameters for spec.
// The path follows the documented PUG REST shape
// /{domain}/{namespace}/{identifiers}/{operation}/{output}, relative
// to the /rest/pug base; record and image retrieval omit the
// operation segment, which is the service default. Build is pure: it
// performs no I/O.
func Build(spec SearchSpec) (string, url.Values, error) {
	op := spec.Operation
	if op == "" {
		op = OperationRecord
	}
	output := spec.Output
	if output == "" {
		output = OutputJSON
	}

	ops, ok := compatibility[spec.Domain]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown domain %q", ErrUnsupportedOperation, spec.Domain)
	}
	outputs, ok := ops[op]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedOperation, spec.Domain, op)
	}
	if !outputAllowed(outputs, output) {
		return "", nil, fmt.Errorf("%w: %s output for %s/%s", ErrUnsupportedOperation, output, spec.Domain, op)
	}
	if !domainNamespaces[spec.Domain][spec.Namespace] {
		return "", nil, fmt.Errorf("%w: namespace %q in domain %q", ErrUnsupportedOperation, spec.Namespace, spec.Domain)
	}

	segment, err := Resolve(spec.Identifiers, spec.Namespace)
	if err != nil {
		return "", nil, err
	}

	parts := []string{string(spec.Domain), string(spec.Namespace), segment}
	switch op {
	case OperationRecord, OperationImage:
		// no operation segment
	case OperationProperty:
		if len(spec.Properties) == 0 {
			return "", nil, fmt.Errorf("%w: property operation requires property names", ErrUnsupportedOperation)
		}
		names := make([]string, 0, len(spec.Properties))
		for _, p := range spec.Properties {
			names = append(names, canonicalPropertyName(p))
		}
		parts = append(parts, "property", strings.Join(names, ","))
	default:
		parts = append(parts, string(op))
	}
	parts = append(parts, string(output))

	query := url.Values{}
	if spec.SearchType != "" {
		query.Set("searchtype", string(spec.SearchType))
	}
	if spec.ListKeyCount > 0 {
		query.Set("listkey_count", strconv.Itoa(spec.ListKeyCount))
	}
	if spec.MaxRecords > 0 {
		query.Set("MaxRecords", strconv.Itoa(spec.MaxRecords))
	}
	return strings.Join(parts, "/"), query, nil
}

func outputAllowed(outputs []OutputFormat, output OutputFormat) bool {
	for _, o := range outputs {
		if o == output {
			return true
		}
	}
	return false
}
