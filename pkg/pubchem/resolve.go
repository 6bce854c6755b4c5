package pubchem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// numericNamespaces are the identifier types that must parse as
// integers. Listkeys are service-issued opaque tokens and are exempt.
var numericNamespaces = map[Namespace]bool{
	NamespaceCID: true,
	NamespaceSID: true,
	NamespaceAID: true,
}

var knownNamespaces = map[Namespace]bool{
	NamespaceCID:      true,
	NamespaceSID:      true,
	NamespaceAID:      true,
	NamespaceName:     true,
	NamespaceSMILES:   true,
	NamespaceInChI:    true,
	NamespaceInChIKey: true,
	NamespaceFormula:  true,
	NamespaceSDF:      true,
	NamespaceSourceID: true,
	NamespaceListKey:  true,
}

// Resolve validates and normalizes an (identifiers, namespace) pair
// into a single URL path segment. Identifiers are joined with the
// service's comma separator, in input order, each percent-encoded so
// characters unsafe in a path (notably "/" in SMILES and InChI
// strings) survive as the %2F substitution the service accepts.
func Resolve(identifiers []string, namespace Namespace) (string, error) {
	if !knownNamespaces[namespace] {
		return "", fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}
	if len(identifiers) == 0 {
		return "", fmt.Errorf("%w: identifiers are required", ErrInvalidIdentifier)
	}

	escaped := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		id = strings.TrimSpace(id)
		if id == "" {
			return "", fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
		}
		if numericNamespaces[namespace] {
			if _, err := strconv.Atoi(id); err != nil {
				return "", fmt.Errorf("%w: %q is not numeric for namespace %q", ErrInvalidIdentifier, id, namespace)
			}
		}
		if namespace == NamespaceSourceID {
			// Source IDs embed slashes the service expects as dots.
			id = strings.ReplaceAll(id, "/", ".")
		}
		escaped = append(escaped, url.PathEscape(id))
	}
	return strings.Join(escaped, ","), nil
}
