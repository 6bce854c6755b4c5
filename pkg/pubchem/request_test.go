package pubchem_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/chemio/pubchem_sdk_go/pkg/pubchem"
)

func TestBuildPaths(t *testing.T) {
	cases := []struct {
		name      string
		spec      pubchem.SearchSpec
		wantPath  string
		wantQuery url.Values
	}{
		{
			name: "record omits operation segment",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationRecord,
				Output:      pubchem.OutputJSON,
			},
			wantPath: "compound/cid/2244/JSON",
		},
		{
			name: "defaults to record and JSON",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"aspirin"},
				Namespace:   pubchem.NamespaceName,
				Domain:      pubchem.DomainCompound,
			},
			wantPath: "compound/name/aspirin/JSON",
		},
		{
			name: "image renders as PNG record",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationImage,
				Output:      pubchem.OutputPNG,
			},
			wantPath: "compound/cid/2244/PNG",
		},
		{
			name: "property names are canonicalized",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244", "1254"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationProperty,
				Properties:  []string{"molecular_weight", "XLogP", "isomeric_smiles"},
				Output:      pubchem.OutputCSV,
			},
			wantPath: "compound/cid/2244,1254/property/MolecularWeight,XLogP,IsomericSMILES/CSV",
		},
		{
			name: "synonyms keeps operation segment",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"aspirin"},
				Namespace:   pubchem.NamespaceName,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationSynonyms,
				Output:      pubchem.OutputJSON,
			},
			wantPath: "compound/name/aspirin/synonyms/JSON",
		},
		{
			name: "substructure search rides in the query",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"C1=CC=CC=C1"},
				Namespace:   pubchem.NamespaceSMILES,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationCIDs,
				Output:      pubchem.OutputJSON,
				SearchType:  pubchem.SearchSubstructure,
				MaxRecords:  100,
			},
			wantPath: "compound/smiles/C1=CC=CC=C1/cids/JSON",
			wantQuery: url.Values{
				"searchtype": []string{"substructure"},
				"MaxRecords": []string{"100"},
			},
		},
		{
			name: "listkey polling path",
			spec: pubchem.SearchSpec{
				Identifiers:  []string{"3746271989177590471"},
				Namespace:    pubchem.NamespaceListKey,
				Domain:       pubchem.DomainCompound,
				Operation:    pubchem.OperationCIDs,
				Output:       pubchem.OutputJSON,
				ListKeyCount: 50,
			},
			wantPath: "compound/listkey/3746271989177590471/cids/JSON",
			wantQuery: url.Values{
				"listkey_count": []string{"50"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path, query, err := pubchem.Build(tc.spec)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if path != tc.wantPath {
				t.Fatalf("path = %q, want %q", path, tc.wantPath)
			}
			wantQuery := tc.wantQuery
			if wantQuery == nil {
				wantQuery = url.Values{}
			}
			if query.Encode() != wantQuery.Encode() {
				t.Fatalf("query = %q, want %q", query.Encode(), wantQuery.Encode())
			}
		})
	}
}

func TestBuildRejectsUnsupportedCombinations(t *testing.T) {
	cases := []struct {
		name string
		spec pubchem.SearchSpec
	}{
		{
			name: "record as CSV",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationRecord,
				Output:      pubchem.OutputCSV,
			},
		},
		{
			name: "property on substances",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"12345"},
				Namespace:   pubchem.NamespaceSID,
				Domain:      pubchem.DomainSubstance,
				Operation:   pubchem.OperationProperty,
				Properties:  []string{"molecular_weight"},
				Output:      pubchem.OutputJSON,
			},
		},
		{
			name: "PNG outside image",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationSynonyms,
				Output:      pubchem.OutputPNG,
			},
		},
		{
			name: "formula namespace in assay domain",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"C9H8O4"},
				Namespace:   pubchem.NamespaceFormula,
				Domain:      pubchem.DomainAssay,
				Operation:   pubchem.OperationRecord,
				Output:      pubchem.OutputJSON,
			},
		},
		{
			name: "unknown domain",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.Domain("gene"),
			},
		},
		{
			name: "property without names",
			spec: pubchem.SearchSpec{
				Identifiers: []string{"2244"},
				Namespace:   pubchem.NamespaceCID,
				Domain:      pubchem.DomainCompound,
				Operation:   pubchem.OperationProperty,
				Output:      pubchem.OutputJSON,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := pubchem.Build(tc.spec); !errors.Is(err, pubchem.ErrUnsupportedOperation) {
				t.Fatalf("Build error = %v, want ErrUnsupportedOperation", err)
			}
		})
	}
}
