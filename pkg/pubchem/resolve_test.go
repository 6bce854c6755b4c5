package pubchem_test

import (
	"errors"
	"testing"

	"github.com/chemio/pubchem_sdk_go/pkg/pubchem"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name        string
		identifiers []string
		namespace   pubchem.Namespace
		want        string
		wantErr     error
	}{
		{
			name:        "single cid",
			identifiers: []string{"2244"},
			namespace:   pubchem.NamespaceCID,
			want:        "2244",
		},
		{
			name:        "multiple cids keep input order",
			identifiers: []string{"2244", "1254", "962"},
			namespace:   pubchem.NamespaceCID,
			want:        "2244,1254,962",
		},
		{
			name:        "cid with surrounding whitespace",
			identifiers: []string{" 2244 "},
			namespace:   pubchem.NamespaceCID,
			want:        "2244",
		},
		{
			name:        "non-numeric cid",
			identifiers: []string{"aspirin"},
			namespace:   pubchem.NamespaceCID,
			wantErr:     pubchem.ErrInvalidIdentifier,
		},
		{
			name:        "name passes through",
			identifiers: []string{"aspirin"},
			namespace:   pubchem.NamespaceName,
			want:        "aspirin",
		},
		{
			name:        "name with space is escaped",
			identifiers: []string{"acetylsalicylic acid"},
			namespace:   pubchem.NamespaceName,
			want:        "acetylsalicylic%20acid",
		},
		{
			name:        "smiles slash survives as percent encoding",
			identifiers: []string{"CC(=O)OC1=CC=CC=C1C(=O)O", "C1=CC/C=C\\C1"},
			namespace:   pubchem.NamespaceSMILES,
			want:        "CC%28=O%29OC1=CC=CC=C1C%28=O%29O,C1=CC%2FC=C%5CC1",
		},
		{
			name:        "sourceid slash becomes dot",
			identifiers: []string{"ID/1234"},
			namespace:   pubchem.NamespaceSourceID,
			want:        "ID.1234",
		},
		{
			name:        "unknown namespace",
			identifiers: []string{"2244"},
			namespace:   pubchem.Namespace("isbn"),
			wantErr:     pubchem.ErrInvalidNamespace,
		},
		{
			name:        "no identifiers",
			identifiers: nil,
			namespace:   pubchem.NamespaceCID,
			wantErr:     pubchem.ErrInvalidIdentifier,
		},
		{
			name:        "empty identifier",
			identifiers: []string{"2244", "  "},
			namespace:   pubchem.NamespaceCID,
			wantErr:     pubchem.ErrInvalidIdentifier,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pubchem.Resolve(tc.identifiers, tc.namespace)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Resolve error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Resolve = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveListKeyIsOpaque(t *testing.T) {
	got, err := pubchem.Resolve([]string{"3746271989177590471"}, pubchem.NamespaceListKey)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "3746271989177590471" {
		t.Fatalf("Resolve = %q", got)
	}
}
