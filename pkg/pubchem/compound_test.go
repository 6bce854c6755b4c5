package pubchem_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemio/pubchem_sdk_go/pkg/pubchem"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// newAspirinClient returns a client whose backend serves the aspirin
// record for both CID and name lookups.
func newAspirinClient(t *testing.T) *pubchem.Client {
	t.Helper()
	body := loadFixture(t, "aspirin.json")
	backend := pubchem.NewMockBackend()
	backend.Seed(
		pubchem.MockFixture{Path: "compound/cid/2244/JSON", Body: body},
		pubchem.MockFixture{Path: "compound/name/aspirin/JSON", Body: body},
	)
	return pubchem.NewWithBackend(backend)
}

func TestCompoundAspirin(t *testing.T) {
	client := newAspirinClient(t)
	compound, err := client.CompoundFromCID(context.Background(), 2244)
	require.NoError(t, err)

	assert.Equal(t, 2244, compound.CID())
	assert.Equal(t, "C9H8O4", compound.MolecularFormula())
	assert.InDelta(t, 180.16, compound.MolecularWeight(), 0.001)
	assert.Equal(t, "CC(=O)OC1=CC=CC=C1C(=O)O", compound.CanonicalSMILES())
	assert.Equal(t, "CC(=O)OC1=CC=CC=C1C(=O)O", compound.IsomericSMILES())
	assert.Equal(t, "BSYNRYMUTXBXSQ-UHFFFAOYSA-N", compound.InChIKey())
	assert.True(t, strings.HasPrefix(compound.InChI(), "InChI=1S/C9H8O4/"))
	assert.Equal(t, "2-acetyloxybenzoic acid", compound.IUPACName())
	assert.InDelta(t, 1.2, compound.XLogP(), 0.001)
	assert.InDelta(t, 180.04225873, compound.ExactMass(), 1e-8)
	assert.InDelta(t, 180.04225873, compound.MonoisotopicMass(), 1e-8)
	assert.InDelta(t, 63.6, compound.TPSA(), 0.001)
	assert.InDelta(t, 212.0, compound.Complexity(), 0.001)
	assert.Equal(t, 1, compound.HBondDonorCount())
	assert.Equal(t, 4, compound.HBondAcceptorCount())
	assert.Equal(t, 3, compound.RotatableBondCount())
	assert.Equal(t, 13, compound.HeavyAtomCount())
	assert.Equal(t, 1, compound.CovalentUnitCount())
	assert.Equal(t, 0, compound.AtomStereoCount())
	assert.Equal(t, 0, compound.Charge())
	assert.Equal(t, "2d", compound.CoordinateType())
}

func TestCompoundStructure(t *testing.T) {
	client := newAspirinClient(t)
	compound, err := client.CompoundFromCID(context.Background(), 2244)
	require.NoError(t, err)

	atoms := compound.Atoms()
	require.Len(t, atoms, 21)
	for i := 1; i < len(atoms); i++ {
		assert.Less(t, atoms[i-1].AID, atoms[i].AID, "atoms must be ordered by AID")
	}

	counts := map[string]int{}
	for _, symbol := range compound.Elements() {
		counts[symbol]++
	}
	assert.Equal(t, map[string]int{"C": 9, "H": 8, "O": 4}, counts)

	bonds := compound.Bonds()
	require.Len(t, bonds, 21)
	doubles := 0
	for _, b := range bonds {
		if b.Order == pubchem.BondDouble {
			doubles++
		}
	}
	assert.Equal(t, 5, doubles)

	for _, atom := range atoms {
		assert.Equal(t, "2d", atom.CoordinateType())
	}
}

func TestCompoundEquality(t *testing.T) {
	client := newAspirinClient(t)
	ctx := context.Background()

	byCID, err := client.CompoundFromCID(ctx, 2244)
	require.NoError(t, err)
	byName, err := client.GetCompounds(ctx, []string{"aspirin"}, pubchem.NamespaceName, nil)
	require.NoError(t, err)
	require.Len(t, byName, 1)

	require.NotSame(t, byCID, byName[0])
	assert.True(t, byCID.Equal(byName[0]))
	assert.True(t, byName[0].Equal(byCID))
}

func TestCompoundCACTVSFingerprint(t *testing.T) {
	client := newAspirinClient(t)
	compound, err := client.CompoundFromCID(context.Background(), 2244)
	require.NoError(t, err)

	fp := compound.CACTVSFingerprint()
	require.Len(t, fp, 881)
	assert.Equal(t, "", strings.Trim(fp, "01"))
	assert.Contains(t, fp, "1")
}

func TestCompoundAbsentPropertiesYieldZero(t *testing.T) {
	client := newAspirinClient(t)
	compound, err := client.CompoundFromCID(context.Background(), 2244)
	require.NoError(t, err)

	// The record carries 2-D coordinates only.
	assert.Zero(t, compound.Volume3D())
	assert.Zero(t, compound.MMFF94Energy3D())
	assert.Zero(t, compound.EffectiveRotorCount3D())
	assert.Empty(t, compound.ConformerID3D())
}

func TestCompoundSynonymsMemoized(t *testing.T) {
	body := loadFixture(t, "aspirin.json")
	backend := pubchem.NewMockBackend()
	backend.Seed(
		pubchem.MockFixture{Path: "compound/cid/2244/JSON", Body: body},
		pubchem.MockFixture{
			Path: "compound/cid/2244/synonyms/JSON",
			Body: []byte(`{"InformationList":{"Information":[{"CID":2244,"Synonym":["aspirin","acetylsalicylic acid"]}]}}`),
		},
	)
	client := pubchem.NewWithBackend(backend)
	ctx := context.Background()

	compound, err := client.CompoundFromCID(ctx, 2244)
	require.NoError(t, err)

	first, err := compound.Synonyms(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"aspirin", "acetylsalicylic acid"}, first)

	// Re-seeding must not be visible: the first result is memoized.
	backend.Seed(pubchem.MockFixture{
		Path: "compound/cid/2244/synonyms/JSON",
		Body: []byte(`{"InformationList":{"Information":[{"CID":2244,"Synonym":["something else"]}]}}`),
	})
	second, err := compound.Synonyms(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewCompoundRejectsMismatchedAtomBlocks(t *testing.T) {
	record := pubchem.CompoundRecord{
		Atoms: &pubchem.AtomBlock{
			AIDs:     []int{1, 2},
			Elements: []int{6},
		},
	}
	_, err := pubchem.NewCompound(record)
	assert.True(t, errors.Is(err, pubchem.ErrMalformedRecord), "err = %v", err)
}

func TestNewCompoundRejectsMismatchedBondBlocks(t *testing.T) {
	record := pubchem.CompoundRecord{
		Atoms: &pubchem.AtomBlock{AIDs: []int{1, 2}, Elements: []int{6, 6}},
		Bonds: &pubchem.BondBlock{
			AID1:  []int{1},
			AID2:  []int{2},
			Order: []int{},
		},
	}
	_, err := pubchem.NewCompound(record)
	assert.True(t, errors.Is(err, pubchem.ErrMalformedRecord), "err = %v", err)
}
