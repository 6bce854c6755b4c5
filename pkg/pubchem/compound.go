package pubchem

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
)

// Atom is one atom of a compound record.
type Atom struct {
	AID    int
	Number int
	X      float64
	Y      float64
	Z      *float64
	Charge int
}

// Element returns the element symbol for this atom.
func (a Atom) Element() string {
	return ElementSymbol(a.Number)
}

// CoordinateType reports whether this atom carries 2-D or 3-D
// coordinates.
func (a Atom) CoordinateType() string {
	if a.Z == nil {
		return "2d"
	}
	return "3d"
}

// Bond is one bond between two atoms of a compound record.
type Bond struct {
	AID1  int
	AID2  int
	Order int
	Style int
}

// Compound corresponds to a single record from the PubChem Compound
// database. Each Compound is uniquely identified by a CID; records
// generated on the fly for structure queries may lack one.
//
// Derived properties are computed lazily from the raw record on first
// access and memoized. Compounds are not safe for concurrent use.
type Compound struct {
	record CompoundRecord
	atoms  []Atom
	bonds  []Bond
	client *Client
	memo   map[string]any
}

// NewCompound wraps a raw compound record, validating its structural
// blocks. Most users obtain Compounds through Client lookups instead.
func NewCompound(record CompoundRecord) (*Compound, error) {
	return newCompound(record)
}

func newCompound(record CompoundRecord) (*Compound, error) {
	c := &Compound{record: record, memo: make(map[string]any)}
	if err := c.buildAtoms(); err != nil {
		return nil, err
	}
	if err := c.buildBonds(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Compound) buildAtoms() error {
	block := c.record.Atoms
	if block == nil {
		return nil
	}
	if len(block.AIDs) != len(block.Elements) {
		return fmt.Errorf("%w: atom aid/element length mismatch", ErrMalformedRecord)
	}
	byAID := make(map[int]*Atom, len(block.AIDs))
	atoms := make([]Atom, len(block.AIDs))
	for i, aid := range block.AIDs {
		atoms[i] = Atom{AID: aid, Number: block.Elements[i]}
		byAID[aid] = &atoms[i]
	}
	if len(c.record.Coords) > 0 && len(c.record.Coords[0].Conformers) > 0 {
		coords := c.record.Coords[0]
		conf := coords.Conformers[0]
		if len(coords.AID) != len(conf.X) || len(coords.AID) != len(conf.Y) ||
			(len(conf.Z) > 0 && len(conf.Z) != len(coords.AID)) {
			return fmt.Errorf("%w: atom coordinate length mismatch", ErrMalformedRecord)
		}
		for i, aid := range coords.AID {
			atom, ok := byAID[aid]
			if !ok {
				return fmt.Errorf("%w: coordinates for unknown atom %d", ErrMalformedRecord, aid)
			}
			atom.X = conf.X[i]
			atom.Y = conf.Y[i]
			if len(conf.Z) > 0 {
				z := conf.Z[i]
				atom.Z = &z
			}
		}
	}
	for _, charge := range block.Charges {
		if atom, ok := byAID[charge.AID]; ok {
			atom.Charge = charge.Value
		}
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].AID < atoms[j].AID })
	c.atoms = atoms
	return nil
}

func (c *Compound) buildBonds() error {
	block := c.record.Bonds
	if block == nil {
		return nil
	}
	if len(block.AID1) != len(block.AID2) || len(block.AID1) != len(block.Order) {
		return fmt.Errorf("%w: bond aid/order length mismatch", ErrMalformedRecord)
	}
	bonds := make([]Bond, len(block.AID1))
	for i := range block.AID1 {
		bonds[i] = Bond{AID1: block.AID1[i], AID2: block.AID2[i], Order: block.Order[i]}
	}
	if len(c.record.Coords) > 0 && len(c.record.Coords[0].Conformers) > 0 {
		if style := c.record.Coords[0].Conformers[0].Style; style != nil {
			for i := range style.AID1 {
				if i >= len(style.AID2) || i >= len(style.Annotation) {
					break
				}
				for j := range bonds {
					if bonds[j].AID1 == style.AID1[i] && bonds[j].AID2 == style.AID2[i] {
						bonds[j].Style = style.Annotation[i]
					}
				}
			}
		}
	}
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].AID1 != bonds[j].AID1 {
			return bonds[i].AID1 < bonds[j].AID1
		}
		return bonds[i].AID2 < bonds[j].AID2
	})
	c.bonds = bonds
	return nil
}

// Record returns the raw record this Compound was built from.
func (c *Compound) Record() CompoundRecord {
	return c.record
}

// CID returns the PubChem Compound Identifier, or 0 for on-the-fly
// records that have none.
func (c *Compound) CID() int {
	if c.record.ID.ID.CID != nil {
		return *c.record.ID.ID.CID
	}
	return 0
}

// Equal reports whether two Compounds describe the same record: equal
// CIDs and identical raw record content. Distinct instances decoded
// from the same response compare equal.
func (c *Compound) Equal(other *Compound) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.CID() == other.CID() && reflect.DeepEqual(c.record, other.record)
}

// Atoms returns the compound's atoms ordered by atom ID.
func (c *Compound) Atoms() []Atom {
	return c.atoms
}

// Bonds returns the compound's bonds ordered by atom ID pair.
func (c *Compound) Bonds() []Bond {
	return c.bonds
}

// Elements returns the element symbols of the compound's atoms.
func (c *Compound) Elements() []string {
	symbols := make([]string, len(c.atoms))
	for i, a := range c.atoms {
		symbols[i] = a.Element()
	}
	return symbols
}

// extractor locates one derived property in a raw record. The second
// return value is false when the record does not carry the property.
type extractor func(*CompoundRecord) (any, bool)

// compoundExtractors maps property names to pure extraction functions
// over the raw record. Property reads go through this table and are
// memoized per Compound; a missing optional property yields the zero
// value rather than an error.
var compoundExtractors = map[string]extractor{
	"molecular_formula":     propString(urnFilter{Label: "Molecular Formula"}),
	"molecular_weight":      propFloat(urnFilter{Label: "Molecular Weight"}),
	"canonical_smiles":      propString(urnFilter{Label: "SMILES", Name: "Canonical"}),
	"isomeric_smiles":       propString(urnFilter{Label: "SMILES", Name: "Isomeric"}),
	"inchi":                 propString(urnFilter{Label: "InChI", Name: "Standard"}),
	"inchikey":              propString(urnFilter{Label: "InChIKey", Name: "Standard"}),
	"iupac_name":            propString(urnFilter{Label: "IUPAC Name", Name: "Preferred"}),
	"xlogp":                 propFloat(urnFilter{Label: "Log P"}),
	"exact_mass":            propFloat(urnFilter{Label: "Mass", Name: "Exact"}),
	"monoisotopic_mass":     propFloat(urnFilter{Label: "Weight", Name: "MonoIsotopic"}),
	"tpsa":                  propFloat(urnFilter{Implementation: "E_TPSA"}),
	"complexity":            propFloat(urnFilter{Implementation: "E_COMPLEXITY"}),
	"h_bond_donor_count":    propInt(urnFilter{Implementation: "E_NHDONORS"}),
	"h_bond_acceptor_count": propInt(urnFilter{Implementation: "E_NHACCEPTORS"}),
	"rotatable_bond_count":  propInt(urnFilter{Implementation: "E_NROTBONDS"}),
	"fingerprint":           propString(urnFilter{Implementation: "E_SCREEN"}),

	"effective_rotor_count_3d":  propFloat(urnFilter{Label: "Count", Name: "Effective Rotor"}),
	"pharmacophore_features_3d": propString(urnFilter{Label: "Features", Name: "Pharmacophore"}),
	"mmff94_partial_charges_3d": propString(urnFilter{Label: "Charge", Name: "MMFF94 Partial"}),

	"heavy_atom_count":            countProp(func(b *CountBlock) *int { return b.HeavyAtom }),
	"isotope_atom_count":          countProp(func(b *CountBlock) *int { return b.IsotopeAtom }),
	"atom_stereo_count":           countProp(func(b *CountBlock) *int { return b.AtomChiral }),
	"defined_atom_stereo_count":   countProp(func(b *CountBlock) *int { return b.AtomChiralDef }),
	"undefined_atom_stereo_count": countProp(func(b *CountBlock) *int { return b.AtomChiralUndef }),
	"bond_stereo_count":           countProp(func(b *CountBlock) *int { return b.BondChiral }),
	"defined_bond_stereo_count":   countProp(func(b *CountBlock) *int { return b.BondChiralDef }),
	"undefined_bond_stereo_count": countProp(func(b *CountBlock) *int { return b.BondChiralUndef }),
	"covalent_unit_count":         countProp(func(b *CountBlock) *int { return b.CovalentUnit }),

	"volume_3d":              conformerProp(urnFilter{Label: "Shape", Name: "Volume"}),
	"multipoles_3d":          conformerProp(urnFilter{Label: "Shape", Name: "Multipoles"}),
	"mmff94_energy_3d":       conformerProp(urnFilter{Label: "Energy", Name: "MMFF94 NoEstat"}),
	"conformer_id_3d":        conformerProp(urnFilter{Label: "Conformer", Name: "ID"}),
	"shape_selfoverlap_3d":   conformerProp(urnFilter{Label: "Shape", Name: "Self Overlap"}),
	"feature_selfoverlap_3d": conformerProp(urnFilter{Label: "Feature", Name: "Self Overlap"}),
	"shape_fingerprint_3d":   conformerProp(urnFilter{Label: "Fingerprint", Name: "Shape"}),
	"conformer_rmsd_3d":      coordDataProp(urnFilter{Label: "Conformer", Name: "RMSD"}),
}

func propString(f urnFilter) extractor {
	return func(r *CompoundRecord) (any, bool) {
		v, ok := findProp(r.Props, f)
		if !ok {
			return nil, false
		}
		s, ok := v.stringValue()
		return s, ok
	}
}

func propFloat(f urnFilter) extractor {
	return func(r *CompoundRecord) (any, bool) {
		v, ok := findProp(r.Props, f)
		if !ok {
			return nil, false
		}
		return floatValue(v)
	}
}

func propInt(f urnFilter) extractor {
	return func(r *CompoundRecord) (any, bool) {
		v, ok := findProp(r.Props, f)
		if !ok || v.IVal == nil {
			return nil, false
		}
		return *v.IVal, true
	}
}

func countProp(sel func(*CountBlock) *int) extractor {
	return func(r *CompoundRecord) (any, bool) {
		if r.Count == nil {
			return nil, false
		}
		v := sel(r.Count)
		if v == nil {
			return nil, false
		}
		return *v, true
	}
}

func conformerProp(f urnFilter) extractor {
	return func(r *CompoundRecord) (any, bool) {
		if len(r.Coords) == 0 || len(r.Coords[0].Conformers) == 0 {
			return nil, false
		}
		v, ok := findProp(r.Coords[0].Conformers[0].Data, f)
		if !ok {
			return nil, false
		}
		return scalarValue(v)
	}
}

func coordDataProp(f urnFilter) extractor {
	return func(r *CompoundRecord) (any, bool) {
		if len(r.Coords) == 0 {
			return nil, false
		}
		v, ok := findProp(r.Coords[0].Data, f)
		if !ok {
			return nil, false
		}
		return scalarValue(v)
	}
}

// floatValue coerces a record value to float64, parsing string-encoded
// numbers the newer record layouts use.
func floatValue(v PropertyValue) (any, bool) {
	switch {
	case v.FVal != nil:
		return *v.FVal, true
	case v.IVal != nil:
		return float64(*v.IVal), true
	case v.SVal != nil:
		f, err := strconv.ParseFloat(*v.SVal, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func scalarValue(v PropertyValue) (any, bool) {
	switch {
	case v.FVal != nil:
		return *v.FVal, true
	case v.IVal != nil:
		return *v.IVal, true
	case len(v.FVec) > 0:
		return v.FVec, true
	}
	if s, ok := v.stringValue(); ok {
		return s, true
	}
	return nil, false
}

// prop resolves a derived property by name through the extractor
// table, caching the outcome (including absence) per Compound.
func (c *Compound) prop(name string) (any, bool) {
	if v, cached := c.memo[name]; cached {
		return v, v != nil
	}
	fn, ok := compoundExtractors[name]
	if !ok {
		return nil, false
	}
	v, ok := fn(&c.record)
	if !ok {
		c.memo[name] = nil
		return nil, false
	}
	c.memo[name] = v
	return v, true
}

func (c *Compound) stringProp(name string) string {
	if v, ok := c.prop(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (c *Compound) floatProp(name string) float64 {
	if v, ok := c.prop(name); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

func (c *Compound) intProp(name string) int {
	if v, ok := c.prop(name); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

// MolecularFormula returns the molecular formula.
func (c *Compound) MolecularFormula() string { return c.stringProp("molecular_formula") }

// MolecularWeight returns the molecular weight in g/mol.
func (c *Compound) MolecularWeight() float64 { return c.floatProp("molecular_weight") }

// CanonicalSMILES returns the canonical SMILES, with no stereochemistry.
func (c *Compound) CanonicalSMILES() string { return c.stringProp("canonical_smiles") }

// IsomericSMILES returns the isomeric SMILES.
func (c *Compound) IsomericSMILES() string { return c.stringProp("isomeric_smiles") }

// InChI returns the standard InChI string.
func (c *Compound) InChI() string { return c.stringProp("inchi") }

// InChIKey returns the standard InChIKey.
func (c *Compound) InChIKey() string { return c.stringProp("inchikey") }

// IUPACName returns the preferred IUPAC name.
func (c *Compound) IUPACName() string { return c.stringProp("iupac_name") }

// XLogP returns the computed octanol-water partition coefficient.
func (c *Compound) XLogP() float64 { return c.floatProp("xlogp") }

// ExactMass returns the exact mass.
func (c *Compound) ExactMass() float64 { return c.floatProp("exact_mass") }

// MonoisotopicMass returns the monoisotopic mass.
func (c *Compound) MonoisotopicMass() float64 { return c.floatProp("monoisotopic_mass") }

// TPSA returns the topological polar surface area.
func (c *Compound) TPSA() float64 { return c.floatProp("tpsa") }

// Complexity returns the structural complexity score.
func (c *Compound) Complexity() float64 { return c.floatProp("complexity") }

// HBondDonorCount returns the hydrogen bond donor count.
func (c *Compound) HBondDonorCount() int { return c.intProp("h_bond_donor_count") }

// HBondAcceptorCount returns the hydrogen bond acceptor count.
func (c *Compound) HBondAcceptorCount() int { return c.intProp("h_bond_acceptor_count") }

// RotatableBondCount returns the rotatable bond count.
func (c *Compound) RotatableBondCount() int { return c.intProp("rotatable_bond_count") }

// Fingerprint returns the raw padded, hex-encoded substructure
// fingerprint as returned by the service.
func (c *Compound) Fingerprint() string { return c.stringProp("fingerprint") }

// CACTVSFingerprint returns the 881-bit CACTVS substructure
// fingerprint as a binary string. Each bit records the presence of one
// of 881 chemical substructures.
func (c *Compound) CACTVSFingerprint() string {
	// Skip the 4-byte length prefix and drop the 7 padding bits, then
	// re-pad to 881 bits.
	fp := c.Fingerprint()
	if len(fp) <= 8 {
		return ""
	}
	n, ok := new(big.Int).SetString(fp[8:], 16)
	if !ok {
		return ""
	}
	bits := fmt.Sprintf("%020b", n)
	if len(bits) <= 7 {
		return ""
	}
	bits = bits[:len(bits)-7]
	for len(bits) < 881 {
		bits = "0" + bits
	}
	return bits
}

// HeavyAtomCount returns the heavy (non-hydrogen) atom count.
func (c *Compound) HeavyAtomCount() int { return c.intProp("heavy_atom_count") }

// IsotopeAtomCount returns the isotope atom count.
func (c *Compound) IsotopeAtomCount() int { return c.intProp("isotope_atom_count") }

// AtomStereoCount returns the atom stereocenter count.
func (c *Compound) AtomStereoCount() int { return c.intProp("atom_stereo_count") }

// DefinedAtomStereoCount returns the defined atom stereocenter count.
func (c *Compound) DefinedAtomStereoCount() int { return c.intProp("defined_atom_stereo_count") }

// UndefinedAtomStereoCount returns the undefined atom stereocenter count.
func (c *Compound) UndefinedAtomStereoCount() int { return c.intProp("undefined_atom_stereo_count") }

// BondStereoCount returns the bond stereocenter count.
func (c *Compound) BondStereoCount() int { return c.intProp("bond_stereo_count") }

// DefinedBondStereoCount returns the defined bond stereocenter count.
func (c *Compound) DefinedBondStereoCount() int { return c.intProp("defined_bond_stereo_count") }

// UndefinedBondStereoCount returns the undefined bond stereocenter count.
func (c *Compound) UndefinedBondStereoCount() int { return c.intProp("undefined_bond_stereo_count") }

// CovalentUnitCount returns the covalently-bonded unit count.
func (c *Compound) CovalentUnitCount() int { return c.intProp("covalent_unit_count") }

// Charge returns the formal charge on the compound.
func (c *Compound) Charge() int {
	if c.record.Charge != nil {
		return *c.record.Charge
	}
	return 0
}

// CoordinateType reports whether the record carries 2-D or 3-D
// coordinates, or "" when it has none.
func (c *Compound) CoordinateType() string {
	if len(c.record.Coords) == 0 {
		return ""
	}
	for _, t := range c.record.Coords[0].Type {
		switch t {
		case CoordinateTwoD:
			return "2d"
		case CoordinateThreeD:
			return "3d"
		}
	}
	return ""
}

// Volume3D returns the analytic conformer volume, when present.
func (c *Compound) Volume3D() float64 {
	if v, ok := c.prop("volume_3d"); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// ConformerRMSD3D returns the conformer model RMSD, when present.
func (c *Compound) ConformerRMSD3D() float64 {
	if v, ok := c.prop("conformer_rmsd_3d"); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// EffectiveRotorCount3D returns the effective rotor count, when present.
func (c *Compound) EffectiveRotorCount3D() float64 { return c.floatProp("effective_rotor_count_3d") }

// MMFF94Energy3D returns the MMFF94 conformer energy, when present.
func (c *Compound) MMFF94Energy3D() float64 {
	if v, ok := c.prop("mmff94_energy_3d"); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// ConformerID3D returns the conformer identifier, when present.
func (c *Compound) ConformerID3D() string {
	if v, ok := c.prop("conformer_id_3d"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Synonyms returns the ranked names associated with this compound.
// Requires an extra request; the result is memoized.
func (c *Compound) Synonyms(ctx context.Context) ([]string, error) {
	if v, cached := c.memo["synonyms"]; cached {
		return v.([]string), nil
	}
	if c.CID() == 0 {
		return nil, nil
	}
	if c.client == nil {
		return nil, fmt.Errorf("pubchem: compound %d is not attached to a client", c.CID())
	}
	sets, err := c.client.GetSynonyms(ctx, []string{strconv.Itoa(c.CID())}, NamespaceCID)
	if err != nil {
		return nil, err
	}
	names := []string{}
	if len(sets) > 0 {
		names = sets[0].Synonyms
	}
	c.memo["synonyms"] = names
	return names, nil
}

// SIDs returns the substance IDs this compound was standardized from.
// Requires an extra request; the result is memoized.
func (c *Compound) SIDs(ctx context.Context) ([]int, error) {
	return c.relatedIDs(ctx, "sids", OperationSIDs)
}

// AIDs returns the assay IDs this compound appears in. Requires an
// extra request; the result is memoized.
func (c *Compound) AIDs(ctx context.Context) ([]int, error) {
	return c.relatedIDs(ctx, "aids", OperationAIDs)
}

func (c *Compound) relatedIDs(ctx context.Context, name string, op Operation) ([]int, error) {
	if v, cached := c.memo[name]; cached {
		return v.([]int), nil
	}
	if c.CID() == 0 {
		return nil, nil
	}
	if c.client == nil {
		return nil, fmt.Errorf("pubchem: compound %d is not attached to a client", c.CID())
	}
	ids, err := c.client.getIDList(ctx, SearchSpec{
		Identifiers: []string{strconv.Itoa(c.CID())},
		Namespace:   NamespaceCID,
		Domain:      DomainCompound,
		Operation:   op,
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	c.memo[name] = ids
	return ids, nil
}
