package pubchem

import "strings"

// Typed forms of the PUG REST record JSON. Decoding into these structs
// happens once, at decode time; the mappers below never walk untyped
// JSON.

type compoundList struct {
	Compounds []CompoundRecord `json:"PC_Compounds"`
}

type substanceList struct {
	Substances []SubstanceRecord `json:"PC_Substances"`
}

type assayList struct {
	Assays []AssayRecord `json:"PC_AssayContainer"`
}

// CompoundRecord is one PC_Compounds entry exactly as returned by the
// service. It is immutable once decoded and owned exclusively by the
// Compound built from it.
type CompoundRecord struct {
	ID     RecordID         `json:"id"`
	Atoms  *AtomBlock       `json:"atoms,omitempty"`
	Bonds  *BondBlock       `json:"bonds,omitempty"`
	Coords []CoordBlock     `json:"coords,omitempty"`
	Charge *int             `json:"charge,omitempty"`
	Props  []RecordProperty `json:"props,omitempty"`
	Count  *CountBlock      `json:"count,omitempty"`
}

// RecordID identifies a record. Type is only present on compounds
// embedded in substance records, marking their relation to the
// deposited substance.
type RecordID struct {
	Type *int `json:"type,omitempty"`
	ID   struct {
		CID *int `json:"cid,omitempty"`
	} `json:"id"`
}

// AtomBlock carries parallel arrays describing the record's atoms.
type AtomBlock struct {
	AIDs     []int        `json:"aid"`
	Elements []int        `json:"element"`
	Charges  []AtomCharge `json:"charge,omitempty"`
}

// AtomCharge assigns a formal charge to one atom.
type AtomCharge struct {
	AID   int `json:"aid"`
	Value int `json:"value"`
}

// BondBlock carries parallel arrays describing bonds between atoms.
type BondBlock struct {
	AID1  []int `json:"aid1"`
	AID2  []int `json:"aid2"`
	Order []int `json:"order"`
}

// CoordBlock holds one coordinate set with its conformers.
type CoordBlock struct {
	Type       []int            `json:"type"`
	AID        []int            `json:"aid"`
	Conformers []Conformer      `json:"conformers"`
	Data       []RecordProperty `json:"data,omitempty"`
}

// Conformer carries per-atom coordinates plus optional bond styling
// and conformer-level data properties.
type Conformer struct {
	X     []float64        `json:"x"`
	Y     []float64        `json:"y"`
	Z     []float64        `json:"z,omitempty"`
	Style *BondStyleBlock  `json:"style,omitempty"`
	Data  []RecordProperty `json:"data,omitempty"`
}

// BondStyleBlock annotates bonds with display styles.
type BondStyleBlock struct {
	AID1       []int `json:"aid1"`
	AID2       []int `json:"aid2"`
	Annotation []int `json:"annotation"`
}

// CountBlock holds the record's derived structure counts.
type CountBlock struct {
	HeavyAtom       *int `json:"heavy_atom,omitempty"`
	IsotopeAtom     *int `json:"isotope_atom,omitempty"`
	AtomChiral      *int `json:"atom_chiral,omitempty"`
	AtomChiralDef   *int `json:"atom_chiral_def,omitempty"`
	AtomChiralUndef *int `json:"atom_chiral_undef,omitempty"`
	BondChiral      *int `json:"bond_chiral,omitempty"`
	BondChiralDef   *int `json:"bond_chiral_def,omitempty"`
	BondChiralUndef *int `json:"bond_chiral_undef,omitempty"`
	CovalentUnit    *int `json:"covalent_unit,omitempty"`
}

// RecordProperty is one urn-labelled value in a record's props list.
type RecordProperty struct {
	URN   PropertyURN   `json:"urn"`
	Value PropertyValue `json:"value"`
}

// PropertyURN labels a record property.
type PropertyURN struct {
	Label          string `json:"label,omitempty"`
	Name           string `json:"name,omitempty"`
	Implementation string `json:"implementation,omitempty"`
	Version        string `json:"version,omitempty"`
	Software       string `json:"software,omitempty"`
	Source         string `json:"source,omitempty"`
	DataType       int    `json:"datatype,omitempty"`
}

// PropertyValue holds exactly one of the service's value encodings.
type PropertyValue struct {
	SVal   *string   `json:"sval,omitempty"`
	FVal   *float64  `json:"fval,omitempty"`
	IVal   *int      `json:"ival,omitempty"`
	Binary *string   `json:"binary,omitempty"`
	SList  []string  `json:"slist,omitempty"`
	FVec   []float64 `json:"fvec,omitempty"`
}

// urnFilter selects record properties whose URN matches every set
// field.
type urnFilter struct {
	Label          string
	Name           string
	Implementation string
}

func (f urnFilter) matches(u PropertyURN) bool {
	if f.Label != "" && u.Label != f.Label {
		return false
	}
	if f.Name != "" && u.Name != f.Name {
		return false
	}
	if f.Implementation != "" && u.Implementation != f.Implementation {
		return false
	}
	return true
}

// findProp returns the first property in props matching the filter.
func findProp(props []RecordProperty, f urnFilter) (PropertyValue, bool) {
	for _, p := range props {
		if f.matches(p.URN) {
			return p.Value, true
		}
	}
	return PropertyValue{}, false
}

// stringValue renders the value as a string: sval or binary directly,
// multi-part descriptor lists joined into one string.
func (v PropertyValue) stringValue() (string, bool) {
	switch {
	case v.SVal != nil:
		return *v.SVal, true
	case v.Binary != nil:
		return *v.Binary, true
	case len(v.SList) > 0:
		return strings.Join(v.SList, ""), true
	}
	return "", false
}

// SubstanceRecord is one PC_Substances entry.
type SubstanceRecord struct {
	SID struct {
		ID int `json:"id"`
	} `json:"sid"`
	Source    *SubstanceSource `json:"source,omitempty"`
	Synonyms  []string         `json:"synonyms,omitempty"`
	Compounds []CompoundRecord `json:"compound,omitempty"`
}

// SubstanceSource identifies the depositor of a substance.
type SubstanceSource struct {
	DB struct {
		Name     string `json:"name"`
		SourceID struct {
			Str string `json:"str"`
		} `json:"source_id"`
	} `json:"db"`
}

// AssayRecord is one PC_AssayContainer entry.
type AssayRecord struct {
	Assay struct {
		Descr AssayDescription `json:"descr"`
	} `json:"assay"`
}

// AssayDescription carries the descriptive portion of an assay record.
type AssayDescription struct {
	AID struct {
		ID      int `json:"id"`
		Version int `json:"version"`
	} `json:"aid"`
	Name            string        `json:"name"`
	Description     []string      `json:"description"`
	Comment         []string      `json:"comment,omitempty"`
	ProjectCategory *int          `json:"project_category,omitempty"`
	Revision        int           `json:"revision,omitempty"`
	Results         []AssayResult `json:"results,omitempty"`
	Targets         []AssayTarget `json:"target,omitempty"`
}

// AssayResult describes one readout column reported by an assay.
type AssayResult struct {
	TID         int      `json:"tid"`
	Name        string   `json:"name"`
	Description []string `json:"description,omitempty"`
	Type        int      `json:"type"`
	Unit        *int     `json:"unit,omitempty"`
}

// AssayTarget describes a biological target of an assay.
type AssayTarget struct {
	Name     string `json:"name"`
	MolID    *int   `json:"mol_id,omitempty"`
	Descr    string `json:"descr,omitempty"`
	Organism string `json:"organism,omitempty"`
}
