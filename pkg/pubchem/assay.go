package pubchem

import "reflect"

// Assay corresponds to a single record from the PubChem BioAssay
// database.
type Assay struct {
	record AssayRecord
}

// NewAssay wraps a raw assay record.
func NewAssay(record AssayRecord) *Assay {
	return newAssay(record)
}

func newAssay(record AssayRecord) *Assay {
	return &Assay{record: record}
}

// Record returns the raw record this Assay was built from.
func (a *Assay) Record() AssayRecord {
	return a.record
}

// AID returns the PubChem Assay Identifier.
func (a *Assay) AID() int {
	return a.record.Assay.Descr.AID.ID
}

// AIDVersion returns the record version, incremented when the original
// depositor updates the record.
func (a *Assay) AIDVersion() int {
	return a.record.Assay.Descr.AID.Version
}

// Equal reports whether two Assays describe the same record.
func (a *Assay) Equal(other *Assay) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.AID() == other.AID() && reflect.DeepEqual(a.record, other.record)
}

// Name returns the short assay name, used for display purposes.
func (a *Assay) Name() string {
	return a.record.Assay.Descr.Name
}

// Description returns the assay description paragraphs.
func (a *Assay) Description() []string {
	return a.record.Assay.Descr.Description
}

// Comments returns additional information, with empty lines dropped.
func (a *Assay) Comments() []string {
	comments := make([]string, 0, len(a.record.Assay.Descr.Comment))
	for _, c := range a.record.Assay.Descr.Comment {
		if c != "" {
			comments = append(comments, c)
		}
	}
	return comments
}

// ProjectCategory distinguishes projects funded through MLSCN, MLPCN
// or from literature. Returns 0 when the record carries none.
func (a *Assay) ProjectCategory() int {
	if a.record.Assay.Descr.ProjectCategory == nil {
		return 0
	}
	return *a.record.Assay.Descr.ProjectCategory
}

// Revision returns the revision identifier for the textual
// description.
func (a *Assay) Revision() int {
	return a.record.Assay.Descr.Revision
}

// Results returns the readout columns reported by this assay.
func (a *Assay) Results() []AssayResult {
	return a.record.Assay.Descr.Results
}

// Targets returns the assay's biological targets.
func (a *Assay) Targets() []AssayTarget {
	return a.record.Assay.Descr.Targets
}
