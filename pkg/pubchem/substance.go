package pubchem

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// Substance corresponds to a single record from the PubChem Substance
// database: a deposited chemical record in its raw form, before
// standardization. Each Compound may be derived from several
// Substances.
type Substance struct {
	record SubstanceRecord
	client *Client
	memo   map[string]any
}

// NewSubstance wraps a raw substance record. Most users obtain
// Substances through Client lookups instead.
func NewSubstance(record SubstanceRecord) (*Substance, error) {
	return newSubstance(record)
}

func newSubstance(record SubstanceRecord) (*Substance, error) {
	if record.SID.ID == 0 {
		return nil, fmt.Errorf("%w: substance record missing sid", ErrMalformedRecord)
	}
	return &Substance{record: record, memo: make(map[string]any)}, nil
}

// Record returns the raw record this Substance was built from.
func (s *Substance) Record() SubstanceRecord {
	return s.record
}

// SID returns the PubChem Substance Identifier.
func (s *Substance) SID() int {
	return s.record.SID.ID
}

// Equal reports whether two Substances describe the same record:
// equal SIDs and identical raw record content.
func (s *Substance) Equal(other *Substance) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.SID() == other.SID() && reflect.DeepEqual(s.record, other.record)
}

// Synonyms returns the ranked names the depositor associated with
// this substance. Unlike Compound.Synonyms this needs no extra
// request; the names ride along in the record.
func (s *Substance) Synonyms() []string {
	return s.record.Synonyms
}

// SourceName returns the name of the depositor that was the source of
// this substance.
func (s *Substance) SourceName() string {
	if s.record.Source == nil {
		return ""
	}
	return s.record.Source.DB.Name
}

// SourceID returns the depositor's own identifier for this substance.
func (s *Substance) SourceID() string {
	if s.record.Source == nil {
		return ""
	}
	return s.record.Source.DB.SourceID.Str
}

// StandardizedCID returns the CID produced when this substance was
// standardized, or 0 when the substance was not standardizable.
func (s *Substance) StandardizedCID() int {
	for _, c := range s.record.Compounds {
		if c.ID.Type != nil && *c.ID.Type == CompoundIDStandardized && c.ID.ID.CID != nil {
			return *c.ID.ID.CID
		}
	}
	return 0
}

// StandardizedCompound retrieves the full Compound this substance was
// standardized into. Requires an extra request; the result is
// memoized.
func (s *Substance) StandardizedCompound(ctx context.Context) (*Compound, error) {
	if v, cached := s.memo["standardized_compound"]; cached {
		if v == nil {
			return nil, nil
		}
		return v.(*Compound), nil
	}
	cid := s.StandardizedCID()
	if cid == 0 {
		s.memo["standardized_compound"] = nil
		return nil, nil
	}
	if s.client == nil {
		return nil, fmt.Errorf("pubchem: substance %d is not attached to a client", s.SID())
	}
	compound, err := s.client.CompoundFromCID(ctx, cid)
	if err != nil {
		return nil, err
	}
	s.memo["standardized_compound"] = compound
	return compound, nil
}

// DepositedCompound returns a Compound built from the unstandardized
// structure as deposited. It has no CID and carries few properties.
func (s *Substance) DepositedCompound() (*Compound, error) {
	for _, c := range s.record.Compounds {
		if c.ID.Type != nil && *c.ID.Type == CompoundIDDeposited {
			return newCompound(c)
		}
	}
	return nil, nil
}

// CIDs returns all CIDs for compounds produced when this substance
// was standardized. Requires an extra request; the result is memoized.
func (s *Substance) CIDs(ctx context.Context) ([]int, error) {
	return s.relatedIDs(ctx, "cids", OperationCIDs)
}

// AIDs returns all AIDs for assays this substance appears in.
// Requires an extra request; the result is memoized.
func (s *Substance) AIDs(ctx context.Context) ([]int, error) {
	return s.relatedIDs(ctx, "aids", OperationAIDs)
}

func (s *Substance) relatedIDs(ctx context.Context, name string, op Operation) ([]int, error) {
	if v, cached := s.memo[name]; cached {
		return v.([]int), nil
	}
	if s.client == nil {
		return nil, fmt.Errorf("pubchem: substance %d is not attached to a client", s.SID())
	}
	ids, err := s.client.getIDList(ctx, SearchSpec{
		Identifiers: []string{strconv.Itoa(s.SID())},
		Namespace:   NamespaceSID,
		Domain:      DomainSubstance,
		Operation:   op,
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	s.memo[name] = ids
	return ids, nil
}
