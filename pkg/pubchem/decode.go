package pubchem

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chemio/pubchem_sdk_go/internal/pugrest"
)

// Table is the decoded form of a CSV or TXT response: a header row
// (absent for TXT, which carries bare values) and data rows. Type
// coercion of cell values is left to the caller.
type Table struct {
	Columns []string
	Rows    [][]string
}

// DecodedBody is the result of decoding one raw response. Exactly one
// field is set, matching the requested output format.
type DecodedBody struct {
	JSON  json.RawMessage // OutputJSON
	Table *Table          // OutputCSV, OutputTXT
	Bytes []byte          // OutputPNG, OutputSDF
}

// Decode parses a raw response according to the requested output
// format. A status >= 400 becomes a *ServiceError carrying the fault
// embedded in the body, or a message derived from the status alone
// when the body is unparseable. Decode performs no semantic
// validation of field values; that is the mapper's job.
func Decode(raw RawResponse, output OutputFormat) (*DecodedBody, error) {
	if raw.StatusCode >= 400 {
		return nil, serviceError(raw)
	}

	switch output {
	case OutputJSON:
		trimmed := bytes.TrimSpace(raw.Body)
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: invalid JSON body", ErrResponseParse)
		}
		return &DecodedBody{JSON: json.RawMessage(append([]byte(nil), trimmed...))}, nil
	case OutputCSV:
		table, err := decodeCSV(raw.Body)
		if err != nil {
			return nil, err
		}
		return &DecodedBody{Table: table}, nil
	case OutputTXT:
		return &DecodedBody{Table: decodeTXT(raw.Body)}, nil
	case OutputPNG, OutputSDF:
		return &DecodedBody{Bytes: append([]byte(nil), raw.Body...)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", ErrResponseParse, output)
	}
}

// serviceError builds the *ServiceError for a non-2xx response.
func serviceError(raw RawResponse) error {
	if fault, ok := pugrest.ExtractFault(raw.Body); ok {
		return &ServiceError{
			StatusCode: raw.StatusCode,
			Code:       fault.Code,
			Message:    fault.FullMessage(),
		}
	}
	return &ServiceError{
		StatusCode: raw.StatusCode,
		Message:    fmt.Sprintf("%d error", raw.StatusCode),
	}
}

func decodeCSV(body []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

func decodeTXT(body []byte) *Table {
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		rows = append(rows, []string{line})
	}
	return &Table{Rows: rows}
}

// decodeCompounds maps a decoded JSON body onto Compound domain
// objects, one per PC_Compounds entry, preserving response order.
// A single malformed record aborts the whole decode.
func decodeCompounds(body json.RawMessage) ([]*Compound, error) {
	var list compoundList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	compounds := make([]*Compound, 0, len(list.Compounds))
	for i, record := range list.Compounds {
		c, err := newCompound(record)
		if err != nil {
			return nil, fmt.Errorf("record %d (cid %s): %w", i, describeCID(record), err)
		}
		compounds = append(compounds, c)
	}
	return compounds, nil
}

func describeCID(record CompoundRecord) string {
	if record.ID.ID.CID != nil {
		return fmt.Sprintf("%d", *record.ID.ID.CID)
	}
	return "unknown"
}

// decodeSubstances maps a decoded JSON body onto Substance domain
// objects, preserving response order.
func decodeSubstances(body json.RawMessage) ([]*Substance, error) {
	var list substanceList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	substances := make([]*Substance, 0, len(list.Substances))
	for i, record := range list.Substances {
		s, err := newSubstance(record)
		if err != nil {
			return nil, fmt.Errorf("record %d (sid %d): %w", i, record.SID.ID, err)
		}
		substances = append(substances, s)
	}
	return substances, nil
}

// decodeAssays maps a decoded JSON body onto Assay domain objects.
func decodeAssays(body json.RawMessage) ([]*Assay, error) {
	var list assayList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	assays := make([]*Assay, 0, len(list.Assays))
	for _, record := range list.Assays {
		assays = append(assays, newAssay(record))
	}
	return assays, nil
}
