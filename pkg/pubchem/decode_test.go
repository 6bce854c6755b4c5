package pubchem_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chemio/pubchem_sdk_go/pkg/pubchem"
)

func TestDecodeJSON(t *testing.T) {
	body, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 200,
		Body:       []byte("  {\"PC_Compounds\":[]}\n"),
	}, pubchem.OutputJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(body.JSON) != `{"PC_Compounds":[]}` {
		t.Fatalf("JSON = %q", body.JSON)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 200,
		Body:       []byte("<html>not json</html>"),
	}, pubchem.OutputJSON)
	if !errors.Is(err, pubchem.ErrResponseParse) {
		t.Fatalf("Decode error = %v, want ErrResponseParse", err)
	}
}

func TestDecodeCSV(t *testing.T) {
	body, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 200,
		Body:       []byte("\"CID\",\"MolecularWeight\"\n2244,\"180.16\"\n1254,\"124.14\"\n"),
	}, pubchem.OutputCSV)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(body.Table.Columns, []string{"CID", "MolecularWeight"}) {
		t.Fatalf("columns = %v", body.Table.Columns)
	}
	want := [][]string{{"2244", "180.16"}, {"1254", "124.14"}}
	if !reflect.DeepEqual(body.Table.Rows, want) {
		t.Fatalf("rows = %v", body.Table.Rows)
	}
}

func TestDecodeTXT(t *testing.T) {
	body, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 200,
		Body:       []byte("aspirin\nacetylsalicylic acid\n"),
	}, pubchem.OutputTXT)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := [][]string{{"aspirin"}, {"acetylsalicylic acid"}}
	if !reflect.DeepEqual(body.Table.Rows, want) {
		t.Fatalf("rows = %v", body.Table.Rows)
	}
	if len(body.Table.Columns) != 0 {
		t.Fatalf("columns = %v, want none", body.Table.Columns)
	}
}

func TestDecodeFaultEnvelope(t *testing.T) {
	fault := `{"Fault":{"Code":"PUGREST.NotFound","Message":"No CID found","Details":["No CID found that matches the given name"]}}`
	_, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 404,
		Body:       []byte(fault),
	}, pubchem.OutputJSON)

	var svcErr *pubchem.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Decode error = %T, want *ServiceError", err)
	}
	if svcErr.StatusCode != 404 {
		t.Fatalf("StatusCode = %d", svcErr.StatusCode)
	}
	if svcErr.Code != "PUGREST.NotFound" {
		t.Fatalf("Code = %q", svcErr.Code)
	}
	if svcErr.Message != "No CID found: No CID found that matches the given name" {
		t.Fatalf("Message = %q", svcErr.Message)
	}
}

func TestDecodeUnparseableErrorBody(t *testing.T) {
	_, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 503,
		Body:       []byte("<html>Service Unavailable</html>"),
	}, pubchem.OutputJSON)

	var svcErr *pubchem.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Decode error = %T, want *ServiceError", err)
	}
	if svcErr.Message != "503 error" {
		t.Fatalf("Message = %q, want %q", svcErr.Message, "503 error")
	}
	if svcErr.Code != "" {
		t.Fatalf("Code = %q, want empty", svcErr.Code)
	}
}

func TestDecodeErrorTakesPriorityOverFormat(t *testing.T) {
	// A fault reply to a CSV request still decodes the JSON envelope.
	fault := `{"Fault":{"Code":"PUGREST.BadRequest","Message":"bad property"}}`
	_, err := pubchem.Decode(pubchem.RawResponse{
		StatusCode: 400,
		Body:       []byte(fault),
	}, pubchem.OutputCSV)

	var svcErr *pubchem.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Decode error = %T, want *ServiceError", err)
	}
	if svcErr.Code != "PUGREST.BadRequest" {
		t.Fatalf("Code = %q", svcErr.Code)
	}
}
