package pubchem_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemio/pubchem_sdk_go/pkg/pubchem"
)

func newSafetyClient(t *testing.T) *pubchem.Client {
	t.Helper()
	guaiacol := loadFixture(t, "safety_1254.json")
	water := loadFixture(t, "safety_no_pictograms.json")

	mux := http.NewServeMux()
	mux.HandleFunc("/pug_view/data/compound/1254/JSON", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("heading"); got != "Safety and Hazards" {
			t.Errorf("heading = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(guaiacol)
	})
	mux.HandleFunc("/pug_view/data/compound/962/JSON", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(water)
	})
	mux.HandleFunc("/pug_view/data/compound/702/JSON", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Fault":{"Code":"PUGVIEW.NotFound","Message":"No data found"}}`))
	})
	mux.HandleFunc("/pug_view/data/compound/313/JSON", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Record":{"RecordNumber":313}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := pubchem.New(
		pubchem.WithBaseURL(srv.URL+"/pug"),
		pubchem.WithViewURL(srv.URL+"/pug_view"),
	)
	require.NoError(t, err)
	return client
}

func TestSafetyDataHazardCodes(t *testing.T) {
	client := newSafetyClient(t)
	data, err := client.SafetyData(context.Background(), 1254)
	require.NoError(t, err)

	// Codes keep first-seen order; repeats across depositors collapse.
	assert.Equal(t, []string{"H315", "H318", "H319", "H335", "H402", "H412"}, data.Hazard)
}

func TestSafetyDataPictogramsAndPrecautionary(t *testing.T) {
	client := newSafetyClient(t)
	data, err := client.SafetyData(context.Background(), 1254)
	require.NoError(t, err)

	require.Len(t, data.Pictograms, 1)
	assert.Equal(t, "https://pubchem.ncbi.nlm.nih.gov/images/ghs/GHS07.svg", data.Pictograms[0].Icon)
	assert.Equal(t, "Irritant", data.Pictograms[0].Label)

	assert.Equal(t, []string{
		"P261", "P264", "P271", "P280", "P302+P352", "P305+P351+P338", "P501",
		"P337+P313",
	}, data.Precautionary)
}

func TestSafetyDataWithoutPictogramSection(t *testing.T) {
	client := newSafetyClient(t)
	data, err := client.SafetyData(context.Background(), 962)
	require.NoError(t, err)

	assert.Empty(t, data.Pictograms)
	assert.Empty(t, data.Precautionary)
	assert.Equal(t, []string{"H227"}, data.Hazard)
}

func TestSafetyDataNotFoundMeansNoData(t *testing.T) {
	client := newSafetyClient(t)
	data, err := client.SafetyData(context.Background(), 702)
	require.NoError(t, err)

	assert.Empty(t, data.Pictograms)
	assert.Empty(t, data.Hazard)
	assert.Empty(t, data.Precautionary)
}

func TestSafetyDataMalformedLayout(t *testing.T) {
	client := newSafetyClient(t)
	_, err := client.SafetyData(context.Background(), 313)
	assert.True(t, errors.Is(err, pubchem.ErrSafetyDataParse), "err = %v", err)
}

func TestSafetyDataRejectsNonPositiveCID(t *testing.T) {
	client := newSafetyClient(t)
	_, err := client.SafetyData(context.Background(), 0)
	assert.True(t, errors.Is(err, pubchem.ErrInvalidIdentifier), "err = %v", err)
}
