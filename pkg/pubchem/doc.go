// Package pubchem provides a client for the PubChem PUG REST API. The
// HTTP surface mirrors the service documented at
// https://pubchem.ncbi.nlm.nih.gov/docs/pug-rest. The public Go API
// centres around the Client type, which resolves chemical identifiers
// (names, SMILES, InChI, formulas, CIDs) into Compound, Substance and
// Assay records, property tables, synonym lists and GHS safety data,
// transparently polling the service's asynchronous listkey jobs for
// structural and formula searches.
package pubchem
