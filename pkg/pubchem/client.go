package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chemio/pubchem_sdk_go/internal/httpx"
	"github.com/chemio/pubchem_sdk_go/internal/pugrest"
	"github.com/chemio/pubchem_sdk_go/pkg/pccache"
)

// Production endpoints of the PUG REST and PUG View services.
const (
	DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultViewURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug_view"
)

// Backend executes one request against the PUG REST (Fetch) or PUG
// View (FetchView) surface. Implementations return a RawResponse for
// every reply the service produced, including faults; only
// network-level failures are errors.
type Backend interface {
	Fetch(ctx context.Context, path string, query url.Values) (*RawResponse, error)
	FetchView(ctx context.Context, path string, query url.Values) (*RawResponse, error)
}

// Option configures a Client.
type Option func(*settings)

type settings struct {
	baseURL      string
	viewURL      string
	httpOpts     []httpx.Option
	pollInterval time.Duration
	maxWait      time.Duration
}

// WithBaseURL overrides the PUG REST endpoint.
func WithBaseURL(u string) Option {
	return func(s *settings) { s.baseURL = u }
}

// WithViewURL overrides the PUG View endpoint used for safety data.
func WithViewURL(u string) Option {
	return func(s *settings) { s.viewURL = u }
}

// WithHTTPClient overrides the http.Client used by the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(s *settings) { s.httpOpts = append(s.httpOpts, httpx.WithHTTPClient(h)) }
}

// WithCache attaches a response cache consulted before each request
// and populated after each successful one.
func WithCache(cache pccache.Cache) Option {
	return func(s *settings) { s.httpOpts = append(s.httpOpts, httpx.WithCache(cache)) }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		h := http.Header{}
		h.Set("User-Agent", ua)
		s.httpOpts = append(s.httpOpts, httpx.WithHeaders(h))
	}
}

// WithLogger enables debug logging of outbound requests.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.httpOpts = append(s.httpOpts, httpx.WithLogger(l)) }
}

// WithPollInterval sets the fixed interval between listkey polls.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) { s.pollInterval = d }
}

// WithMaxWait bounds the total time spent polling one listkey before
// the search fails with ErrAsyncJobTimeout.
func WithMaxWait(d time.Duration) Option {
	return func(s *settings) { s.maxWait = d }
}

// Client provides synchronous access to the PubChem PUG REST service.
// Calls block until the transport returns; the client holds no
// cross-call state beyond the optional response cache handed to the
// transport.
type Client struct {
	backend      Backend
	pollInterval time.Duration
	maxWait      time.Duration
}

// New constructs an HTTP-backed client for the production endpoints.
func New(opts ...Option) (*Client, error) {
	s := applyOptions(opts)
	base, err := httpx.NewClient(s.baseURL, s.httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("pubchem: init transport: %w", err)
	}
	view, err := httpx.NewClient(s.viewURL, s.httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("pubchem: init view transport: %w", err)
	}
	return &Client{
		backend:      &httpBackend{base: base, view: view},
		pollInterval: s.pollInterval,
		maxWait:      s.maxWait,
	}, nil
}

// NewWithBackend allows callers to supply a custom backend (e.g.,
// mocks).
func NewWithBackend(b Backend, opts ...Option) *Client {
	s := applyOptions(opts)
	return &Client{backend: b, pollInterval: s.pollInterval, maxWait: s.maxWait}
}

func applyOptions(opts []Option) *settings {
	s := &settings{
		baseURL:      DefaultBaseURL,
		viewURL:      DefaultViewURL,
		pollInterval: 2 * time.Second,
		maxWait:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchOptions carries the optional knobs shared by the high-level
// lookup helpers.
type SearchOptions struct {
	Domain       Domain
	SearchType   SearchType
	MaxRecords   int
	ListKeyCount int
}

func (o *SearchOptions) domain(fallback Domain) Domain {
	if o != nil && o.Domain != "" {
		return o.Domain
	}
	return fallback
}

func (o *SearchOptions) apply(spec *SearchSpec) {
	if o == nil {
		return
	}
	spec.SearchType = o.SearchType
	spec.MaxRecords = o.MaxRecords
	spec.ListKeyCount = o.ListKeyCount
}

// Do builds, executes and decodes one request. Searches the service
// answers with a listkey are polled at a fixed interval until results
// resolve or the maximum wait is exceeded.
func (c *Client) Do(ctx context.Context, spec SearchSpec) (*DecodedBody, error) {
	if c == nil || c.backend == nil {
		return nil, fmt.Errorf("pubchem: client is nil")
	}
	output := spec.Output
	if output == "" {
		output = OutputJSON
	}

	// Structural searches and formula lookups run asynchronously on
	// the service side.
	if spec.SearchType == "" && spec.Namespace != NamespaceFormula {
		return c.fetchDecoded(ctx, spec, output)
	}

	probe := spec
	probe.Operation = OperationRecord
	probe.Output = OutputJSON
	raw, err := c.fetch(ctx, probe)
	if err != nil {
		return nil, err
	}
	if raw.StatusCode >= 400 {
		return nil, serviceError(*raw)
	}
	key, waiting := pugrest.ExtractListKey(raw.Body)
	if !waiting {
		// The search materialized synchronously.
		if output == OutputJSON && (spec.Operation == "" || spec.Operation == OperationRecord) {
			return Decode(*raw, OutputJSON)
		}
		return c.fetchDecoded(ctx, spec, output)
	}

	poll := SearchSpec{
		Identifiers: []string{key},
		Namespace:   NamespaceListKey,
		Domain:      spec.Domain,
		Operation:   spec.Operation,
		Output:      OutputJSON,
		Properties:  spec.Properties,
	}
	waiter := httpx.NewWaiter(c.pollInterval, c.maxWait)
	for {
		if err := waiter.Wait(ctx); err != nil {
			if errors.Is(err, httpx.ErrWaitExceeded) {
				return nil, fmt.Errorf("%w: listkey %s", ErrAsyncJobTimeout, key)
			}
			return nil, err
		}
		raw, err = c.fetch(ctx, poll)
		if err != nil {
			return nil, err
		}
		if raw.StatusCode >= 400 {
			return nil, serviceError(*raw)
		}
		if next, stillWaiting := pugrest.ExtractListKey(raw.Body); stillWaiting {
			poll.Identifiers = []string{next}
			continue
		}
		break
	}
	if output != OutputJSON {
		poll.Output = output
		return c.fetchDecoded(ctx, poll, output)
	}
	return Decode(*raw, OutputJSON)
}

func (c *Client) fetchDecoded(ctx context.Context, spec SearchSpec, output OutputFormat) (*DecodedBody, error) {
	spec.Output = output
	raw, err := c.fetch(ctx, spec)
	if err != nil {
		return nil, err
	}
	return Decode(*raw, output)
}

// fetch validates the search spec, builds the request and executes it.
// Client-side validation failures surface before any request is sent.
func (c *Client) fetch(ctx context.Context, spec SearchSpec) (*RawResponse, error) {
	path, query, err := Build(spec)
	if err != nil {
		return nil, err
	}
	return c.backend.Fetch(ctx, path, query)
}

// GetCompounds retrieves the compound records matching the
// identifiers, preserving response order.
func (c *Client) GetCompounds(ctx context.Context, identifiers []string, namespace Namespace, opts *SearchOptions) ([]*Compound, error) {
	spec := SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainCompound,
		Operation:   OperationRecord,
		Output:      OutputJSON,
	}
	opts.apply(&spec)
	body, err := c.Do(ctx, spec)
	if err != nil {
		return nil, err
	}
	compounds, err := decodeCompounds(body.JSON)
	if err != nil {
		return nil, err
	}
	for _, compound := range compounds {
		compound.client = c
	}
	return compounds, nil
}

// CompoundFromCID retrieves the single compound record for a CID.
func (c *Client) CompoundFromCID(ctx context.Context, cid int) (*Compound, error) {
	compounds, err := c.GetCompounds(ctx, []string{strconv.Itoa(cid)}, NamespaceCID, nil)
	if err != nil {
		return nil, err
	}
	if len(compounds) == 0 {
		return nil, fmt.Errorf("%w: empty record list for cid %d", ErrMalformedRecord, cid)
	}
	return compounds[0], nil
}

// GetSubstances retrieves the substance records matching the
// identifiers, preserving response order.
func (c *Client) GetSubstances(ctx context.Context, identifiers []string, namespace Namespace, opts *SearchOptions) ([]*Substance, error) {
	spec := SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainSubstance,
		Operation:   OperationRecord,
		Output:      OutputJSON,
	}
	opts.apply(&spec)
	body, err := c.Do(ctx, spec)
	if err != nil {
		return nil, err
	}
	substances, err := decodeSubstances(body.JSON)
	if err != nil {
		return nil, err
	}
	for _, substance := range substances {
		substance.client = c
	}
	return substances, nil
}

// SubstanceFromSID retrieves the single substance record for a SID.
func (c *Client) SubstanceFromSID(ctx context.Context, sid int) (*Substance, error) {
	substances, err := c.GetSubstances(ctx, []string{strconv.Itoa(sid)}, NamespaceSID, nil)
	if err != nil {
		return nil, err
	}
	if len(substances) == 0 {
		return nil, fmt.Errorf("%w: empty record list for sid %d", ErrMalformedRecord, sid)
	}
	return substances[0], nil
}

// GetAssays retrieves the assay description records matching the
// identifiers.
func (c *Client) GetAssays(ctx context.Context, identifiers []string, namespace Namespace) ([]*Assay, error) {
	body, err := c.Do(ctx, SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainAssay,
		Operation:   OperationDescription,
		Output:      OutputJSON,
	})
	if err != nil {
		return nil, err
	}
	return decodeAssays(body.JSON)
}

// AssayFromAID retrieves the single assay record for an AID.
func (c *Client) AssayFromAID(ctx context.Context, aid int) (*Assay, error) {
	assays, err := c.GetAssays(ctx, []string{strconv.Itoa(aid)}, NamespaceAID)
	if err != nil {
		return nil, err
	}
	if len(assays) == 0 {
		return nil, fmt.Errorf("%w: empty record list for aid %d", ErrMalformedRecord, aid)
	}
	return assays[0], nil
}

// PropertyRow is one row of a property table: the CID plus the
// requested property values, keyed by their canonical names.
type PropertyRow map[string]any

// CID returns the row's compound identifier, or 0 when absent.
func (r PropertyRow) CID() int {
	if v, ok := r["CID"]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return 0
}

// GetProperties retrieves the given properties for the matching
// compounds as a table. Property names may use either the service's
// CamelCase form or the underscore form used by Compound accessors.
func (c *Client) GetProperties(ctx context.Context, properties []string, identifiers []string, namespace Namespace, opts *SearchOptions) ([]PropertyRow, error) {
	spec := SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainCompound,
		Operation:   OperationProperty,
		Properties:  properties,
		Output:      OutputJSON,
	}
	opts.apply(&spec)
	body, err := c.Do(ctx, spec)
	if err != nil {
		return nil, err
	}
	var table struct {
		PropertyTable struct {
			Properties []PropertyRow `json:"Properties"`
		} `json:"PropertyTable"`
	}
	if err := json.Unmarshal(body.JSON, &table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	return table.PropertyTable.Properties, nil
}

// SynonymSet groups the synonyms reported for one record.
type SynonymSet struct {
	CID      int
	SID      int
	Synonyms []string
}

// GetSynonyms retrieves the ranked name lists for the matching
// records.
func (c *Client) GetSynonyms(ctx context.Context, identifiers []string, namespace Namespace) ([]SynonymSet, error) {
	body, err := c.Do(ctx, SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainCompound,
		Operation:   OperationSynonyms,
		Output:      OutputJSON,
	})
	if err != nil {
		return nil, err
	}
	var list struct {
		InformationList struct {
			Information []struct {
				CID     int      `json:"CID"`
				SID     int      `json:"SID"`
				Synonym []string `json:"Synonym"`
			} `json:"Information"`
		} `json:"InformationList"`
	}
	if err := json.Unmarshal(body.JSON, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	sets := make([]SynonymSet, 0, len(list.InformationList.Information))
	for _, info := range list.InformationList.Information {
		sets = append(sets, SynonymSet{CID: info.CID, SID: info.SID, Synonyms: info.Synonym})
	}
	return sets, nil
}

// GetCIDs retrieves the compound IDs matching the identifiers.
func (c *Client) GetCIDs(ctx context.Context, identifiers []string, namespace Namespace, opts *SearchOptions) ([]int, error) {
	spec := SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      opts.domain(DomainCompound),
		Operation:   OperationCIDs,
		Output:      OutputJSON,
	}
	opts.apply(&spec)
	return c.getIDList(ctx, spec)
}

// GetSIDs retrieves the substance IDs matching the identifiers.
func (c *Client) GetSIDs(ctx context.Context, identifiers []string, namespace Namespace, opts *SearchOptions) ([]int, error) {
	spec := SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      opts.domain(DomainCompound),
		Operation:   OperationSIDs,
		Output:      OutputJSON,
	}
	opts.apply(&spec)
	return c.getIDList(ctx, spec)
}

// GetAIDs retrieves the assay IDs matching the identifiers.
func (c *Client) GetAIDs(ctx context.Context, identifiers []string, namespace Namespace, opts *SearchOptions) ([]int, error) {
	spec := SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      opts.domain(DomainCompound),
		Operation:   OperationAIDs,
		Output:      OutputJSON,
	}
	opts.apply(&spec)
	return c.getIDList(ctx, spec)
}

// intList accepts either a single integer or an array of integers;
// the service uses both layouts across its identifier lists.
type intList []int

func (l *intList) UnmarshalJSON(data []byte) error {
	var many []int
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one int
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []int{one}
	return nil
}

func (c *Client) getIDList(ctx context.Context, spec SearchSpec) ([]int, error) {
	spec.Output = OutputJSON
	body, err := c.Do(ctx, spec)
	if err != nil {
		return nil, err
	}
	var list struct {
		IdentifierList *struct {
			CID []int `json:"CID"`
			SID []int `json:"SID"`
			AID []int `json:"AID"`
		} `json:"IdentifierList"`
		InformationList *struct {
			Information []struct {
				CID intList `json:"CID"`
				SID intList `json:"SID"`
				AID intList `json:"AID"`
			} `json:"Information"`
		} `json:"InformationList"`
	}
	if err := json.Unmarshal(body.JSON, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}

	pick := func(cid, sid, aid []int) []int {
		switch spec.Operation {
		case OperationCIDs:
			return cid
		case OperationSIDs:
			return sid
		case OperationAIDs:
			return aid
		}
		return nil
	}
	if list.IdentifierList != nil {
		return pick(list.IdentifierList.CID, list.IdentifierList.SID, list.IdentifierList.AID), nil
	}
	if list.InformationList != nil {
		var ids []int
		for _, info := range list.InformationList.Information {
			ids = append(ids, pick(info.CID, info.SID, info.AID)...)
		}
		return ids, nil
	}
	return nil, nil
}

// DescriptionEntry is one record description with its source
// attribution. The first entry for a record typically carries only the
// title; subsequent entries carry the prose.
type DescriptionEntry struct {
	CID         int    `json:"CID"`
	SID         int    `json:"SID"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Source      string `json:"DescriptionSourceName"`
	SourceURL   string `json:"DescriptionURL"`
}

// GetDescriptions retrieves the textual descriptions for the matching
// records.
func (c *Client) GetDescriptions(ctx context.Context, identifiers []string, namespace Namespace, domain Domain) ([]DescriptionEntry, error) {
	if domain == "" {
		domain = DomainCompound
	}
	body, err := c.Do(ctx, SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      domain,
		Operation:   OperationDescription,
		Output:      OutputJSON,
	})
	if err != nil {
		return nil, err
	}
	var list struct {
		InformationList struct {
			Information []DescriptionEntry `json:"Information"`
		} `json:"InformationList"`
	}
	if err := json.Unmarshal(body.JSON, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	return list.InformationList.Information, nil
}

// AllSources returns the names of all current depositors of
// substances or assays.
func (c *Client) AllSources(ctx context.Context, domain Domain) ([]string, error) {
	if domain != DomainSubstance && domain != DomainAssay {
		return nil, fmt.Errorf("%w: sources for domain %q", ErrUnsupportedOperation, domain)
	}
	// The sources listing sits outside the regular domain/namespace
	// pattern: /sources/{substance|assay}/JSON.
	raw, err := c.backend.Fetch(ctx, "sources/"+string(domain)+"/"+string(OutputJSON), nil)
	if err != nil {
		return nil, err
	}
	body, err := Decode(*raw, OutputJSON)
	if err != nil {
		return nil, err
	}
	var list struct {
		InformationList struct {
			SourceName []string `json:"SourceName"`
		} `json:"InformationList"`
	}
	if err := json.Unmarshal(body.JSON, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	return list.InformationList.SourceName, nil
}

// Image retrieves the 2-D structure rendering of the matching record
// as PNG bytes.
func (c *Client) Image(ctx context.Context, identifiers []string, namespace Namespace) ([]byte, error) {
	body, err := c.Do(ctx, SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainCompound,
		Operation:   OperationImage,
		Output:      OutputPNG,
	})
	if err != nil {
		return nil, err
	}
	return body.Bytes, nil
}

// SDF retrieves the matching records in SDF format.
func (c *Client) SDF(ctx context.Context, identifiers []string, namespace Namespace) (string, error) {
	body, err := c.Do(ctx, SearchSpec{
		Identifiers: identifiers,
		Namespace:   namespace,
		Domain:      DomainCompound,
		Operation:   OperationRecord,
		Output:      OutputSDF,
	})
	if err != nil {
		return "", err
	}
	return string(body.Bytes), nil
}

// Download fetches the records in the given output format and writes
// the raw response to path. Existing files are preserved unless
// overwrite is set.
func (c *Client) Download(ctx context.Context, output OutputFormat, path string, spec SearchSpec, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("pubchem: %s already exists; pass overwrite to replace it", path)
		}
	}
	spec.Output = output
	raw, err := c.fetch(ctx, spec)
	if err != nil {
		return err
	}
	if raw.StatusCode >= 400 {
		return serviceError(*raw)
	}
	if err := os.WriteFile(path, raw.Body, 0o644); err != nil {
		return fmt.Errorf("pubchem: write download: %w", err)
	}
	return nil
}

// httpBackend executes requests over the two HTTP transports.
type httpBackend struct {
	base *httpx.Client
	view *httpx.Client
}

func (b *httpBackend) Fetch(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	return fetchWith(ctx, b.base, path, query)
}

func (b *httpBackend) FetchView(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	return fetchWith(ctx, b.view, path, query)
}

func fetchWith(ctx context.Context, client *httpx.Client, path string, query url.Values) (*RawResponse, error) {
	if client == nil {
		return nil, fmt.Errorf("pubchem: http backend not configured")
	}
	resp, err := client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		// Async job envelopes must not be replayed from cache: a
		// cached Waiting body would carry an expired listkey.
		NoCache: query.Get("searchtype") != "" ||
			strings.Contains(path, "/listkey/") ||
			strings.Contains(path, "/formula/"),
	})
	if err != nil {
		var httpErr *httpx.HTTPError
		if errors.As(err, &httpErr) {
			return &RawResponse{StatusCode: httpErr.StatusCode, Body: httpErr.Body}, nil
		}
		return nil, &TransportError{Err: err}
	}
	return &RawResponse{
		StatusCode:  resp.StatusCode,
		Body:        resp.Body,
		ContentType: resp.ContentType,
	}, nil
}
