package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Pictogram is one GHS hazard pictogram: the icon URL and its
// human-readable label.
type Pictogram struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// SafetyData holds the GHS classification reported for a compound:
// pictograms, hazard statement codes (H315, ...) and precautionary
// statement codes (P264, P305+P351+P338, ...). Codes appear in
// first-seen order with duplicates across reporting sources removed.
type SafetyData struct {
	Pictograms    []Pictogram `json:"pictograms"`
	Hazard        []string    `json:"hazard"`
	Precautionary []string    `json:"precautionary"`
}

var (
	hazardCodeRe        = regexp.MustCompile(`^H\d{3}`)
	precautionaryCodeRe = regexp.MustCompile(`P\d{3}(?:\+P\d{3})*`)
)

// View responses nest sections recursively; each section carries
// information entries whose values are markup-annotated strings.
type viewRecord struct {
	Record struct {
		RecordNumber int           `json:"RecordNumber"`
		Section      []viewSection `json:"Section"`
	} `json:"Record"`
}

type viewSection struct {
	TOCHeading  string            `json:"TOCHeading"`
	Information []viewInformation `json:"Information"`
	Section     []viewSection     `json:"Section"`
}

type viewInformation struct {
	Name  string `json:"Name"`
	Value struct {
		StringWithMarkup []struct {
			String string `json:"String"`
			Markup []struct {
				URL   string `json:"URL"`
				Type  string `json:"Type"`
				Extra string `json:"Extra"`
			} `json:"Markup"`
		} `json:"StringWithMarkup"`
	} `json:"Value"`
}

// SafetyData retrieves the GHS classification for a compound from the
// PUG View surface. A compound without safety annotations yields an
// empty SafetyData rather than an error.
func (c *Client) SafetyData(ctx context.Context, cid int) (*SafetyData, error) {
	if cid <= 0 {
		return nil, fmt.Errorf("%w: cid %d", ErrInvalidIdentifier, cid)
	}
	query := url.Values{"heading": []string{"Safety and Hazards"}}
	raw, err := c.backend.FetchView(ctx, "data/compound/"+strconv.Itoa(cid)+"/"+string(OutputJSON), query)
	if err != nil {
		return nil, err
	}
	if raw.StatusCode >= 400 {
		err := serviceError(*raw)
		// The view returns 404 for compounds with no safety section.
		var svcErr *ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
			return &SafetyData{}, nil
		}
		return nil, err
	}

	var record viewRecord
	if err := json.Unmarshal(raw.Body, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSafetyDataParse, err)
	}
	if record.Record.Section == nil {
		return nil, fmt.Errorf("%w: response carries no sections", ErrSafetyDataParse)
	}

	data := &SafetyData{}
	seenPictograms := map[string]bool{}
	seenHazard := map[string]bool{}
	seenPrecautionary := map[string]bool{}
	for i := range record.Record.Section {
		collectSafety(&record.Record.Section[i], data, seenPictograms, seenHazard, seenPrecautionary)
	}
	return data, nil
}

// collectSafety walks a section tree and harvests GHS entries. Section
// names vary across depositors, so entries match on keywords rather
// than exact headings.
func collectSafety(section *viewSection, data *SafetyData, seenPictograms, seenHazard, seenPrecautionary map[string]bool) {
	for _, info := range section.Information {
		name := strings.ToLower(info.Name)
		switch {
		case strings.Contains(name, "pictogram"):
			for _, sm := range info.Value.StringWithMarkup {
				for _, markup := range sm.Markup {
					if markup.Type != "Icon" || seenPictograms[markup.URL] {
						continue
					}
					seenPictograms[markup.URL] = true
					data.Pictograms = append(data.Pictograms, Pictogram{Icon: markup.URL, Label: markup.Extra})
				}
			}
		case strings.Contains(name, "hazard statement"):
			for _, sm := range info.Value.StringWithMarkup {
				code := hazardCodeRe.FindString(sm.String)
				if code == "" || seenHazard[code] {
					continue
				}
				seenHazard[code] = true
				data.Hazard = append(data.Hazard, code)
			}
		case strings.Contains(name, "precautionary"):
			for _, sm := range info.Value.StringWithMarkup {
				for _, code := range precautionaryCodeRe.FindAllString(sm.String, -1) {
					if seenPrecautionary[code] {
						continue
					}
					seenPrecautionary[code] = true
					data.Precautionary = append(data.Precautionary, code)
				}
			}
		}
	}
	for i := range section.Section {
		collectSafety(&section.Section[i], data, seenPictograms, seenHazard, seenPrecautionary)
	}
}
