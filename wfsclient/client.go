// SPDX-License-Identifier: Apache-2.0

package wfsclient

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
)

var (
	ErrEndpointEmpty = errors.New("wfs endpoint address is required")
	ErrVersionEmpty  = errors.New("wfs protocol version is required")
)

var (
	errNonSuccessResponse = errors.New("wfs service responded with a non-success status code")
	errNewRequestFailure  = errors.New("failed creating an HTTP request")
	errDoRequestFailure   = errors.New("http client failed while sending request")
	errReadingBodyFailure = errors.New("failed while reading http response body")
	errXMLUnmarshal       = errors.New("failed unmarshaling XML feature collection")
)

const (
	errWrappedFmt    = "%w: %s"
	errStatusCodeFmt = "%w: received status %v"
)

// Descriptor identifies an upstream WFS borehole-listing service. It is a
// plain serializable value so the model registry can persist it; a live
// client is built lazily through Connect.
type Descriptor struct {
	// Endpoint is the WFS base URL (i.e. https://nvcl.example.org/wfs).
	Endpoint string `json:"endpoint" validate:"required,url"`

	// Version is the WFS protocol version spoken by the endpoint,
	// i.e. "1.1.0" or "2.0.0".
	Version string `json:"version" validate:"required"`
}

// Connect builds a Client for the described service. The HTTP client is
// optional and defaults to http.DefaultClient.
func (d Descriptor) Connect(httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if len(d.Endpoint) == 0 {
		return nil, ErrEndpointEmpty
	}
	if len(d.Version) == 0 {
		return nil, ErrVersionEmpty
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:   httpClient,
		endpoint: d.Endpoint,
		version:  d.Version,
		logger:   logger,
	}, nil
}

// Client is a typed client for the narrow slice of WFS this service
// consumes: listing borehole features.
type Client struct {
	client   *http.Client
	endpoint string
	version  string
	logger   *zap.Logger
}

// GetBoreholeList fetches up to maxFeatures borehole view features from the
// upstream service. Callers bound the call with the context deadline.
func (c *Client) GetBoreholeList(ctx context.Context, maxFeatures int) ([]model.BoreholeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL(maxFeatures), nil)
	if err != nil {
		return nil, fmt.Errorf(errWrappedFmt, errNewRequestFailure, err.Error())
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errWrappedFmt, errDoRequestFailure, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(errStatusCodeFmt, errNonSuccessResponse, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(errWrappedFmt, errReadingBodyFailure, err.Error())
	}
	records, err := parseFeatureCollection(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched borehole list", zap.String("endpoint", c.endpoint), zap.Int("count", len(records)))
	return records, nil
}

func (c *Client) listURL(maxFeatures int) string {
	q := url.Values{}
	q.Set("service", "WFS")
	q.Set("version", c.version)
	q.Set("request", "GetFeature")
	// WFS 2.0 renamed maxFeatures to count
	if strings.HasPrefix(c.version, "2") {
		q.Set("typeNames", "gsmlp:BoreholeView")
		q.Set("count", strconv.Itoa(maxFeatures))
	} else {
		q.Set("typeName", "gsmlp:BoreholeView")
		q.Set("maxFeatures", strconv.Itoa(maxFeatures))
	}
	q.Set("filter", nvclFilter)
	return c.endpoint + "?" + q.Encode()
}

// nvclFilter restricts the listing to boreholes with NVCL scan data.
const nvclFilter = `<ogc:Filter xmlns:ogc="http://www.opengis.net/ogc"><ogc:PropertyIsEqualTo><ogc:PropertyName>gsmlp:nvclCollection</ogc:PropertyName><ogc:Literal>true</ogc:Literal></ogc:PropertyIsEqualTo></ogc:Filter>`

type featureCollection struct {
	Members       []boreholeView `xml:"member>BoreholeView"`
	LegacyMembers []boreholeView `xml:"featureMember>BoreholeView"`
}

type boreholeView struct {
	GMLID          string `xml:"id,attr"`
	Identifier     string `xml:"identifier"`
	Name           string `xml:"name"`
	Pos            string `xml:"shape>Point>pos"`
	DrillingMethod string `xml:"drillingMethod"`
	Operator       string `xml:"operator"`
	Driller        string `xml:"driller"`
	LengthM        string `xml:"boreholeLength_m"`
	ElevationM     string `xml:"elevation_m"`
	Custodian      string `xml:"boreholeMaterialCustodian"`
}

func parseFeatureCollection(body []byte) ([]model.BoreholeRecord, error) {
	var fc featureCollection
	if err := xml.Unmarshal(body, &fc); err != nil {
		return nil, fmt.Errorf(errWrappedFmt, errXMLUnmarshal, err.Error())
	}
	views := fc.Members
	if len(views) == 0 {
		views = fc.LegacyMembers
	}
	records := make([]model.BoreholeRecord, 0, len(views))
	for _, v := range views {
		rec := v.record()
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (v boreholeView) record() model.BoreholeRecord {
	rec := model.BoreholeRecord{
		NVCLID: nvclID(v.Identifier, v.GMLID),
		Name:   v.Name,
	}
	fields := strings.Fields(v.Pos)
	if len(fields) >= 2 {
		rec.Y, _ = strconv.ParseFloat(fields[0], 64)
		rec.X, _ = strconv.ParseFloat(fields[1], 64)
	}
	if len(v.ElevationM) > 0 {
		rec.Z, _ = strconv.ParseFloat(v.ElevationM, 64)
	}
	attrs := map[string]string{}
	for name, value := range map[string]string{
		"identifier":                v.Identifier,
		"name":                      v.Name,
		"drillingMethod":            v.DrillingMethod,
		"operator":                  v.Operator,
		"driller":                   v.Driller,
		"boreholeLength_m":          v.LengthM,
		"elevation_m":               v.ElevationM,
		"boreholeMaterialCustodian": v.Custodian,
	} {
		if len(value) > 0 {
			attrs[name] = value
		}
	}
	if len(attrs) > 0 {
		rec.Attributes = attrs
	}
	return rec
}

// nvclID extracts the internal borehole id from the identifier URI, falling
// back to the gml id attribute when the identifier is absent.
func nvclID(identifier, gmlID string) string {
	if identifier == "" {
		return gmlID
	}
	if i := strings.LastIndexByte(identifier, '/'); i >= 0 && i+1 < len(identifier) {
		return identifier[i+1:]
	}
	return identifier
}
