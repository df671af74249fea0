// Package uniprot fetches UniProt entries over HTTP as a tab stream
// that feeds straight into the csvio codec.
package uniprot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/csvio"
	"github.com/tlunder/biotext/pkg/record"
)

// DefaultBaseURL is the UniProt query endpoint.
const DefaultBaseURL = "https://www.uniprot.org/uniprot/"

// columns asks the endpoint for exactly the csvio column vocabulary,
// in write order.
const columns = "version(sequence),existence,mass,length,genes(PREFERRED)," +
	"id,entry name,protein names,organism,proteomes,sequence,organism-id"

// Client queries UniProt. The zero value is not usable; call New.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New returns a Client with a sane timeout. Tests may swap HTTP for a
// mock transport.
func New() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		BaseURL: DefaultBaseURL,
	}
}

// Fetch runs the query and returns the raw tab-format response body.
// The caller owns the returned body.
func (c *Client) Fetch(ctx context.Context, query string) (io.ReadCloser, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("format", "tab")
	q.Set("columns", columns)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, codec.Errorf(codec.KindIO, "uniprot query returned %s", resp.Status)
	}
	return resp.Body, nil
}

// FetchRecords runs the query and decodes the response under the
// given policy.
func (c *Client) FetchRecords(ctx context.Context, query string, policy codec.Policy) ([]*record.UniProt, error) {
	body, err := c.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return csvio.Codec{Policy: policy}.FromStream(body)
}

// FetchAccession fetches a single entry by accession.
func (c *Client) FetchAccession(ctx context.Context, acc string) (*record.UniProt, error) {
	recs, err := c.FetchRecords(ctx, fmt.Sprintf("accession:%s", acc), codec.Default)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, codec.Errorf(codec.KindInvalidInput, "no entry for accession %q", acc)
	}
	return recs[0], nil
}
