// Package rpc is a minimal client for the Tezos node RPC endpoints needed to
// send a transaction: chain queries, simulation, forging, preapply and injection.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/pkg/httpclient"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
)

const (
	DefaultChain   = "main"
	DefaultTimeout = 30 * time.Second
)

var (
	forgedBytesPattern = regexp.MustCompile(`^[a-f0-9]+$`)
	blockHashPattern   = regexp.MustCompile(`^B[1-9A-HJ-NP-Za-km-z]{50}$`)
)

type Config struct {
	// Chain is the chain alias or id used in paths, "main" by default.
	Chain   string        `mapstructure:"chain"`
	Debug   bool          `mapstructure:"debug"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Client struct {
	http  *httpclient.Client
	chain string
}

func New(baseURL string, conf Config) (*Client, error) {
	httpClient, err := httpclient.New(baseURL, httpclient.Config{
		Debug:   conf.Debug,
		Timeout: utils.Default(conf.Timeout, DefaultTimeout),
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, errors.Wrap(errs.InvalidArgument, err.Error())
	}
	return &Client{
		http:  httpClient,
		chain: utils.Default(conf.Chain, DefaultChain),
	}, nil
}

// Chain returns the chain the client talks to.
func (c *Client) Chain() string {
	return c.chain
}

func (c *Client) headPath(suffix string) string {
	return fmt.Sprintf("/chains/%s/blocks/head%s", c.chain, suffix)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.Get(ctx, path, httpclient.RequestOptions{})
	if err != nil {
		return errors.Mark(errors.Wrap(err, "can't reach node"), errs.Unavailable)
	}
	return decode(resp, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(errs.InternalError, "can't serialize request body: %v", err)
	}
	resp, err := c.http.Post(ctx, path, httpclient.RequestOptions{Body: body, Query: query})
	if err != nil {
		return errors.Mark(errors.Wrap(err, "can't reach node"), errs.Unavailable)
	}
	return decode(resp, out)
}

func decode(resp *httpclient.HttpResponse, out any) error {
	if !resp.IsSuccess() {
		return errors.WithStack(newError(resp))
	}
	if err := resp.UnmarshalBody(out); err != nil {
		return errors.Mark(err, errs.Unavailable)
	}
	return nil
}

// HeadHash returns the hash of the current head block.
func (c *Client) HeadHash(ctx context.Context) (string, error) {
	var hash string
	if err := c.get(ctx, c.headPath("/hash"), &hash); err != nil {
		return "", errors.Wrap(err, "can't get head hash")
	}
	if !blockHashPattern.MatchString(hash) {
		return "", errors.Mark(errors.Errorf("node returned invalid block hash %q", hash), errs.Unavailable)
	}
	return hash, nil
}

// Head returns the header of the current head block.
func (c *Client) Head(ctx context.Context) (BlockHeader, error) {
	var header BlockHeader
	if err := c.get(ctx, c.headPath("/header"), &header); err != nil {
		return BlockHeader{}, errors.Wrap(err, "can't get head header")
	}
	return header, nil
}

func (c *Client) ChainID(ctx context.Context) (string, error) {
	var chainID string
	if err := c.get(ctx, fmt.Sprintf("/chains/%s/chain_id", c.chain), &chainID); err != nil {
		return "", errors.Wrap(err, "can't get chain id")
	}
	return chainID, nil
}

func (c *Client) Protocols(ctx context.Context) (Protocols, error) {
	var protocols Protocols
	if err := c.get(ctx, c.headPath("/protocols"), &protocols); err != nil {
		return Protocols{}, errors.Wrap(err, "can't get protocols")
	}
	return protocols, nil
}

func (c *Client) Constants(ctx context.Context) (Constants, error) {
	var constants Constants
	if err := c.get(ctx, c.headPath("/context/constants"), &constants); err != nil {
		return Constants{}, errors.Wrap(err, "can't get constants")
	}
	return constants, nil
}

// Counter returns the current counter of an implicit account. The next operation must use Counter+1.
func (c *Client) Counter(ctx context.Context, address string) (int64, error) {
	if address == "" {
		return 0, errors.Wrap(errs.InvalidArgument, "address is required")
	}
	var counter operation.Int
	path := c.headPath(fmt.Sprintf("/context/contracts/%s/counter", url.PathEscape(address)))
	if err := c.get(ctx, path, &counter); err != nil {
		return 0, errors.Wrapf(err, "can't get counter of %s", address)
	}
	return counter.Int64(), nil
}

type runOperationRequest struct {
	Operation operation.Envelope `json:"operation"`
	ChainID   string             `json:"chain_id"`
}

// RunOperation simulates an operation without checking its signature.
func (c *Client) RunOperation(ctx context.Context, envelope operation.Envelope, chainID string) (OperationResult, error) {
	var result OperationResult
	req := runOperationRequest{Operation: envelope, ChainID: chainID}
	if err := c.post(ctx, c.headPath("/helpers/scripts/run_operation"), nil, req, &result); err != nil {
		return OperationResult{}, errors.Wrap(err, "can't run operation")
	}
	return result, nil
}

// Forge returns the binary encoding of an unsigned operation as lowercase hex.
func (c *Client) Forge(ctx context.Context, envelope operation.Envelope) (string, error) {
	// forging works on the unsigned part only
	envelope.Signature = ""
	envelope.Protocol = ""

	var forged string
	if err := c.post(ctx, c.headPath("/helpers/forge/operations"), nil, envelope, &forged); err != nil {
		return "", errors.Wrap(err, "can't forge operation")
	}
	if !forgedBytesPattern.MatchString(forged) {
		return "", errors.Mark(errors.Errorf("node returned invalid forged bytes %q", forged), errs.Unavailable)
	}
	return forged, nil
}

// Preapply validates signed operations against the head block. Envelopes must carry protocol and signature.
func (c *Client) Preapply(ctx context.Context, envelopes ...operation.Envelope) ([]OperationResult, error) {
	for _, envelope := range envelopes {
		if envelope.Protocol == "" || !envelope.IsSigned() {
			return nil, errors.Wrap(errs.InvalidArgument, "preapply requires protocol and signature")
		}
	}
	var results []OperationResult
	if err := c.post(ctx, c.headPath("/helpers/preapply/operations"), nil, envelopes, &results); err != nil {
		return nil, errors.Wrap(err, "can't preapply operations")
	}
	return results, nil
}

// Inject broadcasts a signed operation (forged bytes followed by the raw signature, hex) and returns its hash.
func (c *Client) Inject(ctx context.Context, signedHex string) (string, error) {
	if !forgedBytesPattern.MatchString(signedHex) {
		return "", errors.Wrap(errs.InvalidArgument, "signed operation must be lowercase hex")
	}
	var opHash string
	query := url.Values{"chain": {c.chain}}
	if err := c.post(ctx, "/injection/operation", query, signedHex, &opHash); err != nil {
		return "", errors.Wrap(err, "can't inject operation")
	}
	return opHash, nil
}
