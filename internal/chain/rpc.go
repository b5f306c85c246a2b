package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/vantol/PackForge_Go/internal/domain"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
}

type eventRangeParams struct {
	ContractAddress string `json:"contractAddress"`
	NetworkID       int64  `json:"networkId"`
	FromPosition    int64  `json:"fromPosition"`
	ToPosition      int64  `json:"toPosition"`
}

type mintBatchParams struct {
	ContractAddress string   `json:"contractAddress"`
	NetworkID       int64    `json:"networkId"`
	ToAddress       string   `json:"toAddress"`
	Identities      []string `json:"identities"`
}

type headParams struct {
	ContractAddress string `json:"contractAddress"`
	NetworkID       int64  `json:"networkId"`
}

// rpcClient talks JSON-RPC 2.0 to a gateway node over HTTP
type rpcClient struct {
	url      string
	network  int64
	contract string
	http     *http.Client
	nextID   atomic.Uint64
}

// NewRPCClient creates a Client against the gateway at url, scoped to the
// pack contract on the given network
func NewRPCClient(url string, networkID int64, contractAddress string) (Client, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyRPCURL)
	}
	return &rpcClient{
		url:      url,
		network:  networkID,
		contract: contractAddress,
		http:     &http.Client{Timeout: DefaultRequestTimeout},
	}, nil
}

func (c *rpcClient) Head(ctx context.Context) (int64, error) {
	var head int64
	params := headParams{ContractAddress: c.contract, NetworkID: c.network}
	if err := c.call(ctx, MethodHead, params, &head); err != nil {
		return 0, err
	}
	return head, nil
}

func (c *rpcClient) PurchaseEvents(ctx context.Context, from, to int64) ([]PurchaseEvent, error) {
	if from > to {
		return nil, fmt.Errorf("%w: %s [%d, %d]", domain.ErrInvalidInput, ErrMsgInvalidRange, from, to)
	}

	params := eventRangeParams{
		ContractAddress: c.contract,
		NetworkID:       c.network,
		FromPosition:    from,
		ToPosition:      to,
	}
	var events []PurchaseEvent
	if err := c.call(ctx, MethodPurchaseEvents, params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *rpcClient) MintBatch(ctx context.Context, toAddress string, identities []string) (*MintReceipt, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNoIdentities)
	}

	params := mintBatchParams{
		ContractAddress: c.contract,
		NetworkID:       c.network,
		ToAddress:       toAddress,
		Identities:      identities,
	}
	var receipt MintReceipt
	if err := c.call(ctx, MethodMintBatch, params, &receipt); err != nil {
		return nil, err
	}
	if receipt.TxRef == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrExternalCall, ErrMsgEmptyReceipt)
	}
	return &receipt, nil
}

// call performs one JSON-RPC round trip and decodes result into out.
// Transport and gateway-level failures are wrapped in ErrExternalCall so
// callers can classify them without knowing the transport.
func (c *rpcClient) call(ctx context.Context, method string, params, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExternalCall, ErrMsgRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExternalCall, ErrMsgRequestFailed, err)
	}
	req.Header.Set("Content-Type", ContentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrExternalCall, ErrMsgRequestFailed, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %d for %s", domain.ErrExternalCall, ErrMsgUnexpectedCode, resp.StatusCode, method)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExternalCall, ErrMsgDecodeResponse, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %s %d: %s", domain.ErrExternalCall, ErrMsgRPCError, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExternalCall, ErrMsgDecodeResponse, err)
	}
	return nil
}
