package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/domain"
)

func rpcServer(t *testing.T, handle func(method string, params json.RawMessage) (any, *rpcError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64          `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handle(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestHead(t *testing.T) {
	srv := rpcServer(t, func(method string, _ json.RawMessage) (any, *rpcError) {
		assert.Equal(t, MethodHead, method)
		return 42100, nil
	})
	defer srv.Close()

	c, err := NewRPCClient(srv.URL, 137, "0xabc")
	require.NoError(t, err)

	head, err := c.Head(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42100), head)
}

func TestPurchaseEvents(t *testing.T) {
	srv := rpcServer(t, func(method string, params json.RawMessage) (any, *rpcError) {
		assert.Equal(t, MethodPurchaseEvents, method)

		var p eventRangeParams
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, int64(100), p.FromPosition)
		assert.Equal(t, int64(200), p.ToPosition)
		assert.Equal(t, "0xabc", p.ContractAddress)

		return []PurchaseEvent{
			{BuyerAddress: "0xbuyer", ExternalPackID: 7, Price: "5000000", Position: 150, TxRef: "0xt1"},
		}, nil
	})
	defer srv.Close()

	c, err := NewRPCClient(srv.URL, 137, "0xabc")
	require.NoError(t, err)

	events, err := c.PurchaseEvents(context.Background(), 100, 200)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(7), events[0].ExternalPackID)
	assert.Equal(t, int64(150), events[0].Position)
}

func TestPurchaseEventsInvalidRange(t *testing.T) {
	c, err := NewRPCClient("http://localhost:1", 137, "0xabc")
	require.NoError(t, err)

	_, err = c.PurchaseEvents(context.Background(), 10, 5)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMintBatch(t *testing.T) {
	srv := rpcServer(t, func(method string, params json.RawMessage) (any, *rpcError) {
		assert.Equal(t, MethodMintBatch, method)

		var p mintBatchParams
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, []string{"okafor#2001", "silva#2002"}, p.Identities)

		minted := make([]MintedItem, 0, len(p.Identities))
		for i, id := range p.Identities {
			minted = append(minted, MintedItem{
				TokenRef: string(rune('a' + i)), ToAddress: p.ToAddress, Identity: id,
			})
		}
		return MintReceipt{TxRef: "0xmint", Minted: minted}, nil
	})
	defer srv.Close()

	c, err := NewRPCClient(srv.URL, 137, "0xabc")
	require.NoError(t, err)

	receipt, err := c.MintBatch(context.Background(), "0xbuyer", []string{"okafor#2001", "silva#2002"})

	require.NoError(t, err)
	assert.Equal(t, "0xmint", receipt.TxRef)
	require.Len(t, receipt.Minted, 2)
	assert.Equal(t, "okafor#2001", receipt.Minted[0].Identity)
}

func TestMintBatchEmptyIdentities(t *testing.T) {
	c, err := NewRPCClient("http://localhost:1", 137, "0xabc")
	require.NoError(t, err)

	_, err = c.MintBatch(context.Background(), "0xbuyer", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRPCErrorWrapped(t *testing.T) {
	srv := rpcServer(t, func(string, json.RawMessage) (any, *rpcError) {
		return nil, &rpcError{Code: -32000, Message: "head unavailable"}
	})
	defer srv.Close()

	c, err := NewRPCClient(srv.URL, 137, "0xabc")
	require.NoError(t, err)

	_, err = c.Head(context.Background())

	assert.ErrorIs(t, err, domain.ErrExternalCall)
	assert.Contains(t, err.Error(), "head unavailable")
}

func TestHTTPErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewRPCClient(srv.URL, 137, "0xabc")
	require.NoError(t, err)

	_, err = c.Head(context.Background())

	assert.ErrorIs(t, err, domain.ErrExternalCall)
}

func TestNewRPCClientEmptyURL(t *testing.T) {
	_, err := NewRPCClient("", 137, "0xabc")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
