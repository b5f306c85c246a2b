package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/catalog"
	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/ledger"
	"github.com/vantol/PackForge_Go/internal/lottery"
	"github.com/vantol/PackForge_Go/internal/pack"
)

func testAssembler(t *testing.T) (pack.Assembler, ledger.Service, *catalog.Index) {
	t.Helper()
	var cards []domain.Card
	for _, role := range domain.AllRoles {
		for i := 0; i < 6; i++ {
			cards = append(cards, domain.Card{
				Name:   fmt.Sprintf("%s-%d", role, i),
				Season: 2001,
				Tier:   4 + i%4,
				Role:   role,
			})
		}
	}
	idx, err := catalog.NewIndex(&catalog.Config{Cards: cards})
	require.NoError(t, err)
	led := ledger.NewService(ledger.NewMemoryRepository())
	return pack.NewAssembler(lottery.NewServiceWithWeights(idx, led, lottery.DefaultTierWeights, 3), led), led, idx
}

func TestHandleOpenPack(t *testing.T) {
	InitValidator()
	assembler, _, _ := testAssembler(t)
	h := HandleOpenPack(assembler, nil)

	t.Run("bonus pack", func(t *testing.T) {
		body := `{"userId":"user1","shape":"bonus"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pack/open", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp OpenPackResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Cards, domain.PackSize)
		assert.False(t, resp.Shortfall)
	})

	t.Run("starter pack", func(t *testing.T) {
		body := `{"userId":"user2","shape":"starter","starterIndex":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pack/open", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp OpenPackResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Cards, domain.PackSize)
	})

	t.Run("invalid shape", func(t *testing.T) {
		body := `{"userId":"user3","shape":"golden"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pack/open", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing user", func(t *testing.T) {
		body := `{"shape":"bonus"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pack/open", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pack/open", strings.NewReader("{"))
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetCatalogStats(t *testing.T) {
	assembler, led, idx := testAssembler(t)
	h := HandleGetCatalogStats(led, idx)

	// Issue one pack so the stats move off zero
	_, err := assembler.OpenBonus(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "user1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/stats", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.LedgerStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, domain.PackSize, stats.Issued)
	assert.Equal(t, idx.Size()-domain.PackSize, stats.Available)
}

func TestHandleGetOwnerLedger(t *testing.T) {
	assembler, led, _ := testAssembler(t)
	h := HandleGetOwnerLedger(led)

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	_, err := assembler.OpenBonus(ctx, "user1")
	require.NoError(t, err)

	t.Run("entries for owner", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/owner?userId=user1", nil)
		rec := httptest.NewRecorder()

		h(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp OwnerLedgerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Entries, domain.PackSize)
	})

	t.Run("missing userId", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/owner", nil)
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
