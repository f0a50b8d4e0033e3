package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marryplan/marryplan-server/internal/config"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

const tradeFixture = `{
  "response": {
    "header": {"resultCode": "000", "resultMsg": "OK"},
    "body": {
      "items": {
        "item": [
          {
            "aptNm": " 한강타워 ",
            "umdNm": "이촌동",
            "excluUseAr": "84.97",
            "floor": "12",
            "dealYear": "2026",
            "dealMonth": "5",
            "dealDay": "14",
            "dealAmount": "182,500"
          },
          {
            "aptNm": "푸른마을",
            "umdNm": "서빙고동",
            "excluUseAr": "59.88",
            "floor": "3",
            "dealYear": "2026",
            "dealMonth": "5",
            "dealDay": "2",
            "dealAmount": "97,000"
          }
        ]
      }
    }
  }
}`

func newTradeService(baseURL string) *TradePriceService {
	return NewTradePriceService(config.TradeAPIConfig{
		BaseURL:        baseURL,
		ServiceKey:     "test-key",
		TimeoutSeconds: 5,
	}, nil, zap.NewNop())
}

func TestTradeLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "11170", r.URL.Query().Get("LAWD_CD"))
		assert.Equal(t, "202605", r.URL.Query().Get("DEAL_YMD"))
		assert.Equal(t, "test-key", r.URL.Query().Get("serviceKey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tradeFixture))
	}))
	defer server.Close()

	trades, err := newTradeService(server.URL).Lookup(context.Background(), "11170", "202605")
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, "한강타워", trades[0].ApartmentName)
	assert.Equal(t, "이촌동", trades[0].Dong)
	assert.InDelta(t, 84.97, trades[0].AreaM2, 0.001)
	assert.Equal(t, 12, trades[0].Floor)
	assert.Equal(t, 2026, trades[0].DealYear)
	assert.Equal(t, 5, trades[0].DealMonth)
	assert.Equal(t, 14, trades[0].DealDay)
	assert.Equal(t, int64(182500), trades[0].Amount)
	assert.Equal(t, int64(97000), trades[1].Amount)
}

func TestTradeLookupValidation(t *testing.T) {
	svc := newTradeService("http://unused.invalid")

	_, err := svc.Lookup(context.Background(), "12", "202605")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.Lookup(context.Background(), "11170", "2026-05")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestTradeLookupUpstreamFailures(t *testing.T) {
	t.Run("non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTradeService(server.URL).Lookup(context.Background(), "11170", "202605")
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", apperrors.ToDomainError(err).Code)
	})

	t.Run("API level error code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"response":{"header":{"resultCode":"30","resultMsg":"SERVICE KEY IS NOT REGISTERED"}}}`))
		}))
		defer server.Close()

		_, err := newTradeService(server.URL).Lookup(context.Background(), "11170", "202605")
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", apperrors.ToDomainError(err).Code)
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<xml>not json</xml>"))
		}))
		defer server.Close()

		_, err := newTradeService(server.URL).Lookup(context.Background(), "11170", "202605")
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", apperrors.ToDomainError(err).Code)
	})
}
