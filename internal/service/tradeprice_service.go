package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marryplan/marryplan-server/internal/config"
	"github.com/marryplan/marryplan-server/internal/domain"
	"github.com/marryplan/marryplan-server/internal/persistence"
	apperrors "github.com/marryplan/marryplan-server/pkg/util"
)

var (
	regionCodePattern = regexp.MustCompile(`^\d{5}$`)
	dealMonthPattern  = regexp.MustCompile(`^\d{6}$`)
)

// TradePriceService looks up settled apartment transactions from the public
// trade-price API and caches responses in Redis. The cache is best effort: a
// cold or unreachable Redis only costs an extra upstream call.
type TradePriceService struct {
	client   *http.Client
	baseURL  string
	key      string
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTradePriceService builds the service.
func NewTradePriceService(cfg config.TradeAPIConfig, cache *persistence.Redis, logger *zap.Logger) *TradePriceService {
	return &TradePriceService{
		client:   &http.Client{Timeout: cfg.Timeout()},
		baseURL:  cfg.BaseURL,
		key:      cfg.ServiceKey,
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

// Lookup returns trades for a legal-dong region code (5 digits) and deal
// month (YYYYMM).
func (s *TradePriceService) Lookup(ctx context.Context, regionCode, dealMonth string) ([]domain.AptTrade, error) {
	if !regionCodePattern.MatchString(regionCode) {
		return nil, apperrors.NewValidationError("region code must be 5 digits", nil)
	}
	if !dealMonthPattern.MatchString(dealMonth) {
		return nil, apperrors.NewValidationError("deal month must be YYYYMM", nil)
	}

	cacheKey := "apt_trades:" + regionCode + ":" + dealMonth
	if trades, ok := s.fromCache(ctx, cacheKey); ok {
		return trades, nil
	}

	trades, err := s.fetch(ctx, regionCode, dealMonth)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, cacheKey, trades)
	return trades, nil
}

func (s *TradePriceService) fromCache(ctx context.Context, key string) ([]domain.AptTrade, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("trade cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var trades []domain.AptTrade
	if err := json.Unmarshal(raw, &trades); err != nil {
		s.logger.Warn("trade cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return trades, true
}

func (s *TradePriceService) toCache(ctx context.Context, key string, trades []domain.AptTrade) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(trades)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("trade cache write failed", zap.Error(err))
	}
}

// tradeAPIResponse mirrors the data.go.kr JSON envelope. Numeric fields
// arrive as strings, and deal amounts carry thousands separators.
type tradeAPIResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []tradeAPIItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type tradeAPIItem struct {
	AptName    string `json:"aptNm"`
	Dong       string `json:"umdNm"`
	Area       string `json:"excluUseAr"`
	Floor      string `json:"floor"`
	DealYear   string `json:"dealYear"`
	DealMonth  string `json:"dealMonth"`
	DealDay    string `json:"dealDay"`
	DealAmount string `json:"dealAmount"`
}

func (s *TradePriceService) fetch(ctx context.Context, regionCode, dealMonth string) ([]domain.AptTrade, error) {
	params := url.Values{}
	params.Set("serviceKey", s.key)
	params.Set("LAWD_CD", regionCode)
	params.Set("DEAL_YMD", dealMonth)
	params.Set("_type", "json")
	params.Set("numOfRows", "1000")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("trade price API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("trade price API returned %d", resp.StatusCode), nil)
	}

	var payload tradeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("trade price API returned malformed payload", err)
	}
	if code := payload.Response.Header.ResultCode; code != "" && code != "00" && code != "000" {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("trade price API error %s: %s", code, payload.Response.Header.ResultMsg), nil)
	}

	trades := make([]domain.AptTrade, 0, len(payload.Response.Body.Items.Item))
	for _, item := range payload.Response.Body.Items.Item {
		trades = append(trades, domain.AptTrade{
			ApartmentName: strings.TrimSpace(item.AptName),
			Dong:          strings.TrimSpace(item.Dong),
			AreaM2:        parseFloat(item.Area),
			Floor:         parseInt(item.Floor),
			DealYear:      parseInt(item.DealYear),
			DealMonth:     parseInt(item.DealMonth),
			DealDay:       parseInt(item.DealDay),
			Amount:        parseAmount(item.DealAmount),
		})
	}
	return trades, nil
}

func parseInt(raw string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(raw))
	return v
}

func parseFloat(raw string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return v
}

// parseAmount handles published amounts like "82,500" (ten-thousand KRW).
func parseAmount(raw string) int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, _ := strconv.ParseInt(cleaned, 10, 64)
	return v
}
