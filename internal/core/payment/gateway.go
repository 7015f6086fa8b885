// Package payment 外部支付网关客户端（merchant 头鉴权的 JSON POST）
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
)

type Options struct {
	URL            string
	MerchantID     string
	MerchantSecret string
	APIKey         string
	Timeout        time.Duration
}

type Request struct {
	OrderNo       string          `json:"orderNo"`
	RefNo         string          `json:"refNo"`
	ProductDetail string          `json:"productDetail"`
	CustomerEmail string          `json:"customeremail"`
	CurrencyCode  string          `json:"cc"`
	Total         decimal.Decimal `json:"total"`
	Lang          string          `json:"lang"`
	Channel       string          `json:"channel"`
	PostBackURL   string          `json:"postbackurl,omitempty"`
}

// Result 网关返回数组的第一项
type Result struct {
	OrderNo       string          `json:"OrderNo"`
	ReferenceNo   string          `json:"ReferenceNo"`
	ProductDetail string          `json:"ProductDetail"`
	CustomerEmail string          `json:"CustomerEmail"`
	CurrencyCode  string          `json:"CurrencyCode"`
	Total         decimal.Decimal `json:"Total"`
	Lang          string          `json:"Lang"`
	Channel       string          `json:"Channel"`
	PostBackURL   string          `json:"PostBackUrl"`
	Status        string          `json:"Status"`
	StatusName    string          `json:"StatusName"`
}

type Gateway interface {
	Initiate(ctx context.Context, req Request) (*Result, error)
}

type Client struct {
	opt  Options
	http *http.Client
}

func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return &Client{opt: o, http: &http.Client{Timeout: o.Timeout}}
}

func (c *Client) Initiate(ctx context.Context, in Request) (*Result, error) {
	if c.opt.URL == "" || c.opt.MerchantID == "" || c.opt.MerchantSecret == "" || c.opt.APIKey == "" {
		return nil, apperr.Internal("payment configuration is missing", nil)
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, apperr.Internal("encode payment request failed", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opt.URL, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internal("build payment request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("merchantId", c.opt.MerchantID)
	req.Header.Set("merchantSecretKey", c.opt.MerchantSecret)
	req.Header.Set("apikey", c.opt.APIKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Upstream("payment gateway unreachable", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream("read payment gateway response failed", err)
	}
	if res.StatusCode/100 != 2 {
		return nil, apperr.Upstream("payment gateway error", fmt.Errorf("status %d: %s", res.StatusCode, raw))
	}
	var out []Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperr.Upstream("invalid response from payment gateway", err)
	}
	if len(out) == 0 {
		return nil, apperr.Upstream("invalid response from payment gateway", fmt.Errorf("empty result"))
	}
	return &out[0], nil
}
