package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eonwallet/walletcore/internal/gateway"
	"github.com/eonwallet/walletcore/internal/models"
)

// gatewayClient implements Client over any Gateway (mock or HTTP).
type gatewayClient struct {
	gw gateway.Gateway
}

// NewClient wraps the given gateway in the typed API surface.
func NewClient(gw gateway.Gateway) Client {
	return &gatewayClient{gw: gw}
}

type loginData struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *gatewayClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	resp, err := c.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   gateway.LoginPath,
		Body:   models.LoginRequest{Email: email, Password: password},
	})
	if err != nil {
		return nil, "", err
	}

	var data loginData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, "", fmt.Errorf("decode login data: %w", err)
	}
	return &data.User, data.Token, nil
}

func (c *gatewayClient) Slides(ctx context.Context) ([]models.Slide, error) {
	resp, err := c.gw.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   gateway.SlidesPath,
	})
	if err != nil {
		return nil, err
	}

	var slides []models.Slide
	if err := json.Unmarshal(resp.Data, &slides); err != nil {
		return nil, fmt.Errorf("decode slides: %w", err)
	}
	return slides, nil
}

func (c *gatewayClient) SubmitApplication(ctx context.Context, req models.CardApplicationRequest) (*models.ApplicationRecord, error) {
	resp, err := c.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   gateway.CardApplicationPath,
		Body:   req,
	})
	if err != nil {
		return nil, err
	}

	var record models.ApplicationRecord
	if err := json.Unmarshal(resp.Data, &record); err != nil {
		return nil, fmt.Errorf("decode application record: %w", err)
	}
	return &record, nil
}
