package backend

import (
	"context"
	"net/http"

	"booking_web/internal/domain"
)

func (c *Client) Login(ctx context.Context, username, password string) (domain.AuthTokens, error) {
	var out domain.AuthTokens
	body := map[string]string{"username": username, "password": password}
	return out, c.call(ctx, http.MethodPost, "/auth/login", "/auth/login", nil, body, &out)
}

func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return c.call(ctx, http.MethodPost, "/auth/logout", "/auth/logout", nil, body, nil)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.AuthTokens, error) {
	var out domain.AuthTokens
	body := map[string]string{"refreshToken": refreshToken}
	return out, c.call(ctx, http.MethodPost, "/auth/refresh", "/auth/refresh", nil, body, &out)
}

func (c *Client) Verify(ctx context.Context, token string) (domain.TokenCheck, error) {
	var out domain.TokenCheck
	body := map[string]string{"token": token}
	return out, c.call(ctx, http.MethodPost, "/auth/verify", "/auth/verify", nil, body, &out)
}

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	return out, c.call(ctx, http.MethodGet, "/users/me", "/users/me", nil, nil, &out)
}
