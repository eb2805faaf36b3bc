// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/daemon"
	"github.com/MKhiriev/go-pilot/internal/events"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/utils"
	"github.com/MKhiriev/go-pilot/models"
)

const (
	tokenSubject  = "gpilotctl"
	tokenLifetime = 10 * time.Minute
)

type httpControlAdapter struct {
	client  *utils.HTTPClient
	baseURL string
	token   string

	logger *logger.Logger
}

var _ ControlAdapter = (*httpControlAdapter)(nil)

// NewHTTPControlAdapter builds a client for the daemon at cfg.Address. A
// configured token key signs a short lived bearer token sent with every
// request.
func NewHTTPControlAdapter(cfg config.CtlConfig, logger *logger.Logger) (ControlAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid control address: %w", err)
	}

	var token string
	if cfg.TokenKey != "" {
		token, err = utils.GenerateJWTToken(cfg.TokenIssuer, tokenSubject, tokenLifetime, cfg.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("failed to sign control token: %w", err)
		}
	}

	return &httpControlAdapter{
		client:  utils.NewHTTPClient(baseURL, cfg.Timeout).WithToken(token),
		baseURL: baseURL,
		token:   token,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpControlAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

// do sends the request and decodes a JSON reply into result when given.
func (h *httpControlAdapter) do(req *resty.Request, method, path string, result any) error {
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if err := mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", "httpControlAdapter.do").Str("path", path).Send()
		return err
	}
	return nil
}

func (h *httpControlAdapter) queue(ctx context.Context, path string, body any, params map[string]string) (int64, error) {
	var res models.HandleResponse
	req := h.request(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	if params != nil {
		req.SetPathParams(params)
	}
	if err := h.do(req, http.MethodPost, path, &res); err != nil {
		return 0, err
	}
	return res.Handle, nil
}

func (h *httpControlAdapter) Pause(ctx context.Context, on bool) error {
	req := h.request(ctx).SetHeader("Content-Type", "application/json").SetBody(models.PauseRequest{On: on})
	return h.do(req, http.MethodPost, "/api/daemon/pause", nil)
}

func (h *httpControlAdapter) RereadConfig(ctx context.Context) error {
	return h.do(h.request(ctx), http.MethodPost, "/api/daemon/reread", nil)
}

func (h *httpControlAdapter) Noop(ctx context.Context) error {
	return h.do(h.request(ctx), http.MethodGet, "/api/daemon/noop", nil)
}

func (h *httpControlAdapter) Status(ctx context.Context) (daemon.Status, error) {
	var st daemon.Status
	err := h.do(h.request(ctx), http.MethodGet, "/api/daemon/status", &st)
	return st, err
}

func (h *httpControlAdapter) RequestInstall(ctx context.Context, req models.InstallRequest) (int64, error) {
	return h.queue(ctx, "/api/requests/install", req, nil)
}

func (h *httpControlAdapter) RequestRestore(ctx context.Context, req models.RestoreRequest) (int64, error) {
	return h.queue(ctx, "/api/requests/restore", req, nil)
}

func (h *httpControlAdapter) RequestConduit(ctx context.Context, req models.ConduitRunRequest) (int64, error) {
	return h.queue(ctx, "/api/requests/conduit", req, nil)
}

func (h *httpControlAdapter) RemoveRequest(ctx context.Context, handle int64) error {
	req := h.request(ctx).SetPathParam("handle", strconv.FormatInt(handle, 10))
	return h.do(req, http.MethodDelete, "/api/requests/{handle}", nil)
}

func (h *httpControlAdapter) ListRequests(ctx context.Context) ([]models.Request, error) {
	var reqs []models.Request
	err := h.do(h.request(ctx), http.MethodGet, "/api/requests", &reqs)
	return reqs, err
}

func (h *httpControlAdapter) GetSystemInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return h.queue(ctx, "/api/cradles/{cradle}/sysinfo", req, map[string]string{"cradle": req.Cradle})
}

func (h *httpControlAdapter) GetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return h.queue(ctx, "/api/cradles/{cradle}/userinfo/get", req, map[string]string{"cradle": req.Cradle})
}

func (h *httpControlAdapter) SetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return h.queue(ctx, "/api/cradles/{cradle}/userinfo/set", req, map[string]string{"cradle": req.Cradle})
}

func (h *httpControlAdapter) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := h.do(h.request(ctx), http.MethodGet, "/api/users", &users)
	return users, err
}

func (h *httpControlAdapter) GetCradles(ctx context.Context) ([]models.Device, error) {
	var cradles []models.Device
	err := h.do(h.request(ctx), http.MethodGet, "/api/cradles", &cradles)
	return cradles, err
}

func (h *httpControlAdapter) GetPilots(ctx context.Context) ([]models.Pilot, error) {
	var pilots []models.Pilot
	err := h.do(h.request(ctx), http.MethodGet, "/api/pilots", &pilots)
	return pilots, err
}

func (h *httpControlAdapter) GetPilotIDs(ctx context.Context) ([]uint32, error) {
	var ids []uint32
	err := h.do(h.request(ctx), http.MethodGet, "/api/pilots/ids", &ids)
	return ids, err
}

func (h *httpControlAdapter) GetPilotsByUserName(ctx context.Context, name string) ([]models.Pilot, error) {
	var pilots []models.Pilot
	req := h.request(ctx).SetPathParam("name", name)
	err := h.do(req, http.MethodGet, "/api/pilots/by-user-name/{name}", &pilots)
	return pilots, err
}

func (h *httpControlAdapter) GetPilotsByUserLogin(ctx context.Context, login string) ([]models.Pilot, error) {
	var pilots []models.Pilot
	req := h.request(ctx).SetPathParam("login", login)
	err := h.do(req, http.MethodGet, "/api/pilots/by-user-login/{login}", &pilots)
	return pilots, err
}

func (h *httpControlAdapter) GetPilotBaseDir(ctx context.Context, pilot string) (string, error) {
	var res struct {
		BaseDir string `json:"basedir"`
	}
	req := h.request(ctx).SetPathParam("pilot", pilot)
	err := h.do(req, http.MethodGet, "/api/pilots/{pilot}/basedir", &res)
	return res.BaseDir, err
}

func (h *httpControlAdapter) GetPilotIDFromName(ctx context.Context, name string) (uint32, error) {
	var res struct {
		ID uint32 `json:"id"`
	}
	req := h.request(ctx).SetPathParam("pilot", name)
	err := h.do(req, http.MethodGet, "/api/pilots/{pilot}/id", &res)
	return res.ID, err
}

func (h *httpControlAdapter) GetPilotNameFromID(ctx context.Context, id uint32) (string, error) {
	var res struct {
		Name string `json:"name"`
	}
	req := h.request(ctx).SetPathParam("id", strconv.FormatUint(uint64(id), 10))
	err := h.do(req, http.MethodGet, "/api/pilots/id/{id}/name", &res)
	return res.Name, err
}

func (h *httpControlAdapter) GetDatabasesFromCache(ctx context.Context, pilot string) ([]models.DBInfo, error) {
	var dbs []models.DBInfo
	req := h.request(ctx).SetPathParam("pilot", pilot)
	err := h.do(req, http.MethodGet, "/api/pilots/{pilot}/databases", &dbs)
	return dbs, err
}

func (h *httpControlAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpControlAdapter) Watch(ctx context.Context, fn func(events.Event) error) error {
	wsURL := "ws" + strings.TrimPrefix(h.baseURL, "http") + "/api/events"

	opts := &websocket.DialOptions{HTTPHeader: http.Header{}}
	if h.token != "" {
		opts.HTTPHeader.Set("Authorization", "Bearer "+h.token)
	}

	conn, resp, err := websocket.Dial(ctx, wsURL, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("event stream closed: %w", err)
		}

		var ev events.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			h.logger.Debug().Err(err).Str("func", "httpControlAdapter.Watch").Msg("skipping undecodable event")
			continue
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}
