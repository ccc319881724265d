// Command seed loads a bulk product set into a running storefront through
// the admin API.
//
// Usage: seed [set...]   (defaults to $SEED_SET)
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/seed"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	pkgconfig "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/config"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httpclient"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/logger"
)

// Config is read from SEED_-prefixed environment variables.
type Config struct {
	BaseURL       string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	AdminEmail    string        `env:"ADMIN_EMAIL,required"`
	AdminPassword string        `env:"ADMIN_PASSWORD,required"`
	Set           string        `env:"SET" envDefault:"sample"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries    int           `env:"MAX_RETRIES" envDefault:"3"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

type doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

type seeder struct {
	baseURL string
	client  doer
	logger  *slog.Logger
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type signInResponse struct {
	Tokens struct {
		AccessToken string `json:"access_token"`
	} `json:"tokens"`
}

func main() {
	var cfg Config
	if err := pkgconfig.LoadWithPrefix(&cfg, "SEED_"); err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("storefront-seed", cfg.LogLevel)

	sets := os.Args[1:]
	if len(sets) == 0 {
		sets = []string{cfg.Set}
	}
	for _, set := range sets {
		if !slices.Contains(seed.Names(), set) {
			log.Error("unknown product set",
				slog.String("set", set),
				slog.String("available", strings.Join(seed.Names(), ", ")),
			)
			os.Exit(2)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.Timeout
	clientCfg.MaxRetries = cfg.MaxRetries
	s := &seeder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: httpclient.NewCircuitBreakerClient(
			httpclient.New(clientCfg),
			httpclient.DefaultCircuitBreakerConfig("storefront-admin"),
			log,
		),
		logger: log,
	}

	if err := s.run(ctx, cfg.AdminEmail, cfg.AdminPassword, sets); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run signs in once and loads each set in order, stopping at the first failure.
func (s *seeder) run(ctx context.Context, email, password string, sets []string) error {
	token, err := s.signIn(ctx, email, password)
	if err != nil {
		return err
	}
	for _, set := range sets {
		result, err := s.load(ctx, token, set)
		if err != nil {
			return fmt.Errorf("load %s: %w", set, err)
		}
		s.logger.Info("product set loaded",
			slog.String("set", result.Set),
			slog.Int("inserted", result.Inserted),
			slog.Int("updated", result.Updated),
		)
	}
	return nil
}

func (s *seeder) signIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("encode sign-in request: %w", err)
	}

	var resp signInResponse
	if err := s.call(ctx, http.MethodPost, "/api/v1/auth/signin", "", body, &resp); err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	if resp.Tokens.AccessToken == "" {
		return "", fmt.Errorf("sign in: response carried no access token")
	}
	return resp.Tokens.AccessToken, nil
}

func (s *seeder) load(ctx context.Context, token, set string) (*service.SeedResult, error) {
	var result service.SeedResult
	if err := s.call(ctx, http.MethodPost, "/api/v1/admin/seed/"+set, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *seeder) call(ctx context.Context, method, path, token string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, path)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}
