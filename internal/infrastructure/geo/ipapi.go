package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

const defaultEndpoint = "http://ip-api.com/json"

// IPAPIResolver implements domain.GeoResolver against the ip-api.com
// JSON endpoint. Lookups are best effort with a short timeout; login
// never waits long on geolocation.
type IPAPIResolver struct {
	endpoint string
	client   *http.Client
}

// NewIPAPIResolver creates a new resolver. An empty endpoint selects the
// public ip-api.com service.
func NewIPAPIResolver(endpoint string) domain.GeoResolver {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &IPAPIResolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 3 * time.Second},
	}
}

type ipAPIResponse struct {
	Status     string `json:"status"`
	City       string `json:"city"`
	RegionName string `json:"regionName"`
	Country    string `json:"country"`
}

// Resolve implements domain.GeoResolver
func (r *IPAPIResolver) Resolve(ctx context.Context, ip string) (*domain.GeoLocation, error) {
	if parsed := net.ParseIP(ip); parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() {
		return &domain.GeoLocation{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/"+ip, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo lookup: %w", err)
	}
	defer resp.Body.Close()

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geo lookup decode: %w", err)
	}
	if body.Status != "success" {
		return &domain.GeoLocation{}, nil
	}

	return &domain.GeoLocation{
		City:    body.City,
		Region:  body.RegionName,
		Country: body.Country,
	}, nil
}
