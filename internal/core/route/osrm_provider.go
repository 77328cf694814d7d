package route

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/util"
)

// DefaultOSRMBaseURL is the public OSRM demo server
const DefaultOSRMBaseURL = "https://router.project-osrm.org"

// OSRMProvider implements RouteProvider against an OSRM-compatible HTTP service
type OSRMProvider struct {
	baseURL    string
	profile    string
	httpClient *http.Client
}

// osrmResponse is the subset of the OSRM route response we read
type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// NewOSRMProvider creates a provider for the given base URL using the driving profile
func NewOSRMProvider(baseURL string) *OSRMProvider {
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetProviderName returns the name of this route provider
func (p *OSRMProvider) GetProviderName() string {
	return "osrm"
}

// Route fetches a driving route from OSRM
func (p *OSRMProvider) Route(ctx context.Context, req model.RouteRequest) (*model.RouteResult, error) {
	src, dst, err := parseEndpoints(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		p.baseURL, p.profile, src.Lng, src.Lat, dst.Lng, dst.Lat)
	util.LogDebugf("Requesting route: %s", url)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed osrmResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse route response: %w", err)
	}

	if parsed.Code == "NoRoute" || (parsed.Code == "Ok" && len(parsed.Routes) == 0) {
		return nil, ErrNoRoute
	}
	if resp.StatusCode != http.StatusOK || parsed.Code != "Ok" {
		return nil, fmt.Errorf("route service returned %d %s: %s", resp.StatusCode, parsed.Code, parsed.Message)
	}

	best := parsed.Routes[0]
	path := make([]model.LatLng, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		path = append(path, model.LatLng{Lat: pair[1], Lng: pair[0]})
	}

	return &model.RouteResult{
		DistanceText:   FormatDistance(best.Distance),
		DurationText:   FormatDuration(best.Duration),
		DistanceMeters: best.Distance,
		DurationSecs:   best.Duration,
		Path:           path,
	}, nil
}
