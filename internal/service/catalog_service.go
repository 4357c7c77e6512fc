package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"champ-voting-be/internal/config"
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/pkg/filterutil"

	"github.com/patrickmn/go-cache"
)

const catalogCacheKey = "catalog:champions"

// ICatalogService is the read-mostly client of the external champion
// catalog (Data Dragon). The list is fetched once, cached for the process
// lifetime and refreshable on demand. Failures degrade to an empty list:
// champions become temporarily un-addable, never fatal.
type ICatalogService interface {
	FetchAll(ctx context.Context) []dto.CatalogChampion
	Refresh(ctx context.Context) []dto.CatalogChampion
	Search(ctx context.Context, query string) []dto.CatalogChampion
}

type catalogService struct {
	baseURL string
	locale  string
	client  *http.Client
	cache   *cache.Cache
	logger  logger.ILogger
}

func NewCatalogService(cfg *config.Config, log logger.ILogger) ICatalogService {
	return &catalogService{
		baseURL: cfg.Catalog.BaseURL,
		locale:  cfg.Catalog.Locale,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache.New(cache.NoExpiration, 0),
		logger:  log,
	}
}

func (s *catalogService) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request %s failed with status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (s *catalogService) fetch(ctx context.Context) ([]dto.CatalogChampion, error) {
	var versions []string
	if err := s.getJSON(ctx, s.baseURL+"/api/versions.json", &versions); err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("catalog returned no versions")
	}
	version := versions[0]

	var payload struct {
		Data map[string]struct {
			Id    string `json:"id"`
			Name  string `json:"name"`
			Title string `json:"title"`
			Image struct {
				Full string `json:"full"`
			} `json:"image"`
		} `json:"data"`
	}
	championsURL := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", s.baseURL, version, s.locale)
	if err := s.getJSON(ctx, championsURL, &payload); err != nil {
		return nil, err
	}

	out := make([]dto.CatalogChampion, 0, len(payload.Data))
	for _, c := range payload.Data {
		out = append(out, dto.CatalogChampion{
			Id:       c.Id,
			Name:     c.Name,
			Title:    c.Title,
			ImageURL: fmt.Sprintf("%s/cdn/%s/img/champion/%s", s.baseURL, version, c.Image.Full),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *catalogService) FetchAll(ctx context.Context) []dto.CatalogChampion {
	if cached, found := s.cache.Get(catalogCacheKey); found {
		return cached.([]dto.CatalogChampion)
	}
	return s.Refresh(ctx)
}

func (s *catalogService) Refresh(ctx context.Context) []dto.CatalogChampion {
	champions, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("Catalog", "Catalog fetch failed, serving empty list", map[string]interface{}{
			"error": err.Error(),
		})
		return []dto.CatalogChampion{}
	}
	s.cache.Set(catalogCacheKey, champions, cache.NoExpiration)
	return champions
}

func (s *catalogService) Search(ctx context.Context, query string) []dto.CatalogChampion {
	return filterutil.Filter(query, s.FetchAll(ctx), func(c dto.CatalogChampion) string {
		return c.Name
	})
}
