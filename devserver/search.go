package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"
)

// SearchService answers catalog searches. When ELASTICSEARCH_HOST is set and
// reachable it queries the product index; otherwise it degrades to a LIKE
// query against the store. The SDK sees the same response either way.
type SearchService struct {
	client *elasticsearch.Client
	index  string
	db     *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	s := &SearchService{db: db, index: searchIndex()}

	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return s
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return s
	}
	s.client = client
	return s
}

func searchIndex() string {
	if idx := os.Getenv("ELASTICSEARCH_INDEX"); idx != "" {
		return idx
	}
	return "buildmart_products"
}

// Search returns matching product IDs, most relevant first.
func (s *SearchService) Search(ctx context.Context, term string, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 20
	}
	if s.client != nil {
		ids, err := s.searchES(ctx, term, limit)
		if err == nil {
			return ids, nil
		}
		// ES down mid-run: fall through to the store
	}
	return s.searchLike(term, limit)
}

func (s *SearchService) searchES(ctx context.Context, term string, limit int) ([]uint, error) {
	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  term,
				"fields": []string{"name^3", "sku^2", "brand", "description"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		var id uint
		if _, err := fmt.Sscanf(h.ID, "%d", &id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *SearchService) searchLike(term string, limit int) ([]uint, error) {
	pattern := "%" + term + "%"
	var ids []uint
	err := s.db.Model(&Product{}).
		Where("active = ?", true).
		Where("name LIKE ? OR sku LIKE ? OR brand LIKE ? OR description LIKE ?", pattern, pattern, pattern, pattern).
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}
