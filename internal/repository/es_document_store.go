package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"TrendPulse/internal/domain/models"
	"TrendPulse/internal/domain/repository"
	"TrendPulse/pkg/elastic"
	applogger "TrendPulse/pkg/logger"
)

// ESDocumentStore implements DocumentStore on Elasticsearch.
type ESDocumentStore struct {
	client    *elastic.Client
	log       *applogger.Logger
	bulkChunk int

	mu             sync.Mutex
	sentimentField string
}

const defaultBulkChunk = 500

// NewESDocumentStore creates an Elasticsearch-backed document store.
func NewESDocumentStore(client *elastic.Client, log *applogger.Logger, bulkChunk int) repository.DocumentStore {
	if bulkChunk <= 0 {
		bulkChunk = defaultBulkChunk
	}
	return &ESDocumentStore{client: client, log: log, bulkChunk: bulkChunk}
}

type esHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

type esSearchResponse struct {
	ScrollID string `json:"_scroll_id"`
	Hits     struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

func (s *ESDocumentStore) ScrollOpen(ctx context.Context, q repository.ScrollQuery) (*repository.DocumentPage, error) {
	s.mu.Lock()
	s.sentimentField = q.SentimentField
	s.mu.Unlock()

	body := `{"query":{"match_all":{}}}`
	if q.Query != "" {
		b, err := json.Marshal(map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{"query": q.Query},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("build scroll query: %w", err)
		}
		body = string(b)
	}

	es := s.client.ES()
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(q.Index),
		es.Search.WithBody(bytes.NewReader([]byte(body))),
		es.Search.WithSize(q.BatchSize),
		es.Search.WithSort("date:asc"),
		es.Search.WithScroll(q.KeepAlive),
	)
	if err != nil {
		return nil, fmt.Errorf("open scroll on %s: %w", q.Index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("open scroll on %s: %s", q.Index, res.Status())
	}

	return s.decodePage(res.Body, q.SentimentField)
}

func (s *ESDocumentStore) ScrollNext(ctx context.Context, cursor string, keepAlive time.Duration) (*repository.DocumentPage, error) {
	s.mu.Lock()
	field := s.sentimentField
	s.mu.Unlock()

	es := s.client.ES()
	res, err := es.Scroll(
		es.Scroll.WithContext(ctx),
		es.Scroll.WithScrollID(cursor),
		es.Scroll.WithScroll(keepAlive),
	)
	if err != nil {
		return nil, fmt.Errorf("scroll next: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, fmt.Errorf("scroll next: cursor expired")
	}
	if res.IsError() {
		return nil, fmt.Errorf("scroll next: %s", res.Status())
	}

	return s.decodePage(res.Body, field)
}

func (s *ESDocumentStore) ScrollClear(ctx context.Context, cursor string) error {
	es := s.client.ES()
	res, err := es.ClearScroll(
		es.ClearScroll.WithContext(ctx),
		es.ClearScroll.WithScrollID(cursor),
	)
	if err != nil {
		return fmt.Errorf("clear scroll: %w", err)
	}
	defer res.Body.Close()
	// A missing cursor already achieved what clearing wanted.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("clear scroll: %s", res.Status())
	}
	return nil
}

func (s *ESDocumentStore) decodePage(body io.Reader, field string) (*repository.DocumentPage, error) {
	var parsed esSearchResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode scroll page: %w", err)
	}

	docs := make([]models.Document, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		doc, err := decodeDocument(hit, field)
		if err != nil {
			s.log.Warn("skipping malformed document",
				applogger.String("id", hit.ID),
				applogger.Error(err),
			)
			continue
		}
		docs = append(docs, doc)
	}

	return &repository.DocumentPage{
		Documents: docs,
		Cursor:    parsed.ScrollID,
		Total:     parsed.Hits.Total.Value,
	}, nil
}

func decodeDocument(hit esHit, sentimentField string) (models.Document, error) {
	var src map[string]json.RawMessage
	if err := json.Unmarshal(hit.Source, &src); err != nil {
		return models.Document{}, fmt.Errorf("decode source: %w", err)
	}

	doc := models.Document{ID: hit.ID}
	if raw, ok := src["message"]; ok {
		if err := json.Unmarshal(raw, &doc.Message); err != nil {
			return models.Document{}, fmt.Errorf("decode message: %w", err)
		}
	}
	if raw, ok := src["date"]; ok {
		ts, err := decodeTimestamp(raw)
		if err != nil {
			return models.Document{}, fmt.Errorf("decode date: %w", err)
		}
		doc.Date = ts
	}
	if sentimentField != "" {
		if raw, ok := src[sentimentField]; ok {
			var v float64
			if err := json.Unmarshal(raw, &v); err == nil {
				doc.Sentiment = &v
			}
		}
	}
	return doc, nil
}

// decodeTimestamp accepts the two date representations found in the wild:
// RFC3339 strings and epoch milliseconds.
func decodeTimestamp(raw json.RawMessage) (time.Time, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return time.Parse(time.RFC3339, str)
	}
	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported date value %s", string(raw))
}

func (s *ESDocumentStore) UpdateSentiments(ctx context.Context, index, field string, updates []models.SentimentUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	for start := 0; start < len(updates); start += s.bulkChunk {
		end := start + s.bulkChunk
		if end > len(updates) {
			end = len(updates)
		}

		var buf bytes.Buffer
		for _, u := range updates[start:end] {
			meta, err := json.Marshal(map[string]interface{}{
				"update": map[string]interface{}{"_index": index, "_id": u.ID},
			})
			if err != nil {
				return fmt.Errorf("encode bulk action: %w", err)
			}
			doc, err := json.Marshal(map[string]interface{}{
				"doc": map[string]interface{}{field: u.Polarity},
			})
			if err != nil {
				return fmt.Errorf("encode bulk doc: %w", err)
			}
			buf.Write(meta)
			buf.WriteByte('\n')
			buf.Write(doc)
			buf.WriteByte('\n')
		}

		if err := s.bulk(ctx, &buf); err != nil {
			return fmt.Errorf("bulk sentiment update: %w", err)
		}
	}
	return nil
}

func (s *ESDocumentStore) StoreSentimentBuckets(ctx context.Context, index string, buckets []models.SentimentBucket) error {
	if len(buckets) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(buckets))
	for _, b := range buckets {
		docs = append(docs, map[string]interface{}{
			"date":     b.Start.UTC().Format(time.RFC3339),
			"positive": b.Positive,
			"negative": b.Negative,
			"neutral":  b.Neutral,
		})
	}
	return s.bulkIndex(ctx, index, docs)
}

func (s *ESDocumentStore) FetchSentimentBuckets(ctx context.Context, index string) ([]models.SentimentBucket, error) {
	es := s.client.ES()
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithSize(10000),
		es.Search.WithSort("date:asc"),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch sentiment buckets: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch sentiment buckets: %s", res.Status())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode sentiment buckets: %w", err)
	}

	buckets := make([]models.SentimentBucket, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var src struct {
			Date     json.RawMessage `json:"date"`
			Positive int             `json:"positive"`
			Negative int             `json:"negative"`
			Neutral  int             `json:"neutral"`
		}
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			s.log.Warn("skipping malformed sentiment bucket",
				applogger.String("id", hit.ID),
				applogger.Error(err),
			)
			continue
		}
		ts, err := decodeTimestamp(src.Date)
		if err != nil {
			s.log.Warn("skipping sentiment bucket with bad date",
				applogger.String("id", hit.ID),
				applogger.Error(err),
			)
			continue
		}
		buckets = append(buckets, models.SentimentBucket{
			Start:    ts,
			Positive: src.Positive,
			Negative: src.Negative,
			Neutral:  src.Neutral,
		})
	}
	return buckets, nil
}

func (s *ESDocumentStore) StorePredictions(ctx context.Context, index string, points []models.IntradayPoint) error {
	if len(points) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(points))
	for _, p := range points {
		docs = append(docs, map[string]interface{}{
			"date":  p.Timestamp.UTC().Format(time.RFC3339),
			"price": p.PredictedPrice,
			"bias":  p.Bias.String(),
		})
	}
	return s.bulkIndex(ctx, index, docs)
}

func (s *ESDocumentStore) FetchPredictions(ctx context.Context, index string) ([]models.IntradayPoint, error) {
	es := s.client.ES()
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithSize(10000),
		es.Search.WithSort("date:asc"),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch predictions: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch predictions: %s", res.Status())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}

	points := make([]models.IntradayPoint, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var src struct {
			Date  json.RawMessage `json:"date"`
			Price float64         `json:"price"`
			Bias  string          `json:"bias"`
		}
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			s.log.Warn("skipping malformed prediction",
				applogger.String("id", hit.ID),
				applogger.Error(err),
			)
			continue
		}
		ts, err := decodeTimestamp(src.Date)
		if err != nil {
			s.log.Warn("skipping prediction with bad date",
				applogger.String("id", hit.ID),
				applogger.Error(err),
			)
			continue
		}
		bias := models.BiasPositive
		if src.Bias == models.BiasNegative.String() {
			bias = models.BiasNegative
		}
		points = append(points, models.IntradayPoint{
			Timestamp:      ts,
			PredictedPrice: src.Price,
			Bias:           bias,
		})
	}
	return points, nil
}

// DeleteIndex removes an index. Deleting an index that does not exist is a
// no-op so rebuild runs can always start from a clean slate.
func (s *ESDocumentStore) DeleteIndex(ctx context.Context, index string) error {
	es := s.client.ES()
	res, err := es.Indices.Delete(
		[]string{index},
		es.Indices.Delete.WithContext(ctx),
		es.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return fmt.Errorf("delete index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("delete index %s: %s", index, res.Status())
	}
	return nil
}

func (s *ESDocumentStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *ESDocumentStore) bulkIndex(ctx context.Context, index string, docs []interface{}) error {
	for start := 0; start < len(docs); start += s.bulkChunk {
		end := start + s.bulkChunk
		if end > len(docs) {
			end = len(docs)
		}

		var buf bytes.Buffer
		for _, d := range docs[start:end] {
			meta, err := json.Marshal(map[string]interface{}{
				"index": map[string]interface{}{"_index": index},
			})
			if err != nil {
				return fmt.Errorf("encode bulk action: %w", err)
			}
			body, err := json.Marshal(d)
			if err != nil {
				return fmt.Errorf("encode bulk doc: %w", err)
			}
			buf.Write(meta)
			buf.WriteByte('\n')
			buf.Write(body)
			buf.WriteByte('\n')
		}

		if err := s.bulk(ctx, &buf); err != nil {
			return fmt.Errorf("bulk index into %s: %w", index, err)
		}
	}
	return nil
}

// bulk sends one NDJSON request and tolerates per-item failures: a handful
// of rejected documents must not abort the whole run.
func (s *ESDocumentStore) bulk(ctx context.Context, body *bytes.Buffer) error {
	es := s.client.ES()
	res, err := es.Bulk(bytes.NewReader(body.Bytes()), es.Bulk.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk request: %s", res.Status())
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if !parsed.Errors {
		return nil
	}

	failed := 0
	for _, item := range parsed.Items {
		for _, r := range item {
			if r.Status >= 300 {
				failed++
				if failed <= 3 {
					s.log.Warn("bulk item rejected",
						applogger.Int("status", r.Status),
						applogger.String("type", r.Error.Type),
						applogger.String("reason", r.Error.Reason),
					)
				}
			}
		}
	}
	s.log.Warn("bulk request completed with rejected items",
		applogger.Int("failed", failed),
		applogger.Int("total", len(parsed.Items)),
	)
	return nil
}
