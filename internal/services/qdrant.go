package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/qdrant/go-client/qdrant"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
)

// QdrantService stores reference interview questions as vectors tagged with
// their round.
type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertQuestion(ctx context.Context, source string, round models.RoundType, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, round models.RoundType, limit int) ([]SearchResult, error)
	DeleteSource(ctx context.Context, source string) error
}

type SearchResult struct {
	ID     string
	Score  float32
	Text   string
	Round  models.RoundType
	Source string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *logrus.Entry
}

// text-embedding-004 output size
const embeddingSize = 768

func NewQdrantService(urlStr, apiKey, collectionName string, logger *logrus.Logger) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Qdrant URL")
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create qdrant client")
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embeddingSize,
		logger:         logger.WithField("component", "qdrant"),
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return errors.Wrap(err, "failed to check collection")
	}

	if exists {
		q.logger.WithField("collection", q.collectionName).Info("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create collection")
	}

	q.logger.WithField("collection", q.collectionName).Info("✅ Qdrant collection created")
	return nil
}

// UpsertQuestion implements QdrantService.
func (q *qdrantService) UpsertQuestion(ctx context.Context, source string, round models.RoundType, text string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+"|"+text)).String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"source":     source,
			"round_type": string(round),
			"text":       text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return errors.Wrap(err, "failed to upsert point")
	}
	return nil
}

// SearchSimilar implements QdrantService. An empty round searches every round.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, round models.RoundType, limit int) ([]SearchResult, error) {
	var filter *qdrant.Filter
	if round != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("round_type", string(round)),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search")
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, SearchResult{
			ID:     point.GetId().GetUuid(),
			Score:  point.Score,
			Text:   payloadString(point.Payload, "text"),
			Round:  models.RoundType(payloadString(point.Payload, "round_type")),
			Source: payloadString(point.Payload, "source"),
		})
	}
	return results, nil
}

// DeleteSource implements QdrantService.
func (q *qdrantService) DeleteSource(ctx context.Context, source string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{qdrant.NewMatch("source", source)},
				},
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete source")
	}
	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}
