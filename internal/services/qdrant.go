package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"hrassist/resume-screener/internal/models"
)

// chunkIDStride spaces the deterministic point IDs so every evaluation owns
// a contiguous block. Reindexing an evaluation overwrites its own points.
const chunkIDStride = 1000

type QdrantService interface {
	InitCollection() error
	UpsertResumeChunk(ctx context.Context, evalID uint, chunkIndex int, jobID uint, resumeName, decision, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeEvalID uint, limit int) ([]models.SimilarCandidate, error)
	DeleteEvaluation(ctx context.Context, evalID uint) error
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one.
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
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
	}, nil
}

func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Qdrant collection already exists")
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
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

func (q *qdrantService) UpsertResumeChunk(ctx context.Context, evalID uint, chunkIndex int, jobID uint, resumeName, decision, text string, embedding []float32) error {
	pointID := uint64(evalID)*chunkIDStride + uint64(chunkIndex)

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(pointID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"evaluation_id": int64(evalID),
			"job_id":        int64(jobID),
			"resume_name":   resumeName,
			"decision":      decision,
			"text":          text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar returns past candidates ranked by best-chunk similarity.
// Hits belonging to excludeEvalID are filtered server-side, and multiple
// chunks of the same evaluation collapse to the highest-scoring one.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeEvalID uint, limit int) ([]models.SimilarCandidate, error) {
	var filter *qdrant.Filter
	if excludeEvalID != 0 {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatchInt("evaluation_id", int64(excludeEvalID)),
			},
		}
	}

	// Over-fetch so dedupe by evaluation still fills the requested limit.
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit * 4)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	best := map[uint]models.SimilarCandidate{}
	var order []uint
	for _, point := range searchResult {
		payload := point.Payload

		var evalID uint
		if v, ok := payload["evaluation_id"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_IntegerValue); ok {
				evalID = uint(val.IntegerValue)
			}
		}
		if evalID == 0 {
			continue
		}

		candidate := models.SimilarCandidate{
			EvaluationID: evalID,
			Score:        point.Score,
		}
		if v, ok := payload["resume_name"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.ResumeName = val.StringValue
			}
		}
		if v, ok := payload["decision"]; ok {
			if val, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.Decision = val.StringValue
			}
		}

		if existing, ok := best[evalID]; !ok {
			best[evalID] = candidate
			order = append(order, evalID)
		} else if candidate.Score > existing.Score {
			best[evalID] = candidate
		}
	}

	results := make([]models.SimilarCandidate, 0, len(order))
	for _, id := range order {
		results = append(results, best[id])
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

func (q *qdrantService) DeleteEvaluation(ctx context.Context, evalID uint) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatchInt("evaluation_id", int64(evalID)),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete evaluation points: %w", err)
	}

	return nil
}
