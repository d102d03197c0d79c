package services

import (
	"context"
	"log"
	"sync"

	"hrassist/resume-screener/internal/repositories"
)

// Indexer feeds finished evaluations into the vector index in the
// background. Indexing is best-effort: a failure is logged and the
// evaluation record stays authoritative in Postgres.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(evalID uint)
}

type indexer struct {
	evalRepo    repositories.EvaluationRepository
	extractor   TextExtractor
	chunker     TextChunker
	gemini      GeminiService
	qdrant      QdrantService
	queue       chan uint
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewIndexer(
	evalRepo repositories.EvaluationRepository,
	extractor TextExtractor,
	chunker TextChunker,
	gemini GeminiService,
	qdrant QdrantService,
	concurrency int,
	queueSize int,
) Indexer {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}
	return &indexer{
		evalRepo:    evalRepo,
		extractor:   extractor,
		chunker:     chunker,
		gemini:      gemini,
		qdrant:      qdrant,
		queue:       make(chan uint, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

func (ix *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting resume indexer with %d workers\n", ix.concurrency)

	for i := 0; i < ix.concurrency; i++ {
		ix.wg.Add(1)
		go ix.run(ctx, i+1)
	}
}

func (ix *indexer) Stop() {
	log.Println("🛑 Stopping resume indexer...")
	close(ix.stopChan)
	ix.wg.Wait()
	log.Println("✅ Resume indexer stopped")
}

func (ix *indexer) Enqueue(evalID uint) {
	select {
	case ix.queue <- evalID:
	case <-ix.stopChan:
		log.Printf("⚠️ Indexer stopped, dropping evaluation %d\n", evalID)
	default:
		// Queue full. Dropping is acceptable; reindexing catches up later.
		log.Printf("⚠️ Indexer queue full, dropping evaluation %d\n", evalID)
	}
}

func (ix *indexer) run(ctx context.Context, workerID int) {
	defer ix.wg.Done()

	for {
		select {
		case <-ix.stopChan:
			return
		case evalID := <-ix.queue:
			if err := ix.index(ctx, evalID); err != nil {
				log.Printf("❌ Indexer worker #%d failed on evaluation %d: %v\n", workerID, evalID, err)
			}
		}
	}
}

func (ix *indexer) index(ctx context.Context, evalID uint) error {
	detail, err := ix.evalRepo.DetailByID(evalID)
	if err != nil {
		return err
	}

	file, err := ix.evalRepo.ResumeFileByID(evalID)
	if err != nil {
		return err
	}

	kind, err := DetectKind(file.Name, file.ContentType)
	if err != nil {
		return err
	}

	text, err := ix.extractor.ExtractText(file.Data, kind)
	if err != nil {
		return err
	}

	chunks := ix.chunker.ChunkText(text, 1000, 100)
	for i, chunk := range chunks {
		embedding, err := ix.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return err
		}
		err = ix.qdrant.UpsertResumeChunk(ctx, evalID, i, detail.JobID, detail.ResumeName, detail.Result, chunk, embedding)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Indexed evaluation %d (%d chunks)\n", evalID, len(chunks))
	return nil
}
