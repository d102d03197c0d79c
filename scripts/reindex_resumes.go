package main

import (
	"context"
	"log"
	"os"
	"strings"

	"hrassist/resume-screener/internal/config"
	"hrassist/resume-screener/internal/repositories"
	"hrassist/resume-screener/internal/services"
)

// Rebuilds the vector index from the resumes stored in Postgres. Run after
// wiping the Qdrant collection or changing the embedding model.
func main() {
	log.Println("🚀 Starting resume reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	evalRepo := repositories.NewEvaluationRepository(db)

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewTextExtractor()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	ids, err := evalRepo.AllIDs()
	if err != nil {
		log.Fatalf("❌ Failed to list evaluations: %v", err)
	}
	log.Printf("📋 Found %d evaluations to reindex", len(ids))

	successCount := 0
	failCount := 0

	for _, id := range ids {
		log.Printf("\n📄 Reindexing evaluation %d", id)

		detail, err := evalRepo.DetailByID(id)
		if err != nil {
			log.Printf("   ❌ Failed to load evaluation: %v", err)
			failCount++
			continue
		}

		file, err := evalRepo.ResumeFileByID(id)
		if err != nil {
			log.Printf("   ⚠️  No stored resume, skipping...")
			failCount++
			continue
		}

		kind, err := services.DetectKind(file.Name, file.ContentType)
		if err != nil {
			log.Printf("   ❌ Unsupported file: %v", err)
			failCount++
			continue
		}

		text, err := extractor.ExtractText(file.Data, kind)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		chunks := chunker.ChunkText(text, 1000, 100)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			err = qdrantService.UpsertResumeChunk(ctx, id, i, detail.JobID, detail.ResumeName, detail.Result, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   ✅ Stored %d/%d chunks for %s", stored, len(chunks), detail.ResumeName)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d evaluations", successCount)
	log.Printf("   ❌ Failed: %d evaluations", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some evaluations failed to reindex. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All resumes reindexed successfully!")
}
