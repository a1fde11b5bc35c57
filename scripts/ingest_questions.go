package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/config"
	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/services"
)

type bankFile struct {
	Path  string
	Round models.RoundType
	Name  string
}

func main() {
	cfg := config.Load()
	log := config.InitLogger(cfg)
	log.Info("🚀 Starting question bank ingestion...")

	if cfg.LLM.GeminiAPIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required for embeddings")
	}

	ctx := context.Background()

	gemini, err := services.NewGeminiService(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.EmbeddingModel, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize Gemini")
	}

	store, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize Qdrant")
	}
	if err := store.InitCollection(ctx); err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize collection")
	}

	bank := services.NewQuestionBank(gemini, store, services.NewTextChunker(), log)
	parser := services.NewDocumentParserService(services.NewResumeExtractor(), log)

	files := []bankFile{
		{Path: "./question_bank/hr_questions.txt", Round: models.RoundHR, Name: "HR question bank"},
		{Path: "./question_bank/technical_questions.txt", Round: models.RoundTechnical, Name: "Technical question bank"},
		{Path: "./question_bank/system_design.pdf", Round: models.RoundTechnical, Name: "System design questions"},
	}

	successCount := 0
	failCount := 0

	for _, file := range files {
		entry := log.WithFields(logrus.Fields{
			"path":  file.Path,
			"round": file.Round,
		})
		entry.Infof("📄 Processing: %s", file.Name)

		if _, err := os.Stat(file.Path); os.IsNotExist(err) {
			entry.Warn("⚠️ File not found, skipping...")
			failCount++
			continue
		}

		text, err := readBankFile(parser, file.Path)
		if err != nil {
			entry.WithError(err).Error("❌ Failed to extract text")
			failCount++
			continue
		}
		entry.Infof("✅ Extracted %d characters", len(text))

		stored, err := bank.Ingest(ctx, filepath.Base(file.Path), file.Round, text)
		if err != nil {
			entry.WithError(err).Error("❌ Failed to ingest")
			failCount++
			continue
		}

		entry.Infof("✅ Stored %d questions from %s", stored, file.Name)
		successCount++
	}

	log.Info(strings.Repeat("=", 60))
	log.Info("📊 Ingestion Summary:")
	log.Infof("   ✅ Successful: %d files", successCount)
	log.Infof("   ❌ Failed: %d files", failCount)
	log.Info(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Warn("⚠️ Some files failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Info("✅ All question banks ingested successfully!")
}

// readBankFile reads plain text files as-is and extracts PDF or DOCX files
// with the résumé parser's text extraction.
func readBankFile(parser services.DocumentParserService, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read file")
	}

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return string(data), nil
	}

	format, err := services.FormatFromFilename(path)
	if err != nil {
		return "", err
	}
	return parser.ExtractText(data, format)
}
