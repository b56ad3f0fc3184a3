package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prabinkarki/resumerank/internal/analyzer"
	"github.com/prabinkarki/resumerank/internal/database"
	"github.com/prabinkarki/resumerank/internal/embedding"
	"github.com/prabinkarki/resumerank/internal/logger"
	"github.com/prabinkarki/resumerank/internal/ocr"

	"github.com/streadway/amqp"
)

func main() {
	_ = godotenv.Load()

	zlog, err := logger.New(os.Getenv("LOG_JSON") == "true", os.Getenv("LOG_DEBUG") == "true")
	if err != nil {
		log.Fatal("error building logger: ", err)
	}
	defer zlog.Sync()

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		zlog.Fatal("empty DB_URL in environment")
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl == "" {
		zlog.Fatal("empty RABBITMQ_URL in environment")
	}

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		zlog.Fatal("error opening db", zap.Error(err))
	}
	dbqueries := database.New(db)

	r2AccountId := os.Getenv("R2_ACCOUNT_ID")
	if r2AccountId == "" {
		zlog.Fatal("empty R2_ACCOUNT_ID in environment")
	}
	r2Bucket := os.Getenv("R2_BUCKET")
	if r2Bucket == "" {
		zlog.Fatal("empty R2_BUCKET in environment")
	}
	r2SecretKey := os.Getenv("R2_SECRET_KEY")
	if r2SecretKey == "" {
		zlog.Fatal("empty R2_SECRET_KEY in environment")
	}
	r2AccessKey := os.Getenv("R2_ACCESS_KEY")
	if r2AccessKey == "" {
		zlog.Fatal("empty R2_ACCESS_KEY in environment")
	}
	r2Config := R2Config{
		AccountID: r2AccountId,
		AccessKey: r2AccessKey,
		SecretKey: r2SecretKey,
		Bucket:    r2Bucket,
	}
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2Config.AccessKey, r2Config.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		zlog.Fatal("error creating aws config", zap.Error(err))
	}

	// The embedding model is loaded once and shared by every worker.
	// If the backend is unreachable there is no fallback for semantic
	// scoring, so fail before consuming anything.
	embedder, err := buildEmbedder(context.Background())
	if err != nil {
		zlog.Fatal("error creating embedder", zap.Error(err))
	}
	if err := embedding.Probe(context.Background(), embedder); err != nil {
		zlog.Fatal("embedding backend unavailable", zap.Error(err))
	}
	zlog.Info("embedding model ready", zap.String("model", embedder.Model()))

	ocrDPI := 0
	if v := os.Getenv("OCR_DPI"); v != "" {
		ocrDPI, err = strconv.Atoi(v)
		if err != nil {
			zlog.Fatal("invalid OCR_DPI", zap.String("value", v))
		}
	}

	resumeAnalyzer, err := analyzer.New(analyzer.Config{
		Embedder: embedder,
		OCR:      &ocr.Tesseract{},
		Logger:   zlog,
		OCRDPI:   ocrDPI,
	})
	if err != nil {
		zlog.Fatal("error creating analyzer", zap.Error(err))
	}

	conn, err := amqp.Dial(rabbitmqUrl)
	if err != nil {
		zlog.Fatal("error connecting to RabbitMQ", zap.Error(err))
	}

	workers := 3
	if v := os.Getenv("WORKERS"); v != "" {
		workers, err = strconv.Atoi(v)
		if err != nil || workers < 1 {
			zlog.Fatal("invalid WORKERS", zap.String("value", v))
		}
	}

	workerConfig := WorkerConfig{
		DB:          dbqueries,
		Analyzer:    resumeAnalyzer,
		Logger:      zlog,
		R2:          &r2Config,
		AwsConfig:   &awsConfig,
		RabbitConn:  conn,
		RabbitMQUrl: rabbitmqUrl,
	}

	zlog.Info("starting consumer worker pool", zap.Int("workers", workers))
	workerConfig.StartConsumerWorkerPool(workers)
}

// buildEmbedder picks the embedding backend from the environment.
// Default is a local Ollama server; set EMBEDDING_PROVIDER=gemini to
// use the hosted Gemini API instead.
func buildEmbedder(ctx context.Context) (embedding.Embedder, error) {
	model := os.Getenv("EMBEDDING_MODEL")

	switch os.Getenv("EMBEDDING_PROVIDER") {
	case "gemini":
		return embedding.NewGemini(ctx, os.Getenv("GOOGLE_API_KEY"), model)
	default:
		if model == "" {
			model = "all-minilm"
		}
		return embedding.NewOllama(model, os.Getenv("OLLAMA_URL")), nil
	}
}
