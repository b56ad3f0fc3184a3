package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/lib/pq"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/prabinkarki/resumerank/internal/analyzer"
	"github.com/prabinkarki/resumerank/internal/database"
)

// retry retries a function up to `attempts` times with exponential backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// screenSession runs the screening pipeline for all resumes in a
// session: download, rank, persist profiles and the ranked table.
// Download failures are retried; a resume that still cannot be fetched
// becomes an error-tagged entry and the rest of the batch continues.
func screenSession(currentSession Session, workerConfig *WorkerConfig) error {
	ctx := context.Background()
	log := workerConfig.Logger.With(zap.String("session_id", currentSession.ID.String()))

	resumes, err := workerConfig.DB.GetResumesBySession(ctx, currentSession.ID)
	if err != nil {
		return fmt.Errorf("error getting resumes for session %s: %w", currentSession.ID, err)
	}

	awsClient := s3.NewFromConfig(*workerConfig.AwsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", workerConfig.R2.AccountID))
	})

	docs := make([]analyzer.Document, 0, len(resumes))
	for _, resume := range resumes {
		fileBytes, err := retry(3, func() ([]byte, error) {
			return DownloadFromR2(ctx, awsClient, workerConfig.R2.Bucket, resume.ObjectKey)
		})
		if err != nil {
			log.Warn("failed to download resume after retries",
				zap.String("object_key", resume.ObjectKey), zap.Error(err))
			docs = append(docs, analyzer.Document{Name: resume.OriginalFilename, Err: err})
			continue
		}
		docs = append(docs, analyzer.Document{
			Name:   resume.OriginalFilename,
			Format: formatFromMime(resume.Mime),
			Data:   fileBytes,
		})
	}

	entries := workerConfig.Analyzer.Rank(ctx, docs, currentSession.JobDescription)
	log.Info("session screened", zap.Int("resumes", len(entries)))

	// Profiles are stored per file so the frontend can merge contact
	// details with the ranked table by filename.
	for _, entry := range entries {
		_, err := retry(3, func() (any, error) {
			return nil, workerConfig.DB.UpsertCandidateProfile(ctx, database.UpsertCandidateProfileParams{
				Name:      entry.Profile.Name,
				Email:     entry.Profile.Email,
				Phone:     entry.Profile.Phone,
				Linkedin:  entry.Profile.LinkedIn,
				Github:    entry.Profile.GitHub,
				FileName:  entry.FileName,
				SessionID: currentSession.ID,
			})
		})
		if err != nil {
			log.Warn("failed to save candidate profile after retries",
				zap.String("file", entry.FileName), zap.Error(err))
		}
	}

	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal screening results: %w", err)
	}

	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateOrUpdateScreeningResults(ctx, database.CreateOrUpdateScreeningResultsParams{
			Entries:   entriesJSON,
			SessionID: currentSession.ID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save screening results after retries: %w", err)
	}

	return nil
}

func worker(id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	log := workerConfig.Logger.With(zap.Int("worker", id+1))

	conn, err := amqp.Dial(workerConfig.RabbitMQUrl)
	if err != nil {
		log.Fatal("error dialling rabbitmq", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error opening rabbitmq channel", zap.Error(err))
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		"screenings", // queue name
		true,         // durable (survives broker restarts)
		false,        // auto-delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		log.Fatal("failed to declare queue", zap.Error(err))
	}

	msgs, err := ch.Consume(
		"screenings", // queue name
		"",           // consumer tag
		true,         // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq messages", zap.Error(err))
	}

	for msg := range msgs {
		session := Session{}
		if err := json.Unmarshal(msg.Body, &session); err != nil {
			log.Error("error unmarshalling message body", zap.Error(err))
			failSession(session, workerConfig, log)
			continue
		}
		log.Info("processing session", zap.String("session_id", session.ID.String()))

		updateStatus(session, "processing", workerConfig, log)
		notifySession(session.ID.String(), "processing", "screening started", workerConfig, log)

		if err := screenSession(session, workerConfig); err != nil {
			log.Error("error screening session",
				zap.String("session_id", session.ID.String()), zap.Error(err))
			failSession(session, workerConfig, log)
			continue
		}

		updateStatus(session, "completed", workerConfig, log)
		notifySession(session.ID.String(), "completed", "screening completed", workerConfig, log)
	}
}

func failSession(session Session, workerConfig *WorkerConfig, log *zap.Logger) {
	updateStatus(session, "failed", workerConfig, log)
	notifySession(session.ID.String(), "failed", "screening failed", workerConfig, log)
}

func updateStatus(session Session, status string, workerConfig *WorkerConfig, log *zap.Logger) {
	err := workerConfig.DB.UpdateSessionStatus(context.Background(), database.UpdateSessionStatusParams{
		Status: status,
		ID:     session.ID,
	})
	if err != nil {
		log.Warn("failed to update session status",
			zap.String("session_id", session.ID.String()),
			zap.String("status", status),
			zap.Error(err))
	}
}

func notifySession(sessionID, status, message string, workerConfig *WorkerConfig, log *zap.Logger) {
	update := map[string]any{
		"session_id": sessionID,
		"status":     status,
		"message":    message,
		"timestamp":  time.Now(),
	}
	if err := publishSessionUpdate(workerConfig.RabbitConn, sessionID, update); err != nil {
		log.Warn("failed to publish session update", zap.Error(err))
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		workerConfig.Logger.Info("worker started", zap.Int("worker", i+1))
		go worker(i, workerConfig, &wg)
	}
	wg.Wait() // block until all workers finish
}
