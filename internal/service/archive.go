package service

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/client"
	"github.com/medvox-ai/intake-pipeline/internal/config"
	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/model"
)

const uploadTimeout = 30 * time.Second

// RecordArchiver defines the interface for the record archiving service
type RecordArchiver interface {
	// Start starts the archiving service
	Start() error
	// Stop stops the archiving service, flushing pending records
	Stop()
	// ArchiveAsync queues a pipeline run record for archiving
	ArchiveAsync(record *model.IntakeRecord)
	// SetMetricsService sets the metrics sink fed from processed records
	SetMetricsService(metricsService MetricsInterface)
}

// ArchiveService spools pipeline run records to local files and periodically
// ships them to the object store. Records stay spooled when shipping fails
// and are retried on the next scan. Without an object store they are moved
// into the local archive tree instead.
type ArchiveService struct {
	archiveDir     string // Permanent local archive directory path
	spoolDir       string // Spool directory for unshipped records
	scanInterval   time.Duration
	store          client.ObjectStore
	metricsService MetricsInterface

	recordChan chan *model.IntakeRecord
	stopChan   chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
}

// NewArchiveService creates a new record archiving service. store may be nil
// when no object store is configured.
func NewArchiveService(cfg config.ArchiveConfig, store client.ObjectStore) *ArchiveService {
	return &ArchiveService{
		archiveDir:   cfg.Dir,
		spoolDir:     filepath.Join(cfg.Dir, "spool"),
		scanInterval: time.Duration(cfg.ScanIntervalSec) * time.Second,
		store:        store,
		recordChan:   make(chan *model.IntakeRecord, 1000),
		stopChan:     make(chan struct{}),
	}
}

// SetMetricsService sets the metrics sink fed from processed records
func (as *ArchiveService) SetMetricsService(metricsService MetricsInterface) {
	as.metricsService = metricsService
}

// Start starts the archiving service
func (as *ArchiveService) Start() error {
	if err := os.MkdirAll(as.archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.MkdirAll(as.spoolDir, 0755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}

	as.wg.Add(1)
	go as.recordWriter()

	as.wg.Add(1)
	go as.spoolProcessor()

	return nil
}

// Stop stops the archiving service, flushing pending records
func (as *ArchiveService) Stop() {
	close(as.stopChan)
	close(as.recordChan)
	as.wg.Wait()
}

// ArchiveAsync queues a pipeline run record for archiving
func (as *ArchiveService) ArchiveAsync(record *model.IntakeRecord) {
	select {
	case as.recordChan <- record:
	default:
		// Channel is full, spool synchronously to avoid blocking
		as.archiveSync(record)
	}
}

// recordWriter writes queued records to the spool
func (as *ArchiveService) recordWriter() {
	defer as.wg.Done()

	for {
		select {
		case record := <-as.recordChan:
			if record != nil {
				as.archiveSync(record)
			}
		case <-as.stopChan:
			// Spool remaining records
			for len(as.recordChan) > 0 {
				record := <-as.recordChan
				if record != nil {
					as.archiveSync(record)
				}
			}
			return
		}
	}
}

// archiveSync writes a record to a spool file synchronously
func (as *ArchiveService) archiveSync(record *model.IntakeRecord) {
	as.mu.Lock()
	defer as.mu.Unlock()

	// Create timestamped filename
	datePart := record.Timestamp.Format("20060102")
	timePart := record.Timestamp.Format("150405")
	requester := sanitizeFilename(record.Identity.Requester, "unknown")
	randNum := generateRandomNumber()
	filename := fmt.Sprintf("%s-%s-%s-%d.json", datePart, timePart, requester, randNum)
	filePath := filepath.Join(as.spoolDir, filename)

	recordJSON, err := record.ToCompressedJSON()
	if err != nil {
		logger.Error("failed to marshal record",
			zap.Error(err),
		)
		return
	}

	if err := as.writeRecordToFile(filePath, recordJSON, os.O_CREATE|os.O_WRONLY); err != nil {
		logger.Error("failed to write spool record",
			zap.Error(err),
		)
	}
}

// writeRecordToFile writes record content to the specified file path
func (as *ArchiveService) writeRecordToFile(filePath string, content string, mode int) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, mode, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	contentBytes := []byte(content)
	contentBytes = append(contentBytes, '\n')

	if _, err := file.Write(contentBytes); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// spoolProcessor ships spooled records periodically
func (as *ArchiveService) spoolProcessor() {
	defer as.wg.Done()

	ticker := time.NewTicker(as.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			as.processSpool()
		case <-as.stopChan:
			// Ship spooled records one last time before stopping
			as.processSpool()
			return
		}
	}
}

// processSpool reads spooled records one by one, ships each, and deletes the
// spool file on success
func (as *ArchiveService) processSpool() {
	files, err := os.ReadDir(as.spoolDir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		logger.Error("failed to list spool files",
			zap.Error(err),
		)
		return
	}

	if len(files) == 0 {
		return
	}

	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		filePath := filepath.Join(as.spoolDir, name)
		fileContent, err := os.ReadFile(filePath)
		if err != nil {
			logger.Error("failed to read spool file",
				zap.String("filename", name),
				zap.Error(err),
			)
			continue
		}

		record, err := model.FromJSON(string(fileContent))
		if err != nil {
			logger.Error("failed to parse spool file",
				zap.String("filename", name),
				zap.Error(err),
			)
			continue
		}

		if !as.ship(record, name, fileContent) {
			continue
		}

		// Record metrics if metrics service is available
		if as.metricsService != nil {
			as.metricsService.RecordIntake(record)
		}

		as.deleteSpoolFile(filePath)
	}
}

// ship persists one record to the object store, or to the local archive tree
// when no store is configured
func (as *ArchiveService) ship(record *model.IntakeRecord, name string, content []byte) bool {
	// Directory structure: year-month/day
	yearMonth := record.Timestamp.Format("2006-01")
	day := record.Timestamp.Format("02")

	if as.store != nil {
		objectName := fmt.Sprintf("records/%s/%s/%s", yearMonth, day, name)

		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()

		if err := as.store.Put(ctx, objectName, content); err != nil {
			logger.Error("record upload failed, keeping spool file",
				zap.String("filename", name),
				zap.Error(err),
			)
			return false
		}

		logger.Info("record uploaded to object store",
			zap.String("object", objectName),
		)
		return true
	}

	archiveFile := filepath.Join(as.archiveDir, yearMonth, day, name)
	if err := as.writeRecordToFile(archiveFile, string(content), os.O_CREATE|os.O_WRONLY); err != nil {
		logger.Error("failed to write record to local archive",
			zap.String("filename", name),
			zap.Error(err),
		)
		return false
	}

	return true
}

// deleteSpoolFile deletes a single spool file
func (as *ArchiveService) deleteSpoolFile(filePath string) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if err := os.Remove(filePath); err != nil {
		logger.Error("failed to remove spool file",
			zap.String("filename", filepath.Base(filePath)),
			zap.Error(err),
		)
	}
}

// sanitizeFilename cleans a string to make it safe for use in file/folder names
func sanitizeFilename(name string, defaultName string) string {
	if name == "" {
		return defaultName
	}

	// Remove invalid characters for both Windows and Linux
	invalidChars := []string{"\\", "/", ":", "*", "?", "\"", "<", ">", "|", "\x00", "\n", "\r", "\t"}
	// Also replace any non-printable ASCII characters
	for i := 0; i < 32; i++ {
		invalidChars = append(invalidChars, string(rune(i)))
	}
	for _, c := range invalidChars {
		name = strings.ReplaceAll(name, c, "")
	}

	// Limit length to 255 bytes for Linux compatibility
	if len(name) > 255 {
		name = name[:255]
	}

	return name
}

// generateRandomNumber creates a 6-digit random number from 100000 to 999999
func generateRandomNumber() int {
	return rand.Intn(900000) + 100000
}
