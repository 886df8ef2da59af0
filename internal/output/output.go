// Package output writes the exported fact table and view snapshots to a
// destination: partitioned files, Kafka topics or the console.
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/bitesdash/internal/cloudwriter"
	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// New builds the destination selected by cfg.Output.Format.
func New(ctx context.Context, cfg *models.Config) (OutputDestination, error) {
	switch cfg.Output.Format {
	case "csv":
		return NewCSVOutput(cfg.Output.Path, cfg.Output.Folder), nil
	case "json":
		return NewJSONOutput(cfg.Output.Path, cfg.Output.Folder), nil
	case "parquet":
		var factory cloudwriter.CloudWriterFactory
		if cfg.Output.Destination == "s3" {
			f, err := cloudwriter.NewS3WriterFactory(ctx, cfg.S3.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			factory = f
		} else if cfg.Output.Destination != "" && cfg.Output.Destination != "local" {
			return nil, fmt.Errorf("unsupported output destination: %s", cfg.Output.Destination)
		}
		return NewParquetOutput(cfg.Output.Path, cfg.Output.Folder, factory, cfg.S3.Bucket), nil
	case "kafka":
		return NewKafkaOutput(cfg.Kafka)
	case "console":
		return NewConsoleOutput(nil), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, cfg.Output.Format)
	}
}

// Summary counts the messages written per topic.
type Summary map[string]int

// Export writes every fact row, then the two view snapshots. progress, when
// set, is called after each fact row.
func Export(dst OutputDestination, facts []models.OrderFact, exec *dashboard.ExecutiveView, mgr *dashboard.ManagerView, progress func()) (Summary, error) {
	summary := Summary{}

	for _, f := range facts {
		if err := writeJSON(dst, models.TopicOrderFacts, NewFactRecord(f)); err != nil {
			return summary, fmt.Errorf("failed to export order %s: %w", f.ID, err)
		}
		summary[models.TopicOrderFacts]++
		if progress != nil {
			progress()
		}
	}

	if exec != nil {
		for _, r := range ExecutiveRecords(exec) {
			if err := writeJSON(dst, models.TopicExecutiveView, r); err != nil {
				return summary, err
			}
			summary[models.TopicExecutiveView]++
		}
	}
	if mgr != nil {
		for _, r := range ManagerRecords(mgr) {
			if err := writeJSON(dst, models.TopicManagerView, r); err != nil {
				return summary, err
			}
			summary[models.TopicManagerView]++
		}
	}

	log.Printf("Exported %d order facts, %d executive and %d manager metrics",
		summary[models.TopicOrderFacts], summary[models.TopicExecutiveView], summary[models.TopicManagerView])
	return summary, nil
}

func writeJSON(dst OutputDestination, topic string, v interface{}) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return dst.WriteMessage(topic, msg)
}

// partitionPath derives a Hive style partition from the order_date of a
// fact row, e.g. "year=2024/month=01/day=05". Rows without a date and view
// snapshots are not partitioned.
func partitionPath(event map[string]interface{}) string {
	date, _ := event["order_date"].(string)
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ""
	}
	return fmt.Sprintf("year=%s/month=%s/day=%s", parts[0], parts[1], parts[2])
}

func topicDir(basePath, folder, topic, partition string) string {
	return filepath.Join(basePath, folder, topic, filepath.FromSlash(partition))
}
