package output

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/bitesdash/internal/cloudwriter"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetParallelism = 4

// parquetSchema ties a topic to its typed row.
type parquetSchema struct {
	obj    interface{}
	decode func(msg []byte) (interface{}, error)
}

var parquetSchemas = map[string]parquetSchema{
	models.TopicOrderFacts: {
		obj: new(FactRecord),
		decode: func(msg []byte) (interface{}, error) {
			var r FactRecord
			err := json.Unmarshal(msg, &r)
			return r, err
		},
	},
	models.TopicExecutiveView: {obj: new(MetricRecord), decode: decodeMetricRecord},
	models.TopicManagerView:   {obj: new(MetricRecord), decode: decodeMetricRecord},
}

func decodeMetricRecord(msg []byte) (interface{}, error) {
	var r MetricRecord
	err := json.Unmarshal(msg, &r)
	return r, err
}

// schemaFor returns the row schema registered for topic.
func schemaFor(topic string) (parquetSchema, error) {
	sc, ok := parquetSchemas[topic]
	if !ok {
		return parquetSchema{}, fmt.Errorf("no parquet schema for topic %s", topic)
	}
	return sc, nil
}

// ParquetOutput writes one data.parquet per topic and partition, either to
// local disk or, when a cloud writer factory is set, to object storage.
type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(basePath, folder string, factory cloudwriter.CloudWriterFactory, bucket string) *ParquetOutput {
	p := &ParquetOutput{
		basePath:           basePath,
		folder:             folder,
		writers:            make(map[string]*writer.ParquetWriter),
		files:              make(map[string]source.ParquetFile),
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
	}
	if factory == nil {
		p.cleanup()
	}
	return p
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	sc, err := schemaFor(topic)
	if err != nil {
		return err
	}
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}
	row, err := sc.decode(msg)
	if err != nil {
		return fmt.Errorf("invalid %s row: %w", topic, err)
	}

	partition := partitionPath(event)
	writerKey := topic + "/" + partition

	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, topic, partition, sc)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// cleanup removes parquet files left by a previous local export.
func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return
	}
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error cleaning up Parquet files: %v", err)
	}
}

func (p *ParquetOutput) createNewWriter(writerKey, topic, partition string, sc parquetSchema) (*writer.ParquetWriter, error) {
	var (
		fw  source.ParquetFile
		err error
	)
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, partition, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = cloudwriter.NewParquetFile(cloudWriter)
	} else {
		fullPath := topicDir(p.basePath, p.folder, topic, partition)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, sc.obj, parquetParallelism)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

// Close flushes every writer and closes its file; for cloud destinations
// closing the file performs the upload.
func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for key %s: %v", key, err)
			}
		}
		delete(p.writers, key)
		delete(p.files, key)
	}
	return lastErr
}
