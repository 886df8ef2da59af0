package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type csvFile struct {
	file    *os.File
	writer  *csv.Writer
	headers []string
}

// CSVOutput writes one data.csv per topic and partition. The header is the
// sorted key set of the first message written to the file.
type CSVOutput struct {
	basePath string
	folder   string
	files    map[string]*csvFile
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csvFile),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	partition := partitionPath(event)
	fileKey := topic + "/" + partition
	out, ok := c.files[fileKey]
	if !ok {
		fullPath := topicDir(c.basePath, c.folder, topic, partition)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		out = &csvFile{file: file, writer: csv.NewWriter(file), headers: sortedKeys(event)}
		c.files[fileKey] = out

		if err := out.writer.Write(out.headers); err != nil {
			return err
		}
	}

	row := make([]string, len(out.headers))
	for i, header := range out.headers {
		if value, ok := event[header]; ok && value != nil {
			row[i] = fmt.Sprintf("%v", value)
		}
	}

	if err := out.writer.Write(row); err != nil {
		return err
	}
	out.writer.Flush()
	return out.writer.Error()
}

func (c *CSVOutput) Close() error {
	var firstErr error
	for key, out := range c.files {
		out.writer.Flush()
		if err := out.writer.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := out.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.files, key)
	}
	return firstErr
}

// JSONOutput writes newline-delimited JSON, one data.json per topic and
// partition.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	partition := partitionPath(event)
	fileKey := topic + "/" + partition
	file, ok := j.files[fileKey]
	if !ok {
		fullPath := topicDir(j.basePath, j.folder, topic, partition)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	var line bytes.Buffer
	if err := json.Compact(&line, msg); err != nil {
		return err
	}
	line.WriteByte('\n')
	_, err = file.Write(line.Bytes())
	return err
}

func (j *JSONOutput) Close() error {
	var firstErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(j.files, key)
	}
	return firstErr
}

// decodeEvent keeps numbers as json.Number so they print as written.
func decodeEvent(msg []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var event map[string]interface{}
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	return event, nil
}

func sortedKeys(event map[string]interface{}) []string {
	keys := make([]string, 0, len(event))
	for key := range event {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
