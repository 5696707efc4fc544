package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/pkg/errors"
)

type fileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource создает загрузчик из JSON/YAML файла (формат по расширению)
func NewFileSource(path string, logger *zap.Logger) repository.DatasetSource {
	return &fileSource{
		path:   path,
		logger: logger,
	}
}

func (s *fileSource) Name() string {
	return "file:" + s.path
}

func (s *fileSource) Load(ctx context.Context) ([]domain.FieldRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}

	doc, err := Decode(data, formatOf(s.path))
	if err != nil {
		s.logger.Error("Failed to decode dataset", zap.String("path", s.path), zap.Error(err))
		return nil, err
	}

	records, err := Build(doc.Records())
	if err != nil {
		s.logger.Error("Dataset validation failed", zap.String("path", s.path), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Dataset loaded",
		zap.String("path", s.path),
		zap.Int("fields", len(records)),
	)
	return records, nil
}

// Format - формат файла с данными
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode разбирает документ; синтаксические ошибки возвращаются как ErrInvalidDataset
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	var err error

	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	default:
		err = json.Unmarshal(data, &doc)
	}

	if err != nil {
		return Document{}, errors.ErrInvalidDataset.WithDetails(map[string]interface{}{
			"format": string(format),
			"reason": err.Error(),
		})
	}
	return doc, nil
}
