package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"github.com/labstack/gommon/log"
	"gratitude/cmd/internal/contract"
	"gratitude/cmd/internal/domain/entity"
	"gratitude/cmd/internal/infrastructure/aws/storage"
	"gratitude/cmd/internal/utils/apierror"
	"io"
	"time"
)

const archiveTimeout = 30 * time.Second

var exportHeader = []string{"Content", "Date Created"}

// ExportEntries snapshots every entry into an in-memory CSV file. When an
// archive bucket is configured, the same bytes are uploaded in the background.
func (g *DefaultGratitudeService) ExportEntries() (*contract.ExportFile, apierror.ErrorResponse) {
	entries, err := g.Repo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch entries for export: %v", err)
		return nil, apierror.InternalServerError
	}

	var buf bytes.Buffer
	if err := WriteEntriesCSV(&buf, entries); err != nil {
		log.Errorf("failed to write export: %v", err)
		return nil, apierror.InternalServerError
	}

	data := buf.Bytes()
	if g.S3 != nil {
		go g.archiveExport(data)
	}

	return &contract.ExportFile{
		Name: contract.ExportFileName,
		Data: data,
	}, nil
}

// WriteEntriesCSV writes the header row and one row per entry, in the order
// given. Rows end in CRLF.
func WriteEntriesCSV(w io.Writer, entries []*entity.Gratitude) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		row := []string{entry.Content, FormatExport(entry.CreatedAt)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (g *DefaultGratitudeService) archiveExport(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	key := storage.ExportKey(NowUTC())
	if _, err := g.S3.UploadFile(ctx, data, key); err != nil {
		log.Errorf("failed to archive export %s: %v", key, err)
		return
	}
	log.Debugf("archived export to %s", key)
}
