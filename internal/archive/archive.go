package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCS archives compiled reports in a Cloud Storage bucket.
type GCS struct {
	bucket     *storage.BucketHandle
	bucketName string
	log        *slog.Logger
}

func NewGCS(client *storage.Client, bucket string, log *slog.Logger) *GCS {
	return &GCS{
		bucket:     client.Bucket(bucket),
		bucketName: bucket,
		log:        log.With("component", "archive", "bucket", bucket),
	}
}

// Archive writes pdf to reports/<period>/<reportID>.pdf unless that object
// already exists, and returns its gs:// URI.
func (g *GCS) Archive(ctx context.Context, period, reportID string, pdf []byte) (string, error) {
	name := ObjectName(period, reportID)
	uri := fmt.Sprintf("gs://%s/%s", g.bucketName, name)

	w := g.bucket.Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = "application/pdf"
	w.Metadata = map[string]string{"report-period": period}

	if _, err := io.Copy(w, bytes.NewReader(pdf)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", uri, err)
	}
	if err := w.Close(); err != nil {
		if preconditionFailed(err) {
			g.log.Info("report already archived", "object", name)
			return uri, nil
		}
		return "", fmt.Errorf("finalize %s: %w", uri, err)
	}

	g.log.Info("report archived", "object", name, "bytes", len(pdf))
	return uri, nil
}

// ObjectName returns the object path for a report, e.g.
// reports/q1-2025/<id>.pdf.
func ObjectName(period, reportID string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(period), "-"))
	if slug == "" {
		slug = "unscheduled"
	}
	return fmt.Sprintf("reports/%s/%s.pdf", slug, reportID)
}

func preconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}
