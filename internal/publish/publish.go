// Package publish uploads generated leaderboard artifacts to Azure Blob
// Storage so a static site can serve them.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// ErrNoAccountURL is returned when publishing without a configured account.
var ErrNoAccountURL = errors.New("no storage account URL configured")

// Options configures an upload run.
type Options struct {
	AccountURL string
	Container  string
	Prefix     string
	SourceDir  string
	Logger     *slog.Logger
}

// uploader abstracts the blob client so the walk logic is testable without
// an Azure account.
type uploader interface {
	upload(ctx context.Context, name string, file *os.File, contentType, contentEncoding string) error
}

// Run authenticates with the ambient Azure credential chain and uploads every
// regular file under SourceDir. It returns the number of uploaded blobs.
func Run(ctx context.Context, opts Options) (int, error) {
	if opts.AccountURL == "" {
		return 0, ErrNoAccountURL
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return 0, fmt.Errorf("acquiring Azure credential: %w", err)
	}
	client, err := azblob.NewClient(opts.AccountURL, cred, nil)
	if err != nil {
		return 0, fmt.Errorf("creating blob client: %w", err)
	}

	return uploadDir(ctx, &blobUploader{client: client, container: opts.Container}, opts)
}

func uploadDir(ctx context.Context, up uploader, opts Options) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	count := 0
	err := filepath.WalkDir(opts.SourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(opts.SourceDir, p)
		if err != nil {
			return err
		}
		name := blobName(opts.Prefix, rel)

		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("opening %s: %w", p, err)
		}
		defer f.Close()

		contentType, contentEncoding := contentHeaders(rel)
		if err := up.upload(ctx, name, f, contentType, contentEncoding); err != nil {
			return fmt.Errorf("uploading %s: %w", name, err)
		}

		logger.Info("uploaded blob", "name", name, "content_type", contentType)
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

// blobName joins the configured prefix and a relative file path with forward
// slashes.
func blobName(prefix, rel string) string {
	name := filepath.ToSlash(rel)
	if prefix == "" {
		return name
	}
	return path.Join(strings.Trim(prefix, "/"), name)
}

// contentHeaders picks the content type and encoding for a file. A .gz suffix
// is served as its underlying type with gzip content encoding, so browsers
// decompress transparently.
func contentHeaders(rel string) (contentType, contentEncoding string) {
	name := rel
	if strings.HasSuffix(name, ".gz") {
		contentEncoding = "gzip"
		name = strings.TrimSuffix(name, ".gz")
	}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		contentType = "application/json"
	case ".txt":
		contentType = "text/plain; charset=utf-8"
	case ".html":
		contentType = "text/html; charset=utf-8"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			contentType = t
		} else {
			contentType = "application/octet-stream"
		}
	}
	return contentType, contentEncoding
}

type blobUploader struct {
	client    *azblob.Client
	container string
}

func (u *blobUploader) upload(ctx context.Context, name string, file *os.File, contentType, contentEncoding string) error {
	headers := &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	if contentEncoding != "" {
		headers.BlobContentEncoding = to.Ptr(contentEncoding)
	}

	_, err := u.client.UploadFile(ctx, u.container, name, file, &azblob.UploadFileOptions{
		HTTPHeaders: headers,
	})
	return err
}
