package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"moneyflow/internal/flowerror"
	"moneyflow/internal/logging"
)

// backupFilename is the fixed name of the single backup object kept in the
// application's hidden Drive folder. Uploads overwrite it in place.
const backupFilename = "moneyflow-backup.json"

const appDataFolder = "appDataFolder"

// DriveClient stores and retrieves the backup document in the Google Drive
// application data folder, which is invisible to the user's regular Drive.
type DriveClient struct {
	service *drive.Service
	logger  logging.Logger
}

// NewDriveClient builds a Drive client from an OAuth token source.
func NewDriveClient(ctx context.Context, ts oauth2.TokenSource, logger logging.Logger) (*DriveClient, error) {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	service, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, &flowerror.SyncError{Op: "connect", Err: err}
	}
	return &DriveClient{service: service, logger: logger}, nil
}

// BackupInfo describes the remote backup object.
type BackupInfo struct {
	ID           string
	Name         string
	ModifiedTime string
	Size         int64
}

// find returns the remote backup file, or nil when none exists.
func (c *DriveClient) find(ctx context.Context) (*drive.File, error) {
	list, err := c.service.Files.List().
		Spaces(appDataFolder).
		Q(fmt.Sprintf("name = '%s'", backupFilename)).
		Fields("files(id, name, modifiedTime, size)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(list.Files) == 0 {
		return nil, nil
	}
	return list.Files[0], nil
}

// Info returns metadata about the remote backup, or nil when no backup has
// been uploaded yet.
func (c *DriveClient) Info(ctx context.Context) (*BackupInfo, error) {
	f, err := c.find(ctx)
	if err != nil {
		return nil, &flowerror.SyncError{Op: "info", Err: err}
	}
	if f == nil {
		return nil, nil
	}
	return &BackupInfo{ID: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime, Size: f.Size}, nil
}

// Upload writes the backup document to Drive, creating the file on first use
// and updating it in place afterwards.
func (c *DriveClient) Upload(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &flowerror.SyncError{Op: "upload", Err: err}
	}

	existing, err := c.find(ctx)
	if err != nil {
		return &flowerror.SyncError{Op: "upload", Err: err}
	}

	if existing == nil {
		meta := &drive.File{Name: backupFilename, Parents: []string{appDataFolder}}
		_, err = c.service.Files.Create(meta).
			Media(bytes.NewReader(data)).
			Context(ctx).
			Do()
	} else {
		_, err = c.service.Files.Update(existing.Id, &drive.File{}).
			Media(bytes.NewReader(data)).
			Context(ctx).
			Do()
	}
	if err != nil {
		return &flowerror.SyncError{Op: "upload", Err: err}
	}

	c.logger.Info("uploaded backup to Drive",
		logging.Field{Key: "bytes", Value: len(data)},
		logging.Field{Key: "transactions", Value: len(doc.Transactions)})
	return nil
}

// Download fetches and validates the remote backup document. It returns a
// nil document when no backup exists.
func (c *DriveClient) Download(ctx context.Context) (*Document, error) {
	existing, err := c.find(ctx)
	if err != nil {
		return nil, &flowerror.SyncError{Op: "download", Err: err}
	}
	if existing == nil {
		return nil, nil
	}

	resp, err := c.service.Files.Get(existing.Id).Context(ctx).Download()
	if err != nil {
		return nil, &flowerror.SyncError{Op: "download", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &flowerror.SyncError{Op: "download", Err: err}
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.logger.Info("downloaded backup from Drive",
		logging.Field{Key: "bytes", Value: len(data)},
		logging.Field{Key: "transactions", Value: len(doc.Transactions)})
	return doc, nil
}

// Delete removes the remote backup. Deleting a non-existent backup is a
// no-op.
func (c *DriveClient) Delete(ctx context.Context) error {
	existing, err := c.find(ctx)
	if err != nil {
		return &flowerror.SyncError{Op: "delete", Err: err}
	}
	if existing == nil {
		return nil
	}
	if err := c.service.Files.Delete(existing.Id).Context(ctx).Do(); err != nil {
		return &flowerror.SyncError{Op: "delete", Err: err}
	}
	c.logger.Info("deleted remote backup")
	return nil
}
