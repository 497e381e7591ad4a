// Package drive publishes backup archives to a Google Drive folder.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/manav-coupa/store-management/internal/domain"
)

// Config holds Google Drive publishing configuration. Publishing is
// optional; with no credentials or folder configured the ledger runs
// local-only.
type Config struct {
	CredentialsPath string // OAuth client credentials JSON from Google Cloud Console
	TokenPath       string // stored OAuth2 token, written by the auth CLI flow
	FolderID        string // destination Drive folder
}

// Configured reports whether enough settings are present to attempt
// Drive publishing.
func (c Config) Configured() bool {
	return c.CredentialsPath != "" && c.FolderID != ""
}

// API is the Drive surface the publisher needs.
type API interface {
	FindByName(ctx context.Context, name string) (fileID string, err error)
	Create(ctx context.Context, name string, content io.Reader) error
	Update(ctx context.Context, fileID, name string, content io.Reader) error
}

// Service implements API against the Drive v3 API.
type Service struct {
	files    *driveapi.FilesService
	folderID string
}

// NewService builds a Drive client from stored credentials and token
// files. It returns domain.ErrDriveNotConfigured when publishing is not
// set up, including when the token file has not been created yet.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if !cfg.Configured() {
		return nil, domain.ErrDriveNotConfigured
	}

	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	token, err := LoadToken(cfg.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no stored token, run the auth flow first", domain.ErrDriveNotConfigured)
		}

		return nil, fmt.Errorf("load drive token: %w", err)
	}

	client := oauthConfig.Client(ctx, token)

	svc, err := driveapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Service{
		files:    svc.Files,
		folderID: cfg.FolderID,
	}, nil
}

// OAuthConfig parses the OAuth client credentials file. The drive.file
// scope only grants access to files this app created.
func OAuthConfig(cfg Config) (*oauth2.Config, error) {
	credBytes, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read drive credentials: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(credBytes, driveapi.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}

	return oauthConfig, nil
}

// FindByName looks up a non-trashed file by name inside the configured
// folder and returns its ID, or empty when absent.
func (s *Service) FindByName(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false",
		escapeQueryValue(name), s.folderID)

	result, err := s.files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	if len(result.Files) == 0 {
		return "", nil
	}

	return result.Files[0].Id, nil
}

// Create uploads a new file into the configured folder.
func (s *Service) Create(ctx context.Context, name string, content io.Reader) error {
	metadata := &driveapi.File{
		Name:    name,
		Parents: []string{s.folderID},
	}

	_, err := s.files.Create(metadata).
		Media(content).
		Fields("id, name, size").
		Context(ctx).
		Do()

	return err
}

// Update replaces the content of an existing file.
func (s *Service) Update(ctx context.Context, fileID, name string, content io.Reader) error {
	metadata := &driveapi.File{Name: name}

	_, err := s.files.Update(fileID, metadata).
		Media(content).
		Fields("id, name, size").
		Context(ctx).
		Do()

	return err
}

func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}
