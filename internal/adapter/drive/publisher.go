package drive

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
)

// Publisher uploads backup archives with an idempotent upsert: repeated
// publishes of the same name replace one Drive file instead of piling up
// copies.
type Publisher struct {
	api    API
	logger zerolog.Logger
}

// NewPublisher creates a new Publisher.
func NewPublisher(api API, logger zerolog.Logger) *Publisher {
	return &Publisher{
		api:    api,
		logger: logger,
	}
}

// Publish uploads payload under name. An existing file with that name is
// updated in place. A failed existence lookup falls back to create, so a
// flaky lookup can at worst produce a duplicate, never lose a backup.
func (p *Publisher) Publish(ctx context.Context, name string, payload []byte) error {
	fileID, err := p.api.FindByName(ctx, name)
	if err != nil {
		p.logger.Warn().Err(err).Str("file", name).
			Msg("drive lookup failed, uploading as new file")
		fileID = ""
	}

	if fileID != "" {
		if err := p.api.Update(ctx, fileID, name, bytes.NewReader(payload)); err != nil {
			return err
		}

		p.logger.Info().Str("file", name).Str("file_id", fileID).
			Msg("updated existing drive file")

		return nil
	}

	if err := p.api.Create(ctx, name, bytes.NewReader(payload)); err != nil {
		return err
	}

	p.logger.Info().Str("file", name).Msg("uploaded new drive file")

	return nil
}
