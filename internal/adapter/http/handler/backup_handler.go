package handler

import (
	"context"
	"net/http"

	"github.com/manav-coupa/store-management/internal/adapter/http/dto"
	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/infrastructure/backup"
)

// BackupService defines the behavior needed by BackupHandler.
type BackupService interface {
	Run(ctx context.Context, trigger backup.Trigger) (*backup.RunStatus, error)
	LastRun() *backup.RunStatus
}

// SnapshotService assembles full-ledger snapshots for direct export.
type SnapshotService interface {
	Export(ctx context.Context) (*domain.Snapshot, error)
}

// BackupHandler handles backup-related HTTP requests.
type BackupHandler struct {
	scheduler BackupService // nil when backups are disabled
	exporter  SnapshotService
	drive     bool
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(scheduler BackupService, exporter SnapshotService, drive bool) *BackupHandler {
	return &BackupHandler{
		scheduler: scheduler,
		exporter:  exporter,
		drive:     drive,
	}
}

// Trigger runs a manual backup. Unlike scheduled runs, failures surface
// to the caller.
func (h *BackupHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		writeError(w, http.StatusServiceUnavailable, "backups disabled", "set BACKUP_ENABLED=true")
		return
	}

	status, err := h.scheduler.Run(r.Context(), backup.TriggerManual)
	if err != nil {
		writeError(w, mapDomainError(err), "backup failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BackupRunResponse{Status: status})
}

// Export returns the full-ledger snapshot as a download, without writing
// an archive anywhere.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.exporter.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed", err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName+`"`)
	writeJSON(w, http.StatusOK, snapshot)
}

// Status reports whether backups run and how the last one went.
func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := dto.BackupStatusResponse{
		Enabled: h.scheduler != nil,
		Drive:   h.drive,
	}

	if h.scheduler != nil {
		resp.LastRun = h.scheduler.LastRun()
	}

	writeJSON(w, http.StatusOK, resp)
}
