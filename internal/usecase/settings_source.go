package usecase

import (
	"airtrack-service/internal/domain/entity"
)

// SettingsSource supplies the current runtime settings. The concrete
// implementation reloads them from a file while the process runs, so
// consumers must call Current on every use instead of caching the value.
type SettingsSource interface {
	Current() entity.Settings
}
