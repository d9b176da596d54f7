package engine

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is a short user-facing message produced by an operation or
// by the background persistence of one.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications. It may be called from the persistence
// worker goroutine, never while the engine holds its lock.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

const (
	msgSaveFailed     = "Could not save changes to the server."
	msgUndo           = "Undo successful!"
	msgLinkAdded      = "Link added!"
	msgLinkDeleted    = "Link deleted!"
	msgGroupAdded     = "Group added!"
	msgGroupDeleted   = "Group deleted!"
	msgSocialDeleted  = "Social link deleted!"
	msgAppearance     = "Appearance updated!"
	msgThemeApplied   = "AI theme '%s' applied!"
	msgPaletteUpdated = "Palette '%s' updated!"
	msgGroupsApplied  = "Links organized with AI!"

	msgImportLogin   = "You must be logged in to import data."
	msgImportInvalid = "Invalid data file format."
	msgImportFailed  = "Failed to read or parse the file."
	msgImported      = "Data imported successfully!"
	msgExportLogin   = "You must be logged in to export your data."
	msgExportFailed  = "Failed to export data. Please try again."
	msgExported      = "Data exported successfully!"
)
