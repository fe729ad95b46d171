package gui

import (
	"context"
	"fmt"
	"os/user"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/bridge"
	"github.com/berrythewa/marker/internal/config"
	apptheme "github.com/berrythewa/marker/internal/gui/theme"
	"github.com/berrythewa/marker/internal/gui/views"
	"github.com/berrythewa/marker/pkg/format"
)

const (
	recentMenuSize  = 10
	recentLabelSize = 60
)

// App represents the main GUI application
type App struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	ctx     context.Context
	cancel  context.CancelFunc
	config  *config.Config
	logger  *zap.Logger

	// Every file operation goes through the invoker.
	invoker bridge.Invoker

	// State
	doc         *Document
	view        *views.EditorView
	mainMenu    *fyne.MainMenu
	recentItem  *fyne.MenuItem
	previewItem *fyne.MenuItem

	// Swapped in tests.
	showError func(err error)
	showInfo  func(title, message string)
	confirm   func(title, message string, callback func(bool))
}

// NewApp creates the editor window on fyneApp.
func NewApp(fyneApp fyne.App, cfg *config.Config, logger *zap.Logger, invoker bridge.Invoker) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	fyneApp.Settings().SetTheme(apptheme.NewEditorTheme())

	a := &App{
		fyneApp: fyneApp,
		window:  fyneApp.NewWindow(appTitle),
		ctx:     ctx,
		cancel:  cancel,
		config:  cfg,
		logger:  logger,
		invoker: invoker,
		doc:     NewDocument(cfg.Editor.WelcomeText),
	}
	a.showError = func(err error) { dialog.ShowError(err, a.window) }
	a.showInfo = func(title, message string) { dialog.ShowInformation(title, message, a.window) }
	a.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, a.window)
	}

	a.setupMainWindow()
	a.greet()
	return a
}

// setupMainWindow configures the main application window
func (a *App) setupMainWindow() {
	a.window.Resize(fyne.NewSize(a.config.Editor.WindowWidth, a.config.Editor.WindowHeight))

	a.view = views.NewEditorView(views.EditorActions{
		OnOpen:    a.OpenDialog,
		OnSave:    a.Save,
		OnSaveAs:  a.SaveAsDialog,
		OnChanged: a.onChanged,

		OnPreviewToggled: a.onPreviewToggled,
	}, a.config.Editor.ShowPreview)
	a.view.SetMarkdown(a.doc.Content())
	a.window.SetContent(a.view.Content())

	a.setupMenu()
	a.setupShortcuts()

	a.window.SetCloseIntercept(a.requestClose)
	a.window.SetOnClosed(a.cancel)
	a.refresh()
}

func (a *App) setupMenu() {
	a.recentItem = fyne.NewMenuItem("Open Recent", nil)
	a.refreshRecent()

	openExternal := fyne.NewMenuItem("Open in Default App", a.openExternal)

	file := fyne.NewMenu("File",
		&fyne.MenuItem{Label: "Open…", Action: a.OpenDialog, Shortcut: openShortcut},
		a.recentItem,
		fyne.NewMenuItemSeparator(),
		&fyne.MenuItem{Label: "Save", Action: a.Save, Shortcut: saveShortcut},
		fyne.NewMenuItem("Save As…", a.SaveAsDialog),
		fyne.NewMenuItemSeparator(),
		openExternal,
	)
	v := a.view
	formatting := fyne.NewMenu("Format",
		&fyne.MenuItem{Label: "Bold", Action: v.Bold, Shortcut: boldShortcut},
		&fyne.MenuItem{Label: "Italic", Action: v.Italic, Shortcut: italicShortcut},
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Heading 1", func() { v.Heading(1) }),
		fyne.NewMenuItem("Heading 2", func() { v.Heading(2) }),
		fyne.NewMenuItem("Heading 3", func() { v.Heading(3) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Bulleted List", v.BulletList),
		fyne.NewMenuItem("Numbered List", v.NumberedList),
		fyne.NewMenuItem("Quote", v.Quote),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Link", v.InsertLink),
		fyne.NewMenuItem("Table", v.InsertTable),
		fyne.NewMenuItem("Horizontal Rule", v.InsertRule),
	)

	a.previewItem = fyne.NewMenuItem("Toggle Preview", v.TogglePreview)
	a.previewItem.Checked = v.PreviewVisible()
	view := fyne.NewMenu("View", a.previewItem)

	a.mainMenu = fyne.NewMainMenu(file, formatting, view)
	a.window.SetMainMenu(a.mainMenu)
}

var (
	openShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}
	saveShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}

	boldShortcut   = &desktop.CustomShortcut{KeyName: fyne.KeyB, Modifier: fyne.KeyModifierShortcutDefault}
	italicShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyI, Modifier: fyne.KeyModifierShortcutDefault}
)

func (a *App) setupShortcuts() {
	a.window.Canvas().AddShortcut(openShortcut, func(fyne.Shortcut) { a.OpenDialog() })
	a.window.Canvas().AddShortcut(saveShortcut, func(fyne.Shortcut) { a.Save() })
	a.window.Canvas().AddShortcut(boldShortcut, func(fyne.Shortcut) { a.view.Bold() })
	a.window.Canvas().AddShortcut(italicShortcut, func(fyne.Shortcut) { a.view.Italic() })
}

// greet shows the backend greeting in the status bar.
func (a *App) greet() {
	name := "there"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	greeting, err := bridge.Greet(a.ctx, a.invoker, name)
	if err != nil {
		a.logger.Warn("Greeting failed", zap.Error(err))
		return
	}
	a.view.SetStatus(greeting)
}

// Window returns the main window.
func (a *App) Window() fyne.Window {
	return a.window
}

// Document returns the document being edited.
func (a *App) Document() *Document {
	return a.doc
}

// Run shows the window and blocks until the application quits.
func (a *App) Run() {
	a.window.ShowAndRun()
}

func (a *App) onChanged(markdown string) {
	a.doc.Edit(markdown)
	a.refresh()
}

func (a *App) onPreviewToggled(visible bool) {
	if a.previewItem == nil {
		return
	}
	a.previewItem.Checked = visible
	a.mainMenu.Refresh()
}

// refresh syncs the window title and header with the document.
func (a *App) refresh() {
	a.window.SetTitle(a.doc.Title())
	a.view.SetFileInfo(a.doc.Path(), a.doc.Saved())
}

func (a *App) fileFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter(a.config.Editor.Extensions)
}

// OpenDialog asks for a markdown file and opens it.
func (a *App) OpenDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(fmt.Errorf("failed to open file: %w", err))
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.OpenPath(path)
	}, a.window)
	d.SetFilter(a.fileFilter())
	d.Show()
}

// OpenPath loads path into the editor through read_file.
func (a *App) OpenPath(path string) {
	content, err := bridge.ReadFile(a.ctx, a.invoker, path)
	if err != nil {
		a.logger.Error("Failed to open file", zap.String("path", path), zap.Error(err))
		a.showError(fmt.Errorf("failed to open file: %w", err))
		return
	}
	a.doc.Loaded(path, content)
	a.view.SetMarkdown(content)
	a.view.FocusEditor(a.window.Canvas())
	a.refresh()
	a.refreshRecent()
}

// Save writes to the current file, asking for a location first if the
// document has never been saved.
func (a *App) Save() {
	if !a.doc.HasPath() {
		a.SaveAsDialog()
		return
	}
	a.SaveTo(a.doc.Path())
}

// SaveAsDialog asks for a location and saves there.
func (a *App) SaveAsDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(fmt.Errorf("failed to save file: %w", err))
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		a.SaveTo(path)
	}, a.window)
	d.SetFilter(a.fileFilter())
	if a.doc.HasPath() {
		d.SetFileName(filepath.Base(a.doc.Path()))
	} else {
		d.SetFileName("untitled.md")
	}
	d.Show()
}

// SaveTo writes the buffer to path through write_file. The document only
// adopts path once the write succeeds.
func (a *App) SaveTo(path string) {
	if err := bridge.WriteFile(a.ctx, a.invoker, path, a.doc.Content()); err != nil {
		a.logger.Error("Failed to save file", zap.String("path", path), zap.Error(err))
		a.showError(fmt.Errorf("failed to save file: %w", err))
		return
	}
	a.doc.SavedAs(path)
	a.refresh()
	a.refreshRecent()
	a.showInfo("Saved", "File saved successfully!")
}

func (a *App) openExternal() {
	if !a.doc.HasPath() {
		a.showInfo("Open in Default App", "Save the document first.")
		return
	}
	if err := bridge.OpenURL(a.ctx, a.invoker, a.doc.Path()); err != nil {
		a.showError(err)
	}
}

// refreshRecent rebuilds the Open Recent submenu. Hosts without the recent
// plugin leave it empty.
func (a *App) refreshRecent() {
	if a.recentItem == nil {
		return
	}
	docs, err := bridge.RecentDocuments(a.ctx, a.invoker, recentMenuSize)
	if err != nil {
		a.logger.Debug("Recent documents unavailable", zap.Error(err))
		docs = nil
	}

	items := make([]*fyne.MenuItem, 0, len(docs)+2)
	for _, d := range docs {
		path := d.Path
		label := format.TruncatePath(path, recentLabelSize)
		items = append(items, fyne.NewMenuItem(label, func() { a.openRecent(path) }))
	}
	if len(items) > 0 {
		items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Clear Recent", a.clearRecent))
	}
	a.recentItem.ChildMenu = fyne.NewMenu("", items...)
	a.recentItem.Disabled = len(docs) == 0
	if a.mainMenu != nil {
		a.mainMenu.Refresh()
	}
}

func (a *App) openRecent(path string) {
	if a.doc.Saved() {
		a.OpenPath(path)
		return
	}
	a.confirm("Unsaved changes", "Discard unsaved changes?", func(ok bool) {
		if ok {
			a.OpenPath(path)
		}
	})
}

func (a *App) clearRecent() {
	if err := bridge.ClearRecentDocuments(a.ctx, a.invoker); err != nil {
		a.showError(err)
		return
	}
	a.refreshRecent()
}

// requestClose closes the window, confirming first if there are unsaved
// changes.
func (a *App) requestClose() {
	if a.doc.Saved() {
		a.window.Close()
		return
	}
	a.confirm("Unsaved changes", "Discard unsaved changes and quit?", func(ok bool) {
		if ok {
			a.window.Close()
		}
	})
}
