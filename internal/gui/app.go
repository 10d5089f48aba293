package gui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/flashgen/internal/processor"
)

const (
	appID       = "org.codeberg.snonux.flashgen"
	windowTitle = "AI Flashcard Generator"
	description = "Generate flashcards from text files using AI."
	openLabel   = "Open Text File"
	headerSize  = 18
)

var windowSize = fyne.NewSize(600, 300)

// Pipeline turns the contents of a text file into a flashcard file
type Pipeline interface {
	ProcessReader(ctx context.Context, r io.Reader) (*processor.Result, error)
}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	openButton  *ttwidget.Button
	progress    *widget.ProgressBarInfinite
	statusLabel *widget.Label

	pipeline Pipeline
	runner   *JobRunner
	logger   *zap.Logger

	// Background processing
	ctx        context.Context
	cancel     context.CancelFunc
	stopOnDone func() bool
}

// New creates the desktop application running pipeline for each selected file.
// The application quits when ctx is cancelled.
func New(ctx context.Context, pipeline Pipeline, logger *zap.Logger) *Application {
	return NewWithApp(ctx, app.NewWithID(appID), pipeline, logger)
}

// NewWithApp builds the window on an existing fyne app
func NewWithApp(parent context.Context, fyneApp fyne.App, pipeline Pipeline, logger *zap.Logger) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)

	a := &Application{
		app:      fyneApp,
		pipeline: pipeline,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	a.runner = NewJobRunner(ctx)
	a.runner.SetCallbacks(a.onJobStatusUpdate, a.onJobComplete)

	a.setupUI()

	// Quit on SIGINT/SIGTERM, not on our own window close
	a.stopOnDone = context.AfterFunc(parent, func() {
		a.logger.Info("Shutting down")
		fyne.Do(a.app.Quit)
	})

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(windowTitle)
	a.window.Resize(windowSize)
	a.window.SetFixedSize(true)
	a.window.CenterOnScreen()

	header := canvas.NewText(windowTitle, theme.Color(theme.ColorNameForeground))
	header.TextSize = headerSize
	header.Alignment = fyne.TextAlignCenter

	descriptionLabel := widget.NewLabel(description)
	descriptionLabel.Alignment = fyne.TextAlignCenter

	a.openButton = ttwidget.NewButtonWithIcon(openLabel, theme.FolderOpenIcon(), a.onOpenFile)
	a.openButton.Importance = widget.HighImportance

	a.progress = widget.NewProgressBarInfinite()
	a.progress.Stop()
	a.progress.Hide()

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Alignment = fyne.TextAlignCenter

	content := container.NewPadded(container.NewVBox(
		header,
		descriptionLabel,
		container.NewCenter(a.openButton),
		a.progress,
		a.statusLabel,
	))

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.openButton.SetToolTip("Choose a .txt file to turn into flashcards (Ctrl+O)")

	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		if !a.openButton.Disabled() {
			a.onOpenFile()
		}
	})

	a.window.SetOnClosed(func() {
		if a.stopOnDone != nil {
			a.stopOnDone()
		}
		a.cancel()
		a.runner.Stop()
	})
}

// Run shows the window and blocks until the application quits
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onOpenFile shows the file picker filtered to text files
func (a *Application) onOpenFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			// Cancelled
			return
		}
		a.startJob(reader.URI().Name(), reader)
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	fileDialog.Resize(windowSize)
	fileDialog.Show()
}

// startJob runs the pipeline on r in the background. r is closed when the job ends.
func (a *Application) startJob(name string, r io.ReadCloser) {
	_, err := a.runner.Submit(name, func(ctx context.Context) (*processor.Result, error) {
		defer r.Close()
		return a.pipeline.ProcessReader(ctx, r)
	})
	if err != nil {
		r.Close()
		if errors.Is(err, ErrBusy) {
			a.updateStatus("Still working on the previous file...")
			return
		}
		a.showError(err)
		return
	}

	a.logger.Info("Generating flashcards", zap.String("input", name))
}

func (a *Application) onJobStatusUpdate(job *GenerationJob) {
	fyne.Do(func() {
		if job.Status == StatusProcessing || job.Status == StatusQueued {
			a.setBusy(true)
			a.updateStatus(fmt.Sprintf("Generating flashcards from %s...", job.Input))
		}
	})
}

func (a *Application) onJobComplete(job *GenerationJob) {
	if job.Error != nil {
		a.logger.Error("Flashcard generation failed",
			zap.String("input", job.Input),
			zap.Error(job.Error))
	}

	fyne.Do(func() {
		a.setBusy(false)
		a.updateStatus("")

		if job.Status == StatusFailed {
			if errors.Is(job.Error, context.Canceled) {
				return
			}
			dialog.ShowError(errors.New(errorMessage(job.Error)), a.window)
			return
		}

		dialog.ShowInformation("Success", successMessage(job.Result), a.window)
	})
}

func (a *Application) setBusy(busy bool) {
	if busy {
		a.openButton.Disable()
		a.progress.Show()
		a.progress.Start()
	} else {
		a.openButton.Enable()
		a.progress.Stop()
		a.progress.Hide()
	}
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	a.logger.Error("GUI error", zap.Error(err))
	dialog.ShowError(err, a.window)
}
