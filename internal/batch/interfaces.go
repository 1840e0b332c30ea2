package batch

import (
	"context"
	"io"
	"log"

	"github.com/ytget/mp3towav/internal/model"
)

// Converter defines the interface for the batch conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))

	// SetOutput sets where progress and summary lines are written
	SetOutput(w io.Writer)

	// SetLogger sets the logger for diagnostic lines
	SetLogger(l *log.Logger)

	// SetVerify enables checking every produced WAV after conversion
	SetVerify(verify bool)

	// SetProbe enables logging input audio properties before conversion
	SetProbe(probe bool)

	// Run converts every input file once and returns the summary
	Run(ctx context.Context) (model.RunSummary, error)

	// Batch returns the tasks of the last run, or nil before the first run
	Batch() *model.Batch
}
