package convert

import (
	"github.com/ytget/yt-dl/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	StartConversion(inputPath string, mode Mode) (*model.ConversionTask, error)
	ConvertAll(files []string, mode Mode) ([]*model.ConversionTask, []error)
	StopConversion(taskID string) error
	GetTask(taskID string) (*model.ConversionTask, bool)
}
