package model

import (
	"fmt"
	"strings"
	"time"
)

// ConversionTask represents the conversion of a single input file
type ConversionTask struct {
	ID         string
	InputName  string // file name inside the working directory
	InputPath  string
	OutputName string // file name inside the output directory
	OutputPath string
	Status     TaskStatus
	LastError  string // diagnostic text if the conversion failed
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewConversionTask creates a pending task for the given input and output
func NewConversionTask(id, inputPath, outputPath string) *ConversionTask {
	return &ConversionTask{
		ID:         id,
		InputName:  baseName(inputPath),
		InputPath:  inputPath,
		OutputName: baseName(outputPath),
		OutputPath: outputPath,
		Status:     TaskStatusPending,
	}
}

// Start moves the task into the converting state
func (ct *ConversionTask) Start() {
	ct.Status = TaskStatusConverting
	ct.StartedAt = time.Now()
}

// Complete marks the task as successfully converted
func (ct *ConversionTask) Complete() {
	ct.Status = TaskStatusCompleted
	ct.LastError = ""
	ct.FinishedAt = time.Now()
}

// Fail marks the task as failed and records the diagnostic text
func (ct *ConversionTask) Fail(diagnostic string) {
	ct.Status = TaskStatusError
	ct.LastError = diagnostic
	ct.FinishedAt = time.Now()
}

// Elapsed returns how long the conversion took, or zero if it has not finished
func (ct *ConversionTask) Elapsed() time.Duration {
	if ct.StartedAt.IsZero() || ct.FinishedAt.IsZero() {
		return 0
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}

// GetElapsedString returns elapsed time formatted as mm:ss.mmm, or "—" if unknown
func (ct *ConversionTask) GetElapsedString() string {
	elapsed := ct.Elapsed()
	if elapsed <= 0 {
		return "—"
	}

	minutes := int(elapsed / time.Minute)
	seconds := int((elapsed % time.Minute) / time.Second)
	millis := int((elapsed % time.Second) / time.Millisecond)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis))
	return b.String()
}

// baseName extracts the file name from a path (supports both / and \ separators)
func baseName(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
