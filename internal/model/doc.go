package model

// Package model defines the data structures shared across the converter:
// conversion tasks, the batch that groups them for one run, status enums and
// the run summary. State transitions are explicit and driven by the batch
// service.
