package batch

// Package batch implements the batch conversion run: it prepares the output
// directory, discovers MP3 inputs in the working directory, converts them one
// at a time through a convert.Transcoder and reports per-file progress and a
// final summary.
