package platform

// Package platform contains OS integration glue: filesystem helpers for
// locating input files and preparing the output directory, and lookup of
// external tools on PATH.
