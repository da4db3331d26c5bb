// Package vlog provides the small set of stderr diagnostics used
// throughout cmd/ and batch/: progress and warning lines that must
// never land on stdout, where the alignment output itself goes.
package vlog

import (
	"fmt"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "", 0)

// Warnf logs a progress or informational line to stderr.
func Warnf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

// Errorf logs an error line to stderr without exiting.
func Errorf(format string, args ...interface{}) {
	logger.Printf("error: "+format, args...)
}

// ExitWithMessage logs err and exits with status 1.
func ExitWithMessage(err error) {
	logger.Print(err)
	os.Exit(1)
}

// ExitUsage prints a usage message to stderr and exits with status 0,
// matching Virulign.cpp's argument-count/usage check (it exits 0, not
// 1, on a bare usage request).
func ExitUsage(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(0)
}
