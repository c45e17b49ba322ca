package utils

import "io"

type flushableWriter interface {
	Flush() error
}

type flushingWriter struct {
	delegate io.Writer
}

// NewFlushingWriter wraps the provided writer so buffered output is flushed after every write.
func NewFlushingWriter(delegate io.Writer) io.Writer {
	return flushingWriter{delegate: delegate}
}

// Write forwards the payload and flushes the delegate when it supports flushing.
func (writer flushingWriter) Write(payload []byte) (int, error) {
	bytesWritten, writeError := writer.delegate.Write(payload)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushable, supportsFlush := writer.delegate.(flushableWriter); supportsFlush {
		if flushError := flushable.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}
