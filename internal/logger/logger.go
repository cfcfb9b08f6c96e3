package logger

import "go.uber.org/zap"

// L is the package level logger used across the library. It defaults to a
// nop logger so embedding applications opt into output explicitly.
var L = zap.NewNop().Sugar()

// Set replaces the default logger with the provided one.
func Set(l *zap.SugaredLogger) {
	if l != nil {
		L = l
	}
}
