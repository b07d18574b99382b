package log

import (
	"io"
	"testing"
)

func benchLogger(level Level, format Format, addSource bool) *Logger {
	return New(Config{
		Level:       level,
		Format:      format,
		Output:      NewOutput(io.Discard),
		AddSource:   addSource,
		ServiceName: "blogctl",
	})
}

func BenchmarkLoggerInfo(b *testing.B) {
	logger := benchLogger(LevelInfo, FormatJSON, false)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		logger.Info("blog fetched",
			"blog_id", "64f1c9",
			"comments", 12,
			"cached", true,
		)
	}
}

func BenchmarkLoggerInfoWithSource(b *testing.B) {
	logger := benchLogger(LevelInfo, FormatJSON, true)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		logger.Info("blog fetched",
			"blog_id", "64f1c9",
			"comments", 12,
		)
	}
}

func BenchmarkLoggerDebugDisabled(b *testing.B) {
	logger := benchLogger(LevelInfo, FormatJSON, false)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		logger.Debug("request sent",
			"method", "GET",
			"path", "/blogs",
		)
	}
}

func BenchmarkLoggerError(b *testing.B) {
	logger := benchLogger(LevelError, FormatJSON, false)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		logger.Error("request failed",
			"path", "/blogs",
			"error", "connection refused",
		)
	}
}

func BenchmarkLoggerFormatText(b *testing.B) {
	logger := benchLogger(LevelInfo, FormatText, false)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		logger.Info("blog fetched",
			"blog_id", "64f1c9",
			"comments", 12,
		)
	}
}

func BenchmarkLoggerParallel(b *testing.B) {
	logger := benchLogger(LevelInfo, FormatJSON, false)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("blog fetched",
				"blog_id", "64f1c9",
				"comments", 12,
			)
		}
	})
}

func BenchmarkLoggerWithManyFields(b *testing.B) {
	logger := benchLogger(LevelInfo, FormatJSON, false)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		logger.Info("session restored",
			"user_id", "64f1c9",
			"email", "alice@example.com",
			"admin", false,
			"blog_count", 3,
			"latency_ms", 12.5,
			"endpoint", "/users/details",
			"scopes", []string{"read", "comment", "publish"},
			"request_id", "a1b2c3",
		)
	}
}
