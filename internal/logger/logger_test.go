package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestSetLevel(t *testing.T) {
	defer reset()

	SetLevel(LevelInfo)
	assert.False(t, IsVerbose())

	SetLevel(LevelDebug)
	assert.True(t, IsVerbose())
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("processing %s: %v", "surah_1.json", "boom")

	assert.Equal(t, "[ERROR] processing surah_1.json: boom\n", buf.String())
}

func TestVerboseOnlyMessages(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("test message %s", "arg") }, "[DEBUG] test message arg\n"},
		{"info", func() { Info("info message %d", 42) }, "[INFO] info message 42\n"},
		{"warn", func() { Warn("warning message") }, "[WARN] warning message\n"},
		{"section", func() { Section("Index") }, "\n=== Index ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" when verbose", func(t *testing.T) {
			defer reset()
			var buf bytes.Buffer
			SetOutput(&buf)
			SetVerbose(true)

			tt.log()

			assert.Equal(t, tt.want, buf.String())
		})

		t.Run(tt.name+" when quiet", func(t *testing.T) {
			defer reset()
			var buf bytes.Buffer
			SetOutput(&buf)
			SetVerbose(false)

			tt.log()

			assert.Zero(t, buf.Len())
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)

	Debug("hidden")
	Info("hidden")
	Warn("shown")
	Error("shown")

	assert.Equal(t, "[WARN] shown\n[ERROR] shown\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
