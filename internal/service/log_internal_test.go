package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/phrazzld/planet-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFailureLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		level string
	}{
		{name: "not found", err: store.ErrUserNotFound, level: "DEBUG"},
		{name: "duplicate user", err: fmt.Errorf("create: %w", store.ErrUserExists), level: "DEBUG"},
		{name: "generic duplicate", err: store.ErrDuplicate, level: "DEBUG"},
		{name: "other", err: errors.New("connection reset"), level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			logFailure(log, "operation failed", tt.err, "userid", "jsmith")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "jsmith", entry["userid"])
			assert.Equal(t, tt.err.Error(), entry["error"])
		})
	}
}
