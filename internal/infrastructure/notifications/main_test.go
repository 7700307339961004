package notifications

import (
	"os"
	"testing"

	"firmdesk.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}
