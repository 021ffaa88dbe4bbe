package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordJoin(t *testing.T) {
	before := testutil.ToFloat64(JoinAttempts.WithLabelValues("capacity_exceeded"))
	RecordJoin("capacity_exceeded")
	assert.Equal(t, before+1, testutil.ToFloat64(JoinAttempts.WithLabelValues("capacity_exceeded")))
}

func TestRecordNotification_SplitsFailures(t *testing.T) {
	created := testutil.ToFloat64(NotificationsCreated.WithLabelValues("event_created"))
	failed := testutil.ToFloat64(NotificationFailures.WithLabelValues("event_created"))

	RecordNotification("event_created", nil)
	RecordNotification("event_created", errors.New("insert failed"))

	assert.Equal(t, created+1, testutil.ToFloat64(NotificationsCreated.WithLabelValues("event_created")))
	assert.Equal(t, failed+1, testutil.ToFloat64(NotificationFailures.WithLabelValues("event_created")))
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/events", "200"))
	RecordAPIRequest("GET", "/api/events", 200, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/events", "200")))
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))
	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}
