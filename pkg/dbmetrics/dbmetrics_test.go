package dbmetrics

import (
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings WHERE company_id = $1"))
	assert.Equal(t, "update", operation("  UPDATE bookings SET status = $1"))
	assert.Equal(t, "unknown", operation(""))
}

func TestRecordPoolStats(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	d := Wrap(nil, m)

	d.recordPoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3, WaitCount: 11})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.DBOpenConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBInUseConnections))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DBIdleConnections))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.DBWaitCount))
}
