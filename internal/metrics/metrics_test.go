package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTMDBRequest(t *testing.T) {
	before := testutil.ToFloat64(TMDBRequests.WithLabelValues("trending", "200"))
	RecordTMDBRequest("trending", 200, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(TMDBRequests.WithLabelValues("trending", "200")))

	before = testutil.ToFloat64(TMDBRequests.WithLabelValues("search", "error"))
	RecordTMDBRequest("search", 0, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(TMDBRequests.WithLabelValues("search", "error")))

	before = testutil.ToFloat64(TMDBRequests.WithLabelValues("search", "rejected"))
	RecordTMDBRejected("search")
	assert.Equal(t, before+1, testutil.ToFloat64(TMDBRequests.WithLabelValues("search", "rejected")))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits)
	misses := testutil.ToFloat64(CacheMisses)
	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHits))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMisses))
}

func TestRecordAccountOperation(t *testing.T) {
	ok := testutil.ToFloat64(AccountOperations.WithLabelValues("login", "success"))
	bad := testutil.ToFloat64(AccountOperations.WithLabelValues("login", "failure"))
	RecordAccountOperation("login", nil)
	RecordAccountOperation("login", errors.New("Invalid password"))
	assert.Equal(t, ok+1, testutil.ToFloat64(AccountOperations.WithLabelValues("login", "success")))
	assert.Equal(t, bad+1, testutil.ToFloat64(AccountOperations.WithLabelValues("login", "failure")))
}

func TestSetBreakerState(t *testing.T) {
	SetBreakerState("tmdb", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("tmdb")))
}
