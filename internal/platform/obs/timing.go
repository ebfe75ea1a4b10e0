package obs

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Recorder receives every finished operation. Wired to the metrics
// registry at startup; nil recorders are ignored.
type Recorder func(op string, d time.Duration)

var recorder atomic.Pointer[Recorder]

func SetRecorder(r Recorder) {
	recorder.Store(&r)
}

// Time logs one operation's duration and outcome, keyed by the request ID
// carried on the context. Use as:
//
//	defer obs.Time(ctx, "strategies.ComparePlans")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if r := recorder.Load(); r != nil && *r != nil {
			(*r)(name, dur)
		}

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
