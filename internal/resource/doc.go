// Package resource limits the load the engine puts on a base reasoner.
//
// The Controller manages two resources:
//
//   - Concurrency: a weighted semaphore bounding in-flight reasoner calls
//     during the per-subject materialization fallback.
//   - Rate: a token bucket capping reasoner calls per second, for remote
//     backends that meter requests.
//
// Both are optional. A nil *Controller is valid and imposes no limits, so call
// sites never need to branch:
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:     8,
//	    CallsPerSecond: 200,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
//	if err := rc.AcquireCall(ctx); err != nil {
//	    return err
//	}
//	values, err := r.ObjectPropertyValues(ctx, subject, p)
package resource
