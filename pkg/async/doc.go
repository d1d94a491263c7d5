// Package async provides a minimal Future abstraction for running
// independent operations concurrently and joining their results.
//
// Example:
//
//	geoFut := async.Async(ctx, addr, resolveGeo)
//	devFut := async.Async(ctx, ua, parseDevice)
//
//	geo, _ := geoFut.Await()
//	dev, _ := devFut.Await()
package async
